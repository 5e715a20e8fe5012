package routes

import (
	"errors"
	"strings"

	"github.com/Menwuyelet/Group-34/authz"
	"github.com/Menwuyelet/Group-34/models"
	"github.com/Menwuyelet/Group-34/storage"
	"github.com/Menwuyelet/Group-34/utils"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
)

// currentCaller builds the authorization caller from the verified
// access token. Routes without a verifier yield the anonymous caller.
func currentCaller(ctx iris.Context) authz.Caller {
	if tok := jwt.Get(ctx); tok != nil {
		if claims, ok := tok.(*utils.AccessToken); ok {
			return authz.Caller{ID: claims.ID, Role: claims.Role, HotelID: claims.HotelID}
		}
	}
	return authz.Caller{}
}

// findHotel resolves the {hotelID} path parameter. On a miss it has
// already written the 404.
func findHotel(ctx iris.Context) (*models.Hotel, bool) {
	id := ctx.Params().GetUintDefault("hotelID", 0)
	if id == 0 {
		utils.CreateNotFound(ctx)
		return nil, false
	}

	var hotel models.Hotel
	if err := storage.DB.First(&hotel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return nil, false
	}
	return &hotel, true
}

func hotelRef(h *models.Hotel) authz.HotelRef {
	return authz.HotelRef{ID: h.ID, OwnerID: h.OwnerID}
}

// findCity resolves the {cityID} path parameter, writing the 404 on a
// miss.
func findCity(ctx iris.Context) (*models.City, bool) {
	id := ctx.Params().GetUintDefault("cityID", 0)
	if id == 0 {
		utils.CreateNotFound(ctx)
		return nil, false
	}

	var city models.City
	if err := storage.DB.Preload("Location").First(&city, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return nil, false
	}
	return &city, true
}

func paginate(ctx iris.Context) (page, perPage, offset int) {
	page = ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	perPage = ctx.URLParamIntDefault("per_page", 20)
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage, (page - 1) * perPage
}

// uniqueViolation reports whether the store rejected a write over a
// unique constraint.
func uniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}

// fkViolation reports a foreign-key integrity failure.
func fkViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "foreign key")
}
