package routes

import (
	"errors"

	"github.com/Menwuyelet/Group-34/authz"
	"github.com/Menwuyelet/Group-34/models"
	"github.com/Menwuyelet/Group-34/storage"
	"github.com/Menwuyelet/Group-34/utils"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// CreateFavorite bookmarks the hotel in the path for the caller.
func CreateFavorite(ctx iris.Context) {
	caller := currentCaller(ctx)
	if caller.Anonymous() {
		utils.CreateUnauthorized(ctx)
		return
	}

	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	favorite := models.Favorite{HotelID: hotel.ID, UserID: caller.ID}
	if err := storage.DB.Create(&favorite).Error; err != nil {
		if uniqueViolation(err) {
			utils.FieldError("hotelID", "The hotel is already in your favorites.", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(favorite)
}

// ListFavorites returns the caller's bookmarks. An admin may pass
// ?userID=N to inspect another account's list.
func ListFavorites(ctx iris.Context) {
	caller := currentCaller(ctx)
	if caller.Anonymous() {
		utils.CreateUnauthorized(ctx)
		return
	}

	userID := caller.ID
	if requested := ctx.URLParamIntDefault("userID", 0); requested > 0 {
		userID = uint(requested)
	}
	if !authz.CanAccessFavorite(caller, userID) {
		utils.CreateForbidden(authz.ReasonProfile, ctx)
		return
	}

	page, perPage, offset := paginate(ctx)

	var total int64
	storage.DB.Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&total)

	var favorites []models.Favorite
	if err := storage.DB.Where("user_id = ?", userID).
		Preload("Hotel").Preload("Hotel.Location").
		Order("created_at DESC").Limit(perPage).Offset(offset).
		Find(&favorites).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, favorites, page, perPage, total)
}

func DeleteFavorite(ctx iris.Context) {
	caller := currentCaller(ctx)
	if caller.Anonymous() {
		utils.CreateUnauthorized(ctx)
		return
	}

	id := ctx.Params().GetUintDefault("favoriteID", 0)

	var favorite models.Favorite
	if err := storage.DB.First(&favorite, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	if !authz.CanAccessFavorite(caller, favorite.UserID) {
		utils.CreateForbidden(authz.ReasonProfile, ctx)
		return
	}

	if err := storage.DB.Delete(&favorite).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.StatusCode(iris.StatusNoContent)
}

// LinkHotelCity markets the hotel under a destination city.
func LinkHotelCity(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanManageHotelCity(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	city, ok := findCity(ctx)
	if !ok {
		return
	}

	link := models.HotelCity{HotelID: hotel.ID, CityID: city.ID}
	if err := storage.DB.Create(&link).Error; err != nil {
		if uniqueViolation(err) {
			utils.FieldError("cityID", "The hotel is already linked to this city.", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(link)
}

func UnlinkHotelCity(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanManageHotelCity(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	city, ok := findCity(ctx)
	if !ok {
		return
	}

	result := storage.DB.Where("hotel_id = ? AND city_id = ?", hotel.ID, city.ID).
		Delete(&models.HotelCity{})
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.StatusCode(iris.StatusNoContent)
}

// ListCityHotels is the public browse path: hotels marketed under a
// destination.
func ListCityHotels(ctx iris.Context) {
	city, ok := findCity(ctx)
	if !ok {
		return
	}

	page, perPage, offset := paginate(ctx)

	var total int64
	storage.DB.Model(&models.HotelCity{}).Where("city_id = ?", city.ID).Count(&total)

	var links []models.HotelCity
	if err := storage.DB.Where("city_id = ?", city.ID).
		Preload("Hotel").Preload("Hotel.Location").
		Limit(perPage).Offset(offset).
		Find(&links).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	hotels := make([]*models.Hotel, 0, len(links))
	for _, link := range links {
		if link.Hotel != nil {
			hotels = append(hotels, link.Hotel)
		}
	}
	utils.JSONPage(ctx, hotels, page, perPage, total)
}

// ListHotelCities lists the destinations a hotel markets under.
func ListHotelCities(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	page, perPage, offset := paginate(ctx)

	var total int64
	storage.DB.Model(&models.HotelCity{}).Where("hotel_id = ?", hotel.ID).Count(&total)

	var links []models.HotelCity
	if err := storage.DB.Where("hotel_id = ?", hotel.ID).
		Preload("City").Preload("City.Location").
		Limit(perPage).Offset(offset).
		Find(&links).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	cities := make([]*models.City, 0, len(links))
	for _, link := range links {
		if link.City != nil {
			cities = append(cities, link.City)
		}
	}
	utils.JSONPage(ctx, cities, page, perPage, total)
}
