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

type CreateAmenityInput struct {
	Name        string `json:"name" validate:"required,max=30"`
	Description string `json:"description"`
	// RoomID makes this a room amenity; left empty it belongs to the
	// hotel itself.
	RoomID *uint `json:"roomID"`
}

type UpdateAmenityInput struct {
	Name        *string `json:"name" validate:"omitempty,max=30"`
	Description *string `json:"description"`
}

func CreateAmenity(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanManageHotelContent(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	var input CreateAmenityInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	amenity := models.Amenity{
		HotelID:     hotel.ID,
		OwnerType:   models.AmenityOfHotel,
		Name:        input.Name,
		Description: input.Description,
	}
	if input.RoomID != nil {
		var count int64
		if err := storage.DB.Model(&models.Room{}).
			Where("id = ? AND hotel_id = ?", *input.RoomID, hotel.ID).
			Count(&count).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		if count == 0 {
			utils.FieldError("roomID", "The room does not belong to this hotel.", ctx)
			return
		}
		amenity.OwnerType = models.AmenityOfRoom
		amenity.RoomID = input.RoomID
	}

	if err := storage.DB.Create(&amenity).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(amenity)
}

func findAmenity(hotel *models.Hotel, ctx iris.Context) (*models.Amenity, bool) {
	id := ctx.Params().GetUintDefault("amenityID", 0)

	var amenity models.Amenity
	if err := storage.DB.Where("id = ? AND hotel_id = ?", id, hotel.ID).
		First(&amenity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return nil, false
	}
	return &amenity, true
}

func GetAmenity(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}
	amenity, ok := findAmenity(hotel, ctx)
	if !ok {
		return
	}
	ctx.JSON(amenity)
}

// ListAmenities is public. ?roomID=N narrows to a room's amenities,
// ?scope=hotel narrows to the hotel-level ones.
func ListAmenities(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	page, perPage, offset := paginate(ctx)

	query := storage.DB.Model(&models.Amenity{}).Where("hotel_id = ?", hotel.ID)
	if roomID := ctx.URLParamIntDefault("roomID", 0); roomID > 0 {
		query = query.Where("room_id = ?", roomID)
	} else if ctx.URLParam("scope") == "hotel" {
		query = query.Where("owner_type = ?", models.AmenityOfHotel)
	}

	var total int64
	query.Count(&total)

	var amenities []models.Amenity
	if err := query.Order("name ASC").Limit(perPage).Offset(offset).
		Find(&amenities).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, amenities, page, perPage, total)
}

func UpdateAmenity(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanManageHotelContent(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	amenity, ok := findAmenity(hotel, ctx)
	if !ok {
		return
	}

	var input UpdateAmenityInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Name != nil {
		amenity.Name = *input.Name
	}
	if input.Description != nil {
		amenity.Description = *input.Description
	}
	if err := storage.DB.Save(amenity).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(amenity)
}

func DeleteAmenity(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanManageHotelContent(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	amenity, ok := findAmenity(hotel, ctx)
	if !ok {
		return
	}

	var urls []string
	storage.DB.Model(&models.Image{}).
		Where("owner_type = ? AND owner_id = ?", models.ImageOfAmenity, amenity.ID).
		Pluck("url", &urls)

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_type = ? AND owner_id = ?",
			models.ImageOfAmenity, amenity.ID).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(amenity).Error
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	for _, url := range urls {
		storage.DeleteImage(url)
	}
	ctx.StatusCode(iris.StatusNoContent)
}
