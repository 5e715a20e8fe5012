package routes

import (
	"errors"

	"github.com/Menwuyelet/Group-34/authz"
	"github.com/Menwuyelet/Group-34/models"
	"github.com/Menwuyelet/Group-34/storage"
	"github.com/Menwuyelet/Group-34/utils"
	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateRoomInput struct {
	RoomType      string  `json:"roomType" validate:"required,max=20"`
	RoomNo        string  `json:"roomNo" validate:"required,max=10"`
	PricePerNight float64 `json:"pricePerNight" validate:"min=0"`
	Beds          int     `json:"beds" validate:"omitempty,min=1,max=10"`
	Available     *bool   `json:"available"`
}

func CreateRoom(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanCreateRoom(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	var input CreateRoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	room := models.Room{
		HotelID:       hotel.ID,
		RoomType:      input.RoomType,
		RoomNo:        input.RoomNo,
		PricePerNight: decimal.NewFromFloat(input.PricePerNight).Round(2),
		Beds:          input.Beds,
		Available:     input.Available,
	}
	if room.Beds == 0 {
		room.Beds = 1
	}

	if err := storage.DB.Create(&room).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(room)
}

// findRoom loads a room scoped to the hotel in the path; a room id
// under a different hotel is a 404.
func findRoom(hotel *models.Hotel, ctx iris.Context) (*models.Room, bool) {
	id := ctx.Params().GetUintDefault("roomID", 0)
	var room models.Room
	if err := storage.DB.Where("id = ? AND hotel_id = ?", id, hotel.ID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return nil, false
	}
	return &room, true
}

func GetRoom(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}
	room, ok := findRoom(hotel, ctx)
	if !ok {
		return
	}
	ctx.JSON(room)
}

func ListRooms(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	page, perPage, offset := paginate(ctx)

	var total int64
	storage.DB.Model(&models.Room{}).Where("hotel_id = ?", hotel.ID).Count(&total)

	var rooms []models.Room
	if err := storage.DB.Where("hotel_id = ?", hotel.ID).
		Order("room_no").Limit(perPage).Offset(offset).
		Find(&rooms).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, rooms, page, perPage, total)
}

type UpdateRoomInput struct {
	RoomType      *string  `json:"roomType" validate:"omitempty,max=20"`
	RoomNo        *string  `json:"roomNo" validate:"omitempty,max=10"`
	PricePerNight *float64 `json:"pricePerNight" validate:"omitempty,min=0"`
	Beds          *int     `json:"beds" validate:"omitempty,min=1,max=10"`
	Available     *bool    `json:"available"`
}

// UpdateRoom is also open to the hotel's receptionists so the front
// desk can flip availability.
func UpdateRoom(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanUpdateRoom(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	room, ok := findRoom(hotel, ctx)
	if !ok {
		return
	}

	var input UpdateRoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.RoomType != nil {
		room.RoomType = *input.RoomType
	}
	if input.RoomNo != nil {
		room.RoomNo = *input.RoomNo
	}
	if input.PricePerNight != nil {
		room.PricePerNight = decimal.NewFromFloat(*input.PricePerNight).Round(2)
	}
	if input.Beds != nil {
		room.Beds = *input.Beds
	}
	if input.Available != nil {
		room.Available = input.Available
	}

	if err := storage.DB.Save(room).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(room)
}

func DeleteRoom(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanDeleteRoom(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	room, ok := findRoom(hotel, ctx)
	if !ok {
		return
	}

	var imageURLs []string
	storage.DB.Model(&models.Image{}).
		Where("owner_type = ? AND owner_id = ?", models.ImageOfRoom, room.ID).
		Pluck("url", &imageURLs)

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_type = ? AND owner_id = ?", models.ImageOfRoom, room.ID).
			Delete(&models.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", room.ID).Delete(&models.Amenity{}).Error; err != nil {
			return err
		}
		return tx.Delete(room).Error
	})
	if err != nil {
		if fkViolation(err) {
			utils.FieldError("roomID", "The room still has bookings referencing it.", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	for _, url := range imageURLs {
		storage.DeleteImage(url)
	}

	ctx.StatusCode(iris.StatusNoContent)
}
