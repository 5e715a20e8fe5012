package routes

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/Menwuyelet/Group-34/authz"
	"github.com/Menwuyelet/Group-34/models"
	"github.com/Menwuyelet/Group-34/storage"
	"github.com/Menwuyelet/Group-34/utils"
	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateEventInput struct {
	Title       string          `json:"title" validate:"required,max=50"`
	Description string          `json:"description"`
	StartTime   *time.Time      `json:"startTime"`
	EndTime     *time.Time      `json:"endTime"`
	Schedule    json.RawMessage `json:"schedule"`
}

type UpdateEventInput struct {
	Title       *string         `json:"title" validate:"omitempty,max=50"`
	Description *string         `json:"description"`
	StartTime   *time.Time      `json:"startTime"`
	EndTime     *time.Time      `json:"endTime"`
	Schedule    json.RawMessage `json:"schedule"`
}

func CreateEvent(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanManageHotelContent(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	var input CreateEventInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.StartTime != nil && input.EndTime != nil && !input.EndTime.After(*input.StartTime) {
		utils.FieldError("endTime", "End time must be after start time.", ctx)
		return
	}

	event := models.Event{
		HotelID:     hotel.ID,
		Title:       input.Title,
		Description: input.Description,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
	}
	if input.Schedule != nil {
		event.Schedule = datatypes.JSON(input.Schedule)
	}
	if err := storage.DB.Create(&event).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(event)
}

func findEvent(hotel *models.Hotel, ctx iris.Context) (*models.Event, bool) {
	id := ctx.Params().GetUintDefault("eventID", 0)

	var event models.Event
	if err := storage.DB.Where("id = ? AND hotel_id = ?", id, hotel.ID).
		First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return nil, false
	}
	return &event, true
}

func GetEvent(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}
	event, ok := findEvent(hotel, ctx)
	if !ok {
		return
	}
	ctx.JSON(event)
}

// ListEvents is public, newest first.
func ListEvents(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	page, perPage, offset := paginate(ctx)

	var total int64
	storage.DB.Model(&models.Event{}).Where("hotel_id = ?", hotel.ID).Count(&total)

	var events []models.Event
	if err := storage.DB.Where("hotel_id = ?", hotel.ID).
		Order("start_time DESC").Limit(perPage).Offset(offset).
		Find(&events).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, events, page, perPage, total)
}

func UpdateEvent(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanManageHotelContent(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	event, ok := findEvent(hotel, ctx)
	if !ok {
		return
	}

	var input UpdateEventInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.StartTime != nil {
		event.StartTime = input.StartTime
	}
	if input.EndTime != nil {
		event.EndTime = input.EndTime
	}
	if event.StartTime != nil && event.EndTime != nil && !event.EndTime.After(*event.StartTime) {
		utils.FieldError("endTime", "End time must be after start time.", ctx)
		return
	}
	if input.Schedule != nil {
		event.Schedule = datatypes.JSON(input.Schedule)
	}

	if err := storage.DB.Save(event).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(event)
}

// DeleteEvent also clears the event's gallery.
func DeleteEvent(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanManageHotelContent(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	event, ok := findEvent(hotel, ctx)
	if !ok {
		return
	}

	var urls []string
	storage.DB.Model(&models.Image{}).
		Where("owner_type = ? AND owner_id = ?", models.ImageOfEvent, event.ID).
		Pluck("url", &urls)

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_type = ? AND owner_id = ?",
			models.ImageOfEvent, event.ID).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(event).Error
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
