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

type LocationInput struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	LocalName string  `json:"localName" validate:"required,max=30"`
}

func (in LocationInput) model() models.Location {
	return models.Location{
		Latitude:  decimal.NewFromFloat(in.Latitude),
		Longitude: decimal.NewFromFloat(in.Longitude),
		LocalName: in.LocalName,
	}
}

type CreateHotelInput struct {
	OwnerID  uint          `json:"ownerID" validate:"required"`
	Name     string        `json:"name" validate:"required,max=30"`
	Star     *float64      `json:"star" validate:"omitempty,min=0,max=5"`
	Location LocationInput `json:"location" validate:"required"`
}

// CreateHotel writes the Location and the Hotel in one transaction so
// a failure never leaves an orphaned location behind.
func CreateHotel(ctx iris.Context) {
	caller := currentCaller(ctx)
	if !authz.CanCreateHotel(caller) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	var input CreateHotelInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var owner models.User
	if err := storage.DB.First(&owner, input.OwnerID).Error; err != nil {
		utils.FieldError("ownerID", "The referenced owner does not exist.", ctx)
		return
	}

	hotel := models.Hotel{
		OwnerID: owner.ID,
		Name:    input.Name,
	}
	if input.Star != nil {
		star := decimal.NewFromFloat(*input.Star)
		hotel.Star = &star
	}

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		location := input.Location.model()
		if err := tx.Create(&location).Error; err != nil {
			return err
		}
		hotel.LocationID = &location.ID
		hotel.Location = &location
		return tx.Create(&hotel).Error
	})
	if err != nil {
		if uniqueViolation(err) {
			utils.FieldError("location", "A location with these coordinates already exists.", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(hotel)
}

func GetHotel(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("hotelID", 0)

	var hotel models.Hotel
	if err := storage.DB.Preload("Location").First(&hotel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	ctx.JSON(hotel)
}

func ListHotels(ctx iris.Context) {
	page, perPage, offset := paginate(ctx)

	var total int64
	storage.DB.Model(&models.Hotel{}).Count(&total)

	var hotels []models.Hotel
	if err := storage.DB.Preload("Location").
		Order("name").Limit(perPage).Offset(offset).
		Find(&hotels).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, hotels, page, perPage, total)
}

type UpdateHotelInput struct {
	Name     *string        `json:"name" validate:"omitempty,max=30"`
	OwnerID  *uint          `json:"ownerID"`
	Star     *float64       `json:"star" validate:"omitempty,min=0,max=5"`
	Location *LocationInput `json:"location"`
}

func UpdateHotel(ctx iris.Context) {
	caller := currentCaller(ctx)
	if !authz.CanUpdateHotel(caller) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	var input UpdateHotelInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.OwnerID != nil {
		var owner models.User
		if err := storage.DB.First(&owner, *input.OwnerID).Error; err != nil {
			utils.FieldError("ownerID", "The referenced owner does not exist.", ctx)
			return
		}
		hotel.OwnerID = owner.ID
	}
	if input.Name != nil {
		hotel.Name = *input.Name
	}
	if input.Star != nil {
		star := decimal.NewFromFloat(*input.Star)
		hotel.Star = &star
	}

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if input.Location != nil {
			location := input.Location.model()
			if hotel.LocationID != nil {
				location.ID = *hotel.LocationID
				if err := tx.Save(&location).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Create(&location).Error; err != nil {
					return err
				}
				hotel.LocationID = &location.ID
			}
		}
		return tx.Save(hotel).Error
	})
	if err != nil {
		if uniqueViolation(err) {
			utils.FieldError("location", "A location with these coordinates already exists.", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.DB.Preload("Location").First(hotel, hotel.ID)
	ctx.JSON(hotel)
}

// DeleteHotel cascades to the hotel's rooms, images, amenities,
// events, staff accounts, city links, favorites, reviews and its
// location. Bookings still occupying a room block the deletion;
// finished ones go with the hotel. Blob cleanup happens after the
// transaction and a failure there is tolerated.
func DeleteHotel(ctx iris.Context) {
	caller := currentCaller(ctx)
	if !authz.CanDeleteHotel(caller) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	var activeBookings int64
	storage.DB.Model(&models.Booking{}).
		Where("hotel_id = ? AND status IN ?", hotel.ID, models.ActiveBookingStatuses()).
		Count(&activeBookings)
	if activeBookings > 0 {
		utils.FieldError("hotelID", "The hotel still has active bookings.", ctx)
		return
	}

	var imageURLs []string
	storage.DB.Model(&models.Image{}).Where("hotel_id = ?", hotel.ID).Pluck("url", &imageURLs)

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		hotelID := hotel.ID
		staffRoles := []models.Role{models.RoleManager, models.RoleReceptionist}

		for _, del := range []error{
			tx.Where("hotel_id = ?", hotelID).Delete(&models.Booking{}).Error,
			tx.Where("hotel_id = ?", hotelID).Delete(&models.Review{}).Error,
			tx.Where("hotel_id = ?", hotelID).Delete(&models.Image{}).Error,
			tx.Where("hotel_id = ?", hotelID).Delete(&models.Amenity{}).Error,
			tx.Where("hotel_id = ?", hotelID).Delete(&models.Event{}).Error,
			tx.Where("hotel_id = ?", hotelID).Delete(&models.Room{}).Error,
			tx.Where("hotel_id = ?", hotelID).Delete(&models.HotelCity{}).Error,
			tx.Where("hotel_id = ?", hotelID).Delete(&models.Favorite{}).Error,
			tx.Where("hotel_id = ? AND role IN ?", hotelID, staffRoles).Delete(&models.User{}).Error,
		} {
			if del != nil {
				return del
			}
		}

		if err := tx.Delete(hotel).Error; err != nil {
			return err
		}
		// The location row does not cascade on its own; drop it here.
		if hotel.LocationID != nil {
			return tx.Delete(&models.Location{}, *hotel.LocationID).Error
		}
		return nil
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	for _, url := range imageURLs {
		storage.DeleteImage(url)
	}

	ctx.StatusCode(iris.StatusNoContent)
}
