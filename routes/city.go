package routes

import (
	"encoding/json"
	"errors"

	"github.com/Menwuyelet/Group-34/authz"
	"github.com/Menwuyelet/Group-34/models"
	"github.com/Menwuyelet/Group-34/storage"
	"github.com/Menwuyelet/Group-34/utils"
	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateCityInput struct {
	Name        string        `json:"name" validate:"required,max=15"`
	Description string        `json:"description" validate:"required"`
	Location    LocationInput `json:"location" validate:"required"`
}

type UpdateCityInput struct {
	Name        *string        `json:"name" validate:"omitempty,max=15"`
	Description *string        `json:"description"`
	Location    *LocationInput `json:"location"`
}

// CreateCity adds a destination. Destinations are curated by the
// platform, so this stays admin-only.
func CreateCity(ctx iris.Context) {
	caller := currentCaller(ctx)
	if !authz.CanManageCityContent(caller) {
		utils.CreateForbidden(authz.ReasonCity, ctx)
		return
	}

	var input CreateCityInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	city := models.City{Name: input.Name, Description: input.Description}
	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		location := input.Location.model()
		if err := tx.Create(&location).Error; err != nil {
			return err
		}
		city.LocationID = &location.ID
		city.Location = &location
		return tx.Create(&city).Error
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
	ctx.JSON(city)
}

func GetCity(ctx iris.Context) {
	city, ok := findCity(ctx)
	if !ok {
		return
	}
	ctx.JSON(city)
}

func ListCities(ctx iris.Context) {
	page, perPage, offset := paginate(ctx)

	var total int64
	storage.DB.Model(&models.City{}).Count(&total)

	var cities []models.City
	if err := storage.DB.Preload("Location").
		Order("name ASC").Limit(perPage).Offset(offset).
		Find(&cities).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, cities, page, perPage, total)
}

func UpdateCity(ctx iris.Context) {
	caller := currentCaller(ctx)
	if !authz.CanManageCityContent(caller) {
		utils.CreateForbidden(authz.ReasonCity, ctx)
		return
	}

	city, ok := findCity(ctx)
	if !ok {
		return
	}

	var input UpdateCityInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Name != nil {
		city.Name = *input.Name
	}
	if input.Description != nil {
		city.Description = *input.Description
	}

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if input.Location != nil {
			location := input.Location.model()
			if city.LocationID != nil {
				location.ID = *city.LocationID
				if err := tx.Save(&location).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Create(&location).Error; err != nil {
					return err
				}
				city.LocationID = &location.ID
			}
			city.Location = &location
		}
		return tx.Save(city).Error
	})
	if err != nil {
		if uniqueViolation(err) {
			utils.FieldError("location", "A location with these coordinates already exists.", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(city)
}

// DeleteCity removes the destination together with its attractions,
// images and hotel links.
func DeleteCity(ctx iris.Context) {
	caller := currentCaller(ctx)
	if !authz.CanManageCityContent(caller) {
		utils.CreateForbidden(authz.ReasonCity, ctx)
		return
	}

	city, ok := findCity(ctx)
	if !ok {
		return
	}

	var urls []string
	storage.DB.Model(&models.Image{}).Where("city_id = ?", city.ID).Pluck("url", &urls)

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("city_id = ?", city.ID).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("city_id = ?", city.ID).Delete(&models.LocalAttraction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("city_id = ?", city.ID).Delete(&models.HotelCity{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(city).Error; err != nil {
			return err
		}
		if city.LocationID != nil {
			return tx.Delete(&models.Location{}, *city.LocationID).Error
		}
		return nil
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

type CreateAttractionInput struct {
	Name          string               `json:"name" validate:"required,max=20"`
	Description   string               `json:"description" validate:"required"`
	Accessibility models.Accessibility `json:"accessibility" validate:"omitempty,oneof=Free Paid"`
	Type          string               `json:"type" validate:"required,max=20"`
	Tags          []string             `json:"tags"`
	Availability  *bool                `json:"availability"`
	Location      LocationInput        `json:"location" validate:"required"`
}

type UpdateAttractionInput struct {
	Name          *string               `json:"name" validate:"omitempty,max=20"`
	Description   *string               `json:"description"`
	Accessibility *models.Accessibility `json:"accessibility" validate:"omitempty,oneof=Free Paid"`
	Type          *string               `json:"type" validate:"omitempty,max=20"`
	Tags          []string              `json:"tags"`
	Availability  *bool                 `json:"availability"`
	Location      *LocationInput        `json:"location"`
}

func tagsJSON(tags []string, ctx iris.Context) (datatypes.JSON, bool) {
	value, err := json.Marshal(tags)
	if err != nil {
		utils.FieldError("tags", "Enter a valid list of tags.", ctx)
		return nil, false
	}
	return datatypes.JSON(value), true
}

func CreateAttraction(ctx iris.Context) {
	caller := currentCaller(ctx)
	if !authz.CanManageCityContent(caller) {
		utils.CreateForbidden(authz.ReasonCity, ctx)
		return
	}

	city, ok := findCity(ctx)
	if !ok {
		return
	}

	var input CreateAttractionInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	attraction := models.LocalAttraction{
		Name:         input.Name,
		Description:  input.Description,
		Type:         input.Type,
		CityID:       city.ID,
		Availability: input.Availability,
	}
	if input.Accessibility != "" {
		attraction.Accessibility = input.Accessibility
	}
	if input.Tags != nil {
		tags, ok := tagsJSON(input.Tags, ctx)
		if !ok {
			return
		}
		attraction.Tags = tags
	}

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		location := input.Location.model()
		if err := tx.Create(&location).Error; err != nil {
			return err
		}
		attraction.LocationID = &location.ID
		attraction.Location = &location
		return tx.Create(&attraction).Error
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
	ctx.JSON(attraction)
}

// findAttraction scopes the lookup to the city in the path, so an
// attraction of another city resolves to a 404 rather than a leak.
func findAttraction(city *models.City, ctx iris.Context) (*models.LocalAttraction, bool) {
	id := ctx.Params().GetUintDefault("attractionID", 0)

	var attraction models.LocalAttraction
	if err := storage.DB.Preload("Location").
		Where("id = ? AND city_id = ?", id, city.ID).
		First(&attraction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return nil, false
	}
	return &attraction, true
}

func GetAttraction(ctx iris.Context) {
	city, ok := findCity(ctx)
	if !ok {
		return
	}
	attraction, ok := findAttraction(city, ctx)
	if !ok {
		return
	}
	ctx.JSON(attraction)
}

func ListAttractions(ctx iris.Context) {
	city, ok := findCity(ctx)
	if !ok {
		return
	}

	page, perPage, offset := paginate(ctx)

	query := storage.DB.Model(&models.LocalAttraction{}).Where("city_id = ?", city.ID)
	if kind := ctx.URLParam("type"); kind != "" {
		query = query.Where("type = ?", kind)
	}

	var total int64
	query.Count(&total)

	var attractions []models.LocalAttraction
	if err := query.Preload("Location").
		Order("name ASC").Limit(perPage).Offset(offset).
		Find(&attractions).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, attractions, page, perPage, total)
}

func UpdateAttraction(ctx iris.Context) {
	caller := currentCaller(ctx)
	if !authz.CanManageCityContent(caller) {
		utils.CreateForbidden(authz.ReasonCity, ctx)
		return
	}

	city, ok := findCity(ctx)
	if !ok {
		return
	}
	attraction, ok := findAttraction(city, ctx)
	if !ok {
		return
	}

	var input UpdateAttractionInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Name != nil {
		attraction.Name = *input.Name
	}
	if input.Description != nil {
		attraction.Description = *input.Description
	}
	if input.Accessibility != nil {
		attraction.Accessibility = *input.Accessibility
	}
	if input.Type != nil {
		attraction.Type = *input.Type
	}
	if input.Availability != nil {
		attraction.Availability = input.Availability
	}
	if input.Tags != nil {
		tags, ok := tagsJSON(input.Tags, ctx)
		if !ok {
			return
		}
		attraction.Tags = tags
	}

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if input.Location != nil {
			location := input.Location.model()
			if attraction.LocationID != nil {
				location.ID = *attraction.LocationID
				if err := tx.Save(&location).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Create(&location).Error; err != nil {
					return err
				}
				attraction.LocationID = &location.ID
			}
			attraction.Location = &location
		}
		return tx.Save(attraction).Error
	})
	if err != nil {
		if uniqueViolation(err) {
			utils.FieldError("location", "A location with these coordinates already exists.", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(attraction)
}

func DeleteAttraction(ctx iris.Context) {
	caller := currentCaller(ctx)
	if !authz.CanManageCityContent(caller) {
		utils.CreateForbidden(authz.ReasonCity, ctx)
		return
	}

	city, ok := findCity(ctx)
	if !ok {
		return
	}
	attraction, ok := findAttraction(city, ctx)
	if !ok {
		return
	}

	var urls []string
	storage.DB.Model(&models.Image{}).
		Where("owner_type = ? AND owner_id = ?", models.ImageOfAttraction, attraction.ID).
		Pluck("url", &urls)

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_type = ? AND owner_id = ?",
			models.ImageOfAttraction, attraction.ID).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(attraction).Error; err != nil {
			return err
		}
		if attraction.LocationID != nil {
			return tx.Delete(&models.Location{}, *attraction.LocationID).Error
		}
		return nil
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
