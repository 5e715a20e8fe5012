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

type CreateImageInput struct {
	OwnerType string `json:"ownerType" validate:"required"`
	// OwnerID may be omitted when the image belongs to the hotel or
	// city in the path itself.
	OwnerID   uint   `json:"ownerID"`
	ImageData string `json:"imageData" validate:"required"` // base64 data URL
}

type UpdateImageInput struct {
	ImageData string `json:"imageData" validate:"required"`
}

// ownerInHotel checks that the target row actually lives under the
// hotel in the path, so staff of one hotel cannot attach images to
// another hotel's rooms or events.
func ownerInHotel(owner models.ImageOwner, ownerID uint, hotelID uint) (bool, error) {
	var count int64
	var err error
	switch owner {
	case models.ImageOfHotel:
		return ownerID == hotelID, nil
	case models.ImageOfRoom:
		err = storage.DB.Model(&models.Room{}).
			Where("id = ? AND hotel_id = ?", ownerID, hotelID).Count(&count).Error
	case models.ImageOfEvent:
		err = storage.DB.Model(&models.Event{}).
			Where("id = ? AND hotel_id = ?", ownerID, hotelID).Count(&count).Error
	case models.ImageOfAmenity:
		err = storage.DB.Model(&models.Amenity{}).
			Where("id = ? AND hotel_id = ?", ownerID, hotelID).Count(&count).Error
	}
	return count > 0, err
}

func ownerInCity(owner models.ImageOwner, ownerID uint, cityID uint) (bool, error) {
	if owner == models.ImageOfCity {
		return ownerID == cityID, nil
	}
	var count int64
	err := storage.DB.Model(&models.LocalAttraction{}).
		Where("id = ? AND city_id = ?", ownerID, cityID).Count(&count).Error
	return count > 0, err
}

func uploadImage(data string, field string, publicID string, ctx iris.Context) (string, bool) {
	contentType, size, err := utils.ParsePictureDataURL(data)
	if err != nil {
		utils.FieldError(field, err.Error(), ctx)
		return "", false
	}
	if err := utils.ValidatePicture(contentType, size); err != nil {
		utils.FieldError(field, err.Error(), ctx)
		return "", false
	}
	url, err := storage.UploadBase64Image(data, publicID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return "", false
	}
	return url, true
}

// CreateHotelImage attaches an image to the hotel or one of its rooms,
// events or amenities.
func CreateHotelImage(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanManageHotelContent(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	var input CreateImageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	owner, ok := models.ParseImageOwner(input.OwnerType)
	if !ok || !owner.HotelScoped() {
		utils.FieldError("ownerType", "Owner type must be one of Hotel, Room, Event, Amenity.", ctx)
		return
	}

	ownerID := input.OwnerID
	if owner == models.ImageOfHotel && ownerID == 0 {
		ownerID = hotel.ID
	}
	belongs, err := ownerInHotel(owner, ownerID, hotel.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if !belongs {
		utils.FieldError("ownerID", "The target does not belong to this hotel.", ctx)
		return
	}

	url, ok := uploadImage(input.ImageData, "imageData",
		storage.ImagePublicID(owner, hotel.Name, ownerID), ctx)
	if !ok {
		return
	}

	hotelID := hotel.ID
	image := models.Image{
		URL:       url,
		OwnerType: owner,
		OwnerID:   ownerID,
		HotelID:   &hotelID,
	}
	if err := storage.DB.Create(&image).Error; err != nil {
		storage.DeleteImage(url)
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(image)
}

// CreateCityImage attaches an image to a city or one of its
// attractions. Destination galleries are admin territory.
func CreateCityImage(ctx iris.Context) {
	caller := currentCaller(ctx)
	if !authz.CanManageCityContent(caller) {
		utils.CreateForbidden(authz.ReasonCity, ctx)
		return
	}

	city, ok := findCity(ctx)
	if !ok {
		return
	}

	var input CreateImageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	owner, ok := models.ParseImageOwner(input.OwnerType)
	if !ok || owner.HotelScoped() {
		utils.FieldError("ownerType", "Owner type must be one of City, Attraction.", ctx)
		return
	}

	ownerID := input.OwnerID
	if owner == models.ImageOfCity && ownerID == 0 {
		ownerID = city.ID
	}
	belongs, err := ownerInCity(owner, ownerID, city.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if !belongs {
		utils.FieldError("ownerID", "The target does not belong to this city.", ctx)
		return
	}

	url, ok := uploadImage(input.ImageData, "imageData",
		storage.ImagePublicID(owner, city.Name, ownerID), ctx)
	if !ok {
		return
	}

	cityID := city.ID
	image := models.Image{
		URL:       url,
		OwnerType: owner,
		OwnerID:   ownerID,
		CityID:    &cityID,
	}
	if err := storage.DB.Create(&image).Error; err != nil {
		storage.DeleteImage(url)
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(image)
}

func listImages(scopeColumn string, scopeID uint, ctx iris.Context) {
	page, perPage, offset := paginate(ctx)

	query := storage.DB.Model(&models.Image{}).Where(scopeColumn+" = ?", scopeID)
	if ownerType := ctx.URLParam("ownerType"); ownerType != "" {
		query = query.Where("owner_type = ?", ownerType)
	}
	if ownerID := ctx.URLParamIntDefault("ownerID", 0); ownerID > 0 {
		query = query.Where("owner_id = ?", ownerID)
	}

	var total int64
	query.Count(&total)

	var images []models.Image
	if err := query.Order("created_at DESC").Limit(perPage).Offset(offset).
		Find(&images).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, images, page, perPage, total)
}

// ListHotelImages is the hotel's public gallery, filterable by owner.
func ListHotelImages(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}
	listImages("hotel_id", hotel.ID, ctx)
}

func ListCityImages(ctx iris.Context) {
	city, ok := findCity(ctx)
	if !ok {
		return
	}
	listImages("city_id", city.ID, ctx)
}

func findImage(scopeColumn string, scopeID uint, ctx iris.Context) (*models.Image, bool) {
	id := ctx.Params().GetUintDefault("imageID", 0)

	var image models.Image
	if err := storage.DB.Where("id = ? AND "+scopeColumn+" = ?", id, scopeID).
		First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return nil, false
	}
	return &image, true
}

// UpdateHotelImage replaces the stored picture, keeping the owner
// reference. The old blob is dropped best-effort after the row update.
func UpdateHotelImage(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanManageHotelContent(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	image, ok := findImage("hotel_id", hotel.ID, ctx)
	if !ok {
		return
	}

	var input UpdateImageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	url, ok := uploadImage(input.ImageData, "imageData",
		storage.ImagePublicID(image.OwnerType, hotel.Name, image.OwnerID), ctx)
	if !ok {
		return
	}

	oldURL := image.URL
	image.URL = url
	if err := storage.DB.Save(image).Error; err != nil {
		storage.DeleteImage(url)
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.DeleteImage(oldURL)
	ctx.JSON(image)
}

func DeleteHotelImage(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanManageHotelContent(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	image, ok := findImage("hotel_id", hotel.ID, ctx)
	if !ok {
		return
	}

	if err := storage.DB.Delete(image).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.DeleteImage(image.URL)
	ctx.StatusCode(iris.StatusNoContent)
}

func DeleteCityImage(ctx iris.Context) {
	caller := currentCaller(ctx)
	if !authz.CanManageCityContent(caller) {
		utils.CreateForbidden(authz.ReasonCity, ctx)
		return
	}

	city, ok := findCity(ctx)
	if !ok {
		return
	}

	image, ok := findImage("city_id", city.ID, ctx)
	if !ok {
		return
	}

	if err := storage.DB.Delete(image).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.DeleteImage(image.URL)
	ctx.StatusCode(iris.StatusNoContent)
}
