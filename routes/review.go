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

type CreateReviewInput struct {
	Content string  `json:"content" validate:"required,max=2000"`
	Rating  float64 `json:"rating" validate:"min=0,max=5"`
}

type UpdateReviewInput struct {
	Content *string  `json:"content" validate:"omitempty,max=2000"`
	Rating  *float64 `json:"rating" validate:"omitempty,min=0,max=5"`
}

// CreateReview lets any authenticated account review a hotel,
// regardless of role. The review is pinned to its author.
func CreateReview(ctx iris.Context) {
	caller := currentCaller(ctx)
	if !authz.CanCreateReview(caller) {
		utils.CreateUnauthorized(ctx)
		return
	}

	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	var input CreateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	review := models.Review{
		HotelID: hotel.ID,
		UserID:  caller.ID,
		Content: input.Content,
		Rating:  decimal.NewFromFloat(input.Rating).Round(1),
	}
	if err := storage.DB.Create(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(review)
}

func findReview(ctx iris.Context) (*models.Review, bool) {
	id := ctx.Params().GetUintDefault("reviewID", 0)

	var review models.Review
	if err := storage.DB.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return nil, false
	}
	return &review, true
}

func GetReview(ctx iris.Context) {
	review, ok := findReview(ctx)
	if !ok {
		return
	}
	ctx.JSON(review)
}

// ListHotelReviews is public.
func ListHotelReviews(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	page, perPage, offset := paginate(ctx)

	var total int64
	storage.DB.Model(&models.Review{}).Where("hotel_id = ?", hotel.ID).Count(&total)

	var reviews []models.Review
	if err := storage.DB.Where("hotel_id = ?", hotel.ID).
		Order("created_at DESC").Limit(perPage).Offset(offset).
		Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, reviews, page, perPage, total)
}

func UpdateReview(ctx iris.Context) {
	review, ok := findReview(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanEditReview(caller, review.UserID) {
		utils.CreateForbidden(authz.ReasonReview, ctx)
		return
	}

	var input UpdateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Content != nil {
		review.Content = *input.Content
	}
	if input.Rating != nil {
		review.Rating = decimal.NewFromFloat(*input.Rating).Round(1)
	}
	if err := storage.DB.Save(review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(review)
}

func DeleteReview(ctx iris.Context) {
	review, ok := findReview(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanEditReview(caller, review.UserID) {
		utils.CreateForbidden(authz.ReasonReview, ctx)
		return
	}

	if err := storage.DB.Delete(review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.StatusCode(iris.StatusNoContent)
}
