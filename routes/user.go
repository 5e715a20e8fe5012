package routes

import (
	"errors"
	"strings"

	"github.com/Menwuyelet/Group-34/authz"
	"github.com/Menwuyelet/Group-34/models"
	"github.com/Menwuyelet/Group-34/storage"
	"github.com/Menwuyelet/Group-34/utils"
	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterGuestInput struct {
	FirstName   string `json:"firstName" validate:"required,max=20"`
	LastName    string `json:"lastName" validate:"required,max=20"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	Password    string `json:"password" validate:"required"`
	Gender      string `json:"gender" validate:"omitempty,oneof=Male Female"`
	Nationality string `json:"nationality" validate:"omitempty,max=20"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterGuest is the open sign-up endpoint; every self-registered
// account is a Guest.
func RegisterGuest(ctx iris.Context) {
	var input RegisterGuestInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if err := utils.ValidatePhone(input.Phone); err != nil {
		utils.FieldError("phone", err.Error(), ctx)
		return
	}
	if err := utils.ValidatePassword(input.Password); err != nil {
		utils.FieldError("password", err.Error(), ctx)
		return
	}

	hashed, err := hashAndSaltPassword(input.Password)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	user := models.User{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       strings.ToLower(input.Email),
		Phone:       input.Phone,
		Password:    hashed,
		Role:        models.RoleGuest,
		Gender:      input.Gender,
		Nationality: input.Nationality,
	}

	if err := storage.DB.Create(&user).Error; err != nil {
		if uniqueViolation(err) {
			utils.FieldError("email", "Email or phone already registered.", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(user)
}

func Login(ctx iris.Context) {
	var input LoginInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	errorMsg := "Invalid email or password."
	var user models.User
	if err := storage.DB.Where("email = ?", strings.ToLower(input.Email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	tokenPair, err := utils.CreateTokenPair(user.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           user.ID,
		"role":         user.Role,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

func GetGuest(ctx iris.Context) {
	caller := currentCaller(ctx)
	id := ctx.Params().GetUintDefault("id", 0)

	if !authz.CanViewGuest(caller, id) {
		utils.CreateForbidden(authz.ReasonProfile, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	ctx.JSON(user)
}

type UpdateGuestInput struct {
	FirstName   *string `json:"firstName" validate:"omitempty,max=20"`
	LastName    *string `json:"lastName" validate:"omitempty,max=20"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	Password    *string `json:"password"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=Male Female"`
	Nationality *string `json:"nationality" validate:"omitempty,max=20"`
	Picture     *string `json:"picture"` // base64 data URL
}

// UpdateGuest copies only the allow-listed profile fields; role and
// affiliation never move through this endpoint.
func UpdateGuest(ctx iris.Context) {
	caller := currentCaller(ctx)
	id := ctx.Params().GetUintDefault("id", 0)

	if !authz.CanUpdateGuest(caller, id) {
		utils.CreateForbidden(authz.ReasonProfile, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	var input UpdateGuestInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Phone != nil {
		if err := utils.ValidatePhone(*input.Phone); err != nil {
			utils.FieldError("phone", err.Error(), ctx)
			return
		}
		user.Phone = *input.Phone
	}
	if input.Password != nil {
		if err := utils.ValidatePassword(*input.Password); err != nil {
			utils.FieldError("password", err.Error(), ctx)
			return
		}
		hashed, err := hashAndSaltPassword(*input.Password)
		if err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		user.Password = hashed
	}
	if input.Picture != nil {
		url, ok := uploadProfilePicture(*input.Picture, user.ID, ctx)
		if !ok {
			return
		}
		user.Picture = url
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Email != nil {
		user.Email = strings.ToLower(*input.Email)
	}
	if input.Gender != nil {
		user.Gender = *input.Gender
	}
	if input.Nationality != nil {
		user.Nationality = *input.Nationality
	}

	if err := storage.DB.Save(&user).Error; err != nil {
		if uniqueViolation(err) {
			utils.FieldError("email", "Email or phone already registered.", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(user)
}

func DeleteGuest(ctx iris.Context) {
	caller := currentCaller(ctx)
	id := ctx.Params().GetUintDefault("id", 0)

	if !authz.CanDeleteGuest(caller, id) {
		utils.CreateForbidden(authz.ReasonProfile, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

func ListGuests(ctx iris.Context) {
	caller := currentCaller(ctx)
	if !authz.CanListGuests(caller) {
		utils.CreateForbidden(authz.ReasonProfile, ctx)
		return
	}

	page, perPage, offset := paginate(ctx)

	var total int64
	storage.DB.Model(&models.User{}).Where("role = ?", models.RoleGuest).Count(&total)

	var users []models.User
	if err := storage.DB.Where("role = ?", models.RoleGuest).
		Order("first_name").Limit(perPage).Offset(offset).
		Find(&users).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, users, page, perPage, total)
}

type ChangeRoleInput struct {
	Role    models.Role `json:"role" validate:"required"`
	HotelID *uint       `json:"hotelID"`
}

// ChangeUserRole is admin-only account plumbing: promoting to Manager/
// Receptionist requires a hotel affiliation, moving to Guest/Owner/
// Admin clears the stored one.
func ChangeUserRole(ctx iris.Context) {
	caller := currentCaller(ctx)
	if !authz.CanManageAccounts(caller) {
		utils.CreateForbidden(authz.ReasonProfile, ctx)
		return
	}

	id := ctx.Params().GetUintDefault("id", 0)
	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	var input ChangeRoleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.HotelID != nil {
		var hotel models.Hotel
		if err := storage.DB.First(&hotel, *input.HotelID).Error; err != nil {
			utils.FieldError("hotelID", "The referenced hotel does not exist.", ctx)
			return
		}
	}

	if err := user.ApplyRoleChange(input.Role, input.HotelID); err != nil {
		if errors.Is(err, models.ErrMissingAffiliation) {
			utils.FieldError("hotelID", err.Error(), ctx)
			return
		}
		utils.FieldError("role", "Invalid role.", ctx)
		return
	}

	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(user)
}

func hashAndSaltPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// uploadProfilePicture validates and stores a base64 profile picture,
// writing the error response itself on failure.
func uploadProfilePicture(data string, userID uint, ctx iris.Context) (string, bool) {
	contentType, size, err := utils.ParsePictureDataURL(data)
	if err != nil {
		utils.FieldError("picture", err.Error(), ctx)
		return "", false
	}
	if err := utils.ValidatePicture(contentType, size); err != nil {
		utils.FieldError("picture", err.Error(), ctx)
		return "", false
	}

	url, err := storage.UploadBase64Image(data, storage.ProfileImagePublicID(userID))
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return "", false
	}
	return url, true
}
