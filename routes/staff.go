package routes

import (
	"errors"
	"strings"

	"github.com/Menwuyelet/Group-34/authz"
	"github.com/Menwuyelet/Group-34/models"
	"github.com/Menwuyelet/Group-34/storage"
	"github.com/Menwuyelet/Group-34/utils"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type CreateStaffInput struct {
	FirstName   string      `json:"firstName" validate:"required,max=20"`
	LastName    string      `json:"lastName" validate:"required,max=20"`
	Email       string      `json:"email" validate:"required,email"`
	Phone       string      `json:"phone" validate:"required"`
	Password    string      `json:"password" validate:"required"`
	Role        models.Role `json:"role" validate:"required,oneof=Manager Receptionist"`
	Gender      string      `json:"gender" validate:"omitempty,oneof=Male Female"`
	Nationality string      `json:"nationality" validate:"omitempty,max=20"`
}

// CreateStaff provisions a Manager or Receptionist account bound to
// the hotel in the path. The affiliation comes from the URL, never
// from the payload.
func CreateStaff(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanManageStaff(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	var input CreateStaffInput
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

	staff := models.User{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       strings.ToLower(input.Email),
		Phone:       input.Phone,
		Password:    hashed,
		Role:        input.Role,
		Gender:      input.Gender,
		Nationality: input.Nationality,
		HotelID:     &hotel.ID,
	}

	if err := storage.DB.Create(&staff).Error; err != nil {
		if uniqueViolation(err) {
			utils.FieldError("email", "Email or phone already registered.", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(staff)
}

func ListStaff(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanManageStaff(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	page, perPage, offset := paginate(ctx)
	staffRoles := []models.Role{models.RoleManager, models.RoleReceptionist}

	var total int64
	storage.DB.Model(&models.User{}).
		Where("hotel_id = ? AND role IN ?", hotel.ID, staffRoles).Count(&total)

	var staff []models.User
	if err := storage.DB.
		Where("hotel_id = ? AND role IN ?", hotel.ID, staffRoles).
		Order("first_name").Limit(perPage).Offset(offset).
		Find(&staff).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, staff, page, perPage, total)
}

// findStaff loads a staff member scoped to the hotel; anything outside
// the hotel's staff set is a 404.
func findStaff(hotel *models.Hotel, ctx iris.Context) (*models.User, bool) {
	id := ctx.Params().GetUintDefault("staffID", 0)
	var staff models.User
	err := storage.DB.
		Where("id = ? AND hotel_id = ? AND role IN ?", id, hotel.ID,
			[]models.Role{models.RoleManager, models.RoleReceptionist}).
		First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return nil, false
	}
	return &staff, true
}

func GetStaff(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanManageStaff(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	staff, ok := findStaff(hotel, ctx)
	if !ok {
		return
	}
	ctx.JSON(staff)
}

type UpdateStaffInput struct {
	FirstName *string      `json:"firstName" validate:"omitempty,max=20"`
	LastName  *string      `json:"lastName" validate:"omitempty,max=20"`
	Email     *string      `json:"email" validate:"omitempty,email"`
	Phone     *string      `json:"phone"`
	Password  *string      `json:"password"`
	Role      *models.Role `json:"role" validate:"omitempty,oneof=Manager Receptionist"`
}

func UpdateStaff(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanManageStaff(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	staff, ok := findStaff(hotel, ctx)
	if !ok {
		return
	}

	var input UpdateStaffInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Phone != nil {
		if err := utils.ValidatePhone(*input.Phone); err != nil {
			utils.FieldError("phone", err.Error(), ctx)
			return
		}
		staff.Phone = *input.Phone
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
		staff.Password = hashed
	}
	if input.Role != nil {
		// Staff endpoints only switch between the two staff roles; the
		// affiliation stays on this hotel.
		if err := staff.ApplyRoleChange(*input.Role, &hotel.ID); err != nil {
			utils.FieldError("role", err.Error(), ctx)
			return
		}
	}
	if input.FirstName != nil {
		staff.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		staff.LastName = *input.LastName
	}
	if input.Email != nil {
		staff.Email = strings.ToLower(*input.Email)
	}

	if err := storage.DB.Save(staff).Error; err != nil {
		if uniqueViolation(err) {
			utils.FieldError("email", "Email or phone already registered.", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(staff)
}

func DeleteStaff(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanManageStaff(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonHotel, ctx)
		return
	}

	staff, ok := findStaff(hotel, ctx)
	if !ok {
		return
	}

	if err := storage.DB.Delete(staff).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}
