package routes

import (
	"errors"
	"time"

	"github.com/Menwuyelet/Group-34/authz"
	"github.com/Menwuyelet/Group-34/models"
	"github.com/Menwuyelet/Group-34/services"
	"github.com/Menwuyelet/Group-34/storage"
	"github.com/Menwuyelet/Group-34/utils"
	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Guest counts are allowed to be zero individually; the pricing rule
// rejects a booking where both are zero.
type CreateBookingInput struct {
	StartDate        string `json:"startDate" validate:"required"`
	EndDate          string `json:"endDate" validate:"required"`
	NumberOfAdults   int    `json:"numberOfAdults" validate:"min=0,max=50"`
	NumberOfChildren int    `json:"numberOfChildren" validate:"min=0,max=50"`
	Description      string `json:"description" validate:"omitempty,max=1000"`
}

type CreateInPersonBookingInput struct {
	StartDate        string  `json:"startDate" validate:"required"`
	EndDate          string  `json:"endDate" validate:"required"`
	NumberOfAdults   int     `json:"numberOfAdults" validate:"min=0,max=50"`
	NumberOfChildren int     `json:"numberOfChildren" validate:"min=0,max=50"`
	GuestName        string  `json:"guestName" validate:"required,max=25"`
	GuestPhone       string  `json:"guestPhone"`
	GuestNationality string  `json:"guestNationality" validate:"omitempty,max=15"`
	GuestGender      string  `json:"guestGender" validate:"omitempty,oneof=Male Female"`
	GuestIDImage     string  `json:"guestIDImage"` // base64 data URL
	Discount         float64 `json:"discount" validate:"min=0,max=100"`
	Description      string  `json:"description" validate:"omitempty,max=1000"`
}

func parseBookingDates(start, end string, ctx iris.Context) (time.Time, time.Time, bool) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		utils.FieldError("startDate", "Dates must be in YYYY-MM-DD format.", ctx)
		return time.Time{}, time.Time{}, false
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		utils.FieldError("endDate", "Dates must be in YYYY-MM-DD format.", ctx)
		return time.Time{}, time.Time{}, false
	}
	return startDate, endDate, true
}

func writePricingError(err error, ctx iris.Context) {
	switch {
	case errors.Is(err, services.ErrInvalidDateRange):
		utils.FieldError("endDate", "End date must be after start date.", ctx)
	case errors.Is(err, services.ErrInvalidGuestCount):
		utils.FieldError("numberOfAdults", "Enter a valid number of guests.", ctx)
	default:
		utils.CreateInternalServerError(ctx)
	}
}

// createBooking quotes the price and writes the row, rejecting date
// ranges that overlap an active booking of the same room. The overlap
// check and the insert share one transaction.
func createBooking(booking *models.Booking, room *models.Room, discount decimal.Decimal, ctx iris.Context) bool {
	total, err := services.QuoteTotal(booking.StartDate, booking.EndDate,
		room.PricePerNight, discount, booking.NumberOfAdults, booking.NumberOfChildren)
	if err != nil {
		writePricingError(err, ctx)
		return false
	}

	booking.TotalPrice = total
	booking.Discount = discount
	booking.Status = models.BookingPending
	booking.Payment = models.PaymentPending
	booking.PaymentMethod = models.PayNone

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		var existing []models.Booking
		if err := tx.Where("room_id = ? AND status IN ?",
			room.ID, models.ActiveBookingStatuses()).
			Find(&existing).Error; err != nil {
			return err
		}
		for _, other := range existing {
			if other.Status.Active() &&
				services.Overlaps(other.StartDate, other.EndDate, booking.StartDate, booking.EndDate) {
				return errRoomTaken
			}
		}
		return tx.Create(booking).Error
	})
	if txErr != nil {
		if errors.Is(txErr, errRoomTaken) {
			utils.FieldError("startDate", "The room is already booked for the selected dates.", ctx)
			return false
		}
		utils.CreateInternalServerError(ctx)
		return false
	}
	return true
}

var errRoomTaken = errors.New("room already booked for the selected dates")

// CreateBooking records an online booking authored by the calling
// user. Discounts are never caller-controlled on this path.
func CreateBooking(ctx iris.Context) {
	caller := currentCaller(ctx)
	if !authz.CanCreateBooking(caller) {
		utils.CreateUnauthorized(ctx)
		return
	}

	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}
	room, ok := findRoom(hotel, ctx)
	if !ok {
		return
	}

	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	startDate, endDate, ok := parseBookingDates(input.StartDate, input.EndDate, ctx)
	if !ok {
		return
	}

	userID := caller.ID
	booking := models.Booking{
		UserID:           &userID,
		HotelID:          hotel.ID,
		RoomID:           room.ID,
		StartDate:        startDate,
		EndDate:          endDate,
		NumberOfAdults:   input.NumberOfAdults,
		NumberOfChildren: input.NumberOfChildren,
		Description:      input.Description,
		BookingSource:    models.SourceOnline,
	}

	if !createBooking(&booking, room, decimal.Zero, ctx) {
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(booking)
}

// CreateInPersonBooking records a walk-in guest at the front desk.
// There is no User reference; the guest's identity lives on the
// booking row and the receptionist is recorded as the channel.
func CreateInPersonBooking(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	if !authz.CanCreateInPersonBooking(caller, hotelRef(hotel)) {
		utils.CreateForbidden(authz.ReasonBooking, ctx)
		return
	}

	room, ok := findRoom(hotel, ctx)
	if !ok {
		return
	}

	var input CreateInPersonBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.GuestPhone != "" {
		if err := utils.ValidatePhone(input.GuestPhone); err != nil {
			utils.FieldError("guestPhone", err.Error(), ctx)
			return
		}
	}

	startDate, endDate, ok := parseBookingDates(input.StartDate, input.EndDate, ctx)
	if !ok {
		return
	}

	receptionistID := caller.ID
	booking := models.Booking{
		ReceptionistID:   &receptionistID,
		HotelID:          hotel.ID,
		RoomID:           room.ID,
		StartDate:        startDate,
		EndDate:          endDate,
		NumberOfAdults:   input.NumberOfAdults,
		NumberOfChildren: input.NumberOfChildren,
		GuestName:        input.GuestName,
		GuestPhone:       input.GuestPhone,
		GuestNationality: input.GuestNationality,
		GuestGender:      input.GuestGender,
		Description:      input.Description,
		BookingSource:    models.SourceInPerson,
	}

	if input.GuestIDImage != "" {
		contentType, size, err := utils.ParsePictureDataURL(input.GuestIDImage)
		if err != nil {
			utils.FieldError("guestIDImage", err.Error(), ctx)
			return
		}
		if err := utils.ValidatePicture(contentType, size); err != nil {
			utils.FieldError("guestIDImage", err.Error(), ctx)
			return
		}
		url, err := storage.UploadBase64Image(input.GuestIDImage,
			storage.ImagePublicID(models.ImageOfHotel, hotel.Name, hotel.ID))
		if err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		booking.GuestIDImage = url
	}

	if !createBooking(&booking, room, decimal.NewFromFloat(input.Discount).Round(1), ctx) {
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(booking)
}

// findBooking loads the booking and checks access in one place. On
// denial the fixed booking reason is written (403), on a miss a 404.
func findBooking(ctx iris.Context) (*models.Booking, bool) {
	id := ctx.Params().GetUintDefault("bookingID", 0)

	var booking models.Booking
	if err := storage.DB.Preload("Hotel").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return nil, false
	}

	caller := currentCaller(ctx)
	ref := authz.BookingRef{UserID: booking.UserID}
	if booking.Hotel != nil {
		ref.Hotel = authz.HotelRef{ID: booking.Hotel.ID, OwnerID: booking.Hotel.OwnerID}
	}
	if !authz.CanAccessBooking(caller, ref) {
		utils.CreateForbidden(authz.ReasonBooking, ctx)
		return nil, false
	}
	return &booking, true
}

func GetBooking(ctx iris.Context) {
	booking, ok := findBooking(ctx)
	if !ok {
		return
	}
	if err := storage.DB.Preload("Room").First(booking, booking.ID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(booking)
}

// ListMyBookings returns the caller's own booking history.
func ListMyBookings(ctx iris.Context) {
	caller := currentCaller(ctx)
	if caller.Anonymous() {
		utils.CreateUnauthorized(ctx)
		return
	}

	page, perPage, offset := paginate(ctx)

	var total int64
	storage.DB.Model(&models.Booking{}).Where("user_id = ?", caller.ID).Count(&total)

	var bookings []models.Booking
	if err := storage.DB.Where("user_id = ?", caller.ID).
		Order("created_at DESC").Limit(perPage).Offset(offset).
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, bookings, page, perPage, total)
}

// ListHotelBookings is the hotel-side ledger, for staff and admins.
func ListHotelBookings(ctx iris.Context) {
	hotel, ok := findHotel(ctx)
	if !ok {
		return
	}

	caller := currentCaller(ctx)
	ref := authz.BookingRef{Hotel: hotelRef(hotel)}
	if !authz.CanAccessBooking(caller, ref) {
		utils.CreateForbidden(authz.ReasonBooking, ctx)
		return
	}

	page, perPage, offset := paginate(ctx)

	query := storage.DB.Model(&models.Booking{}).Where("hotel_id = ?", hotel.ID)
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var bookings []models.Booking
	if err := query.Order("start_date DESC").Limit(perPage).Offset(offset).
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, bookings, page, perPage, total)
}

type UpdateBookingStatusInput struct {
	Status models.BookingStatus `json:"status" validate:"required"`
}

// UpdateBookingStatus moves a booking between lifecycle states. The
// price is deliberately left alone here; it is fixed at creation.
func UpdateBookingStatus(ctx iris.Context) {
	booking, ok := findBooking(ctx)
	if !ok {
		return
	}

	var input UpdateBookingStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !models.ValidBookingStatus(input.Status) {
		utils.FieldError("status", "Unknown booking status.", ctx)
		return
	}

	booking.Status = input.Status
	if err := storage.DB.Save(booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(booking)
}

type UpdateBookingPaymentInput struct {
	Payment       models.PaymentStatus `json:"payment" validate:"required,oneof=Pending Completed"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" validate:"required"`
}

func UpdateBookingPayment(ctx iris.Context) {
	booking, ok := findBooking(ctx)
	if !ok {
		return
	}

	var input UpdateBookingPaymentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !models.ValidPaymentMethod(input.PaymentMethod) {
		utils.FieldError("paymentMethod", "Unknown payment method.", ctx)
		return
	}

	booking.Payment = input.Payment
	booking.PaymentMethod = input.PaymentMethod
	if err := storage.DB.Save(booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(booking)
}
