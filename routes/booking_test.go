package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Menwuyelet/Group-34/models"
	"github.com/Menwuyelet/Group-34/storage"
	"github.com/Menwuyelet/Group-34/utils"
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB swaps storage.DB for an in-memory sqlite database scoped
// to the test. The shared-cache named DSN keeps gorm's connection pool
// on one database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Location{},
		&models.User{},
		&models.Hotel{},
		&models.Room{},
		&models.Booking{},
		&models.Review{},
		&models.City{},
		&models.LocalAttraction{},
		&models.HotelCity{},
		&models.Favorite{},
		&models.Event{},
		&models.Amenity{},
		&models.Image{},
	))

	previous := storage.DB
	storage.DB = db
	t.Cleanup(func() {
		storage.DB = previous
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// buildBookingApp wires the booking and hotel-deletion routes against
// the test database, with the real verifier and validator in front.
func buildBookingApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	auth := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	app.Post("/api/hotel/{hotelID:uint}/room/{roomID:uint}/booking", auth, CreateBooking)
	app.Delete("/api/hotel/{hotelID:uint}", auth, DeleteHotel)
	if err := app.Build(); err != nil {
		panic(err)
	}
	return app
}

func seedHotelWithRoom(t *testing.T, db *gorm.DB) (*models.Hotel, *models.Room) {
	t.Helper()

	hotel := models.Hotel{OwnerID: 1, Name: "Grand Palace"}
	require.NoError(t, db.Create(&hotel).Error)

	room := models.Room{
		HotelID:       hotel.ID,
		RoomType:      "double",
		RoomNo:        "101",
		PricePerNight: decimal.NewFromInt(100),
	}
	require.NoError(t, db.Create(&room).Error)
	return &hotel, &room
}

func day(t *testing.T, d string) time.Time {
	t.Helper()
	parsed, err := time.Parse(dateLayout, d)
	require.NoError(t, err)
	return parsed
}

func postBooking(app *iris.Application, hotelID, roomID uint, token, body string) *httptest.ResponseRecorder {
	path := fmt.Sprintf("/api/hotel/%d/room/%d/booking", hotelID, roomID)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

// A booking for children travelling with a registered adult account is
// valid: only the combined guest count has to be positive.
func TestCreateBookingAcceptsChildrenOnly(t *testing.T) {
	db := openTestDB(t)
	app := buildBookingApp()
	hotel, room := seedHotelWithRoom(t, db)

	token := signTestToken(t, utils.AccessToken{ID: 9, Role: models.RoleGuest})
	resp := postBooking(app, hotel.ID, room.ID, token,
		`{"startDate":"2030-05-01","endDate":"2030-05-03","numberOfAdults":0,"numberOfChildren":2}`)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var created models.Booking
	require.NoError(t, db.Where("room_id = ?", room.ID).First(&created).Error)
	assert.Equal(t, 0, created.NumberOfAdults)
	assert.Equal(t, 2, created.NumberOfChildren)
	assert.True(t, created.TotalPrice.Equal(decimal.NewFromInt(200)),
		"two nights at 100: got %s", created.TotalPrice)
}

func TestCreateBookingRejectsZeroGuests(t *testing.T) {
	db := openTestDB(t)
	app := buildBookingApp()
	hotel, room := seedHotelWithRoom(t, db)

	token := signTestToken(t, utils.AccessToken{ID: 9, Role: models.RoleGuest})
	resp := postBooking(app, hotel.ID, room.ID, token,
		`{"startDate":"2030-05-01","endDate":"2030-05-03","numberOfAdults":0,"numberOfChildren":0}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "numberOfAdults")
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	db := openTestDB(t)
	app := buildBookingApp()
	hotel, room := seedHotelWithRoom(t, db)

	userID := uint(4)
	existing := models.Booking{
		UserID:         &userID,
		HotelID:        hotel.ID,
		RoomID:         room.ID,
		StartDate:      day(t, "2030-05-01"),
		EndDate:        day(t, "2030-05-05"),
		NumberOfAdults: 2,
		TotalPrice:     decimal.NewFromInt(400),
		BookingSource:  models.SourceOnline,
		Status:         models.BookingConfirmed,
		Payment:        models.PaymentPending,
		PaymentMethod:  models.PayNone,
	}
	require.NoError(t, db.Create(&existing).Error)

	token := signTestToken(t, utils.AccessToken{ID: 9, Role: models.RoleGuest})

	resp := postBooking(app, hotel.ID, room.ID, token,
		`{"startDate":"2030-05-03","endDate":"2030-05-07","numberOfAdults":1}`)
	require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), "already booked")

	// Checkout day equals checkin day; back-to-back stays are fine.
	resp = postBooking(app, hotel.ID, room.ID, token,
		`{"startDate":"2030-05-05","endDate":"2030-05-07","numberOfAdults":1}`)
	assert.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
}

func TestCreateBookingIgnoresCancelledOverlap(t *testing.T) {
	db := openTestDB(t)
	app := buildBookingApp()
	hotel, room := seedHotelWithRoom(t, db)

	userID := uint(4)
	cancelled := models.Booking{
		UserID:         &userID,
		HotelID:        hotel.ID,
		RoomID:         room.ID,
		StartDate:      day(t, "2030-05-01"),
		EndDate:        day(t, "2030-05-05"),
		NumberOfAdults: 2,
		TotalPrice:     decimal.NewFromInt(400),
		BookingSource:  models.SourceOnline,
		Status:         models.BookingCancelled,
		Payment:        models.PaymentPending,
		PaymentMethod:  models.PayNone,
	}
	require.NoError(t, db.Create(&cancelled).Error)

	token := signTestToken(t, utils.AccessToken{ID: 9, Role: models.RoleGuest})
	resp := postBooking(app, hotel.ID, room.ID, token,
		`{"startDate":"2030-05-02","endDate":"2030-05-04","numberOfAdults":1}`)
	assert.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
}

func TestDeleteHotelBlockedByActiveBookingsThenCascades(t *testing.T) {
	db := openTestDB(t)
	app := buildBookingApp()
	hotel, room := seedHotelWithRoom(t, db)

	userID := uint(4)
	booking := models.Booking{
		UserID:         &userID,
		HotelID:        hotel.ID,
		RoomID:         room.ID,
		StartDate:      day(t, "2030-05-01"),
		EndDate:        day(t, "2030-05-05"),
		NumberOfAdults: 2,
		TotalPrice:     decimal.NewFromInt(400),
		BookingSource:  models.SourceOnline,
		Status:         models.BookingCheckedIn,
		Payment:        models.PaymentPending,
		PaymentMethod:  models.PayNone,
	}
	require.NoError(t, db.Create(&booking).Error)
	require.NoError(t, db.Create(&models.Review{
		UserID: userID, HotelID: hotel.ID,
		Rating: decimal.NewFromInt(4), Content: "fine stay",
	}).Error)

	admin := signTestToken(t, utils.AccessToken{ID: 1, Role: models.RoleAdmin})
	path := fmt.Sprintf("/api/hotel/%d", hotel.ID)

	resp := doRequest(app, http.MethodDelete, path, admin)
	require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), "active bookings")

	// A finished stay no longer holds the room and goes with the hotel.
	require.NoError(t, db.Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		Update("status", models.BookingCompleted).Error)

	resp = doRequest(app, http.MethodDelete, path, admin)
	require.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())

	for table, model := range map[string]interface{}{
		"bookings": &models.Booking{},
		"reviews":  &models.Review{},
		"rooms":    &models.Room{},
		"hotels":   &models.Hotel{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count, "expected no %s rows after deletion", table)
	}
}
