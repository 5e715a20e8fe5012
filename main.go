package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Menwuyelet/Group-34/routes"
	"github.com/Menwuyelet/Group-34/storage"
	"github.com/Menwuyelet/Group-34/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()

	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	auth := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.RegisterGuest)
		user.Post("/login", routes.Login)
		user.Get("/", auth, routes.ListGuests)
		user.Get("/{id:uint}", auth, routes.GetGuest)
		user.Patch("/{id:uint}", auth, routes.UpdateGuest)
		user.Delete("/{id:uint}", auth, routes.DeleteGuest)
		user.Patch("/{id:uint}/role", auth, routes.ChangeUserRole)
	}

	hotel := app.Party("/api/hotel")
	{
		hotel.Post("/", auth, routes.CreateHotel)
		hotel.Get("/", routes.ListHotels)
		hotel.Get("/{hotelID:uint}", routes.GetHotel)
		hotel.Patch("/{hotelID:uint}", auth, routes.UpdateHotel)
		hotel.Delete("/{hotelID:uint}", auth, routes.DeleteHotel)

		hotel.Post("/{hotelID:uint}/staff", auth, routes.CreateStaff)
		hotel.Get("/{hotelID:uint}/staff", auth, routes.ListStaff)
		hotel.Get("/{hotelID:uint}/staff/{staffID:uint}", auth, routes.GetStaff)
		hotel.Patch("/{hotelID:uint}/staff/{staffID:uint}", auth, routes.UpdateStaff)
		hotel.Delete("/{hotelID:uint}/staff/{staffID:uint}", auth, routes.DeleteStaff)

		hotel.Post("/{hotelID:uint}/room", auth, routes.CreateRoom)
		hotel.Get("/{hotelID:uint}/room", routes.ListRooms)
		hotel.Get("/{hotelID:uint}/room/{roomID:uint}", routes.GetRoom)
		hotel.Patch("/{hotelID:uint}/room/{roomID:uint}", auth, routes.UpdateRoom)
		hotel.Delete("/{hotelID:uint}/room/{roomID:uint}", auth, routes.DeleteRoom)

		hotel.Post("/{hotelID:uint}/room/{roomID:uint}/booking", auth, routes.CreateBooking)
		hotel.Post("/{hotelID:uint}/room/{roomID:uint}/booking/in-person", auth, routes.CreateInPersonBooking)
		hotel.Get("/{hotelID:uint}/booking", auth, routes.ListHotelBookings)

		hotel.Post("/{hotelID:uint}/review", auth, routes.CreateReview)
		hotel.Get("/{hotelID:uint}/review", routes.ListHotelReviews)

		hotel.Post("/{hotelID:uint}/event", auth, routes.CreateEvent)
		hotel.Get("/{hotelID:uint}/event", routes.ListEvents)
		hotel.Get("/{hotelID:uint}/event/{eventID:uint}", routes.GetEvent)
		hotel.Patch("/{hotelID:uint}/event/{eventID:uint}", auth, routes.UpdateEvent)
		hotel.Delete("/{hotelID:uint}/event/{eventID:uint}", auth, routes.DeleteEvent)

		hotel.Post("/{hotelID:uint}/amenity", auth, routes.CreateAmenity)
		hotel.Get("/{hotelID:uint}/amenity", routes.ListAmenities)
		hotel.Get("/{hotelID:uint}/amenity/{amenityID:uint}", routes.GetAmenity)
		hotel.Patch("/{hotelID:uint}/amenity/{amenityID:uint}", auth, routes.UpdateAmenity)
		hotel.Delete("/{hotelID:uint}/amenity/{amenityID:uint}", auth, routes.DeleteAmenity)

		hotel.Post("/{hotelID:uint}/image", auth, routes.CreateHotelImage)
		hotel.Get("/{hotelID:uint}/image", routes.ListHotelImages)
		hotel.Patch("/{hotelID:uint}/image/{imageID:uint}", auth, routes.UpdateHotelImage)
		hotel.Delete("/{hotelID:uint}/image/{imageID:uint}", auth, routes.DeleteHotelImage)

		hotel.Post("/{hotelID:uint}/favorite", auth, routes.CreateFavorite)

		hotel.Get("/{hotelID:uint}/city", routes.ListHotelCities)
		hotel.Post("/{hotelID:uint}/city/{cityID:uint}", auth, routes.LinkHotelCity)
		hotel.Delete("/{hotelID:uint}/city/{cityID:uint}", auth, routes.UnlinkHotelCity)
	}

	booking := app.Party("/api/booking")
	{
		booking.Get("/", auth, routes.ListMyBookings)
		booking.Get("/{bookingID:uint}", auth, routes.GetBooking)
		booking.Patch("/{bookingID:uint}/status", auth, routes.UpdateBookingStatus)
		booking.Patch("/{bookingID:uint}/payment", auth, routes.UpdateBookingPayment)
	}

	review := app.Party("/api/review")
	{
		review.Get("/{reviewID:uint}", routes.GetReview)
		review.Patch("/{reviewID:uint}", auth, routes.UpdateReview)
		review.Delete("/{reviewID:uint}", auth, routes.DeleteReview)
	}

	city := app.Party("/api/city")
	{
		city.Post("/", auth, routes.CreateCity)
		city.Get("/", routes.ListCities)
		city.Get("/{cityID:uint}", routes.GetCity)
		city.Patch("/{cityID:uint}", auth, routes.UpdateCity)
		city.Delete("/{cityID:uint}", auth, routes.DeleteCity)

		city.Get("/{cityID:uint}/hotel", routes.ListCityHotels)

		city.Post("/{cityID:uint}/attraction", auth, routes.CreateAttraction)
		city.Get("/{cityID:uint}/attraction", routes.ListAttractions)
		city.Get("/{cityID:uint}/attraction/{attractionID:uint}", routes.GetAttraction)
		city.Patch("/{cityID:uint}/attraction/{attractionID:uint}", auth, routes.UpdateAttraction)
		city.Delete("/{cityID:uint}/attraction/{attractionID:uint}", auth, routes.DeleteAttraction)

		city.Post("/{cityID:uint}/image", auth, routes.CreateCityImage)
		city.Get("/{cityID:uint}/image", routes.ListCityImages)
		city.Delete("/{cityID:uint}/image/{imageID:uint}", auth, routes.DeleteCityImage)
	}

	favorite := app.Party("/api/favorite")
	{
		favorite.Get("/", auth, routes.ListFavorites)
		favorite.Delete("/{favoriteID:uint}", auth, routes.DeleteFavorite)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
