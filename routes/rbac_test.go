package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Menwuyelet/Group-34/models"
	"github.com/Menwuyelet/Group-34/utils"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// buildTestApp wires the routes whose authorization decisions happen
// before any storage access, with the real JWT verifier in front.
func buildTestApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	auth := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	app.Post("/api/hotel", auth, CreateHotel)
	app.Get("/api/user", auth, ListGuests)
	app.Get("/api/user/{id:uint}", auth, GetGuest)
	app.Post("/api/hotel/{hotelID:uint}/room/{roomID:uint}/booking", auth, CreateBooking)
	if err := app.Build(); err != nil {
		panic(err)
	}
	return app
}

func signTestToken(t *testing.T, claims utils.AccessToken) string {
	t.Helper()
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, err := signer.Sign(claims)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return string(token)
}

func doRequest(app *iris.Application, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func TestCreateHotelRequiresToken(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(app, http.MethodPost, "/api/hotel", "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}
}

func TestCreateHotelForbiddenForNonAdmins(t *testing.T) {
	app := buildTestApp()

	for _, role := range []models.Role{models.RoleGuest, models.RoleOwner, models.RoleManager, models.RoleReceptionist} {
		token := signTestToken(t, utils.AccessToken{ID: 7, Role: role, HotelID: 1})
		resp := doRequest(app, http.MethodPost, "/api/hotel", token)
		if resp.Code != http.StatusForbidden {
			t.Fatalf("role %s: expected 403, got %d", role, resp.Code)
		}

		var body struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
			t.Fatalf("role %s: decode body: %v", role, err)
		}
		if body.Message != "You are not allowed to access this hotel data." {
			t.Fatalf("role %s: unexpected reason %q", role, body.Message)
		}
	}
}

func TestListGuestsAdminOnly(t *testing.T) {
	app := buildTestApp()

	token := signTestToken(t, utils.AccessToken{ID: 3, Role: models.RoleGuest})
	resp := doRequest(app, http.MethodGet, "/api/user", token)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for guest, got %d", resp.Code)
	}
}

func TestGetGuestDeniesOtherProfiles(t *testing.T) {
	app := buildTestApp()

	token := signTestToken(t, utils.AccessToken{ID: 1, Role: models.RoleGuest})
	resp := doRequest(app, http.MethodGet, "/api/user/2", token)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 viewing another profile, got %d", resp.Code)
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "You do not have permission to view this profile." {
		t.Fatalf("unexpected reason %q", body.Message)
	}
}

func TestCreateBookingRequiresToken(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(app, http.MethodPost, "/api/hotel/1/room/1/booking", "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}
}
