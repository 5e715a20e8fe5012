package authz

import (
	"testing"

	"github.com/Menwuyelet/Group-34/models"
	"github.com/stretchr/testify/assert"
)

var (
	anon         = Caller{}
	admin        = Caller{ID: 1, Role: models.RoleAdmin}
	guest        = Caller{ID: 2, Role: models.RoleGuest}
	otherGuest   = Caller{ID: 3, Role: models.RoleGuest}
	owner        = Caller{ID: 4, Role: models.RoleOwner}
	manager      = Caller{ID: 5, Role: models.RoleManager, HotelID: 10}
	receptionist = Caller{ID: 6, Role: models.RoleReceptionist, HotelID: 10}

	hotel      = HotelRef{ID: 10, OwnerID: 4}
	otherHotel = HotelRef{ID: 11, OwnerID: 99}
)

func TestGuestAccountGates(t *testing.T) {
	// Self or admin, nobody else.
	assert.True(t, CanViewGuest(guest, guest.ID))
	assert.True(t, CanUpdateGuest(guest, guest.ID))
	assert.True(t, CanDeleteGuest(guest, guest.ID))
	assert.True(t, CanViewGuest(admin, guest.ID))

	assert.False(t, CanViewGuest(otherGuest, guest.ID))
	assert.False(t, CanUpdateGuest(otherGuest, guest.ID))
	assert.False(t, CanViewGuest(anon, guest.ID))
	assert.False(t, CanUpdateGuest(manager, guest.ID))

	assert.True(t, CanListGuests(admin))
	assert.False(t, CanListGuests(guest))
	assert.False(t, CanListGuests(owner))
}

func TestOwnerAndAdminAccountsAreAdminOnly(t *testing.T) {
	assert.True(t, CanManageAccounts(admin))
	for _, c := range []Caller{anon, guest, owner, manager, receptionist} {
		assert.False(t, CanManageAccounts(c))
	}
}

func TestStaffGates(t *testing.T) {
	assert.True(t, CanManageStaff(owner, hotel))
	assert.True(t, CanManageStaff(manager, hotel))
	assert.False(t, CanManageStaff(receptionist, hotel))
	assert.False(t, CanManageStaff(guest, hotel))
	assert.False(t, CanManageStaff(anon, hotel))

	// Affiliation mismatch.
	assert.False(t, CanManageStaff(owner, otherHotel))
	assert.False(t, CanManageStaff(manager, otherHotel))
}

func TestHotelGatesAreAdminOnly(t *testing.T) {
	assert.True(t, CanCreateHotel(admin))
	assert.True(t, CanUpdateHotel(admin))
	assert.True(t, CanDeleteHotel(admin))
	for _, c := range []Caller{anon, guest, owner, manager, receptionist} {
		assert.False(t, CanCreateHotel(c))
		assert.False(t, CanUpdateHotel(c))
		assert.False(t, CanDeleteHotel(c))
	}
}

func TestRoomGates(t *testing.T) {
	assert.True(t, CanCreateRoom(owner, hotel))
	assert.True(t, CanCreateRoom(manager, hotel))
	assert.False(t, CanCreateRoom(receptionist, hotel))
	assert.False(t, CanCreateRoom(guest, hotel))
	assert.False(t, CanCreateRoom(admin, hotel)) // admins manage hotels, not rooms

	// Receptionists may update but not create or delete.
	assert.True(t, CanUpdateRoom(receptionist, hotel))
	assert.True(t, CanUpdateRoom(owner, hotel))
	assert.True(t, CanUpdateRoom(manager, hotel))
	assert.False(t, CanUpdateRoom(receptionist, otherHotel))

	assert.True(t, CanDeleteRoom(owner, hotel))
	assert.False(t, CanDeleteRoom(receptionist, hotel))
}

func TestManagerOfOtherHotelCannotCreateRoom(t *testing.T) {
	managerH1 := Caller{ID: 20, Role: models.RoleManager, HotelID: 10}
	assert.True(t, CanCreateRoom(managerH1, hotel))
	assert.False(t, CanCreateRoom(managerH1, otherHotel))
}

func TestHotelContentGates(t *testing.T) {
	assert.True(t, CanManageHotelContent(owner, hotel))
	assert.True(t, CanManageHotelContent(manager, hotel))
	assert.False(t, CanManageHotelContent(receptionist, hotel))
	assert.False(t, CanManageHotelContent(manager, otherHotel))
	assert.False(t, CanManageHotelContent(admin, hotel))
}

func TestCityContentGatesAreAdminOnly(t *testing.T) {
	assert.True(t, CanManageCityContent(admin))
	for _, c := range []Caller{anon, guest, owner, manager, receptionist} {
		assert.False(t, CanManageCityContent(c))
	}
}

func TestHotelCityGates(t *testing.T) {
	assert.True(t, CanManageHotelCity(admin, hotel))
	assert.True(t, CanManageHotelCity(owner, hotel))
	assert.True(t, CanManageHotelCity(manager, hotel))
	assert.False(t, CanManageHotelCity(receptionist, hotel))
	assert.False(t, CanManageHotelCity(owner, otherHotel))
}

func TestReviewGates(t *testing.T) {
	assert.True(t, CanCreateReview(guest))
	assert.True(t, CanCreateReview(receptionist))
	assert.False(t, CanCreateReview(anon))

	// A guest who is not the author may not touch the review.
	assert.True(t, CanEditReview(guest, guest.ID))
	assert.True(t, CanEditReview(admin, guest.ID))
	assert.False(t, CanEditReview(otherGuest, guest.ID))
	assert.False(t, CanEditReview(anon, guest.ID))
}

func TestBookingGates(t *testing.T) {
	assert.True(t, CanCreateBooking(guest))
	assert.False(t, CanCreateBooking(anon))

	assert.True(t, CanCreateInPersonBooking(receptionist, hotel))
	assert.False(t, CanCreateInPersonBooking(receptionist, otherHotel))
	assert.False(t, CanCreateInPersonBooking(manager, hotel))
	assert.False(t, CanCreateInPersonBooking(guest, hotel))

	authorID := guest.ID
	online := BookingRef{UserID: &authorID, Hotel: hotel}
	assert.True(t, CanAccessBooking(guest, online))
	assert.True(t, CanAccessBooking(admin, online))
	assert.False(t, CanAccessBooking(otherGuest, online))
	assert.False(t, CanAccessBooking(anon, online))

	// In-person bookings have no author; hotel staff handle them.
	walkIn := BookingRef{Hotel: hotel}
	assert.True(t, CanAccessBooking(receptionist, walkIn))
	assert.True(t, CanAccessBooking(manager, walkIn))
	assert.True(t, CanAccessBooking(owner, walkIn))
	assert.False(t, CanAccessBooking(guest, walkIn))
	assert.False(t, CanAccessBooking(Caller{ID: 30, Role: models.RoleReceptionist, HotelID: 11}, walkIn))
}

func TestFavoriteGates(t *testing.T) {
	assert.True(t, CanAccessFavorite(guest, guest.ID))
	assert.True(t, CanAccessFavorite(admin, guest.ID))
	assert.False(t, CanAccessFavorite(otherGuest, guest.ID))
}

func TestActsForHotelIgnoresStoredAffiliationForOwners(t *testing.T) {
	// An owner's token may not carry a hotel; ownership comes from the
	// hotel row itself.
	assert.True(t, ActsForHotel(owner, hotel, models.RoleOwner))
	assert.False(t, ActsForHotel(owner, otherHotel, models.RoleOwner))

	// A stored affiliation never grants owner rights.
	impostor := Caller{ID: 50, Role: models.RoleManager, HotelID: 10}
	assert.False(t, ActsForHotel(impostor, hotel, models.RoleOwner))
}

func TestAnonymousFailsEveryGate(t *testing.T) {
	assert.False(t, ActsForHotel(anon, hotel, models.RoleOwner, models.RoleManager, models.RoleReceptionist))
	assert.False(t, IsAdmin(anon))
	assert.False(t, IsSelf(anon, 0))
}
