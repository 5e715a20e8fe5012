package authz

import "github.com/Menwuyelet/Group-34/models"

// Caller-visible denial reasons, fixed per resource family.
const (
	ReasonProfile = "You do not have permission to view this profile."
	ReasonHotel   = "You are not allowed to access this hotel data."
	ReasonCity    = "You are not allowed to manage destination content."
	ReasonReview  = "You are not allowed to modify this review."
	ReasonBooking = "You are not allowed to access this booking."
)

// Guest accounts. Creation is open (self sign-up); everything else is
// the account holder or an admin.

func CanViewGuest(c Caller, userID uint) bool   { return IsAdmin(c) || IsSelf(c, userID) }
func CanUpdateGuest(c Caller, userID uint) bool { return IsAdmin(c) || IsSelf(c, userID) }
func CanDeleteGuest(c Caller, userID uint) bool { return IsAdmin(c) || IsSelf(c, userID) }
func CanListGuests(c Caller) bool               { return IsAdmin(c) }

// Owner and Admin accounts are provisioned by admins only.
func CanManageAccounts(c Caller) bool { return IsAdmin(c) }

// Staff (Manager/Receptionist) accounts under a hotel.
func CanManageStaff(c Caller, h HotelRef) bool {
	return ActsForHotel(c, h, models.RoleOwner, models.RoleManager)
}

// Hotels.
func CanCreateHotel(c Caller) bool { return IsAdmin(c) }
func CanUpdateHotel(c Caller) bool { return IsAdmin(c) }
func CanDeleteHotel(c Caller) bool { return IsAdmin(c) }

// Rooms.
func CanCreateRoom(c Caller, h HotelRef) bool {
	return ActsForHotel(c, h, models.RoleOwner, models.RoleManager)
}

func CanUpdateRoom(c Caller, h HotelRef) bool {
	return ActsForHotel(c, h, models.RoleOwner, models.RoleManager, models.RoleReceptionist)
}

func CanDeleteRoom(c Caller, h HotelRef) bool {
	return ActsForHotel(c, h, models.RoleOwner, models.RoleManager)
}

// Events, amenities, room amenities and hotel-scoped images share one
// gate: the hotel's owner or manager.
func CanManageHotelContent(c Caller, h HotelRef) bool {
	return ActsForHotel(c, h, models.RoleOwner, models.RoleManager)
}

// Destination content (cities, attractions, their images).
func CanManageCityContent(c Caller) bool { return IsAdmin(c) }

// Hotel-city links.
func CanManageHotelCity(c Caller, h HotelRef) bool {
	return IsAdmin(c) || ActsForHotel(c, h, models.RoleOwner, models.RoleManager)
}

// Reviews.
func CanCreateReview(c Caller) bool { return !c.Anonymous() }

func CanEditReview(c Caller, authorID uint) bool {
	return IsAdmin(c) || IsSelf(c, authorID)
}

// Bookings. Any authenticated user may book online; receptionists of
// the hotel record in-person bookings. Reads and updates are open to
// the author, admins, and the hotel's staff (in-person bookings have
// no author to fall back to).
func CanCreateBooking(c Caller) bool { return !c.Anonymous() }

func CanCreateInPersonBooking(c Caller, h HotelRef) bool {
	return ActsForHotel(c, h, models.RoleReceptionist)
}

func CanAccessBooking(c Caller, b BookingRef) bool {
	if IsAdmin(c) {
		return true
	}
	if b.UserID != nil && IsSelf(c, *b.UserID) {
		return true
	}
	return ActsForHotel(c, b.Hotel, models.RoleOwner, models.RoleManager, models.RoleReceptionist)
}

// Favorites.
func CanAccessFavorite(c Caller, ownerID uint) bool {
	return IsAdmin(c) || IsSelf(c, ownerID)
}
