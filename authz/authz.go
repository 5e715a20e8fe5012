// Package authz decides whether a caller may perform an action on a
// resource. Every check is a pure function over an explicit Caller and
// resource reference, so the rules can be tested without a request or
// a database in sight. Handlers load the target row (they need it for
// 404 handling anyway) and hand its reference here.
package authz

import (
	"github.com/Menwuyelet/Group-34/models"
)

// Caller is the identity resolved from the access token. A zero ID
// means the request is anonymous.
type Caller struct {
	ID   uint
	Role models.Role
	// HotelID is the stored staff affiliation carried in the token for
	// Manager/Receptionist accounts. Owners have no stored affiliation;
	// their hotels are matched through HotelRef.OwnerID.
	HotelID uint
}

// Anonymous reports whether no authenticated identity is attached.
func (c Caller) Anonymous() bool { return c.ID == 0 }

// HotelRef identifies a hotel as an authorization target.
type HotelRef struct {
	ID      uint
	OwnerID uint
}

// BookingRef identifies a booking as an authorization target.
type BookingRef struct {
	UserID *uint // author, nil for in-person bookings
	Hotel  HotelRef
}

func IsRole(c Caller, r models.Role) bool {
	return !c.Anonymous() && c.Role == r
}

func IsAdmin(c Caller) bool { return IsRole(c, models.RoleAdmin) }

func IsGuest(c Caller) bool { return IsRole(c, models.RoleGuest) }

func IsSelf(c Caller, ownerID uint) bool {
	return !c.Anonymous() && c.ID == ownerID
}

// ActsForHotel is the single affiliation check used by every gate: an
// Owner acts for the hotels they own, Manager/Receptionist act for the
// hotel stored on their account. Only the listed roles qualify.
func ActsForHotel(c Caller, ref HotelRef, roles ...models.Role) bool {
	if c.Anonymous() {
		return false
	}
	for _, role := range roles {
		if c.Role != role {
			continue
		}
		switch role {
		case models.RoleOwner:
			if c.ID == ref.OwnerID {
				return true
			}
		case models.RoleManager, models.RoleReceptionist:
			if c.HotelID != 0 && c.HotelID == ref.ID {
				return true
			}
		}
	}
	return false
}
