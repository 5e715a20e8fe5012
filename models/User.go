package models

import (
	"errors"

	"gorm.io/gorm"
)

// Role is the closed set of account roles. Roles are compared by
// identity, never by case-folded string.
type Role string

const (
	RoleGuest        Role = "Guest"
	RoleManager      Role = "Manager"
	RoleReceptionist Role = "Receptionist"
	RoleOwner        Role = "Owner"
	RoleAdmin        Role = "Admin"
)

// ErrMissingAffiliation is returned when a role that requires a hotel
// affiliation is assigned without one.
var ErrMissingAffiliation = errors.New("hotel affiliation is required for this role")

var allRoles = []Role{RoleGuest, RoleManager, RoleReceptionist, RoleOwner, RoleAdmin}

func ValidRole(r Role) bool {
	for _, role := range allRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsHotelStaff reports whether the role works the front or back office
// of a specific hotel.
func (r Role) IsHotelStaff() bool {
	return r == RoleManager || r == RoleReceptionist
}

type User struct {
	gorm.Model
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email" gorm:"uniqueIndex;not null"`
	Phone       string `json:"phone" gorm:"uniqueIndex"`
	Password    string `json:"-"`
	Role        Role   `json:"role" gorm:"type:varchar(20);default:'Guest';index"`
	Picture     string `json:"picture"`
	Gender      string `json:"gender" gorm:"type:varchar(10)"` // Male, Female
	Nationality string `json:"nationality"`
	// HotelID is the stored affiliation for Manager/Receptionist
	// accounts. Owners are affiliated through Hotel.OwnerID instead.
	HotelID  *uint  `json:"hotelID" gorm:"index"`
	Hotel    *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
	IsActive *bool  `json:"isActive" gorm:"default:true"`
}

// ApplyRoleChange moves the user to a new role while keeping the
// role/affiliation coupling consistent: Manager and Receptionist must
// carry a hotel, everyone else must not.
func (u *User) ApplyRoleChange(role Role, hotelID *uint) error {
	if !ValidRole(role) {
		return errors.New("invalid role")
	}

	if role.IsHotelStaff() {
		if hotelID == nil {
			hotelID = u.HotelID
		}
		if hotelID == nil {
			return ErrMissingAffiliation
		}
		u.Role = role
		u.HotelID = hotelID
		return nil
	}

	u.Role = role
	u.HotelID = nil
	return nil
}
