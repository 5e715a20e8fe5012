package models

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// BookingStatus values. Transitions happen only through explicit
// update calls, there is no background reconciliation.
type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCheckedIn BookingStatus = "CheckedIn"
	BookingCancelled BookingStatus = "Cancelled"
	BookingCompleted BookingStatus = "Completed"
)

func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

var activeBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCheckedIn}

// Active reports whether the booking still occupies its room.
func (s BookingStatus) Active() bool {
	return slices.Contains(activeBookingStatuses, s)
}

// ActiveBookingStatuses is the status set that blocks a room's dates
// and a hotel's deletion.
func ActiveBookingStatuses() []BookingStatus {
	return activeBookingStatuses
}

type BookingSource string

const (
	SourceOnline   BookingSource = "Online"
	SourceInPerson BookingSource = "In person"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
)

type PaymentMethod string

const (
	PayOnline PaymentMethod = "Online"
	PayCash   PaymentMethod = "Cash"
	PayCard   PaymentMethod = "Card"
	PayNone   PaymentMethod = "None"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PayOnline, PayCash, PayCard, PayNone:
		return true
	}
	return false
}

// Booking reserves a Room for a date range. Online bookings reference
// the guest's User account; in-person bookings carry the walk-in
// guest's identity fields and the receptionist who recorded them.
type Booking struct {
	gorm.Model
	UserID         *uint `json:"userID" gorm:"index"`
	User           *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ReceptionistID *uint `json:"receptionistID"`

	HotelID uint   `json:"hotelID" gorm:"not null;index"`
	Hotel   *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
	RoomID  uint   `json:"roomID" gorm:"not null;index"`
	Room    *Room  `json:"room,omitempty" gorm:"foreignKey:RoomID"`

	GuestName        string `json:"guestName" gorm:"type:varchar(25)"`
	GuestPhone       string `json:"guestPhone" gorm:"type:varchar(15)"`
	GuestNationality string `json:"guestNationality" gorm:"type:varchar(15)"`
	GuestGender      string `json:"guestGender" gorm:"type:varchar(10)"`
	GuestIDImage     string `json:"guestIDImage"`
	Description      string `json:"description" gorm:"type:text"`

	NumberOfAdults   int       `json:"numberOfAdults" gorm:"not null"`
	NumberOfChildren int       `json:"numberOfChildren" gorm:"default:0"`
	StartDate        time.Time `json:"startDate" gorm:"type:date;not null"`
	EndDate          time.Time `json:"endDate" gorm:"type:date;not null"`

	TotalPrice    decimal.Decimal `json:"totalPrice" gorm:"type:decimal(10,2);not null"`
	Discount      decimal.Decimal `json:"discount" gorm:"type:decimal(5,1);default:0"`
	BookingSource BookingSource   `json:"bookingSource" gorm:"type:varchar(10);default:'Online'"`
	Status        BookingStatus   `json:"status" gorm:"type:varchar(10);default:'Pending';index"`
	Payment       PaymentStatus   `json:"payment" gorm:"type:varchar(10);default:'Pending'"`
	PaymentMethod PaymentMethod   `json:"paymentMethod" gorm:"type:varchar(10);default:'None'"`
}
