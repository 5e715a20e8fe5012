package models

import "gorm.io/gorm"

// AmenityOwner tags whether an amenity belongs to the hotel itself or
// to one of its rooms.
type AmenityOwner string

const (
	AmenityOfHotel AmenityOwner = "Hotel"
	AmenityOfRoom  AmenityOwner = "Room"
)

type Amenity struct {
	gorm.Model
	HotelID     uint         `json:"hotelID" gorm:"not null;index"`
	Hotel       *Hotel       `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
	OwnerType   AmenityOwner `json:"ownerType" gorm:"type:varchar(8);not null;index"`
	RoomID      *uint        `json:"roomID" gorm:"index"` // set only for room amenities
	Name        string       `json:"name" gorm:"type:varchar(30);not null"`
	Description string       `json:"description" gorm:"type:text"`
}
