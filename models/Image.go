package models

import "gorm.io/gorm"

// ImageOwner is the closed set of entities an image can attach to.
// The owning reference is the (OwnerType, OwnerID) pair; parsing the
// tag through ParseImageOwner keeps stray strings out of the column.
type ImageOwner string

const (
	ImageOfHotel      ImageOwner = "Hotel"
	ImageOfRoom       ImageOwner = "Room"
	ImageOfEvent      ImageOwner = "Event"
	ImageOfAmenity    ImageOwner = "Amenity"
	ImageOfCity       ImageOwner = "City"
	ImageOfAttraction ImageOwner = "Attraction"
)

func ParseImageOwner(s string) (ImageOwner, bool) {
	switch ImageOwner(s) {
	case ImageOfHotel, ImageOfRoom, ImageOfEvent, ImageOfAmenity, ImageOfCity, ImageOfAttraction:
		return ImageOwner(s), true
	}
	return "", false
}

// HotelScoped reports whether the owner type lives under a hotel (as
// opposed to under a city).
func (o ImageOwner) HotelScoped() bool {
	switch o {
	case ImageOfHotel, ImageOfRoom, ImageOfEvent, ImageOfAmenity:
		return true
	}
	return false
}

type Image struct {
	gorm.Model
	URL       string     `json:"url" gorm:"not null"`
	OwnerType ImageOwner `json:"ownerType" gorm:"type:varchar(16);not null;index:idx_image_owner"`
	OwnerID   uint       `json:"ownerID" gorm:"not null;index:idx_image_owner"`
	// Scoping columns so hotel/city galleries can be listed without
	// touching the owner rows.
	HotelID *uint `json:"hotelID" gorm:"index"`
	CityID  *uint `json:"cityID" gorm:"index"`
}
