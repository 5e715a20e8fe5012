package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type City struct {
	gorm.Model
	Name        string    `json:"name" gorm:"type:varchar(15);not null;index"`
	Description string    `json:"description" gorm:"type:text;not null"`
	LocationID  *uint     `json:"locationID"`
	Location    *Location `json:"location,omitempty" gorm:"foreignKey:LocationID"`
}

type Accessibility string

const (
	AccessFree Accessibility = "Free"
	AccessPaid Accessibility = "Paid"
)

type LocalAttraction struct {
	gorm.Model
	Name          string         `json:"name" gorm:"type:varchar(20);not null;index"`
	Description   string         `json:"description" gorm:"type:text;not null"`
	Accessibility Accessibility  `json:"accessibility" gorm:"type:varchar(4);default:'Free';index"`
	Type          string         `json:"type" gorm:"type:varchar(20);not null;index"`
	Tags          datatypes.JSON `json:"tags"`
	LocationID    *uint          `json:"locationID"`
	Location      *Location      `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	CityID        uint           `json:"cityID" gorm:"not null;index"`
	City          *City          `json:"city,omitempty" gorm:"foreignKey:CityID"`
	Availability  *bool          `json:"availability" gorm:"default:true"`
}

// HotelCity links a hotel to the city it markets itself under.
type HotelCity struct {
	gorm.Model
	CityID  uint   `json:"cityID" gorm:"not null;index;uniqueIndex:idx_hotel_city"`
	City    *City  `json:"city,omitempty" gorm:"foreignKey:CityID"`
	HotelID uint   `json:"hotelID" gorm:"not null;index;uniqueIndex:idx_hotel_city"`
	Hotel   *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
}

// Favorite is a guest's bookmark of a hotel.
type Favorite struct {
	gorm.Model
	HotelID uint   `json:"hotelID" gorm:"not null;index;uniqueIndex:idx_user_favorite"`
	Hotel   *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
	UserID  uint   `json:"userID" gorm:"not null;index;uniqueIndex:idx_user_favorite"`
}
