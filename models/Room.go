package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model
	HotelID       uint            `json:"hotelID" gorm:"not null;index"`
	Hotel         *Hotel          `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
	RoomType      string          `json:"roomType" gorm:"type:varchar(20);not null"` // single, double, suite, ...
	RoomNo        string          `json:"roomNo" gorm:"type:varchar(10);not null"`
	PricePerNight decimal.Decimal `json:"pricePerNight" gorm:"type:decimal(10,2);not null"`
	Available     *bool           `json:"available" gorm:"default:true"`
	Beds          int             `json:"beds" gorm:"default:1"`
}
