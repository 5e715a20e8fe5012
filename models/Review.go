package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	HotelID uint            `json:"hotelID" gorm:"not null;index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Hotel   *Hotel          `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
	UserID  uint            `json:"userID" gorm:"not null;index"`
	User    *User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Content string          `json:"content" gorm:"type:text;not null"`
	Rating  decimal.Decimal `json:"rating" gorm:"type:decimal(2,1);not null"` // 0.0 .. 5.0
}
