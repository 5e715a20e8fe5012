package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Location is a point on the map with a local area name. Hotels,
// cities and attractions each own exactly one.
type Location struct {
	gorm.Model
	Latitude  decimal.Decimal `json:"latitude" gorm:"type:decimal(12,9);uniqueIndex:idx_location_coords;not null"`
	Longitude decimal.Decimal `json:"longitude" gorm:"type:decimal(12,9);uniqueIndex:idx_location_coords;not null"`
	LocalName string          `json:"localName" gorm:"type:varchar(30);not null"`
}

type Hotel struct {
	gorm.Model
	OwnerID    uint             `json:"ownerID" gorm:"not null;index"`
	Owner      *User            `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name       string           `json:"name" gorm:"type:varchar(30);not null;index"`
	Star       *decimal.Decimal `json:"star" gorm:"type:decimal(10,2)"`
	LocationID *uint            `json:"locationID"`
	Location   *Location        `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	Rooms      []Room           `json:"rooms,omitempty" gorm:"foreignKey:HotelID"`
	Reviews    []Review         `json:"reviews,omitempty" gorm:"foreignKey:HotelID"`
}
