package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Event is a happening hosted by a hotel (live music, buffet night).
type Event struct {
	gorm.Model
	HotelID     uint           `json:"hotelID" gorm:"not null;index"`
	Hotel       *Hotel         `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
	Title       string         `json:"title" gorm:"type:varchar(50);not null;index"`
	Description string         `json:"description" gorm:"type:text"`
	StartTime   *time.Time     `json:"startTime"`
	EndTime     *time.Time     `json:"endTime"`
	Schedule    datatypes.JSON `json:"schedule"` // free-form recurrence info
}
