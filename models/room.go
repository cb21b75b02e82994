package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/soft_delete"
)

// Front-desk operational states. Booking-conflict decisions are always
// derived from reservation segments, never from this cached flag.
const (
	RoomAvailable    = "AVAILABLE"
	RoomOutOfService = "OUT_OF_SERVICE"
	RoomCleaning     = "CLEANING"
	RoomOccupied     = "OCCUPIED"
)

type Room struct {
	ID string `gorm:"type:char(36);primaryKey" json:"id"`

	RoomNumber string `gorm:"column:room_number;size:50;uniqueIndex:udx_rooms_number_live;not null" json:"roomNumber"`
	Floor      string `gorm:"size:10" json:"floor,omitempty"`
	RoomTypeID string `gorm:"type:char(36);not null;index" json:"roomTypeId"`

	// Per-room override; zero means the room-type base rate applies.
	PricePerNight float64 `gorm:"type:decimal(12,2);not null;default:0" json:"pricePerNight"`

	Status      string `gorm:"size:32;not null;default:AVAILABLE" json:"status"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
	DeletedAt soft_delete.DeletedAt `gorm:"uniqueIndex:udx_rooms_number_live" json:"-"`
	CreatedBy *string               `gorm:"type:char(36)" json:"createdBy,omitempty"`
	UpdatedBy *string               `gorm:"type:char(36)" json:"updatedBy,omitempty"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// NightlyRate resolves the effective rate: the per-room price when set,
// otherwise the room-type base rate. RoomType must be preloaded.
func (r *Room) NightlyRate() float64 {
	if r.PricePerNight > 0 {
		return r.PricePerNight
	}
	return r.RoomType.BaseRate
}

func ValidRoomStatus(s string) bool {
	switch s {
	case RoomAvailable, RoomOutOfService, RoomCleaning, RoomOccupied:
		return true
	}
	return false
}
