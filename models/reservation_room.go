package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationRoom is one room+date-range allocation inside a reservation:
// the unit of inventory the availability check runs against. Dates are
// half-open [StartDate, EndDate).
type ReservationRoom struct {
	ID string `gorm:"type:char(36);primaryKey" json:"id"`

	ReservationID string  `gorm:"type:char(36);not null;index" json:"reservationId"`
	RoomID        *string `gorm:"type:char(36);index" json:"roomId,omitempty"`
	RoomTypeID    string  `gorm:"type:char(36);not null" json:"roomTypeId"`

	StartDate time.Time `gorm:"type:date;not null;index" json:"startDate"`
	EndDate   time.Time `gorm:"type:date;not null;index" json:"endDate"`

	NightlyRate float64 `gorm:"type:decimal(12,2);not null;default:0" json:"nightlyRate"`
	Adults      int     `gorm:"not null;default:1" json:"adults"`
	Children    int     `gorm:"not null;default:0" json:"children"`
	Notes       string  `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (s *ReservationRoom) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
