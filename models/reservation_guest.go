package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationGuest links a registered guest to a reservation. Exactly
// one row per reservation is primary (the booking guest); further rows
// are registered companions. Unregistered companions live only in the
// reservation's AccompanyingGuests draft list.
type ReservationGuest struct {
	ID string `gorm:"type:char(36);primaryKey" json:"id"`

	ReservationID string `gorm:"type:char(36);not null;uniqueIndex:udx_reservation_guest" json:"reservationId"`
	GuestID       string `gorm:"type:char(36);not null;uniqueIndex:udx_reservation_guest;index" json:"guestId"`
	IsPrimary     bool   `gorm:"not null;default:false" json:"isPrimary"`

	CreatedAt time.Time `json:"createdAt"`

	Guest Guest `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
}

func (rg *ReservationGuest) BeforeCreate(tx *gorm.DB) error {
	if rg.ID == "" {
		rg.ID = uuid.NewString()
	}
	return nil
}
