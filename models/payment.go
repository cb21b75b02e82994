package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentPending  = "PENDING"
	PaymentPaid     = "PAID"
	PaymentRefunded = "REFUNDED"
	PaymentFailed   = "FAILED"
)

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded, PaymentFailed:
		return true
	}
	return false
}

// Payment records money movement against a reservation. Several may
// exist per reservation (partial payments, refunds); creation does not
// depend on the reservation's lifecycle state.
type Payment struct {
	ID string `gorm:"type:char(36);primaryKey" json:"id"`

	ReservationID string `gorm:"type:char(36);not null;index" json:"reservationId"`

	Amount   float64 `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency string  `gorm:"size:3;not null;default:USD" json:"currency"`
	Method   string  `gorm:"size:32;not null" json:"method"`
	Status   string  `gorm:"size:16;not null;default:PENDING" json:"status"`

	PaidAt    *time.Time `json:"paidAt,omitempty"`
	Reference string     `gorm:"size:128" json:"reference,omitempty"`
	Notes     string     `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy *string        `gorm:"type:char(36)" json:"createdBy,omitempty"`
	UpdatedBy *string        `gorm:"type:char(36)" json:"updatedBy,omitempty"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
