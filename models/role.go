package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is seeded reference data for the external identity layer; the
// core never evaluates permissions itself.
type Role struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	Code        string    `gorm:"size:32;uniqueIndex;not null" json:"code"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
