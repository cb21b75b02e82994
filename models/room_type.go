package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/soft_delete"
)

// RoomType defines the capacity and base nightly rate shared by its rooms.
type RoomType struct {
	ID string `gorm:"type:char(36);primaryKey" json:"id"`

	Code             string  `gorm:"size:32;uniqueIndex:udx_room_types_code_live;not null" json:"code"`
	Name             string  `gorm:"size:100;not null" json:"name"`
	Description      string  `gorm:"type:text" json:"description,omitempty"`
	CapacityAdults   int     `gorm:"not null;default:1" json:"capacityAdults"`
	CapacityChildren int     `gorm:"not null;default:0" json:"capacityChildren"`
	BaseRate         float64 `gorm:"type:decimal(12,2);not null;default:0" json:"baseRate"`

	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
	DeletedAt soft_delete.DeletedAt `gorm:"uniqueIndex:udx_room_types_code_live" json:"-"`
	CreatedBy *string               `gorm:"type:char(36)" json:"createdBy,omitempty"`
	UpdatedBy *string               `gorm:"type:char(36)" json:"updatedBy,omitempty"`
}

func (rt *RoomType) BeforeCreate(tx *gorm.DB) error {
	if rt.ID == "" {
		rt.ID = uuid.NewString()
	}
	return nil
}
