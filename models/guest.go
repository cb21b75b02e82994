package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/soft_delete"
)

type Guest struct {
	ID string `gorm:"type:char(36);primaryKey" json:"id"`

	Name  string  `gorm:"size:100;not null" json:"name"`
	Email *string `gorm:"size:255;uniqueIndex:udx_guests_email_live" json:"email,omitempty"`
	Phone string  `gorm:"size:20" json:"phone"`

	IDType          string `gorm:"size:32" json:"idType,omitempty"`
	IDNumber        string `gorm:"size:64" json:"idNumber,omitempty"`
	IDIssuedCountry string `gorm:"size:64" json:"idIssuedCountry,omitempty"`

	// Opaque back-reference to the owning account in the external identity layer.
	OwnerUserID *string `gorm:"type:char(36);index" json:"ownerUserId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// Shares the email unique index so a deleted guest's address
	// becomes reusable while live duplicates stay blocked.
	DeletedAt soft_delete.DeletedAt `gorm:"uniqueIndex:udx_guests_email_live" json:"-"`
	CreatedBy *string               `gorm:"type:char(36)" json:"createdBy,omitempty"`
	UpdatedBy *string               `gorm:"type:char(36)" json:"updatedBy,omitempty"`

	Reservations []Reservation `gorm:"foreignKey:GuestID" json:"-"`
}

func (g *Guest) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
