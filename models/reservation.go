package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ReservationPending    = "PENDING"
	ReservationConfirmed  = "CONFIRMED"
	ReservationCheckedIn  = "CHECKED_IN"
	ReservationCheckedOut = "CHECKED_OUT"
	ReservationCancelled  = "CANCELLED"
	ReservationNoShow     = "NO_SHOW"
)

// Allowed forward transitions. Anything absent is rejected; terminal
// states have no outgoing edges.
var reservationTransitions = map[string][]string{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationCheckedIn, ReservationCancelled, ReservationNoShow},
	ReservationCheckedIn: {ReservationCheckedOut},
}

func CanTransitionReservation(from, to string) bool {
	for _, next := range reservationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsTerminalReservationStatus(s string) bool {
	switch s {
	case ReservationCheckedOut, ReservationCancelled, ReservationNoShow:
		return true
	}
	return false
}

func ValidReservationStatus(s string) bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCheckedIn,
		ReservationCheckedOut, ReservationCancelled, ReservationNoShow:
		return true
	}
	return false
}

// NonTerminalReservationStatuses lists the statuses that block guest and
// room deletion.
func NonTerminalReservationStatuses() []string {
	return []string{ReservationPending, ReservationConfirmed, ReservationCheckedIn}
}

// ConflictExcludedStatuses lists freed inventory: reservations in these
// statuses never count against availability.
func ConflictExcludedStatuses() []string {
	return []string{ReservationCancelled, ReservationNoShow}
}

// Reservation is the booking header. Inventory is allocated by its
// Segments; RoomID mirrors the primary segment's room for the common
// single-room case.
type Reservation struct {
	ID string `gorm:"type:char(36);primaryKey" json:"id"`

	ReferenceCode string  `gorm:"size:64;uniqueIndex" json:"referenceCode,omitempty"`
	GuestID       string  `gorm:"type:char(36);not null;index" json:"guestId"`
	RoomID        *string `gorm:"type:char(36);index" json:"roomId,omitempty"`

	CheckInDate  time.Time `gorm:"column:check_in_date;type:date;not null" json:"checkInDate"`
	CheckOutDate time.Time `gorm:"column:check_out_date;type:date;not null" json:"checkOutDate"`

	TotalAmount float64 `gorm:"type:decimal(12,2);not null;default:0" json:"totalAmount"`
	Status      string  `gorm:"size:32;not null;default:PENDING;index" json:"status"`

	Adults         int `gorm:"not null;default:1" json:"adults"`
	Children       int `gorm:"not null;default:0" json:"children"`
	NumberOfGuests int `gorm:"not null;default:1" json:"numberOfGuests"`

	// Draft list of accompanying guest names captured at booking time.
	AccompanyingGuests datatypes.JSON `json:"accompanyingGuests,omitempty"`

	CheckedInAt *time.Time `json:"checkedInAt,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy *string        `gorm:"type:char(36)" json:"createdBy,omitempty"`
	UpdatedBy *string        `gorm:"type:char(36)" json:"updatedBy,omitempty"`

	Guest      Guest              `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Room       *Room              `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Segments   []ReservationRoom  `gorm:"foreignKey:ReservationID" json:"segments"`
	GuestLinks []ReservationGuest `gorm:"foreignKey:ReservationID" json:"guestLinks,omitempty"`
	Payments   []Payment          `gorm:"foreignKey:ReservationID" json:"payments,omitempty"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
