package services

import (
	"context"
	"errors"
	"time"

	"hotel-reservations/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AvailabilityService answers "is this room free for [start, end)?"
// against reservation segments. It never consults the room's cached
// status field.
type AvailabilityService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewAvailabilityService(db *gorm.DB, log *zap.Logger) *AvailabilityService {
	return &AvailabilityService{DB: db, Log: log}
}

// RoomFree reports whether no live, non-freed segment on the room
// overlaps [start, end). Pass the enclosing transaction so the candidate
// row is locked FOR UPDATE and a concurrent create cannot slip past the
// check; excludeReservationID keeps a reservation from conflicting with
// itself on date-changing updates.
func (s *AvailabilityService) RoomFree(ctx context.Context, tx *gorm.DB, roomID string, start, end time.Time, excludeReservationID string) (bool, error) {
	if !end.After(start) {
		return false, ErrInvalidDateRange
	}

	db := tx
	if db == nil {
		db = s.DB
	}

	q := db.WithContext(ctx).
		Model(&models.ReservationRoom{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Joins("JOIN reservations ON reservations.id = reservation_rooms.reservation_id").
		Where("reservations.deleted_at IS NULL").
		Where("reservations.status NOT IN ?", models.ConflictExcludedStatuses()).
		Where("reservation_rooms.room_id = ?", roomID).
		Where("reservation_rooms.start_date < ? AND reservation_rooms.end_date > ?", end, start)

	if excludeReservationID != "" {
		q = q.Where("reservations.id <> ?", excludeReservationID)
	}

	var conflicting models.ReservationRoom
	err := q.Take(&conflicting).Error
	if err == nil {
		s.Log.Debug("room has conflicting segment",
			zap.String("room_id", roomID),
			zap.String("segment_id", conflicting.ID))
		return false, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	return false, err
}

// FreeRooms lists rooms (optionally of one room type) with no
// conflicting segment in [start, end).
func (s *AvailabilityService) FreeRooms(ctx context.Context, roomTypeID string, start, end time.Time) ([]models.Room, error) {
	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}

	sub := s.DB.
		Model(&models.ReservationRoom{}).
		Select("1").
		Joins("JOIN reservations ON reservations.id = reservation_rooms.reservation_id").
		Where("reservations.deleted_at IS NULL").
		Where("reservations.status NOT IN ?", models.ConflictExcludedStatuses()).
		Where("reservation_rooms.room_id = rooms.id").
		Where("reservation_rooms.start_date < ? AND reservation_rooms.end_date > ?", end, start)

	q := s.DB.WithContext(ctx).
		Preload("RoomType").
		Where("NOT EXISTS (?)", sub)
	if roomTypeID != "" {
		q = q.Where("rooms.room_type_id = ?", roomTypeID)
	}

	var rooms []models.Room
	if err := q.Order("rooms.room_number").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}
