package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotel-reservations/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const roomListCacheKey = "rooms:list"

// RoomService manages physical rooms. The unfiltered listing is cached
// in Redis (best-effort, invalidated on every mutation); availability-
// filtered listings always go to the store.
type RoomService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
	Cache        *redis.Client
	CacheTTL     time.Duration
	Log          *zap.Logger
}

func NewRoomService(db *gorm.DB, avail *AvailabilityService, cache *redis.Client, cacheTTL time.Duration, log *zap.Logger) *RoomService {
	return &RoomService{DB: db, Availability: avail, Cache: cache, CacheTTL: cacheTTL, Log: log}
}

func (s *RoomService) Create(ctx context.Context, room *models.Room) error {
	if room.RoomNumber == "" {
		return fmt.Errorf("%w: room_number is required", ErrValidation)
	}
	if room.RoomTypeID == "" {
		return fmt.Errorf("%w: room_type_id is required", ErrValidation)
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	if !models.ValidRoomStatus(room.Status) {
		return fmt.Errorf("%w: unknown room status %q", ErrValidation, room.Status)
	}

	var rt models.RoomType
	if err := s.DB.WithContext(ctx).First(&rt, "id = ?", room.RoomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: room type %s", ErrReferenceNotFound, room.RoomTypeID)
		}
		return err
	}

	if err := s.DB.WithContext(ctx).Create(room).Error; err != nil {
		return translateDBError(err)
	}
	s.invalidateListCache(ctx)
	return nil
}

type ListRoomsInput struct {
	Available  *bool
	RoomTypeID string
	CheckIn    string
	CheckOut   string
}

// List serves GET /rooms. With a date range and available=true it
// derives free rooms from reservation segments; without dates the
// available filter falls back to the cached front-desk status flag,
// which is a listing convenience and not a booking decision.
func (s *RoomService) List(ctx context.Context, in ListRoomsInput) ([]models.Room, error) {
	if in.Available != nil && *in.Available && in.CheckIn != "" && in.CheckOut != "" {
		checkIn, err := parseStayDate(in.CheckIn)
		if err != nil {
			return nil, fmt.Errorf("%w: bad check_in %q", ErrInvalidDateRange, in.CheckIn)
		}
		checkOut, err := parseStayDate(in.CheckOut)
		if err != nil {
			return nil, fmt.Errorf("%w: bad check_out %q", ErrInvalidDateRange, in.CheckOut)
		}
		return s.Availability.FreeRooms(ctx, in.RoomTypeID, checkIn, checkOut)
	}

	unfiltered := in.Available == nil && in.RoomTypeID == ""
	if unfiltered {
		if rooms, ok := s.cachedList(ctx); ok {
			return rooms, nil
		}
	}

	q := s.DB.WithContext(ctx).Preload("RoomType")
	if in.RoomTypeID != "" {
		q = q.Where("room_type_id = ?", in.RoomTypeID)
	}
	if in.Available != nil {
		if *in.Available {
			q = q.Where("status = ?", models.RoomAvailable)
		} else {
			q = q.Where("status <> ?", models.RoomAvailable)
		}
	}

	var rooms []models.Room
	if err := q.Order("room_number").Find(&rooms).Error; err != nil {
		return nil, err
	}
	if unfiltered {
		s.storeListCache(ctx, rooms)
	}
	return rooms, nil
}

func (s *RoomService) GetByID(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).Preload("RoomType").First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

type UpdateRoomInput struct {
	RoomNumber    *string
	Floor         *string
	RoomTypeID    *string
	PricePerNight *float64
	Status        *string
	Description   *string
}

func (s *RoomService) Update(ctx context.Context, id string, in UpdateRoomInput) (*models.Room, error) {
	room, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.RoomNumber != nil {
		updates["room_number"] = *in.RoomNumber
	}
	if in.Floor != nil {
		updates["floor"] = *in.Floor
	}
	if in.RoomTypeID != nil {
		var rt models.RoomType
		if err := s.DB.WithContext(ctx).First(&rt, "id = ?", *in.RoomTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: room type %s", ErrReferenceNotFound, *in.RoomTypeID)
			}
			return nil, err
		}
		updates["room_type_id"] = *in.RoomTypeID
	}
	if in.PricePerNight != nil {
		if *in.PricePerNight < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
		updates["price_per_night"] = *in.PricePerNight
	}
	if in.Status != nil {
		if !models.ValidRoomStatus(*in.Status) {
			return nil, fmt.Errorf("%w: unknown room status %q", ErrValidation, *in.Status)
		}
		updates["status"] = *in.Status
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(room).Updates(updates).Error; err != nil {
			return nil, translateDBError(err)
		}
		s.invalidateListCache(ctx)
	}
	return s.GetByID(ctx, id)
}

// Delete removes a room unless a non-terminal reservation still holds a
// segment on it.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var active int64
		if err := tx.Model(&models.ReservationRoom{}).
			Joins("JOIN reservations ON reservations.id = reservation_rooms.reservation_id").
			Where("reservations.deleted_at IS NULL").
			Where("reservations.status IN ?", models.NonTerminalReservationStatuses()).
			Where("reservation_rooms.room_id = ?", id).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("%w: room has %d active reservation segment(s)", ErrReferentialConflict, active)
		}
		return tx.Delete(&room).Error
	})
	if err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	return nil
}

func (s *RoomService) cachedList(ctx context.Context) ([]models.Room, bool) {
	if s.Cache == nil {
		return nil, false
	}
	raw, err := s.Cache.Get(ctx, roomListCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var rooms []models.Room
	if err := json.Unmarshal(raw, &rooms); err != nil {
		return nil, false
	}
	return rooms, true
}

func (s *RoomService) storeListCache(ctx context.Context, rooms []models.Room) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(rooms)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, roomListCacheKey, raw, s.CacheTTL).Err(); err != nil {
		s.Log.Warn("room list cache write failed", zap.Error(err))
	}
}

func (s *RoomService) invalidateListCache(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, roomListCacheKey).Err(); err != nil {
		s.Log.Warn("room list cache invalidation failed", zap.Error(err))
	}
}
