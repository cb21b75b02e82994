// services/reservation_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-reservations/models"
	"hotel-reservations/utils"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReservationService owns the reservation lifecycle: create, update,
// cancel, check-in/out, no-show and hard delete. Every mutation runs the
// availability read and the write inside one transaction so two
// concurrent creates against the same room and range cannot both
// succeed.
type ReservationService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
	Log          *zap.Logger

	// Status newly created reservations start in: PENDING or CONFIRMED.
	DefaultStatus string
}

func NewReservationService(db *gorm.DB, avail *AvailabilityService, log *zap.Logger, defaultStatus string) *ReservationService {
	if defaultStatus != models.ReservationPending && defaultStatus != models.ReservationConfirmed {
		defaultStatus = models.ReservationConfirmed
	}
	return &ReservationService{DB: db, Availability: avail, Log: log, DefaultStatus: defaultStatus}
}

type CreateReservationInput struct {
	GuestID   string
	RoomID    string
	CheckIn   string
	CheckOut  string
	Adults    int
	Children  int
	GuestIDs  []string
	GuestList []map[string]interface{}
}

type UpdateReservationInput struct {
	GuestID  *string
	RoomID   *string
	CheckIn  *string
	CheckOut *string
	Status   *string
	Adults   *int
	Children *int
}

// helper keep only safe fields from the raw accompanying-guest list
func normalizeGuestList(guestList []map[string]interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(guestList))
	for _, g := range guestList {
		name := getStringFromMap(g, "name", "fullName", "full_name")
		typ := getStringFromMap(g, "type", "guestType", "guest_type")
		if name == "" {
			continue
		}
		if typ == "" {
			typ = "Adult"
		}
		out = append(out, map[string]interface{}{
			"fullName": name,
			"type":     typ,
		})
	}
	return out
}

func getStringFromMap(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			if s, ok2 := v.(string); ok2 {
				return strings.TrimSpace(s)
			}
			return strings.TrimSpace(fmt.Sprintf("%v", v))
		}
	}
	return ""
}

// Create books one room for one guest over a half-open date range.
func (s *ReservationService) Create(ctx context.Context, in CreateReservationInput) (*models.Reservation, error) {
	checkIn, err := parseStayDate(in.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("%w: bad check_in %q", ErrInvalidDateRange, in.CheckIn)
	}
	checkOut, err := parseStayDate(in.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("%w: bad check_out %q", ErrInvalidDateRange, in.CheckOut)
	}
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}

	adults := in.Adults
	if adults <= 0 {
		adults = 1
	}
	children := in.Children
	if children < 0 {
		children = 0
	}
	accompanyingJSON, _ := json.Marshal(normalizeGuestList(in.GuestList))

	var created models.Reservation

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var guest models.Guest
		if err := tx.First(&guest, "id = ?", in.GuestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGuestNotFound
			}
			return fmt.Errorf("checking guest: %w", err)
		}

		var room models.Room
		if err := tx.Preload("RoomType").First(&room, "id = ?", in.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: room %s", ErrReferenceNotFound, in.RoomID)
			}
			return fmt.Errorf("checking room: %w", err)
		}

		free, err := s.Availability.RoomFree(ctx, tx, room.ID, checkIn, checkOut, "")
		if err != nil {
			return err
		}
		if !free {
			return ErrRoomUnavailable
		}

		rate := room.NightlyRate()
		total, err := StayTotal(rate, checkIn, checkOut)
		if err != nil {
			return err
		}

		ref, err := utils.GenerateReservationReference()
		if err != nil {
			return fmt.Errorf("generating reference code: %w", err)
		}

		reservation := models.Reservation{
			ReferenceCode:      ref,
			GuestID:            guest.ID,
			RoomID:             &room.ID,
			CheckInDate:        checkIn,
			CheckOutDate:       checkOut,
			TotalAmount:        total,
			Status:             s.DefaultStatus,
			Adults:             adults,
			Children:           children,
			NumberOfGuests:     adults + children,
			AccompanyingGuests: datatypes.JSON(accompanyingJSON),
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return translateDBError(err)
		}

		segment := models.ReservationRoom{
			ReservationID: reservation.ID,
			RoomID:        &room.ID,
			RoomTypeID:    room.RoomTypeID,
			StartDate:     checkIn,
			EndDate:       checkOut,
			NightlyRate:   rate,
			Adults:        adults,
			Children:      children,
		}
		if err := tx.Create(&segment).Error; err != nil {
			return translateDBError(err)
		}

		links := []models.ReservationGuest{{
			ReservationID: reservation.ID,
			GuestID:       guest.ID,
			IsPrimary:     true,
		}}
		if err := tx.Create(&links[0]).Error; err != nil {
			return translateDBError(err)
		}
		seen := map[string]bool{guest.ID: true}
		for _, companionID := range in.GuestIDs {
			if companionID == "" || seen[companionID] {
				continue
			}
			seen[companionID] = true
			var companion models.Guest
			if err := tx.First(&companion, "id = ?", companionID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: companion %s", ErrGuestNotFound, companionID)
				}
				return err
			}
			link := models.ReservationGuest{
				ReservationID: reservation.ID,
				GuestID:       companion.ID,
			}
			if err := tx.Create(&link).Error; err != nil {
				return translateDBError(err)
			}
			links = append(links, link)
		}

		// Room keeps its front-desk status here; OCCUPIED is set at
		// check-in, not at booking time.
		reservation.Segments = []models.ReservationRoom{segment}
		reservation.GuestLinks = links
		reservation.Room = &room
		created = reservation
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Log.Info("reservation created",
		zap.String("reservation_id", created.ID),
		zap.String("room_id", in.RoomID),
		zap.Float64("total", created.TotalAmount))
	return &created, nil
}

// Update applies only the supplied fields. A date or room change
// re-validates the range and re-runs the availability check with the
// reservation itself excluded from the conflict set, then recomputes the
// total from the target room's nightly rate.
func (s *ReservationService) Update(ctx context.Context, id string, in UpdateReservationInput) (*models.Reservation, error) {
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, segments, err := s.lockReservation(tx, id)
		if err != nil {
			return err
		}

		// primary segment is the earliest allocation
		var segment models.ReservationRoom
		for i := range segments {
			if segment.ID == "" || segments[i].StartDate.Before(segment.StartDate) {
				segment = segments[i]
			}
		}

		checkIn := res.CheckInDate
		checkOut := res.CheckOutDate
		datesChanged := false
		if in.CheckIn != nil {
			t, err := parseStayDate(*in.CheckIn)
			if err != nil {
				return fmt.Errorf("%w: bad check_in %q", ErrInvalidDateRange, *in.CheckIn)
			}
			checkIn = t
			datesChanged = true
		}
		if in.CheckOut != nil {
			t, err := parseStayDate(*in.CheckOut)
			if err != nil {
				return fmt.Errorf("%w: bad check_out %q", ErrInvalidDateRange, *in.CheckOut)
			}
			checkOut = t
			datesChanged = true
		}

		roomID := ""
		if res.RoomID != nil {
			roomID = *res.RoomID
		}
		roomChanged := in.RoomID != nil && *in.RoomID != roomID
		if roomChanged {
			roomID = *in.RoomID
		}

		if in.GuestID != nil && *in.GuestID != res.GuestID {
			var guest models.Guest
			if err := tx.First(&guest, "id = ?", *in.GuestID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrGuestNotFound
				}
				return err
			}
		}

		updates := map[string]interface{}{}

		if datesChanged || roomChanged {
			if !checkOut.After(checkIn) {
				return ErrInvalidDateRange
			}
			if roomID == "" {
				return fmt.Errorf("%w: reservation has no room assigned", ErrValidation)
			}

			var room models.Room
			if err := tx.Preload("RoomType").First(&room, "id = ?", roomID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: room %s", ErrReferenceNotFound, roomID)
				}
				return err
			}

			free, err := s.Availability.RoomFree(ctx, tx, roomID, checkIn, checkOut, res.ID)
			if err != nil {
				return err
			}
			if !free {
				return ErrRoomUnavailable
			}

			rate := room.NightlyRate()
			total, err := StayTotal(rate, checkIn, checkOut)
			if err != nil {
				return err
			}

			updates["check_in_date"] = checkIn
			updates["check_out_date"] = checkOut
			updates["room_id"] = roomID
			updates["total_amount"] = total

			if segment.ID != "" {
				if err := tx.Model(&segment).Updates(map[string]interface{}{
					"room_id":      roomID,
					"room_type_id": room.RoomTypeID,
					"start_date":   checkIn,
					"end_date":     checkOut,
					"nightly_rate": rate,
				}).Error; err != nil {
					return err
				}
			}
		}

		if in.Status != nil && *in.Status != res.Status {
			if !models.ValidReservationStatus(*in.Status) {
				return fmt.Errorf("%w: unknown status %q", ErrValidation, *in.Status)
			}
			if !models.CanTransitionReservation(res.Status, *in.Status) {
				return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, res.Status, *in.Status)
			}
			updates["status"] = *in.Status
			if *in.Status == models.ReservationCheckedIn {
				updates["checked_in_at"] = time.Now().UTC()
			}
		} else if in.Status != nil && *in.Status == models.ReservationCancelled {
			return ErrAlreadyCancelled
		}

		if in.GuestID != nil {
			updates["guest_id"] = *in.GuestID
		}
		if in.Adults != nil {
			updates["adults"] = *in.Adults
			updates["number_of_guests"] = *in.Adults + res.Children
		}
		if in.Children != nil {
			updates["children"] = *in.Children
			adults := res.Adults
			if in.Adults != nil {
				adults = *in.Adults
			}
			updates["number_of_guests"] = adults + *in.Children
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(res).Updates(updates).Error; err != nil {
			return translateDBError(err)
		}

		// A status change through the generic update carries the same
		// room-flag side effects as the dedicated lifecycle endpoints.
		switch updates["status"] {
		case models.ReservationCancelled, models.ReservationNoShow:
			return s.releaseSegmentRooms(tx, segments)
		case models.ReservationCheckedIn, models.ReservationCheckedOut:
			flag := models.RoomOccupied
			if updates["status"] == models.ReservationCheckedOut {
				flag = models.RoomAvailable
			}
			for _, seg := range segments {
				if seg.RoomID == nil {
					continue
				}
				if err := tx.Model(&models.Room{}).
					Where("id = ?", *seg.RoomID).
					Update("status", flag).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Get(ctx, id)
}

// Cancel moves the reservation to CANCELLED and frees its rooms' cached
// status when nothing else occupies them today.
func (s *ReservationService) Cancel(ctx context.Context, id string) (*models.Reservation, error) {
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, segments, err := s.lockReservation(tx, id)
		if err != nil {
			return err
		}
		if res.Status == models.ReservationCancelled {
			return ErrAlreadyCancelled
		}
		if !models.CanTransitionReservation(res.Status, models.ReservationCancelled) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, res.Status, models.ReservationCancelled)
		}

		if err := tx.Model(res).Updates(map[string]interface{}{
			"status": models.ReservationCancelled,
		}).Error; err != nil {
			return err
		}
		return s.releaseSegmentRooms(tx, segments)
	})
	if txErr != nil {
		return nil, txErr
	}
	s.Log.Info("reservation cancelled", zap.String("reservation_id", id))
	return s.Get(ctx, id)
}

// CheckIn moves CONFIRMED to CHECKED_IN and flips the rooms' front-desk
// status to OCCUPIED.
func (s *ReservationService) CheckIn(ctx context.Context, id string) (*models.Reservation, error) {
	now := time.Now().UTC()
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, segments, err := s.lockReservation(tx, id)
		if err != nil {
			return err
		}
		if !models.CanTransitionReservation(res.Status, models.ReservationCheckedIn) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, res.Status, models.ReservationCheckedIn)
		}

		if err := tx.Model(res).Updates(map[string]interface{}{
			"status":        models.ReservationCheckedIn,
			"checked_in_at": now,
		}).Error; err != nil {
			return err
		}

		for _, seg := range segments {
			if seg.RoomID == nil {
				continue
			}
			if err := tx.Model(&models.Room{}).
				Where("id = ?", *seg.RoomID).
				Update("status", models.RoomOccupied).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Get(ctx, id)
}

// CheckOut completes the stay and returns the rooms to AVAILABLE.
func (s *ReservationService) CheckOut(ctx context.Context, id string) (*models.Reservation, error) {
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, segments, err := s.lockReservation(tx, id)
		if err != nil {
			return err
		}
		if !models.CanTransitionReservation(res.Status, models.ReservationCheckedOut) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, res.Status, models.ReservationCheckedOut)
		}

		if err := tx.Model(res).Updates(map[string]interface{}{
			"status": models.ReservationCheckedOut,
		}).Error; err != nil {
			return err
		}

		for _, seg := range segments {
			if seg.RoomID == nil {
				continue
			}
			if err := tx.Model(&models.Room{}).
				Where("id = ?", *seg.RoomID).
				Update("status", models.RoomAvailable).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Get(ctx, id)
}

// MarkNoShow frees inventory for a guest who never arrived.
func (s *ReservationService) MarkNoShow(ctx context.Context, id string) (*models.Reservation, error) {
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, segments, err := s.lockReservation(tx, id)
		if err != nil {
			return err
		}
		if !models.CanTransitionReservation(res.Status, models.ReservationNoShow) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, res.Status, models.ReservationNoShow)
		}

		if err := tx.Model(res).Updates(map[string]interface{}{
			"status": models.ReservationNoShow,
		}).Error; err != nil {
			return err
		}
		return s.releaseSegmentRooms(tx, segments)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Get(ctx, id)
}

// Delete is the hard administrative removal. It runs the same
// room-freeing logic as Cancel, then cascades payments, guest links
// and segments before removing the header.
func (s *ReservationService) Delete(ctx context.Context, id string) error {
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, segments, err := s.lockReservation(tx, id)
		if err != nil {
			return err
		}

		if res.Status == models.ReservationConfirmed || res.Status == models.ReservationCheckedIn {
			if err := s.releaseSegmentRooms(tx, segments); err != nil {
				return err
			}
		}

		if err := tx.Where("reservation_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("reservation_id = ?", id).Delete(&models.ReservationGuest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("reservation_id = ?", id).Delete(&models.ReservationRoom{}).Error; err != nil {
			return err
		}
		return tx.Delete(res).Error
	})
	if txErr != nil {
		return txErr
	}
	s.Log.Info("reservation deleted", zap.String("reservation_id", id))
	return nil
}

func (s *ReservationService) Get(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	err := s.DB.WithContext(ctx).
		Preload("Guest").
		Preload("Room.RoomType").
		Preload("Segments.Room").
		Preload("GuestLinks.Guest").
		Preload("Payments").
		First(&res, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve reservation: %w", err)
	}
	if res.Segments == nil {
		res.Segments = []models.ReservationRoom{}
	}
	return &res, nil
}

func (s *ReservationService) GetAll(ctx context.Context) ([]models.Reservation, error) {
	var list []models.Reservation
	err := s.DB.WithContext(ctx).
		Preload("Guest").
		Preload("Room.RoomType").
		Preload("Segments.Room").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations: %w", err)
	}
	for i := range list {
		if list[i].Segments == nil {
			list[i].Segments = []models.ReservationRoom{}
		}
	}
	return list, nil
}

// lockReservation loads the header FOR UPDATE plus its segments.
func (s *ReservationService) lockReservation(tx *gorm.DB, id string) (*models.Reservation, []models.ReservationRoom, error) {
	var res models.Reservation
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&res, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	var segments []models.ReservationRoom
	if err := tx.Where("reservation_id = ?", id).Find(&segments).Error; err != nil {
		return nil, nil, err
	}
	return &res, segments, nil
}

// releaseSegmentRooms resets each segment's room to AVAILABLE if it is
// currently OCCUPIED and no other active reservation covers today. The
// cached flag only tracks front-desk state; availability decisions never
// read it.
func (s *ReservationService) releaseSegmentRooms(tx *gorm.DB, segments []models.ReservationRoom) error {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	for _, seg := range segments {
		if seg.RoomID == nil {
			continue
		}
		roomID := *seg.RoomID

		var covering models.ReservationRoom
		err := tx.Model(&models.ReservationRoom{}).
			Joins("JOIN reservations ON reservations.id = reservation_rooms.reservation_id").
			Where("reservations.deleted_at IS NULL").
			Where("reservations.status IN ?", []string{models.ReservationConfirmed, models.ReservationCheckedIn}).
			Where("reservation_rooms.room_id = ?", roomID).
			Where("reservation_rooms.id <> ?", seg.ID).
			Where("reservation_rooms.start_date <= ? AND reservation_rooms.end_date > ?", today, today).
			Take(&covering).Error
		if err == nil {
			continue // still occupied by another stay
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Model(&models.Room{}).
			Where("id = ? AND status = ?", roomID, models.RoomOccupied).
			Update("status", models.RoomAvailable).Error; err != nil {
			return err
		}
	}
	return nil
}
