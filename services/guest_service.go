package services

import (
	"context"
	"errors"
	"fmt"

	"hotel-reservations/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GuestService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewGuestService(db *gorm.DB, log *zap.Logger) *GuestService {
	return &GuestService{DB: db, Log: log}
}

func (s *GuestService) Create(ctx context.Context, guest *models.Guest) error {
	if guest.Name == "" {
		return fmt.Errorf("%w: guest name is required", ErrValidation)
	}
	if err := s.DB.WithContext(ctx).Create(guest).Error; err != nil {
		return translateDBError(err)
	}
	s.Log.Info("guest created", zap.String("guest_id", guest.ID))
	return nil
}

func (s *GuestService) GetAll(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&guests).Error
	return guests, err
}

func (s *GuestService) GetByID(ctx context.Context, id string) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.WithContext(ctx).First(&guest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &guest, nil
}

type UpdateGuestInput struct {
	Name            *string
	Email           *string
	Phone           *string
	IDType          *string
	IDNumber        *string
	IDIssuedCountry *string
}

func (s *GuestService) Update(ctx context.Context, id string, in UpdateGuestInput) (*models.Guest, error) {
	guest, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.IDType != nil {
		updates["id_type"] = *in.IDType
	}
	if in.IDNumber != nil {
		updates["id_number"] = *in.IDNumber
	}
	if in.IDIssuedCountry != nil {
		updates["id_issued_country"] = *in.IDIssuedCountry
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(guest).Updates(updates).Error; err != nil {
			return nil, translateDBError(err)
		}
	}
	return s.GetByID(ctx, id)
}

// Delete removes a guest unless a reservation of theirs is still in a
// non-terminal status.
func (s *GuestService) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var guest models.Guest
		if err := tx.First(&guest, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var active int64
		if err := tx.Model(&models.Reservation{}).
			Where("guest_id = ?", id).
			Where("status IN ?", models.NonTerminalReservationStatuses()).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("%w: guest has %d active reservation(s)", ErrReferentialConflict, active)
		}

		// also blocked while listed as a companion on a live stay
		var linked int64
		if err := tx.Model(&models.ReservationGuest{}).
			Joins("JOIN reservations ON reservations.id = reservation_guests.reservation_id").
			Where("reservations.deleted_at IS NULL").
			Where("reservations.status IN ?", models.NonTerminalReservationStatuses()).
			Where("reservation_guests.guest_id = ?", id).
			Count(&linked).Error; err != nil {
			return err
		}
		if linked > 0 {
			return fmt.Errorf("%w: guest is listed on %d active reservation(s)", ErrReferentialConflict, linked)
		}
		return tx.Delete(&guest).Error
	})
}
