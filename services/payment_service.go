package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-reservations/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentService records money movement against reservations. Payments
// are created independently of the reservation's lifecycle state; a
// cancelled reservation can still receive a refund entry.
type PaymentService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewPaymentService(db *gorm.DB, log *zap.Logger) *PaymentService {
	return &PaymentService{DB: db, Log: log}
}

type CreatePaymentInput struct {
	Amount    float64
	Currency  string
	Method    string
	Status    string
	Reference string
	Notes     string
}

func (s *PaymentService) Create(ctx context.Context, reservationID string, in CreatePaymentInput) (*models.Payment, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if in.Method == "" {
		return nil, fmt.Errorf("%w: method is required", ErrValidation)
	}
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	if len(currency) != 3 {
		return nil, fmt.Errorf("%w: currency must be a 3-letter code", ErrValidation)
	}
	status := in.Status
	if status == "" {
		status = models.PaymentPending
	}
	if !models.ValidPaymentStatus(status) {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrValidation, status)
	}

	var payment models.Payment
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res models.Reservation
		if err := tx.First(&res, "id = ?", reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		payment = models.Payment{
			ReservationID: res.ID,
			Amount:        in.Amount,
			Currency:      currency,
			Method:        in.Method,
			Status:        status,
			Reference:     in.Reference,
			Notes:         in.Notes,
		}
		if status == models.PaymentPaid {
			now := time.Now().UTC()
			payment.PaidAt = &now
		}
		if err := tx.Create(&payment).Error; err != nil {
			return translateDBError(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Log.Info("payment recorded",
		zap.String("payment_id", payment.ID),
		zap.String("reservation_id", reservationID),
		zap.Float64("amount", payment.Amount))
	return &payment, nil
}

func (s *PaymentService) ListByReservation(ctx context.Context, reservationID string) ([]models.Payment, error) {
	var res models.Reservation
	if err := s.DB.WithContext(ctx).First(&res, "id = ?", reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var payments []models.Payment
	err := s.DB.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("created_at").
		Find(&payments).Error
	return payments, err
}

type UpdatePaymentInput struct {
	Status    *string
	Reference *string
	Notes     *string
}

func (s *PaymentService) Update(ctx context.Context, id string, in UpdatePaymentInput) (*models.Payment, error) {
	var payment models.Payment
	if err := s.DB.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Status != nil {
		if !models.ValidPaymentStatus(*in.Status) {
			return nil, fmt.Errorf("%w: unknown payment status %q", ErrValidation, *in.Status)
		}
		updates["status"] = *in.Status
		if *in.Status == models.PaymentPaid && payment.PaidAt == nil {
			updates["paid_at"] = time.Now().UTC()
		}
	}
	if in.Reference != nil {
		updates["reference"] = *in.Reference
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&payment).Updates(updates).Error; err != nil {
			return nil, translateDBError(err)
		}
	}

	if err := s.DB.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}
