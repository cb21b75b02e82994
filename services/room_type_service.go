package services

import (
	"context"
	"errors"
	"fmt"

	"hotel-reservations/models"

	"gorm.io/gorm"
)

type RoomTypeService struct {
	DB *gorm.DB
}

func NewRoomTypeService(db *gorm.DB) *RoomTypeService {
	return &RoomTypeService{DB: db}
}

func (s *RoomTypeService) Create(ctx context.Context, rt *models.RoomType) error {
	if rt.Code == "" || rt.Name == "" {
		return fmt.Errorf("%w: room type code and name are required", ErrValidation)
	}
	if rt.CapacityAdults <= 0 {
		rt.CapacityAdults = 1
	}
	if err := s.DB.WithContext(ctx).Create(rt).Error; err != nil {
		return translateDBError(err)
	}
	return nil
}

func (s *RoomTypeService) GetAll(ctx context.Context) ([]models.RoomType, error) {
	var types []models.RoomType
	err := s.DB.WithContext(ctx).Order("code").Find(&types).Error
	return types, err
}

func (s *RoomTypeService) GetByID(ctx context.Context, id string) (*models.RoomType, error) {
	var rt models.RoomType
	if err := s.DB.WithContext(ctx).First(&rt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rt, nil
}

type UpdateRoomTypeInput struct {
	Code             *string
	Name             *string
	Description      *string
	CapacityAdults   *int
	CapacityChildren *int
	BaseRate         *float64
}

func (s *RoomTypeService) Update(ctx context.Context, id string, in UpdateRoomTypeInput) (*models.RoomType, error) {
	rt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Code != nil {
		updates["code"] = *in.Code
	}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.CapacityAdults != nil {
		updates["capacity_adults"] = *in.CapacityAdults
	}
	if in.CapacityChildren != nil {
		updates["capacity_children"] = *in.CapacityChildren
	}
	if in.BaseRate != nil {
		if *in.BaseRate < 0 {
			return nil, fmt.Errorf("%w: base rate must not be negative", ErrValidation)
		}
		updates["base_rate"] = *in.BaseRate
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(rt).Updates(updates).Error; err != nil {
			return nil, translateDBError(err)
		}
	}
	return s.GetByID(ctx, id)
}

// Delete is RESTRICT: a room type referenced by rooms stays.
func (s *RoomTypeService) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rt models.RoomType
		if err := tx.First(&rt, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var rooms int64
		if err := tx.Model(&models.Room{}).Where("room_type_id = ?", id).Count(&rooms).Error; err != nil {
			return err
		}
		if rooms > 0 {
			return fmt.Errorf("%w: %d room(s) reference this type", ErrReferentialConflict, rooms)
		}
		return tx.Delete(&rt).Error
	})
}
