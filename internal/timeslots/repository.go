package timeslots

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"atelier/internal/shared/apperrors"
)

type Repository interface {
	Create(ctx context.Context, slot *TimeSlot) error
	CreateBatch(ctx context.Context, slots []*TimeSlot) error
	GetByID(ctx context.Context, id uuid.UUID) (*TimeSlot, error)
	Update(ctx context.Context, slot *TimeSlot) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetAvailableBetween(ctx context.Context, itemID uuid.UUID, startDate, endDate time.Time) ([]TimeSlot, error)
	CountActiveBookings(ctx context.Context, slotID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, slot *TimeSlot) error {
	if err := r.db.WithContext(ctx).Create(slot).Error; err != nil {
		return apperrors.Storage("failed to create time slot", err)
	}
	return nil
}

func (r *repository) CreateBatch(ctx context.Context, slots []*TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&slots).Error; err != nil {
		return apperrors.Storage("failed to create time slot batch", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*TimeSlot, error) {
	var slot TimeSlot
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("time slot %s not found", id)
		}
		return nil, apperrors.Storage("failed to load time slot", err)
	}
	return &slot, nil
}

func (r *repository) Update(ctx context.Context, slot *TimeSlot) error {
	if err := r.db.WithContext(ctx).Save(slot).Error; err != nil {
		return apperrors.Storage("failed to update time slot", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&TimeSlot{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Storage("failed to delete time slot", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("time slot %s not found", id)
	}
	return nil
}

func (r *repository) GetAvailableBetween(ctx context.Context, itemID uuid.UUID, startDate, endDate time.Time) ([]TimeSlot, error) {
	var slots []TimeSlot
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Where("date >= ? AND date <= ?", startDate, endDate).
		Where("is_available = ?", true).
		Order("date ASC").
		Find(&slots).Error
	if err != nil {
		return nil, apperrors.Storage("failed to query available time slots", err)
	}
	return slots, nil
}

// CountActiveBookings counts PENDING/CONFIRMED bookings referencing the slot.
// Queried by table name to keep this package free of a bookings import.
func (r *repository) CountActiveBookings(ctx context.Context, slotID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("bookings").
		Where("time_slot_id = ?", slotID).
		Where("status IN ?", []string{"PENDING", "CONFIRMED"}).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Storage("failed to count active bookings", err)
	}
	return count, nil
}
