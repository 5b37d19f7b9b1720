package workshops

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"atelier/internal/shared/apperrors"
)

type Repository interface {
	Create(ctx context.Context, workshop *Workshop) error
	GetByID(ctx context.Context, id uuid.UUID) (*Workshop, error)
	List(ctx context.Context, kind string, activeOnly bool) ([]Workshop, error)
	Update(ctx context.Context, workshop *Workshop) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountActiveBookings(ctx context.Context, workshopID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, workshop *Workshop) error {
	if err := r.db.WithContext(ctx).Create(workshop).Error; err != nil {
		return apperrors.Storage("failed to create workshop", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Workshop, error) {
	var workshop Workshop
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&workshop).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("workshop %s not found", id)
		}
		return nil, apperrors.Storage("failed to load workshop", err)
	}
	return &workshop, nil
}

func (r *repository) List(ctx context.Context, kind string, activeOnly bool) ([]Workshop, error) {
	query := r.db.WithContext(ctx).Model(&Workshop{})
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var workshops []Workshop
	if err := query.Order("created_at DESC").Find(&workshops).Error; err != nil {
		return nil, apperrors.Storage("failed to list workshops", err)
	}
	return workshops, nil
}

func (r *repository) Update(ctx context.Context, workshop *Workshop) error {
	if err := r.db.WithContext(ctx).Save(workshop).Error; err != nil {
		return apperrors.Storage("failed to update workshop", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Workshop{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Storage("failed to delete workshop", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("workshop %s not found", id)
	}
	return nil
}

// CountActiveBookings counts PENDING/CONFIRMED bookings against any slot of
// this workshop. Raw table join keeps the package free of a bookings import.
func (r *repository) CountActiveBookings(ctx context.Context, workshopID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("bookings").
		Joins("JOIN time_slots ON time_slots.id = bookings.time_slot_id").
		Where("time_slots.item_id = ?", workshopID).
		Where("bookings.status IN ?", []string{"PENDING", "CONFIRMED"}).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Storage("failed to count active bookings", err)
	}
	return count, nil
}
