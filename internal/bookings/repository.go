package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"atelier/internal/shared/apperrors"
)

type Repository interface {
	// Concurrency-safe booking creation: books a seat against the slot and
	// creates the row in one transaction.
	CreateBookingWithCapacityCheck(ctx context.Context, booking *Booking) error

	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, error)
	GetBookingsByTimeSlot(ctx context.Context, timeSlotID uuid.UUID) ([]Booking, error)

	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error
	CancelBookingAndReleaseSlot(ctx context.Context, id uuid.UUID, reason string, cancelledAt time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateBookingWithCapacityCheck creates the booking atomically with the
// slot's capacity accounting. The slot row is locked FOR UPDATE so two
// concurrent bookings cannot both pass the capacity check.
func (r *repository) CreateBookingWithCapacityCheck(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slot struct {
			ID              uuid.UUID `gorm:"column:id"`
			MaxCapacity     int       `gorm:"column:max_capacity"`
			CurrentBookings int       `gorm:"column:current_bookings"`
			IsAvailable     bool      `gorm:"column:is_available"`
		}

		err := tx.Table("time_slots").
			Select("id, max_capacity, current_bookings, is_available").
			Where("id = ?", booking.TimeSlotID).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&slot).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("time slot %s not found", booking.TimeSlotID)
			}
			return apperrors.Storage("failed to lock time slot", err)
		}

		if !slot.IsAvailable {
			return apperrors.BusinessLogic("time slot %s is not open for booking", slot.ID)
		}
		if slot.CurrentBookings >= slot.MaxCapacity {
			return apperrors.BusinessLogic("time slot %s is fully booked", slot.ID)
		}

		if err := tx.Create(booking).Error; err != nil {
			return apperrors.Storage("failed to create booking", err)
		}

		err = tx.Table("time_slots").
			Where("id = ?", booking.TimeSlotID).
			Update("current_bookings", slot.CurrentBookings+1).Error
		if err != nil {
			return apperrors.Storage("failed to update slot booking count", err)
		}

		return nil
	})
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Payment").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking %s not found", id)
		}
		return nil, apperrors.Storage("failed to load booking", err)
	}
	return &booking, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Payment").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, apperrors.Storage("failed to load user bookings", err)
	}
	return bookings, nil
}

func (r *repository) GetBookingsByTimeSlot(ctx context.Context, timeSlotID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("time_slot_id = ?", timeSlotID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, apperrors.Storage("failed to load slot bookings", err)
	}
	return bookings, nil
}

func (r *repository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if cancelledAt != nil {
		updates["cancelled_at"] = *cancelledAt
	}

	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return apperrors.Storage("failed to update booking status", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("booking %s not found", id)
	}
	return nil
}

// CancelBookingAndReleaseSlot marks the booking cancelled and gives its seat
// back to the slot in one transaction. The slot decrement floors at zero.
func (r *repository) CancelBookingAndReleaseSlot(ctx context.Context, id uuid.UUID, reason string, cancelledAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking Booking
		if err := tx.Where("id = ?", id).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("booking %s not found", id)
			}
			return apperrors.Storage("failed to load booking", err)
		}

		err := tx.Model(&Booking{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":              StatusCancelled,
				"cancelled_at":        cancelledAt,
				"cancellation_reason": reason,
				"updated_at":          time.Now(),
			}).Error
		if err != nil {
			return apperrors.Storage("failed to cancel booking", err)
		}

		err = tx.Exec(
			"UPDATE time_slots SET current_bookings = GREATEST(current_bookings - 1, 0) WHERE id = ?",
			booking.TimeSlotID,
		).Error
		if err != nil {
			return apperrors.Storage("failed to release slot capacity", err)
		}

		return nil
	})
}
