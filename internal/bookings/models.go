package bookings

import (
	"time"

	"github.com/google/uuid"

	"atelier/internal/payments"
)

// Type mirrors the slot kind the booking was made against
type Type string

const (
	TypeWorkshop Type = "WORKSHOP"
	TypeSpace    Type = "SPACE"
)

// MaxBookingAmount caps TotalAmount (KRW)
const MaxBookingAmount = 10_000_000

// Cancellation policy constants. A booking is cancellable up to 24 hours
// before the slot starts; the refund percentage steps down as the start
// approaches. Thresholds are inclusive, so a tie lands in the higher tier.
const (
	CancellationCutoff = 24 * time.Hour

	fullRefundThreshold = 7 * 24 * time.Hour
	highRefundThreshold = 3 * 24 * time.Hour
	lowRefundThreshold  = 24 * time.Hour
)

// Booking is a user's reservation against a time slot. Never physically
// deleted; cancellation is a status change.
type Booking struct {
	ID                 uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID             uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	TimeSlotID         uuid.UUID  `json:"time_slot_id" gorm:"type:uuid;not null;index"`
	Type               Type       `json:"type" gorm:"not null"`
	ItemID             *uuid.UUID `json:"item_id,omitempty" gorm:"type:uuid"`
	Status             Status     `json:"status" gorm:"not null;default:'PENDING'"`
	TotalAmount        float64    `json:"total_amount" gorm:"not null"`
	Notes              string     `json:"notes,omitempty" gorm:"size:500"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty" gorm:"size:500"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	Payment *payments.Payment `json:"payment,omitempty" gorm:"foreignKey:BookingID"`
}

// IsActive reports whether the booking is PENDING or CONFIRMED
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// CanBeCancelled is true iff the booking is active and the slot starts at
// least 24 hours from now
func (b *Booking) CanBeCancelled(slotStart, now time.Time) bool {
	return b.IsActive() && slotStart.Sub(now) >= CancellationCutoff
}

// CalculateRefundAmount applies the tiered refund policy to TotalAmount:
// >=7 days to start 100%, >=3 days 80%, >=24 hours 50%, otherwise 0.
func (b *Booking) CalculateRefundAmount(slotStart, now time.Time) float64 {
	if !b.CanBeCancelled(slotStart, now) {
		return 0
	}
	remaining := slotStart.Sub(now)
	switch {
	case remaining >= fullRefundThreshold:
		return b.TotalAmount
	case remaining >= highRefundThreshold:
		return b.TotalAmount * 0.8
	case remaining >= lowRefundThreshold:
		return b.TotalAmount * 0.5
	default:
		return 0
	}
}

// RefundPolicyText returns the human-readable tier label for the time
// remaining until slot start
func RefundPolicyText(slotStart, now time.Time) string {
	remaining := slotStart.Sub(now)
	switch {
	case remaining >= fullRefundThreshold:
		return "Full refund (7 or more days before start)"
	case remaining >= highRefundThreshold:
		return "80% refund (3 to 7 days before start)"
	case remaining >= lowRefundThreshold:
		return "50% refund (24 hours to 3 days before start)"
	default:
		return "No refund (less than 24 hours before start)"
	}
}
