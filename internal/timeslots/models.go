package timeslots

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes workshop sessions from open space rentals
type Kind string

const (
	KindWorkshop Kind = "WORKSHOP"
	KindSpace    Kind = "SPACE"
)

func IsValidKind(k string) bool {
	switch Kind(k) {
	case KindWorkshop, KindSpace:
		return true
	default:
		return false
	}
}

// TimeSlot is a bookable interval on a calendar day. Date carries only the
// day (UTC midnight); StartTime/EndTime are wall-clock "HH:MM" strings.
type TimeSlot struct {
	ID              uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Date            time.Time  `json:"date" gorm:"type:date;not null;index"`
	StartTime       string     `json:"start_time" gorm:"not null"`
	EndTime         string     `json:"end_time" gorm:"not null"`
	Kind            Kind       `json:"kind" gorm:"not null"`
	ItemID          *uuid.UUID `json:"item_id,omitempty" gorm:"type:uuid;index"`
	IsAvailable     bool       `json:"is_available" gorm:"not null;default:true"`
	MaxCapacity     int        `json:"max_capacity" gorm:"not null"`
	CurrentBookings int        `json:"current_bookings" gorm:"not null;default:0"`
	Price           *float64   `json:"price,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ParseMinutes converts an "HH:MM" string to minutes since midnight. The
// format is strict: two-digit hour and minute, nothing before or after.
func ParseMinutes(hhmm string) (int, error) {
	if len(hhmm) != 5 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", hhmm)
	}
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinutes converts minutes since midnight back to "HH:MM"
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// StartMinutes returns the start time in minutes since midnight.
// Returns -1 for a malformed time, which sorts such slots first.
func (t *TimeSlot) StartMinutes() int {
	m, err := ParseMinutes(t.StartTime)
	if err != nil {
		return -1
	}
	return m
}

func (t *TimeSlot) EndMinutes() int {
	m, err := ParseMinutes(t.EndTime)
	if err != nil {
		return -1
	}
	return m
}

// StartDateTime combines the slot date with its start time in UTC
func (t *TimeSlot) StartDateTime() time.Time {
	m := t.StartMinutes()
	if m < 0 {
		m = 0
	}
	d := t.Date.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), m/60, m%60, 0, 0, time.UTC)
}

// HasAvailableCapacity reports whether at least one seat remains
func (t *TimeSlot) HasAvailableCapacity() bool {
	return t.CurrentBookings < t.MaxCapacity
}

// RemainingCapacity returns the number of free seats, never negative
func (t *TimeSlot) RemainingCapacity() int {
	remaining := t.MaxCapacity - t.CurrentBookings
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsBookingAllowed reports whether a new booking may target this slot:
// the slot is open, has capacity, and has not started yet.
func (t *TimeSlot) IsBookingAllowed(now time.Time) bool {
	return t.IsAvailable && t.HasAvailableCapacity() && t.StartDateTime().After(now)
}
