package timeslots

import (
	"time"

	"atelier/internal/shared/apperrors"
)

// Business bounds for slot creation. MaxSlotCapacity has no counterpart in
// the booking policy itself; 10000 is a sanity ceiling for the largest venue.
const (
	MaxSlotCapacity    = 10000
	MinSlotDurationMin = 30
	MaxSlotDurationMin = 480
	MaxRangeDays       = 90
)

// truncateToDay drops the time-of-day component (UTC)
func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ValidateDate fails when date (day granularity) is strictly before today
func ValidateDate(date, now time.Time) error {
	if truncateToDay(date).Before(truncateToDay(now)) {
		return apperrors.Validation("date %s is in the past", truncateToDay(date).Format("2006-01-02"))
	}
	return nil
}

// ValidateTimeRange fails when start >= end, compared as minutes since midnight
func ValidateTimeRange(startTime, endTime string) error {
	start, err := ParseMinutes(startTime)
	if err != nil {
		return apperrors.Validation("invalid start time %q", startTime)
	}
	end, err := ParseMinutes(endTime)
	if err != nil {
		return apperrors.Validation("invalid end time %q", endTime)
	}
	if start >= end {
		return apperrors.Validation("start time %s must be before end time %s", startTime, endTime)
	}
	return nil
}

// ValidateCapacity fails when maxCapacity is outside [1, MaxSlotCapacity]
func ValidateCapacity(maxCapacity int) error {
	if maxCapacity < 1 {
		return apperrors.Validation("capacity must be at least 1, got %d", maxCapacity)
	}
	if maxCapacity > MaxSlotCapacity {
		return apperrors.Validation("capacity %d exceeds the maximum of %d", maxCapacity, MaxSlotCapacity)
	}
	return nil
}

// ValidateDuration fails when the slot duration is outside [30, 480] minutes
func ValidateDuration(durationMinutes int) error {
	if durationMinutes < MinSlotDurationMin || durationMinutes > MaxSlotDurationMin {
		return apperrors.Validation("slot duration must be between %d and %d minutes, got %d",
			MinSlotDurationMin, MaxSlotDurationMin, durationMinutes)
	}
	return nil
}

// ValidateDateRange applies the shared range rules for bulk generation and
// availability queries: ordered endpoints, startDate not past, span <= 90 days.
func ValidateDateRange(startDate, endDate, now time.Time) error {
	start := truncateToDay(startDate)
	end := truncateToDay(endDate)

	if start.After(end) {
		return apperrors.Validation("start date %s is after end date %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	if err := ValidateDate(start, now); err != nil {
		return err
	}
	if end.Sub(start) > MaxRangeDays*24*time.Hour {
		return apperrors.Validation("date range exceeds %d days", MaxRangeDays)
	}
	return nil
}
