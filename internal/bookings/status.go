package bookings

// Status is the booking lifecycle enum
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
	StatusRefunded  Status = "REFUNDED"
)

// transitions is the authoritative table for direct status updates.
// CANCELLED→REFUNDED is included so a refunded booking is reachable after
// cancellation; COMPLETED and REFUNDED are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusNoShow:    {StatusCompleted},
	StatusCancelled: {StatusRefunded},
	StatusCompleted: {},
	StatusRefunded:  {},
}

// CanTransitionTo reports whether the table allows s → target.
// Self-transitions are never allowed.
func (s Status) CanTransitionTo(target Status) bool {
	if s == target {
		return false
	}
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsActive reports whether the booking counts against slot capacity and is
// eligible for cancellation
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow, StatusRefunded:
		return true
	default:
		return false
	}
}
