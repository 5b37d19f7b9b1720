package bookings

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"atelier/internal/payments"
	"atelier/internal/shared/apperrors"
	"atelier/internal/shared/result"
	"atelier/internal/timeslots"
	"atelier/pkg/logger"
)

// SlotProvider gives the booking service read access to time slots without
// pulling in the full time-slot service surface
type SlotProvider interface {
	GetTimeSlot(ctx context.Context, id uuid.UUID) (*timeslots.TimeSlot, error)
}

// EventPublisher publishes booking lifecycle notifications. May be nil when
// the notification pipeline is disabled.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, eventType string, userID, bookingID uuid.UUID, data map[string]interface{}) error
}

// Service interface defines the contract for booking business logic
type Service interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*Booking, error)
	CancelBooking(ctx context.Context, bookingID, userID uuid.UUID, isAdmin bool, reason string) (*CancellationResponse, error)
	UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, target Status, isAdmin bool) (*Booking, error)
	GetBooking(ctx context.Context, bookingID, userID uuid.UUID, isAdmin bool) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, error)
	GetBookingsByTimeSlot(ctx context.Context, timeSlotID uuid.UUID) ([]Booking, error)
}

type service struct {
	repo       Repository
	slots      SlotProvider
	paymentSvc payments.Service
	publisher  EventPublisher
	log        *logger.Logger
}

func NewService(repo Repository, slots SlotProvider, paymentSvc payments.Service, publisher EventPublisher, log *logger.Logger) Service {
	return &service{
		repo:       repo,
		slots:      slots,
		paymentSvc: paymentSvc,
		publisher:  publisher,
		log:        log,
	}
}

// CreateBooking reserves a seat on the slot, charges the payment, and
// confirms the booking. The capacity check and booking insert run in one
// transaction at the repository; a failed charge leaves the booking PENDING.
func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*Booking, error) {
	if req.TotalAmount > MaxBookingAmount {
		return nil, apperrors.Validation("total amount %.2f exceeds the maximum of %d", req.TotalAmount, MaxBookingAmount)
	}

	timeSlotID, err := uuid.Parse(req.TimeSlotID)
	if err != nil {
		return nil, apperrors.Validation("invalid time slot id %q", req.TimeSlotID)
	}

	slot, err := s.slots.GetTimeSlot(ctx, timeSlotID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !slot.IsBookingAllowed(now) {
		return nil, apperrors.BusinessLogic("time slot %s is not open for booking", slot.ID)
	}
	if string(slot.Kind) != req.Type {
		return nil, apperrors.Validation("booking type %s does not match slot kind %s", req.Type, slot.Kind)
	}

	var itemID *uuid.UUID
	if req.ItemID != "" {
		id, err := uuid.Parse(req.ItemID)
		if err != nil {
			return nil, apperrors.Validation("invalid item id %q", req.ItemID)
		}
		itemID = &id
	}

	booking := &Booking{
		UserID:      userID,
		TimeSlotID:  timeSlotID,
		Type:        Type(req.Type),
		ItemID:      itemID,
		Status:      StatusPending,
		TotalAmount: req.TotalAmount,
		Notes:       strings.TrimSpace(req.Notes),
	}

	if err := s.repo.CreateBookingWithCapacityCheck(ctx, booking); err != nil {
		return nil, err
	}

	payment, err := s.paymentSvc.ProcessPayment(ctx, booking.ID, req.TotalAmount, payments.Method(req.PaymentMethod))
	if err != nil {
		s.log.WarnContext(ctx, "Payment failed, booking left pending",
			"booking_id", booking.ID.String(),
			"error", err.Error(),
		)
		return nil, err
	}

	if err := s.repo.UpdateBookingStatus(ctx, booking.ID, StatusConfirmed, nil); err != nil {
		return nil, err
	}
	booking.Status = StatusConfirmed
	booking.Payment = payment

	s.log.LogBookingCreated(ctx, booking.ID.String(), booking.TimeSlotID.String(), userID.String())
	s.publish(ctx, "BOOKING_CONFIRMED", userID, booking.ID, map[string]interface{}{
		"time_slot_id": booking.TimeSlotID.String(),
		"total_amount": booking.TotalAmount,
	})

	return booking, nil
}

// CancelBooking cancels an active booking, computing the tiered refund from
// the slot start time. A refund failure is logged and alerted but never
// fails the cancellation itself.
func (s *service) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID, isAdmin bool, reason string) (*CancellationResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.Validation("cancellation reason is required")
	}
	if len(reason) > 500 {
		return nil, apperrors.Validation("cancellation reason exceeds 500 characters")
	}

	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID && !isAdmin {
		return nil, apperrors.Auth("booking %s does not belong to the caller", bookingID)
	}

	if !booking.IsActive() {
		return nil, apperrors.BusinessLogic("booking %s is already cancelled or completed", bookingID)
	}

	now := time.Now()

	// Best-effort slot lookup: a slot that fell out of the queryable window
	// yields a zero refund rather than blocking the cancellation.
	refundAmount := 0.0
	policyText := "No refund (slot unavailable)"
	if slot, slotErr := s.slots.GetTimeSlot(ctx, booking.TimeSlotID); slotErr == nil {
		slotStart := slot.StartDateTime()
		refundAmount = booking.CalculateRefundAmount(slotStart, now)
		policyText = RefundPolicyText(slotStart, now)
	}

	if refundAmount > 0 && booking.Payment != nil && booking.Payment.IsRefundable() {
		refunded := s.tryRefund(ctx, booking, refundAmount, reason)
		if !refunded {
			refundAmount = 0
		}
	} else if refundAmount > 0 {
		// No completed payment to refund against
		refundAmount = 0
	}

	if err := s.repo.CancelBookingAndReleaseSlot(ctx, bookingID, reason, now); err != nil {
		return nil, err
	}

	s.log.LogBookingCancelled(ctx, bookingID.String(), userID.String(), refundAmount)
	s.publish(ctx, "BOOKING_CANCELLED", booking.UserID, bookingID, map[string]interface{}{
		"refund_amount": refundAmount,
		"reason":        reason,
	})

	return &CancellationResponse{
		BookingID:    bookingID.String(),
		Status:       StatusCancelled,
		RefundAmount: refundAmount,
		PolicyText:   policyText,
	}, nil
}

// tryRefund executes the refund and folds the outcome: success is logged,
// failure is surfaced through the ops alert channel for manual follow-up.
// Returns whether the refund went through.
func (s *service) tryRefund(ctx context.Context, booking *Booking, amount float64, reason string) bool {
	outcome := func() result.Result[*payments.Payment] {
		p, err := s.paymentSvc.ProcessRefund(ctx, booking.Payment.ID, amount, reason)
		if err != nil {
			return result.Err[*payments.Payment](err)
		}
		return result.Ok(p)
	}()

	return result.Fold(outcome,
		func(p *payments.Payment) bool {
			booking.Payment = p
			return true
		},
		func(err error) bool {
			s.log.LogRefundFailed(ctx, booking.ID.String(), booking.Payment.ID.String(), amount, err)
			s.publish(ctx, "REFUND_FAILED", booking.UserID, booking.ID, map[string]interface{}{
				"payment_id":    booking.Payment.ID.String(),
				"refund_amount": amount,
				"error":         err.Error(),
			})
			return false
		},
	)
}

// UpdateBookingStatus applies a direct status change through the transition
// table. Admin only; the role check runs before any repository access.
func (s *service) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, target Status, isAdmin bool) (*Booking, error) {
	if !isAdmin {
		return nil, apperrors.Auth("only admins may update booking status directly")
	}

	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status == target {
		return nil, apperrors.BusinessLogic("booking %s is already in status %s", bookingID, target)
	}
	if !booking.Status.CanTransitionTo(target) {
		return nil, apperrors.BusinessLogic("transition from %s to %s is not allowed", booking.Status, target)
	}

	var cancelledAt *time.Time
	if target == StatusCancelled {
		now := time.Now()
		cancelledAt = &now
	}

	if err := s.repo.UpdateBookingStatus(ctx, bookingID, target, cancelledAt); err != nil {
		return nil, err
	}

	booking.Status = target
	if cancelledAt != nil {
		booking.CancelledAt = cancelledAt
	}
	return booking, nil
}

func (s *service) GetBooking(ctx context.Context, bookingID, userID uuid.UUID, isAdmin bool) (*Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID && !isAdmin {
		return nil, apperrors.Auth("booking %s does not belong to the caller", bookingID)
	}
	return booking, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.GetUserBookings(ctx, userID, limit, offset)
}

func (s *service) GetBookingsByTimeSlot(ctx context.Context, timeSlotID uuid.UUID) ([]Booking, error) {
	return s.repo.GetBookingsByTimeSlot(ctx, timeSlotID)
}

// publish sends a notification best-effort; delivery problems are logged,
// never propagated
func (s *service) publish(ctx context.Context, eventType string, userID, bookingID uuid.UUID, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishBookingEvent(ctx, eventType, userID, bookingID, data); err != nil {
		s.log.WarnContext(ctx, "Failed to publish booking notification",
			"event_type", eventType,
			"booking_id", bookingID.String(),
			"error", err.Error(),
		)
	}
}
