package payments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"atelier/internal/shared/apperrors"
)

// Service interface defines the contract for payment business logic
type Service interface {
	ProcessPayment(ctx context.Context, bookingID uuid.UUID, amount float64, method Method) (*Payment, error)
	ProcessRefund(ctx context.Context, paymentID uuid.UUID, refundAmount float64, reason string) (*Payment, error)
	GetPaymentInfo(ctx context.Context, bookingID uuid.UUID) (*Payment, error)
}

type service struct {
	repo    Repository
	gateway Gateway
}

func NewService(repo Repository, gateway Gateway) Service {
	return &service{
		repo:    repo,
		gateway: gateway,
	}
}

// ProcessPayment creates a pending payment record for the booking and charges
// it through the gateway. The record is persisted either way so a failed
// charge leaves an auditable FAILED row behind.
func (s *service) ProcessPayment(ctx context.Context, bookingID uuid.UUID, amount float64, method Method) (*Payment, error) {
	if amount <= 0 {
		return nil, apperrors.Validation("payment amount must be positive, got %.2f", amount)
	}
	if !IsValidMethod(string(method)) {
		return nil, apperrors.Validation("unsupported payment method %q", method)
	}

	payment := &Payment{
		BookingID: bookingID,
		Amount:    amount,
		Currency:  "KRW",
		Status:    StatusPending,
		Method:    method,
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, err
	}

	result, err := s.gateway.Charge(ctx, amount, payment.Currency, method)
	if err != nil {
		payment.MarkFailed(err.Error(), time.Now())
		if updateErr := s.repo.Update(ctx, payment); updateErr != nil {
			return nil, updateErr
		}
		return nil, apperrors.Payment("charge of %.2f %s failed: %v", amount, payment.Currency, err)
	}

	payment.MarkCompleted(result.TransactionID, result.PaidAt)
	payment.ReceiptURL = result.ReceiptURL
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

// ProcessRefund executes a refund against a completed payment. Guards run in
// order: id and amount shape, payment state, amount ceiling.
func (s *service) ProcessRefund(ctx context.Context, paymentID uuid.UUID, refundAmount float64, reason string) (*Payment, error) {
	if paymentID == uuid.Nil {
		return nil, apperrors.Validation("payment id is required")
	}
	if refundAmount <= 0 {
		return nil, apperrors.Validation("refund amount must be positive, got %.2f", refundAmount)
	}

	payment, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if !payment.IsRefundable() {
		return nil, apperrors.BusinessLogic("payment %s is not refundable in status %s", payment.ID, payment.Status)
	}
	if refundAmount > payment.Amount {
		return nil, apperrors.BusinessLogic("refund amount %.2f exceeds payment amount %.2f", refundAmount, payment.Amount)
	}

	result, err := s.gateway.Refund(ctx, payment.TransactionID, refundAmount)
	if err != nil {
		return nil, apperrors.Payment("refund of %.2f failed for payment %s: %v", refundAmount, payment.ID, err)
	}

	payment.MarkRefunded(result.RefundID, result.RefundTransactionID, reason, refundAmount, result.RefundedAt)
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

func (s *service) GetPaymentInfo(ctx context.Context, bookingID uuid.UUID) (*Payment, error) {
	return s.repo.GetByBookingID(ctx, bookingID)
}
