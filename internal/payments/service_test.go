package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"atelier/internal/shared/apperrors"
)

type MockRepository struct{ mock.Mock }
type MockGateway struct{ mock.Mock }

func (m *MockRepository) Create(ctx context.Context, payment *Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockRepository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, payment *Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockGateway) Charge(ctx context.Context, amount float64, currency string, method Method) (*ChargeResult, error) {
	args := m.Called(ctx, amount, currency, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ChargeResult), args.Error(1)
}

func (m *MockGateway) Refund(ctx context.Context, transactionID string, amount float64) (*RefundResult, error) {
	args := m.Called(ctx, transactionID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RefundResult), args.Error(1)
}

func TestProcessPaymentSuccess(t *testing.T) {
	repo := new(MockRepository)
	gateway := new(MockGateway)
	svc := NewService(repo, gateway)

	bookingID := uuid.New()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*payments.Payment")).Return(nil)
	gateway.On("Charge", mock.Anything, 50000.0, "KRW", MethodCreditCard).
		Return(&ChargeResult{TransactionID: "TXN_1", ReceiptURL: "https://r/1", PaidAt: time.Now()}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*payments.Payment")).Return(nil)

	payment, err := svc.ProcessPayment(context.Background(), bookingID, 50000, MethodCreditCard)

	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, payment.Status)
	assert.Equal(t, "TXN_1", payment.TransactionID)
	assert.Equal(t, bookingID, payment.BookingID)
	repo.AssertExpectations(t)
}

func TestProcessPaymentInvalidAmount(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockGateway))

	_, err := svc.ProcessPayment(context.Background(), uuid.New(), 0, MethodCreditCard)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = svc.ProcessPayment(context.Background(), uuid.New(), -100, MethodCreditCard)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProcessPaymentInvalidMethod(t *testing.T) {
	svc := NewService(new(MockRepository), new(MockGateway))

	_, err := svc.ProcessPayment(context.Background(), uuid.New(), 1000, Method("BARTER"))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestProcessPaymentChargeFailureRecordsFailedRow(t *testing.T) {
	repo := new(MockRepository)
	gateway := new(MockGateway)
	svc := NewService(repo, gateway)

	var saved *Payment
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	gateway.On("Charge", mock.Anything, 1000.0, "KRW", MethodPaypal).
		Return(nil, errors.New("card declined"))
	repo.On("Update", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*Payment)
		}).Return(nil)

	_, err := svc.ProcessPayment(context.Background(), uuid.New(), 1000, MethodPaypal)

	assert.True(t, apperrors.IsKind(err, apperrors.KindPayment))
	assert.Equal(t, StatusFailed, saved.Status)
	assert.Equal(t, "card declined", saved.FailureReason)
}

func TestProcessRefundGuards(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockGateway))

	_, err := svc.ProcessRefund(context.Background(), uuid.Nil, 1000, "reason")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "nil payment id")

	_, err = svc.ProcessRefund(context.Background(), uuid.New(), 0, "reason")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "zero amount")

	_, err = svc.ProcessRefund(context.Background(), uuid.New(), -50, "reason")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "negative amount")

	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestProcessRefundNonCompletedPayment(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockGateway))

	for _, status := range []Status{StatusPending, StatusFailed, StatusRefunded, StatusCancelled} {
		paymentID := uuid.New()
		repo.On("GetByID", mock.Anything, paymentID).
			Return(&Payment{ID: paymentID, Amount: 1000, Status: status}, nil).Once()

		_, err := svc.ProcessRefund(context.Background(), paymentID, 500, "reason")
		assert.True(t, apperrors.IsKind(err, apperrors.KindBusinessLogic), string(status))
	}
}

func TestProcessRefundAmountOverPayment(t *testing.T) {
	repo := new(MockRepository)
	gateway := new(MockGateway)
	svc := NewService(repo, gateway)

	paymentID := uuid.New()
	repo.On("GetByID", mock.Anything, paymentID).
		Return(&Payment{ID: paymentID, Amount: 1000, Status: StatusCompleted}, nil)

	_, err := svc.ProcessRefund(context.Background(), paymentID, 1500, "reason")

	assert.True(t, apperrors.IsKind(err, apperrors.KindBusinessLogic))
	gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessRefundFullAmount(t *testing.T) {
	repo := new(MockRepository)
	gateway := new(MockGateway)
	svc := NewService(repo, gateway)

	paymentID := uuid.New()
	repo.On("GetByID", mock.Anything, paymentID).
		Return(&Payment{ID: paymentID, Amount: 1000, Status: StatusCompleted, TransactionID: "TXN_1"}, nil)
	gateway.On("Refund", mock.Anything, "TXN_1", 1000.0).
		Return(&RefundResult{RefundID: "RFD_1", RefundTransactionID: "TXN_2", RefundedAt: time.Now()}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	payment, err := svc.ProcessRefund(context.Background(), paymentID, 1000, "full refund")

	assert.NoError(t, err)
	assert.Equal(t, StatusRefunded, payment.Status)
	assert.Equal(t, 1000.0, payment.RefundAmount)
	assert.Equal(t, "RFD_1", payment.RefundID)
}

func TestProcessRefundPartialAmount(t *testing.T) {
	repo := new(MockRepository)
	gateway := new(MockGateway)
	svc := NewService(repo, gateway)

	paymentID := uuid.New()
	repo.On("GetByID", mock.Anything, paymentID).
		Return(&Payment{ID: paymentID, Amount: 1000, Status: StatusCompleted, TransactionID: "TXN_1"}, nil)
	gateway.On("Refund", mock.Anything, "TXN_1", 800.0).
		Return(&RefundResult{RefundID: "RFD_1", RefundTransactionID: "TXN_2", RefundedAt: time.Now()}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	payment, err := svc.ProcessRefund(context.Background(), paymentID, 800, "tiered refund")

	assert.NoError(t, err)
	assert.Equal(t, StatusPartiallyRefunded, payment.Status)
	assert.Equal(t, 800.0, payment.RefundAmount)
}

func TestProcessRefundGatewayFailure(t *testing.T) {
	repo := new(MockRepository)
	gateway := new(MockGateway)
	svc := NewService(repo, gateway)

	paymentID := uuid.New()
	repo.On("GetByID", mock.Anything, paymentID).
		Return(&Payment{ID: paymentID, Amount: 1000, Status: StatusCompleted, TransactionID: "TXN_1"}, nil)
	gateway.On("Refund", mock.Anything, "TXN_1", 500.0).
		Return(nil, errors.New("gateway unreachable"))

	_, err := svc.ProcessRefund(context.Background(), paymentID, 500, "reason")

	assert.True(t, apperrors.IsKind(err, apperrors.KindPayment))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
