package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"atelier/internal/payments"
	"atelier/internal/shared/apperrors"
	"atelier/internal/timeslots"
	"atelier/pkg/logger"
)

type MockRepository struct{ mock.Mock }
type MockSlotProvider struct{ mock.Mock }
type MockPaymentService struct{ mock.Mock }
type MockPublisher struct{ mock.Mock }

func (m *MockRepository) CreateBookingWithCapacityCheck(ctx context.Context, booking *Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockRepository) GetBookingsByTimeSlot(ctx context.Context, timeSlotID uuid.UUID) ([]Booking, error) {
	args := m.Called(ctx, timeSlotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockRepository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error {
	return m.Called(ctx, id, status, cancelledAt).Error(0)
}

func (m *MockRepository) CancelBookingAndReleaseSlot(ctx context.Context, id uuid.UUID, reason string, cancelledAt time.Time) error {
	return m.Called(ctx, id, reason, cancelledAt).Error(0)
}

func (m *MockSlotProvider) GetTimeSlot(ctx context.Context, id uuid.UUID) (*timeslots.TimeSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timeslots.TimeSlot), args.Error(1)
}

func (m *MockPaymentService) ProcessPayment(ctx context.Context, bookingID uuid.UUID, amount float64, method payments.Method) (*payments.Payment, error) {
	args := m.Called(ctx, bookingID, amount, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Payment), args.Error(1)
}

func (m *MockPaymentService) ProcessRefund(ctx context.Context, paymentID uuid.UUID, refundAmount float64, reason string) (*payments.Payment, error) {
	args := m.Called(ctx, paymentID, refundAmount, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Payment), args.Error(1)
}

func (m *MockPaymentService) GetPaymentInfo(ctx context.Context, bookingID uuid.UUID) (*payments.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Payment), args.Error(1)
}

func (m *MockPublisher) PublishBookingEvent(ctx context.Context, eventType string, userID, bookingID uuid.UUID, data map[string]interface{}) error {
	return m.Called(ctx, eventType, userID, bookingID, data).Error(0)
}

func newTestService(repo *MockRepository, slots *MockSlotProvider, paymentSvc *MockPaymentService, publisher *MockPublisher) Service {
	return NewService(repo, slots, paymentSvc, publisher, logger.New())
}

// bookableSlot builds an open slot whose start time is `start` (UTC, minute
// precision)
func bookableSlot(id uuid.UUID, start time.Time) *timeslots.TimeSlot {
	start = start.UTC()
	return &timeslots.TimeSlot{
		ID:          id,
		Date:        time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:   timeslots.FormatMinutes(start.Hour()*60 + start.Minute()),
		EndTime:     "23:59",
		Kind:        timeslots.KindWorkshop,
		IsAvailable: true,
		MaxCapacity: 10,
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	repo := new(MockRepository)
	slots := new(MockSlotProvider)
	paymentSvc := new(MockPaymentService)
	publisher := new(MockPublisher)
	svc := newTestService(repo, slots, paymentSvc, publisher)

	userID := uuid.New()
	slotID := uuid.New()
	bookingID := uuid.New()
	slot := bookableSlot(slotID, time.Now().Add(48*time.Hour))

	slots.On("GetTimeSlot", mock.Anything, slotID).Return(slot, nil)
	repo.On("CreateBookingWithCapacityCheck", mock.Anything, mock.AnythingOfType("*bookings.Booking")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*Booking).ID = bookingID
		}).Return(nil)
	paymentSvc.On("ProcessPayment", mock.Anything, bookingID, 50000.0, payments.MethodCreditCard).
		Return(&payments.Payment{ID: uuid.New(), BookingID: bookingID, Amount: 50000, Status: payments.StatusCompleted}, nil)
	repo.On("UpdateBookingStatus", mock.Anything, bookingID, StatusConfirmed, (*time.Time)(nil)).Return(nil)
	publisher.On("PublishBookingEvent", mock.Anything, "BOOKING_CONFIRMED", userID, bookingID, mock.Anything).Return(nil)

	booking, err := svc.CreateBooking(context.Background(), userID, CreateBookingRequest{
		TimeSlotID:    slotID.String(),
		Type:          "WORKSHOP",
		TotalAmount:   50000,
		PaymentMethod: "CREDIT_CARD",
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusConfirmed, booking.Status)
	assert.NotNil(t, booking.Payment)
	repo.AssertExpectations(t)
	paymentSvc.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateBookingAmountOverCap(t *testing.T) {
	repo := new(MockRepository)
	slots := new(MockSlotProvider)
	svc := newTestService(repo, slots, new(MockPaymentService), new(MockPublisher))

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		TimeSlotID:    uuid.New().String(),
		Type:          "WORKSHOP",
		TotalAmount:   MaxBookingAmount + 1,
		PaymentMethod: "CREDIT_CARD",
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	slots.AssertNotCalled(t, "GetTimeSlot", mock.Anything, mock.Anything)
}

func TestCreateBookingSlotFull(t *testing.T) {
	repo := new(MockRepository)
	slots := new(MockSlotProvider)
	svc := newTestService(repo, slots, new(MockPaymentService), new(MockPublisher))

	slotID := uuid.New()
	slot := bookableSlot(slotID, time.Now().Add(48*time.Hour))
	slot.CurrentBookings = slot.MaxCapacity
	slots.On("GetTimeSlot", mock.Anything, slotID).Return(slot, nil)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		TimeSlotID:    slotID.String(),
		Type:          "WORKSHOP",
		TotalAmount:   10000,
		PaymentMethod: "CREDIT_CARD",
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindBusinessLogic))
	repo.AssertNotCalled(t, "CreateBookingWithCapacityCheck", mock.Anything, mock.Anything)
}

func TestCreateBookingTypeMismatch(t *testing.T) {
	slots := new(MockSlotProvider)
	svc := newTestService(new(MockRepository), slots, new(MockPaymentService), new(MockPublisher))

	slotID := uuid.New()
	slots.On("GetTimeSlot", mock.Anything, slotID).Return(bookableSlot(slotID, time.Now().Add(48*time.Hour)), nil)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		TimeSlotID:    slotID.String(),
		Type:          "SPACE",
		TotalAmount:   10000,
		PaymentMethod: "CREDIT_CARD",
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestCreateBookingPaymentFailureLeavesPending(t *testing.T) {
	repo := new(MockRepository)
	slots := new(MockSlotProvider)
	paymentSvc := new(MockPaymentService)
	svc := newTestService(repo, slots, paymentSvc, new(MockPublisher))

	slotID := uuid.New()
	bookingID := uuid.New()
	slots.On("GetTimeSlot", mock.Anything, slotID).Return(bookableSlot(slotID, time.Now().Add(48*time.Hour)), nil)
	repo.On("CreateBookingWithCapacityCheck", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*Booking).ID = bookingID
		}).Return(nil)
	paymentSvc.On("ProcessPayment", mock.Anything, bookingID, 10000.0, payments.MethodKakaoPay).
		Return(nil, apperrors.Payment("charge declined"))

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		TimeSlotID:    slotID.String(),
		Type:          "WORKSHOP",
		TotalAmount:   10000,
		PaymentMethod: "KAKAO_PAY",
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindPayment))
	repo.AssertNotCalled(t, "UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelBookingFiveDaysOutRefundsEightyPercent(t *testing.T) {
	repo := new(MockRepository)
	slots := new(MockSlotProvider)
	paymentSvc := new(MockPaymentService)
	publisher := new(MockPublisher)
	svc := newTestService(repo, slots, paymentSvc, publisher)

	userID := uuid.New()
	bookingID := uuid.New()
	slotID := uuid.New()
	paymentID := uuid.New()

	booking := &Booking{
		ID:          bookingID,
		UserID:      userID,
		TimeSlotID:  slotID,
		Status:      StatusConfirmed,
		TotalAmount: 50000,
		Payment:     &payments.Payment{ID: paymentID, Amount: 50000, Status: payments.StatusCompleted},
	}

	repo.On("GetBookingByID", mock.Anything, bookingID).Return(booking, nil)
	slots.On("GetTimeSlot", mock.Anything, slotID).Return(bookableSlot(slotID, time.Now().Add(5*24*time.Hour)), nil)
	paymentSvc.On("ProcessRefund", mock.Anything, paymentID, 40000.0, "schedule conflict").
		Return(&payments.Payment{ID: paymentID, Amount: 50000, Status: payments.StatusPartiallyRefunded, RefundAmount: 40000}, nil)
	repo.On("CancelBookingAndReleaseSlot", mock.Anything, bookingID, "schedule conflict", mock.Anything).Return(nil)
	publisher.On("PublishBookingEvent", mock.Anything, "BOOKING_CANCELLED", userID, bookingID, mock.Anything).Return(nil)

	resp, err := svc.CancelBooking(context.Background(), bookingID, userID, false, "schedule conflict")

	assert.NoError(t, err)
	assert.Equal(t, 40000.0, resp.RefundAmount)
	assert.Equal(t, StatusCancelled, resp.Status)
	repo.AssertExpectations(t)
	paymentSvc.AssertExpectations(t)
}

func TestCancelBookingInsideCutoffNoRefund(t *testing.T) {
	repo := new(MockRepository)
	slots := new(MockSlotProvider)
	paymentSvc := new(MockPaymentService)
	publisher := new(MockPublisher)
	svc := newTestService(repo, slots, paymentSvc, publisher)

	userID := uuid.New()
	bookingID := uuid.New()
	slotID := uuid.New()

	booking := &Booking{
		ID:          bookingID,
		UserID:      userID,
		TimeSlotID:  slotID,
		Status:      StatusConfirmed,
		TotalAmount: 50000,
		Payment:     &payments.Payment{ID: uuid.New(), Amount: 50000, Status: payments.StatusCompleted},
	}

	repo.On("GetBookingByID", mock.Anything, bookingID).Return(booking, nil)
	slots.On("GetTimeSlot", mock.Anything, slotID).Return(bookableSlot(slotID, time.Now().Add(2*time.Hour)), nil)
	repo.On("CancelBookingAndReleaseSlot", mock.Anything, bookingID, "too late anyway", mock.Anything).Return(nil)
	publisher.On("PublishBookingEvent", mock.Anything, "BOOKING_CANCELLED", userID, bookingID, mock.Anything).Return(nil)

	resp, err := svc.CancelBooking(context.Background(), bookingID, userID, false, "too late anyway")

	assert.NoError(t, err)
	assert.Equal(t, 0.0, resp.RefundAmount)
	paymentSvc.AssertNotCalled(t, "ProcessRefund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelBookingAlreadyCancelled(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockSlotProvider), new(MockPaymentService), new(MockPublisher))

	userID := uuid.New()
	bookingID := uuid.New()
	repo.On("GetBookingByID", mock.Anything, bookingID).
		Return(&Booking{ID: bookingID, UserID: userID, Status: StatusCancelled}, nil)

	_, err := svc.CancelBooking(context.Background(), bookingID, userID, false, "again")

	assert.True(t, apperrors.IsKind(err, apperrors.KindBusinessLogic))
	repo.AssertNotCalled(t, "CancelBookingAndReleaseSlot", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelBookingNotOwner(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockSlotProvider), new(MockPaymentService), new(MockPublisher))

	bookingID := uuid.New()
	repo.On("GetBookingByID", mock.Anything, bookingID).
		Return(&Booking{ID: bookingID, UserID: uuid.New(), Status: StatusConfirmed}, nil)

	_, err := svc.CancelBooking(context.Background(), bookingID, uuid.New(), false, "not mine")

	assert.True(t, apperrors.IsKind(err, apperrors.KindAuth))
}

func TestCancelBookingEmptyReason(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockSlotProvider), new(MockPaymentService), new(MockPublisher))

	_, err := svc.CancelBooking(context.Background(), uuid.New(), uuid.New(), false, "   ")

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	repo.AssertNotCalled(t, "GetBookingByID", mock.Anything, mock.Anything)
}

func TestCancelBookingRefundFailureDoesNotBlockCancellation(t *testing.T) {
	repo := new(MockRepository)
	slots := new(MockSlotProvider)
	paymentSvc := new(MockPaymentService)
	publisher := new(MockPublisher)
	svc := newTestService(repo, slots, paymentSvc, publisher)

	userID := uuid.New()
	bookingID := uuid.New()
	slotID := uuid.New()
	paymentID := uuid.New()

	booking := &Booking{
		ID:          bookingID,
		UserID:      userID,
		TimeSlotID:  slotID,
		Status:      StatusConfirmed,
		TotalAmount: 50000,
		Payment:     &payments.Payment{ID: paymentID, Amount: 50000, Status: payments.StatusCompleted},
	}

	repo.On("GetBookingByID", mock.Anything, bookingID).Return(booking, nil)
	slots.On("GetTimeSlot", mock.Anything, slotID).Return(bookableSlot(slotID, time.Now().Add(10*24*time.Hour)), nil)
	paymentSvc.On("ProcessRefund", mock.Anything, paymentID, 50000.0, "plans changed").
		Return(nil, apperrors.Payment("gateway unreachable"))
	repo.On("CancelBookingAndReleaseSlot", mock.Anything, bookingID, "plans changed", mock.Anything).Return(nil)
	publisher.On("PublishBookingEvent", mock.Anything, "REFUND_FAILED", userID, bookingID, mock.Anything).Return(nil)
	publisher.On("PublishBookingEvent", mock.Anything, "BOOKING_CANCELLED", userID, bookingID, mock.Anything).Return(nil)

	resp, err := svc.CancelBooking(context.Background(), bookingID, userID, false, "plans changed")

	assert.NoError(t, err)
	assert.Equal(t, 0.0, resp.RefundAmount)
	assert.Equal(t, StatusCancelled, resp.Status)
	publisher.AssertExpectations(t)
}

func TestUpdateBookingStatusNonAdmin(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockSlotProvider), new(MockPaymentService), new(MockPublisher))

	_, err := svc.UpdateBookingStatus(context.Background(), uuid.New(), StatusCompleted, false)

	assert.True(t, apperrors.IsKind(err, apperrors.KindAuth))
	repo.AssertNotCalled(t, "GetBookingByID", mock.Anything, mock.Anything)
}

func TestUpdateBookingStatusDisallowedTransition(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockSlotProvider), new(MockPaymentService), new(MockPublisher))

	bookingID := uuid.New()
	repo.On("GetBookingByID", mock.Anything, bookingID).
		Return(&Booking{ID: bookingID, Status: StatusCompleted}, nil)

	_, err := svc.UpdateBookingStatus(context.Background(), bookingID, StatusPending, true)

	assert.True(t, apperrors.IsKind(err, apperrors.KindBusinessLogic))
	repo.AssertNotCalled(t, "UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateBookingStatusSameStatus(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockSlotProvider), new(MockPaymentService), new(MockPublisher))

	bookingID := uuid.New()
	repo.On("GetBookingByID", mock.Anything, bookingID).
		Return(&Booking{ID: bookingID, Status: StatusConfirmed}, nil)

	_, err := svc.UpdateBookingStatus(context.Background(), bookingID, StatusConfirmed, true)

	assert.True(t, apperrors.IsKind(err, apperrors.KindBusinessLogic))
}

func TestUpdateBookingStatusConfirmedToCompleted(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockSlotProvider), new(MockPaymentService), new(MockPublisher))

	bookingID := uuid.New()
	repo.On("GetBookingByID", mock.Anything, bookingID).
		Return(&Booking{ID: bookingID, Status: StatusConfirmed}, nil)
	repo.On("UpdateBookingStatus", mock.Anything, bookingID, StatusCompleted, (*time.Time)(nil)).Return(nil)

	booking, err := svc.UpdateBookingStatus(context.Background(), bookingID, StatusCompleted, true)

	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, booking.Status)
	repo.AssertExpectations(t)
}

func TestUpdateBookingStatusToCancelledSetsTimestamp(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockSlotProvider), new(MockPaymentService), new(MockPublisher))

	bookingID := uuid.New()
	repo.On("GetBookingByID", mock.Anything, bookingID).
		Return(&Booking{ID: bookingID, Status: StatusPending}, nil)
	repo.On("UpdateBookingStatus", mock.Anything, bookingID, StatusCancelled, mock.AnythingOfType("*time.Time")).Return(nil)

	booking, err := svc.UpdateBookingStatus(context.Background(), bookingID, StatusCancelled, true)

	assert.NoError(t, err)
	assert.NotNil(t, booking.CancelledAt)
}

func TestGetBookingOwnership(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockSlotProvider), new(MockPaymentService), new(MockPublisher))

	owner := uuid.New()
	bookingID := uuid.New()
	repo.On("GetBookingByID", mock.Anything, bookingID).
		Return(&Booking{ID: bookingID, UserID: owner, Status: StatusConfirmed}, nil)

	_, err := svc.GetBooking(context.Background(), bookingID, owner, false)
	assert.NoError(t, err)

	_, err = svc.GetBooking(context.Background(), bookingID, uuid.New(), false)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuth))

	// admins read anyone's booking
	_, err = svc.GetBooking(context.Background(), bookingID, uuid.New(), true)
	assert.NoError(t, err)
}

func TestGetUserBookingsDefaults(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockSlotProvider), new(MockPaymentService), new(MockPublisher))

	userID := uuid.New()
	repo.On("GetUserBookings", mock.Anything, userID, 10, 0).Return([]Booking{}, nil)

	_, err := svc.GetUserBookings(context.Background(), userID, 0, -5)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
