package timeslots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"atelier/internal/shared/apperrors"
	"atelier/internal/shared/config"
	"atelier/pkg/logger"
)

type MockRepository struct{ mock.Mock }

func (m *MockRepository) Create(ctx context.Context, slot *TimeSlot) error {
	return m.Called(ctx, slot).Error(0)
}

func (m *MockRepository) CreateBatch(ctx context.Context, slots []*TimeSlot) error {
	return m.Called(ctx, slots).Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*TimeSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TimeSlot), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, slot *TimeSlot) error {
	return m.Called(ctx, slot).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) GetAvailableBetween(ctx context.Context, itemID uuid.UUID, startDate, endDate time.Time) ([]TimeSlot, error) {
	args := m.Called(ctx, itemID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TimeSlot), args.Error(1)
}

func (m *MockRepository) CountActiveBookings(ctx context.Context, slotID uuid.UUID) (int64, error) {
	args := m.Called(ctx, slotID)
	return args.Get(0).(int64), args.Error(1)
}

func newSlotService(repo Repository) Service {
	return NewService(repo, nil, &config.Config{}, logger.New())
}

func TestBulkGenerateSingleDay(t *testing.T) {
	repo := new(MockRepository)
	svc := newSlotService(repo)

	var persisted []*TimeSlot
	repo.On("CreateBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			persisted = append(persisted, args.Get(1).([]*TimeSlot)...)
		}).Return(nil)

	resp, err := svc.BulkGenerate(context.Background(), BulkGenerateRequest{
		StartDate:           "2030-06-03",
		EndDate:             "2030-06-03",
		StartTime:           "09:00",
		EndTime:             "12:00",
		SlotDurationMinutes: 60,
		MaxCapacity:         5,
		Kind:                "WORKSHOP",
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, resp.SlotsCreated)
	assert.Len(t, persisted, 3)

	assert.Equal(t, "09:00", persisted[0].StartTime)
	assert.Equal(t, "10:00", persisted[0].EndTime)
	assert.Equal(t, "10:00", persisted[1].StartTime)
	assert.Equal(t, "11:00", persisted[2].StartTime)
	assert.Equal(t, "12:00", persisted[2].EndTime)
	for _, slot := range persisted {
		assert.True(t, slot.IsAvailable)
		assert.Equal(t, 5, slot.MaxCapacity)
		assert.Equal(t, KindWorkshop, slot.Kind)
	}
}

func TestBulkGenerateLeftoverWindowIsDropped(t *testing.T) {
	repo := new(MockRepository)
	svc := newSlotService(repo)

	var persisted []*TimeSlot
	repo.On("CreateBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			persisted = append(persisted, args.Get(1).([]*TimeSlot)...)
		}).Return(nil)

	// 09:00-12:30 with 60-minute slots leaves a 30-minute remainder
	resp, err := svc.BulkGenerate(context.Background(), BulkGenerateRequest{
		StartDate:           "2030-06-03",
		EndDate:             "2030-06-03",
		StartTime:           "09:00",
		EndTime:             "12:30",
		SlotDurationMinutes: 60,
		MaxCapacity:         5,
		Kind:                "SPACE",
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, resp.SlotsCreated)
	assert.Equal(t, "12:00", persisted[2].EndTime)
}

func TestBulkGenerateExcludedWeekdays(t *testing.T) {
	repo := new(MockRepository)
	svc := newSlotService(repo)

	day := time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)

	_, err := svc.BulkGenerate(context.Background(), BulkGenerateRequest{
		StartDate:           "2030-06-03",
		EndDate:             "2030-06-03",
		StartTime:           "09:00",
		EndTime:             "12:00",
		SlotDurationMinutes: 60,
		MaxCapacity:         5,
		Kind:                "WORKSHOP",
		ExcludedWeekdays:    []int{int(day.Weekday())},
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "excluding the only day must fail")
	repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestBulkGeneratePersistsInBatches(t *testing.T) {
	repo := new(MockRepository)
	svc := newSlotService(repo)

	// 5 days x 5 slots (09:00-14:00, 60 min) = 25 slots = batches of 10, 10, 5
	var batchSizes []int
	repo.On("CreateBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			batchSizes = append(batchSizes, len(args.Get(1).([]*TimeSlot)))
		}).Return(nil)

	resp, err := svc.BulkGenerate(context.Background(), BulkGenerateRequest{
		StartDate:           "2030-06-03",
		EndDate:             "2030-06-07",
		StartTime:           "09:00",
		EndTime:             "14:00",
		SlotDurationMinutes: 60,
		MaxCapacity:         5,
		Kind:                "WORKSHOP",
	})

	assert.NoError(t, err)
	assert.Equal(t, 25, resp.SlotsCreated)
	assert.Equal(t, []int{10, 10, 5}, batchSizes)
}

func TestBulkGenerateAbortsOnBatchFailure(t *testing.T) {
	repo := new(MockRepository)
	svc := newSlotService(repo)

	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil).Once()
	repo.On("CreateBatch", mock.Anything, mock.Anything).
		Return(apperrors.Storage("insert failed", nil)).Once()

	_, err := svc.BulkGenerate(context.Background(), BulkGenerateRequest{
		StartDate:           "2030-06-03",
		EndDate:             "2030-06-07",
		StartTime:           "09:00",
		EndTime:             "14:00",
		SlotDurationMinutes: 60,
		MaxCapacity:         5,
		Kind:                "WORKSHOP",
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindStorage))
	repo.AssertNumberOfCalls(t, "CreateBatch", 2)
}

func TestBulkGenerateInvalidDuration(t *testing.T) {
	repo := new(MockRepository)
	svc := newSlotService(repo)

	_, err := svc.BulkGenerate(context.Background(), BulkGenerateRequest{
		StartDate:           "2030-06-03",
		EndDate:             "2030-06-03",
		StartTime:           "09:00",
		EndTime:             "12:00",
		SlotDurationMinutes: 15,
		MaxCapacity:         5,
		Kind:                "WORKSHOP",
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestUpdateTimeSlotCapacityBelowBookings(t *testing.T) {
	repo := new(MockRepository)
	svc := newSlotService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&TimeSlot{
		ID:              id,
		Date:            time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:00",
		EndTime:         "10:00",
		MaxCapacity:     10,
		CurrentBookings: 6,
	}, nil)

	lower := 5
	_, err := svc.UpdateTimeSlot(context.Background(), id, UpdateTimeSlotRequest{MaxCapacity: &lower})

	assert.True(t, apperrors.IsKind(err, apperrors.KindBusinessLogic))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteTimeSlotWithActiveBookings(t *testing.T) {
	repo := new(MockRepository)
	svc := newSlotService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&TimeSlot{ID: id}, nil)
	repo.On("CountActiveBookings", mock.Anything, id).Return(int64(2), nil)

	err := svc.DeleteTimeSlot(context.Background(), id)

	assert.True(t, apperrors.IsKind(err, apperrors.KindBusinessLogic))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteTimeSlotWithoutBookings(t *testing.T) {
	repo := new(MockRepository)
	svc := newSlotService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&TimeSlot{ID: id}, nil)
	repo.On("CountActiveBookings", mock.Anything, id).Return(int64(0), nil)
	repo.On("Delete", mock.Anything, id).Return(nil)

	assert.NoError(t, svc.DeleteTimeSlot(context.Background(), id))
	repo.AssertExpectations(t)
}

func TestGetAvailableTimeSlotsFiltersAndSorts(t *testing.T) {
	repo := new(MockRepository)
	svc := newSlotService(repo)

	itemID := uuid.New()
	day1 := time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2030, 6, 4, 0, 0, 0, 0, time.UTC)

	full := TimeSlot{ID: uuid.New(), Date: day1, StartTime: "09:00", EndTime: "10:00", IsAvailable: true, MaxCapacity: 5, CurrentBookings: 5}
	late := TimeSlot{ID: uuid.New(), Date: day2, StartTime: "11:00", EndTime: "12:00", IsAvailable: true, MaxCapacity: 5}
	early := TimeSlot{ID: uuid.New(), Date: day1, StartTime: "14:00", EndTime: "15:00", IsAvailable: true, MaxCapacity: 5}

	repo.On("GetAvailableBetween", mock.Anything, itemID, mock.Anything, mock.Anything).
		Return([]TimeSlot{late, full, early}, nil)

	slots, err := svc.GetAvailableTimeSlots(context.Background(), itemID.String(), "2030-06-03", "2030-06-10")

	assert.NoError(t, err)
	assert.Len(t, slots, 2, "the full slot is filtered out")
	assert.Equal(t, early.ID, slots[0].ID)
	assert.Equal(t, late.ID, slots[1].ID)
}

func TestGetAvailableTimeSlotsRequiresItemID(t *testing.T) {
	repo := new(MockRepository)
	svc := newSlotService(repo)

	_, err := svc.GetAvailableTimeSlots(context.Background(), "", "2030-06-03", "2030-06-10")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = svc.GetAvailableTimeSlots(context.Background(), "not-a-uuid", "2030-06-03", "2030-06-10")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	repo.AssertNotCalled(t, "GetAvailableBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetAvailableTimeSlotsRejectsLongRange(t *testing.T) {
	repo := new(MockRepository)
	svc := newSlotService(repo)

	_, err := svc.GetAvailableTimeSlots(context.Background(), uuid.New().String(), "2030-06-03", "2030-09-15")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}
