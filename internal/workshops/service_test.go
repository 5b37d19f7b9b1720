package workshops

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"atelier/internal/shared/apperrors"
)

type MockRepository struct{ mock.Mock }

func (m *MockRepository) Create(ctx context.Context, workshop *Workshop) error {
	return m.Called(ctx, workshop).Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Workshop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Workshop), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, kind string, activeOnly bool) ([]Workshop, error) {
	args := m.Called(ctx, kind, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Workshop), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, workshop *Workshop) error {
	return m.Called(ctx, workshop).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) CountActiveBookings(ctx context.Context, workshopID uuid.UUID) (int64, error) {
	args := m.Called(ctx, workshopID)
	return args.Get(0).(int64), args.Error(1)
}

func TestCreateWorkshopDefaultsToActive(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*workshops.Workshop")).Return(nil)

	workshop, err := svc.CreateWorkshop(context.Background(), CreateWorkshopRequest{
		Title:     "Wheel throwing basics",
		Kind:      "WORKSHOP",
		BasePrice: 45000,
	})

	assert.NoError(t, err)
	assert.True(t, workshop.IsActive)
}

func TestUpdateWorkshopPartial(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&Workshop{
		ID:        id,
		Title:     "Old title",
		BasePrice: 45000,
		IsActive:  true,
	}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	newTitle := "New title"
	workshop, err := svc.UpdateWorkshop(context.Background(), id, UpdateWorkshopRequest{Title: &newTitle})

	assert.NoError(t, err)
	assert.Equal(t, "New title", workshop.Title)
	assert.Equal(t, 45000.0, workshop.BasePrice, "untouched fields are kept")
}

func TestDeleteWorkshopWithActiveBookings(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&Workshop{ID: id}, nil)
	repo.On("CountActiveBookings", mock.Anything, id).Return(int64(3), nil)

	err := svc.DeleteWorkshop(context.Background(), id)

	assert.True(t, apperrors.IsKind(err, apperrors.KindBusinessLogic))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteWorkshopWithoutBookings(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&Workshop{ID: id}, nil)
	repo.On("CountActiveBookings", mock.Anything, id).Return(int64(0), nil)
	repo.On("Delete", mock.Anything, id).Return(nil)

	assert.NoError(t, svc.DeleteWorkshop(context.Background(), id))
	repo.AssertExpectations(t)
}

func TestDeleteWorkshopNotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, apperrors.NotFound("workshop %s not found", id))

	err := svc.DeleteWorkshop(context.Background(), id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
