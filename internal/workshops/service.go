package workshops

import (
	"context"

	"github.com/google/uuid"

	"atelier/internal/shared/apperrors"
)

// Service interface defines the contract for workshop business logic
type Service interface {
	CreateWorkshop(ctx context.Context, req CreateWorkshopRequest) (*Workshop, error)
	GetWorkshop(ctx context.Context, id uuid.UUID) (*Workshop, error)
	ListWorkshops(ctx context.Context, kind string, activeOnly bool) ([]Workshop, error)
	UpdateWorkshop(ctx context.Context, id uuid.UUID, req UpdateWorkshopRequest) (*Workshop, error)
	DeleteWorkshop(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateWorkshop(ctx context.Context, req CreateWorkshopRequest) (*Workshop, error) {
	workshop := &Workshop{
		Title:       req.Title,
		Description: req.Description,
		Kind:        Kind(req.Kind),
		BasePrice:   req.BasePrice,
		Instructor:  req.Instructor,
		Location:    req.Location,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, workshop); err != nil {
		return nil, err
	}
	return workshop, nil
}

func (s *service) GetWorkshop(ctx context.Context, id uuid.UUID) (*Workshop, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListWorkshops(ctx context.Context, kind string, activeOnly bool) ([]Workshop, error) {
	return s.repo.List(ctx, kind, activeOnly)
}

func (s *service) UpdateWorkshop(ctx context.Context, id uuid.UUID, req UpdateWorkshopRequest) (*Workshop, error) {
	workshop, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		workshop.Title = *req.Title
	}
	if req.Description != nil {
		workshop.Description = *req.Description
	}
	if req.BasePrice != nil {
		workshop.BasePrice = *req.BasePrice
	}
	if req.Instructor != nil {
		workshop.Instructor = *req.Instructor
	}
	if req.Location != nil {
		workshop.Location = *req.Location
	}
	if req.IsActive != nil {
		workshop.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, workshop); err != nil {
		return nil, err
	}
	return workshop, nil
}

// DeleteWorkshop removes an item only when no active booking references any
// of its slots
func (s *service) DeleteWorkshop(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	active, err := s.repo.CountActiveBookings(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return apperrors.BusinessLogic("workshop %s has %d active bookings and cannot be deleted", id, active)
	}

	return s.repo.Delete(ctx, id)
}
