package timeslots

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"atelier/internal/shared/apperrors"
	"atelier/internal/shared/config"
	"atelier/internal/shared/result"
	"atelier/pkg/cache"
	"atelier/pkg/logger"
)

const availabilityCacheKeyPrefix = "atelier:timeslots:available"

// persistence batch size for bulk generation
const bulkBatchSize = 10

// Service interface defines the contract for time slot business logic
type Service interface {
	CreateTimeSlot(ctx context.Context, req CreateTimeSlotRequest) (*TimeSlot, error)
	UpdateTimeSlot(ctx context.Context, id uuid.UUID, req UpdateTimeSlotRequest) (*TimeSlot, error)
	DeleteTimeSlot(ctx context.Context, id uuid.UUID) error
	BulkGenerate(ctx context.Context, req BulkGenerateRequest) (*BulkGenerateResponse, error)
	GetTimeSlot(ctx context.Context, id uuid.UUID) (*TimeSlot, error)
	GetAvailableTimeSlots(ctx context.Context, itemID string, startDate, endDate string) ([]TimeSlot, error)
}

type service struct {
	repo     Repository
	cacheSvc cache.Service
	cfg      *config.Config
	log      *logger.Logger
}

func NewService(repo Repository, cacheSvc cache.Service, cfg *config.Config, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		cacheSvc: cacheSvc,
		cfg:      cfg,
		log:      log,
	}
}

func (s *service) CreateTimeSlot(ctx context.Context, req CreateTimeSlotRequest) (*TimeSlot, error) {
	slot, err := s.buildSlot(req, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, err
	}

	s.invalidateAvailabilityCache(ctx)
	return slot, nil
}

func (s *service) UpdateTimeSlot(ctx context.Context, id uuid.UUID, req UpdateTimeSlotRequest) (*TimeSlot, error) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, apperrors.Validation("invalid date %q", *req.Date)
		}
		if err := ValidateDate(date, now); err != nil {
			return nil, err
		}
		slot.Date = date
	}
	if req.StartTime != nil {
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	}
	if err := ValidateTimeRange(slot.StartTime, slot.EndTime); err != nil {
		return nil, err
	}
	if req.MaxCapacity != nil {
		if err := ValidateCapacity(*req.MaxCapacity); err != nil {
			return nil, err
		}
		if *req.MaxCapacity < slot.CurrentBookings {
			return nil, apperrors.BusinessLogic("capacity %d is below the %d existing bookings",
				*req.MaxCapacity, slot.CurrentBookings)
		}
		slot.MaxCapacity = *req.MaxCapacity
	}
	if req.Price != nil {
		slot.Price = req.Price
	}
	if req.IsAvailable != nil {
		slot.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Update(ctx, slot); err != nil {
		return nil, err
	}

	s.invalidateAvailabilityCache(ctx)
	return slot, nil
}

func (s *service) DeleteTimeSlot(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	active, err := s.repo.CountActiveBookings(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return apperrors.BusinessLogic("time slot %s has %d active bookings and cannot be deleted", id, active)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateAvailabilityCache(ctx)
	return nil
}

// BulkGenerate emits consecutive non-overlapping slots across a date range
// and persists them in fixed-size batches. A failed batch aborts the run;
// slots already written stay committed (no compensating delete).
func (s *service) BulkGenerate(ctx context.Context, req BulkGenerateRequest) (*BulkGenerateResponse, error) {
	now := time.Now()

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, apperrors.Validation("invalid start date %q", req.StartDate)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, apperrors.Validation("invalid end date %q", req.EndDate)
	}

	if err := ValidateDateRange(startDate, endDate, now); err != nil {
		return nil, err
	}
	if err := ValidateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if err := ValidateCapacity(req.MaxCapacity); err != nil {
		return nil, err
	}
	if err := ValidateDuration(req.SlotDurationMinutes); err != nil {
		return nil, err
	}

	slots, err := generateSlots(req, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, apperrors.Validation("generation produced no slots for the given range and exclusions")
	}

	persisted := s.persistInBatches(ctx, slots)
	created, err := persisted.Unpack()
	if err != nil {
		return nil, err
	}

	s.invalidateAvailabilityCache(ctx)

	s.log.InfoContext(ctx, "Bulk time slot generation completed",
		"slots_created", created,
		"start_date", req.StartDate,
		"end_date", req.EndDate,
	)

	out := make([]TimeSlot, 0, len(slots))
	for _, slot := range slots {
		out = append(out, *slot)
	}
	return &BulkGenerateResponse{
		SlotsCreated: created,
		Slots:        out,
	}, nil
}

// generateSlots walks each day in range and fills the daily window with
// slots of exactly the requested duration. No slot spans midnight since the
// window itself is within one day.
func generateSlots(req BulkGenerateRequest, startDate, endDate time.Time) ([]*TimeSlot, error) {
	startMin, err := ParseMinutes(req.StartTime)
	if err != nil {
		return nil, apperrors.Validation("invalid start time %q", req.StartTime)
	}
	endMin, err := ParseMinutes(req.EndTime)
	if err != nil {
		return nil, apperrors.Validation("invalid end time %q", req.EndTime)
	}

	excluded := make(map[time.Weekday]bool, len(req.ExcludedWeekdays))
	for _, wd := range req.ExcludedWeekdays {
		excluded[time.Weekday(wd)] = true
	}

	var itemID *uuid.UUID
	if req.ItemID != "" {
		id, err := uuid.Parse(req.ItemID)
		if err != nil {
			return nil, apperrors.Validation("invalid item id %q", req.ItemID)
		}
		itemID = &id
	}

	var slots []*TimeSlot
	for day := truncateToDay(startDate); !day.After(truncateToDay(endDate)); day = day.AddDate(0, 0, 1) {
		if excluded[day.Weekday()] {
			continue
		}
		for cur := startMin; cur+req.SlotDurationMinutes <= endMin; cur += req.SlotDurationMinutes {
			slots = append(slots, &TimeSlot{
				Date:        day,
				StartTime:   FormatMinutes(cur),
				EndTime:     FormatMinutes(cur + req.SlotDurationMinutes),
				Kind:        Kind(req.Kind),
				ItemID:      itemID,
				IsAvailable: true,
				MaxCapacity: req.MaxCapacity,
				Price:       req.Price,
			})
		}
	}
	return slots, nil
}

// persistInBatches writes the generated slots in batches of bulkBatchSize.
// The first failing batch aborts the run and becomes the Err variant; already
// committed batches are left in place.
func (s *service) persistInBatches(ctx context.Context, slots []*TimeSlot) result.Result[int] {
	created := 0
	for start := 0; start < len(slots); start += bulkBatchSize {
		end := start + bulkBatchSize
		if end > len(slots) {
			end = len(slots)
		}
		if err := s.repo.CreateBatch(ctx, slots[start:end]); err != nil {
			s.log.ErrorContext(ctx, "Bulk generation aborted",
				"slots_committed", created,
				"failed_batch_start", start,
				"error", err.Error(),
			)
			return result.Err[int](err)
		}
		created += end - start
	}
	return result.Ok(created)
}

func (s *service) GetTimeSlot(ctx context.Context, id uuid.UUID) (*TimeSlot, error) {
	return s.repo.GetByID(ctx, id)
}

// GetAvailableTimeSlots returns bookable slots for an item in a date range,
// cache-aside with a short TTL, sorted by (date, start time) ascending.
func (s *service) GetAvailableTimeSlots(ctx context.Context, itemID string, startDate, endDate string) ([]TimeSlot, error) {
	if itemID == "" {
		return nil, apperrors.Validation("item id is required")
	}
	parsedItemID, err := uuid.Parse(itemID)
	if err != nil {
		return nil, apperrors.Validation("invalid item id %q", itemID)
	}

	now := time.Now()
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, apperrors.Validation("invalid start date %q", startDate)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, apperrors.Validation("invalid end date %q", endDate)
	}
	if err := ValidateDateRange(start, end, now); err != nil {
		return nil, err
	}

	fetch := func() (interface{}, error) {
		slots, err := s.repo.GetAvailableBetween(ctx, parsedItemID, start, end)
		if err != nil {
			return nil, err
		}
		return filterAndSort(slots, now), nil
	}

	if s.cacheSvc == nil {
		raw, err := fetch()
		if err != nil {
			return nil, err
		}
		return raw.([]TimeSlot), nil
	}

	key := fmt.Sprintf("%s:%s:%s:%s", availabilityCacheKeyPrefix, itemID, startDate, endDate)
	var slots []TimeSlot
	if err := s.cacheSvc.GetOrSet(ctx, key, s.cfg.Redis.AvailabilityTTL, fetch, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// filterAndSort keeps only bookable slots and orders them by date then start
func filterAndSort(slots []TimeSlot, now time.Time) []TimeSlot {
	filtered := make([]TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.IsBookingAllowed(now) {
			filtered = append(filtered, slot)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		di, dj := truncateToDay(filtered[i].Date), truncateToDay(filtered[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return filtered[i].StartMinutes() < filtered[j].StartMinutes()
	})
	return filtered
}

func (s *service) buildSlot(req CreateTimeSlotRequest, now time.Time) (*TimeSlot, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperrors.Validation("invalid date %q", req.Date)
	}
	if err := ValidateDate(date, now); err != nil {
		return nil, err
	}
	if err := ValidateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if err := ValidateCapacity(req.MaxCapacity); err != nil {
		return nil, err
	}

	var itemID *uuid.UUID
	if req.ItemID != "" {
		id, err := uuid.Parse(req.ItemID)
		if err != nil {
			return nil, apperrors.Validation("invalid item id %q", req.ItemID)
		}
		itemID = &id
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	return &TimeSlot{
		Date:        truncateToDay(date),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Kind:        Kind(req.Kind),
		ItemID:      itemID,
		IsAvailable: isAvailable,
		MaxCapacity: req.MaxCapacity,
		Price:       req.Price,
	}, nil
}

// invalidateAvailabilityCache drops all cached availability queries after a
// slot write. Best effort; a stale entry only lives for the short TTL.
func (s *service) invalidateAvailabilityCache(ctx context.Context) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.DeletePattern(ctx, availabilityCacheKeyPrefix+":*"); err != nil {
		s.log.WarnContext(ctx, "Failed to invalidate availability cache", "error", err.Error())
	}
}
