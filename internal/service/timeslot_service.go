package service

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/chronicle-app/chronicle-api/internal/dto"
	"github.com/chronicle-app/chronicle-api/internal/models"
	"github.com/chronicle-app/chronicle-api/internal/scheduling"
	appErrors "github.com/chronicle-app/chronicle-api/pkg/errors"
)

var rruleWeekdays = [7]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

type timeSlotRepository interface {
	List(ctx context.Context) ([]models.TimeSlot, error)
	FindByID(ctx context.Context, id int64) (*models.TimeSlot, error)
	Create(ctx context.Context, slot *models.TimeSlot) error
	Update(ctx context.Context, slot *models.TimeSlot) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// TimeSlotService manages recurring slots and expands them into
// concrete occurrences over a week.
type TimeSlotService struct {
	repo      timeSlotRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimeSlotService constructs the service.
func NewTimeSlotService(repo timeSlotRepository, validate *validator.Validate, logger *zap.Logger) *TimeSlotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &TimeSlotService{repo: repo, validator: validate, logger: logger}
}

// List returns every recurring slot.
func (s *TimeSlotService) List(ctx context.Context) ([]dto.TimeSlotResponse, error) {
	slots, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list time slots")
	}
	responses := make([]dto.TimeSlotResponse, 0, len(slots))
	for _, slot := range slots {
		responses = append(responses, dto.TimeSlotFromModel(slot))
	}
	return responses, nil
}

// Create stores a new recurring slot.
func (s *TimeSlotService) Create(ctx context.Context, req dto.TimeSlotRequest) (*dto.TimeSlotResponse, error) {
	slot, err := s.slotFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist time slot")
	}

	resp := dto.TimeSlotFromModel(slot)
	return &resp, nil
}

// Update replaces an existing recurring slot.
func (s *TimeSlotService) Update(ctx context.Context, id int64, req dto.TimeSlotRequest) (*dto.TimeSlotResponse, error) {
	slot, err := s.slotFromRequest(req)
	if err != nil {
		return nil, err
	}
	slot.ID = id

	found, err := s.repo.Update(ctx, &slot)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update time slot")
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "time slot not found")
	}

	resp := dto.TimeSlotFromModel(slot)
	return &resp, nil
}

func (s *TimeSlotService) slotFromRequest(req dto.TimeSlotRequest) (models.TimeSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.TimeSlot{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time slot payload")
	}
	if !req.Duration.IsPositive() {
		return models.TimeSlot{}, appErrors.Clone(appErrors.ErrValidation, "time slot duration must be positive")
	}

	days := make([]time.Weekday, 0, len(req.Days))
	for _, day := range req.Days {
		days = append(days, time.Weekday(day))
	}

	return models.TimeSlot{
		Title:    req.Title,
		Start:    models.TimeOfDay(req.Start),
		Duration: req.Duration,
		Days:     days,
		Color:    req.Color,
	}, nil
}

// Delete removes a recurring slot.
func (s *TimeSlotService) Delete(ctx context.Context, id int64) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete time slot")
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "time slot not found")
	}
	return nil
}

// WeekOccurrences expands every slot into its concrete occurrences
// within the Sunday-aligned week containing the reference time.
func (s *TimeSlotService) WeekOccurrences(ctx context.Context, ref time.Time) ([]dto.OccurrenceResponse, error) {
	slots, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list time slots")
	}

	weekStart := scheduling.StartOfWeek(ref.UTC())
	weekEnd := weekStart.AddDate(0, 0, 7)

	var occurrences []dto.OccurrenceResponse
	for _, slot := range slots {
		expanded, err := expandSlot(slot, weekStart, weekEnd)
		if err != nil {
			s.logger.Warn("failed to expand time slot",
				zap.Int64("slot_id", slot.ID), zap.Error(err))
			continue
		}
		occurrences = append(occurrences, expanded...)
	}

	sort.Slice(occurrences, func(i, j int) bool {
		if occurrences[i].Start.Equal(occurrences[j].Start) {
			return occurrences[i].SlotID < occurrences[j].SlotID
		}
		return occurrences[i].Start.Before(occurrences[j].Start)
	})
	return occurrences, nil
}

func expandSlot(slot models.TimeSlot, weekStart, weekEnd time.Time) ([]dto.OccurrenceResponse, error) {
	byweekday := make([]rrule.Weekday, 0, len(slot.Days))
	for _, day := range slot.Days {
		if day < 0 || day > time.Saturday {
			continue
		}
		byweekday = append(byweekday, rruleWeekdays[day])
	}
	if len(byweekday) == 0 {
		return nil, nil
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   slot.Start.OnDay(weekStart),
		Byweekday: byweekday,
	})
	if err != nil {
		return nil, err
	}

	var occurrences []dto.OccurrenceResponse
	for _, start := range rule.Between(weekStart, weekEnd, true) {
		occurrences = append(occurrences, dto.OccurrenceResponse{
			SlotID: slot.ID,
			Title:  slot.Title,
			Start:  start,
			End:    start.Add(slot.Duration.Std()),
			Color:  slot.Color,
		})
	}
	return occurrences, nil
}
