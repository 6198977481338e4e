package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/chronicle-app/chronicle-api/internal/dto"
	"github.com/chronicle-app/chronicle-api/internal/models"
	"github.com/chronicle-app/chronicle-api/internal/scheduling"
	appErrors "github.com/chronicle-app/chronicle-api/pkg/errors"
)

const analyticsCachePattern = "analytics:*"

type eventRepository interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	FindByID(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type categoryColorSource interface {
	ColorMap(ctx context.Context) (map[string]string, error)
}

// EventService owns the event lifecycle. Every write passes through
// the scheduling engine so the committed set stays collision-free.
type EventService struct {
	repo        eventRepository
	colors      categoryColorSource
	cache       *CacheService
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
	maxAttempts int
}

// NewEventService constructs the service.
func NewEventService(repo eventRepository, colors categoryColorSource, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, maxAttempts int) *EventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if maxAttempts <= 0 {
		maxAttempts = scheduling.DefaultMaxAttempts
	}
	return &EventService{
		repo:        repo,
		colors:      colors,
		cache:       cache,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
		maxAttempts: maxAttempts,
	}
}

// List returns events in the requested window, decorated with their
// category colors.
func (s *EventService) List(ctx context.Context, query dto.EventQuery) ([]dto.EventResponse, error) {
	events, err := s.repo.List(ctx, models.EventFilter{After: query.After, Before: query.Before})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}

	colors := s.colorMap(ctx)
	responses := make([]dto.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, dto.EventFromModel(ev, colors[ev.CategoryOverride], false))
	}
	return responses, nil
}

// Get fetches a single event.
func (s *EventService) Get(ctx context.Context, id string) (*dto.EventResponse, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	if event == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	resp := dto.EventFromModel(*event, s.colorMap(ctx)[event.CategoryOverride], false)
	return &resp, nil
}

// Create places a new event. The engine may move or shrink it around
// committed neighbors; a placement its constraints cannot absorb is
// rejected with an unschedulable error.
func (s *EventService) Create(ctx context.Context, req dto.EventRequest) (*dto.EventResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}

	candidate := models.Event{
		Title:            req.Title,
		Start:            req.Start.UTC(),
		Duration:         req.Duration,
		CategoryOverride: req.Category,
		Constraints:      req.Constraints,
	}

	placed, adjusted, err := s.reconcile(ctx, candidate)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, placed); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist event")
	}
	s.invalidateAnalytics(ctx)

	resp := dto.EventFromModel(*placed, s.colorMap(ctx)[placed.CategoryOverride], adjusted)
	return &resp, nil
}

// Update replaces an event's definition and re-runs placement against
// every other committed event.
func (s *EventService) Update(ctx context.Context, id string, req dto.EventRequest) (*dto.EventResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	if existing == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}

	candidate := models.Event{
		ID:               id,
		Title:            req.Title,
		Start:            req.Start.UTC(),
		Duration:         req.Duration,
		CategoryOverride: req.Category,
		Constraints:      req.Constraints,
	}

	placed, adjusted, err := s.reconcile(ctx, candidate)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Update(ctx, placed); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist event")
	}
	s.invalidateAnalytics(ctx)

	resp := dto.EventFromModel(*placed, s.colorMap(ctx)[placed.CategoryOverride], adjusted)
	return &resp, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, id string) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete event")
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	s.invalidateAnalytics(ctx)
	return nil
}

// Grow expands the event into the free time surrounding it on its day.
func (s *EventService) Grow(ctx context.Context, id string) (*dto.EventResponse, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	if event == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}

	committed, err := s.repo.List(ctx, models.EventFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}

	grown := scheduling.GrowEvent(*event, committed)
	adjusted := !grown.Start.Equal(event.Start) || grown.Duration != event.Duration
	if adjusted {
		if _, err := s.repo.Update(ctx, &grown); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist event")
		}
		s.invalidateAnalytics(ctx)
	}

	resp := dto.EventFromModel(grown, s.colorMap(ctx)[grown.CategoryOverride], adjusted)
	return &resp, nil
}

// Reschedule stretches upcoming events toward their successors and
// persists the ones that changed. It returns the number of events
// rewritten.
func (s *EventService) Reschedule(ctx context.Context, now time.Time) (int, error) {
	events, err := s.repo.List(ctx, models.EventFilter{})
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}

	before := make(map[string]models.Event, len(events))
	for _, ev := range events {
		before[ev.ID] = ev
	}

	changed := 0
	for _, ev := range scheduling.Reschedule(now, events, s.maxAttempts) {
		prev := before[ev.ID]
		if prev.Start.Equal(ev.Start) && prev.Duration == ev.Duration {
			continue
		}
		update := ev
		if _, err := s.repo.Update(ctx, &update); err != nil {
			return changed, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist rescheduled event")
		}
		changed++
	}
	if changed > 0 {
		s.invalidateAnalytics(ctx)
	}
	return changed, nil
}

// reconcile runs the candidate through the scheduling engine against
// every other committed event.
func (s *EventService) reconcile(ctx context.Context, candidate models.Event) (*models.Event, bool, error) {
	committed, err := s.repo.List(ctx, models.EventFilter{})
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}

	result, err := scheduling.ScheduleFlexibleEvent(candidate, committed, s.maxAttempts)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reconcile event")
	}
	s.metrics.RecordScheduleResult(result.Accepted)
	if !result.Accepted {
		return nil, false, appErrors.Clone(appErrors.ErrUnschedulable, "event cannot be placed without violating its constraints")
	}

	placed := *result.Event
	adjusted := !placed.Start.Equal(candidate.Start) || placed.Duration != candidate.Duration
	if adjusted {
		s.logger.Info("event adjusted during placement",
			zap.String("event_id", placed.ID),
			zap.Time("start", placed.Start),
			zap.String("duration", placed.Duration.Clock()))
	}
	return &placed, adjusted, nil
}

func (s *EventService) colorMap(ctx context.Context) map[string]string {
	if s.colors == nil {
		return nil
	}
	colors, err := s.colors.ColorMap(ctx)
	if err != nil {
		s.logger.Warn("failed to load category colors", zap.Error(err))
		return nil
	}
	return colors
}

func (s *EventService) invalidateAnalytics(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, analyticsCachePattern); err != nil {
		s.logger.Warn("failed to invalidate analytics cache", zap.Error(err))
	}
}
