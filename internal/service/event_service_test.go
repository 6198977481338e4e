package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronicle-app/chronicle-api/internal/dto"
	"github.com/chronicle-app/chronicle-api/internal/models"
	appErrors "github.com/chronicle-app/chronicle-api/pkg/errors"
)

type stubEventRepo struct {
	events  []models.Event
	created []models.Event
	updated []models.Event
	deleted []string
}

func (r *stubEventRepo) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	var out []models.Event
	for _, ev := range r.events {
		if filter.After != nil && ev.Start.Before(*filter.After) {
			continue
		}
		if filter.Before != nil && !ev.Start.Before(*filter.Before) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func (r *stubEventRepo) FindByID(ctx context.Context, id string) (*models.Event, error) {
	for _, ev := range r.events {
		if ev.ID == id {
			found := ev
			return &found, nil
		}
	}
	return nil, nil
}

func (r *stubEventRepo) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = "generated"
	}
	r.created = append(r.created, *event)
	r.events = append(r.events, *event)
	return nil
}

func (r *stubEventRepo) Update(ctx context.Context, event *models.Event) (bool, error) {
	r.updated = append(r.updated, *event)
	for i, ev := range r.events {
		if ev.ID == event.ID {
			r.events[i] = *event
			return true, nil
		}
	}
	return false, nil
}

func (r *stubEventRepo) Delete(ctx context.Context, id string) (bool, error) {
	for i, ev := range r.events {
		if ev.ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			r.deleted = append(r.deleted, id)
			return true, nil
		}
	}
	return false, nil
}

type stubColorSource struct {
	colors map[string]string
}

func (s *stubColorSource) ColorMap(ctx context.Context) (map[string]string, error) {
	return s.colors, nil
}

func newEventServiceForTest(repo *stubEventRepo) *EventService {
	colors := &stubColorSource{colors: map[string]string{"Work": "#336699"}}
	return NewEventService(repo, colors, nil, nil, nil, nil, 0)
}

func testMonday(hour, minute int) time.Time {
	return time.Date(2024, time.March, 4, hour, minute, 0, 0, time.UTC)
}

func TestEventServiceCreateWithoutCollision(t *testing.T) {
	repo := &stubEventRepo{}
	svc := newEventServiceForTest(repo)

	resp, err := svc.Create(context.Background(), dto.EventRequest{
		Title:    "Standup",
		Start:    testMonday(9, 0),
		Duration: models.Duration{Minutes: 30},
		Category: "Work",
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.False(t, resp.Adjusted)
	assert.Equal(t, testMonday(9, 30), resp.End)
	assert.Equal(t, "#336699", resp.Color)
}

func TestEventServiceCreateShrinksAroundNeighbor(t *testing.T) {
	repo := &stubEventRepo{events: []models.Event{{
		ID:       "blocker",
		Title:    "Blocker",
		Start:    testMonday(9, 0),
		Duration: models.Duration{Hours: 1},
	}}}
	svc := newEventServiceForTest(repo)

	// Starts inside the blocker; the engine pushes the start to 10:00.
	resp, err := svc.Create(context.Background(), dto.EventRequest{
		Title:    "Review",
		Start:    testMonday(9, 30),
		Duration: models.Duration{Hours: 1},
	})
	require.NoError(t, err)
	assert.True(t, resp.Adjusted)
	assert.Equal(t, testMonday(10, 0), resp.Start)
	assert.Equal(t, "00:30:00", resp.Duration)
}

func TestEventServiceCreateUnschedulable(t *testing.T) {
	repo := &stubEventRepo{events: []models.Event{{
		ID:       "blocker",
		Title:    "Blocker",
		Start:    testMonday(9, 0),
		Duration: models.Duration{Hours: 2},
	}}}
	svc := newEventServiceForTest(repo)

	// Shares the blocker's start and ends inside it: pushing the start
	// past the blocker swallows the whole candidate.
	_, err := svc.Create(context.Background(), dto.EventRequest{
		Title:    "Doomed",
		Start:    testMonday(9, 0),
		Duration: models.Duration{Minutes: 30},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnschedulable.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)
}

func TestEventServiceUpdateMissing(t *testing.T) {
	svc := newEventServiceForTest(&stubEventRepo{})

	_, err := svc.Update(context.Background(), "missing", dto.EventRequest{
		Title:    "Ghost",
		Start:    testMonday(9, 0),
		Duration: models.Duration{Minutes: 30},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEventServiceUpdateExcludesSelfFromCollisions(t *testing.T) {
	repo := &stubEventRepo{events: []models.Event{{
		ID:       "event-1",
		Title:    "Focus",
		Start:    testMonday(9, 0),
		Duration: models.Duration{Hours: 1},
	}}}
	svc := newEventServiceForTest(repo)

	// Re-saving the same placement must not treat the stored copy as a
	// conflicting neighbor.
	resp, err := svc.Update(context.Background(), "event-1", dto.EventRequest{
		Title:    "Focus",
		Start:    testMonday(9, 0),
		Duration: models.Duration{Hours: 1},
	})
	require.NoError(t, err)
	assert.False(t, resp.Adjusted)
	assert.Equal(t, testMonday(9, 0), resp.Start)
}

func TestEventServiceDeleteMissing(t *testing.T) {
	svc := newEventServiceForTest(&stubEventRepo{})

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEventServiceGrowPersistsExpansion(t *testing.T) {
	repo := &stubEventRepo{events: []models.Event{
		{
			ID:       "event-1",
			Title:    "Focus",
			Start:    testMonday(10, 0),
			Duration: models.Duration{Hours: 1},
		},
		{
			ID:       "later",
			Title:    "Lunch",
			Start:    testMonday(12, 0),
			Duration: models.Duration{Hours: 1},
		},
	}}
	svc := newEventServiceForTest(repo)

	resp, err := svc.Grow(context.Background(), "event-1")
	require.NoError(t, err)
	assert.True(t, resp.Adjusted)
	assert.Equal(t, testMonday(0, 0), resp.Start)
	assert.Equal(t, testMonday(12, 0), resp.End)
	require.Len(t, repo.updated, 1)
}

func TestEventServiceRescheduleCountsChanges(t *testing.T) {
	now := testMonday(8, 0)
	repo := &stubEventRepo{events: []models.Event{
		{
			ID:       "first",
			Title:    "First",
			Start:    testMonday(9, 0),
			Duration: models.Duration{Minutes: 30},
		},
		{
			ID:       "second",
			Title:    "Second",
			Start:    testMonday(11, 0),
			Duration: models.Duration{Hours: 1},
		},
	}}
	svc := newEventServiceForTest(repo)

	changed, err := svc.Reschedule(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, "first", repo.updated[0].ID)
	assert.Equal(t, "02:00:00", repo.updated[0].Duration.Clock())
}
