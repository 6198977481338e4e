package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronicle-app/chronicle-api/internal/models"
)

func TestScheduleFlexibleEventNoCollisions(t *testing.T) {
	candidate := eventAt("new", mondayAt(10, 0), models.Duration{Hours: 1})
	committed := []models.Event{eventAt("b", mondayAt(14, 0), models.Duration{Hours: 1})}

	result, err := ScheduleFlexibleEvent(candidate, committed, DefaultMaxAttempts)
	require.NoError(t, err)
	require.True(t, result.Accepted)
	assert.Equal(t, candidate, *result.Event)
}

func TestScheduleFlexibleEventStartCollisionShrinks(t *testing.T) {
	// A proposed 10:00-12:00 event against a committed 09:00-11:00
	// neighbor: the start pushes forward to 11:00 and the duration
	// gives up the hour the start moved, keeping the end at 12:00.
	candidate := eventAt("new", mondayAt(10, 0), models.Duration{Hours: 2})
	committed := []models.Event{eventAt("b", mondayAt(9, 0), models.Duration{Hours: 2})}

	result, err := ScheduleFlexibleEvent(candidate, committed, DefaultMaxAttempts)
	require.NoError(t, err)
	require.True(t, result.Accepted)
	assert.Equal(t, mondayAt(11, 0), result.Event.Start)
	assert.Equal(t, int64(60*60*1000), result.Event.Duration.Milliseconds())
}

func TestScheduleFlexibleEventEndCollisionShrinks(t *testing.T) {
	candidate := eventAt("new", mondayAt(10, 0), models.Duration{Hours: 2})
	committed := []models.Event{eventAt("b", mondayAt(11, 0), models.Duration{Hours: 2})}

	result, err := ScheduleFlexibleEvent(candidate, committed, DefaultMaxAttempts)
	require.NoError(t, err)
	require.True(t, result.Accepted)
	assert.Equal(t, mondayAt(10, 0), result.Event.Start)
	assert.Equal(t, mondayAt(11, 0), result.Event.End())
}

func TestScheduleFlexibleEventContainsOtherIsNotResolved(t *testing.T) {
	// A 10:00-13:00 proposal fully containing a committed 12:00-13:00
	// event is not auto-shrunk; it passes validation with its original
	// duration.
	candidate := eventAt("new", mondayAt(10, 0), models.Duration{Hours: 3})
	committed := []models.Event{eventAt("b", mondayAt(12, 0), models.Duration{Hours: 1})}

	result, err := ScheduleFlexibleEvent(candidate, committed, DefaultMaxAttempts)
	require.NoError(t, err)
	require.True(t, result.Accepted)
	assert.Equal(t, models.Duration{Hours: 3}, result.Event.Duration)
	assert.Equal(t, mondayAt(10, 0), result.Event.Start)
}

func TestScheduleFlexibleEventSwallowedByNeighborRejects(t *testing.T) {
	// The candidate's start sits at the neighbor's start, so the start
	// collision pushes it past the neighbor's end, leaving a negative
	// duration the validator must reject.
	candidate := eventAt("new", mondayAt(10, 0), models.Duration{Hours: 1})
	committed := []models.Event{eventAt("b", mondayAt(10, 0), models.Duration{Hours: 2})}

	result, err := ScheduleFlexibleEvent(candidate, committed, DefaultMaxAttempts)
	require.NoError(t, err)
	assert.False(t, result.Accepted)
}

func TestScheduleFlexibleEventSequentialShrinkAgainstTwoNeighbors(t *testing.T) {
	// 10:00-14:00 against 09:00-11:00 and 13:00-15:00: the start
	// collision moves the start to 11:00 (end stays 14:00), then the
	// end collision pulls the end back to 13:00.
	candidate := eventAt("new", mondayAt(10, 0), models.Duration{Hours: 4})
	committed := []models.Event{
		eventAt("b", mondayAt(9, 0), models.Duration{Hours: 2}),
		eventAt("c", mondayAt(13, 0), models.Duration{Hours: 2}),
	}

	result, err := ScheduleFlexibleEvent(candidate, committed, DefaultMaxAttempts)
	require.NoError(t, err)
	require.True(t, result.Accepted)
	assert.Equal(t, mondayAt(11, 0), result.Event.Start)
	assert.Equal(t, mondayAt(13, 0), result.Event.End())
}

func TestScheduleFlexibleEventIdempotentForCommittedEvent(t *testing.T) {
	committed := []models.Event{
		eventAt("a", mondayAt(9, 0), models.Duration{Hours: 2}),
		eventAt("b", mondayAt(11, 0), models.Duration{Hours: 1}),
	}

	result, err := ScheduleFlexibleEvent(committed[0], committed, DefaultMaxAttempts)
	require.NoError(t, err)
	require.True(t, result.Accepted)
	assert.Equal(t, committed[0], *result.Event)
}

func TestScheduleFlexibleEventConstraintsApplyAfterShrink(t *testing.T) {
	// After shrinking to 1h the duration falls below the 2h minimum,
	// so the placement rejects as a whole.
	candidate := eventAt("new", mondayAt(10, 0), models.Duration{Hours: 2})
	candidate.Constraints = &models.ScheduleConstraints{
		Duration: &models.DurationConstraint{MinDuration: models.Duration{Hours: 2}},
	}
	committed := []models.Event{eventAt("b", mondayAt(11, 0), models.Duration{Hours: 2})}

	result, err := ScheduleFlexibleEvent(candidate, committed, DefaultMaxAttempts)
	require.NoError(t, err)
	assert.False(t, result.Accepted)
}

func TestGrowEventExpandsIntoFreeSlot(t *testing.T) {
	event := eventAt("a", mondayAt(12, 0), models.Duration{Hours: 1})
	others := []models.Event{
		eventAt("before", mondayAt(9, 0), models.Duration{Hours: 2}),
		eventAt("after", mondayAt(15, 0), models.Duration{Hours: 1}),
	}

	grown := GrowEvent(event, others)
	assert.Equal(t, mondayAt(11, 0), grown.Start)
	assert.Equal(t, mondayAt(15, 0), grown.End())
}

func TestGrowEventRespectsConstraints(t *testing.T) {
	event := eventAt("a", mondayAt(12, 0), models.Duration{Hours: 1})
	event.Constraints = &models.ScheduleConstraints{
		StartTime: &models.StartTimeConstraint{MinStart: models.NewTimeOfDay(11, 30)},
		EndTime:   &models.EndTimeConstraint{MinEnd: models.NewTimeOfDay(13, 0), MaxEnd: todPtr(models.NewTimeOfDay(14, 0))},
	}
	others := []models.Event{
		eventAt("before", mondayAt(9, 0), models.Duration{Hours: 2}),
		eventAt("after", mondayAt(15, 0), models.Duration{Hours: 1}),
	}

	grown := GrowEvent(event, others)
	assert.Equal(t, mondayAt(11, 30), grown.Start)
	assert.Equal(t, mondayAt(14, 0), grown.End())
}

func TestRescheduleStretchesUpcomingEvents(t *testing.T) {
	now := mondayAt(8, 0)
	events := []models.Event{
		eventAt("past", mondayAt(6, 0), models.Duration{Hours: 1}),
		eventAt("first", mondayAt(9, 0), models.Duration{Hours: 1}),
		eventAt("second", mondayAt(12, 0), models.Duration{Hours: 1}),
	}

	rescheduled := Reschedule(now, events, DefaultMaxAttempts)
	require.Len(t, rescheduled, 3)

	byID := make(map[string]models.Event, len(rescheduled))
	for _, ev := range rescheduled {
		byID[ev.ID] = ev
	}
	assert.Equal(t, models.Duration{Hours: 1}, byID["past"].Duration)
	assert.Equal(t, mondayAt(12, 0), byID["first"].End())
	assert.Equal(t, models.Duration{Hours: 1}, byID["second"].Duration)
}

func TestRescheduleKeepsConstrainedEventInPlace(t *testing.T) {
	now := mondayAt(8, 0)
	first := eventAt("first", mondayAt(9, 0), models.Duration{Hours: 1})
	first.Constraints = &models.ScheduleConstraints{
		Duration: &models.DurationConstraint{
			MinDuration: models.Duration{Minutes: 30},
			MaxDuration: durPtr(models.Duration{Hours: 1}),
		},
	}
	events := []models.Event{first, eventAt("second", mondayAt(12, 0), models.Duration{Hours: 1})}

	rescheduled := Reschedule(now, events, DefaultMaxAttempts)
	for _, ev := range rescheduled {
		if ev.ID == "first" {
			assert.Equal(t, models.Duration{Hours: 1}, ev.Duration)
		}
	}
}
