package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronicle-app/chronicle-api/internal/models"
)

func eventAt(id string, start time.Time, d models.Duration) models.Event {
	return models.Event{ID: id, Title: id, Start: start, Duration: d, Resizable: true}
}

func mondayAt(hour, minute int) time.Time {
	return time.Date(2024, time.March, 4, hour, minute, 0, 0, time.UTC)
}

func TestFindCollisionsDisjointPairs(t *testing.T) {
	candidate := eventAt("a", mondayAt(10, 0), models.Duration{Hours: 1})
	others := []models.Event{
		eventAt("b", mondayAt(12, 0), models.Duration{Hours: 1}),
		eventAt("c", mondayAt(7, 0), models.Duration{Hours: 2}),
	}

	collisions, err := FindCollisions(candidate, others)
	require.NoError(t, err)
	assert.Empty(t, collisions)
}

func TestFindCollisionsBoundaryTouchDoesNotCollide(t *testing.T) {
	candidate := eventAt("a", mondayAt(10, 0), models.Duration{Hours: 1})
	others := []models.Event{
		eventAt("before", mondayAt(9, 0), models.Duration{Hours: 1}),
		eventAt("after", mondayAt(11, 0), models.Duration{Hours: 1}),
	}

	collisions, err := FindCollisions(candidate, others)
	require.NoError(t, err)
	assert.Empty(t, collisions)
}

func TestFindCollisionsIdenticalInterval(t *testing.T) {
	candidate := eventAt("a", mondayAt(10, 0), models.Duration{Hours: 2})
	twin := eventAt("b", mondayAt(10, 0), models.Duration{Hours: 2})

	collisions, err := FindCollisions(candidate, []models.Event{twin})
	require.NoError(t, err)
	require.Len(t, collisions, 1)
	assert.Equal(t, OverlapsOther, collisions[0].Kind)
	assert.Equal(t, "b", collisions[0].OtherID)
}

func TestFindCollisionsStartCollides(t *testing.T) {
	// A starts at 10:00 for 2h; B runs 09:00-11:00. A's start falls
	// inside B, so the collision carries B's end.
	candidate := eventAt("a", mondayAt(10, 0), models.Duration{Hours: 2})
	other := eventAt("b", mondayAt(9, 0), models.Duration{Hours: 2})

	collisions, err := FindCollisions(candidate, []models.Event{other})
	require.NoError(t, err)
	require.Len(t, collisions, 1)
	assert.Equal(t, StartCollides, collisions[0].Kind)
	assert.Equal(t, mondayAt(11, 0), collisions[0].OtherEnd)
}

func TestFindCollisionsEndCollides(t *testing.T) {
	candidate := eventAt("a", mondayAt(10, 0), models.Duration{Hours: 2})
	other := eventAt("b", mondayAt(11, 0), models.Duration{Hours: 2})

	collisions, err := FindCollisions(candidate, []models.Event{other})
	require.NoError(t, err)
	require.Len(t, collisions, 1)
	assert.Equal(t, EndCollides, collisions[0].Kind)
	assert.Equal(t, mondayAt(11, 0), collisions[0].OtherStart)
}

func TestFindCollisionsContainsOther(t *testing.T) {
	candidate := eventAt("a", mondayAt(10, 0), models.Duration{Hours: 3})
	inner := eventAt("b", mondayAt(12, 0), models.Duration{Minutes: 30})

	collisions, err := FindCollisions(candidate, []models.Event{inner})
	require.NoError(t, err)
	require.Len(t, collisions, 1)
	assert.Equal(t, ContainsOther, collisions[0].Kind)
}

func TestFindCollisionsContainedByOther(t *testing.T) {
	candidate := eventAt("a", mondayAt(12, 0), models.Duration{Minutes: 30})
	outer := eventAt("b", mondayAt(10, 0), models.Duration{Hours: 3})

	collisions, err := FindCollisions(candidate, []models.Event{outer})
	require.NoError(t, err)
	require.Len(t, collisions, 1)
	assert.Equal(t, ContainedByOther, collisions[0].Kind)
}

func TestFindCollisionsExcludesSelf(t *testing.T) {
	candidate := eventAt("a", mondayAt(10, 0), models.Duration{Hours: 2})

	collisions, err := FindCollisions(candidate, []models.Event{candidate})
	require.NoError(t, err)
	assert.Empty(t, collisions)
}

func TestFindCollisionsOneEntryPerOverlappingOther(t *testing.T) {
	candidate := eventAt("a", mondayAt(10, 0), models.Duration{Hours: 4})
	others := []models.Event{
		eventAt("b", mondayAt(9, 0), models.Duration{Hours: 2}),
		eventAt("c", mondayAt(13, 0), models.Duration{Hours: 2}),
		eventAt("d", mondayAt(20, 0), models.Duration{Hours: 1}),
	}

	collisions, err := FindCollisions(candidate, others)
	require.NoError(t, err)
	require.Len(t, collisions, 2)
	assert.Equal(t, StartCollides, collisions[0].Kind)
	assert.Equal(t, EndCollides, collisions[1].Kind)
}

func TestCollisionKindString(t *testing.T) {
	assert.Equal(t, "overlapsOther", OverlapsOther.String())
	assert.Equal(t, "startCollides", StartCollides.String())
	assert.Equal(t, "CollisionKind(9)", CollisionKind(9).String())
}
