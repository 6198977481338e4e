// Package scheduling implements the collision-resolution engine behind
// the week grid: interval classification, constraint-driven adjustment
// and the bounded reconciliation pipeline tying them together. Every
// function is pure; callers own persistence and snapshot discipline.
package scheduling

import (
	"time"

	"github.com/chronicle-app/chronicle-api/internal/models"
)

// Interval is a half-open time span [Start, End). All interval
// comparisons in this package use the half-open convention, so events
// that merely touch at a boundary do not collide.
type Interval struct {
	Start time.Time
	End   time.Time
}

// EventInterval returns the occupancy interval of an event.
func EventInterval(e models.Event) Interval {
	return Interval{Start: e.Start, End: e.End()}
}

// Overlaps reports whether two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}
