package scheduling

import (
	"github.com/chronicle-app/chronicle-api/internal/models"
)

// ScheduleFlexibleEvent reconciles a proposed placement against the
// committed event set: it classifies collisions, shrinks the candidate
// around partially-overlapping neighbors, then validates the adjusted
// event against its own constraints.
//
// Collisions are applied sequentially in classifier order; a candidate
// touching two neighbors is shrunk twice. Identical and containment
// overlaps are deliberately left unresolved — the validator's duration
// check decides their fate. An unclassifiable overlap is an invariant
// violation and aborts the reconciliation.
func ScheduleFlexibleEvent(candidate models.Event, committed []models.Event, maxAttempts int) (ScheduleResult, error) {
	collisions, err := FindCollisions(candidate, committed)
	if err != nil {
		return ScheduleResult{}, err
	}

	work := candidate
	for _, col := range collisions {
		switch col.Kind {
		case StartCollides:
			// Push the start forward to the neighbor's end and give up
			// the overlapped time: the end stays where it was.
			moved := DurationBetween(work.Start, col.OtherEnd)
			work.Duration = SubDurations(work.Duration, moved)
			work.Start = col.OtherEnd
		case EndCollides:
			// Pull the end back to the neighbor's start.
			work.Duration = DurationBetween(work.Start, col.OtherStart)
		case OverlapsOther, ContainsOther, ContainedByOther:
			// No automatic resolution defined.
		}
	}

	return CheckConstraints(work, maxAttempts), nil
}
