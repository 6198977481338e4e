package scheduling

import (
	"github.com/chronicle-app/chronicle-api/internal/models"
)

// DefaultMaxAttempts bounds the constraint-repair iteration. It must
// stay a small fixed integer: it is the engine's only termination
// mechanism when two constraints keep re-triggering each other.
const DefaultMaxAttempts = 5

// ScheduleResult is the verdict of constraint validation or of a full
// reconciliation. A rejection is a normal outcome, never an error: the
// caller leaves the committed state untouched and surfaces feedback.
type ScheduleResult struct {
	Accepted bool          `json:"accepted"`
	Event    *models.Event `json:"event,omitempty"`
}

// CheckConstraints brings an event into compliance with its scheduling
// constraints by shrinking or shifting it, spending one attempt per
// adjustment. Constraints repair in fixed priority: duration bounds
// first (duration changes move the end), then the start window, the end
// window and finally the allowed-days check. Exhausting the attempts
// while an adjustment is still required rejects the event.
//
// Implemented as an explicit decrementing loop so the termination bound
// is visible; each loop turn replays the full priority list against the
// adjusted event, mirroring one recursive attempt.
func CheckConstraints(event models.Event, maxAttempts int) ScheduleResult {
	rejected := ScheduleResult{}

	for tries := maxAttempts; ; tries-- {
		c := event.Constraints
		if c == nil {
			if event.Duration.IsPositive() {
				accepted := event
				return ScheduleResult{Accepted: true, Event: &accepted}
			}
			return rejected
		}
		if tries <= 0 {
			return rejected
		}

		if dc := c.Duration; dc != nil {
			d := event.Duration.Milliseconds()
			if d < dc.MinDuration.Milliseconds() {
				// Lengthening needs knowledge of surrounding free
				// space, which only the reconciler has.
				return rejected
			}
			if dc.MaxDuration != nil && d > dc.MaxDuration.Milliseconds() {
				event.Duration = *dc.MaxDuration
				continue
			}
		}

		if sc := c.StartTime; sc != nil {
			start := models.TimeOfDayOf(event.Start)
			if start < sc.MinStart {
				event.Start = sc.MinStart.OnDay(event.Start)
				continue
			}
			if sc.MaxStart != nil && start > *sc.MaxStart {
				event.Start = sc.MaxStart.OnDay(event.Start)
				continue
			}
		}

		if ec := c.EndTime; ec != nil {
			end := models.TimeOfDayOf(event.End())
			if end < ec.MinEnd {
				event.Duration = DurationBetween(event.Start, ec.MinEnd.OnDay(event.Start))
				continue
			}
			if ec.MaxEnd != nil && end > *ec.MaxEnd {
				event.Duration = DurationBetween(event.Start, ec.MaxEnd.OnDay(event.Start))
				continue
			}
		}

		if ad := c.AllowedDays; ad != nil && !ad.Allows(event.Start.Weekday()) {
			// Day shifting is not supported.
			return rejected
		}

		if !event.Duration.IsPositive() {
			return rejected
		}
		accepted := event
		return ScheduleResult{Accepted: true, Event: &accepted}
	}
}
