package models

import "time"

// ScheduleConstraints carries the optional placement rules attached to
// an event at authoring time. The scheduling engine adjusts the event's
// start and duration to satisfy them; it never rewrites the constraints
// themselves.
type ScheduleConstraints struct {
	Duration    *DurationConstraint    `json:"duration_constraint,omitempty"`
	StartTime   *StartTimeConstraint   `json:"start_time,omitempty"`
	EndTime     *EndTimeConstraint     `json:"end_time,omitempty"`
	AllowedDays *AllowedDaysConstraint `json:"allowed_days,omitempty"`
}

// DurationConstraint bounds an event's duration. A duration below the
// minimum rejects the placement outright; one above the maximum is
// clamped.
type DurationConstraint struct {
	MinDuration Duration  `json:"min_duration"`
	MaxDuration *Duration `json:"max_duration,omitempty"`
}

// StartTimeConstraint windows the event's start. Only the time-of-day
// component is compared.
type StartTimeConstraint struct {
	MinStart TimeOfDay  `json:"min_start"`
	MaxStart *TimeOfDay `json:"max_start,omitempty"`
}

// EndTimeConstraint windows the event's end. Only the time-of-day
// component is compared; clamping the end is expressed by recomputing
// the duration.
type EndTimeConstraint struct {
	MinEnd TimeOfDay  `json:"min_end"`
	MaxEnd *TimeOfDay `json:"max_end,omitempty"`
}

// AllowedDaysConstraint restricts the weekdays an event may start on.
// Day shifting is not supported: a start on a disallowed day rejects.
type AllowedDaysConstraint struct {
	Days []time.Weekday `json:"days"`
}

// Allows reports whether the given weekday is in the allowed set.
func (c AllowedDaysConstraint) Allows(day time.Weekday) bool {
	for _, d := range c.Days {
		if d == day {
			return true
		}
	}
	return false
}
