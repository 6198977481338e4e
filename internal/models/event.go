package models

import "time"

// Event is the mutable scheduling unit placed on the week grid. Start
// and Duration together define its half-open occupancy interval; the
// remaining fields are display metadata with no role in scheduling.
type Event struct {
	ID               string               `json:"id"`
	Title            string               `json:"title"`
	Start            time.Time            `json:"start"`
	Duration         Duration             `json:"duration"`
	AllDay           bool                 `json:"all_day,omitempty"`
	Static           bool                 `json:"static,omitempty"`
	Resizable        bool                 `json:"resizable"`
	Color            string               `json:"color,omitempty"`
	CategoryOverride string               `json:"category_override,omitempty"`
	Constraints      *ScheduleConstraints `json:"scheduling_constraints,omitempty"`
}

// End returns the event's end time point (start + duration).
func (e Event) End() time.Time {
	return e.Start.Add(e.Duration.Std())
}

// EventFilter narrows down events for range queries.
type EventFilter struct {
	After  *time.Time
	Before *time.Time
}
