package models

import (
	"fmt"
	"time"
)

// TimeOfDay is a clock time expressed as minutes since midnight,
// independent of any calendar date. Time-of-day windows in scheduling
// constraints compare these values instead of sentinel dates so the
// comparison carries no epoch or timezone artifacts.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from hour and minute components.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// TimeOfDayOf extracts the time-of-day component of an absolute time
// point, truncated to minute precision.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

// Hour returns the hour component.
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component.
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// OnDay places the time-of-day on the calendar day of the given time
// point, preserving its location.
func (t TimeOfDay) OnDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}

// String renders the time as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}
