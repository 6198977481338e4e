package models

import (
	"fmt"
	"time"
)

// Duration is a structured amount of time. Components left at zero are
// treated as absent; the value converts losslessly to milliseconds for
// comparison and arithmetic.
type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Milliseconds converts the duration to a scalar millisecond count.
// The conversion is exact for whole-second durations.
func (d Duration) Milliseconds() int64 {
	return (int64(d.Hours)*3600 + int64(d.Minutes)*60 + int64(d.Seconds)) * 1000
}

// Std converts the duration to a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d.Milliseconds()) * time.Millisecond
}

// IsPositive reports whether the duration converts to a strictly
// positive millisecond count. Only positive durations are schedulable.
func (d Duration) IsPositive() bool {
	return d.Milliseconds() > 0
}

// Clock renders the duration in the HH:MM:SS form used by the events
// table and the exporters.
func (d Duration) Clock() string {
	return fmt.Sprintf("%02d:%02d:%02d", d.Hours, d.Minutes, d.Seconds)
}

// DurationFromMilliseconds builds a normalised Duration from a scalar
// millisecond count. Sub-second remainder is truncated; negative input
// yields a negative-second duration so the sign survives round trips
// through Milliseconds.
func DurationFromMilliseconds(ms int64) Duration {
	secs := ms / 1000
	if secs < 0 {
		return Duration{Seconds: int(secs)}
	}
	return Duration{
		Hours:   int(secs / 3600),
		Minutes: int(secs % 3600 / 60),
		Seconds: int(secs % 60),
	}
}

// ParseClock parses a HH:MM:SS string into a Duration.
func ParseClock(raw string) (Duration, error) {
	var d Duration
	if _, err := fmt.Sscanf(raw, "%d:%d:%d", &d.Hours, &d.Minutes, &d.Seconds); err != nil {
		return Duration{}, fmt.Errorf("parse duration %q: %w", raw, err)
	}
	return d, nil
}
