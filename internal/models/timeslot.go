package models

import "time"

// TimeSlot is a recurring background template rendered behind events:
// a time-of-day, a duration and the weekdays it applies to. TimeSlots
// never participate in collision detection or constraint checking.
type TimeSlot struct {
	ID       int64          `json:"id"`
	Title    string         `json:"title"`
	Start    TimeOfDay      `json:"start"`
	Duration Duration       `json:"duration"`
	Days     []time.Weekday `json:"days"`
	Color    string         `json:"color"`
}
