package dto

import (
	"time"

	"github.com/chronicle-app/chronicle-api/internal/models"
)

// TimeSlotRequest defines a recurring slot. Start is expressed as
// minutes since midnight; Days uses time.Weekday numbering (Sunday=0).
type TimeSlotRequest struct {
	Title    string          `json:"title" validate:"required"`
	Start    int             `json:"start" validate:"min=0,max=1439"`
	Duration models.Duration `json:"duration"`
	Days     []int           `json:"days" validate:"required,min=1,dive,min=0,max=6"`
	Color    string          `json:"color"`
}

// TimeSlotResponse is the API projection of a recurring slot.
type TimeSlotResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Start    string `json:"start"`
	Duration string `json:"duration"`
	Days     []int  `json:"days"`
	Color    string `json:"color,omitempty"`
}

// OccurrenceResponse is one concrete expansion of a recurring slot.
type OccurrenceResponse struct {
	SlotID int64     `json:"slotId"`
	Title  string    `json:"title"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Color  string    `json:"color,omitempty"`
}

// TimeSlotFromModel maps a stored slot onto its API projection.
func TimeSlotFromModel(slot models.TimeSlot) TimeSlotResponse {
	days := make([]int, 0, len(slot.Days))
	for _, day := range slot.Days {
		days = append(days, int(day))
	}
	return TimeSlotResponse{
		ID:       slot.ID,
		Title:    slot.Title,
		Start:    slot.Start.String(),
		Duration: slot.Duration.Clock(),
		Days:     days,
		Color:    slot.Color,
	}
}
