package dto

import (
	"time"

	"github.com/chronicle-app/chronicle-api/internal/models"
)

// EventRequest carries the payload for creating or replacing an event.
type EventRequest struct {
	Title       string                      `json:"title" validate:"required"`
	Start       time.Time                   `json:"start" validate:"required"`
	Duration    models.Duration             `json:"duration"`
	Category    string                      `json:"category"`
	Constraints *models.ScheduleConstraints `json:"constraints,omitempty"`
}

// EventResponse is the API projection of a stored event. Adjusted
// reports whether the engine moved or shrank the event to fit it
// around existing commitments.
type EventResponse struct {
	ID          string                      `json:"id"`
	Title       string                      `json:"title"`
	Start       time.Time                   `json:"start"`
	End         time.Time                   `json:"end"`
	Duration    string                      `json:"duration"`
	Category    string                      `json:"category,omitempty"`
	Color       string                      `json:"color,omitempty"`
	Constraints *models.ScheduleConstraints `json:"constraints,omitempty"`
	Adjusted    bool                        `json:"adjusted"`
}

// EventQuery filters event listings to a half-open time window.
type EventQuery struct {
	After  *time.Time `form:"after" json:"after"`
	Before *time.Time `form:"before" json:"before"`
}

// EventFromModel maps a stored event onto its API projection.
func EventFromModel(event models.Event, color string, adjusted bool) EventResponse {
	return EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Start:       event.Start,
		End:         event.End(),
		Duration:    event.Duration.Clock(),
		Category:    event.CategoryOverride,
		Color:       color,
		Constraints: event.Constraints,
		Adjusted:    adjusted,
	}
}
