package dto

import (
	"time"

	"github.com/chronicle-app/chronicle-api/internal/models"
)

// AnalyticsResponse reports category shares over a day or week window,
// optionally bundled with a system instrumentation snapshot.
type AnalyticsResponse struct {
	WindowStart         time.Time              `json:"windowStart"`
	WindowEnd           time.Time              `json:"windowEnd"`
	TotalMinutes        int64                  `json:"totalMinutes"`
	CategoryMinutes     map[string]int64       `json:"categoryMinutes"`
	CategoryPercentages []models.CategoryShare `json:"categoryPercentages"`
	System              *models.SystemMetrics  `json:"system,omitempty"`
}
