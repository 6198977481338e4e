package scheduling

import (
	"time"

	"github.com/chronicle-app/chronicle-api/internal/models"
)

// AddDurations returns the sum of two durations.
func AddDurations(a, b models.Duration) models.Duration {
	return models.DurationFromMilliseconds(a.Milliseconds() + b.Milliseconds())
}

// SubDurations returns a minus b. The result may be negative; callers
// that require a schedulable duration must check IsPositive.
func SubDurations(a, b models.Duration) models.Duration {
	return models.DurationFromMilliseconds(a.Milliseconds() - b.Milliseconds())
}

// DurationBetween returns the duration from a to b (b minus a).
func DurationBetween(a, b time.Time) models.Duration {
	return models.DurationFromMilliseconds(b.Sub(a).Milliseconds())
}
