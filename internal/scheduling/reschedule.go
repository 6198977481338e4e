package scheduling

import (
	"sort"
	"time"

	"github.com/chronicle-app/chronicle-api/internal/models"
)

// Reschedule stretches each upcoming event toward its successor's start
// where its constraints allow, leaving past events untouched. Events
// whose stretched form fails constraint validation keep their original
// placement. The returned slice holds past events first, then the
// upcoming ones in start order.
func Reschedule(now time.Time, events []models.Event, maxAttempts int) []models.Event {
	var passed, upcoming []models.Event
	for _, ev := range events {
		if ev.Start.Before(now) {
			passed = append(passed, ev)
		} else {
			upcoming = append(upcoming, ev)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Start.Before(upcoming[j].Start)
	})

	for i := 0; i+1 < len(upcoming); i++ {
		stretched := upcoming[i]
		stretched.Duration = DurationBetween(stretched.Start, upcoming[i+1].Start)
		if result := CheckConstraints(stretched, maxAttempts); result.Accepted {
			upcoming[i] = *result.Event
		}
	}

	return append(passed, upcoming...)
}
