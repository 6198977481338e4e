package scheduling

import (
	"time"

	"github.com/chronicle-app/chronicle-api/internal/models"
)

// DefaultCategory attributes events that carry no category override.
// The analyzer takes it as configuration so deployments (and tests) can
// rename it.
const DefaultCategory = "Default"

const minutesPerDay = 24 * 60

// Analyzer aggregates committed events by category per day or week.
type Analyzer struct {
	defaultCategory string
}

// NewAnalyzer builds an Analyzer, falling back to DefaultCategory when
// the configured name is empty.
func NewAnalyzer(defaultCategory string) Analyzer {
	if defaultCategory == "" {
		defaultCategory = DefaultCategory
	}
	return Analyzer{defaultCategory: defaultCategory}
}

// StartOfDay truncates a time point to midnight of its calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Sunday beginning the week that
// contains the given day.
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

// FilterDayEvents retains the events starting on the given calendar day.
func FilterDayEvents(day time.Time, events []models.Event) []models.Event {
	dayStart := StartOfDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1)
	return filterStartingWithin(dayStart, dayEnd, events)
}

// FilterWeekEvents retains the events starting inside the 7-day window
// beginning at the weekday-aligned start of the given day's week.
func FilterWeekEvents(day time.Time, events []models.Event) []models.Event {
	weekStart := StartOfWeek(day)
	weekEnd := weekStart.AddDate(0, 0, 7)
	return filterStartingWithin(weekStart, weekEnd, events)
}

func filterStartingWithin(start, end time.Time, events []models.Event) []models.Event {
	var filtered []models.Event
	for _, ev := range events {
		if !ev.Start.Before(start) && ev.Start.Before(end) {
			filtered = append(filtered, ev)
		}
	}
	return filtered
}

// CategoryMinutes accumulates per-category minute totals, attributing
// each event's full duration to its category override or the default.
func (a Analyzer) CategoryMinutes(events []models.Event) map[string]int64 {
	minutes := make(map[string]int64)
	for _, ev := range events {
		category := ev.CategoryOverride
		if category == "" {
			category = a.defaultCategory
		}
		minutes[category] += ev.Duration.Milliseconds() / int64(time.Minute/time.Millisecond)
	}
	return minutes
}

// AnalyzeDay aggregates one calendar day. The percentage denominator is
// the full 1440-minute day, so the shares read "fraction of the day",
// not "fraction of scheduled time".
func (a Analyzer) AnalyzeDay(day time.Time, events []models.Event) models.ScheduleAnalytics {
	return a.analyze(FilterDayEvents(day, events), minutesPerDay)
}

// AnalyzeWeek aggregates the week containing the given day against the
// fixed 1440x7-minute denominator.
func (a Analyzer) AnalyzeWeek(day time.Time, events []models.Event) models.ScheduleAnalytics {
	return a.analyze(FilterWeekEvents(day, events), minutesPerDay*7)
}

func (a Analyzer) analyze(events []models.Event, totalMinutes int64) models.ScheduleAnalytics {
	categoryMinutes := a.CategoryMinutes(events)
	shares := make([]models.CategoryShare, 0, len(categoryMinutes))
	for category, minutes := range categoryMinutes {
		shares = append(shares, models.CategoryShare{
			Category:   category,
			Percentage: float64(minutes) / float64(totalMinutes) * 100,
		})
	}
	return models.ScheduleAnalytics{
		TotalMinutes:        totalMinutes,
		CategoryMinutes:     categoryMinutes,
		CategoryPercentages: shares,
	}
}
