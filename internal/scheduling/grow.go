package scheduling

import (
	"sort"
	"time"

	"github.com/chronicle-app/chronicle-api/internal/models"
)

// GrowEvent expands an event into the free time surrounding it on its
// own day: the start moves back to the end of the closest earlier
// neighbor (or midnight) and the end moves forward to the start of the
// closest later neighbor (or the day border), each bound additionally
// clamped by the event's own min-start and max-end constraints. Events
// on other days are ignored; the grown event never crosses a neighbor.
func GrowEvent(event models.Event, others []models.Event) models.Event {
	dayStart := StartOfDay(event.Start)
	dayBorder := dayStart.Add(23*time.Hour + 59*time.Minute)

	neighbors := sameDayNeighbors(event, others, dayStart)

	freeStart := dayStart
	freeEnd := dayBorder
	eventEnd := event.End()
	for _, n := range neighbors {
		nEnd := n.End()
		if !nEnd.After(event.Start) && nEnd.After(freeStart) {
			freeStart = nEnd
		}
		if !n.Start.Before(eventEnd) && n.Start.Before(freeEnd) {
			freeEnd = n.Start
		}
	}

	grown := event
	if freeStart.Before(event.Start) {
		newStart := freeStart
		if c := event.Constraints; c != nil && c.StartTime != nil {
			if minStart := c.StartTime.MinStart.OnDay(event.Start); minStart.After(newStart) {
				newStart = minStart
			}
		}
		grown.Start = newStart
		grown.Duration = DurationBetween(newStart, eventEnd)
	}
	if grown.End().Before(freeEnd) {
		newEnd := freeEnd
		if c := event.Constraints; c != nil && c.EndTime != nil && c.EndTime.MaxEnd != nil {
			if maxEnd := c.EndTime.MaxEnd.OnDay(event.Start); maxEnd.Before(newEnd) {
				newEnd = maxEnd
			}
		}
		if newEnd.After(grown.Start) {
			grown.Duration = DurationBetween(grown.Start, newEnd)
		}
	}
	return grown
}

func sameDayNeighbors(event models.Event, others []models.Event, dayStart time.Time) []models.Event {
	var neighbors []models.Event
	for _, other := range others {
		if other.ID == event.ID {
			continue
		}
		if StartOfDay(other.Start).Equal(dayStart) || StartOfDay(other.End()).Equal(dayStart) {
			neighbors = append(neighbors, other)
		}
	}
	sort.Slice(neighbors, func(i, j int) bool {
		return neighbors[i].Start.Before(neighbors[j].Start)
	})
	return neighbors
}
