package export

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
)

// ICSEvent is one calendar entry to serialise.
type ICSEvent struct {
	UID      string
	Summary  string
	Start    time.Time
	End      time.Time
	Category string
}

// ICSExporter renders events as an iCalendar document.
type ICSExporter struct {
	prodID string
}

// NewICSExporter builds an ICS exporter identified by the given
// product name.
func NewICSExporter(prodID string) *ICSExporter {
	if prodID == "" {
		prodID = "Chronicle"
	}
	return &ICSExporter{prodID: prodID}
}

// Render serialises the events into an ICS byte stream.
func (e *ICSExporter) Render(events []ICSEvent) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(fmt.Sprintf("-//%s//EN", e.prodID))

	now := time.Now().UTC()
	for _, ev := range events {
		ve := cal.AddEvent(ev.UID)
		ve.SetDtStampTime(now)
		ve.SetSummary(ev.Summary)
		ve.SetStartAt(ev.Start)
		ve.SetEndAt(ev.End)
		if ev.Category != "" {
			ve.SetProperty(ical.ComponentPropertyCategories, ev.Category)
		}
	}

	return []byte(cal.Serialize()), nil
}
