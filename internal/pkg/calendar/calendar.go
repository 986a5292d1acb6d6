package calendar

import (
	"time"

	ics "github.com/arran4/golang-ical"
)

// DefaultDuration is used for events without an explicit end.
const DefaultDuration = time.Hour

// Event is one entry of a published calendar.
type Event struct {
	UID         string
	Title       string
	Description string
	Location    string
	Category    string
	URL         string
	Start       time.Time
	End         time.Time
	Created     time.Time
	Updated     time.Time
}

// Build renders events as an iCalendar (RFC 5545) document.
func Build(name, productID string, events []Event) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(name)

	stamp := time.Now().UTC()
	for _, e := range events {
		vevent := cal.AddEvent(e.UID)
		vevent.SetDtStampTime(stamp)
		if !e.Created.IsZero() {
			vevent.SetCreatedTime(e.Created.UTC())
		}
		if !e.Updated.IsZero() {
			vevent.SetModifiedAt(e.Updated.UTC())
		}

		end := e.End
		if end.IsZero() || !end.After(e.Start) {
			end = e.Start.Add(DefaultDuration)
		}
		vevent.SetStartAt(e.Start.UTC())
		vevent.SetEndAt(end.UTC())

		vevent.SetSummary(e.Title)
		if e.Description != "" {
			vevent.SetDescription(e.Description)
		}
		if e.Location != "" {
			vevent.SetLocation(e.Location)
		}
		if e.URL != "" {
			vevent.SetURL(e.URL)
		}
		if e.Category != "" {
			vevent.AddProperty(ics.ComponentPropertyCategories, e.Category)
		}
	}

	return cal.Serialize()
}
