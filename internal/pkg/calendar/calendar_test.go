package calendar

import (
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_ParsesBack(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	doc := Build("Brainora Activities", "-//Brainora//Activities//EN", []Event{
		{UID: "activity-1@brainora", Title: "Tech Talk", Location: "Auditorium Hall", Category: "Event", Start: start},
		{UID: "activity-2@brainora", Title: "Assignment 1 Due", Start: start.Add(48 * time.Hour), End: start.Add(50 * time.Hour)},
	})

	cal, err := ics.ParseCalendar(strings.NewReader(doc))
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "activity-1@brainora", first.Id())
	assert.Equal(t, "Tech Talk", first.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "Auditorium Hall", first.GetProperty(ics.ComponentPropertyLocation).Value)

	gotStart, err := first.GetStartAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(gotStart))

	gotEnd, err := first.GetEndAt()
	require.NoError(t, err)
	assert.Equal(t, DefaultDuration, gotEnd.Sub(gotStart))

	secondEnd, err := events[1].GetEndAt()
	require.NoError(t, err)
	assert.True(t, start.Add(50*time.Hour).Equal(secondEnd))
}
