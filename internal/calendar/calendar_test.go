package calendar

import (
	"bytes"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/KirkDiggler/astrolabe/internal/common/clock/mocks"
	"github.com/KirkDiggler/astrolabe/internal/models"
)

func TestExport(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClock := clockMocks.NewMockClock(ctrl)
	now := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	mockClock.EXPECT().Now().Return(now).AnyTimes()

	exporter, err := NewExporter(&Config{Clock: mockClock, EventDuration: 2 * time.Hour})
	require.NoError(t, err)

	start := time.Date(2024, 8, 10, 19, 30, 0, 0, time.UTC)
	sessions := []*models.VotingSession{
		{
			ID:          "session-1",
			Status:      models.SessionStatusApproved,
			ScheduledAt: start,
			ProposedAt:  now,
			Event: models.Event{
				Title:       "Movie Night",
				Location:    "Living room",
				Description: "Bring snacks",
			},
			Publication: models.Publication{
				Status:      models.PublicationStatusPublished,
				ExternalRef: "https://discord.com/events/guild-1/evt-1",
			},
		},
		{
			ID:     "session-2",
			Status: models.SessionStatusRejected,
			Event:  models.Event{Title: "Karaoke"},
		},
		nil,
	}

	output, err := exporter.Export(&ExportInput{Name: "Guild events", Sessions: sessions})
	require.NoError(t, err)
	assert.Equal(t, 1, output.Events)

	cal, err := ical.ParseCalendar(bytes.NewReader(output.Body))
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, UID("session-1"), event.Id())
	assert.Equal(t, "Movie Night", event.GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "Living room", event.GetProperty(ical.ComponentPropertyLocation).Value)

	gotStart, err := event.GetStartAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(gotStart))

	gotEnd, err := event.GetEndAt()
	require.NoError(t, err)
	assert.True(t, start.Add(2*time.Hour).Equal(gotEnd))
}

func TestExportEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClock := clockMocks.NewMockClock(ctrl)
	mockClock.EXPECT().Now().Return(time.Now()).AnyTimes()

	exporter, err := NewExporter(&Config{Clock: mockClock})
	require.NoError(t, err)

	output, err := exporter.Export(&ExportInput{})
	require.NoError(t, err)
	assert.Equal(t, 0, output.Events)
	assert.Contains(t, string(output.Body), "BEGIN:VCALENDAR")
	assert.Contains(t, string(output.Body), DefaultProductID)
}

func TestNewExporterRequiresClock(t *testing.T) {
	_, err := NewExporter(&Config{})
	assert.Error(t, err)

	_, err = NewExporter(nil)
	assert.Error(t, err)
}
