// Package calendar renders approved voting sessions as an iCalendar feed.
package calendar

import (
	"errors"
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/KirkDiggler/astrolabe/internal/common/clock"
	"github.com/KirkDiggler/astrolabe/internal/models"
)

const (
	DefaultProductID     = "-//astrolabe//scheduled events//EN"
	DefaultEventDuration = 3 * time.Hour

	// ContentType is the media type of an exported feed
	ContentType = "text/calendar; charset=utf-8"

	uidDomain = "astrolabe"
)

// Config holds configuration for the exporter
type Config struct {
	ProductID string

	// EventDuration sets DTEND relative to the voted start time
	EventDuration time.Duration

	Clock clock.Clock
}

// ExportInput contains the sessions to render
type ExportInput struct {
	// Name is shown by calendar clients as the feed title
	Name string

	// Sessions that are not approved are skipped
	Sessions []*models.VotingSession
}

// ExportOutput contains the serialized feed
type ExportOutput struct {
	Body []byte

	// Events counts the VEVENTs written
	Events int
}

// Exporter builds iCalendar documents
type Exporter struct {
	productID string
	duration  time.Duration
	clock     clock.Clock
}

// NewExporter creates a new exporter
func NewExporter(cfg *Config) (*Exporter, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	productID := cfg.ProductID
	if productID == "" {
		productID = DefaultProductID
	}
	duration := cfg.EventDuration
	if duration <= 0 {
		duration = DefaultEventDuration
	}

	return &Exporter{
		productID: productID,
		duration:  duration,
		clock:     cfg.Clock,
	}, nil
}

// Export renders every approved session as a VEVENT
func (e *Exporter) Export(input *ExportInput) (*ExportOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(e.productID)
	if input.Name != "" {
		cal.SetXWRCalName(input.Name)
	}

	stamp := e.clock.Now().UTC()
	written := 0
	for _, session := range input.Sessions {
		if session == nil || session.Status != models.SessionStatusApproved {
			continue
		}

		event := cal.AddEvent(UID(session.ID))
		event.SetDtStampTime(stamp)
		event.SetCreatedTime(session.ProposedAt.UTC())
		event.SetStartAt(session.ScheduledAt.UTC())
		event.SetEndAt(session.ScheduledAt.Add(e.duration).UTC())
		event.SetSummary(session.Event.Title)
		event.SetStatus(ical.ObjectStatusConfirmed)
		if session.Event.Location != "" {
			event.SetLocation(session.Event.Location)
		}
		if session.Event.Description != "" {
			event.SetDescription(session.Event.Description)
		}
		if session.Publication.ExternalRef != "" {
			event.SetURL(session.Publication.ExternalRef)
		}
		written++
	}

	return &ExportOutput{
		Body:   []byte(cal.Serialize()),
		Events: written,
	}, nil
}

// UID is the stable VEVENT identifier for a session
func UID(sessionID string) string {
	return fmt.Sprintf("%s@%s", sessionID, uidDomain)
}
