package catalog

import (
	"log/slog"
	"time"

	"github.com/KirkDiggler/astrolabe/internal/common/clock"
	"github.com/KirkDiggler/astrolabe/internal/models"
	catalogRepo "github.com/KirkDiggler/astrolabe/internal/repositories/catalog"
)

// Config holds configuration for the catalog service
type Config struct {
	Repository catalogRepo.Repository
	Clock      clock.Clock

	// Location resolves typed dates and times, UTC when nil
	Location *time.Location

	Logger *slog.Logger
}

// AddEventInput contains the fields typed into /add
type AddEventInput struct {
	GuildID string
	Title   string

	// Date is MM/DD/YYYY
	Date string

	// Time is HH:MM AM/PM and optional
	Time string

	Location    string
	Description string
}

// AddEventOutput contains the stored event
type AddEventOutput struct {
	Event *models.Event
}

type RemoveEventInput struct {
	GuildID string
	Title   string
}

type RemoveEventOutput struct {
	// Removed is false when no event had the title
	Removed bool
}

type ListEventsInput struct {
	GuildID string
}

type ListEventsOutput struct {
	Events []*models.Event
}

type SearchEventsInput struct {
	GuildID string
	Query   string
}

type SearchEventsOutput struct {
	Events []*models.Event
}

type GetEventInput struct {
	GuildID string
	Title   string
}

type GetEventOutput struct {
	Event *models.Event
}
