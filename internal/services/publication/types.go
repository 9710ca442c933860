package publication

import (
	"log/slog"
	"time"

	"github.com/KirkDiggler/astrolabe/internal/common/clock"
	"github.com/KirkDiggler/astrolabe/internal/models"
	"github.com/KirkDiggler/astrolabe/internal/services/messaging"
	"github.com/KirkDiggler/astrolabe/internal/surface"
)

// DefaultEventDuration is how long a scheduled event lasts unless configured
const DefaultEventDuration = 3 * time.Hour

// Config holds configuration for the publication service
type Config struct {
	// EventDuration is added to the start to give the end of the entry
	EventDuration time.Duration

	Scheduler surface.Scheduler
	Messenger surface.Messenger
	Messages  messaging.Service
	Clock     clock.Clock
	Logger    *slog.Logger
}

// PublishInput contains parameters for publishing an approved event
type PublishInput struct {
	GuildID string

	// ChannelID receives the announcement
	ChannelID string

	Event       *models.Event
	ScheduledAt time.Time

	// Retryable adds the republish hint to failure announcements
	Retryable bool
}

// PublishOutput contains the created entry's reference
type PublishOutput struct {
	EntryID string

	// ExternalRef is the link to the entry, falling back to EntryID
	ExternalRef string
}
