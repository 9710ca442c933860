package surface

import (
	"time"

	"github.com/KirkDiggler/astrolabe/internal/models"
)

// MaxMessageLength is the per-message character budget of the platform
const MaxMessageLength = 2000

// Visibility controls who can see a scheduled entry
type Visibility string

const (
	// VisibilityGuildOnly limits the entry to guild members
	VisibilityGuildOnly Visibility = "guild_only"
)

// SendMessageInput contains parameters for posting to a channel
type SendMessageInput struct {
	ChannelID string
	Content   string
}

// SendMessageOutput contains the IDs of the posted chunks in order
type SendMessageOutput struct {
	MessageIDs []string
}

// LastMessageID returns the ID of the final chunk, or "" if nothing was sent
func (o *SendMessageOutput) LastMessageID() string {
	if o == nil || len(o.MessageIDs) == 0 {
		return ""
	}
	return o.MessageIDs[len(o.MessageIDs)-1]
}

// SubscribeInput contains parameters for attaching signals to a message
type SubscribeInput struct {
	ChannelID string
	MessageID string
	Signals   []models.Signal
}

// CreateScheduledEntryInput describes a calendar entry
type CreateScheduledEntryInput struct {
	GuildID     string
	Name        string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Visibility  Visibility
}

// CreateScheduledEntryOutput contains the created entry's reference
type CreateScheduledEntryOutput struct {
	// ID is the platform identifier of the entry
	ID string

	// URL links to the entry, empty when the platform has none
	URL string
}
