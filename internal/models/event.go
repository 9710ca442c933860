package models

import (
	"strings"
	"time"
)

// Event is a catalog entry a guild can vote to schedule
type Event struct {
	// GuildID is the Discord server the event belongs to
	GuildID string

	// Title is the display title, unique per guild ignoring case
	Title string

	// Date is the free-text date given when the event was added
	Date string

	// Location is where the event takes place
	Location string

	// Description is a short blurb shown in listings
	Description string

	// ScheduledAt is set once a vote has confirmed a start time
	ScheduledAt *time.Time `json:",omitempty"`

	// CreatedAt is when the event was added to the catalog
	CreatedAt time.Time
}

// Key returns the normalized title used for uniqueness
func (e *Event) Key() string {
	return NormalizeTitle(e.Title)
}

// NormalizeTitle case-folds a title for lookups
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
