package models

import (
	"time"
)

// SessionStatus represents the current state of a voting session
type SessionStatus string

const (
	// SessionStatusOpen indicates the session is still collecting signals
	SessionStatusOpen SessionStatus = "open"

	// SessionStatusApproved indicates the proposal passed
	SessionStatusApproved SessionStatus = "approved"

	// SessionStatusRejected indicates the proposal failed
	SessionStatusRejected SessionStatus = "rejected"

	// SessionStatusExpired indicates the session closed without quorum
	SessionStatusExpired SessionStatus = "expired"
)

// IsOpen returns true if the session still accepts signals
func (s SessionStatus) IsOpen() bool {
	return s == SessionStatusOpen
}

// IsTerminal returns true for every resolved or expired status
func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusApproved || s == SessionStatusRejected || s == SessionStatusExpired
}

// PublicationStatus tracks whether an approved event reached the guild calendar
type PublicationStatus string

const (
	// PublicationStatusNone means publication has not been attempted
	PublicationStatusNone PublicationStatus = ""

	// PublicationStatusPublished means the scheduled event exists
	PublicationStatusPublished PublicationStatus = "published"

	// PublicationStatusFailed means the last attempt failed and can be retried
	PublicationStatusFailed PublicationStatus = "failed"
)

// Publication records the outcome of pushing an approved event to the calendar
type Publication struct {
	Status PublicationStatus

	// ExternalRef is the link to the scheduled event
	ExternalRef string

	// Error holds the detail of the last failed attempt
	Error string

	Attempts int

	PublishedAt *time.Time
}

// VotingSession is one proposal's bounded voting window
type VotingSession struct {
	// ID is the unique identifier for the session
	ID string

	// GuildID is the Discord server the proposal was made in
	GuildID string

	// ChannelID is where the proposal message was posted
	ChannelID string

	// MessageID is the proposal message that collects reactions
	MessageID string

	// Title is the proposed event's title as typed by the proposer
	Title string

	// Event is a snapshot of the catalog record at proposal time
	Event Event

	// ProposedBy is the Discord user ID of the proposer
	ProposedBy string

	// ProposedByName is the display name of the proposer
	ProposedByName string

	// ScheduledAt is the start time being voted on
	ScheduledAt time.Time

	// ProposedAt is when the session opened
	ProposedAt time.Time

	// Deadline is when the session resolves unless the policy decides earlier
	Deadline time.Time

	// Status is the current state of the session
	Status SessionStatus

	// ApproveCount and RejectCount are the final tally once resolved
	ApproveCount int
	RejectCount  int

	// ResolvedAt is when the session left the open state
	ResolvedAt *time.Time `json:",omitempty"`

	Publication Publication
}
