package voting

import (
	"log/slog"
	"time"

	"github.com/KirkDiggler/astrolabe/internal/common/clock"
	"github.com/KirkDiggler/astrolabe/internal/common/uuid"
	"github.com/KirkDiggler/astrolabe/internal/models"
	catalogRepo "github.com/KirkDiggler/astrolabe/internal/repositories/catalog"
	sessionRepo "github.com/KirkDiggler/astrolabe/internal/repositories/session"
	"github.com/KirkDiggler/astrolabe/internal/services/messaging"
	"github.com/KirkDiggler/astrolabe/internal/services/publication"
	"github.com/KirkDiggler/astrolabe/internal/surface"
)

const (
	DefaultVotingWindow   = 24 * time.Hour
	DefaultDeadlineJitter = 30 * time.Second
	DefaultPublishTimeout = 30 * time.Second
)

// Config holds configuration for the voting service
type Config struct {
	// VotingWindow is used when a proposal does not carry its own
	VotingWindow time.Duration

	// DeadlineJitter is how late a deadline may fire before Reconcile forces it
	DeadlineJitter time.Duration

	// PublishTimeout bounds each publication attempt
	PublishTimeout time.Duration

	// Policy decides outcomes, MajorityPolicy when nil
	Policy Policy

	// Repository dependencies
	CatalogRepo catalogRepo.Repository
	SessionRepo sessionRepo.Repository

	// Service dependencies
	Publisher     publication.Service
	Messenger     surface.Messenger
	Messages      messaging.Service
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        *slog.Logger
}

// ProposeInput contains parameters for proposing an event
type ProposeInput struct {
	GuildID   string
	ChannelID string

	// Title names an existing catalog event, matched case-insensitively
	Title string

	// ScheduledAt is the already-resolved start time being voted on
	ScheduledAt time.Time

	ProposedBy     string
	ProposedByName string

	// VotingWindow overrides the configured window when positive
	VotingWindow time.Duration
}

// ProposeOutput contains the opened session
type ProposeOutput struct {
	Session *models.VotingSession
}

// CastSignalInput contains parameters for casting a signal. Either
// SessionID or MessageID identifies the session.
type CastSignalInput struct {
	SessionID string
	MessageID string
	VoterID   string
	Signal    models.Signal
}

// CastSignalOutput contains the result of casting a signal
type CastSignalOutput struct {
	// Applied is false when the session was unknown or already resolved
	Applied bool

	Counts Counts

	// Resolution is set when this signal resolved the session early
	Resolution *Resolution
}

// WithdrawSignalInput contains parameters for withdrawing a signal
type WithdrawSignalInput struct {
	SessionID string
	MessageID string
	VoterID   string

	// Signal is the signal being retracted; a different active signal is kept
	Signal models.Signal
}

// WithdrawSignalOutput contains the result of withdrawing a signal
type WithdrawSignalOutput struct {
	Applied bool
	Counts  Counts
}

// ExpireSessionInput contains parameters for expiring a session
type ExpireSessionInput struct {
	SessionID string
}

// ExpireSessionOutput contains the result of expiring a session
type ExpireSessionOutput struct {
	// Resolution is nil when the session was already resolved or unknown
	Resolution *Resolution
}

// Resolution describes how a session left the open state
type Resolution struct {
	SessionID string
	Status    models.SessionStatus
	Counts    Counts

	// ExternalRef links to the scheduled event when publication succeeded
	ExternalRef string

	// Warning reports side effects that failed after the outcome was final
	Warning error
}

// RetryPublicationInput identifies an approved session either by ID or by
// guild and title, in which case the newest approved session is used
type RetryPublicationInput struct {
	SessionID string
	GuildID   string
	Title     string

	// ChannelID overrides where the announcement is sent
	ChannelID string
}

// RetryPublicationOutput contains the published session
type RetryPublicationOutput struct {
	Session     *models.VotingSession
	ExternalRef string

	// AlreadyPublished is true when no new attempt was needed
	AlreadyPublished bool
}

// GetSessionInput identifies a session by ID or proposal message
type GetSessionInput struct {
	SessionID string
	MessageID string
}

// GetSessionOutput contains the session
type GetSessionOutput struct {
	Session *models.VotingSession
}

// ListScheduledInput contains parameters for listing approved sessions
type ListScheduledInput struct {
	GuildID string
}

// ListScheduledOutput contains approved sessions, newest first
type ListScheduledOutput struct {
	Sessions []*models.VotingSession
}

// ReconcileInput contains parameters for a reconciliation pass
type ReconcileInput struct {
}

// ReconcileOutput reports what a reconciliation pass did
type ReconcileOutput struct {
	// Resolved counts sessions forced past their deadline
	Resolved int

	// Adopted counts open sessions re-armed from the archive
	Adopted int
}
