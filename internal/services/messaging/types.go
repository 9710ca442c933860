package messaging

import (
	"time"

	"github.com/KirkDiggler/astrolabe/internal/models"
)

// ErrorType identifies a user-facing failure
type ErrorType string

const (
	ErrorTypeInvalidDateTime  ErrorType = "invalid_date_time"
	ErrorTypeDuplicateEvent   ErrorType = "duplicate_event"
	ErrorTypeStartsTooSoon    ErrorType = "starts_too_soon"
	ErrorTypeEventNotFound    ErrorType = "event_not_found"
	ErrorTypeAlreadyProposed  ErrorType = "already_proposed"
	ErrorTypeStoreUnavailable ErrorType = "store_unavailable"
	ErrorTypeNothingToRetry   ErrorType = "nothing_to_retry"
	ErrorTypeUnknown          ErrorType = "unknown"
)

// GetHelpMessageInput contains parameters for the help text
type GetHelpMessageInput struct {
}

// GetHelpMessageOutput contains the help text
type GetHelpMessageOutput struct {
	Message string
}

// GetBacklogMessageInput contains the events to list
type GetBacklogMessageInput struct {
	Events []*models.Event
}

// GetBacklogMessageOutput contains the rendered list split for sending
type GetBacklogMessageOutput struct {
	// Chunks are in sending order, each within the platform limit
	Chunks []string

	// Empty is true when there was nothing to list
	Empty bool
}

// GetSearchResultsMessageInput contains the search query and its matches
type GetSearchResultsMessageInput struct {
	Query  string
	Events []*models.Event
}

// GetSearchResultsMessageOutput contains the rendered matches split for sending
type GetSearchResultsMessageOutput struct {
	Chunks []string
	Empty  bool
}

// GetProposalMessageInput contains parameters for a proposal message
type GetProposalMessageInput struct {
	ProposerName string
	Title        string
	ScheduledAt  time.Time
	Deadline     time.Time
}

// GetProposalMessageOutput contains the proposal text
type GetProposalMessageOutput struct {
	Message string
}

// GetProposalWithdrawnMessageInput contains the title of the withdrawn proposal
type GetProposalWithdrawnMessageInput struct {
	Title string
}

// GetProposalWithdrawnMessageOutput contains the notice text
type GetProposalWithdrawnMessageOutput struct {
	Message string
}

// GetOutcomeMessageInput contains parameters for an outcome announcement
type GetOutcomeMessageInput struct {
	Title        string
	Status       models.SessionStatus
	ApproveCount int
	RejectCount  int
}

// GetOutcomeMessageOutput contains the outcome text
type GetOutcomeMessageOutput struct {
	Message string
}

// GetPublishedMessageInput contains parameters for a publication announcement
type GetPublishedMessageInput struct {
	Title       string
	ScheduledAt time.Time
	Location    string

	// URL links to the scheduled event, omitted from the text when empty
	URL string
}

// GetPublishedMessageOutput contains the announcement text
type GetPublishedMessageOutput struct {
	Message string
}

// GetPublishFailedMessageInput contains parameters for a failed publication
type GetPublishFailedMessageInput struct {
	Title       string
	ScheduledAt time.Time
	Error       string

	// Retryable adds the republish hint
	Retryable bool
}

// GetPublishFailedMessageOutput contains the warning text
type GetPublishFailedMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	ErrorType ErrorType

	// Subject is usually the title the user typed
	Subject string
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Message string
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Seed fixes the flavour text selection, zero uses the current time
	Seed int64

	// Location renders dates in the guild's time zone, defaults to UTC
	Location *time.Location
}
