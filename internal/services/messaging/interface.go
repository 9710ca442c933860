package messaging

import "context"

// Service renders the text the bot posts
type Service interface {
	// GetHelpMessage lists the bot's commands
	GetHelpMessage(ctx context.Context, input *GetHelpMessageInput) (*GetHelpMessageOutput, error)

	// GetBacklogMessage renders a guild's event list as ordered chunks
	GetBacklogMessage(ctx context.Context, input *GetBacklogMessageInput) (*GetBacklogMessageOutput, error)

	// GetSearchResultsMessage renders search matches as ordered chunks
	GetSearchResultsMessage(ctx context.Context, input *GetSearchResultsMessageInput) (*GetSearchResultsMessageOutput, error)

	// GetProposalMessage returns the text of a new voting proposal
	GetProposalMessage(ctx context.Context, input *GetProposalMessageInput) (*GetProposalMessageOutput, error)

	// GetOutcomeMessage announces how a vote resolved
	GetOutcomeMessage(ctx context.Context, input *GetOutcomeMessageInput) (*GetOutcomeMessageOutput, error)

	// GetPublishedMessage announces a newly scheduled event
	GetPublishedMessage(ctx context.Context, input *GetPublishedMessageInput) (*GetPublishedMessageOutput, error)

	// GetProposalWithdrawnMessage says a posted proposal could not be opened
	GetProposalWithdrawnMessage(ctx context.Context, input *GetProposalWithdrawnMessageInput) (*GetProposalWithdrawnMessageOutput, error)

	// GetPublishFailedMessage reports that the calendar entry could not be created
	GetPublishFailedMessage(ctx context.Context, input *GetPublishFailedMessageInput) (*GetPublishFailedMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
