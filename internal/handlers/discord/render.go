package discord

import (
	"context"
	"errors"

	"github.com/KirkDiggler/astrolabe/internal/common/timeparse"
	"github.com/KirkDiggler/astrolabe/internal/services/catalog"
	"github.com/KirkDiggler/astrolabe/internal/services/messaging"
	"github.com/KirkDiggler/astrolabe/internal/services/voting"
)

// errorType maps a service error to the message shown to the user
func errorType(err error) messaging.ErrorType {
	switch {
	case errors.Is(err, timeparse.ErrInvalidDateTime):
		return messaging.ErrorTypeInvalidDateTime
	case errors.Is(err, catalog.ErrDuplicateEvent):
		return messaging.ErrorTypeDuplicateEvent
	case errors.Is(err, catalog.ErrEventNotFound), errors.Is(err, voting.ErrTitleNotFound):
		return messaging.ErrorTypeEventNotFound
	case errors.Is(err, voting.ErrStartsBeforeDeadline):
		return messaging.ErrorTypeStartsTooSoon
	case errors.Is(err, voting.ErrAlreadyProposed):
		return messaging.ErrorTypeAlreadyProposed
	case errors.Is(err, catalog.ErrStoreUnavailable), errors.Is(err, voting.ErrStoreUnavailable):
		return messaging.ErrorTypeStoreUnavailable
	case errors.Is(err, voting.ErrNotApproved):
		return messaging.ErrorTypeNothingToRetry
	default:
		return messaging.ErrorTypeUnknown
	}
}

// errorReply renders err privately for the invoking user
func (b *Bot) errorReply(ctx context.Context, err error, subject string) *commandReply {
	kind := errorType(err)
	if kind == messaging.ErrorTypeUnknown {
		b.logger.Error("command failed", "subject", subject, "err", err)
	}

	output, renderErr := b.messages.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		ErrorType: kind,
		Subject:   subject,
	})
	if renderErr != nil {
		return textReply(err.Error(), true)
	}
	return textReply(output.Message, true)
}

func textReply(text string, ephemeral bool) *commandReply {
	return &commandReply{
		Chunks:    messaging.SplitMessage(text, 0),
		Ephemeral: ephemeral,
	}
}
