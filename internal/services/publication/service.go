package publication

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KirkDiggler/astrolabe/internal/common/clock"
	"github.com/KirkDiggler/astrolabe/internal/services/messaging"
	"github.com/KirkDiggler/astrolabe/internal/surface"
)

type service struct {
	eventDuration time.Duration
	scheduler     surface.Scheduler
	messenger     surface.Messenger
	messages      messaging.Service
	clock         clock.Clock
	logger        *slog.Logger
}

// NewService creates a new publication service
func NewService(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Scheduler == nil {
		return nil, ErrNilScheduler
	}
	if cfg.Messenger == nil {
		return nil, ErrNilMessenger
	}
	if cfg.Messages == nil {
		return nil, ErrNilMessages
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	duration := cfg.EventDuration
	if duration <= 0 {
		duration = DefaultEventDuration
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		eventDuration: duration,
		scheduler:     cfg.Scheduler,
		messenger:     cfg.Messenger,
		messages:      cfg.Messages,
		clock:         cfg.Clock,
		logger:        logger.With("component", "publication"),
	}, nil
}

// Publish creates the scheduled event and announces it
func (s *service) Publish(ctx context.Context, input *PublishInput) (*PublishOutput, error) {
	if input == nil || input.Event == nil || input.GuildID == "" {
		return nil, ErrInvalidInput
	}

	if input.ScheduledAt.IsZero() || input.ScheduledAt.Before(s.clock.Now()) {
		err := fmt.Errorf("%w: start %s is not in the future", ErrInvalidWindow, input.ScheduledAt.Format(time.RFC3339))
		s.announceFailure(ctx, input, err)
		return nil, err
	}

	entry, err := s.scheduler.CreateScheduledEntry(ctx, &surface.CreateScheduledEntryInput{
		GuildID:     input.GuildID,
		Name:        input.Event.Title,
		Description: input.Event.Description,
		Location:    input.Event.Location,
		Start:       input.ScheduledAt,
		End:         input.ScheduledAt.Add(s.eventDuration),
		Visibility:  surface.VisibilityGuildOnly,
	})
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrPlatformUnavailable, err)
		s.announceFailure(ctx, input, err)
		return nil, err
	}

	ref := entry.URL
	if ref == "" {
		ref = entry.ID
	}

	s.logger.Info("scheduled event created",
		"guild_id", input.GuildID,
		"title", input.Event.Title,
		"entry_id", entry.ID)

	announcement, err := s.messages.GetPublishedMessage(ctx, &messaging.GetPublishedMessageInput{
		Title:       input.Event.Title,
		ScheduledAt: input.ScheduledAt,
		Location:    input.Event.Location,
		URL:         entry.URL,
	})
	if err != nil {
		s.logger.Error("failed to render publication announcement", "title", input.Event.Title, "err", err)
	} else {
		s.announce(ctx, input.ChannelID, announcement.Message)
	}

	return &PublishOutput{
		EntryID:     entry.ID,
		ExternalRef: ref,
	}, nil
}

func (s *service) announceFailure(ctx context.Context, input *PublishInput, cause error) {
	s.logger.Warn("publication failed",
		"guild_id", input.GuildID,
		"title", input.Event.Title,
		"err", cause)

	warning, err := s.messages.GetPublishFailedMessage(ctx, &messaging.GetPublishFailedMessageInput{
		Title:       input.Event.Title,
		ScheduledAt: input.ScheduledAt,
		Error:       cause.Error(),
		Retryable:   input.Retryable,
	})
	if err != nil {
		s.logger.Error("failed to render publication warning", "title", input.Event.Title, "err", err)
		return
	}
	s.announce(ctx, input.ChannelID, warning.Message)
}

// announce failures are logged only; the entry outcome is already decided
func (s *service) announce(ctx context.Context, channelID, content string) {
	if channelID == "" {
		return
	}
	if _, err := s.messenger.SendMessage(ctx, &surface.SendMessageInput{
		ChannelID: channelID,
		Content:   content,
	}); err != nil {
		s.logger.Error("failed to send announcement", "channel_id", channelID, "err", err)
	}
}
