package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/astrolabe/internal/services/messaging"
	"github.com/KirkDiggler/astrolabe/internal/surface"
	"github.com/bwmarrin/discordgo"
)

const (
	// scheduledEventURL links to a guild scheduled event
	scheduledEventURL = "https://discord.com/events/%s/%s"

	// maxEventNameLength and maxEventDescriptionLength are Discord's limits
	maxEventNameLength        = 100
	maxEventDescriptionLength = 1000

	defaultEventLocation = "TBD"
)

// Surface implements surface.Messenger and surface.Scheduler on a Discord session
type Surface struct {
	session *discordgo.Session
}

// NewSurface wraps session
func NewSurface(session *discordgo.Session) (*Surface, error) {
	if session == nil {
		return nil, errors.New("session cannot be nil")
	}
	return &Surface{session: session}, nil
}

// SendMessage posts content to a channel, one message per chunk
func (s *Surface) SendMessage(ctx context.Context, input *surface.SendMessageInput) (*surface.SendMessageOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, errors.New("channel ID cannot be empty")
	}

	output := &surface.SendMessageOutput{}
	for _, chunk := range messaging.SplitMessage(input.Content, surface.MaxMessageLength) {
		msg, err := s.session.ChannelMessageSend(input.ChannelID, chunk, discordgo.WithContext(ctx))
		if err != nil {
			return output, fmt.Errorf("failed to send message: %w", err)
		}
		output.MessageIDs = append(output.MessageIDs, msg.ID)
	}

	return output, nil
}

// Subscribe seeds the message with one reaction per signal so voters can click them
func (s *Surface) Subscribe(ctx context.Context, input *surface.SubscribeInput) error {
	if input == nil || input.ChannelID == "" || input.MessageID == "" {
		return errors.New("channel and message IDs cannot be empty")
	}

	for _, signal := range input.Signals {
		emoji := signal.Emoji()
		if emoji == "" {
			continue
		}
		if err := s.session.MessageReactionAdd(input.ChannelID, input.MessageID, emoji, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("failed to add %s reaction: %w", signal, err)
		}
	}

	return nil
}

// CreateScheduledEntry creates an external guild scheduled event
func (s *Surface) CreateScheduledEntry(ctx context.Context, input *surface.CreateScheduledEntryInput) (*surface.CreateScheduledEntryOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("guild ID cannot be empty")
	}

	location := input.Location
	if location == "" {
		location = defaultEventLocation
	}

	privacy := discordgo.GuildScheduledEventPrivacyLevelGuildOnly
	start, end := input.Start, input.End

	event, err := s.session.GuildScheduledEventCreate(input.GuildID, &discordgo.GuildScheduledEventParams{
		Name:               truncate(input.Name, maxEventNameLength),
		Description:        truncate(input.Description, maxEventDescriptionLength),
		ScheduledStartTime: &start,
		ScheduledEndTime:   &end,
		PrivacyLevel:       privacy,
		EntityType:         discordgo.GuildScheduledEventEntityTypeExternal,
		EntityMetadata: &discordgo.GuildScheduledEventEntityMetadata{
			Location: location,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduled event: %w", err)
	}

	return &surface.CreateScheduledEntryOutput{
		ID:  event.ID,
		URL: fmt.Sprintf(scheduledEventURL, input.GuildID, event.ID),
	}, nil
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
