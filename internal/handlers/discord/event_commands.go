package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/astrolabe/internal/common/timeparse"
	"github.com/KirkDiggler/astrolabe/internal/services/catalog"
	"github.com/KirkDiggler/astrolabe/internal/services/messaging"
	"github.com/KirkDiggler/astrolabe/internal/services/publication"
	"github.com/KirkDiggler/astrolabe/internal/services/voting"
	"github.com/bwmarrin/discordgo"
)

// Command and option names
const (
	CommandHelp      = "help"
	CommandBacklog   = "backlog"
	CommandAdd       = "add"
	CommandRemove    = "remove"
	CommandSearch    = "search"
	CommandEvent     = "event"
	CommandRepublish = "republish"

	OptionTitle       = "title"
	OptionDate        = "date"
	OptionTime        = "time"
	OptionLocation    = "location"
	OptionDescription = "description"
	OptionKeyword     = "keyword"
)

// eventCommands builds every slash command the bot serves
func (b *Bot) eventCommands() []CommandHandler {
	timeout := b.config.HandlerTimeout

	return []CommandHandler{
		&BaseCommand{
			Name:        CommandHelp,
			Description: "Show the list of available commands",
			Ephemeral:   true,
			timeout:     timeout,
			run:         b.runHelp,
		},
		&BaseCommand{
			Name:        CommandBacklog,
			Description: "List every event in the backlog",
			timeout:     timeout,
			run:         b.runBacklog,
		},
		&BaseCommand{
			Name:        CommandAdd,
			Description: "Add an event to the backlog",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption(OptionTitle, "Event title", true),
				stringOption(OptionDate, "Date as MM/DD/YYYY", true),
				stringOption(OptionLocation, "Where it happens", true),
				stringOption(OptionDescription, "What it is about", true),
				stringOption(OptionTime, "Start time as HH:MM AM/PM", false),
			},
			timeout: timeout,
			run:     b.runAdd,
		},
		&BaseCommand{
			Name:        CommandRemove,
			Description: "Remove an event from the backlog",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption(OptionTitle, "Event title", true),
			},
			timeout: timeout,
			run:     b.runRemove,
		},
		&BaseCommand{
			Name:        CommandSearch,
			Description: "Search the backlog by keyword",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption(OptionKeyword, "Text to look for", true),
			},
			timeout: timeout,
			run:     b.runSearch,
		},
		&BaseCommand{
			Name:        CommandEvent,
			Description: "Propose scheduling a backlog event and open a vote",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption(OptionTitle, "Event title from the backlog", true),
				stringOption(OptionDate, "Date as MM/DD/YYYY", true),
				stringOption(OptionTime, "Start time as HH:MM AM/PM", true),
			},
			Ephemeral: true,
			timeout:   timeout,
			run:       b.runEvent,
		},
		&BaseCommand{
			Name:        CommandRepublish,
			Description: "Retry creating the scheduled event for an approved vote",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption(OptionTitle, "Event title", true),
			},
			Ephemeral: true,
			timeout:   timeout,
			run:       b.runRepublish,
		},
	}
}

func (b *Bot) runHelp(ctx context.Context, req *commandRequest) *commandReply {
	output, err := b.messages.GetHelpMessage(ctx, &messaging.GetHelpMessageInput{})
	if err != nil {
		return b.errorReply(ctx, err, "")
	}
	return textReply(output.Message, true)
}

func (b *Bot) runBacklog(ctx context.Context, req *commandRequest) *commandReply {
	listed, err := b.catalogService.ListEvents(ctx, &catalog.ListEventsInput{GuildID: req.GuildID})
	if err != nil {
		return b.errorReply(ctx, err, "")
	}

	output, err := b.messages.GetBacklogMessage(ctx, &messaging.GetBacklogMessageInput{Events: listed.Events})
	if err != nil {
		return b.errorReply(ctx, err, "")
	}

	return &commandReply{Chunks: output.Chunks}
}

func (b *Bot) runAdd(ctx context.Context, req *commandRequest) *commandReply {
	title := req.Options[OptionTitle]

	output, err := b.catalogService.AddEvent(ctx, &catalog.AddEventInput{
		GuildID:     req.GuildID,
		Title:       title,
		Date:        req.Options[OptionDate],
		Time:        req.Options[OptionTime],
		Location:    req.Options[OptionLocation],
		Description: req.Options[OptionDescription],
	})
	if err != nil {
		return b.errorReply(ctx, err, title)
	}

	return textReply(fmt.Sprintf("Event **%s** added to the backlog.", output.Event.Title), false)
}

func (b *Bot) runRemove(ctx context.Context, req *commandRequest) *commandReply {
	title := req.Options[OptionTitle]

	output, err := b.catalogService.RemoveEvent(ctx, &catalog.RemoveEventInput{
		GuildID: req.GuildID,
		Title:   title,
	})
	if err != nil {
		return b.errorReply(ctx, err, title)
	}
	if !output.Removed {
		return b.errorReply(ctx, catalog.ErrEventNotFound, title)
	}

	return textReply(fmt.Sprintf("Event **%s** removed from the backlog.", title), false)
}

func (b *Bot) runSearch(ctx context.Context, req *commandRequest) *commandReply {
	keyword := req.Options[OptionKeyword]

	found, err := b.catalogService.SearchEvents(ctx, &catalog.SearchEventsInput{
		GuildID: req.GuildID,
		Query:   keyword,
	})
	if err != nil {
		return b.errorReply(ctx, err, keyword)
	}

	output, err := b.messages.GetSearchResultsMessage(ctx, &messaging.GetSearchResultsMessageInput{
		Query:  keyword,
		Events: found.Events,
	})
	if err != nil {
		return b.errorReply(ctx, err, keyword)
	}

	return &commandReply{Chunks: output.Chunks}
}

func (b *Bot) runEvent(ctx context.Context, req *commandRequest) *commandReply {
	title := req.Options[OptionTitle]

	scheduledAt, err := timeparse.Parse(req.Options[OptionDate], req.Options[OptionTime], b.config.Location)
	if err != nil {
		return b.errorReply(ctx, err, title)
	}
	if !scheduledAt.After(b.config.Clock.Now()) {
		return textReply("The start time has to be in the future.", true)
	}

	output, err := b.votingService.Propose(ctx, &voting.ProposeInput{
		GuildID:        req.GuildID,
		ChannelID:      req.ChannelID,
		Title:          title,
		ScheduledAt:    scheduledAt,
		ProposedBy:     req.UserID,
		ProposedByName: req.UserName,
		VotingWindow:   b.config.VotingWindow,
	})
	if err != nil {
		return b.errorReply(ctx, err, title)
	}

	return textReply(fmt.Sprintf("Voting on **%s** is open until %s.",
		output.Session.Title,
		timeparse.Format(output.Session.Deadline.In(b.config.Location))), true)
}

func (b *Bot) runRepublish(ctx context.Context, req *commandRequest) *commandReply {
	title := strings.TrimSpace(req.Options[OptionTitle])

	output, err := b.votingService.RetryPublication(ctx, &voting.RetryPublicationInput{
		GuildID:   req.GuildID,
		Title:     title,
		ChannelID: req.ChannelID,
	})
	if err != nil {
		if errors.Is(err, publication.ErrPlatformUnavailable) || errors.Is(err, publication.ErrInvalidWindow) {
			return textReply(fmt.Sprintf("Publishing **%s** failed again: %v", title, err), true)
		}
		if errors.Is(err, voting.ErrPublishInProgress) {
			return textReply(fmt.Sprintf("**%s** is being published right now.", title), true)
		}
		return b.errorReply(ctx, err, title)
	}

	if output.AlreadyPublished {
		return textReply(fmt.Sprintf("**%s** is already scheduled: %s", output.Session.Title, output.ExternalRef), true)
	}
	return textReply(fmt.Sprintf("**%s** is now scheduled: %s", output.Session.Title, output.ExternalRef), true)
}
