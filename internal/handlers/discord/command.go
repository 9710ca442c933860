package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
)

// CommandHandler defines the interface for Discord command handlers
type CommandHandler interface {
	// GetName returns the command name
	GetName() string

	// GetCommand returns the application command definition
	GetCommand() *discordgo.ApplicationCommand

	// Handle processes a Discord interaction
	Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error
}

// commandRequest is the platform-free view of a slash command invocation
type commandRequest struct {
	GuildID   string
	ChannelID string
	UserID    string
	UserName  string

	// Options holds string option values by name
	Options map[string]string
}

// commandReply is what a command wants posted back
type commandReply struct {
	// Chunks are sent in order, each within the message limit
	Chunks []string

	// Ephemeral replies are only shown to the invoking user
	Ephemeral bool
}

type runFunc func(ctx context.Context, req *commandRequest) *commandReply

// BaseCommand provides common functionality for all commands
type BaseCommand struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption

	// Ephemeral defers the reply privately; set for commands whose reply
	// is only useful to the invoker
	Ephemeral bool

	timeout time.Duration
	run     runFunc
}

// GetName returns the command name
func (c *BaseCommand) GetName() string {
	return c.Name
}

// GetCommand returns the application command definition
func (c *BaseCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options:     c.Options,
	}
}

// Handle acknowledges the interaction, runs the command and sends its reply
func (c *BaseCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	// Acknowledge first; store and publish calls can outlast the response window
	if err := DeferResponse(s, i, c.Ephemeral); err != nil {
		return err
	}

	timeout := c.timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	reply := c.run(ctx, newCommandRequest(i))
	return SendReply(s, i, reply)
}

func newCommandRequest(i *discordgo.InteractionCreate) *commandRequest {
	req := &commandRequest{
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		Options:   make(map[string]string),
	}

	switch {
	case i.Member != nil && i.Member.User != nil:
		req.UserID = i.Member.User.ID
		req.UserName = i.Member.User.Username
		if i.Member.Nick != "" {
			req.UserName = i.Member.Nick
		}
	case i.User != nil:
		req.UserID = i.User.ID
		req.UserName = i.User.Username
	}

	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Type == discordgo.ApplicationCommandOptionString {
			req.Options[opt.Name] = opt.StringValue()
		}
	}

	return req
}

// stringOption declares a string option for a command
func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

// DeferResponse acknowledges an interaction so the reply can follow later
func DeferResponse(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) error {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: flags,
		},
	})
}

// SendReply fills in the deferred response with the first chunk and sends
// the rest as follow-ups, in order
func SendReply(s *discordgo.Session, i *discordgo.InteractionCreate, reply *commandReply) error {
	if reply == nil || len(reply.Chunks) == 0 {
		reply = &commandReply{Chunks: []string{"Done."}, Ephemeral: true}
	}

	first := reply.Chunks[0]
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &first,
	}); err != nil {
		return err
	}

	var flags discordgo.MessageFlags
	if reply.Ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	for _, chunk := range reply.Chunks[1:] {
		if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content: chunk,
			Flags:   flags,
		}); err != nil {
			return err
		}
	}

	return nil
}
