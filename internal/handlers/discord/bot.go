package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/KirkDiggler/astrolabe/internal/common/clock"
	"github.com/KirkDiggler/astrolabe/internal/models"
	"github.com/KirkDiggler/astrolabe/internal/services/catalog"
	"github.com/KirkDiggler/astrolabe/internal/services/messaging"
	"github.com/KirkDiggler/astrolabe/internal/services/voting"
	"github.com/bwmarrin/discordgo"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	config     *Config
	logger     *slog.Logger

	catalogService catalog.Service
	votingService  voting.Service
	messages       messaging.Service

	// botUserID is filled in once the gateway is open
	botUserID atomic.Value
}

// Config holds the configuration for the bot
type Config struct {
	// Session is an unopened session from NewSession
	Session *discordgo.Session

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Location resolves the dates and times typed into commands
	Location *time.Location

	// HandlerTimeout bounds the work done for a single interaction or reaction
	HandlerTimeout time.Duration

	// VotingWindow is passed to proposals, zero uses the voting service default
	VotingWindow time.Duration

	CatalogService catalog.Service
	VotingService  voting.Service
	Messages       messaging.Service
	Clock          clock.Clock
	Logger         *slog.Logger
}

// NewSession creates a session with the intents the bot needs
func NewSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessageReactions

	return session, nil
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Session == nil {
		return nil, errors.New("session cannot be nil")
	}
	if cfg.CatalogService == nil {
		return nil, errors.New("catalog service cannot be nil")
	}
	if cfg.VotingService == nil {
		return nil, errors.New("voting service cannot be nil")
	}
	if cfg.Messages == nil {
		return nil, errors.New("messaging service cannot be nil")
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.HandlerTimeout <= 0 {
		cfg.HandlerTimeout = time.Minute
	}
	if cfg.Clock == nil {
		cfg.Clock = &clock.DefaultClock{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	bot := &Bot{
		session:        cfg.Session,
		commands:       make(map[string]CommandHandler),
		commandIDs:     make(map[string]string),
		config:         cfg,
		logger:         logger.With("component", "discord"),
		catalogService: cfg.CatalogService,
		votingService:  cfg.VotingService,
		messages:       cfg.Messages,
	}

	cfg.Session.AddHandler(bot.handleReady)
	cfg.Session.AddHandler(bot.handleInteraction)
	cfg.Session.AddHandler(bot.handleReactionAdd)
	cfg.Session.AddHandler(bot.handleReactionRemove)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	if b.session.State != nil && b.session.State.User != nil {
		b.botUserID.Store(b.session.State.User.ID)
	}

	for _, cmd := range b.eventCommands() {
		if err := b.RegisterCommand(cmd); err != nil {
			return fmt.Errorf("failed to register %s command: %w", cmd.GetName(), err)
		}
	}

	b.logger.Info("bot is running", "commands", len(b.commands))
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	appID := b.applicationID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("failed to delete command", "command", cmdName, "command_id", cmdID, "err", err)
		} else {
			b.logger.Debug("deleted command", "command", cmdName, "command_id", cmdID)
		}
	}

	return b.session.Close()
}

func (b *Bot) applicationID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	guildID := b.config.GuildID
	if guildID != "" {
		b.logger.Info("registering command for guild", "command", cmd.GetName(), "guild_id", guildID)
	} else {
		b.logger.Info("registering command globally", "command", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(b.applicationID(), guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID

	return nil
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	if r.User != nil {
		b.botUserID.Store(r.User.ID)
	}
	b.logger.Info("connected to gateway", "guilds", len(r.Guilds))
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	h, ok := b.commands[name]
	if !ok {
		return
	}

	if err := h.Handle(s, i); err != nil {
		b.logger.Error("error handling command", "command", name, "guild_id", i.GuildID, "err", err)
	}
}

func (b *Bot) handleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	ctx, cancel := context.WithTimeout(context.Background(), b.config.HandlerTimeout)
	defer cancel()

	if err := b.routeReaction(ctx, r.MessageReaction, true); err != nil {
		b.logger.Error("failed to record signal", "message_id", r.MessageID, "user_id", r.UserID, "err", err)
	}
}

func (b *Bot) handleReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	ctx, cancel := context.WithTimeout(context.Background(), b.config.HandlerTimeout)
	defer cancel()

	if err := b.routeReaction(ctx, r.MessageReaction, false); err != nil {
		b.logger.Error("failed to withdraw signal", "message_id", r.MessageID, "user_id", r.UserID, "err", err)
	}
}

// routeReaction turns a vote reaction into a signal. The bot's own
// reactions and unrelated emoji are ignored.
func (b *Bot) routeReaction(ctx context.Context, r *discordgo.MessageReaction, added bool) error {
	if r == nil || r.UserID == "" {
		return nil
	}
	if botID, _ := b.botUserID.Load().(string); r.UserID == botID {
		return nil
	}

	signal, ok := models.SignalFromEmoji(r.Emoji.Name)
	if !ok {
		return nil
	}

	if !added {
		_, err := b.votingService.WithdrawSignal(ctx, &voting.WithdrawSignalInput{
			MessageID: r.MessageID,
			VoterID:   r.UserID,
			Signal:    signal,
		})
		return err
	}

	output, err := b.votingService.CastSignal(ctx, &voting.CastSignalInput{
		MessageID: r.MessageID,
		VoterID:   r.UserID,
		Signal:    signal,
	})
	if err != nil {
		return err
	}

	if output.Resolution != nil {
		b.logger.Info("signal resolved session",
			"session_id", output.Resolution.SessionID,
			"status", output.Resolution.Status)
		if output.Resolution.Warning != nil {
			b.logger.Warn("resolution side effects failed",
				"session_id", output.Resolution.SessionID,
				"err", output.Resolution.Warning)
		}
	}
	return nil
}
