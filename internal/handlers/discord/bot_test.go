package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/astrolabe/internal/common/clock/mocks"
	"github.com/KirkDiggler/astrolabe/internal/common/timeparse"
	"github.com/KirkDiggler/astrolabe/internal/models"
	"github.com/KirkDiggler/astrolabe/internal/services/catalog"
	catalogMocks "github.com/KirkDiggler/astrolabe/internal/services/catalog/mocks"
	"github.com/KirkDiggler/astrolabe/internal/services/messaging"
	"github.com/KirkDiggler/astrolabe/internal/services/publication"
	"github.com/KirkDiggler/astrolabe/internal/services/voting"
	votingMocks "github.com/KirkDiggler/astrolabe/internal/services/voting/mocks"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BotTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockCatalog *catalogMocks.MockService
	mockVoting  *votingMocks.MockService
	mockClock   *clockMocks.MockClock
	bot         *Bot
	ctx         context.Context

	testTime time.Time
	request  *commandRequest
}

func (s *BotTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCatalog = catalogMocks.NewMockService(s.mockCtrl)
	s.mockVoting = votingMocks.NewMockService(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()
	s.testTime = time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	messages, err := messaging.NewService(&messaging.ServiceConfig{Seed: 5})
	s.Require().NoError(err)

	s.bot = &Bot{
		config: &Config{
			Location:     time.UTC,
			VotingWindow: 10 * time.Minute,
			Clock:        s.mockClock,
		},
		logger:         slog.Default(),
		catalogService: s.mockCatalog,
		votingService:  s.mockVoting,
		messages:       messages,
	}
	s.bot.botUserID.Store("bot-user")

	s.request = &commandRequest{
		GuildID:   "guild-1",
		ChannelID: "chan-1",
		UserID:    "user-1",
		UserName:  "alice",
		Options:   map[string]string{},
	}
}

func (s *BotTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *BotTestSuite) reaction(userID, emoji string) *discordgo.MessageReaction {
	return &discordgo.MessageReaction{
		UserID:    userID,
		MessageID: "msg-1",
		ChannelID: "chan-1",
		GuildID:   "guild-1",
		Emoji:     discordgo.Emoji{Name: emoji},
	}
}

func (s *BotTestSuite) TestReactionAddCastsSignal() {
	s.mockVoting.EXPECT().
		CastSignal(s.ctx, &voting.CastSignalInput{
			MessageID: "msg-1",
			VoterID:   "user-2",
			Signal:    models.SignalReject,
		}).
		Return(&voting.CastSignalOutput{Applied: true}, nil)

	s.NoError(s.bot.routeReaction(s.ctx, s.reaction("user-2", "👎"), true))
}

func (s *BotTestSuite) TestReactionRemoveWithdrawsSignal() {
	s.mockVoting.EXPECT().
		WithdrawSignal(s.ctx, &voting.WithdrawSignalInput{
			MessageID: "msg-1",
			VoterID:   "user-2",
			Signal:    models.SignalApprove,
		}).
		Return(&voting.WithdrawSignalOutput{Applied: true}, nil)

	s.NoError(s.bot.routeReaction(s.ctx, s.reaction("user-2", "👍"), false))
}

func (s *BotTestSuite) TestReactionIgnoresBotAndOtherEmoji() {
	// no voting calls expected
	s.NoError(s.bot.routeReaction(s.ctx, s.reaction("bot-user", "👍"), true))
	s.NoError(s.bot.routeReaction(s.ctx, s.reaction("user-2", "🎉"), true))
	s.NoError(s.bot.routeReaction(s.ctx, nil, true))
}

func (s *BotTestSuite) TestAddReportsInvalidDate() {
	s.request.Options[OptionTitle] = "Game Night"
	s.request.Options[OptionDate] = "tomorrow"

	s.mockCatalog.EXPECT().
		AddEvent(s.ctx, gomock.Any()).
		Return(nil, fmt.Errorf("%w: %q", timeparse.ErrInvalidDateTime, "tomorrow"))

	reply := s.bot.runAdd(s.ctx, s.request)

	s.True(reply.Ephemeral)
	s.Contains(reply.Chunks[0], "MM/DD/YYYY")
}

func (s *BotTestSuite) TestAddSuccess() {
	s.request.Options[OptionTitle] = "Game Night"
	s.request.Options[OptionDate] = "08/10/2024"
	s.request.Options[OptionLocation] = "Discord"
	s.request.Options[OptionDescription] = "Board games"

	s.mockCatalog.EXPECT().
		AddEvent(s.ctx, &catalog.AddEventInput{
			GuildID:     "guild-1",
			Title:       "Game Night",
			Date:        "08/10/2024",
			Location:    "Discord",
			Description: "Board games",
		}).
		Return(&catalog.AddEventOutput{Event: &models.Event{Title: "Game Night"}}, nil)

	reply := s.bot.runAdd(s.ctx, s.request)

	s.False(reply.Ephemeral)
	s.Equal([]string{"Event **Game Night** added to the backlog."}, reply.Chunks)
}

func (s *BotTestSuite) TestRemoveNotFound() {
	s.request.Options[OptionTitle] = "Karaoke"
	s.mockCatalog.EXPECT().
		RemoveEvent(s.ctx, gomock.Any()).
		Return(&catalog.RemoveEventOutput{Removed: false}, nil)

	reply := s.bot.runRemove(s.ctx, s.request)

	s.True(reply.Ephemeral)
	s.Contains(reply.Chunks[0], "Karaoke")
}

func (s *BotTestSuite) TestBacklogChunksLongLists() {
	var events []*models.Event
	for i := 0; i < 80; i++ {
		events = append(events, &models.Event{
			Title:       fmt.Sprintf("Event %d", i),
			Date:        "08/10/2024",
			Location:    "Somewhere",
			Description: strings.Repeat("d", 30),
		})
	}
	s.mockCatalog.EXPECT().
		ListEvents(s.ctx, &catalog.ListEventsInput{GuildID: "guild-1"}).
		Return(&catalog.ListEventsOutput{Events: events}, nil)

	reply := s.bot.runBacklog(s.ctx, s.request)

	s.Greater(len(reply.Chunks), 1)
	s.Contains(reply.Chunks[0], "Event 0")
	s.Contains(reply.Chunks[len(reply.Chunks)-1], "Event 79")
}

func (s *BotTestSuite) TestEventProposes() {
	s.request.Options[OptionTitle] = "movie night"
	s.request.Options[OptionDate] = "08/10/2024"
	s.request.Options[OptionTime] = "7:30 PM"

	scheduledAt := time.Date(2024, 8, 10, 19, 30, 0, 0, time.UTC)
	s.mockVoting.EXPECT().
		Propose(s.ctx, &voting.ProposeInput{
			GuildID:        "guild-1",
			ChannelID:      "chan-1",
			Title:          "movie night",
			ScheduledAt:    scheduledAt,
			ProposedBy:     "user-1",
			ProposedByName: "alice",
			VotingWindow:   10 * time.Minute,
		}).
		Return(&voting.ProposeOutput{Session: &models.VotingSession{
			Title:    "Movie Night",
			Deadline: s.testTime.Add(10 * time.Minute),
		}}, nil)

	reply := s.bot.runEvent(s.ctx, s.request)

	s.True(reply.Ephemeral)
	s.Contains(reply.Chunks[0], "Voting on **Movie Night** is open until 08/01/2024 at 12:10 PM")
}

func (s *BotTestSuite) TestEventRejectsPastStart() {
	s.request.Options[OptionTitle] = "Movie Night"
	s.request.Options[OptionDate] = "07/01/2024"
	s.request.Options[OptionTime] = "7:30 PM"

	reply := s.bot.runEvent(s.ctx, s.request)

	s.Contains(reply.Chunks[0], "future")
}

func (s *BotTestSuite) TestEventConflict() {
	s.request.Options[OptionTitle] = "Movie Night"
	s.request.Options[OptionDate] = "08/10/2024"
	s.request.Options[OptionTime] = "7:30 PM"
	s.mockVoting.EXPECT().Propose(s.ctx, gomock.Any()).Return(nil, voting.ErrAlreadyProposed)

	reply := s.bot.runEvent(s.ctx, s.request)

	s.Contains(reply.Chunks[0], "already an open vote")
}

func (s *BotTestSuite) TestEventStartingBeforeVotingCloses() {
	s.request.Options[OptionTitle] = "Movie Night"
	s.request.Options[OptionDate] = "08/01/2024"
	s.request.Options[OptionTime] = "3:00 PM"
	s.mockVoting.EXPECT().Propose(s.ctx, gomock.Any()).
		Return(nil, fmt.Errorf("%w: %w", voting.ErrInvalidInput, voting.ErrStartsBeforeDeadline))

	reply := s.bot.runEvent(s.ctx, s.request)

	s.True(reply.Ephemeral)
	s.Contains(reply.Chunks[0], "before voting closes")
}

func (s *BotTestSuite) TestRepublish() {
	s.request.Options[OptionTitle] = "Movie Night"
	s.mockVoting.EXPECT().
		RetryPublication(s.ctx, &voting.RetryPublicationInput{
			GuildID:   "guild-1",
			Title:     "Movie Night",
			ChannelID: "chan-1",
		}).
		Return(&voting.RetryPublicationOutput{
			Session:     &models.VotingSession{Title: "Movie Night"},
			ExternalRef: "https://discord.com/events/guild-1/evt-1",
		}, nil)

	reply := s.bot.runRepublish(s.ctx, s.request)

	s.Contains(reply.Chunks[0], "now scheduled: https://discord.com/events/guild-1/evt-1")
}

func (s *BotTestSuite) TestRepublishStillFailing() {
	s.request.Options[OptionTitle] = "Movie Night"
	s.mockVoting.EXPECT().
		RetryPublication(s.ctx, gomock.Any()).
		Return(nil, fmt.Errorf("%w: missing access", publication.ErrPlatformUnavailable))

	reply := s.bot.runRepublish(s.ctx, s.request)

	s.Contains(reply.Chunks[0], "missing access")
}

func (s *BotTestSuite) TestErrorTypeMapping() {
	s.Equal(messaging.ErrorTypeEventNotFound, errorType(voting.ErrTitleNotFound))
	s.Equal(messaging.ErrorTypeDuplicateEvent, errorType(catalog.ErrDuplicateEvent))
	s.Equal(messaging.ErrorTypeStoreUnavailable, errorType(fmt.Errorf("%w: boom", voting.ErrStoreUnavailable)))
	s.Equal(messaging.ErrorTypeNothingToRetry, errorType(voting.ErrNotApproved))
	s.Equal(messaging.ErrorTypeStartsTooSoon, errorType(fmt.Errorf("%w: %w", voting.ErrInvalidInput, voting.ErrStartsBeforeDeadline)))
	s.Equal(messaging.ErrorTypeUnknown, errorType(fmt.Errorf("boom")))
}

func (s *BotTestSuite) TestTruncateCountsRunes() {
	s.Equal("ab", truncate("abc", 2))
	s.Equal("👍👍", truncate("👍👍👍", 2))
	s.Equal("short", truncate("short", 100))
}

func TestBotSuite(t *testing.T) {
	suite.Run(t, new(BotTestSuite))
}
