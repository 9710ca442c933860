package messaging

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/KirkDiggler/astrolabe/internal/models"
	"github.com/KirkDiggler/astrolabe/internal/surface"
	"github.com/stretchr/testify/suite"
)

type MessagingServiceTestSuite struct {
	suite.Suite
	service Service
	ctx     context.Context

	testTime time.Time
}

func (s *MessagingServiceTestSuite) SetupTest() {
	var err error
	s.service, err = NewService(&ServiceConfig{Seed: 42})
	s.Require().NoError(err)

	s.ctx = context.Background()
	s.testTime = time.Date(2024, 8, 10, 19, 30, 0, 0, time.UTC)
}

func (s *MessagingServiceTestSuite) TestNewServiceNilConfig() {
	svc, err := NewService(nil)

	s.Error(err)
	s.Nil(svc)
}

func (s *MessagingServiceTestSuite) TestHelpListsEveryCommand() {
	output, err := s.service.GetHelpMessage(s.ctx, &GetHelpMessageInput{})

	s.Require().NoError(err)
	for _, command := range []string{"/help", "/backlog", "/add", "/remove", "/search", "/event", "/republish"} {
		s.Contains(output.Message, command)
	}
}

func (s *MessagingServiceTestSuite) TestBacklogEmpty() {
	output, err := s.service.GetBacklogMessage(s.ctx, &GetBacklogMessageInput{})

	s.Require().NoError(err)
	s.True(output.Empty)
	s.Len(output.Chunks, 1)
}

func (s *MessagingServiceTestSuite) TestBacklogRendersEventsInOrder() {
	output, err := s.service.GetBacklogMessage(s.ctx, &GetBacklogMessageInput{
		Events: []*models.Event{
			{Title: "Game Night", Date: "08/10/2024", Location: "Discord", Description: "Board games"},
			{Title: "Movie Night", Date: "08/17/2024", Location: "Theater"},
		},
	})

	s.Require().NoError(err)
	s.False(output.Empty)
	s.Require().Len(output.Chunks, 1)
	text := output.Chunks[0]
	s.Contains(text, "**Game Night** (08/10/2024)")
	s.Contains(text, "Location: Theater")
	s.Less(strings.Index(text, "Game Night"), strings.Index(text, "Movie Night"))
}

func (s *MessagingServiceTestSuite) TestBacklogSplitsLongListings() {
	var events []*models.Event
	for i := 0; i < 60; i++ {
		events = append(events, &models.Event{
			Title:       strings.Repeat("x", 20),
			Date:        "08/10/2024",
			Location:    "Somewhere",
			Description: strings.Repeat("d", 40),
		})
	}

	output, err := s.service.GetBacklogMessage(s.ctx, &GetBacklogMessageInput{Events: events})

	s.Require().NoError(err)
	s.Greater(len(output.Chunks), 1)
	for _, chunk := range output.Chunks {
		s.LessOrEqual(utf8.RuneCountInString(chunk), surface.MaxMessageLength)
	}
}

func (s *MessagingServiceTestSuite) TestSearchNoMatches() {
	output, err := s.service.GetSearchResultsMessage(s.ctx, &GetSearchResultsMessageInput{Query: "karaoke"})

	s.Require().NoError(err)
	s.True(output.Empty)
	s.Contains(output.Chunks[0], "karaoke")
}

func (s *MessagingServiceTestSuite) TestSearchRendersMatches() {
	output, err := s.service.GetSearchResultsMessage(s.ctx, &GetSearchResultsMessageInput{
		Query:  "night",
		Events: []*models.Event{{Title: "Game Night", Date: "08/10/2024", Location: "Discord", Description: "Board games"}},
	})

	s.Require().NoError(err)
	s.False(output.Empty)
	s.Contains(output.Chunks[0], "Game Night\nDate: 08/10/2024\nLocation: Discord\nDescription: Board games")
}

func (s *MessagingServiceTestSuite) TestProposalMentionsTitleTimeAndReactions() {
	output, err := s.service.GetProposalMessage(s.ctx, &GetProposalMessageInput{
		ProposerName: "alice",
		Title:        "Game Night",
		ScheduledAt:  s.testTime,
		Deadline:     s.testTime.Add(-time.Hour),
	})

	s.Require().NoError(err)
	s.Contains(output.Message, "**Game Night**")
	s.Contains(output.Message, "alice")
	s.Contains(output.Message, "08/10/2024 at 07:30 PM")
	s.Contains(output.Message, "👍")
	s.Contains(output.Message, "👎")
	s.Contains(output.Message, "Voting closes")
}

func (s *MessagingServiceTestSuite) TestProposalRequiresTitle() {
	_, err := s.service.GetProposalMessage(s.ctx, &GetProposalMessageInput{ScheduledAt: s.testTime})

	s.Error(err)
}

func (s *MessagingServiceTestSuite) TestProposalWithdrawnNamesTitle() {
	output, err := s.service.GetProposalWithdrawnMessage(s.ctx, &GetProposalWithdrawnMessageInput{Title: "Game Night"})
	s.Require().NoError(err)
	s.Contains(output.Message, "**Game Night**")
	s.Contains(output.Message, "won't be counted")

	_, err = s.service.GetProposalWithdrawnMessage(s.ctx, &GetProposalWithdrawnMessageInput{})
	s.Error(err)
}

func (s *MessagingServiceTestSuite) TestOutcomeMessages() {
	for _, status := range []models.SessionStatus{
		models.SessionStatusApproved,
		models.SessionStatusRejected,
		models.SessionStatusExpired,
	} {
		output, err := s.service.GetOutcomeMessage(s.ctx, &GetOutcomeMessageInput{
			Title:        "Game Night",
			Status:       status,
			ApproveCount: 1,
			RejectCount:  2,
		})

		s.Require().NoError(err, string(status))
		s.Contains(output.Message, "Game Night")
		s.Contains(output.Message, "👍 1 / 👎 2")
	}
}

func (s *MessagingServiceTestSuite) TestOutcomeForOpenSessionFails() {
	_, err := s.service.GetOutcomeMessage(s.ctx, &GetOutcomeMessageInput{
		Title:  "Game Night",
		Status: models.SessionStatusOpen,
	})

	s.Error(err)
}

func (s *MessagingServiceTestSuite) TestPublishedMessageIncludesURL() {
	output, err := s.service.GetPublishedMessage(s.ctx, &GetPublishedMessageInput{
		Title:       "Game Night",
		ScheduledAt: s.testTime,
		Location:    "Discord",
		URL:         "https://discord.com/events/1/2",
	})

	s.Require().NoError(err)
	s.Contains(output.Message, "Event created: **Game Night** on 08/10/2024 at 07:30 PM")
	s.Contains(output.Message, "Join us in Discord.")
	s.Contains(output.Message, "https://discord.com/events/1/2")
}

func (s *MessagingServiceTestSuite) TestPublishFailedMessageCarriesDetail() {
	output, err := s.service.GetPublishFailedMessage(s.ctx, &GetPublishFailedMessageInput{
		Title:       "Game Night",
		ScheduledAt: s.testTime,
		Error:       "missing permissions",
		Retryable:   true,
	})

	s.Require().NoError(err)
	s.Contains(output.Message, "passed")
	s.Contains(output.Message, "missing permissions")
	s.Contains(output.Message, "/republish Game Night")
}

func (s *MessagingServiceTestSuite) TestErrorMessages() {
	output, err := s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{
		ErrorType: ErrorTypeAlreadyProposed,
		Subject:   "Game Night",
	})
	s.Require().NoError(err)
	s.Contains(output.Message, "Game Night")

	output, err = s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{
		ErrorType: ErrorTypeStartsTooSoon,
		Subject:   "Game Night",
	})
	s.Require().NoError(err)
	s.Contains(output.Message, "before voting closes")

	output, err = s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{ErrorType: ErrorTypeUnknown})
	s.Require().NoError(err)
	s.NotEmpty(output.Message)
}

func (s *MessagingServiceTestSuite) TestSplitMessage() {
	s.Nil(SplitMessage("", 10))
	s.Equal([]string{"short"}, SplitMessage("short", 10))

	// prefers a newline in the back half of the window
	s.Equal([]string{"aaaaaa\n", "bbbb"}, SplitMessage("aaaaaa\nbbbb", 8))

	// hard split when no newline is available
	s.Equal([]string{"abcd", "efgh", "ij"}, SplitMessage("abcdefghij", 4))

	// counts runes, not bytes
	chunks := SplitMessage(strings.Repeat("👍", 5), 2)
	s.Equal([]string{"👍👍", "👍👍", "👍"}, chunks)

	long := strings.Repeat("line of text\n", 500)
	chunks = SplitMessage(long, surface.MaxMessageLength)
	s.Equal(long, strings.Join(chunks, ""))
	for _, chunk := range chunks {
		s.LessOrEqual(utf8.RuneCountInString(chunk), surface.MaxMessageLength)
	}
}

func TestMessagingServiceSuite(t *testing.T) {
	suite.Run(t, new(MessagingServiceTestSuite))
}
