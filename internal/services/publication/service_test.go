package publication

import (
	"context"
	"errors"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/astrolabe/internal/common/clock/mocks"
	"github.com/KirkDiggler/astrolabe/internal/models"
	"github.com/KirkDiggler/astrolabe/internal/services/messaging"
	"github.com/KirkDiggler/astrolabe/internal/surface"
	surfaceMocks "github.com/KirkDiggler/astrolabe/internal/surface/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PublicationServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockScheduler *surfaceMocks.MockScheduler
	mockMessenger *surfaceMocks.MockMessenger
	mockClock     *clockMocks.MockClock
	service       Service
	ctx           context.Context

	testTime  time.Time
	testStart time.Time
	testEvent *models.Event
}

func (s *PublicationServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockScheduler = surfaceMocks.NewMockScheduler(s.mockCtrl)
	s.mockMessenger = surfaceMocks.NewMockMessenger(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	s.testStart = time.Date(2024, 8, 10, 19, 30, 0, 0, time.UTC)
	s.testEvent = &models.Event{
		GuildID:     "1234",
		Title:       "Movie Night",
		Date:        "08/10/2024",
		Location:    "Theater",
		Description: "Popcorn provided",
	}

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	messages, err := messaging.NewService(&messaging.ServiceConfig{Seed: 1})
	s.Require().NoError(err)

	s.service, err = NewService(&Config{
		Scheduler: s.mockScheduler,
		Messenger: s.mockMessenger,
		Messages:  messages,
		Clock:     s.mockClock,
	})
	s.Require().NoError(err)
}

func (s *PublicationServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *PublicationServiceTestSuite) TestNewServiceValidation() {
	_, err := NewService(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = NewService(&Config{})
	s.ErrorIs(err, ErrNilScheduler)
}

func (s *PublicationServiceTestSuite) TestPublishCreatesThreeHourEntry() {
	s.mockScheduler.EXPECT().
		CreateScheduledEntry(s.ctx, &surface.CreateScheduledEntryInput{
			GuildID:     "1234",
			Name:        "Movie Night",
			Description: "Popcorn provided",
			Location:    "Theater",
			Start:       s.testStart,
			End:         s.testStart.Add(3 * time.Hour),
			Visibility:  surface.VisibilityGuildOnly,
		}).
		Return(&surface.CreateScheduledEntryOutput{ID: "evt-1", URL: "https://discord.com/events/1234/evt-1"}, nil)

	s.mockMessenger.EXPECT().
		SendMessage(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *surface.SendMessageInput) (*surface.SendMessageOutput, error) {
			s.Equal("chan-1", input.ChannelID)
			s.Contains(input.Content, "Join us in Theater")
			s.Contains(input.Content, "https://discord.com/events/1234/evt-1")
			return &surface.SendMessageOutput{MessageIDs: []string{"m1"}}, nil
		})

	output, err := s.service.Publish(s.ctx, &PublishInput{
		GuildID:     "1234",
		ChannelID:   "chan-1",
		Event:       s.testEvent,
		ScheduledAt: s.testStart,
	})

	s.Require().NoError(err)
	s.Equal("evt-1", output.EntryID)
	s.Equal("https://discord.com/events/1234/evt-1", output.ExternalRef)
}

func (s *PublicationServiceTestSuite) TestPublishFallsBackToEntryID() {
	s.mockScheduler.EXPECT().
		CreateScheduledEntry(s.ctx, gomock.Any()).
		Return(&surface.CreateScheduledEntryOutput{ID: "evt-2"}, nil)
	s.mockMessenger.EXPECT().SendMessage(s.ctx, gomock.Any()).Return(&surface.SendMessageOutput{}, nil)

	output, err := s.service.Publish(s.ctx, &PublishInput{
		GuildID:     "1234",
		ChannelID:   "chan-1",
		Event:       s.testEvent,
		ScheduledAt: s.testStart,
	})

	s.Require().NoError(err)
	s.Equal("evt-2", output.ExternalRef)
}

func (s *PublicationServiceTestSuite) TestPublishPlatformUnavailableStillAnnounces() {
	s.mockScheduler.EXPECT().
		CreateScheduledEntry(s.ctx, gomock.Any()).
		Return(nil, errors.New("missing access"))

	s.mockMessenger.EXPECT().
		SendMessage(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *surface.SendMessageInput) (*surface.SendMessageOutput, error) {
			s.Contains(input.Content, "Movie Night")
			s.Contains(input.Content, "missing access")
			s.Contains(input.Content, "/republish Movie Night")
			return &surface.SendMessageOutput{MessageIDs: []string{"m1"}}, nil
		})

	output, err := s.service.Publish(s.ctx, &PublishInput{
		GuildID:     "1234",
		ChannelID:   "chan-1",
		Event:       s.testEvent,
		ScheduledAt: s.testStart,
		Retryable:   true,
	})

	s.Nil(output)
	s.ErrorIs(err, ErrPlatformUnavailable)
	s.Contains(err.Error(), "missing access")
}

func (s *PublicationServiceTestSuite) TestPublishAnnouncementFailureKeepsEntry() {
	s.mockScheduler.EXPECT().
		CreateScheduledEntry(s.ctx, gomock.Any()).
		Return(&surface.CreateScheduledEntryOutput{ID: "evt-3"}, nil)
	s.mockMessenger.EXPECT().
		SendMessage(s.ctx, gomock.Any()).
		Return(nil, errors.New("gateway down"))

	output, err := s.service.Publish(s.ctx, &PublishInput{
		GuildID:     "1234",
		ChannelID:   "chan-1",
		Event:       s.testEvent,
		ScheduledAt: s.testStart,
	})

	s.Require().NoError(err)
	s.Equal("evt-3", output.EntryID)
}

func (s *PublicationServiceTestSuite) TestPublishRejectsPastStart() {
	s.mockMessenger.EXPECT().SendMessage(s.ctx, gomock.Any()).Return(&surface.SendMessageOutput{}, nil)

	_, err := s.service.Publish(s.ctx, &PublishInput{
		GuildID:     "1234",
		ChannelID:   "chan-1",
		Event:       s.testEvent,
		ScheduledAt: s.testTime.Add(-time.Minute),
	})

	s.ErrorIs(err, ErrInvalidWindow)
}

func (s *PublicationServiceTestSuite) TestPublishRejectsZeroStart() {
	_, err := s.service.Publish(s.ctx, &PublishInput{
		GuildID: "1234",
		Event:   s.testEvent,
	})

	s.ErrorIs(err, ErrInvalidWindow)
}

func (s *PublicationServiceTestSuite) TestPublishRejectsMissingEvent() {
	_, err := s.service.Publish(s.ctx, &PublishInput{GuildID: "1234", ScheduledAt: s.testStart})

	s.ErrorIs(err, ErrInvalidInput)
}

func TestPublicationServiceSuite(t *testing.T) {
	suite.Run(t, new(PublicationServiceTestSuite))
}
