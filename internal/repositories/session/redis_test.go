package session

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/astrolabe/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newSession(id string, status models.SessionStatus, proposedAt time.Time) *models.VotingSession {
	return &models.VotingSession{
		ID:          id,
		GuildID:     "guild-1",
		ChannelID:   "channel-1",
		MessageID:   "message-" + id,
		Title:       "Movie Night",
		Event:       models.Event{GuildID: "guild-1", Title: "Movie Night", Location: "Hall"},
		ProposedBy:  "user-1",
		ScheduledAt: s.testNow.Add(48 * time.Hour),
		ProposedAt:  proposedAt,
		Deadline:    proposedAt.Add(time.Minute),
		Status:      status,
	}
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetSession() {
	session := s.newSession("session-1", models.SessionStatusOpen, s.testNow)

	err := s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: session})
	s.Require().NoError(err)

	got, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)

	s.Equal("session-1", got.ID)
	s.Equal("guild-1", got.GuildID)
	s.Equal("message-session-1", got.MessageID)
	s.Equal("Hall", got.Event.Location)
	s.Equal(models.SessionStatusOpen, got.Status)
	s.True(session.ScheduledAt.Equal(got.ScheduledAt))
	s.True(session.Deadline.Equal(got.Deadline))
	s.Nil(got.ResolvedAt)
}

func (s *RedisRepositoryTestSuite) TestGetSessionNotFound() {
	_, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "missing"})
	s.ErrorIs(err, ErrSessionNotFound)

	_, err = s.repo.GetSessionByMessage(s.ctx, &GetSessionByMessageInput{MessageID: "missing"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestGetSessionByMessage() {
	s.Require().NoError(s.repo.SaveSession(s.ctx, &SaveSessionInput{
		Session: s.newSession("session-1", models.SessionStatusOpen, s.testNow),
	}))

	got, err := s.repo.GetSessionByMessage(s.ctx, &GetSessionByMessageInput{MessageID: "message-session-1"})
	s.Require().NoError(err)
	s.Equal("session-1", got.ID)
}

func (s *RedisRepositoryTestSuite) TestOpenSessionsTrackStatus() {
	open := s.newSession("session-open", models.SessionStatusOpen, s.testNow)
	resolved := s.newSession("session-resolved", models.SessionStatusOpen, s.testNow.Add(time.Minute))

	s.Require().NoError(s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: open}))
	s.Require().NoError(s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: resolved}))

	resolvedAt := s.testNow.Add(2 * time.Minute)
	resolved.Status = models.SessionStatusApproved
	resolved.ResolvedAt = &resolvedAt
	s.Require().NoError(s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: resolved}))

	out, err := s.repo.GetOpenSessions(s.ctx, &GetOpenSessionsInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Sessions, 1)
	s.Equal("session-open", out.Sessions[0].ID)
}

func (s *RedisRepositoryTestSuite) TestGetSessionsByGuild() {
	first := s.newSession("session-1", models.SessionStatusApproved, s.testNow)
	second := s.newSession("session-2", models.SessionStatusRejected, s.testNow.Add(time.Hour))
	third := s.newSession("session-3", models.SessionStatusApproved, s.testNow.Add(2*time.Hour))
	other := s.newSession("session-4", models.SessionStatusApproved, s.testNow)
	other.GuildID = "guild-2"

	for _, session := range []*models.VotingSession{first, second, third, other} {
		s.Require().NoError(s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: session}))
	}

	all, err := s.repo.GetSessionsByGuild(s.ctx, &GetSessionsByGuildInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Require().Len(all.Sessions, 3)
	s.Equal("session-3", all.Sessions[0].ID)
	s.Equal("session-2", all.Sessions[1].ID)
	s.Equal("session-1", all.Sessions[2].ID)

	approved, err := s.repo.GetSessionsByGuild(s.ctx, &GetSessionsByGuildInput{
		GuildID: "guild-1",
		Status:  models.SessionStatusApproved,
	})
	s.Require().NoError(err)
	s.Require().Len(approved.Sessions, 2)
	s.Equal("session-3", approved.Sessions[0].ID)
	s.Equal("session-1", approved.Sessions[1].ID)
}

func (s *RedisRepositoryTestSuite) TestSaveSessionValidation() {
	s.Error(s.repo.SaveSession(s.ctx, nil))
	s.Error(s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: &models.VotingSession{}}))
}
