package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/astrolabe/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix = "voting_session:"
	messageKeyPrefix = "voting_message:"
	guildKeyPrefix   = "guild_voting_sessions:"
	openSessionsKey  = "open_voting_sessions"
)

// ErrSessionNotFound is returned when a session is not found
var ErrSessionNotFound = errors.New("voting session not found")

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveSession persists a session to Redis
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	if input.Session.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	sessionJSON, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.client.TxPipeline()

	sessionKey := sessionKeyPrefix + input.Session.ID
	pipe.Set(ctx, sessionKey, sessionJSON, 0)

	if input.Session.MessageID != "" {
		pipe.Set(ctx, messageKeyPrefix+input.Session.MessageID, input.Session.ID, 0)
	}

	if input.Session.GuildID != "" {
		pipe.ZAdd(ctx, guildKeyPrefix+input.Session.GuildID, redis.Z{
			Score:  float64(input.Session.ProposedAt.UnixNano()),
			Member: input.Session.ID,
		})
	}

	if input.Session.Status.IsOpen() {
		pipe.SAdd(ctx, openSessionsKey, input.Session.ID)
	} else {
		pipe.SRem(ctx, openSessionsKey, input.Session.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by ID from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.VotingSession, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionJSON, err := r.client.Get(ctx, sessionKeyPrefix+input.SessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.VotingSession
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// GetSessionByMessage retrieves a session by its proposal message ID
func (r *redisRepository) GetSessionByMessage(ctx context.Context, input *GetSessionByMessageInput) (*models.VotingSession, error) {
	if input == nil || input.MessageID == "" {
		return nil, errors.New("input and message ID cannot be empty")
	}

	sessionID, err := r.client.Get(ctx, messageKeyPrefix+input.MessageID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session ID for message: %w", err)
	}

	return r.GetSession(ctx, &GetSessionInput{
		SessionID: sessionID,
	})
}

// GetOpenSessions retrieves all open sessions from Redis
func (r *redisRepository) GetOpenSessions(ctx context.Context, input *GetOpenSessionsInput) (*GetOpenSessionsOutput, error) {
	sessionIDs, err := r.client.SMembers(ctx, openSessionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get open session IDs: %w", err)
	}

	sessions, err := r.getSessions(ctx, sessionIDs)
	if err != nil {
		return nil, err
	}

	return &GetOpenSessionsOutput{
		Sessions: sessions,
	}, nil
}

// GetSessionsByGuild retrieves a guild's sessions, newest first
func (r *redisRepository) GetSessionsByGuild(ctx context.Context, input *GetSessionsByGuildInput) (*GetSessionsByGuildOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	sessionIDs, err := r.client.ZRevRange(ctx, guildKeyPrefix+input.GuildID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get guild session IDs: %w", err)
	}

	sessions, err := r.getSessions(ctx, sessionIDs)
	if err != nil {
		return nil, err
	}

	if input.Status != "" {
		filtered := make([]*models.VotingSession, 0, len(sessions))
		for _, session := range sessions {
			if session.Status == input.Status {
				filtered = append(filtered, session)
			}
		}
		sessions = filtered
	}

	return &GetSessionsByGuildOutput{
		Sessions: sessions,
	}, nil
}

// getSessions fetches sessions in the given order using a pipeline
func (r *redisRepository) getSessions(ctx context.Context, sessionIDs []string) ([]*models.VotingSession, error) {
	if len(sessionIDs) == 0 {
		return []*models.VotingSession{}, nil
	}

	pipe := r.client.Pipeline()
	commands := make([]*redis.StringCmd, len(sessionIDs))
	for i, sessionID := range sessionIDs {
		commands[i] = pipe.Get(ctx, sessionKeyPrefix+sessionID)
	}

	// redis.Nil from a single GET is reported per command below
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	sessions := make([]*models.VotingSession, 0, len(sessionIDs))
	for i, cmd := range commands {
		sessionJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get session %s: %w", sessionIDs[i], err)
		}

		var session models.VotingSession
		if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session %s: %w", sessionIDs[i], err)
		}
		sessions = append(sessions, &session)
	}

	return sessions, nil
}
