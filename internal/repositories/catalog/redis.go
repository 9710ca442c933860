package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/astrolabe/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis, suffixed with the guild ID
	eventsKeyPrefix = "catalog:events:" // hash of normalized title -> event JSON
	orderKeyPrefix  = "catalog:order:"  // sorted set of normalized titles by insertion sequence
	seqKeyPrefix    = "catalog:seq:"    // insertion counter
)

// insertScript performs the existence check and the write in one step.
// KEYS: events hash, order zset, sequence. ARGV: normalized title, event JSON.
var insertScript = redis.NewScript(`
if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 1 then
	return 0
end
local seq = redis.call('INCR', KEYS[3])
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
redis.call('ZADD', KEYS[2], seq, ARGV[1])
return 1
`)

// deleteScript removes the event and its ordering entry together.
// KEYS: events hash, order zset. ARGV: normalized title.
var deleteScript = redis.NewScript(`
local removed = redis.call('HDEL', KEYS[1], ARGV[1])
redis.call('ZREM', KEYS[2], ARGV[1])
return removed
`)

// Config holds configuration for the Redis catalog repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed catalog repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, ErrNilConfig
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

func eventsKey(guildID string) string { return eventsKeyPrefix + guildID }
func orderKey(guildID string) string  { return orderKeyPrefix + guildID }
func seqKey(guildID string) string    { return seqKeyPrefix + guildID }

// Insert stores the event unless its normalized title is already present
func (r *redisRepository) Insert(ctx context.Context, input *InsertInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validateEvent(input.Event); err != nil {
		return err
	}

	event := *input.Event
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	eventJSON, err := json.Marshal(&event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	keys := []string{eventsKey(event.GuildID), orderKey(event.GuildID), seqKey(event.GuildID)}
	inserted, err := insertScript.Run(ctx, r.client, keys, event.Key(), eventJSON).Int()
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	if inserted == 0 {
		return ErrDuplicateKey
	}

	return nil
}

// Delete removes the event matching the title in any case
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if err := validateLookup(input.GuildID, input.Title); err != nil {
		return nil, err
	}

	keys := []string{eventsKey(input.GuildID), orderKey(input.GuildID)}
	removed, err := deleteScript.Run(ctx, r.client, keys, models.NormalizeTitle(input.Title)).Int()
	if err != nil {
		return nil, fmt.Errorf("failed to delete event: %w", err)
	}

	return &DeleteOutput{
		Removed: removed > 0,
	}, nil
}

// List returns every event of the guild ordered by insertion
func (r *redisRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	titles, err := r.client.ZRange(ctx, orderKey(input.GuildID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get event order: %w", err)
	}

	if len(titles) == 0 {
		return &ListOutput{
			Events: []*models.Event{},
		}, nil
	}

	values, err := r.client.HMGet(ctx, eventsKey(input.GuildID), titles...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	events := make([]*models.Event, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// Removed between the two reads
			continue
		}

		var event models.Event
		if err := json.Unmarshal([]byte(raw), &event); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event %s: %w", titles[i], err)
		}
		events = append(events, &event)
	}

	return &ListOutput{
		Events: events,
	}, nil
}

// Find returns the event matching the title in any case, or a nil event
func (r *redisRepository) Find(ctx context.Context, input *FindInput) (*FindOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if err := validateLookup(input.GuildID, input.Title); err != nil {
		return nil, err
	}

	raw, err := r.client.HGet(ctx, eventsKey(input.GuildID), models.NormalizeTitle(input.Title)).Result()
	if err != nil {
		if err == redis.Nil {
			return &FindOutput{}, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	var event models.Event
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return &FindOutput{
		Event: &event,
	}, nil
}
