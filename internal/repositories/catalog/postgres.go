package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/KirkDiggler/astrolabe/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the events table. The primary key enforces per-guild title
// uniqueness; position keeps insertion order for display.
const Schema = `
CREATE TABLE IF NOT EXISTS events (
	position         BIGSERIAL,
	guild_id         BIGINT      NOT NULL,
	title            TEXT        NOT NULL,
	title_normalized TEXT        NOT NULL,
	date             TEXT        NOT NULL DEFAULT '',
	location         TEXT        NOT NULL DEFAULT '',
	description      TEXT        NOT NULL DEFAULT '',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (guild_id, title_normalized)
);`

// PostgresConfig holds configuration for the PostgreSQL catalog repository
type PostgresConfig struct {
	Pool *pgxpool.Pool
}

// postgresRepository implements the Repository interface using PostgreSQL
type postgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgres creates a PostgreSQL-backed catalog repository
func NewPostgres(cfg *PostgresConfig) (*postgresRepository, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Pool == nil {
		return nil, errors.New("pool cannot be nil")
	}

	return &postgresRepository{
		db: cfg.Pool,
	}, nil
}

// EnsureSchema creates the events table if it does not exist yet
func (r *postgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("create events table: %w", err)
	}
	return nil
}

func parseGuildID(guildID string) (int64, error) {
	id, err := strconv.ParseInt(guildID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid guild ID %q: %w", guildID, err)
	}
	return id, nil
}

// Insert adds the event; the primary key turns a concurrent duplicate into a no-op
func (r *postgresRepository) Insert(ctx context.Context, input *InsertInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validateEvent(input.Event); err != nil {
		return err
	}

	guildID, err := parseGuildID(input.Event.GuildID)
	if err != nil {
		return err
	}

	createdAt := input.Event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tag, err := r.db.Exec(ctx,
		`INSERT INTO events (guild_id, title, title_normalized, date, location, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (guild_id, title_normalized) DO NOTHING`,
		guildID, input.Event.Title, input.Event.Key(), input.Event.Date,
		input.Event.Location, input.Event.Description, createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrDuplicateKey
	}

	return nil
}

// Delete removes the event matching the title in any case
func (r *postgresRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if err := validateLookup(input.GuildID, input.Title); err != nil {
		return nil, err
	}

	guildID, err := parseGuildID(input.GuildID)
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Exec(ctx,
		`DELETE FROM events WHERE guild_id = $1 AND title_normalized = $2`,
		guildID, models.NormalizeTitle(input.Title),
	)
	if err != nil {
		return nil, fmt.Errorf("delete event: %w", err)
	}

	return &DeleteOutput{
		Removed: tag.RowsAffected() > 0,
	}, nil
}

// List returns the guild's events in insertion order
func (r *postgresRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	guildID, err := parseGuildID(input.GuildID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT title, date, location, description, created_at
		 FROM events
		 WHERE guild_id = $1
		 ORDER BY position`,
		guildID,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		event := &models.Event{GuildID: input.GuildID}
		if err := rows.Scan(&event.Title, &event.Date, &event.Location, &event.Description, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return &ListOutput{
		Events: events,
	}, nil
}

// Find returns the event matching the title in any case, or a nil event
func (r *postgresRepository) Find(ctx context.Context, input *FindInput) (*FindOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if err := validateLookup(input.GuildID, input.Title); err != nil {
		return nil, err
	}

	guildID, err := parseGuildID(input.GuildID)
	if err != nil {
		return nil, err
	}

	event := &models.Event{GuildID: input.GuildID}
	err = r.db.QueryRow(ctx,
		`SELECT title, date, location, description, created_at
		 FROM events WHERE guild_id = $1 AND title_normalized = $2`,
		guildID, models.NormalizeTitle(input.Title),
	).Scan(&event.Title, &event.Date, &event.Location, &event.Description, &event.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &FindOutput{}, nil
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	return &FindOutput{
		Event: event,
	}, nil
}
