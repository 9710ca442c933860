package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KirkDiggler/astrolabe/internal/common/clock"
	"github.com/KirkDiggler/astrolabe/internal/common/timeparse"
	"github.com/KirkDiggler/astrolabe/internal/models"
	catalogRepo "github.com/KirkDiggler/astrolabe/internal/repositories/catalog"
)

// storedDateLayout is how a date with a time is written to the catalog
const storedDateLayout = "01/02/2006 03:04 PM"

type service struct {
	repo     catalogRepo.Repository
	clock    clock.Clock
	location *time.Location
	logger   *slog.Logger
}

// NewService creates a new catalog service
func NewService(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Repository == nil {
		return nil, ErrNilRepository
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	location := cfg.Location
	if location == nil {
		location = time.UTC
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		repo:     cfg.Repository,
		clock:    cfg.Clock,
		location: location,
		logger:   logger.With("component", "catalog"),
	}, nil
}

// AddEvent validates and stores a new backlog event
func (s *service) AddEvent(ctx context.Context, input *AddEventInput) (*AddEventOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, ErrInvalidInput
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	date := strings.TrimSpace(input.Date)
	if strings.TrimSpace(input.Time) != "" {
		at, err := timeparse.Parse(date, input.Time, s.location)
		if err != nil {
			return nil, err
		}
		date = at.Format(storedDateLayout)
	} else if err := timeparse.ValidateDate(date); err != nil {
		return nil, err
	}

	event := &models.Event{
		GuildID:     input.GuildID,
		Title:       title,
		Date:        date,
		Location:    strings.TrimSpace(input.Location),
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, &catalogRepo.InsertInput{Event: event}); err != nil {
		if errors.Is(err, catalogRepo.ErrDuplicateKey) {
			return nil, ErrDuplicateEvent
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("event added", "guild_id", event.GuildID, "title", event.Title)

	return &AddEventOutput{
		Event: event,
	}, nil
}

// RemoveEvent deletes a backlog event by title
func (s *service) RemoveEvent(ctx context.Context, input *RemoveEventInput) (*RemoveEventOutput, error) {
	if input == nil || input.GuildID == "" || strings.TrimSpace(input.Title) == "" {
		return nil, ErrInvalidInput
	}

	output, err := s.repo.Delete(ctx, &catalogRepo.DeleteInput{
		GuildID: input.GuildID,
		Title:   input.Title,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if output.Removed {
		s.logger.Info("event removed", "guild_id", input.GuildID, "title", input.Title)
	}

	return &RemoveEventOutput{
		Removed: output.Removed,
	}, nil
}

// ListEvents returns the backlog in insertion order
func (s *service) ListEvents(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, ErrInvalidInput
	}

	output, err := s.repo.List(ctx, &catalogRepo.ListInput{GuildID: input.GuildID})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &ListEventsOutput{
		Events: output.Events,
	}, nil
}

// SearchEvents returns backlog events containing the query, case-insensitively
func (s *service) SearchEvents(ctx context.Context, input *SearchEventsInput) (*SearchEventsOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, ErrInvalidInput
	}
	query := strings.ToLower(strings.TrimSpace(input.Query))
	if query == "" {
		return nil, fmt.Errorf("%w: search keyword is required", ErrInvalidInput)
	}

	listed, err := s.ListEvents(ctx, &ListEventsInput{GuildID: input.GuildID})
	if err != nil {
		return nil, err
	}

	var matches []*models.Event
	for _, event := range listed.Events {
		if strings.Contains(strings.ToLower(event.Title), query) ||
			strings.Contains(strings.ToLower(event.Location), query) ||
			strings.Contains(strings.ToLower(event.Description), query) {
			matches = append(matches, event)
		}
	}

	return &SearchEventsOutput{
		Events: matches,
	}, nil
}

// GetEvent looks up one event by title
func (s *service) GetEvent(ctx context.Context, input *GetEventInput) (*GetEventOutput, error) {
	if input == nil || input.GuildID == "" || strings.TrimSpace(input.Title) == "" {
		return nil, ErrInvalidInput
	}

	output, err := s.repo.Find(ctx, &catalogRepo.FindInput{
		GuildID: input.GuildID,
		Title:   input.Title,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if output.Event == nil {
		return nil, ErrEventNotFound
	}

	return &GetEventOutput{
		Event: output.Event,
	}, nil
}
