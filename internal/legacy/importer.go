// Package legacy imports catalogs saved by the old single-guild bot, which
// kept its backlog as a JSON array of {title, date, location, description}.
package legacy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/astrolabe/internal/common/clock"
	"github.com/KirkDiggler/astrolabe/internal/models"
	catalogRepo "github.com/KirkDiggler/astrolabe/internal/repositories/catalog"
)

// Record is one entry of the legacy file
type Record struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Config holds configuration for the importer
type Config struct {
	Repository catalogRepo.Repository
	Clock      clock.Clock
	Logger     *slog.Logger
}

// ImportInput contains parameters for an import
type ImportInput struct {
	// GuildID receives every record
	GuildID string

	Source io.Reader
}

// ImportOutput reports what an import did
type ImportOutput struct {
	Imported int

	// Skipped counts titles the guild already had and blank records
	Skipped int
}

// Importer loads legacy records into the catalog
type Importer struct {
	repo   catalogRepo.Repository
	clock  clock.Clock
	logger *slog.Logger
}

// NewImporter creates a new importer
func NewImporter(cfg *Config) (*Importer, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Repository == nil {
		return nil, errors.New("repository cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Importer{
		repo:   cfg.Repository,
		clock:  cfg.Clock,
		logger: logger.With("component", "legacy"),
	}, nil
}

// Decode reads a legacy file. The old bot seeded a fresh file with an
// empty object, which decodes to no records.
func Decode(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read legacy file: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("{}")) {
		return nil, nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode legacy file: %w", err)
	}
	return records, nil
}

// Import inserts every record in file order. Titles already in the guild's
// catalog are skipped; any other store error stops the import.
func (i *Importer) Import(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	if input == nil || input.Source == nil {
		return nil, errors.New("input and source cannot be nil")
	}
	if input.GuildID == "" {
		return nil, errors.New("guild ID cannot be empty")
	}

	records, err := Decode(input.Source)
	if err != nil {
		return nil, err
	}

	output := &ImportOutput{}
	for n, record := range records {
		title := strings.TrimSpace(record.Title)
		if title == "" {
			i.logger.Warn("skipping record without a title", "index", n)
			output.Skipped++
			continue
		}

		err := i.repo.Insert(ctx, &catalogRepo.InsertInput{
			Event: &models.Event{
				GuildID:     input.GuildID,
				Title:       title,
				Date:        strings.TrimSpace(record.Date),
				Location:    strings.TrimSpace(record.Location),
				Description: strings.TrimSpace(record.Description),
				CreatedAt:   i.clock.Now(),
			},
		})
		if errors.Is(err, catalogRepo.ErrDuplicateKey) {
			i.logger.Info("skipping existing event", "guild_id", input.GuildID, "title", title)
			output.Skipped++
			continue
		}
		if err != nil {
			return output, fmt.Errorf("import %q: %w", title, err)
		}

		output.Imported++
	}

	return output, nil
}
