package catalog

import (
	"errors"
	"strings"

	"github.com/KirkDiggler/astrolabe/internal/models"
)

// ErrDuplicateKey is returned when the guild already has an event with the same title
var ErrDuplicateKey = errors.New("event with this title already exists")

// ErrNilConfig is returned when a constructor receives no config
var ErrNilConfig = errors.New("config cannot be nil")

func validateEvent(event *models.Event) error {
	if event == nil {
		return errors.New("input and event cannot be nil")
	}
	if event.GuildID == "" {
		return errors.New("guild ID cannot be empty")
	}
	if strings.TrimSpace(event.Title) == "" {
		return errors.New("title cannot be empty")
	}
	return nil
}

func validateLookup(guildID, title string) error {
	if guildID == "" {
		return errors.New("guild ID cannot be empty")
	}
	if strings.TrimSpace(title) == "" {
		return errors.New("title cannot be empty")
	}
	return nil
}
