package catalog

import "github.com/KirkDiggler/astrolabe/internal/models"

type InsertInput struct {
	Event *models.Event
}

type DeleteInput struct {
	GuildID string
	Title   string
}

type DeleteOutput struct {
	Removed bool
}

type ListInput struct {
	GuildID string
}

type ListOutput struct {
	Events []*models.Event
}

type FindInput struct {
	GuildID string
	Title   string
}

// FindOutput carries a nil Event when nothing matched
type FindOutput struct {
	Event *models.Event
}
