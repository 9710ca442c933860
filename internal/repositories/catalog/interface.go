package catalog

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/astrolabe/internal/repositories/catalog Repository

import (
	"context"
)

// Repository defines the interface for guild-scoped event catalog persistence.
// Titles are matched case-insensitively; (guild, normalized title) is unique.
type Repository interface {
	// Insert adds an event, failing with ErrDuplicateKey if the title is taken
	Insert(ctx context.Context, input *InsertInput) error

	// Delete removes an event by title, reporting whether anything was removed
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)

	// List returns a guild's events in insertion order
	List(ctx context.Context, input *ListInput) (*ListOutput, error)

	// Find looks up a single event by title
	Find(ctx context.Context, input *FindInput) (*FindOutput, error)
}
