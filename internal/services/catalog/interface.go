package catalog

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/astrolabe/internal/services/catalog Service

import "context"

// Service validates command input and manages a guild's event backlog
type Service interface {
	AddEvent(ctx context.Context, input *AddEventInput) (*AddEventOutput, error)
	RemoveEvent(ctx context.Context, input *RemoveEventInput) (*RemoveEventOutput, error)
	ListEvents(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error)

	// SearchEvents matches the query against title, location and description
	SearchEvents(ctx context.Context, input *SearchEventsInput) (*SearchEventsOutput, error)

	GetEvent(ctx context.Context, input *GetEventInput) (*GetEventOutput, error)
}
