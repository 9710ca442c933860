package publication

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/astrolabe/internal/services/publication Service

import "context"

// Service pushes approved events to the guild's scheduled events and
// announces the result in the proposal channel
type Service interface {
	// Publish creates the scheduled event and announces it. On
	// ErrPlatformUnavailable the failure has still been announced.
	Publish(ctx context.Context, input *PublishInput) (*PublishOutput, error)
}
