package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/astrolabe/internal/repositories/session Repository

import (
	"context"

	"github.com/KirkDiggler/astrolabe/internal/models"
)

// Repository defines the interface for voting session persistence
type Repository interface {
	// SaveSession persists a session and keeps its indexes current
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.VotingSession, error)

	// GetSessionByMessage retrieves a session by its proposal message ID
	GetSessionByMessage(ctx context.Context, input *GetSessionByMessageInput) (*models.VotingSession, error)

	// GetOpenSessions retrieves all sessions still collecting signals
	GetOpenSessions(ctx context.Context, input *GetOpenSessionsInput) (*GetOpenSessionsOutput, error)

	// GetSessionsByGuild retrieves a guild's sessions, newest proposal first
	GetSessionsByGuild(ctx context.Context, input *GetSessionsByGuildInput) (*GetSessionsByGuildOutput, error)
}
