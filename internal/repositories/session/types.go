package session

import "github.com/KirkDiggler/astrolabe/internal/models"

type SaveSessionInput struct {
	Session *models.VotingSession
}

type GetSessionInput struct {
	SessionID string
}

type GetSessionByMessageInput struct {
	MessageID string
}

type GetOpenSessionsInput struct {
}

type GetOpenSessionsOutput struct {
	Sessions []*models.VotingSession
}

type GetSessionsByGuildInput struct {
	GuildID string

	// Status filters the result when set
	Status models.SessionStatus
}

type GetSessionsByGuildOutput struct {
	Sessions []*models.VotingSession
}
