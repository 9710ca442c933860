package voting

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/astrolabe/internal/services/voting Service

import "context"

// Service runs proposals through a bounded vote and resolves each exactly once
type Service interface {
	// Propose opens a voting session for a catalog event
	Propose(ctx context.Context, input *ProposeInput) (*ProposeOutput, error)

	// CastSignal records a voter's signal. Signals for unknown or resolved
	// sessions are ignored.
	CastSignal(ctx context.Context, input *CastSignalInput) (*CastSignalOutput, error)

	// WithdrawSignal retracts a voter's signal
	WithdrawSignal(ctx context.Context, input *WithdrawSignalInput) (*WithdrawSignalOutput, error)

	// ExpireSession resolves a session whose deadline has passed
	ExpireSession(ctx context.Context, input *ExpireSessionInput) (*ExpireSessionOutput, error)

	// RetryPublication publishes an approved session again without re-running the vote
	RetryPublication(ctx context.Context, input *RetryPublicationInput) (*RetryPublicationOutput, error)

	// GetSession returns a live or archived session
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// ListScheduled returns a guild's approved sessions, newest first
	ListScheduled(ctx context.Context, input *ListScheduledInput) (*ListScheduledOutput, error)

	// Reconcile resolves overdue sessions and adopts open sessions left by
	// a previous process
	Reconcile(ctx context.Context, input *ReconcileInput) (*ReconcileOutput, error)

	// Close stops all deadline timers
	Close()
}
