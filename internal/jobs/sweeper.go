// Package jobs runs background maintenance on a cron schedule.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/KirkDiggler/astrolabe/internal/services/voting"
)

const DefaultSweepTimeout = 30 * time.Second

// SweeperConfig holds configuration for the deadline sweeper
type SweeperConfig struct {
	// Schedule is a cron spec, standard five fields or a descriptor like "@every 1m"
	Schedule string

	// Timeout bounds one sweep
	Timeout time.Duration

	VotingService voting.Service
	Logger        *slog.Logger
}

// Sweeper periodically reconciles voting sessions so that a missed timer
// or a restart never leaves a session open past its deadline
type Sweeper struct {
	cron          *cron.Cron
	timeout       time.Duration
	votingService voting.Service
	logger        *slog.Logger
}

// NewSweeper creates a sweeper; it does nothing until Start
func NewSweeper(cfg *SweeperConfig) (*Sweeper, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.VotingService == nil {
		return nil, errors.New("voting service cannot be nil")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultSweepTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Sweeper{
		timeout:       timeout,
		votingService: cfg.VotingService,
		logger:        logger.With("component", "sweeper"),
	}

	// a tick is skipped while the previous sweep is still running
	s.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := s.cron.AddFunc(cfg.Schedule, s.Sweep); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", cfg.Schedule, err)
	}

	return s, nil
}

// Start runs the schedule in the background
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep, up to ctx
func (s *Sweeper) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("sweep still running at shutdown")
	}
}

// Sweep runs a single reconciliation pass
func (s *Sweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	output, err := s.votingService.Reconcile(ctx, &voting.ReconcileInput{})
	if err != nil {
		s.logger.Error("sweep failed", "err", err)
		return
	}

	if output.Resolved > 0 || output.Adopted > 0 {
		s.logger.Info("sweep reconciled sessions", "resolved", output.Resolved, "adopted", output.Adopted)
	}
}
