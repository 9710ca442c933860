package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/astrolabe/internal/common/clock"
	"github.com/KirkDiggler/astrolabe/internal/common/uuid"
	"github.com/KirkDiggler/astrolabe/internal/models"
	catalogRepo "github.com/KirkDiggler/astrolabe/internal/repositories/catalog"
	sessionRepo "github.com/KirkDiggler/astrolabe/internal/repositories/session"
	"github.com/KirkDiggler/astrolabe/internal/services/messaging"
	"github.com/KirkDiggler/astrolabe/internal/services/publication"
	"github.com/KirkDiggler/astrolabe/internal/surface"
)

// liveSession is a session still held in memory. mu guards every field;
// lock order is liveSession.mu before service.mu.
type liveSession struct {
	mu      sync.Mutex
	session *models.VotingSession
	tally   *Tally
	timer   clock.Timer
}

// service implements the Service interface
type service struct {
	votingWindow   time.Duration
	deadlineJitter time.Duration
	publishTimeout time.Duration
	policy         Policy

	catalogRepo catalogRepo.Repository
	sessionRepo sessionRepo.Repository
	publisher   publication.Service
	messenger   surface.Messenger
	messages    messaging.Service
	clock       clock.Clock
	uuid        uuid.UUID
	logger      *slog.Logger

	mu         sync.Mutex
	closed     bool
	byID       map[string]*liveSession
	byMessage  map[string]string
	byTitle    map[string]string
	publishing map[string]bool

	// resolved remembers sessions resolved here until the archive stops
	// listing them as open
	resolved map[string]bool
}

// NewService creates a new voting service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.CatalogRepo == nil {
		return nil, ErrNilCatalogRepo
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.Publisher == nil {
		return nil, ErrNilPublisher
	}
	if cfg.Messenger == nil {
		return nil, ErrNilMessenger
	}
	if cfg.Messages == nil {
		return nil, ErrNilMessages
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	s := &service{
		votingWindow:   cfg.VotingWindow,
		deadlineJitter: cfg.DeadlineJitter,
		publishTimeout: cfg.PublishTimeout,
		policy:         cfg.Policy,
		catalogRepo:    cfg.CatalogRepo,
		sessionRepo:    cfg.SessionRepo,
		publisher:      cfg.Publisher,
		messenger:      cfg.Messenger,
		messages:       cfg.Messages,
		clock:          cfg.Clock,
		uuid:           cfg.UUIDGenerator,
		logger:         cfg.Logger,
		byID:           make(map[string]*liveSession),
		byMessage:      make(map[string]string),
		byTitle:        make(map[string]string),
		publishing:     make(map[string]bool),
		resolved:       make(map[string]bool),
	}

	if s.votingWindow <= 0 {
		s.votingWindow = DefaultVotingWindow
	}
	if s.deadlineJitter <= 0 {
		s.deadlineJitter = DefaultDeadlineJitter
	}
	if s.publishTimeout <= 0 {
		s.publishTimeout = DefaultPublishTimeout
	}
	if s.policy == nil {
		s.policy = MajorityPolicy{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "voting")

	return s, nil
}

func titleKey(guildID, title string) string {
	return guildID + "/" + models.NormalizeTitle(title)
}

// Propose opens a voting session for a catalog event
func (s *service) Propose(ctx context.Context, input *ProposeInput) (*ProposeOutput, error) {
	if input == nil || input.GuildID == "" || input.ChannelID == "" || models.NormalizeTitle(input.Title) == "" {
		return nil, ErrInvalidInput
	}
	if input.ScheduledAt.IsZero() {
		return nil, fmt.Errorf("%w: scheduled time is required", ErrInvalidInput)
	}

	window := input.VotingWindow
	if window <= 0 {
		window = s.votingWindow
	}

	now := s.clock.Now()
	deadline := now.Add(window)
	if !input.ScheduledAt.After(deadline) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrStartsBeforeDeadline)
	}

	found, err := s.catalogRepo.Find(ctx, &catalogRepo.FindInput{
		GuildID: input.GuildID,
		Title:   input.Title,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if found.Event == nil {
		return nil, ErrTitleNotFound
	}
	event := *found.Event

	// Reserve the title so a concurrent proposal fails fast
	key := titleKey(input.GuildID, event.Title)
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrServiceClosed
	}
	if _, exists := s.byTitle[key]; exists {
		s.mu.Unlock()
		return nil, ErrAlreadyProposed
	}
	s.byTitle[key] = ""
	s.mu.Unlock()

	registered := false
	defer func() {
		if !registered {
			s.mu.Lock()
			delete(s.byTitle, key)
			s.mu.Unlock()
		}
	}()

	scheduledAt := input.ScheduledAt
	event.ScheduledAt = &scheduledAt

	session := &models.VotingSession{
		ID:             s.uuid.NewUUID(),
		GuildID:        input.GuildID,
		ChannelID:      input.ChannelID,
		Title:          event.Title,
		Event:          event,
		ProposedBy:     input.ProposedBy,
		ProposedByName: input.ProposedByName,
		ScheduledAt:    scheduledAt,
		ProposedAt:     now,
		Deadline:       deadline,
		Status:         models.SessionStatusOpen,
	}

	proposal, err := s.messages.GetProposalMessage(ctx, &messaging.GetProposalMessageInput{
		ProposerName: input.ProposedByName,
		Title:        event.Title,
		ScheduledAt:  scheduledAt,
		Deadline:     session.Deadline,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render proposal: %w", err)
	}

	sent, err := s.messenger.SendMessage(ctx, &surface.SendMessageInput{
		ChannelID: input.ChannelID,
		Content:   proposal.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to post proposal: %v", ErrMessagingUnavailable, err)
	}
	session.MessageID = sent.LastMessageID()
	if session.MessageID == "" {
		return nil, fmt.Errorf("%w: proposal was not posted", ErrMessagingUnavailable)
	}

	if err := s.messenger.Subscribe(ctx, &surface.SubscribeInput{
		ChannelID: input.ChannelID,
		MessageID: session.MessageID,
		Signals:   []models.Signal{models.SignalApprove, models.SignalReject},
	}); err != nil {
		s.logger.Warn("proposal posted but signals could not be attached",
			"guild_id", session.GuildID,
			"message_id", session.MessageID,
			"err", err)
		s.withdrawProposal(ctx, session)
		return nil, fmt.Errorf("%w: failed to attach signals: %v", ErrMessagingUnavailable, err)
	}

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		s.withdrawProposal(ctx, session)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	ls := &liveSession{
		session: session,
		tally:   NewTally(),
	}
	s.register(ls, window)
	registered = true

	s.logger.Info("voting session opened",
		"session_id", session.ID,
		"guild_id", session.GuildID,
		"title", session.Title,
		"deadline", session.Deadline)

	snapshot := *session
	return &ProposeOutput{
		Session: &snapshot,
	}, nil
}

// withdrawProposal tells the channel that a posted proposal never opened,
// so reactions on it are not mistaken for votes
func (s *service) withdrawProposal(ctx context.Context, session *models.VotingSession) {
	notice, err := s.messages.GetProposalWithdrawnMessage(ctx, &messaging.GetProposalWithdrawnMessageInput{
		Title: session.Title,
	})
	if err == nil {
		_, err = s.messenger.SendMessage(ctx, &surface.SendMessageInput{
			ChannelID: session.ChannelID,
			Content:   notice.Message,
		})
	}
	if err != nil {
		s.logger.Warn("failed to withdraw proposal",
			"guild_id", session.GuildID,
			"message_id", session.MessageID,
			"err", err)
	}
}

// register indexes ls and arms its deadline timer
func (s *service) register(ls *liveSession, remaining time.Duration) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	s.mu.Lock()
	s.index(ls)
	s.mu.Unlock()

	s.arm(ls, remaining)
}

// index makes ls reachable by id, message and title. The caller holds s.mu.
func (s *service) index(ls *liveSession) {
	id := ls.session.ID
	s.byID[id] = ls
	s.byMessage[ls.session.MessageID] = id
	s.byTitle[titleKey(ls.session.GuildID, ls.session.Title)] = id
}

// arm starts the deadline timer. The caller holds ls.mu.
func (s *service) arm(ls *liveSession, remaining time.Duration) {
	if ls.tally.Closed() {
		return
	}
	if remaining < 0 {
		remaining = 0
	}

	id := ls.session.ID
	ls.timer = s.clock.AfterFunc(remaining, func() {
		if _, err := s.ExpireSession(context.Background(), &ExpireSessionInput{SessionID: id}); err != nil {
			s.logger.Error("deadline resolution failed", "session_id", id, "err", err)
		}
	})
}

// unindex drops every index entry for session. The caller holds s.mu.
func (s *service) unindex(session *models.VotingSession) {
	delete(s.byID, session.ID)
	delete(s.byMessage, session.MessageID)
	key := titleKey(session.GuildID, session.Title)
	if s.byTitle[key] == session.ID {
		delete(s.byTitle, key)
	}
}

func (s *service) lookup(sessionID, messageID string) *liveSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID == "" {
		sessionID = s.byMessage[messageID]
	}
	return s.byID[sessionID]
}

// CastSignal records a voter's signal
func (s *service) CastSignal(ctx context.Context, input *CastSignalInput) (*CastSignalOutput, error) {
	if input == nil || input.VoterID == "" || !input.Signal.IsValid() {
		return nil, ErrInvalidInput
	}
	if input.SessionID == "" && input.MessageID == "" {
		return nil, ErrInvalidInput
	}

	ls := s.lookup(input.SessionID, input.MessageID)
	if ls == nil {
		s.logger.Debug("signal for unknown or resolved session ignored",
			"session_id", input.SessionID,
			"message_id", input.MessageID,
			"voter_id", input.VoterID)
		return &CastSignalOutput{}, nil
	}

	ls.mu.Lock()
	if err := ls.tally.Cast(input.VoterID, input.Signal); err != nil {
		ls.mu.Unlock()
		if errors.Is(err, ErrSessionClosed) {
			s.logger.Debug("late signal ignored", "session_id", ls.session.ID, "voter_id", input.VoterID)
			return &CastSignalOutput{}, nil
		}
		return nil, err
	}

	counts := ls.tally.Counts()
	status, decided := s.policy.Resolve(counts, false)
	if !decided {
		ls.mu.Unlock()
		return &CastSignalOutput{
			Applied: true,
			Counts:  counts,
		}, nil
	}

	snapshot := s.transition(ls, status, counts, true)
	ls.mu.Unlock()

	s.logger.Info("voting session resolved early",
		"session_id", snapshot.ID,
		"status", snapshot.Status)

	return &CastSignalOutput{
		Applied:    true,
		Counts:     counts,
		Resolution: s.finish(ctx, snapshot),
	}, nil
}

// WithdrawSignal retracts a voter's signal
func (s *service) WithdrawSignal(ctx context.Context, input *WithdrawSignalInput) (*WithdrawSignalOutput, error) {
	if input == nil || input.VoterID == "" || !input.Signal.IsValid() {
		return nil, ErrInvalidInput
	}
	if input.SessionID == "" && input.MessageID == "" {
		return nil, ErrInvalidInput
	}

	ls := s.lookup(input.SessionID, input.MessageID)
	if ls == nil {
		return &WithdrawSignalOutput{}, nil
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	changed, err := ls.tally.Withdraw(input.VoterID, input.Signal)
	if err != nil {
		if errors.Is(err, ErrSessionClosed) {
			s.logger.Debug("late withdrawal ignored", "session_id", ls.session.ID, "voter_id", input.VoterID)
			return &WithdrawSignalOutput{}, nil
		}
		return nil, err
	}

	return &WithdrawSignalOutput{
		Applied: changed,
		Counts:  ls.tally.Counts(),
	}, nil
}

// ExpireSession resolves a session whose deadline has passed
func (s *service) ExpireSession(ctx context.Context, input *ExpireSessionInput) (*ExpireSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrInvalidInput
	}

	ls := s.lookup(input.SessionID, "")
	if ls == nil {
		return &ExpireSessionOutput{}, nil
	}

	ls.mu.Lock()
	if ls.tally.Closed() {
		ls.mu.Unlock()
		return &ExpireSessionOutput{}, nil
	}

	counts := ls.tally.Counts()
	status, decided := s.policy.Resolve(counts, true)
	if !decided {
		status = models.SessionStatusExpired
	}
	snapshot := s.transition(ls, status, counts, false)
	ls.mu.Unlock()

	s.logger.Info("voting session resolved at deadline",
		"session_id", snapshot.ID,
		"status", snapshot.Status,
		"approve", counts.Approve,
		"reject", counts.Reject)

	return &ExpireSessionOutput{
		Resolution: s.finish(ctx, snapshot),
	}, nil
}

// transition moves ls out of open. The caller holds ls.mu and is the only
// one that will see the returned snapshot.
func (s *service) transition(ls *liveSession, status models.SessionStatus, counts Counts, early bool) *models.VotingSession {
	ls.tally.Close()
	if early && ls.timer != nil {
		ls.timer.Stop()
	}

	resolvedAt := s.clock.Now()
	ls.session.Status = status
	ls.session.ApproveCount = counts.Approve
	ls.session.RejectCount = counts.Reject
	ls.session.ResolvedAt = &resolvedAt

	snapshot := *ls.session

	// the archive still lists the session as open until finish saves it
	s.mu.Lock()
	s.unindex(ls.session)
	s.resolved[snapshot.ID] = true
	if status == models.SessionStatusApproved {
		s.publishing[snapshot.ID] = true
	}
	s.mu.Unlock()

	return &snapshot
}

// finish runs the side effects of a resolution: archive, then publish or announce
func (s *service) finish(ctx context.Context, session *models.VotingSession) *Resolution {
	resolution := &Resolution{
		SessionID: session.ID,
		Status:    session.Status,
		Counts:    Counts{Approve: session.ApproveCount, Reject: session.RejectCount},
	}

	var warnings []error
	if err := s.save(ctx, session); err != nil {
		warnings = append(warnings, err)
	}

	if session.Status == models.SessionStatusApproved {
		ref, err := s.publish(ctx, session, session.ChannelID)
		s.mu.Lock()
		delete(s.publishing, session.ID)
		s.mu.Unlock()

		resolution.ExternalRef = ref
		if err != nil {
			warnings = append(warnings, err)
		}
	} else if err := s.announceOutcome(ctx, session); err != nil {
		warnings = append(warnings, err)
	}

	resolution.Warning = errors.Join(warnings...)
	return resolution
}

func (s *service) save(ctx context.Context, session *models.VotingSession) error {
	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		s.logger.Error("failed to archive voting session",
			"session_id", session.ID,
			"status", session.Status,
			"err", err)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// publish pushes an approved session to the calendar and records the
// attempt on the session, which is archived again
func (s *service) publish(ctx context.Context, session *models.VotingSession, channelID string) (string, error) {
	publishCtx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()

	event := session.Event
	output, err := s.publisher.Publish(publishCtx, &publication.PublishInput{
		GuildID:     session.GuildID,
		ChannelID:   channelID,
		Event:       &event,
		ScheduledAt: session.ScheduledAt,
		Retryable:   true,
	})

	session.Publication.Attempts++
	if err != nil {
		session.Publication.Status = models.PublicationStatusFailed
		session.Publication.Error = err.Error()
	} else {
		publishedAt := s.clock.Now()
		session.Publication.Status = models.PublicationStatusPublished
		session.Publication.ExternalRef = output.ExternalRef
		session.Publication.Error = ""
		session.Publication.PublishedAt = &publishedAt
	}

	if saveErr := s.save(ctx, session); saveErr != nil {
		err = errors.Join(err, saveErr)
	}
	if session.Publication.Status != models.PublicationStatusPublished {
		return "", err
	}
	return session.Publication.ExternalRef, err
}

func (s *service) announceOutcome(ctx context.Context, session *models.VotingSession) error {
	outcome, err := s.messages.GetOutcomeMessage(ctx, &messaging.GetOutcomeMessageInput{
		Title:        session.Title,
		Status:       session.Status,
		ApproveCount: session.ApproveCount,
		RejectCount:  session.RejectCount,
	})
	if err != nil {
		return err
	}

	if _, err := s.messenger.SendMessage(ctx, &surface.SendMessageInput{
		ChannelID: session.ChannelID,
		Content:   outcome.Message,
	}); err != nil {
		s.logger.Warn("failed to announce outcome", "session_id", session.ID, "err", err)
		return fmt.Errorf("%w: %v", ErrMessagingUnavailable, err)
	}
	return nil
}

// RetryPublication publishes an approved session again
func (s *service) RetryPublication(ctx context.Context, input *RetryPublicationInput) (*RetryPublicationOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	session, err := s.findApproved(ctx, input)
	if err != nil {
		return nil, err
	}

	if session.Publication.Status == models.PublicationStatusPublished {
		return &RetryPublicationOutput{
			Session:          session,
			ExternalRef:      session.Publication.ExternalRef,
			AlreadyPublished: true,
		}, nil
	}

	s.mu.Lock()
	if s.publishing[session.ID] {
		s.mu.Unlock()
		return nil, ErrPublishInProgress
	}
	s.publishing[session.ID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.publishing, session.ID)
		s.mu.Unlock()
	}()

	channelID := input.ChannelID
	if channelID == "" {
		channelID = session.ChannelID
	}

	s.logger.Info("retrying publication",
		"session_id", session.ID,
		"attempt", session.Publication.Attempts+1)

	ref, err := s.publish(ctx, session, channelID)
	if ref == "" {
		return nil, err
	}
	if err != nil {
		// published, only the archive write failed
		s.logger.Warn("publication retry succeeded but was not archived", "session_id", session.ID, "err", err)
	}

	return &RetryPublicationOutput{
		Session:     session,
		ExternalRef: ref,
	}, nil
}

func (s *service) findApproved(ctx context.Context, input *RetryPublicationInput) (*models.VotingSession, error) {
	if input.SessionID != "" {
		session, err := s.getArchived(ctx, &GetSessionInput{SessionID: input.SessionID})
		if err != nil {
			return nil, err
		}
		if session.Status != models.SessionStatusApproved {
			return nil, ErrNotApproved
		}
		return session, nil
	}

	if input.GuildID == "" || models.NormalizeTitle(input.Title) == "" {
		return nil, ErrInvalidInput
	}

	output, err := s.sessionRepo.GetSessionsByGuild(ctx, &sessionRepo.GetSessionsByGuildInput{
		GuildID: input.GuildID,
		Status:  models.SessionStatusApproved,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// newest unpublished match first, then the newest match at all
	want := models.NormalizeTitle(input.Title)
	var newest *models.VotingSession
	for _, session := range output.Sessions {
		if models.NormalizeTitle(session.Title) != want {
			continue
		}
		if session.Publication.Status != models.PublicationStatusPublished {
			return session, nil
		}
		if newest == nil {
			newest = session
		}
	}
	if newest == nil {
		return nil, ErrNotApproved
	}
	return newest, nil
}

// GetSession returns a live or archived session
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil || (input.SessionID == "" && input.MessageID == "") {
		return nil, ErrInvalidInput
	}

	if ls := s.lookup(input.SessionID, input.MessageID); ls != nil {
		ls.mu.Lock()
		snapshot := *ls.session
		ls.mu.Unlock()
		return &GetSessionOutput{Session: &snapshot}, nil
	}

	session, err := s.getArchived(ctx, input)
	if err != nil {
		return nil, err
	}
	return &GetSessionOutput{Session: session}, nil
}

func (s *service) getArchived(ctx context.Context, input *GetSessionInput) (*models.VotingSession, error) {
	var (
		session *models.VotingSession
		err     error
	)
	if input.SessionID != "" {
		session, err = s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: input.SessionID})
	} else {
		session, err = s.sessionRepo.GetSessionByMessage(ctx, &sessionRepo.GetSessionByMessageInput{MessageID: input.MessageID})
	}
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return session, nil
}

// ListScheduled returns a guild's approved sessions, newest first
func (s *service) ListScheduled(ctx context.Context, input *ListScheduledInput) (*ListScheduledOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, ErrInvalidInput
	}

	output, err := s.sessionRepo.GetSessionsByGuild(ctx, &sessionRepo.GetSessionsByGuildInput{
		GuildID: input.GuildID,
		Status:  models.SessionStatusApproved,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &ListScheduledOutput{
		Sessions: output.Sessions,
	}, nil
}

// Reconcile resolves overdue live sessions and adopts open sessions that
// only exist in the archive
func (s *service) Reconcile(ctx context.Context, input *ReconcileInput) (*ReconcileOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	now := s.clock.Now()
	output := &ReconcileOutput{}

	s.mu.Lock()
	live := make([]*liveSession, 0, len(s.byID))
	for _, ls := range s.byID {
		live = append(live, ls)
	}
	s.mu.Unlock()

	for _, ls := range live {
		ls.mu.Lock()
		id, deadline := ls.session.ID, ls.session.Deadline
		ls.mu.Unlock()

		if !now.After(deadline.Add(s.deadlineJitter)) {
			continue
		}
		expired, err := s.ExpireSession(ctx, &ExpireSessionInput{SessionID: id})
		if err != nil {
			return output, err
		}
		if expired.Resolution != nil {
			s.logger.Warn("overdue session forced to resolve", "session_id", id, "deadline", deadline)
			output.Resolved++
		}
	}

	// only resolutions made before the read can be confirmed by it
	s.mu.Lock()
	tombstones := make([]string, 0, len(s.resolved))
	for id := range s.resolved {
		tombstones = append(tombstones, id)
	}
	s.mu.Unlock()

	archived, err := s.sessionRepo.GetOpenSessions(ctx, &sessionRepo.GetOpenSessionsInput{})
	if err != nil {
		return output, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	stillOpen := make(map[string]bool, len(archived.Sessions))
	for _, session := range archived.Sessions {
		stillOpen[session.ID] = true
		adopted, resolved := s.adopt(ctx, session, now)
		if adopted {
			output.Adopted++
		}
		if resolved {
			output.Resolved++
		}
	}

	s.mu.Lock()
	for _, id := range tombstones {
		if !stillOpen[id] {
			delete(s.resolved, id)
		}
	}
	s.mu.Unlock()

	return output, nil
}

// adopt takes over an archived open session. Its signals were lost with the
// previous process, so one already past its deadline expires.
func (s *service) adopt(ctx context.Context, session *models.VotingSession, now time.Time) (adopted bool, resolved bool) {
	if !session.Status.IsOpen() {
		return false, false
	}

	ls := &liveSession{
		session: session,
		tally:   NewTally(),
	}

	// checked and claimed under one lock so a session resolved here, or by
	// a concurrent pass, is never taken over again
	s.mu.Lock()
	_, live := s.byID[session.ID]
	if live || s.resolved[session.ID] {
		s.mu.Unlock()
		if !live {
			s.logger.Debug("archive still lists a resolved session as open", "session_id", session.ID)
		}
		return false, false
	}

	if !now.Before(session.Deadline) {
		s.resolved[session.ID] = true
		s.mu.Unlock()

		resolvedAt := now
		session.Status = models.SessionStatusExpired
		session.ApproveCount = 0
		session.RejectCount = 0
		session.ResolvedAt = &resolvedAt

		s.logger.Warn("orphaned session expired", "session_id", session.ID, "deadline", session.Deadline)
		s.finish(ctx, session)
		return false, true
	}

	if _, taken := s.byTitle[titleKey(session.GuildID, session.Title)]; taken {
		s.mu.Unlock()
		s.logger.Warn("orphaned session conflicts with a live proposal", "session_id", session.ID, "title", session.Title)
		return false, false
	}
	s.index(ls)
	s.mu.Unlock()

	ls.mu.Lock()
	s.arm(ls, session.Deadline.Sub(now))
	ls.mu.Unlock()

	s.logger.Info("orphaned session adopted", "session_id", session.ID, "deadline", session.Deadline)
	return true, false
}

// Close stops all deadline timers. Open sessions stay archived.
func (s *service) Close() {
	s.mu.Lock()
	s.closed = true
	live := make([]*liveSession, 0, len(s.byID))
	for _, ls := range s.byID {
		live = append(live, ls)
	}
	s.mu.Unlock()

	for _, ls := range live {
		ls.mu.Lock()
		if ls.timer != nil {
			ls.timer.Stop()
		}
		ls.mu.Unlock()
	}
}
