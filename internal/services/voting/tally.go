package voting

import "github.com/KirkDiggler/astrolabe/internal/models"

// Counts is a snapshot of a tally
type Counts struct {
	Approve int
	Reject  int
}

// Total returns the number of voters with an active signal
func (c Counts) Total() int {
	return c.Approve + c.Reject
}

// Tally holds the most recent signal per voter. It is not safe for
// concurrent use; the owning session's mutex guards it.
type Tally struct {
	signals map[string]models.Signal
	closed  bool
}

// NewTally returns an open, empty tally
func NewTally() *Tally {
	return &Tally{
		signals: make(map[string]models.Signal),
	}
}

// Cast records signal as the voter's current position, replacing any earlier one
func (t *Tally) Cast(voterID string, signal models.Signal) error {
	if t.closed {
		return ErrSessionClosed
	}
	if voterID == "" || !signal.IsValid() {
		return ErrInvalidInput
	}

	t.signals[voterID] = signal
	return nil
}

// Withdraw drops the voter's signal if it is still the given one, reporting
// whether anything changed
func (t *Tally) Withdraw(voterID string, signal models.Signal) (bool, error) {
	if t.closed {
		return false, ErrSessionClosed
	}

	current, ok := t.signals[voterID]
	if !ok || current != signal {
		return false, nil
	}

	delete(t.signals, voterID)
	return true, nil
}

// Counts computes the tally from the current signals
func (t *Tally) Counts() Counts {
	var counts Counts
	for _, signal := range t.signals {
		switch signal {
		case models.SignalApprove:
			counts.Approve++
		case models.SignalReject:
			counts.Reject++
		}
	}
	return counts
}

// Close stops the tally from accepting further changes
func (t *Tally) Close() {
	t.closed = true
}

// Closed reports whether Close has been called
func (t *Tally) Closed() bool {
	return t.closed
}
