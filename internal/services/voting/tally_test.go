package voting

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/KirkDiggler/astrolabe/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type castCall struct {
	voter  string
	signal models.Signal
}

func TestTallyCountsAreOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		// each voter casts a few signals; only their own ordering matters
		perVoter := make(map[string][]models.Signal)
		for v := 0; v < 8; v++ {
			voter := fmt.Sprintf("voter-%d", v)
			for n := rng.Intn(4) + 1; n > 0; n-- {
				signal := models.SignalApprove
				if rng.Intn(2) == 0 {
					signal = models.SignalReject
				}
				perVoter[voter] = append(perVoter[voter], signal)
			}
		}

		var expected Counts
		for _, signals := range perVoter {
			if signals[len(signals)-1] == models.SignalApprove {
				expected.Approve++
			} else {
				expected.Reject++
			}
		}

		// interleave voters randomly while keeping each voter's own order
		cursors := make(map[string]int)
		var calls []castCall
		for len(calls) < countSignals(perVoter) {
			voter := fmt.Sprintf("voter-%d", rng.Intn(8))
			if cursors[voter] >= len(perVoter[voter]) {
				continue
			}
			calls = append(calls, castCall{voter: voter, signal: perVoter[voter][cursors[voter]]})
			cursors[voter]++
		}

		tally := NewTally()
		for _, call := range calls {
			require.NoError(t, tally.Cast(call.voter, call.signal))
		}
		assert.Equal(t, expected, tally.Counts(), "round %d", round)
	}
}

func countSignals(perVoter map[string][]models.Signal) int {
	total := 0
	for _, signals := range perVoter {
		total += len(signals)
	}
	return total
}

func TestTallyLastSignalWins(t *testing.T) {
	tally := NewTally()

	require.NoError(t, tally.Cast("alice", models.SignalApprove))
	require.NoError(t, tally.Cast("alice", models.SignalReject))

	assert.Equal(t, Counts{Approve: 0, Reject: 1}, tally.Counts())
}

func TestTallyWithdrawOnlyMatchingSignal(t *testing.T) {
	tally := NewTally()
	require.NoError(t, tally.Cast("alice", models.SignalApprove))
	require.NoError(t, tally.Cast("alice", models.SignalReject))

	changed, err := tally.Withdraw("alice", models.SignalApprove)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, Counts{Reject: 1}, tally.Counts())

	changed, err = tally.Withdraw("alice", models.SignalReject)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, Counts{}, tally.Counts())

	changed, err = tally.Withdraw("bob", models.SignalReject)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestTallyClosedRejectsChanges(t *testing.T) {
	tally := NewTally()
	require.NoError(t, tally.Cast("alice", models.SignalApprove))
	tally.Close()

	assert.True(t, tally.Closed())
	assert.ErrorIs(t, tally.Cast("bob", models.SignalApprove), ErrSessionClosed)
	_, err := tally.Withdraw("alice", models.SignalApprove)
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.Equal(t, Counts{Approve: 1}, tally.Counts())
}

func TestTallyRejectsInvalidSignals(t *testing.T) {
	tally := NewTally()

	assert.ErrorIs(t, tally.Cast("", models.SignalApprove), ErrInvalidInput)
	assert.ErrorIs(t, tally.Cast("alice", models.Signal("maybe")), ErrInvalidInput)
}

func TestMajorityPolicy(t *testing.T) {
	policy := MajorityPolicy{}

	testCases := []struct {
		name     string
		counts   Counts
		elapsed  bool
		expected models.SessionStatus
		decided  bool
	}{
		{name: "undecided before deadline", counts: Counts{Approve: 5}, elapsed: false},
		{name: "majority approves", counts: Counts{Approve: 2, Reject: 1}, elapsed: true, expected: models.SessionStatusApproved, decided: true},
		{name: "tie rejects", counts: Counts{Approve: 1, Reject: 1}, elapsed: true, expected: models.SessionStatusRejected, decided: true},
		{name: "no votes rejects", counts: Counts{}, elapsed: true, expected: models.SessionStatusRejected, decided: true},
		{name: "minority rejects", counts: Counts{Approve: 1, Reject: 3}, elapsed: true, expected: models.SessionStatusRejected, decided: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, decided := policy.Resolve(tc.counts, tc.elapsed)
			assert.Equal(t, tc.decided, decided)
			assert.Equal(t, tc.expected, status)
		})
	}
}

func TestQuorumPolicy(t *testing.T) {
	testCases := []struct {
		name     string
		policy   QuorumPolicy
		counts   Counts
		elapsed  bool
		expected models.SessionStatus
		decided  bool
	}{
		{name: "early resolve on quorum", policy: QuorumPolicy{MinApprovals: 3, EarlyResolve: true}, counts: Counts{Approve: 3, Reject: 1}, expected: models.SessionStatusApproved, decided: true},
		{name: "no early resolve below quorum", policy: QuorumPolicy{MinApprovals: 3, EarlyResolve: true}, counts: Counts{Approve: 2}},
		{name: "no early resolve when disabled", policy: QuorumPolicy{MinApprovals: 1}, counts: Counts{Approve: 4}},
		{name: "early resolve needs majority", policy: QuorumPolicy{MinApprovals: 2, EarlyResolve: true}, counts: Counts{Approve: 2, Reject: 2}},
		{name: "no votes expires", policy: QuorumPolicy{MinApprovals: 2}, elapsed: true, expected: models.SessionStatusExpired, decided: true},
		{name: "below quorum rejects", policy: QuorumPolicy{MinApprovals: 3}, counts: Counts{Approve: 2}, elapsed: true, expected: models.SessionStatusRejected, decided: true},
		{name: "quorum approves", policy: QuorumPolicy{MinApprovals: 2}, counts: Counts{Approve: 2, Reject: 1}, elapsed: true, expected: models.SessionStatusApproved, decided: true},
		{name: "zero minimum means one", policy: QuorumPolicy{}, counts: Counts{Approve: 1}, elapsed: true, expected: models.SessionStatusApproved, decided: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, decided := tc.policy.Resolve(tc.counts, tc.elapsed)
			assert.Equal(t, tc.decided, decided)
			assert.Equal(t, tc.expected, status)
		})
	}
}
