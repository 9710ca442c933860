package voting

import "github.com/KirkDiggler/astrolabe/internal/models"

// Policy decides a session's outcome from its counts
type Policy interface {
	// Resolve returns the terminal status and true once the policy has
	// decided. At the deadline a policy must always decide.
	Resolve(counts Counts, deadlineElapsed bool) (models.SessionStatus, bool)
}

// MajorityPolicy approves on a strict majority at the deadline. Ties and
// empty tallies are rejected.
type MajorityPolicy struct{}

// Resolve implements Policy
func (MajorityPolicy) Resolve(counts Counts, deadlineElapsed bool) (models.SessionStatus, bool) {
	if !deadlineElapsed {
		return "", false
	}
	if counts.Approve > counts.Reject {
		return models.SessionStatusApproved, true
	}
	return models.SessionStatusRejected, true
}

// QuorumPolicy needs a minimum number of approvals. A session nobody voted
// on expires instead of being rejected.
type QuorumPolicy struct {
	// MinApprovals is the approval count needed, at least 1
	MinApprovals int

	// EarlyResolve approves as soon as the minimum is met with a majority
	EarlyResolve bool
}

// Resolve implements Policy
func (p QuorumPolicy) Resolve(counts Counts, deadlineElapsed bool) (models.SessionStatus, bool) {
	minApprovals := p.MinApprovals
	if minApprovals < 1 {
		minApprovals = 1
	}
	quorate := counts.Approve >= minApprovals && counts.Approve > counts.Reject

	if !deadlineElapsed {
		if p.EarlyResolve && quorate {
			return models.SessionStatusApproved, true
		}
		return "", false
	}

	switch {
	case counts.Total() == 0:
		return models.SessionStatusExpired, true
	case quorate:
		return models.SessionStatusApproved, true
	default:
		return models.SessionStatusRejected, true
	}
}
