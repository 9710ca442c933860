package models

// Signal is a single voter's position on a proposal
type Signal string

const (
	// SignalApprove is a vote in favour of scheduling
	SignalApprove Signal = "approve"

	// SignalReject is a vote against scheduling
	SignalReject Signal = "reject"
)

// IsValid reports whether s is a known signal
func (s Signal) IsValid() bool {
	return s == SignalApprove || s == SignalReject
}

// Emoji returns the reaction that represents s
func (s Signal) Emoji() string {
	switch s {
	case SignalApprove:
		return "👍"
	case SignalReject:
		return "👎"
	default:
		return ""
	}
}

// SignalFromEmoji maps a reaction back to a signal
func SignalFromEmoji(emoji string) (Signal, bool) {
	switch emoji {
	case "👍":
		return SignalApprove, true
	case "👎":
		return SignalReject, true
	default:
		return "", false
	}
}
