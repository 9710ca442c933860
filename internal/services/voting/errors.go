package voting

// VotingError is a custom error type for voting failures
type VotingError string

// Error implements the error interface
func (e VotingError) Error() string {
	return string(e)
}

const (
	ErrInvalidInput         VotingError = "invalid voting input"
	ErrTitleNotFound        VotingError = "title not found in catalog"
	ErrStartsBeforeDeadline VotingError = "event would start before voting closes"
	ErrAlreadyProposed      VotingError = "an open session already exists for this title"
	ErrSessionClosed        VotingError = "voting session is closed"
	ErrSessionNotFound      VotingError = "voting session not found"
	ErrStoreUnavailable     VotingError = "store unavailable"
	ErrMessagingUnavailable VotingError = "messaging platform unavailable"
	ErrNotApproved          VotingError = "session was not approved"
	ErrPublishInProgress    VotingError = "publication already in progress"
	ErrServiceClosed        VotingError = "voting service is closed"
	ErrNilConfig            VotingError = "config cannot be nil"
	ErrNilCatalogRepo       VotingError = "catalog repository cannot be nil"
	ErrNilSessionRepo       VotingError = "session repository cannot be nil"
	ErrNilPublisher         VotingError = "publisher cannot be nil"
	ErrNilMessenger         VotingError = "messenger cannot be nil"
	ErrNilMessages          VotingError = "messaging service cannot be nil"
	ErrNilClock             VotingError = "clock cannot be nil"
	ErrNilUUIDGenerator     VotingError = "UUID generator cannot be nil"
)
