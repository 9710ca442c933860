package publication

// PublicationError is a custom error type for publication failures
type PublicationError string

// Error implements the error interface
func (e PublicationError) Error() string {
	return string(e)
}

const (
	ErrPlatformUnavailable PublicationError = "scheduling platform unavailable"
	ErrInvalidWindow       PublicationError = "invalid event window"
	ErrInvalidInput        PublicationError = "invalid publish input"
	ErrNilConfig           PublicationError = "config cannot be nil"
	ErrNilScheduler        PublicationError = "scheduler cannot be nil"
	ErrNilMessenger        PublicationError = "messenger cannot be nil"
	ErrNilMessages         PublicationError = "messaging service cannot be nil"
	ErrNilClock            PublicationError = "clock cannot be nil"
)
