package catalog

// CatalogError is a custom error type for catalog failures
type CatalogError string

// Error implements the error interface
func (e CatalogError) Error() string {
	return string(e)
}

const (
	ErrInvalidInput     CatalogError = "invalid event input"
	ErrDuplicateEvent   CatalogError = "an event with this title already exists"
	ErrEventNotFound    CatalogError = "event not found"
	ErrStoreUnavailable CatalogError = "store unavailable"
	ErrNilConfig        CatalogError = "config cannot be nil"
	ErrNilRepository    CatalogError = "catalog repository cannot be nil"
	ErrNilClock         CatalogError = "clock cannot be nil"
)
