package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound = errors.New("db: key not found")
	// ErrPoolExhausted is returned when no connection could be acquired in time.
	ErrPoolExhausted = errors.New("db: connection pool exhausted")
	// ErrUnavailable is returned when the store cannot be reached.
	ErrUnavailable = errors.New("db: store unavailable")
)

// Op constants name storage operations for error context.
const (
	OpAcquire          = "ACQUIRE"
	OpPing             = "PING"
	OpSearchCatalog    = "SEARCH CATALOG"
	OpCountCatalog     = "COUNT CATALOG"
	OpSearchDictionary = "SEARCH DICTIONARY"
	OpGet              = "GET"
	OpSet              = "SET"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
