package store

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrNotFound is a sentinel, not a failure: the document id did not resolve
// and the caller renders an empty state.
var ErrNotFound = errors.New("recipe not found")

// ErrIndexBuilding reports that the composite (user_id, created_at desc)
// index backing the list query is not usable yet. Callers surface it with a
// distinct wait-and-retry message instead of a generic read failure.
var ErrIndexBuilding = errors.New("listing index is still building")

// ReadError wraps a store read failure that is neither ErrNotFound nor
// ErrIndexBuilding.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("store read failed: %v", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError wraps a store write failure. The enclosing operation is aborted
// with no partial state.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("store write failed: %v", e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// sqlState extracts the SQLSTATE code from a driver error. The health-check
// pool reports lib/pq errors; gorm's postgres driver reports pgx errors,
// which expose the code through SQLState().
func sqlState(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var coded interface{ SQLState() string }
	if errors.As(err, &coded) {
		return coded.SQLState()
	}
	return ""
}

// classifyRead maps a driver error to the store's read taxonomy. SQLSTATE
// 55000 is what postgres raises when a query is planned through an index
// that is invalid because it is still being built concurrently; 55P03 covers
// the lock wait on the same situation.
func classifyRead(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	switch sqlState(err) {
	case "55000", "55P03":
		return ErrIndexBuilding
	}
	return &ReadError{Err: err}
}

func classifyWrite(err error) error {
	if err == nil {
		return nil
	}
	return &WriteError{Err: err}
}
