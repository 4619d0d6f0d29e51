package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type pgxStateError struct{ code string }

func (e *pgxStateError) Error() string    { return "state " + e.code }
func (e *pgxStateError) SQLState() string { return e.code }

func TestClassifyReadNotFound(t *testing.T) {
	err := classifyRead(gorm.ErrRecordNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClassifyReadIndexBuilding(t *testing.T) {
	// object_not_in_prerequisite_state: the index backing the query is
	// not usable yet.
	err := classifyRead(&pq.Error{Code: "55000"})
	assert.ErrorIs(t, err, ErrIndexBuilding)

	err = classifyRead(&pq.Error{Code: "55P03"})
	assert.ErrorIs(t, err, ErrIndexBuilding)

	// Same SQLSTATE surfaced through the pgx driver.
	err = classifyRead(&pgxStateError{code: "55000"})
	assert.ErrorIs(t, err, ErrIndexBuilding)
}

func TestClassifyReadWrapsOtherErrors(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := classifyRead(cause)

	var readErr *ReadError
	assert.ErrorAs(t, err, &readErr)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrIndexBuilding)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestClassifyWriteWrapsOtherErrors(t *testing.T) {
	cause := errors.New("deadline exceeded")
	err := classifyWrite(cause)

	var writeErr *WriteError
	assert.ErrorAs(t, err, &writeErr)
	assert.ErrorIs(t, err, cause)
}
