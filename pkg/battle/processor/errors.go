package processor

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrMalformedState is returned when a processor cannot be built from a canvas record.
type ErrMalformedState struct {
	GameID uuid.UUID
	Reason string
}

func (e *ErrMalformedState) Error() string {
	return fmt.Sprintf("malformed state for game %s: %s", e.GameID, e.Reason)
}

func IsMalformedState(err error) bool {
	var target *ErrMalformedState
	return errors.As(err, &target)
}

// ErrStaleCommit is returned when a commit does not advance the version.
// The caller must take a fresh snapshot and retry.
type ErrStaleCommit struct {
	GameID    uuid.UUID
	Current   int64
	Requested int64
}

func (e *ErrStaleCommit) Error() string {
	return fmt.Sprintf("stale commit for game %s: version %d is not after %d", e.GameID, e.Requested, e.Current)
}

func IsStaleCommit(err error) bool {
	var target *ErrStaleCommit
	return errors.As(err, &target)
}

// ErrCanvasMismatch is returned when a call targets a canvas the processor does not serve.
type ErrCanvasMismatch struct {
	Expected uuid.UUID
	Actual   uuid.UUID
}

func (e *ErrCanvasMismatch) Error() string {
	return fmt.Sprintf("game %s is served by this processor, got %s", e.Expected, e.Actual)
}

func IsCanvasMismatch(err error) bool {
	var target *ErrCanvasMismatch
	return errors.As(err, &target)
}
