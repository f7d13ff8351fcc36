package repositories

import (
	"errors"
	"fmt"
)

type ErrNotFound struct {
}

func (e *ErrNotFound) Error() string {
	return "not found"
}

func IsNotFound(err error) bool {
	var target *ErrNotFound
	return errors.As(err, &target)
}

// ErrStaleVersion is returned when a save would not advance the stored version.
type ErrStaleVersion struct {
	Stored    int64
	Requested int64
}

func (e *ErrStaleVersion) Error() string {
	return fmt.Sprintf("version %d is not after stored version %d", e.Requested, e.Stored)
}

func IsStaleVersion(err error) bool {
	var target *ErrStaleVersion
	return errors.As(err, &target)
}
