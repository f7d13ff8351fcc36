package types

import "github.com/google/uuid"

// GameState is an immutable snapshot of a canvas. Every action in PendingActions is already
// reflected in State, and nothing applied after the snapshot was taken is.
type GameState struct {
	GameID uuid.UUID
	Width  int
	Height int
	// Version is the last committed change index at the time of the snapshot.
	Version *int64
	// Sequence is the absolute position of the pending log right after the last
	// action in PendingActions. Committing this snapshot trims the log up to it.
	Sequence uint64
	// State is a copy of the raster.
	State []byte
	// PendingActions are the uncommitted actions in arrival order.
	PendingActions []PendingAction
}

// NextVersion returns the version a commit of this snapshot should carry.
func (s *GameState) NextVersion() int64 {
	if s.Version == nil {
		return 1
	}
	return *s.Version + 1
}
