package processor

import (
	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"github.com/google/uuid"
)

// GameProcessor owns the authoritative state of one canvas.
// Implementations must be thread-safe.
type GameProcessor interface {
	// GameID returns the id of the canvas served by the processor.
	GameID() uuid.UUID
	// Size returns the fixed canvas dimensions.
	Size() (width, height int)
	// GetGameState returns a consistent snapshot of the raster and the pending actions.
	GetGameState() *types.GameState
	// ProcessUserAction validates and applies a placement. Rejected placements have no effect.
	ProcessUserAction(cmd types.ProcessUserActionCommand) types.ProcessUserActionResult
	// Commit advances the version and drops the pending actions positioned before
	// through, which must be the Sequence of the snapshot that was persisted.
	Commit(gameID uuid.UUID, version int64, through uint64) error
	// Version returns the last committed version, nil if never committed.
	Version() *int64
}
