package processor

import (
	"fmt"
	"sync"

	"github.com/cbodonnell/pixelbattles/pkg/battle/pending"
	"github.com/cbodonnell/pixelbattles/pkg/battle/raster"
	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"github.com/cbodonnell/pixelbattles/pkg/log"
	"github.com/google/uuid"
)

var _ GameProcessor = &SimpleGameProcessor{}

// SimpleGameProcessor keeps the whole raster in memory behind a single lock.
// The raster, the pending log and the version change together under that lock,
// so a snapshot never observes a placement half applied.
type SimpleGameProcessor struct {
	lock    sync.RWMutex
	gameID  uuid.UUID
	width   int
	height  int
	version *int64
	// raster is nil until the first snapshot or placement of a fresh canvas
	raster  *raster.Raster
	pending *pending.Log
}

// NewSimpleGameProcessor creates a processor for the given canvas.
// It fails with ErrMalformedState if the canvas dimensions or raster are invalid.
func NewSimpleGameProcessor(game *types.Game) (*SimpleGameProcessor, error) {
	if game == nil {
		return nil, &ErrMalformedState{Reason: "game is nil"}
	}
	if game.Width <= 0 || game.Height <= 0 {
		return nil, &ErrMalformedState{
			GameID: game.GameID,
			Reason: fmt.Sprintf("invalid dimensions %dx%d", game.Width, game.Height),
		}
	}

	p := &SimpleGameProcessor{
		gameID:  game.GameID,
		width:   game.Width,
		height:  game.Height,
		pending: pending.NewLog(),
	}
	if game.Version != nil {
		v := *game.Version
		p.version = &v
	}

	if game.State != nil {
		r, err := raster.New(game.Width, game.Height, game.State)
		if err != nil {
			return nil, &ErrMalformedState{GameID: game.GameID, Reason: err.Error()}
		}
		p.raster = r
	}

	return p, nil
}

func (p *SimpleGameProcessor) GameID() uuid.UUID {
	return p.gameID
}

func (p *SimpleGameProcessor) Size() (int, int) {
	return p.width, p.height
}

func (p *SimpleGameProcessor) Version() *int64 {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return copyVersion(p.version)
}

// Initialized reports whether the raster has been materialized.
func (p *SimpleGameProcessor) Initialized() bool {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.raster != nil
}

func (p *SimpleGameProcessor) GetGameState() *types.GameState {
	p.lock.RLock()
	if p.raster != nil {
		state := p.snapshotLocked()
		p.lock.RUnlock()
		return state
	}
	p.lock.RUnlock()

	p.lock.Lock()
	defer p.lock.Unlock()
	p.ensureRasterLocked()
	return p.snapshotLocked()
}

func (p *SimpleGameProcessor) ProcessUserAction(cmd types.ProcessUserActionCommand) types.ProcessUserActionResult {
	if errs := p.validate(cmd); len(errs) > 0 {
		log.Trace("Rejected action on game %s at (%d, %d): %v", p.gameID, cmd.XIndex, cmd.YIndex, errs)
		return types.ValidationFailure(errs...)
	}

	p.lock.Lock()
	defer p.lock.Unlock()
	p.ensureRasterLocked()
	if err := p.raster.Set(cmd.XIndex, cmd.YIndex, cmd.Pixel); err != nil {
		// unreachable after validation, but never append an action the raster did not take
		return types.ValidationFailure(types.ErrorDescriptor{
			Code:    types.ErrorCodeOutOfBounds,
			Message: err.Error(),
		})
	}
	p.pending.Append(types.NewPendingAction(cmd))

	return types.Success()
}

func (p *SimpleGameProcessor) Commit(gameID uuid.UUID, version int64, through uint64) error {
	if gameID != p.gameID {
		return &ErrCanvasMismatch{Expected: p.gameID, Actual: gameID}
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	current := int64(0)
	if p.version != nil {
		current = *p.version
	}
	// versions start at 1, so a never-committed canvas behaves as version 0
	if version <= current {
		return &ErrStaleCommit{GameID: p.gameID, Current: current, Requested: version}
	}

	trimmed := p.pending.CommitThrough(through)
	p.version = &version
	log.Debug("Committed version %d of game %s with %d actions", version, p.gameID, trimmed)

	return nil
}

func (p *SimpleGameProcessor) validate(cmd types.ProcessUserActionCommand) []types.ErrorDescriptor {
	var errs []types.ErrorDescriptor
	if cmd.GameID != p.gameID {
		errs = append(errs, types.ErrorDescriptor{
			Code:    types.ErrorCodeCanvasMismatch,
			Message: fmt.Sprintf("game %s is not served here", cmd.GameID),
		})
	}
	if cmd.XIndex < 0 || cmd.XIndex >= p.width {
		errs = append(errs, types.ErrorDescriptor{
			Code:    types.ErrorCodeOutOfBounds,
			Message: fmt.Sprintf("x index %d is outside of [0, %d)", cmd.XIndex, p.width),
		})
	}
	if cmd.YIndex < 0 || cmd.YIndex >= p.height {
		errs = append(errs, types.ErrorDescriptor{
			Code:    types.ErrorCodeOutOfBounds,
			Message: fmt.Sprintf("y index %d is outside of [0, %d)", cmd.YIndex, p.height),
		})
	}
	return errs
}

func (p *SimpleGameProcessor) ensureRasterLocked() {
	if p.raster != nil {
		return
	}
	r, err := raster.New(p.width, p.height, nil)
	if err != nil {
		// dimensions were validated on construction
		panic(fmt.Sprintf("failed to initialize raster for game %s: %v", p.gameID, err))
	}
	p.raster = r
	log.Debug("Initialized %dx%d raster for game %s", p.width, p.height, p.gameID)
}

func (p *SimpleGameProcessor) snapshotLocked() *types.GameState {
	actions, sequence := p.pending.Snapshot()
	return &types.GameState{
		GameID:         p.gameID,
		Width:          p.width,
		Height:         p.height,
		Version:        copyVersion(p.version),
		Sequence:       sequence,
		State:          p.raster.Bytes(),
		PendingActions: actions,
	}
}

func copyVersion(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
