package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/cbodonnell/pixelbattles/pkg/battle/processor"
	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"github.com/cbodonnell/pixelbattles/pkg/regions"
	"github.com/google/uuid"
)

// Hub is the live state of one canvas: its processor and the viewers following it.
type Hub struct {
	Processor processor.GameProcessor
	Regions   *regions.Space
}

// GameLoader fetches the canvas record a processor is built from.
type GameLoader func(ctx context.Context, gameID uuid.UUID) (*types.Game, error)

// ProcessorStore maps canvas ids to their live hubs.
// Implementations must be thread-safe.
type ProcessorStore interface {
	// Get returns the hub of a loaded canvas or ErrNotLoaded.
	Get(gameID uuid.UUID) (*Hub, error)
	// GetOrLoad returns the hub of a canvas, loading it on first use.
	GetOrLoad(ctx context.Context, gameID uuid.UUID) (*Hub, error)
	// Add registers a processor. It fails with ErrAlreadyLoaded if the canvas has one.
	Add(p processor.GameProcessor) (*Hub, error)
	// Remove drops a canvas from the store.
	Remove(gameID uuid.UUID)
	// List returns every loaded hub.
	List() []*Hub
}

type ErrNotLoaded struct {
	GameID uuid.UUID
}

func (e *ErrNotLoaded) Error() string {
	return fmt.Sprintf("game %s is not loaded", e.GameID)
}

func IsNotLoaded(err error) bool {
	var target *ErrNotLoaded
	return errors.As(err, &target)
}

type ErrAlreadyLoaded struct {
	GameID uuid.UUID
}

func (e *ErrAlreadyLoaded) Error() string {
	return fmt.Sprintf("game %s is already loaded", e.GameID)
}

func IsAlreadyLoaded(err error) bool {
	var target *ErrAlreadyLoaded
	return errors.As(err, &target)
}
