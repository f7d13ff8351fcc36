package repositories

import (
	"context"

	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"github.com/cbodonnell/pixelbattles/pkg/repositories/models"
	"github.com/google/uuid"
)

type Repository interface {
	Close(ctx context.Context) error
	// CreateBattle stores a battle along with its empty canvas, assigning both ids.
	CreateBattle(ctx context.Context, battle *models.Battle) (*models.Battle, error)
	ListBattles(ctx context.Context) ([]*models.Battle, error)
	GetBattle(ctx context.Context, battleID uuid.UUID) (*models.Battle, error)
	GetBattleByGameID(ctx context.Context, gameID uuid.UUID) (*models.Battle, error)
	GetGame(ctx context.Context, gameID uuid.UUID) (*types.Game, error)
	// SaveGameState stores the raster and the actions of a committed batch.
	// It fails with ErrStaleVersion if the stored version is not older than the request.
	SaveGameState(ctx context.Context, req *models.SaveGameStateRequest) error
	// ListActionsSince returns committed actions with a version after afterVersion
	// (all of them if nil) and up to throughVersion (unbounded if nil) in commit order.
	// A positive limit caps the result.
	ListActionsSince(ctx context.Context, gameID uuid.UUID, afterVersion, throughVersion *int64, limit int) ([]types.PendingAction, error)
}
