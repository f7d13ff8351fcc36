package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"github.com/cbodonnell/pixelbattles/pkg/log"
	"github.com/cbodonnell/pixelbattles/pkg/repositories/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Repository = &PostgresRepository{}

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgresRepository.
// The schema is expected to be migrated already (see migrations/postgres).
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %v", err)
	}

	var username string
	var database string
	err = pool.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to query database: %v", err)
	}

	log.Info("Connected to %s as %s", database, username)

	return &PostgresRepository{
		pool: pool,
	}, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) CreateBattle(ctx context.Context, battle *models.Battle) (*models.Battle, error) {
	created := *battle
	created.BattleID = uuid.New()
	created.GameID = uuid.New()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	q := `
	INSERT INTO games (game_id, width, height) VALUES ($1, $2, $3);
	`
	if _, err := tx.Exec(ctx, q, created.GameID.String(), created.Settings.Width, created.Settings.Height); err != nil {
		return nil, fmt.Errorf("failed to insert game: %v", err)
	}

	q = `
	INSERT INTO battles (battle_id, game_id, name, description, start_date_utc, end_date_utc)
	VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, q,
		created.BattleID.String(),
		created.GameID.String(),
		created.Name,
		created.Description,
		created.StartDateUTC.UTC(),
		created.EndDateUTC.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert battle: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %v", err)
	}

	return &created, nil
}

const postgresSelectBattle = `
SELECT b.battle_id, b.game_id, b.name, b.description, b.start_date_utc, b.end_date_utc, g.width, g.height
FROM battles b JOIN games g ON g.game_id = b.game_id
`

func scanPostgresBattle(row pgx.Row) (*models.Battle, error) {
	battle := &models.Battle{}
	var battleID, gameID string
	err := row.Scan(
		&battleID,
		&gameID,
		&battle.Name,
		&battle.Description,
		&battle.StartDateUTC,
		&battle.EndDateUTC,
		&battle.Settings.Width,
		&battle.Settings.Height,
	)
	if err != nil {
		return nil, err
	}
	if battle.BattleID, err = uuid.Parse(battleID); err != nil {
		return nil, fmt.Errorf("failed to parse battle id: %v", err)
	}
	if battle.GameID, err = uuid.Parse(gameID); err != nil {
		return nil, fmt.Errorf("failed to parse game id: %v", err)
	}
	battle.StartDateUTC = battle.StartDateUTC.UTC()
	battle.EndDateUTC = battle.EndDateUTC.UTC()
	return battle, nil
}

func (r *PostgresRepository) ListBattles(ctx context.Context) ([]*models.Battle, error) {
	rows, err := r.pool.Query(ctx, postgresSelectBattle+"ORDER BY b.start_date_utc, b.created_at;")
	if err != nil {
		return nil, fmt.Errorf("failed to query battles: %v", err)
	}
	defer rows.Close()

	battles := make([]*models.Battle, 0)
	for rows.Next() {
		battle, err := scanPostgresBattle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan battle: %v", err)
		}
		battles = append(battles, battle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate battles: %v", err)
	}

	return battles, nil
}

func (r *PostgresRepository) GetBattle(ctx context.Context, battleID uuid.UUID) (*models.Battle, error) {
	battle, err := scanPostgresBattle(r.pool.QueryRow(ctx, postgresSelectBattle+"WHERE b.battle_id = $1;", battleID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan battle: %v", err)
	}
	return battle, nil
}

func (r *PostgresRepository) GetBattleByGameID(ctx context.Context, gameID uuid.UUID) (*models.Battle, error) {
	battle, err := scanPostgresBattle(r.pool.QueryRow(ctx, postgresSelectBattle+"WHERE b.game_id = $1;", gameID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan battle: %v", err)
	}
	return battle, nil
}

func (r *PostgresRepository) GetGame(ctx context.Context, gameID uuid.UUID) (*types.Game, error) {
	q := `
	SELECT width, height, version, state FROM games WHERE game_id = $1;
	`
	game := &types.Game{GameID: gameID}
	if err := r.pool.QueryRow(ctx, q, gameID.String()).Scan(&game.Width, &game.Height, &game.Version, &game.State); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan game: %v", err)
	}

	return game, nil
}

func (r *PostgresRepository) SaveGameState(ctx context.Context, req *models.SaveGameStateRequest) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	var stored *int64
	q := `
	SELECT version FROM games WHERE game_id = $1 FOR UPDATE;
	`
	if err := tx.QueryRow(ctx, q, req.GameID.String()).Scan(&stored); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &ErrNotFound{}
		}
		return fmt.Errorf("failed to query game version: %v", err)
	}
	if stored != nil && req.Version <= *stored {
		return &ErrStaleVersion{Stored: *stored, Requested: req.Version}
	}

	q = `
	UPDATE games SET version = $1, state = $2, updated_at = $3 WHERE game_id = $4;
	`
	if _, err := tx.Exec(ctx, q, req.Version, req.State, time.Now().UTC(), req.GameID.String()); err != nil {
		return fmt.Errorf("failed to update game: %v", err)
	}

	rows := make([][]any, 0, len(req.Actions))
	for i, action := range req.Actions {
		rows = append(rows, []any{
			req.GameID.String(), req.Version, int32(i),
			int32(action.XIndex), int32(action.YIndex),
			int16(action.Pixel.R), int16(action.Pixel.G), int16(action.Pixel.B), int16(action.Pixel.A),
		})
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"game_actions"},
		[]string{"game_id", "version", "sequence", "x", "y", "r", "g", "b", "a"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to insert actions: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *PostgresRepository) ListActionsSince(ctx context.Context, gameID uuid.UUID, afterVersion, throughVersion *int64, limit int) ([]types.PendingAction, error) {
	q := `
	SELECT version, x, y, r, g, b, a FROM game_actions
	WHERE game_id = $1
		AND ($2::BIGINT IS NULL OR version > $2)
		AND ($3::BIGINT IS NULL OR version <= $3)
	ORDER BY version, sequence
	`
	args := []any{gameID.String(), afterVersion, throughVersion}
	if limit > 0 {
		q += "LIMIT $4"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query actions: %v", err)
	}
	defer rows.Close()

	actions := make([]types.PendingAction, 0)
	for rows.Next() {
		var version int64
		var x, y int32
		var red, green, blue, alpha int16
		if err := rows.Scan(&version, &x, &y, &red, &green, &blue, &alpha); err != nil {
			return nil, fmt.Errorf("failed to scan action: %v", err)
		}
		actions = append(actions, types.PendingAction{
			GameID:  gameID,
			XIndex:  int(x),
			YIndex:  int(y),
			Pixel:   types.NewPixel(uint8(red), uint8(green), uint8(blue), uint8(alpha)),
			Version: &version,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate actions: %v", err)
	}

	return actions, nil
}
