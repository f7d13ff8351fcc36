package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"github.com/cbodonnell/pixelbattles/pkg/repositories/models"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var _ Repository = &SQLiteRepository{}

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at path and applies every migration
// found in the migrations directory in lexical order.
func NewSQLiteRepository(ctx context.Context, path string, migrations string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	// sqlite serializes writers anyway, a single connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	dir, err := os.ReadDir(migrations)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to read migrations directory: %v", err)
	}
	sort.Slice(dir, func(i, j int) bool { return dir[i].Name() < dir[j].Name() })

	for _, entry := range dir {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".sql" {
			continue
		}

		migrationPath := filepath.Join(migrations, entry.Name())
		migration, err := os.ReadFile(migrationPath)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to read migration %s: %v", migrationPath, err)
		}

		if _, err := db.ExecContext(ctx, string(migration)); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute migration %s: %v", migrationPath, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateBattle(ctx context.Context, battle *models.Battle) (*models.Battle, error) {
	created := *battle
	created.BattleID = uuid.New()
	created.GameID = uuid.New()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	q := `
	INSERT INTO games (game_id, width, height) VALUES (?, ?, ?);
	`
	if _, err := tx.ExecContext(ctx, q, created.GameID.String(), created.Settings.Width, created.Settings.Height); err != nil {
		return nil, fmt.Errorf("failed to insert game: %v", err)
	}

	q = `
	INSERT INTO battles (battle_id, game_id, name, description, start_date_utc, end_date_utc, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	_, err = tx.ExecContext(ctx, q,
		created.BattleID.String(),
		created.GameID.String(),
		created.Name,
		created.Description,
		created.StartDateUTC.UnixMilli(),
		created.EndDateUTC.UnixMilli(),
		time.Now().UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert battle: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %v", err)
	}

	created.StartDateUTC = time.UnixMilli(created.StartDateUTC.UnixMilli()).UTC()
	created.EndDateUTC = time.UnixMilli(created.EndDateUTC.UnixMilli()).UTC()
	return &created, nil
}

const sqliteSelectBattle = `
SELECT b.battle_id, b.game_id, b.name, b.description, b.start_date_utc, b.end_date_utc, g.width, g.height
FROM battles b JOIN games g ON g.game_id = b.game_id
`

func scanSQLiteBattle(row interface{ Scan(...any) error }) (*models.Battle, error) {
	battle := &models.Battle{}
	var start, end int64
	err := row.Scan(
		&battle.BattleID,
		&battle.GameID,
		&battle.Name,
		&battle.Description,
		&start,
		&end,
		&battle.Settings.Width,
		&battle.Settings.Height,
	)
	if err != nil {
		return nil, err
	}
	battle.StartDateUTC = time.UnixMilli(start).UTC()
	battle.EndDateUTC = time.UnixMilli(end).UTC()
	return battle, nil
}

func (r *SQLiteRepository) ListBattles(ctx context.Context) ([]*models.Battle, error) {
	rows, err := r.db.QueryContext(ctx, sqliteSelectBattle+"ORDER BY b.start_date_utc, b.created_at;")
	if err != nil {
		return nil, fmt.Errorf("failed to query battles: %v", err)
	}
	defer rows.Close()

	battles := make([]*models.Battle, 0)
	for rows.Next() {
		battle, err := scanSQLiteBattle(rows)
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

func (r *SQLiteRepository) GetBattle(ctx context.Context, battleID uuid.UUID) (*models.Battle, error) {
	row := r.db.QueryRowContext(ctx, sqliteSelectBattle+"WHERE b.battle_id = ?;", battleID.String())
	battle, err := scanSQLiteBattle(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan battle: %v", err)
	}
	return battle, nil
}

func (r *SQLiteRepository) GetBattleByGameID(ctx context.Context, gameID uuid.UUID) (*models.Battle, error) {
	row := r.db.QueryRowContext(ctx, sqliteSelectBattle+"WHERE b.game_id = ?;", gameID.String())
	battle, err := scanSQLiteBattle(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan battle: %v", err)
	}
	return battle, nil
}

func (r *SQLiteRepository) GetGame(ctx context.Context, gameID uuid.UUID) (*types.Game, error) {
	q := `
	SELECT width, height, version, state FROM games WHERE game_id = ?;
	`
	game := &types.Game{GameID: gameID}
	var version sql.NullInt64
	if err := r.db.QueryRowContext(ctx, q, gameID.String()).Scan(&game.Width, &game.Height, &version, &game.State); err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan game: %v", err)
	}
	if version.Valid {
		game.Version = &version.Int64
	}

	return game, nil
}

func (r *SQLiteRepository) SaveGameState(ctx context.Context, req *models.SaveGameStateRequest) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	var stored sql.NullInt64
	if err := tx.QueryRowContext(ctx, "SELECT version FROM games WHERE game_id = ?;", req.GameID.String()).Scan(&stored); err != nil {
		if err == sql.ErrNoRows {
			return &ErrNotFound{}
		}
		return fmt.Errorf("failed to query game version: %v", err)
	}
	if stored.Valid && req.Version <= stored.Int64 {
		return &ErrStaleVersion{Stored: stored.Int64, Requested: req.Version}
	}

	q := `
	UPDATE games SET version = ?, state = ?, updated_at = ? WHERE game_id = ?;
	`
	if _, err := tx.ExecContext(ctx, q, req.Version, req.State, time.Now().UnixMilli(), req.GameID.String()); err != nil {
		return fmt.Errorf("failed to update game: %v", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO game_actions (game_id, version, sequence, x, y, r, g, b, a)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare action insert: %v", err)
	}
	defer stmt.Close()

	for i, action := range req.Actions {
		_, err := stmt.ExecContext(ctx,
			req.GameID.String(), req.Version, i,
			action.XIndex, action.YIndex,
			action.Pixel.R, action.Pixel.G, action.Pixel.B, action.Pixel.A,
		)
		if err != nil {
			return fmt.Errorf("failed to insert action: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) ListActionsSince(ctx context.Context, gameID uuid.UUID, afterVersion, throughVersion *int64, limit int) ([]types.PendingAction, error) {
	after := int64(math.MinInt64)
	if afterVersion != nil {
		after = *afterVersion
	}
	through := int64(math.MaxInt64)
	if throughVersion != nil {
		through = *throughVersion
	}
	if limit <= 0 {
		limit = -1
	}

	q := `
	SELECT version, x, y, r, g, b, a FROM game_actions
	WHERE game_id = ? AND version > ? AND version <= ?
	ORDER BY version, sequence
	LIMIT ?;
	`
	rows, err := r.db.QueryContext(ctx, q, gameID.String(), after, through, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query actions: %v", err)
	}
	defer rows.Close()

	actions := make([]types.PendingAction, 0)
	for rows.Next() {
		var version int64
		action := types.PendingAction{GameID: gameID}
		if err := rows.Scan(&version, &action.XIndex, &action.YIndex, &action.Pixel.R, &action.Pixel.G, &action.Pixel.B, &action.Pixel.A); err != nil {
			return nil, fmt.Errorf("failed to scan action: %v", err)
		}
		action.Version = &version
		actions = append(actions, action)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate actions: %v", err)
	}

	return actions, nil
}
