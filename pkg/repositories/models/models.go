package models

import (
	"time"

	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"github.com/google/uuid"
)

type BattleSettings struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Battle struct {
	BattleID     uuid.UUID      `json:"battleId"`
	GameID       uuid.UUID      `json:"gameId"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Settings     BattleSettings `json:"settings"`
	StartDateUTC time.Time      `json:"startDateUTC"`
	EndDateUTC   time.Time      `json:"endDateUTC"`
}

// IsActive reports whether placements are accepted at the given time.
func (b *Battle) IsActive(now time.Time) bool {
	return !now.Before(b.StartDateUTC) && now.Before(b.EndDateUTC)
}

// SaveGameStateRequest is one committed batch of a canvas.
type SaveGameStateRequest struct {
	GameID  uuid.UUID
	Version int64
	State   []byte
	Actions []types.PendingAction
}
