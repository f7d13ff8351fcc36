package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/cbodonnell/pixelbattles/pkg/log"
	"github.com/cbodonnell/pixelbattles/pkg/repositories"
	"github.com/cbodonnell/pixelbattles/pkg/repositories/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	// MaxCanvasSize bounds each dimension of a new canvas
	MaxCanvasSize = 4096
	// MaxBattleNameLength bounds the name of a new battle
	MaxBattleNameLength = 64
)

type CreateBattleRequest struct {
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	Settings     models.BattleSettings `json:"settings"`
	StartDateUTC time.Time             `json:"startDateUTC"`
	EndDateUTC   time.Time             `json:"endDateUTC"`
}

func HandleListBattles(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		battles, err := repository.ListBattles(r.Context())
		if err != nil {
			log.Error("failed to list battles: %v", err)
			http.Error(w, "Failed to list battles", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, battles)
	}
}

func HandleCreateBattle(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &CreateBattleRequest{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if len(req.Name) < 1 || len(req.Name) > MaxBattleNameLength {
			http.Error(w, "Name must be between 1 and 64 characters", http.StatusBadRequest)
			return
		}
		if req.Settings.Width < 1 || req.Settings.Width > MaxCanvasSize || req.Settings.Height < 1 || req.Settings.Height > MaxCanvasSize {
			http.Error(w, "Width and height must be between 1 and 4096", http.StatusBadRequest)
			return
		}
		if !req.EndDateUTC.After(req.StartDateUTC) {
			http.Error(w, "End date must be after start date", http.StatusBadRequest)
			return
		}

		battle, err := repository.CreateBattle(r.Context(), &models.Battle{
			Name:         req.Name,
			Description:  req.Description,
			Settings:     req.Settings,
			StartDateUTC: req.StartDateUTC.UTC(),
			EndDateUTC:   req.EndDateUTC.UTC(),
		})
		if err != nil {
			log.Error("failed to create battle: %v", err)
			http.Error(w, "Failed to create battle", http.StatusInternalServerError)
			return
		}
		log.Info("Created battle %s with game %s (%dx%d)", battle.BattleID, battle.GameID, battle.Settings.Width, battle.Settings.Height)

		writeJSON(w, http.StatusCreated, battle)
	}
}

func HandleGetBattle(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		battleID, err := uuid.Parse(mux.Vars(r)["battleID"])
		if err != nil {
			http.Error(w, "Failed to parse battleID", http.StatusBadRequest)
			return
		}

		battle, err := repository.GetBattle(r.Context(), battleID)
		if err != nil {
			if repositories.IsNotFound(err) {
				http.Error(w, "Battle not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get battle: %v", err)
			http.Error(w, "Failed to get battle", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, battle)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}
