package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"github.com/cbodonnell/pixelbattles/pkg/log"
	"github.com/cbodonnell/pixelbattles/pkg/render"
	"github.com/cbodonnell/pixelbattles/pkg/repositories"
	"github.com/cbodonnell/pixelbattles/pkg/state"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	HeaderGameVersion  = "X-Game-Version"
	HeaderGameSequence = "X-Game-Sequence"
	HeaderGameWidth    = "X-Game-Width"
	HeaderGameHeight   = "X-Game-Height"
)

type PlaceActionRequest struct {
	XIndex int         `json:"x"`
	YIndex int         `json:"y"`
	Pixel  types.Pixel `json:"pixel"`
}

type ListActionsResponse struct {
	// Version is the last committed version, nil if the game was never committed
	Version *int64 `json:"version"`
	// Actions are the committed actions after the requested version followed by the pending ones
	Actions []types.PendingAction `json:"actions"`
}

// loadHub resolves the game in the request path, writing the error response on failure.
func loadHub(w http.ResponseWriter, r *http.Request, store state.ProcessorStore) (*state.Hub, bool) {
	gameID, err := uuid.Parse(mux.Vars(r)["gameID"])
	if err != nil {
		http.Error(w, "Failed to parse gameID", http.StatusBadRequest)
		return nil, false
	}

	hub, err := store.GetOrLoad(r.Context(), gameID)
	if err != nil {
		if repositories.IsNotFound(err) || state.IsNotLoaded(err) {
			http.Error(w, "Game not found", http.StatusNotFound)
			return nil, false
		}
		log.Error("failed to load game %s: %v", gameID, err)
		http.Error(w, "Failed to load game", http.StatusInternalServerError)
		return nil, false
	}

	return hub, true
}

func writeGameHeaders(w http.ResponseWriter, snapshot *types.GameState) {
	if snapshot.Version != nil {
		w.Header().Set(HeaderGameVersion, strconv.FormatInt(*snapshot.Version, 10))
	}
	w.Header().Set(HeaderGameSequence, strconv.FormatUint(snapshot.Sequence, 10))
	w.Header().Set(HeaderGameWidth, strconv.Itoa(snapshot.Width))
	w.Header().Set(HeaderGameHeight, strconv.Itoa(snapshot.Height))
}

func HandleGetGameState(store state.ProcessorStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hub, ok := loadHub(w, r, store)
		if !ok {
			return
		}

		snapshot := hub.Processor.GetGameState()
		writeGameHeaders(w, snapshot)
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Length", strconv.Itoa(len(snapshot.State)))
		if _, err := w.Write(snapshot.State); err != nil {
			log.Error("failed to write game state: %v", err)
		}
	}
}

func HandleGetGamePreview(store state.ProcessorStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetWidth := 0
		if v := r.URL.Query().Get("width"); v != "" {
			width, err := strconv.Atoi(v)
			if err != nil || width < 1 {
				http.Error(w, "Width must be a positive integer", http.StatusBadRequest)
				return
			}
			targetWidth = width
		}

		hub, ok := loadHub(w, r, store)
		if !ok {
			return
		}

		snapshot := hub.Processor.GetGameState()
		buf := &bytes.Buffer{}
		if err := render.Preview(buf, snapshot.Width, snapshot.Height, snapshot.State, targetWidth); err != nil {
			log.Error("failed to render preview of game %s: %v", snapshot.GameID, err)
			http.Error(w, "Failed to render preview", http.StatusInternalServerError)
			return
		}

		writeGameHeaders(w, snapshot)
		w.Header().Set("Content-Type", "image/png")
		if _, err := w.Write(buf.Bytes()); err != nil {
			log.Error("failed to write preview: %v", err)
		}
	}
}

func HandleListGameActions(store state.ProcessorStore, repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var since *int64
		if v := r.URL.Query().Get("since"); v != "" {
			version, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				http.Error(w, "Since must be an integer version", http.StatusBadRequest)
				return
			}
			since = &version
		}

		hub, ok := loadHub(w, r, store)
		if !ok {
			return
		}

		// committed actions are bounded by the snapshot's version, later batches
		// would replay after newer pending writes
		snapshot := hub.Processor.GetGameState()
		committed := []types.PendingAction{}
		if snapshot.Version != nil {
			var err error
			committed, err = repository.ListActionsSince(r.Context(), snapshot.GameID, since, snapshot.Version, 0)
			if err != nil {
				log.Error("failed to list actions of game %s: %v", snapshot.GameID, err)
				http.Error(w, "Failed to list actions", http.StatusInternalServerError)
				return
			}
		}

		actions := make([]types.PendingAction, 0, len(committed)+len(snapshot.PendingActions))
		actions = append(actions, committed...)
		actions = append(actions, snapshot.PendingActions...)

		writeGameHeaders(w, snapshot)
		writeJSON(w, http.StatusOK, &ListActionsResponse{
			Version: snapshot.Version,
			Actions: actions,
		})
	}
}

func HandlePlaceAction(store state.ProcessorStore, repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &PlaceActionRequest{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		hub, ok := loadHub(w, r, store)
		if !ok {
			return
		}
		gameID := hub.Processor.GameID()

		battle, err := repository.GetBattleByGameID(r.Context(), gameID)
		if err != nil && !repositories.IsNotFound(err) {
			log.Error("failed to get battle of game %s: %v", gameID, err)
			http.Error(w, "Failed to get battle", http.StatusInternalServerError)
			return
		}
		if battle != nil && !battle.IsActive(time.Now()) {
			http.Error(w, "Battle is not active", http.StatusForbidden)
			return
		}

		result := hub.Processor.ProcessUserAction(types.ProcessUserActionCommand{
			GameID: gameID,
			XIndex: req.XIndex,
			YIndex: req.YIndex,
			Pixel:  req.Pixel,
		})

		status := http.StatusOK
		if !result.Succeeded {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, result)
	}
}
