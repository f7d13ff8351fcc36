package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/cbodonnell/pixelbattles/pkg/battle/processor"
	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"github.com/cbodonnell/pixelbattles/pkg/log"
	"github.com/cbodonnell/pixelbattles/pkg/messages"
	"github.com/cbodonnell/pixelbattles/pkg/queue"
	"github.com/cbodonnell/pixelbattles/pkg/repositories"
	"github.com/cbodonnell/pixelbattles/pkg/repositories/models"
	"github.com/cbodonnell/pixelbattles/pkg/state"
)

// FinalFlushTimeout bounds the flush performed when the worker stops.
const FinalFlushTimeout = 10 * time.Second

type SaveGameStateWorker struct {
	repository  repositories.Repository
	store       state.ProcessorStore
	updateQueue queue.Queue
	interval    time.Duration
}

type NewSaveGameStateWorkerOptions struct {
	Repository repositories.Repository
	Store      state.ProcessorStore
	// UpdateQueue receives a *messages.ServerGameUpdate per committed batch. It may be nil.
	UpdateQueue queue.Queue
	Interval    time.Duration
}

// NewSaveGameStateWorker creates a new SaveGameStateWorker.
// The worker periodically persists the pending actions of every loaded game,
// commits them on the processor and queues the committed batch for broadcast.
func NewSaveGameStateWorker(opts NewSaveGameStateWorkerOptions) *SaveGameStateWorker {
	return &SaveGameStateWorker{
		repository:  opts.Repository,
		store:       opts.Store,
		updateQueue: opts.UpdateQueue,
		interval:    opts.Interval,
	}
}

func (w *SaveGameStateWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), FinalFlushTimeout)
			w.SaveAll(flushCtx)
			cancel()
			return
		case <-ticker.C:
			w.SaveAll(ctx)
		}
	}
}

// SaveAll persists every loaded game with pending actions.
// Failures are logged and the actions stay pending for the next round.
func (w *SaveGameStateWorker) SaveAll(ctx context.Context) {
	for _, hub := range w.store.List() {
		if err := w.Save(ctx, hub.Processor); err != nil {
			if repositories.IsStaleVersion(err) || processor.IsStaleCommit(err) {
				log.Warn("Stale save for game %s, retrying next round: %v", hub.Processor.GameID(), err)
				continue
			}
			log.Error("Failed to save game %s: %v", hub.Processor.GameID(), err)
		}
	}
}

// Save runs one snapshot, persist and commit round for a processor.
func (w *SaveGameStateWorker) Save(ctx context.Context, p processor.GameProcessor) error {
	snapshot := p.GetGameState()
	if len(snapshot.PendingActions) == 0 {
		return nil
	}

	version := snapshot.NextVersion()
	err := w.repository.SaveGameState(ctx, &models.SaveGameStateRequest{
		GameID:  snapshot.GameID,
		Version: version,
		State:   snapshot.State,
		Actions: snapshot.PendingActions,
	})
	if err != nil {
		return fmt.Errorf("failed to save game state: %w", err)
	}

	if err := p.Commit(snapshot.GameID, version, snapshot.Sequence); err != nil {
		return fmt.Errorf("failed to commit game state: %w", err)
	}
	log.Debug("Committed %d actions of game %s as version %d", len(snapshot.PendingActions), snapshot.GameID, version)

	if w.updateQueue == nil {
		return nil
	}

	actions := make([]types.PendingAction, len(snapshot.PendingActions))
	for i, action := range snapshot.PendingActions {
		action.Version = &version
		actions[i] = action
	}
	update := &messages.ServerGameUpdate{
		GameID:   snapshot.GameID,
		Version:  &version,
		Sequence: snapshot.Sequence,
		Width:    snapshot.Width,
		Height:   snapshot.Height,
		Actions:  actions,
	}
	if err := w.updateQueue.Enqueue(update); err != nil {
		log.Error("Failed to enqueue update for game %s version %d: %v", snapshot.GameID, version, err)
	}

	return nil
}
