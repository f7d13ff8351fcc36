package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/pixelbattles/pkg/log"
	"github.com/cbodonnell/pixelbattles/pkg/messages"
	"github.com/cbodonnell/pixelbattles/pkg/queue"
	"github.com/cbodonnell/pixelbattles/pkg/state"
)

// UpdateSender delivers a committed batch to one subscribed client.
type UpdateSender interface {
	SendGameUpdate(ctx context.Context, clientID uint32, update *messages.ServerGameUpdate) error
}

type BroadcastWorker struct {
	store       state.ProcessorStore
	updateQueue queue.Queue
	sender      UpdateSender
	interval    time.Duration
}

type NewBroadcastWorkerOptions struct {
	Store       state.ProcessorStore
	UpdateQueue queue.Queue
	Sender      UpdateSender
	Interval    time.Duration
}

// NewBroadcastWorker creates a new BroadcastWorker.
// The worker drains committed updates and sends every viewer the actions inside its viewport.
func NewBroadcastWorker(opts NewBroadcastWorkerOptions) *BroadcastWorker {
	return &BroadcastWorker{
		store:       opts.Store,
		updateQueue: opts.UpdateQueue,
		sender:      opts.Sender,
		interval:    opts.Interval,
	}
}

func (w *BroadcastWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.BroadcastAll(ctx)
		}
	}
}

// BroadcastAll sends every queued update, in queue order.
func (w *BroadcastWorker) BroadcastAll(ctx context.Context) {
	items, err := w.updateQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read updates: %v", err)
		return
	}

	for _, item := range items {
		update, ok := item.(*messages.ServerGameUpdate)
		if !ok {
			log.Error("Unexpected item in update queue: %T", item)
			continue
		}
		if err := w.Broadcast(ctx, update); err != nil {
			log.Error("Failed to broadcast update for game %s: %v", update.GameID, err)
		}
	}
}

// Broadcast routes one committed update through the game's regions.
func (w *BroadcastWorker) Broadcast(ctx context.Context, update *messages.ServerGameUpdate) error {
	hub, err := w.store.Get(update.GameID)
	if err != nil {
		if state.IsNotLoaded(err) {
			return nil
		}
		return err
	}

	for clientID, actions := range hub.Regions.Route(update.Actions) {
		err := w.sender.SendGameUpdate(ctx, clientID, &messages.ServerGameUpdate{
			GameID:   update.GameID,
			Version:  update.Version,
			Sequence: update.Sequence,
			Width:    update.Width,
			Height:   update.Height,
			Actions:  actions,
		})
		if err != nil {
			log.Warn("Failed to send update to client %d: %v", clientID, err)
		}
	}

	return nil
}
