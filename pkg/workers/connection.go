package workers

import (
	"context"

	"github.com/cbodonnell/pixelbattles/pkg/log"
	"github.com/cbodonnell/pixelbattles/pkg/network"
)

type ConnectionEventWorker struct {
	connectionEventChan <-chan network.ConnectionEvent
}

type NewConnectionEventWorkerOptions struct {
	ConnectionEventChan <-chan network.ConnectionEvent
}

// NewConnectionEventWorker creates a new ConnectionEventWorker.
// The worker drains client events like connect and disconnect and logs them.
// Viewer cleanup happens in the network layer since events may be dropped under load.
func NewConnectionEventWorker(opts NewConnectionEventWorkerOptions) *ConnectionEventWorker {
	return &ConnectionEventWorker{
		connectionEventChan: opts.ConnectionEventChan,
	}
}

func (w *ConnectionEventWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-w.connectionEventChan:
			w.handleEvent(event)
		}
	}
}

func (w *ConnectionEventWorker) handleEvent(event network.ConnectionEvent) {
	switch event.Type {
	case network.ConnectionEventTypeConnect:
		w.handleClientConnect(event)
	case network.ConnectionEventTypeDisconnect:
		w.handleClientDisconnect(event)
	default:
		log.Error("Unknown client event type: %v", event.Type)
	}
}

func (w *ConnectionEventWorker) handleClientConnect(event network.ConnectionEvent) {
	data, ok := event.Data.(network.ClientConnectData)
	if !ok {
		log.Error("Failed to cast client connect data")
		return
	}
	log.Debug("Client %d connected as %s", event.ClientID, data.UserID)
}

func (w *ConnectionEventWorker) handleClientDisconnect(event network.ConnectionEvent) {
	data, ok := event.Data.(network.ClientDisconnectData)
	if !ok {
		log.Error("Failed to cast client disconnect data")
		return
	}
	if data.GameID == nil {
		log.Debug("Client %d disconnected", event.ClientID)
		return
	}
	log.Debug("Client %d disconnected from game %s", event.ClientID, *data.GameID)
}
