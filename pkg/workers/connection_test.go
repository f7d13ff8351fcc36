package workers

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cbodonnell/pixelbattles/pkg/log"
	"github.com/cbodonnell/pixelbattles/pkg/network"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestConnectionEventWorker_logsEvents(t *testing.T) {
	buf := &bytes.Buffer{}
	log.SetDefaultLogger(log.New(buf, "", 0, log.LogLevelDebug))
	t.Cleanup(func() {
		log.SetDefaultLogger(log.New(&bytes.Buffer{}, "", 0, log.LogLevelInfo))
	})

	events := make(chan network.ConnectionEvent, 4)
	worker := NewConnectionEventWorker(NewConnectionEventWorkerOptions{ConnectionEventChan: events})
	gameID := uuid.New()

	events <- network.ConnectionEvent{ClientID: 1, Type: network.ConnectionEventTypeConnect, Data: network.ClientConnectData{UserID: "alice"}}
	events <- network.ConnectionEvent{ClientID: 1, Type: network.ConnectionEventTypeDisconnect, Data: network.ClientDisconnectData{GameID: &gameID}}
	events <- network.ConnectionEvent{ClientID: 2, Type: network.ConnectionEventTypeDisconnect, Data: network.ClientDisconnectData{}}
	events <- network.ConnectionEvent{ClientID: 3, Type: network.ConnectionEventTypeDisconnect, Data: "garbage"}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()
	assert.Eventually(t, func() bool { return len(events) == 0 }, time.Second, 10*time.Millisecond)
	cancel()
	<-done

	out := buf.String()
	assert.Contains(t, out, "Client 1 connected as alice")
	assert.Contains(t, out, "Client 1 disconnected from game "+gameID.String())
	assert.Contains(t, out, "Client 2 disconnected")
	assert.Contains(t, out, "Failed to cast client disconnect data")
}
