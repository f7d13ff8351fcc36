package workers

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"github.com/cbodonnell/pixelbattles/pkg/messages"
	"github.com/cbodonnell/pixelbattles/pkg/queue"
	"github.com/cbodonnell/pixelbattles/pkg/state"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	lock sync.Mutex
	sent map[uint32][]*messages.ServerGameUpdate
	fail map[uint32]bool
}

func newRecordingSender() *recordingSender {
	return &recordingSender{
		sent: make(map[uint32][]*messages.ServerGameUpdate),
		fail: make(map[uint32]bool),
	}
}

func (s *recordingSender) SendGameUpdate(ctx context.Context, clientID uint32, update *messages.ServerGameUpdate) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.fail[clientID] {
		return errors.New("connection closed")
	}
	s.sent[clientID] = append(s.sent[clientID], update)
	return nil
}

func (s *recordingSender) updates(t *testing.T, clientID uint32) []*messages.ServerGameUpdate {
	t.Helper()
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]*messages.ServerGameUpdate(nil), s.sent[clientID]...)
}

func TestBroadcastWorker_BroadcastAll(t *testing.T) {
	store := state.NewInMemoryProcessorStore(state.NewInMemoryProcessorStoreOptions{RegionCellSize: 2})
	p := newTestProcessor(t, nil)
	hub, err := store.Add(p)
	require.NoError(t, err)
	require.NoError(t, hub.Regions.Subscribe(1, nil))
	require.NoError(t, hub.Regions.Subscribe(2, &types.Viewport{X: 0, Y: 0, Width: 2, Height: 2}))
	require.NoError(t, hub.Regions.Subscribe(3, &types.Viewport{X: 2, Y: 0, Width: 2, Height: 1}))
	require.NoError(t, hub.Regions.Subscribe(4, nil))

	version := int64(1)
	actions := []types.PendingAction{
		{GameID: p.GameID(), XIndex: 0, YIndex: 0, Pixel: types.NewPixel(1, 1, 1, 255)},
		{GameID: p.GameID(), XIndex: 3, YIndex: 3, Pixel: types.NewPixel(2, 2, 2, 255)},
	}
	updates := queue.NewInMemoryQueue(8)
	require.NoError(t, updates.Enqueue(&messages.ServerGameUpdate{GameID: p.GameID(), Version: &version, Width: 4, Height: 4, Actions: actions}))
	require.NoError(t, updates.Enqueue("not an update"))
	require.NoError(t, updates.Enqueue(&messages.ServerGameUpdate{GameID: uuid.New(), Version: &version, Actions: actions}))

	sender := newRecordingSender()
	sender.fail[4] = true
	worker := NewBroadcastWorker(NewBroadcastWorkerOptions{Store: store, UpdateQueue: updates, Sender: sender})

	worker.BroadcastAll(context.Background())

	all := sender.updates(t, 1)
	require.Len(t, all, 1)
	assert.Equal(t, &version, all[0].Version)
	assert.Equal(t, 4, all[0].Width)
	require.Len(t, all[0].Actions, 2)
	assert.Equal(t, actions[0].Pixel, all[0].Actions[0].Pixel)
	assert.Equal(t, actions[1].Pixel, all[0].Actions[1].Pixel)

	corner := sender.updates(t, 2)
	require.Len(t, corner, 1)
	require.Len(t, corner[0].Actions, 1)
	assert.Equal(t, 0, corner[0].Actions[0].XIndex)

	assert.Empty(t, sender.updates(t, 3))
	assert.Empty(t, sender.updates(t, 4))
	assert.Equal(t, 0, updates.Size())
}
