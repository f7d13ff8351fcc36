package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	mockrepositories "github.com/cbodonnell/pixelbattles/mocks/github.com/cbodonnell/pixelbattles/pkg/repositories"
	"github.com/cbodonnell/pixelbattles/pkg/battle/processor"
	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"github.com/cbodonnell/pixelbattles/pkg/messages"
	"github.com/cbodonnell/pixelbattles/pkg/queue"
	"github.com/cbodonnell/pixelbattles/pkg/repositories"
	"github.com/cbodonnell/pixelbattles/pkg/repositories/models"
	"github.com/cbodonnell/pixelbattles/pkg/state"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestProcessor(t *testing.T, version *int64) *processor.SimpleGameProcessor {
	t.Helper()
	p, err := processor.NewSimpleGameProcessor(&types.Game{GameID: uuid.New(), Width: 4, Height: 4, Version: version})
	require.NoError(t, err)
	return p
}

func place(t *testing.T, p processor.GameProcessor, x, y int, pixel types.Pixel) types.ProcessUserActionCommand {
	t.Helper()
	cmd := types.ProcessUserActionCommand{GameID: p.GameID(), XIndex: x, YIndex: y, Pixel: pixel}
	require.True(t, p.ProcessUserAction(cmd).Succeeded)
	return cmd
}

func TestSaveGameStateWorker_Save_nothingPending(t *testing.T) {
	repository := mockrepositories.NewMockRepository(t)
	updates := queue.NewInMemoryQueue(8)
	worker := NewSaveGameStateWorker(NewSaveGameStateWorkerOptions{Repository: repository, UpdateQueue: updates})

	require.NoError(t, worker.Save(context.Background(), newTestProcessor(t, nil)))

	assert.Equal(t, 0, updates.Size())
}

func TestSaveGameStateWorker_Save(t *testing.T) {
	red := types.NewPixel(255, 0, 0, 255)
	tests := []struct {
		name        string
		version     *int64
		wantVersion int64
	}{
		{"never committed canvas", nil, 1},
		{"committed canvas", func() *int64 { v := int64(7); return &v }(), 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProcessor(t, tt.version)
			first := place(t, p, 0, 0, red)
			second := place(t, p, 1, 2, red)
			before := p.GetGameState()

			repository := mockrepositories.NewMockRepository(t)
			repository.EXPECT().
				SaveGameState(mock.Anything, mock.MatchedBy(func(req *models.SaveGameStateRequest) bool {
					return req.GameID == p.GameID() &&
						req.Version == tt.wantVersion &&
						assert.ObjectsAreEqual(before.State, req.State) &&
						assert.ObjectsAreEqual(before.PendingActions, req.Actions)
				})).
				Return(nil).
				Once()
			updates := queue.NewInMemoryQueue(8)
			worker := NewSaveGameStateWorker(NewSaveGameStateWorkerOptions{Repository: repository, UpdateQueue: updates})

			require.NoError(t, worker.Save(context.Background(), p))

			after := p.GetGameState()
			require.NotNil(t, after.Version)
			assert.Equal(t, tt.wantVersion, *after.Version)
			assert.Empty(t, after.PendingActions)
			assert.Equal(t, before.State, after.State)

			items, err := updates.ReadAllMessages()
			require.NoError(t, err)
			require.Len(t, items, 1)
			update := items[0].(*messages.ServerGameUpdate)
			assert.Equal(t, p.GameID(), update.GameID)
			assert.Equal(t, tt.wantVersion, *update.Version)
			assert.Nil(t, update.State)
			require.Len(t, update.Actions, 2)
			assert.Equal(t, first.XIndex, update.Actions[0].XIndex)
			assert.Equal(t, second.YIndex, update.Actions[1].YIndex)
			for _, action := range update.Actions {
				assert.Equal(t, tt.wantVersion, *action.Version)
			}
		})
	}
}

func TestSaveGameStateWorker_Save_keepsActionsPlacedWhileSaving(t *testing.T) {
	red := types.NewPixel(255, 0, 0, 255)
	blue := types.NewPixel(0, 0, 255, 255)
	p := newTestProcessor(t, nil)
	place(t, p, 0, 0, red)

	var late types.ProcessUserActionCommand
	repository := mockrepositories.NewMockRepository(t)
	repository.EXPECT().
		SaveGameState(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, req *models.SaveGameStateRequest) error {
			late = place(t, p, 3, 3, blue)
			return nil
		}).
		Once()
	worker := NewSaveGameStateWorker(NewSaveGameStateWorkerOptions{Repository: repository})

	require.NoError(t, worker.Save(context.Background(), p))

	after := p.GetGameState()
	assert.Equal(t, []types.PendingAction{types.NewPendingAction(late)}, after.PendingActions)
	assert.Equal(t, int64(1), *after.Version)
}

func TestSaveGameStateWorker_Save_failureKeepsPending(t *testing.T) {
	p := newTestProcessor(t, nil)
	place(t, p, 0, 0, types.DefaultPixel)

	tests := []struct {
		name      string
		err       error
		wantStale bool
	}{
		{"database error", errors.New("connection refused"), false},
		{"stale version", &repositories.ErrStaleVersion{Stored: 3, Requested: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := mockrepositories.NewMockRepository(t)
			repository.EXPECT().SaveGameState(mock.Anything, mock.Anything).Return(tt.err).Once()
			updates := queue.NewInMemoryQueue(8)
			worker := NewSaveGameStateWorker(NewSaveGameStateWorkerOptions{Repository: repository, UpdateQueue: updates})

			err := worker.Save(context.Background(), p)

			assert.Error(t, err)
			assert.Equal(t, tt.wantStale, repositories.IsStaleVersion(err))
			assert.Len(t, p.GetGameState().PendingActions, 1)
			assert.Nil(t, p.Version())
			assert.Equal(t, 0, updates.Size())
		})
	}
}

func TestSaveGameStateWorker_SaveAll(t *testing.T) {
	store := state.NewInMemoryProcessorStore(state.NewInMemoryProcessorStoreOptions{})
	busy := newTestProcessor(t, nil)
	idle := newTestProcessor(t, nil)
	place(t, busy, 1, 1, types.DefaultPixel)
	_, err := store.Add(busy)
	require.NoError(t, err)
	_, err = store.Add(idle)
	require.NoError(t, err)

	repository := mockrepositories.NewMockRepository(t)
	repository.EXPECT().
		SaveGameState(mock.Anything, mock.MatchedBy(func(req *models.SaveGameStateRequest) bool {
			return req.GameID == busy.GameID()
		})).
		Return(nil).
		Once()
	updates := queue.NewInMemoryQueue(8)
	worker := NewSaveGameStateWorker(NewSaveGameStateWorkerOptions{
		Repository:  repository,
		Store:       store,
		UpdateQueue: updates,
	})

	worker.SaveAll(context.Background())

	assert.Equal(t, 1, updates.Size())
	assert.Nil(t, idle.Version())
	assert.Equal(t, int64(1), *busy.Version())
}

func TestSaveGameStateWorker_Start_flushesOnShutdown(t *testing.T) {
	store := state.NewInMemoryProcessorStore(state.NewInMemoryProcessorStoreOptions{})
	p := newTestProcessor(t, nil)
	place(t, p, 0, 0, types.DefaultPixel)
	_, err := store.Add(p)
	require.NoError(t, err)

	repository := mockrepositories.NewMockRepository(t)
	repository.EXPECT().SaveGameState(mock.Anything, mock.Anything).Return(nil).Once()
	worker := NewSaveGameStateWorker(NewSaveGameStateWorkerOptions{
		Repository: repository,
		Store:      store,
		Interval:   time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	worker.Start(ctx)

	assert.Equal(t, int64(1), *p.Version())
	assert.Empty(t, p.GetGameState().PendingActions)
}
