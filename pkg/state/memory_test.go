package state

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cbodonnell/pixelbattles/pkg/battle/processor"
	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryProcessorStore_AddGetRemove(t *testing.T) {
	store := NewInMemoryProcessorStore(NewInMemoryProcessorStoreOptions{})
	gameID := uuid.New()
	p, err := processor.NewSimpleGameProcessor(&types.Game{GameID: gameID, Width: 4, Height: 4})
	require.NoError(t, err)

	hub, err := store.Add(p)
	require.NoError(t, err)
	assert.Same(t, p, hub.Processor)
	assert.NotNil(t, hub.Regions)

	got, err := store.Get(gameID)
	require.NoError(t, err)
	assert.Same(t, hub, got)

	_, err = store.Add(p)
	assert.True(t, IsAlreadyLoaded(err))

	assert.Len(t, store.List(), 1)

	store.Remove(gameID)
	_, err = store.Get(gameID)
	assert.True(t, IsNotLoaded(err))
	assert.Empty(t, store.List())
}

func TestInMemoryProcessorStore_GetOrLoad(t *testing.T) {
	gameID := uuid.New()
	version := int64(3)
	var loads int32
	store := NewInMemoryProcessorStore(NewInMemoryProcessorStoreOptions{
		Loader: func(ctx context.Context, id uuid.UUID) (*types.Game, error) {
			atomic.AddInt32(&loads, 1)
			return &types.Game{GameID: id, Width: 8, Height: 8, Version: &version}, nil
		},
	})

	var wg sync.WaitGroup
	hubs := make([]*Hub, 16)
	for i := range hubs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hub, err := store.GetOrLoad(context.Background(), gameID)
			assert.NoError(t, err)
			hubs[i] = hub
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
	for _, hub := range hubs {
		assert.Same(t, hubs[0], hub)
	}
	assert.Equal(t, &version, hubs[0].Processor.Version())
}

func TestInMemoryProcessorStore_GetOrLoad_errors(t *testing.T) {
	t.Run("no loader", func(t *testing.T) {
		store := NewInMemoryProcessorStore(NewInMemoryProcessorStoreOptions{})
		_, err := store.GetOrLoad(context.Background(), uuid.New())
		assert.True(t, IsNotLoaded(err))
	})

	t.Run("loader fails", func(t *testing.T) {
		store := NewInMemoryProcessorStore(NewInMemoryProcessorStoreOptions{
			Loader: func(ctx context.Context, id uuid.UUID) (*types.Game, error) {
				return nil, errors.New("boom")
			},
		})
		_, err := store.GetOrLoad(context.Background(), uuid.New())
		assert.ErrorContains(t, err, "boom")
		assert.Empty(t, store.List())
	})

	t.Run("malformed raster", func(t *testing.T) {
		store := NewInMemoryProcessorStore(NewInMemoryProcessorStoreOptions{
			Loader: func(ctx context.Context, id uuid.UUID) (*types.Game, error) {
				return &types.Game{GameID: id, Width: 2, Height: 2, State: []byte{1, 2, 3}}, nil
			},
		})
		_, err := store.GetOrLoad(context.Background(), uuid.New())
		assert.Error(t, err)
		assert.Empty(t, store.List())
	})
}
