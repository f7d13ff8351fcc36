package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/cbodonnell/pixelbattles/pkg/battle/processor"
	"github.com/cbodonnell/pixelbattles/pkg/log"
	"github.com/cbodonnell/pixelbattles/pkg/regions"
	"github.com/google/uuid"
)

var _ ProcessorStore = &InMemoryProcessorStore{}

type InMemoryProcessorStore struct {
	lock     sync.RWMutex
	hubs     map[uuid.UUID]*Hub
	loader   GameLoader
	cellSize int
	// loading serializes loads of the same canvas
	loading sync.Mutex
}

type NewInMemoryProcessorStoreOptions struct {
	// Loader is used by GetOrLoad. It may be nil if canvases are only added explicitly.
	Loader GameLoader
	// RegionCellSize is the cell size of each canvas's region space.
	RegionCellSize int
}

func NewInMemoryProcessorStore(opts NewInMemoryProcessorStoreOptions) *InMemoryProcessorStore {
	return &InMemoryProcessorStore{
		hubs:     make(map[uuid.UUID]*Hub),
		loader:   opts.Loader,
		cellSize: opts.RegionCellSize,
	}
}

func (s *InMemoryProcessorStore) Get(gameID uuid.UUID) (*Hub, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	hub, ok := s.hubs[gameID]
	if !ok {
		return nil, &ErrNotLoaded{GameID: gameID}
	}
	return hub, nil
}

func (s *InMemoryProcessorStore) GetOrLoad(ctx context.Context, gameID uuid.UUID) (*Hub, error) {
	if hub, err := s.Get(gameID); err == nil {
		return hub, nil
	}
	if s.loader == nil {
		return nil, &ErrNotLoaded{GameID: gameID}
	}

	s.loading.Lock()
	defer s.loading.Unlock()

	if hub, err := s.Get(gameID); err == nil {
		return hub, nil
	}

	game, err := s.loader(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game %s: %w", gameID, err)
	}

	p, err := processor.NewSimpleGameProcessor(game)
	if err != nil {
		return nil, fmt.Errorf("failed to create processor for game %s: %v", gameID, err)
	}

	hub, err := s.Add(p)
	if err != nil {
		return nil, err
	}
	log.Info("Loaded game %s (%dx%d)", gameID, game.Width, game.Height)

	return hub, nil
}

func (s *InMemoryProcessorStore) Add(p processor.GameProcessor) (*Hub, error) {
	width, height := p.Size()
	hub := &Hub{
		Processor: p,
		Regions: regions.NewSpace(regions.NewSpaceOptions{
			Width:    width,
			Height:   height,
			CellSize: s.cellSize,
		}),
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.hubs[p.GameID()]; ok {
		return nil, &ErrAlreadyLoaded{GameID: p.GameID()}
	}
	s.hubs[p.GameID()] = hub

	return hub, nil
}

func (s *InMemoryProcessorStore) Remove(gameID uuid.UUID) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.hubs, gameID)
}

func (s *InMemoryProcessorStore) List() []*Hub {
	s.lock.RLock()
	defer s.lock.RUnlock()
	hubs := make([]*Hub, 0, len(s.hubs))
	for _, hub := range s.hubs {
		hubs = append(hubs, hub)
	}
	return hubs
}
