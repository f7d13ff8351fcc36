package regions

import (
	"fmt"
	"sync"

	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"github.com/solarlune/resolv"
)

const (
	// DefaultCellSize is the edge length in pixels of a region cell.
	DefaultCellSize = 64

	tagViewer = "viewer"
)

// Space groups the viewers of one canvas by the regions they watch,
// so an action only fans out to viewers whose viewport covers it.
type Space struct {
	lock    sync.RWMutex
	width   int
	height  int
	space   *resolv.Space
	viewers map[uint32]*viewer
}

type viewer struct {
	viewport types.Viewport
	object   *resolv.Object
}

type NewSpaceOptions struct {
	Width    int
	Height   int
	CellSize int
}

func NewSpace(opts NewSpaceOptions) *Space {
	cellSize := opts.CellSize
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Space{
		width:   opts.Width,
		height:  opts.Height,
		space:   resolv.NewSpace(roundUp(opts.Width, cellSize), roundUp(opts.Height, cellSize), cellSize, cellSize),
		viewers: make(map[uint32]*viewer),
	}
}

// roundUp keeps trailing partial cells addressable.
func roundUp(n, cellSize int) int {
	return ((n + cellSize - 1) / cellSize) * cellSize
}

// Subscribe registers a viewer for the given viewport, replacing any previous one.
// A nil viewport watches the whole canvas.
func (s *Space) Subscribe(clientID uint32, viewport *types.Viewport) error {
	full := types.Viewport{X: 0, Y: 0, Width: s.width, Height: s.height}
	if viewport == nil {
		viewport = &full
	}
	clipped, ok := viewport.Clip(s.width, s.height)
	if !ok {
		return fmt.Errorf("viewport %+v does not intersect a %dx%d canvas", *viewport, s.width, s.height)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.removeLocked(clientID)

	object := resolv.NewObject(float64(clipped.X), float64(clipped.Y), float64(clipped.Width), float64(clipped.Height), tagViewer)
	object.Data = clientID
	s.space.Add(object)
	s.viewers[clientID] = &viewer{viewport: clipped, object: object}

	return nil
}

// Unsubscribe removes a viewer. Unknown ids are ignored.
func (s *Space) Unsubscribe(clientID uint32) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.removeLocked(clientID)
}

func (s *Space) removeLocked(clientID uint32) {
	v, ok := s.viewers[clientID]
	if !ok {
		return
	}
	s.space.Remove(v.object)
	delete(s.viewers, clientID)
}

// Len returns the number of subscribed viewers.
func (s *Space) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.viewers)
}

// Viewers returns the ids of all subscribed viewers.
func (s *Space) Viewers() []uint32 {
	s.lock.RLock()
	defer s.lock.RUnlock()
	ids := make([]uint32, 0, len(s.viewers))
	for id := range s.viewers {
		ids = append(ids, id)
	}
	return ids
}

// Route returns, per viewer, the actions that fall inside its viewport, in input order.
// Viewers with no matching action are omitted.
func (s *Space) Route(actions []types.PendingAction) map[uint32][]types.PendingAction {
	s.lock.RLock()
	defer s.lock.RUnlock()

	routed := make(map[uint32][]types.PendingAction)
	for _, action := range actions {
		cx, cy := s.space.WorldToSpace(float64(action.XIndex), float64(action.YIndex))
		cell := s.space.Cell(cx, cy)
		if cell == nil {
			continue
		}
		for _, object := range cell.Objects {
			clientID, ok := object.Data.(uint32)
			if !ok {
				continue
			}
			v, ok := s.viewers[clientID]
			if !ok || !v.viewport.Contains(action.XIndex, action.YIndex) {
				continue
			}
			routed[clientID] = append(routed[clientID], action)
		}
	}

	return routed
}
