package processor

import (
	"bytes"
	"math/rand"
	"sync"
	"testing"

	"github.com/cbodonnell/pixelbattles/pkg/battle/raster"
	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byteImageSample(width, height int) []byte {
	b := make([]byte, width*height*types.BytesPerPixel)
	rand.New(rand.NewSource(1)).Read(b)
	return b
}

func emptyGame(width, height int) *types.Game {
	return &types.Game{
		GameID: uuid.New(),
		Width:  width,
		Height: height,
	}
}

func int64Ptr(v int64) *int64 {
	return &v
}

func newProcessor(t *testing.T, game *types.Game) *SimpleGameProcessor {
	t.Helper()
	p, err := NewSimpleGameProcessor(game)
	require.NoError(t, err)
	return p
}

func TestNewSimpleGameProcessor(t *testing.T) {
	tests := []struct {
		name    string
		game    *types.Game
		wantErr bool
	}{
		{
			name: "empty game",
			game: emptyGame(1000, 1000),
		},
		{
			name: "non-empty game",
			game: &types.Game{
				GameID:  uuid.New(),
				Width:   1000,
				Height:  1000,
				Version: int64Ptr(234),
				State:   byteImageSample(1000, 1000),
			},
		},
		{
			name: "raster too short",
			game: &types.Game{
				GameID: uuid.New(),
				Width:  10,
				Height: 10,
				State:  make([]byte, 10*10*4-1),
			},
			wantErr: true,
		},
		{
			name:    "zero dimensions",
			game:    emptyGame(0, 10),
			wantErr: true,
		},
		{
			name:    "nil game",
			game:    nil,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewSimpleGameProcessor(tt.game)
			if tt.wantErr {
				assert.True(t, IsMalformedState(err), "expected malformed state, got %v", err)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}

func TestSimpleGameProcessor_GetGameState_fromEmptyState(t *testing.T) {
	p := newProcessor(t, emptyGame(1000, 1000))
	assert.False(t, p.Initialized())

	state := p.GetGameState()

	assert.True(t, p.Initialized())
	assert.NotNil(t, state.PendingActions)
	assert.Empty(t, state.PendingActions)
	assert.Nil(t, state.Version)
	assert.Equal(t, raster.Fill(1000, 1000, types.DefaultPixel), state.State)
}

func TestSimpleGameProcessor_GetGameState_fromNonEmptyState(t *testing.T) {
	game := &types.Game{
		GameID:  uuid.New(),
		Width:   1000,
		Height:  1000,
		Version: int64Ptr(234),
		State:   byteImageSample(1000, 1000),
	}
	p := newProcessor(t, game)

	state := p.GetGameState()

	assert.True(t, bytes.Equal(game.State, state.State))
	assert.Empty(t, state.PendingActions)
	require.NotNil(t, state.Version)
	assert.Equal(t, int64(234), *state.Version)
}

func TestSimpleGameProcessor_GetGameState_defaultFill(t *testing.T) {
	p := newProcessor(t, emptyGame(2, 2))

	state := p.GetGameState()

	require.Len(t, state.State, 2*2*4)
	assert.Equal(t, bytes.Repeat([]byte{255, 255, 255, 255}, 4), state.State)
}

func TestSimpleGameProcessor_GetGameState_idempotent(t *testing.T) {
	game := emptyGame(8, 8)
	p := newProcessor(t, game)
	p.ProcessUserAction(types.ProcessUserActionCommand{GameID: game.GameID, XIndex: 1, YIndex: 2, Pixel: types.NewPixel(1, 2, 3, 4)})

	first := p.GetGameState()
	second := p.GetGameState()

	assert.Equal(t, first, second)
	// snapshots do not share buffers
	first.State[0] = 0
	first.PendingActions[0].XIndex = 7
	third := p.GetGameState()
	assert.Equal(t, second, third)
}

func TestSimpleGameProcessor_ProcessUserAction(t *testing.T) {
	game := &types.Game{
		GameID:  uuid.New(),
		Width:   1000,
		Height:  1000,
		Version: int64Ptr(234),
		State:   byteImageSample(1000, 1000),
	}
	p := newProcessor(t, game)
	command := types.ProcessUserActionCommand{
		GameID: game.GameID,
		XIndex: 0,
		YIndex: 0,
		Pixel:  types.NewPixel(255, 255, 255, 255),
	}

	result := p.ProcessUserAction(command)

	assert.True(t, result.Succeeded)
	assert.Empty(t, result.Errors)

	state := p.GetGameState()
	require.Len(t, state.PendingActions, 1)
	action := state.PendingActions[0]
	assert.Nil(t, action.Version)
	assert.Equal(t, game.GameID, action.GameID)
	assert.Equal(t, command.XIndex, action.XIndex)
	assert.Equal(t, command.YIndex, action.YIndex)
	assert.Equal(t, command.Pixel, action.Pixel)
}

func TestSimpleGameProcessor_ProcessUserAction_accumulation(t *testing.T) {
	game := emptyGame(1000, 1000)
	p := newProcessor(t, game)
	command := types.ProcessUserActionCommand{
		GameID: game.GameID,
		XIndex: 0,
		YIndex: 0,
		Pixel:  types.NewPixel(10, 20, 30, 255),
	}

	require.True(t, p.ProcessUserAction(command).Succeeded)

	state := p.GetGameState()
	want := raster.Fill(1000, 1000, types.DefaultPixel)
	copy(want[0:4], []byte{10, 20, 30, 255})
	assert.True(t, bytes.Equal(want, state.State))
	require.Len(t, state.PendingActions, 1)
	assert.Equal(t, types.NewPendingAction(command), state.PendingActions[0])
}

func TestSimpleGameProcessor_ProcessUserAction_rejected(t *testing.T) {
	game := emptyGame(4, 3)
	otherGameID := uuid.New()

	tests := []struct {
		name      string
		command   types.ProcessUserActionCommand
		wantCodes []types.ErrorCode
	}{
		{
			name:      "negative x",
			command:   types.ProcessUserActionCommand{GameID: game.GameID, XIndex: -1, YIndex: 0},
			wantCodes: []types.ErrorCode{types.ErrorCodeOutOfBounds},
		},
		{
			name:      "x equal to width",
			command:   types.ProcessUserActionCommand{GameID: game.GameID, XIndex: 4, YIndex: 0},
			wantCodes: []types.ErrorCode{types.ErrorCodeOutOfBounds},
		},
		{
			name:      "y equal to height",
			command:   types.ProcessUserActionCommand{GameID: game.GameID, XIndex: 0, YIndex: 3},
			wantCodes: []types.ErrorCode{types.ErrorCodeOutOfBounds},
		},
		{
			name:      "both out of bounds",
			command:   types.ProcessUserActionCommand{GameID: game.GameID, XIndex: 10, YIndex: -10},
			wantCodes: []types.ErrorCode{types.ErrorCodeOutOfBounds, types.ErrorCodeOutOfBounds},
		},
		{
			name:      "other canvas",
			command:   types.ProcessUserActionCommand{GameID: otherGameID, XIndex: 0, YIndex: 0},
			wantCodes: []types.ErrorCode{types.ErrorCodeCanvasMismatch},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProcessor(t, game)
			before := p.GetGameState()

			result := p.ProcessUserAction(tt.command)

			assert.False(t, result.Succeeded)
			codes := make([]types.ErrorCode, 0, len(result.Errors))
			for _, e := range result.Errors {
				codes = append(codes, e.Code)
				assert.NotEmpty(t, e.Message)
			}
			assert.Equal(t, tt.wantCodes, codes)

			after := p.GetGameState()
			assert.True(t, bytes.Equal(before.State, after.State))
			assert.Empty(t, after.PendingActions)
		})
	}
}

func TestSimpleGameProcessor_ProcessUserAction_lastWriteWins(t *testing.T) {
	game := emptyGame(5, 5)
	p := newProcessor(t, game)
	a := types.NewPixel(255, 0, 0, 255)
	b := types.NewPixel(0, 0, 255, 255)

	require.True(t, p.ProcessUserAction(types.ProcessUserActionCommand{GameID: game.GameID, XIndex: 3, YIndex: 4, Pixel: a}).Succeeded)
	require.True(t, p.ProcessUserAction(types.ProcessUserActionCommand{GameID: game.GameID, XIndex: 3, YIndex: 4, Pixel: b}).Succeeded)

	state := p.GetGameState()
	offset := ((4 * 5) + 3) * 4
	assert.Equal(t, types.PixelFromBytes(state.State[offset:]), b)
	require.Len(t, state.PendingActions, 2)
	assert.Equal(t, a, state.PendingActions[0].Pixel)
	assert.Equal(t, b, state.PendingActions[1].Pixel)
}

func TestSimpleGameProcessor_Commit_trimsSnapshottedPrefix(t *testing.T) {
	game := emptyGame(10, 10)
	p := newProcessor(t, game)
	for i := 0; i < 3; i++ {
		require.True(t, p.ProcessUserAction(types.ProcessUserActionCommand{GameID: game.GameID, XIndex: i, YIndex: i}).Succeeded)
	}

	s1 := p.GetGameState()
	require.Len(t, s1.PendingActions, 3)

	late := types.ProcessUserActionCommand{GameID: game.GameID, XIndex: 9, YIndex: 9, Pixel: types.NewPixel(1, 1, 1, 1)}
	require.True(t, p.ProcessUserAction(late).Succeeded)

	require.NoError(t, p.Commit(game.GameID, s1.NextVersion(), s1.Sequence))

	state := p.GetGameState()
	require.Len(t, state.PendingActions, 1)
	assert.Equal(t, types.NewPendingAction(late), state.PendingActions[0])
	require.NotNil(t, state.Version)
	assert.Equal(t, int64(1), *state.Version)
	// the raster is not reset by a commit
	assert.Equal(t, types.NewPixel(1, 1, 1, 1), types.PixelFromBytes(state.State[((9*10)+9)*4:]))
}

func TestSimpleGameProcessor_Commit_monotonicVersion(t *testing.T) {
	game := &types.Game{
		GameID:  uuid.New(),
		Width:   3,
		Height:  3,
		Version: int64Ptr(5),
	}
	p := newProcessor(t, game)
	require.True(t, p.ProcessUserAction(types.ProcessUserActionCommand{GameID: game.GameID}).Succeeded)
	s := p.GetGameState()

	for _, v := range []int64{5, 4, 0, -1} {
		err := p.Commit(game.GameID, v, s.Sequence)
		assert.True(t, IsStaleCommit(err), "version %d: expected stale commit, got %v", v, err)
	}
	assert.Equal(t, int64(5), *p.Version())
	assert.Len(t, p.GetGameState().PendingActions, 1)

	require.NoError(t, p.Commit(game.GameID, 6, s.Sequence))
	assert.Equal(t, int64(6), *p.Version())
	assert.Empty(t, p.GetGameState().PendingActions)

	err := p.Commit(game.GameID, 6, s.Sequence)
	assert.True(t, IsStaleCommit(err))
}

func TestSimpleGameProcessor_Commit_otherCanvas(t *testing.T) {
	game := emptyGame(3, 3)
	p := newProcessor(t, game)
	require.True(t, p.ProcessUserAction(types.ProcessUserActionCommand{GameID: game.GameID}).Succeeded)
	s := p.GetGameState()

	err := p.Commit(uuid.New(), 1, s.Sequence)

	assert.True(t, IsCanvasMismatch(err))
	assert.Nil(t, p.Version())
	assert.Len(t, p.GetGameState().PendingActions, 1)
}

func TestSimpleGameProcessor_Commit_neverCommittedAcceptsAnyPositiveVersion(t *testing.T) {
	game := emptyGame(3, 3)
	p := newProcessor(t, game)

	require.NoError(t, p.Commit(game.GameID, 42, 0))
	assert.Equal(t, int64(42), *p.Version())
}

func TestSimpleGameProcessor_Commit_neverCommittedRejectsNonPositiveVersion(t *testing.T) {
	for _, version := range []int64{0, -1, -42} {
		game := emptyGame(3, 3)
		p := newProcessor(t, game)
		require.True(t, p.ProcessUserAction(types.ProcessUserActionCommand{GameID: game.GameID, Pixel: types.DefaultPixel}).Succeeded)
		s := p.GetGameState()

		err := p.Commit(game.GameID, version, s.Sequence)

		assert.True(t, IsStaleCommit(err), "version %d: expected stale commit, got %v", version, err)
		assert.Nil(t, p.Version())
		assert.Len(t, p.GetGameState().PendingActions, 1)
		assert.Equal(t, int64(1), p.GetGameState().NextVersion())
	}
}

func TestSimpleGameProcessor_concurrentSnapshotsAreConsistent(t *testing.T) {
	game := emptyGame(16, 16)
	p := newProcessor(t, game)

	const writers = 8
	const placements = 200

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(w)))
			for i := 0; i < placements; i++ {
				cmd := types.ProcessUserActionCommand{
					GameID: game.GameID,
					XIndex: rng.Intn(16),
					YIndex: rng.Intn(16),
					Pixel:  types.NewPixel(uint8(w), uint8(i), uint8(rng.Intn(256)), 255),
				}
				assert.True(t, p.ProcessUserAction(cmd).Succeeded)
			}
		}(w)
	}

	committed := 0
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			s := p.GetGameState()
			assertSnapshotConsistent(t, s)
			if len(s.PendingActions) > 0 {
				if err := p.Commit(game.GameID, s.NextVersion(), s.Sequence); err == nil {
					committed += len(s.PendingActions)
				}
			}
			select {
			case <-stop:
				return
			default:
			}
		}
	}()

	wg.Wait()
	close(stop)
	<-done

	final := p.GetGameState()
	assertSnapshotConsistent(t, final)
	assert.Equal(t, writers*placements, committed+len(final.PendingActions))
}

// assertSnapshotConsistent checks that the last pending action for every
// coordinate is the color the raster holds there.
func assertSnapshotConsistent(t *testing.T, s *types.GameState) {
	t.Helper()
	last := make(map[[2]int]types.Pixel)
	for _, a := range s.PendingActions {
		last[[2]int{a.XIndex, a.YIndex}] = a.Pixel
	}
	for c, px := range last {
		offset := ((c[1] * s.Width) + c[0]) * types.BytesPerPixel
		if !assert.Equal(t, px, types.PixelFromBytes(s.State[offset:]), "coordinate %v", c) {
			return
		}
	}
}
