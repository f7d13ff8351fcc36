package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPixel_bytesRoundTrip(t *testing.T) {
	b := make([]byte, BytesPerPixel)
	p := NewPixel(1, 2, 3, 4)
	p.PutBytes(b)

	assert.Equal(t, []byte{1, 2, 3, 4}, b)
	assert.Equal(t, p, PixelFromBytes(b))
}

func TestGameState_NextVersion(t *testing.T) {
	v := int64(234)

	assert.Equal(t, int64(1), (&GameState{}).NextVersion())
	assert.Equal(t, int64(235), (&GameState{Version: &v}).NextVersion())
}

func TestValidationFailure(t *testing.T) {
	result := ValidationFailure(ErrorDescriptor{Code: ErrorCodeOutOfBounds, Message: "x"})

	assert.False(t, result.Succeeded)
	assert.Len(t, result.Errors, 1)
	assert.True(t, Success().Succeeded)
	assert.Empty(t, Success().Errors)
}
