package messages

import (
	"encoding/json"
	"testing"

	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeMessage(t *testing.T) {
	payload, err := json.Marshal(&ClientPlacePixel{XIndex: 3, YIndex: 4, Pixel: types.NewPixel(1, 2, 3, 4)})
	require.NoError(t, err)

	tests := []struct {
		name    string
		message *Message
	}{
		{
			name:    "ping without payload",
			message: &Message{ClientID: 7, Type: MessageTypeClientPing, Payload: []byte{}},
		},
		{
			name:    "place pixel",
			message: &Message{ClientID: 42, Type: MessageTypeClientPlacePixel, Payload: payload},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := SerializeMessage(tt.message)
			require.NoError(t, err)

			got, err := DeserializeMessage(b)
			require.NoError(t, err)
			assert.Equal(t, tt.message, got)
		})
	}
}

func TestDeserializeMessage_invalid(t *testing.T) {
	_, err := DeserializeMessage([]byte("definitely not zstd"))
	assert.Error(t, err)
}

func TestDeserializeClientMessage_sizeLimit(t *testing.T) {
	small := &Message{ClientID: 1, Type: MessageTypeClientPing, Payload: []byte{}}
	b, err := SerializeMessage(small)
	require.NoError(t, err)
	got, err := DeserializeClientMessage(b)
	require.NoError(t, err)
	assert.Equal(t, small, got)

	// zeros compress to a few bytes but expand past the client limit
	bomb := &Message{ClientID: 1, Type: MessageTypeClientPlacePixel, Payload: make([]byte, 4*MaxClientMessageSize)}
	b, err = SerializeMessage(bomb)
	require.NoError(t, err)
	require.Less(t, len(b), 1024)

	_, err = DeserializeClientMessage(b)
	assert.Error(t, err)

	got, err = DeserializeMessage(b)
	require.NoError(t, err)
	assert.Len(t, got.Payload, 4*MaxClientMessageSize)
}

func TestSerializeDeserializeGameUpdate(t *testing.T) {
	gameID := uuid.New()
	version := int64(12)
	actions := []types.PendingAction{
		{GameID: gameID, XIndex: 0, YIndex: 0, Pixel: types.NewPixel(255, 0, 0, 255)},
		{GameID: gameID, XIndex: 1, YIndex: 1, Pixel: types.NewPixel(0, 255, 0, 128)},
	}

	tests := []struct {
		name   string
		update *ServerGameUpdate
	}{
		{
			name: "full state of a never committed canvas",
			update: &ServerGameUpdate{
				GameID:   gameID,
				Sequence: 2,
				Width:    2,
				Height:   2,
				State:    []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
				Actions:  actions,
			},
		},
		{
			name: "committed delta without raster",
			update: &ServerGameUpdate{
				GameID:  gameID,
				Version: &version,
				Width:   2,
				Height:  2,
				Actions: actions,
			},
		},
		{
			name: "no actions",
			update: &ServerGameUpdate{
				GameID:  gameID,
				Version: &version,
				Width:   2,
				Height:  2,
				Actions: []types.PendingAction{},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := SerializeGameUpdate(tt.update)
			require.NoError(t, err)

			got, err := DeserializeGameUpdate(b)
			require.NoError(t, err)
			assert.Equal(t, tt.update, got)
		})
	}
}

func TestMessageType_String(t *testing.T) {
	assert.Equal(t, "place_pixel", MessageTypeClientPlacePixel.String())
	assert.Equal(t, "game_update", MessageTypeServerGameUpdate.String())
	assert.Equal(t, "unknown(200)", MessageType(200).String())
}
