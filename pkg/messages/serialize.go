package messages

import (
	"fmt"

	gameupdatefb "github.com/cbodonnell/pixelbattles/flatbuffers/gameupdate"
	messagefb "github.com/cbodonnell/pixelbattles/flatbuffers/message"
	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

const (
	// MaxMessageSize bounds a decompressed message. The largest one is the game state
	// of a 4096x4096 canvas with its pending actions.
	MaxMessageSize = 96 << 20
	// MaxClientMessageSize bounds a decompressed message sent by a client.
	MaxClientMessageSize = 64 << 10
)

var (
	encoder, _       = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	decoder, _       = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxMessageSize))
	clientDecoder, _ = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxClientMessageSize))
)

func SerializeMessage(m *Message) ([]byte, error) {
	b, err := SerializeMessageFlatbuffer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize message: %v", err)
	}

	return encoder.EncodeAll(b, nil), nil
}

// DeserializeMessage decodes a message of any size up to MaxMessageSize.
func DeserializeMessage(data []byte) (*Message, error) {
	return deserializeMessage(decoder, data)
}

// DeserializeClientMessage decodes a message received from a client,
// rejecting any that decompresses past MaxClientMessageSize.
func DeserializeClientMessage(data []byte) (*Message, error) {
	return deserializeMessage(clientDecoder, data)
}

func deserializeMessage(decoder *zstd.Decoder, data []byte) (*Message, error) {
	b, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress message: %v", err)
	}

	message, err := DeserializeMessageFlatbuffer(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}

	return message, nil
}

func SerializeMessageFlatbuffer(m *Message) ([]byte, error) {
	builder := flatbuffers.NewBuilder(len(m.Payload) + 32)

	payload := builder.CreateByteVector(m.Payload)

	messagefb.MessageStart(builder)
	messagefb.MessageAddClientId(builder, m.ClientID)
	messagefb.MessageAddType(builder, byte(m.Type))
	messagefb.MessageAddPayload(builder, payload)
	messageOffset := messagefb.MessageEnd(builder)
	builder.Finish(messageOffset)

	return builder.FinishedBytes(), nil
}

func DeserializeMessageFlatbuffer(b []byte) (m *Message, err error) {
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("message buffer too short: %d bytes", len(b))
	}
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, fmt.Errorf("malformed message buffer: %v", r)
		}
	}()

	messageFlatbuffer := messagefb.GetRootAsMessage(b, 0)
	message := &Message{
		ClientID: messageFlatbuffer.ClientId(),
		Type:     MessageType(messageFlatbuffer.Type()),
		Payload:  messageFlatbuffer.PayloadBytes(),
	}

	return message, nil
}

func SerializeGameUpdate(update *ServerGameUpdate) ([]byte, error) {
	builder := flatbuffers.NewBuilder(len(update.State) + len(update.Actions)*12 + 64)
	gameUpdate := SerializeGameUpdateFlatbuffer(builder, update)
	builder.Finish(gameUpdate)
	return builder.FinishedBytes(), nil
}

func DeserializeGameUpdate(b []byte) (*ServerGameUpdate, error) {
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("game update buffer too short: %d bytes", len(b))
	}

	gameUpdate, err := DeserializeGameUpdateFlatbuffer(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize game update: %v", err)
	}

	return gameUpdate, nil
}

func SerializeGameUpdateFlatbuffer(builder *flatbuffers.Builder, update *ServerGameUpdate) flatbuffers.UOffsetT {
	gameID := builder.CreateByteVector(update.GameID[:])

	var state flatbuffers.UOffsetT
	if update.State != nil {
		state = builder.CreateByteVector(update.State)
	}

	gameupdatefb.GameUpdateStartActionsVector(builder, len(update.Actions))
	for i := len(update.Actions) - 1; i >= 0; i-- {
		a := update.Actions[i]
		gameupdatefb.CreatePixelAction(builder, int32(a.XIndex), int32(a.YIndex), a.Pixel.R, a.Pixel.G, a.Pixel.B, a.Pixel.A)
	}
	actions := builder.EndVector(len(update.Actions))

	gameupdatefb.GameUpdateStart(builder)
	gameupdatefb.GameUpdateAddGameId(builder, gameID)
	if update.Version != nil {
		gameupdatefb.GameUpdateAddVersion(builder, *update.Version)
		gameupdatefb.GameUpdateAddHasVersion(builder, true)
	}
	gameupdatefb.GameUpdateAddSequence(builder, update.Sequence)
	gameupdatefb.GameUpdateAddWidth(builder, int32(update.Width))
	gameupdatefb.GameUpdateAddHeight(builder, int32(update.Height))
	if update.State != nil {
		gameupdatefb.GameUpdateAddState(builder, state)
	}
	gameupdatefb.GameUpdateAddActions(builder, actions)
	return gameupdatefb.GameUpdateEnd(builder)
}

func DeserializeGameUpdateFlatbuffer(b []byte) (update *ServerGameUpdate, err error) {
	defer func() {
		if r := recover(); r != nil {
			update, err = nil, fmt.Errorf("malformed game update buffer: %v", r)
		}
	}()

	fb := gameupdatefb.GetRootAsGameUpdate(b, 0)

	gameID, err := uuid.FromBytes(fb.GameIdBytes())
	if err != nil {
		return nil, fmt.Errorf("failed to parse game id: %v", err)
	}

	update = &ServerGameUpdate{
		GameID:   gameID,
		Sequence: fb.Sequence(),
		Width:    int(fb.Width()),
		Height:   int(fb.Height()),
	}
	if fb.HasVersion() {
		version := fb.Version()
		update.Version = &version
	}
	if state := fb.StateBytes(); state != nil {
		update.State = make([]byte, len(state))
		copy(update.State, state)
	}

	update.Actions = make([]types.PendingAction, 0, fb.ActionsLength())
	action := &gameupdatefb.PixelAction{}
	for i := 0; i < fb.ActionsLength(); i++ {
		if !fb.Actions(action, i) {
			return nil, fmt.Errorf("failed to get action at index %d", i)
		}
		update.Actions = append(update.Actions, types.PendingAction{
			GameID: gameID,
			XIndex: int(action.X()),
			YIndex: int(action.Y()),
			Pixel:  types.NewPixel(action.R(), action.G(), action.B(), action.A()),
		})
	}

	return update, nil
}
