package messages

import (
	"fmt"

	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"github.com/google/uuid"
)

// MessageType identifies the payload carried by a Message.
type MessageType byte

const (
	MessageTypeClientPing MessageType = iota + 1
	MessageTypeServerPong
	MessageTypeClientSubscribe
	MessageTypeClientUnsubscribe
	MessageTypeClientPlacePixel
	MessageTypeServerPlacePixelResult
	MessageTypeServerGameState
	MessageTypeServerGameUpdate
	MessageTypeServerError
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeClientPing:
		return "ping"
	case MessageTypeServerPong:
		return "pong"
	case MessageTypeClientSubscribe:
		return "subscribe"
	case MessageTypeClientUnsubscribe:
		return "unsubscribe"
	case MessageTypeClientPlacePixel:
		return "place_pixel"
	case MessageTypeServerPlacePixelResult:
		return "place_pixel_result"
	case MessageTypeServerGameState:
		return "game_state"
	case MessageTypeServerGameUpdate:
		return "game_update"
	case MessageTypeServerError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", byte(t))
	}
}

// Message represents a generic message for serialization/deserialization
type Message struct {
	ClientID uint32
	Type     MessageType
	Payload  []byte
}

// ClientSubscribe asks to follow a game.
// Version is the last version the client has applied, if any.
// A nil Viewport subscribes to the whole canvas.
type ClientSubscribe struct {
	GameID   uuid.UUID       `json:"gameId"`
	Version  *int64          `json:"version,omitempty"`
	Viewport *types.Viewport `json:"viewport,omitempty"`
}

// ClientPlacePixel places a pixel on the subscribed game.
type ClientPlacePixel struct {
	XIndex int         `json:"x"`
	YIndex int         `json:"y"`
	Pixel  types.Pixel `json:"pixel"`
}

type ServerPlacePixelResult struct {
	types.ProcessUserActionResult
}

type ServerError struct {
	Reason string `json:"reason"`
}

// ServerGameUpdate carries a run of actions for a game.
// State is only set for full game_state messages.
type ServerGameUpdate struct {
	GameID   uuid.UUID
	Version  *int64
	Sequence uint64
	Width    int
	Height   int
	State    []byte
	Actions  []types.PendingAction
}
