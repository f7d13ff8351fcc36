package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"github.com/cbodonnell/pixelbattles/pkg/log"
	"github.com/cbodonnell/pixelbattles/pkg/messages"
	"github.com/cbodonnell/pixelbattles/pkg/network"
	"github.com/cbodonnell/pixelbattles/pkg/version"
	"github.com/google/uuid"
	"nhooyr.io/websocket"
)

// Bot places random pixels on a single game.
type Bot struct {
	conn   *websocket.Conn
	gameID uuid.UUID
	// size is packed as width<<32 | height once the first game state arrives
	size     atomic.Uint64
	accepted atomic.Int64
	rejected atomic.Int64
}

func main() {
	serverAddr := flag.String("server", "ws://localhost:8888", "WebSocket server address")
	gameIDFlag := flag.String("game", "", "ID of the game to play")
	token := flag.String("token", "", "Bearer token sent on connect")
	rate := flag.Duration("rate", 100*time.Millisecond, "Interval between placed pixels")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Starting bot version %s", version.Get())

	gameID, err := uuid.Parse(*gameIDFlag)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse game ID: %v", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialOpts := &websocket.DialOptions{}
	if *token != "" {
		dialOpts.HTTPHeader = http.Header{"Authorization": []string{"Bearer " + *token}}
	}
	log.Info("Connecting to WebSocket server at %s", *serverAddr)
	conn, _, err := websocket.Dial(ctx, *serverAddr, dialOpts)
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to server: %v", err))
	}
	conn.SetReadLimit(-1)
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	bot := &Bot{conn: conn, gameID: gameID}
	if err := bot.subscribe(ctx); err != nil {
		panic(fmt.Sprintf("Failed to subscribe: %v", err))
	}

	go bot.place(ctx, *rate)

	if err := bot.HandleMessages(ctx); err != nil && ctx.Err() == nil {
		log.Error("Connection closed: %v", err)
	}
	log.Info("Bot stopped: %d accepted, %d rejected", bot.accepted.Load(), bot.rejected.Load())
}

func (b *Bot) send(ctx context.Context, messageType messages.MessageType, payload interface{}) error {
	p, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %v", messageType, err)
	}
	return network.WriteMessageToWS(ctx, b.conn, &messages.Message{
		Type:    messageType,
		Payload: p,
	})
}

func (b *Bot) subscribe(ctx context.Context) error {
	return b.send(ctx, messages.MessageTypeClientSubscribe, &messages.ClientSubscribe{GameID: b.gameID})
}

func (b *Bot) place(ctx context.Context, rate time.Duration) {
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			size := b.size.Load()
			if size == 0 {
				continue
			}
			width, height := int(size>>32), int(uint32(size))
			req := &messages.ClientPlacePixel{
				XIndex: rand.Intn(width),
				YIndex: rand.Intn(height),
				Pixel:  types.NewPixel(uint8(rand.Intn(256)), uint8(rand.Intn(256)), uint8(rand.Intn(256)), 255),
			}
			if err := b.send(ctx, messages.MessageTypeClientPlacePixel, req); err != nil {
				log.Error("Failed to place pixel: %v", err)
			}
		}
	}
}

// HandleMessages reads server messages until the connection or ctx is closed.
func (b *Bot) HandleMessages(ctx context.Context) error {
	for {
		msg, err := network.ReadMessageFromWS(ctx, b.conn)
		if err != nil {
			return err
		}
		if err := b.handleMessage(msg); err != nil {
			log.Error("Failed to handle message: %v", err)
		}
	}
}

func (b *Bot) handleMessage(msg *messages.Message) error {
	log.Trace("Received message from WebSocket server of type %s", msg.Type)

	switch msg.Type {
	case messages.MessageTypeServerGameState:
		update, err := messages.DeserializeGameUpdate(msg.Payload)
		if err != nil {
			return fmt.Errorf("failed to deserialize game state: %v", err)
		}
		b.size.Store(uint64(update.Width)<<32 | uint64(uint32(update.Height)))
		log.Info("Received %dx%d game state at version %s with %d pending actions", update.Width, update.Height, formatVersion(update.Version), len(update.Actions))
	case messages.MessageTypeServerGameUpdate:
		update, err := messages.DeserializeGameUpdate(msg.Payload)
		if err != nil {
			return fmt.Errorf("failed to deserialize game update: %v", err)
		}
		if b.size.Load() == 0 {
			b.size.Store(uint64(update.Width)<<32 | uint64(uint32(update.Height)))
		}
		log.Debug("Received %d actions at version %s", len(update.Actions), formatVersion(update.Version))
	case messages.MessageTypeServerPlacePixelResult:
		result := &messages.ServerPlacePixelResult{}
		if err := json.Unmarshal(msg.Payload, result); err != nil {
			return fmt.Errorf("failed to deserialize place pixel result: %v", err)
		}
		if result.Succeeded {
			b.accepted.Add(1)
		} else {
			b.rejected.Add(1)
			log.Warn("Pixel rejected: %v", result.Errors)
		}
	case messages.MessageTypeServerError:
		serverError := &messages.ServerError{}
		if err := json.Unmarshal(msg.Payload, serverError); err != nil {
			return fmt.Errorf("failed to deserialize server error: %v", err)
		}
		log.Warn("Server error: %s", serverError.Reason)
	case messages.MessageTypeServerPong:
		log.Debug("Received server pong")
	default:
		return fmt.Errorf("received unexpected message type from WebSocket server: %s", msg.Type)
	}
	return nil
}

func formatVersion(v *int64) string {
	if v == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *v)
}
