package network

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	authproviders "github.com/cbodonnell/pixelbattles/pkg/auth/providers"
	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"github.com/cbodonnell/pixelbattles/pkg/log"
	"github.com/cbodonnell/pixelbattles/pkg/messages"
	"github.com/cbodonnell/pixelbattles/pkg/repositories"
	"github.com/cbodonnell/pixelbattles/pkg/repositories/models"
	"github.com/cbodonnell/pixelbattles/pkg/state"
	"github.com/google/uuid"
	"nhooyr.io/websocket"
)

const (
	// DefaultMaxCatchUpActions bounds the committed actions replayed to a subscriber
	// before falling back to a full game state.
	DefaultMaxCatchUpActions = 10000
	// AnonymousUserID is the user of connections accepted without an auth provider
	AnonymousUserID = "anonymous"
)

type NetworkManager struct {
	AuthProvider      authproviders.AuthProvider
	ClientManager     *ClientManager
	Store             state.ProcessorStore
	Repository        repositories.Repository
	WSServer          *WSServer
	MaxCatchUpActions int

	battlesLock sync.RWMutex
	battles     map[uuid.UUID]*models.Battle
	viewersLock sync.Mutex
	viewers     map[uint32]*viewer
	now         func() time.Time
}

// viewer orders what a subscribed client receives: its catch-up first, then only
// the committed batches that end after the log position the catch-up reflects.
type viewer struct {
	lock     sync.Mutex
	gameID   uuid.UUID
	sequence uint64
	ready    bool
}

type NewNetworkManagerOptions struct {
	// AuthProvider is optional. When set, connections must carry a valid token.
	AuthProvider      authproviders.AuthProvider
	ClientManager     *ClientManager
	Store             state.ProcessorStore
	Repository        repositories.Repository
	WSPort            int
	WSServerTLS       *TLSConfig
	MaxCatchUpActions int
}

func NewNetworkManager(options NewNetworkManagerOptions) *NetworkManager {
	maxCatchUp := options.MaxCatchUpActions
	if maxCatchUp <= 0 {
		maxCatchUp = DefaultMaxCatchUpActions
	}
	return &NetworkManager{
		AuthProvider:      options.AuthProvider,
		ClientManager:     options.ClientManager,
		Store:             options.Store,
		Repository:        options.Repository,
		MaxCatchUpActions: maxCatchUp,
		WSServer: NewWSServer(NewWSServerOptions{
			Port: options.WSPort,
			TLS:  options.WSServerTLS,
		}),
		battles: make(map[uuid.UUID]*models.Battle),
		viewers: make(map[uint32]*viewer),
		now:     time.Now,
	}
}

func (n *NetworkManager) Start(ctx context.Context) {
	go n.WSServer.Start(ctx, n.handleConnect, n.handleDisconnect, n.handleMessage)
}

// Handler returns the WebSocket handler without starting a listener.
func (n *NetworkManager) Handler(ctx context.Context) http.Handler {
	return n.WSServer.Handler(ctx, n.handleConnect, n.handleDisconnect, n.handleMessage)
}

func (n *NetworkManager) handleConnect(ctx context.Context, r *http.Request, conn *websocket.Conn) (uint32, error) {
	userID := AnonymousUserID
	if n.AuthProvider != nil {
		token := parseToken(r)
		if token == "" {
			return 0, fmt.Errorf("missing token")
		}
		claims, err := n.AuthProvider.VerifyToken(ctx, token)
		if err != nil {
			return 0, fmt.Errorf("failed to verify token: %v", err)
		}
		userID = claims.UID
	}

	clientID, err := n.ClientManager.ConnectClient(conn, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to connect client: %v", err)
	}
	log.Info("Client %d connected as %s", clientID, userID)

	return clientID, nil
}

// parseToken reads the bearer token from the Authorization header or the token query parameter,
// since browsers cannot set headers on WebSocket requests.
func parseToken(r *http.Request) string {
	if parts := strings.Split(r.Header.Get("Authorization"), " "); len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return r.URL.Query().Get("token")
}

func (n *NetworkManager) handleDisconnect(clientID uint32) {
	n.removeViewer(clientID)
	if client, err := n.ClientManager.GetClient(clientID); err == nil && client.GameID != nil {
		n.unsubscribeRegions(clientID, *client.GameID)
	}
	n.ClientManager.DisconnectClient(clientID)
	log.Info("Client %d disconnected", clientID)
}

func (n *NetworkManager) getViewer(clientID uint32) *viewer {
	n.viewersLock.Lock()
	defer n.viewersLock.Unlock()
	return n.viewers[clientID]
}

func (n *NetworkManager) getOrCreateViewer(clientID uint32) *viewer {
	n.viewersLock.Lock()
	defer n.viewersLock.Unlock()
	v, ok := n.viewers[clientID]
	if !ok {
		v = &viewer{}
		n.viewers[clientID] = v
	}
	return v
}

func (n *NetworkManager) removeViewer(clientID uint32) {
	n.viewersLock.Lock()
	defer n.viewersLock.Unlock()
	delete(n.viewers, clientID)
}

func (n *NetworkManager) handleMessage(ctx context.Context, clientID uint32, message *messages.Message) {
	log.Trace("Received %s message from client %d", message.Type, clientID)

	var err error
	switch message.Type {
	case messages.MessageTypeClientPing:
		err = n.handleClientPing(ctx, clientID)
	case messages.MessageTypeClientSubscribe:
		err = n.handleClientSubscribe(ctx, clientID, message)
	case messages.MessageTypeClientUnsubscribe:
		err = n.handleClientUnsubscribe(ctx, clientID)
	case messages.MessageTypeClientPlacePixel:
		err = n.handleClientPlacePixel(ctx, clientID, message)
	default:
		err = fmt.Errorf("unsupported message type %s", message.Type)
	}

	if err != nil {
		log.Warn("Failed to handle %s message from client %d: %v", message.Type, clientID, err)
		if err := n.sendServerError(ctx, clientID, err.Error()); err != nil {
			log.Error("Failed to send server error: %v", err)
		}
	}
}

func (n *NetworkManager) handleClientPing(ctx context.Context, clientID uint32) error {
	msg := &messages.Message{
		ClientID: clientID,
		Type:     messages.MessageTypeServerPong,
	}
	if err := n.SendMessageToClient(ctx, clientID, msg); err != nil {
		return fmt.Errorf("failed to write pong message to client: %v", err)
	}
	return nil
}

func (n *NetworkManager) handleClientSubscribe(ctx context.Context, clientID uint32, message *messages.Message) error {
	subscribe := &messages.ClientSubscribe{}
	if err := json.Unmarshal(message.Payload, subscribe); err != nil {
		return fmt.Errorf("failed to unmarshal subscribe: %v", err)
	}

	hub, err := n.Store.GetOrLoad(ctx, subscribe.GameID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return fmt.Errorf("game %s not found", subscribe.GameID)
		}
		return fmt.Errorf("failed to load game %s: %v", subscribe.GameID, err)
	}

	// broadcasts to this client wait until its catch-up is written
	v := n.getOrCreateViewer(clientID)
	v.lock.Lock()
	defer v.lock.Unlock()
	v.gameID = subscribe.GameID
	v.ready = false

	previous, err := n.ClientManager.SetGameID(clientID, &subscribe.GameID)
	if err != nil {
		return err
	}
	if previous != nil && *previous != subscribe.GameID {
		n.unsubscribeRegions(clientID, *previous)
	}

	if err := hub.Regions.Subscribe(clientID, subscribe.Viewport); err != nil {
		n.ClientManager.SetGameID(clientID, nil)
		return fmt.Errorf("failed to subscribe to regions: %v", err)
	}
	log.Debug("Client %d subscribed to game %s", clientID, subscribe.GameID)

	sequence, err := n.sendCatchUp(ctx, clientID, hub, subscribe.Version)
	if err != nil {
		return err
	}
	v.sequence = sequence
	v.ready = true
	return nil
}

// sendCatchUp brings a new subscriber up to date. A client that knows version V and
// is not too far behind gets the committed actions after V followed by the pending ones,
// anyone else gets the full raster. It returns the log position the catch-up reflects.
func (n *NetworkManager) sendCatchUp(ctx context.Context, clientID uint32, hub *state.Hub, since *int64) (uint64, error) {
	// committed actions are read up to the snapshot's version so that batches committed
	// after the snapshot, which may hold newer writes than its pending actions, are not replayed
	snapshot := hub.Processor.GetGameState()

	if since != nil && snapshot.Version != nil && *since <= *snapshot.Version && n.Repository != nil {
		committed, err := n.Repository.ListActionsSince(ctx, snapshot.GameID, since, snapshot.Version, n.MaxCatchUpActions+1)
		if err != nil {
			log.Warn("Failed to list actions since %d for game %s, sending full state: %v", *since, snapshot.GameID, err)
		} else if len(committed) <= n.MaxCatchUpActions {
			actions := make([]types.PendingAction, 0, len(committed)+len(snapshot.PendingActions))
			actions = append(actions, committed...)
			actions = append(actions, snapshot.PendingActions...)
			return snapshot.Sequence, n.sendGameUpdate(ctx, clientID, messages.MessageTypeServerGameUpdate, &messages.ServerGameUpdate{
				GameID:   snapshot.GameID,
				Version:  snapshot.Version,
				Sequence: snapshot.Sequence,
				Width:    snapshot.Width,
				Height:   snapshot.Height,
				Actions:  actions,
			})
		}
	}

	return snapshot.Sequence, n.sendGameUpdate(ctx, clientID, messages.MessageTypeServerGameState, &messages.ServerGameUpdate{
		GameID:   snapshot.GameID,
		Version:  snapshot.Version,
		Sequence: snapshot.Sequence,
		Width:    snapshot.Width,
		Height:   snapshot.Height,
		State:    snapshot.State,
		Actions:  snapshot.PendingActions,
	})
}

func (n *NetworkManager) handleClientUnsubscribe(ctx context.Context, clientID uint32) error {
	n.removeViewer(clientID)
	previous, err := n.ClientManager.SetGameID(clientID, nil)
	if err != nil {
		return err
	}
	if previous != nil {
		n.unsubscribeRegions(clientID, *previous)
		log.Debug("Client %d unsubscribed from game %s", clientID, *previous)
	}
	return nil
}

// unsubscribeRegions removes a client from the region space of a game, if loaded.
func (n *NetworkManager) unsubscribeRegions(clientID uint32, gameID uuid.UUID) {
	hub, err := n.Store.Get(gameID)
	if err != nil {
		return
	}
	hub.Regions.Unsubscribe(clientID)
}

func (n *NetworkManager) handleClientPlacePixel(ctx context.Context, clientID uint32, message *messages.Message) error {
	placePixel := &messages.ClientPlacePixel{}
	if err := json.Unmarshal(message.Payload, placePixel); err != nil {
		return fmt.Errorf("failed to unmarshal place pixel: %v", err)
	}

	client, err := n.ClientManager.GetClient(clientID)
	if err != nil {
		return err
	}
	if client.GameID == nil {
		return fmt.Errorf("client is not subscribed to a game")
	}

	active, err := n.isBattleActive(ctx, *client.GameID)
	if err != nil {
		return fmt.Errorf("failed to check battle: %v", err)
	}
	if !active {
		return fmt.Errorf("battle is not active")
	}

	hub, err := n.Store.Get(*client.GameID)
	if err != nil {
		return err
	}

	result := hub.Processor.ProcessUserAction(types.ProcessUserActionCommand{
		GameID: *client.GameID,
		XIndex: placePixel.XIndex,
		YIndex: placePixel.YIndex,
		Pixel:  placePixel.Pixel,
	})

	payload, err := json.Marshal(&messages.ServerPlacePixelResult{ProcessUserActionResult: result})
	if err != nil {
		return fmt.Errorf("failed to marshal place pixel result: %v", err)
	}
	msg := &messages.Message{
		ClientID: clientID,
		Type:     messages.MessageTypeServerPlacePixelResult,
		Payload:  payload,
	}
	if err := n.SendMessageToClient(ctx, clientID, msg); err != nil {
		return fmt.Errorf("failed to send place pixel result: %v", err)
	}

	return nil
}

// isBattleActive checks the battle schedule of a game. Battles are immutable once
// created, so they are cached. Games without a battle are always open.
func (n *NetworkManager) isBattleActive(ctx context.Context, gameID uuid.UUID) (bool, error) {
	if n.Repository == nil {
		return true, nil
	}

	n.battlesLock.RLock()
	battle, ok := n.battles[gameID]
	n.battlesLock.RUnlock()

	if !ok {
		b, err := n.Repository.GetBattleByGameID(ctx, gameID)
		if err != nil {
			if repositories.IsNotFound(err) {
				return true, nil
			}
			return false, err
		}
		battle = b
		n.battlesLock.Lock()
		n.battles[gameID] = battle
		n.battlesLock.Unlock()
	}

	return battle.IsActive(n.now()), nil
}

func (n *NetworkManager) sendGameUpdate(ctx context.Context, clientID uint32, messageType messages.MessageType, update *messages.ServerGameUpdate) error {
	payload, err := messages.SerializeGameUpdate(update)
	if err != nil {
		return fmt.Errorf("failed to serialize game update: %v", err)
	}
	msg := &messages.Message{
		ClientID: clientID,
		Type:     messageType,
		Payload:  payload,
	}
	if err := n.SendMessageToClient(ctx, clientID, msg); err != nil {
		return fmt.Errorf("failed to send %s: %v", messageType, err)
	}
	return nil
}

// SendGameUpdate sends a committed batch to a subscribed client. Batches the client's
// catch-up already reflects, or that belong to another game, are skipped.
func (n *NetworkManager) SendGameUpdate(ctx context.Context, clientID uint32, update *messages.ServerGameUpdate) error {
	v := n.getViewer(clientID)
	if v == nil {
		return nil
	}

	v.lock.Lock()
	defer v.lock.Unlock()
	if !v.ready || v.gameID != update.GameID || update.Sequence <= v.sequence {
		log.Trace("Skipping update of game %s through %d for client %d", update.GameID, update.Sequence, clientID)
		return nil
	}

	if err := n.sendGameUpdate(ctx, clientID, messages.MessageTypeServerGameUpdate, update); err != nil {
		return err
	}
	v.sequence = update.Sequence
	return nil
}

func (n *NetworkManager) sendServerError(ctx context.Context, clientID uint32, reason string) error {
	payload, err := json.Marshal(&messages.ServerError{Reason: reason})
	if err != nil {
		return fmt.Errorf("failed to marshal server error: %v", err)
	}
	msg := &messages.Message{
		ClientID: clientID,
		Type:     messages.MessageTypeServerError,
		Payload:  payload,
	}
	return n.SendMessageToClient(ctx, clientID, msg)
}

func (n *NetworkManager) SendMessageToClient(ctx context.Context, clientID uint32, msg *messages.Message) error {
	client, err := n.ClientManager.GetClient(clientID)
	if err != nil {
		return fmt.Errorf("failed to get client %d: %v", clientID, err)
	}

	if err := WriteMessageToWS(ctx, client.WSConn, msg); err != nil {
		return fmt.Errorf("failed to send message to client %d: %v", clientID, err)
	}

	return nil
}
