package network

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/cbodonnell/pixelbattles/pkg/log"
	"github.com/google/uuid"
	"nhooyr.io/websocket"
)

const (
	// ClientIDMaxRetries represents the maximum number of retries when generating a unique ID
	ClientIDMaxRetries = 1024
	// ConnectionEventChannelSize represents the size of the connection event channel
	ConnectionEventChannelSize = 1024
)

// Client represents a connected viewer
type Client struct {
	ID     uint32
	UserID string
	// GameID is the game the client follows, nil until it subscribes
	GameID *uuid.UUID
	WSConn *websocket.Conn
}

// ConnectionEvent represents an event that happened to a client connection
type ConnectionEvent struct {
	ClientID uint32
	Type     ConnectionEventType
	Data     interface{}
}

// ConnectionEventType represents the type of a connection event
type ConnectionEventType int

const (
	ConnectionEventTypeConnect ConnectionEventType = iota
	ConnectionEventTypeDisconnect
)

type ClientConnectData struct {
	UserID string
}

type ClientDisconnectData struct {
	// GameID is the game the client was following, if any
	GameID *uuid.UUID
}

// ClientManager manages connected clients
type ClientManager struct {
	clients             map[uint32]*Client
	clientsLock         sync.RWMutex
	connectionEventChan chan ConnectionEvent
}

// NewClientManager creates a new ClientManager
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients:             make(map[uint32]*Client),
		connectionEventChan: make(chan ConnectionEvent, ConnectionEventChannelSize),
	}
}

// GetConnectionEventChan returns a one-way channel for receiving connection events
func (cm *ClientManager) GetConnectionEventChan() <-chan ConnectionEvent {
	return cm.connectionEventChan
}

// GetClients returns a slice with a copy of all connected clients.
func (cm *ClientManager) GetClients() []*Client {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	clients := make([]*Client, 0, len(cm.clients))
	for _, client := range cm.clients {
		clients = append(clients, copyClient(client))
	}
	return clients
}

// GetClient returns a copy of a connected client
func (cm *ClientManager) GetClient(clientID uint32) (*Client, error) {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	client, ok := cm.clients[clientID]
	if !ok {
		return nil, fmt.Errorf("client %d not found", clientID)
	}
	return copyClient(client), nil
}

// ConnectClient adds a new client to the manager and returns its ID
func (cm *ClientManager) ConnectClient(wsConn *websocket.Conn, userID string) (uint32, error) {
	cm.clientsLock.Lock()
	defer cm.clientsLock.Unlock()

	clientID, err := cm.generateUniqueID(ClientIDMaxRetries)
	if err != nil {
		return 0, fmt.Errorf("failed to generate a unique ID: %v", err)
	}
	cm.clients[clientID] = &Client{
		ID:     clientID,
		UserID: userID,
		WSConn: wsConn,
	}

	cm.publish(ConnectionEvent{
		ClientID: clientID,
		Type:     ConnectionEventTypeConnect,
		Data:     ClientConnectData{UserID: userID},
	})

	return clientID, nil
}

// DisconnectClient removes a client from the manager
func (cm *ClientManager) DisconnectClient(clientID uint32) {
	cm.clientsLock.Lock()
	defer cm.clientsLock.Unlock()

	client, ok := cm.clients[clientID]
	if !ok {
		return
	}
	delete(cm.clients, clientID)

	cm.publish(ConnectionEvent{
		ClientID: clientID,
		Type:     ConnectionEventTypeDisconnect,
		Data:     ClientDisconnectData{GameID: client.GameID},
	})
}

// SetGameID sets the game a client follows and returns the previous one.
func (cm *ClientManager) SetGameID(clientID uint32, gameID *uuid.UUID) (*uuid.UUID, error) {
	cm.clientsLock.Lock()
	defer cm.clientsLock.Unlock()

	client, ok := cm.clients[clientID]
	if !ok {
		return nil, fmt.Errorf("client %d not found", clientID)
	}
	previous := client.GameID
	client.GameID = copyGameID(gameID)
	return previous, nil
}

func (cm *ClientManager) Exists(clientID uint32) bool {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	_, ok := cm.clients[clientID]
	return ok
}

// publish must be called with the lock held. Events are dropped when nobody drains the channel.
func (cm *ClientManager) publish(event ConnectionEvent) {
	select {
	case cm.connectionEventChan <- event:
	default:
		log.Warn("Connection event channel full, dropping event %d for client %d", event.Type, event.ClientID)
	}
}

// generateUniqueID generates a unique client ID with a maximum number of retries
// it reads from the clients, so it needs to be locked before calling
func (cm *ClientManager) generateUniqueID(maxRetries int) (uint32, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		id := rand.Uint32()
		if id == 0 {
			continue
		}
		if _, ok := cm.clients[id]; !ok {
			return id, nil
		}
	}

	return 0, fmt.Errorf("failed to generate a unique ID after %d attempts", maxRetries)
}

func copyClient(client *Client) *Client {
	return &Client{
		ID:     client.ID,
		UserID: client.UserID,
		GameID: copyGameID(client.GameID),
		WSConn: client.WSConn,
	}
}

func copyGameID(gameID *uuid.UUID) *uuid.UUID {
	if gameID == nil {
		return nil
	}
	id := *gameID
	return &id
}
