package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cbodonnell/pixelbattles/pkg/log"
	"github.com/cbodonnell/pixelbattles/pkg/messages"
	"nhooyr.io/websocket"
)

const (
	// MessageReadLimit is the largest compressed message accepted from a client
	MessageReadLimit = 64 * 1024
	// WriteTimeout bounds a single write to a client
	WriteTimeout = 10 * time.Second
)

// WSServer represents a WebSocket server.
type WSServer struct {
	port int
	tls  *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewWSServerOptions struct {
	Port int
	TLS  *TLSConfig
}

// ConnectHandler registers a new connection and returns its client ID.
type ConnectHandler func(ctx context.Context, r *http.Request, conn *websocket.Conn) (uint32, error)

// DisconnectHandler is called once a registered connection is gone.
type DisconnectHandler func(clientID uint32)

// MessageHandler handles one message from a registered connection.
type MessageHandler func(ctx context.Context, clientID uint32, message *messages.Message)

// NewWSServer creates a new WebSocket server.
func NewWSServer(opts NewWSServerOptions) *WSServer {
	return &WSServer{
		port: opts.Port,
		tls:  opts.TLS,
	}
}

// Handler returns the http.Handler accepting WebSocket connections.
// Connections are closed when ctx is done.
func (s *WSServer) Handler(ctx context.Context, connectHandler ConnectHandler, disconnectHandler DisconnectHandler, messageHandler MessageHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			log.Error("Failed to accept WebSocket connection: %v", err)
			return
		}
		conn.SetReadLimit(MessageReadLimit)
		log.Debug("New WebSocket connection from %s", r.RemoteAddr)

		connCtx, cancel := context.WithCancel(r.Context())
		stop := context.AfterFunc(ctx, cancel)
		defer func() {
			stop()
			cancel()
		}()

		clientID, err := connectHandler(connCtx, r, conn)
		if err != nil {
			log.Warn("Rejected WebSocket connection from %s: %v", r.RemoteAddr, err)
			conn.Close(websocket.StatusPolicyViolation, "connection rejected")
			return
		}

		s.handleWSConnection(connCtx, clientID, conn, disconnectHandler, messageHandler)
	})
}

// Start starts the WebSocket server.
func (s *WSServer) Start(ctx context.Context, connectHandler ConnectHandler, disconnectHandler DisconnectHandler, messageHandler MessageHandler) {
	addr := fmt.Sprintf(":%d", s.port)
	server := &http.Server{Addr: addr, Handler: s.Handler(ctx, connectHandler, disconnectHandler, messageHandler)}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	var listenAndServe func() error
	if s.tls != nil {
		log.Info("WebSocket server listening on %s with TLS", addr)
		listenAndServe = func() error {
			return server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("WebSocket server listening on %s", addr)
		listenAndServe = server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("WebSocket server closed")
			return
		}
		log.Error("WebSocket server error: %v", err)
	}
}

// handleWSConnection reads messages until the connection or ctx is closed.
// Messages of one client are handled in order.
func (s *WSServer) handleWSConnection(ctx context.Context, clientID uint32, conn *websocket.Conn, disconnectHandler DisconnectHandler, messageHandler MessageHandler) {
	defer func() {
		disconnectHandler(clientID)
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		message, err := readMessageFromWS(ctx, conn, messages.DeserializeClientMessage)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == -1 && ctx.Err() == nil {
				log.Error("Error reading WebSocket message from client %d: %v", clientID, err)
			}
			log.Trace("Connection closed for client %d", clientID)
			return
		}

		// the connection identifies the client, whatever the message claims
		message.ClientID = clientID
		messageHandler(ctx, clientID, message)
	}
}

// WriteMessageToWS writes a Message to a WebSocket connection
func WriteMessageToWS(ctx context.Context, conn *websocket.Conn, msg *messages.Message) error {
	b, err := messages.SerializeMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, WriteTimeout)
	defer cancel()
	if err := conn.Write(ctx, websocket.MessageBinary, b); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %v", err)
	}

	return nil
}

// ReadMessageFromWS reads a Message from a WebSocket connection
func ReadMessageFromWS(ctx context.Context, conn *websocket.Conn) (*messages.Message, error) {
	return readMessageFromWS(ctx, conn, messages.DeserializeMessage)
}

func readMessageFromWS(ctx context.Context, conn *websocket.Conn, deserialize func([]byte) (*messages.Message, error)) (*messages.Message, error) {
	for {
		typ, b, err := conn.Read(ctx)
		if err != nil {
			return nil, err
		}
		if typ != websocket.MessageBinary {
			log.Warn("Ignoring non-binary WebSocket message")
			continue
		}

		msg, err := deserialize(b)
		if err != nil {
			log.Warn("Ignoring malformed WebSocket message: %v", err)
			continue
		}

		return msg, nil
	}
}
