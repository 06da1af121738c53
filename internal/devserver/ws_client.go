package devserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	// writeWait is time allowed to write a message to the peer
	writeWait = 10 * time.Second
	// pongWait is time allowed to read the next pong from the peer
	pongWait = 60 * time.Second
	// pingPeriod must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
	// maxMessageSize caps inbound messages; subscribers only listen
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsSubscriber is one websocket connection registered with the hub
type wsSubscriber struct {
	id          string
	workspaceID string
	conn        *websocket.Conn
	send        chan []byte
	closed      bool
	mu          sync.RWMutex
	closeOnce   sync.Once
}

var _ Subscriber = (*wsSubscriber)(nil)

func newWSSubscriber(conn *websocket.Conn, workspaceID string) *wsSubscriber {
	return &wsSubscriber{
		id:          uuid.New().String(),
		workspaceID: workspaceID,
		conn:        conn,
		send:        make(chan []byte, 256),
	}
}

func (s *wsSubscriber) ID() string          { return s.id }
func (s *wsSubscriber) WorkspaceID() string { return s.workspaceID }

// Send queues a message. A full buffer means the peer is too slow and the
// subscriber is treated as closed.
func (s *wsSubscriber) Send(data []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrSubscriberClosed
	}
	select {
	case s.send <- data:
		return nil
	default:
		return ErrSubscriberClosed
	}
}

// Close is safe to call multiple times from different goroutines
func (s *wsSubscriber) Close() error {
	var closeErr error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.send)
		s.mu.Unlock()
		closeErr = s.conn.Close()
	})
	return closeErr
}

// writePump drains the send channel to the connection and keeps it alive
// with pings.
func (s *wsSubscriber) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.Close()
	}()

	for {
		select {
		case data, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames and detects disconnects
func (s *wsSubscriber) readPump(hub *Hub) {
	defer func() {
		hub.Unregister(s)
		_ = s.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// WSHandler upgrades GET /ws/jobs?workspace_id= connections and registers
// them with the hub.
type WSHandler struct {
	hub *Hub
}

// NewWSHandler creates a WSHandler
func NewWSHandler(hub *Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// JobStream handles the websocket subscription
func (h *WSHandler) JobStream(c echo.Context) error {
	workspaceID := c.QueryParam("workspace_id")
	if workspaceID == "" {
		return badRequest(c, "workspace_id is required")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return nil
	}

	sub := newWSSubscriber(conn, workspaceID)
	h.hub.Register(sub)

	go sub.writePump()
	go sub.readPump(h.hub)

	return nil
}
