// Package hub provides a WebSocket fan-out hub satisfying the log4uwu.Conn
// contract, turning a set of WebSocket subscribers into a live log
// transport: pass a Hub to log4uwu.WithStream and serve it over HTTP.
package hub

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/oogooro/log4uwu"
)

const (
	// WRITE_TIMEOUT bounds a single subscriber write; subscribers slower
	// than this are dropped.
	WRITE_TIMEOUT = 10 * time.Second
)

// envelope is the JSON frame subscribers receive for every record.
type envelope struct {
	Channel string `json:"channel"`
	Payload string `json:"payload"`
}

// Hub upgrades HTTP requests to WebSocket subscriptions and broadcasts
// emitted records to every subscriber.
type Hub struct {
	mtx      sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
}

var _ log4uwu.Conn = (*Hub)(nil)

// New returns an empty hub ready to accept subscribers.
func New() *Hub {
	return &Hub{
		clients: map[*websocket.Conn]struct{}{},
		upgrader: websocket.Upgrader{
			// log subscribers connect from anywhere (wscat, dashboards)
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and registers the subscriber until its
// connection drops.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return // Upgrade has already replied with an HTTP error
	}
	h.mtx.Lock()
	h.clients[conn] = struct{}{}
	h.mtx.Unlock()
	go h.discard(conn)
}

// discard drains inbound frames (subscribers are listeners, their payloads
// are ignored) and unregisters the connection once reading fails.
func (h *Hub) discard(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.mtx.Lock()
	delete(h.clients, conn)
	h.mtx.Unlock()
	conn.Close()
}

// Connected reports whether at least one subscriber is attached.
func (h *Hub) Connected() bool {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	return len(h.clients) > 0
}

// Emit broadcasts one payload under the given channel to every subscriber.
// A subscriber failing the write is dropped; the remaining ones still
// receive the frame.
func (h *Hub) Emit(channel string, payload []byte) error {
	frame, err := json.Marshal(envelope{Channel: channel, Payload: string(payload)})
	if err != nil {
		return errors.Wrap(err, "encode log frame")
	}
	h.mtx.Lock()
	defer h.mtx.Unlock()
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			delete(h.clients, conn)
			conn.Close()
		}
	}
	return nil
}

// Close drops every subscriber after a normal-closure frame.
func (h *Hub) Close() {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "logger closed"))
		conn.Close()
		delete(h.clients, conn)
	}
}
