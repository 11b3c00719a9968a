package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/input"
	"github.com/gorilla/websocket"
)

const (
	// clientBuffer bounds the events queued for one slow client.
	clientBuffer = 64
	writeTimeout = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// EventsHandler streams emitted input events to WebSocket clients. Each
// client has its own queue; a client that falls behind loses events rather
// than stalling the frame loop.
type EventsHandler struct {
	logger *slog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool

	unsubscribe func()
}

type client struct {
	send    chan []byte
	done    chan struct{}
	once    sync.Once
	dropped int
}

func (c *client) close() {
	c.once.Do(func() { close(c.done) })
}

// NewEventsHandler subscribes to src and returns the handler.
func NewEventsHandler(src EventSource, logger *slog.Logger) *EventsHandler {
	h := &EventsHandler{
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
	h.unsubscribe = src.Subscribe(h.broadcast)
	return h
}

// ServeHTTP upgrades the request and streams events until the client leaves.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := &client{
		send: make(chan []byte, clientBuffer),
		done: make(chan struct{}),
	}

	// Register before the handshake completes so no event published after
	// the client sees the upgrade is missed.
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		http.Error(w, "Server shutting down", http.StatusServiceUnavailable)
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		c.close()
	}()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	// Reads only detect disconnects.
	go func() {
		defer c.close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-c.done:
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeTimeout))
			return
		case msg := <-c.send:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}

// Clients returns the number of connected clients.
func (h *EventsHandler) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and stops listening for events.
func (h *EventsHandler) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	for c := range h.clients {
		c.close()
	}
	h.mu.Unlock()

	h.unsubscribe()
}

func (h *EventsHandler) broadcast(e input.Event) {
	msg, err := json.Marshal(e)
	if err != nil {
		h.logger.Warn("encode event", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			c.dropped++
			if c.dropped == 1 || c.dropped%100 == 0 {
				h.logger.Debug("websocket client lagging, dropping events", "dropped", c.dropped)
			}
		}
	}
}
