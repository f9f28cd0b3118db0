package preview

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/conneroisu/leafgen/internal/logging"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Send pings to peer with this period.
	pingPeriod = 54 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBuffer = 256
)

// UpdateMessage represents a message sent to the browser
type UpdateMessage struct {
	Type      string    `json:"type"`
	Target    string    `json:"target,omitempty"`
	Content   string    `json:"content,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Message types.
const (
	MessageReload = "reload"
	MessageError  = "error"
)

// client represents a WebSocket client connection
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the connected browsers and broadcasts updates to them.
type Hub struct {
	clients      map[*websocket.Conn]*client
	clientsMutex sync.RWMutex

	broadcast  chan []byte
	register   chan *client
	unregister chan *websocket.Conn

	allowOrigin func(origin string) bool
	logger      logging.Logger

	ctx          context.Context
	cancel       context.CancelFunc
	shutdownOnce sync.Once
}

// NewHub creates a hub and starts its loop. allowOrigin decides which
// browser origins may connect; requests without an Origin header are
// accepted.
func NewHub(allowOrigin func(origin string) bool, logger logging.Logger) *Hub {
	if logger == nil {
		logger = logging.Discard()
	}
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		clients:     make(map[*websocket.Conn]*client),
		broadcast:   make(chan []byte, 256),
		register:    make(chan *client, 32),
		unregister:  make(chan *websocket.Conn, 32),
		allowOrigin: allowOrigin,
		logger:      logger.WithComponent("websocket"),
		ctx:         ctx,
		cancel:      cancel,
	}
	go h.run()
	return h
}

// LocalOrigins accepts http(s) origins on the given port of localhost,
// 127.0.0.1 or host. An origin without a port is on the default port of
// its scheme.
func LocalOrigins(host string, port int) func(string) bool {
	want := strconv.Itoa(port)
	return func(origin string) bool {
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		effective := u.Port()
		switch {
		case u.Scheme == "http" && effective == "":
			effective = "80"
		case u.Scheme == "https" && effective == "":
			effective = "443"
		case u.Scheme != "http" && u.Scheme != "https":
			return false
		}
		if effective != want {
			return false
		}
		switch u.Hostname() {
		case "localhost", "127.0.0.1", "::1", host:
			return true
		default:
			return false
		}
	}
}

// ServeHTTP upgrades the request and registers the connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.ctx.Err() != nil {
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	if origin := r.Header.Get("Origin"); origin != "" && h.allowOrigin != nil && !h.allowOrigin(origin) {
		h.logger.Warn(r.Context(), nil, "WebSocket connection rejected", "origin", origin, "remote", r.RemoteAddr)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// Origins are checked above.
		InsecureSkipVerify: true,
		CompressionMode:    websocket.CompressionDisabled,
	})
	if err != nil {
		h.logger.Warn(r.Context(), err, "WebSocket upgrade failed", "remote", r.RemoteAddr)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.ctx.Done():
		_ = conn.Close(websocket.StatusServiceRestart, "Server shutting down")
		return
	}

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) run() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case c := <-h.register:
			h.clientsMutex.Lock()
			h.clients[c.conn] = c
			count := len(h.clients)
			h.clientsMutex.Unlock()
			h.logger.Debug(h.ctx, "Client connected", "clients", count)

		case conn := <-h.unregister:
			h.remove(conn, websocket.StatusNormalClosure)

		case message := <-h.broadcast:
			h.clientsMutex.RLock()
			var failed []*websocket.Conn
			for conn, c := range h.clients {
				select {
				case c.send <- message:
				default:
					failed = append(failed, conn)
				}
			}
			h.clientsMutex.RUnlock()

			for _, conn := range failed {
				h.remove(conn, websocket.StatusPolicyViolation)
			}
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn, status websocket.StatusCode) {
	h.clientsMutex.Lock()
	c, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
		close(c.send)
	}
	count := len(h.clients)
	h.clientsMutex.Unlock()

	if ok {
		_ = conn.Close(status, "")
		h.logger.Debug(h.ctx, "Client disconnected", "clients", count)
	}
}

// readPump discards incoming messages until the connection fails; the
// preview protocol is one way.
func (h *Hub) readPump(c *client) {
	defer func() {
		select {
		case h.unregister <- c.conn:
		case <-h.ctx.Done():
		}
	}()

	for {
		if _, _, err := c.conn.Read(h.ctx); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && h.ctx.Err() == nil {
				h.logger.Debug(h.ctx, "WebSocket read ended", "error", err.Error())
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			ctx, cancel := context.WithTimeout(h.ctx, writeWait)
			err := c.conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(h.ctx, writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				return
			}

		case <-h.ctx.Done():
			return
		}
	}
}

// Broadcast sends msg to every connected client. It never blocks; the
// message is dropped when the queue is full.
func (h *Hub) Broadcast(msg UpdateMessage) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error(h.ctx, err, "Failed to marshal broadcast message")
		return
	}

	select {
	case h.broadcast <- data:
	case <-h.ctx.Done():
	default:
		h.logger.Warn(h.ctx, nil, "Broadcast channel full, dropping message", "type", msg.Type)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()
	return len(h.clients)
}

// Shutdown closes every connection and stops the hub.
func (h *Hub) Shutdown() {
	h.shutdownOnce.Do(func() {
		h.cancel()

		h.clientsMutex.Lock()
		for conn, c := range h.clients {
			close(c.send)
			_ = conn.Close(websocket.StatusGoingAway, "Server shutdown")
		}
		h.clients = make(map[*websocket.Conn]*client)
		h.clientsMutex.Unlock()
	})
}
