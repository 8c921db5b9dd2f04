// Package hub fans dashboard snapshots out to websocket subscribers.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/threelines/tradeboard/backend/internal/dashboard"
	"github.com/threelines/tradeboard/backend/pkg/logger"
	"github.com/threelines/tradeboard/backend/pkg/metrics"
	"github.com/threelines/tradeboard/backend/pkg/redis"
)

const (
	pingInterval = 30 * time.Second
	pongWait     = 60 * time.Second
	writeWait    = 10 * time.Second

	sendBuffer = 8
)

// Message is the envelope written to subscribers
type Message struct {
	Type string              `json:"type"`
	Data *dashboard.Snapshot `json:"data"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the connected dashboard clients and the last published payload
// ⭐ SSOT: 웹소켓 브로드캐스트는 여기서만
type Hub struct {
	logger   *logger.Logger
	metrics  *metrics.Metrics
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
	latest  []byte
	closed  bool
}

// New creates a hub
func New(log *logger.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		logger:  log,
		metrics: m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and streams snapshots until the client leaves.
// A new client immediately receives the latest snapshot, if any.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.register(c) {
		_ = conn.Close()
		return
	}

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.latest != nil {
		c.send <- h.latest
	}
	h.metrics.SetWSClients(len(h.clients))
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.metrics.SetWSClients(len(h.clients))
}

// readLoop discards client frames and keeps the read deadline fresh
func (h *Hub) readLoop(c *client) {
	defer h.unregister(c)

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// Publish broadcasts snap to every client. Clients whose buffer is full are dropped.
func (h *Hub) Publish(_ context.Context, snap *dashboard.Snapshot) error {
	data, err := json.Marshal(Message{Type: "snapshot", Data: snap})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			delete(h.clients, c)
			close(c.send)
			h.logger.Warn("Dropping slow websocket client")
		}
	}
	h.metrics.SetWSClients(len(h.clients))

	return nil
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.metrics.SetWSClients(0)
}

// RedisPublisher forwards snapshots to the "dashboard" Redis channel for other replicas
type RedisPublisher struct {
	cache *redis.Cache
}

// NewRedisPublisher creates a publisher over cache
func NewRedisPublisher(cache *redis.Cache) *RedisPublisher {
	return &RedisPublisher{cache: cache}
}

// Publish sends snap on the dashboard channel; a disabled cache is a no-op
func (p *RedisPublisher) Publish(ctx context.Context, snap *dashboard.Snapshot) error {
	return p.cache.Publish(ctx, "dashboard", Message{Type: "snapshot", Data: snap})
}
