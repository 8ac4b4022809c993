// Package messaging pushes live store statistics to connected admin consoles.
package messaging

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/admin"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
)

// SnapshotSource produces the current store snapshot on each tick.
type SnapshotSource interface {
	StoreSnapshot() (*admin.StoreSnapshot, error)
}

// StatsClient represents a single connected admin console.
type StatsClient struct {
	Conn *websocket.Conn
	Send chan []byte
}

// StatsBroadcaster manages connected admin consoles and pushes a store
// snapshot to each of them at a fixed interval.
type StatsBroadcaster struct {
	clients    map[*StatsClient]bool
	register   chan *StatsClient
	unregister chan *StatsClient
	source     SnapshotSource
	interval   time.Duration
	logger     *logging.ChanneledLogger
	mu         sync.RWMutex
}

// NewStatsBroadcaster creates a new broadcaster instance.
func NewStatsBroadcaster(source SnapshotSource, interval time.Duration, logger *logging.ChanneledLogger) *StatsBroadcaster {
	return &StatsBroadcaster{
		clients:    make(map[*StatsClient]bool),
		register:   make(chan *StatsClient),
		unregister: make(chan *StatsClient),
		source:     source,
		interval:   interval,
		logger:     logger,
	}
}

// Run starts the broadcaster's main loop. This should be run as a goroutine.
func (b *StatsBroadcaster) Run() {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case client := <-b.register:
			b.mu.Lock()
			b.clients[client] = true
			b.mu.Unlock()
			b.logger.System().Debug("Stats client registered", "clients", b.ClientCount())

			// New consoles get a snapshot immediately instead of waiting
			// for the next tick.
			if message, ok := b.snapshotMessage(); ok {
				select {
				case client.Send <- message:
				default:
				}
			}

		case client := <-b.unregister:
			b.mu.Lock()
			if _, ok := b.clients[client]; ok {
				delete(b.clients, client)
				close(client.Send)
			}
			b.mu.Unlock()
			b.logger.System().Debug("Stats client unregistered", "clients", b.ClientCount())

		case <-ticker.C:
			b.broadcastSnapshot()
		}
	}
}

// Register queues a client for registration.
func (b *StatsBroadcaster) Register(client *StatsClient) {
	b.register <- client
}

// Unregister queues a client for unregistration.
func (b *StatsBroadcaster) Unregister(client *StatsClient) {
	b.unregister <- client
}

// ClientCount returns the number of connected consoles.
func (b *StatsBroadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

func (b *StatsBroadcaster) broadcastSnapshot() {
	b.mu.RLock()
	connected := len(b.clients)
	b.mu.RUnlock()
	if connected == 0 {
		return
	}

	message, ok := b.snapshotMessage()
	if !ok {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for client := range b.clients {
		select {
		case client.Send <- message:
		default:
			// Slow consumer, drop the tick rather than block the loop.
		}
	}
}

func (b *StatsBroadcaster) snapshotMessage() ([]byte, bool) {
	snapshot, err := b.source.StoreSnapshot()
	if err != nil {
		b.logger.System().Error("Failed to build store snapshot", "error", err)
		return nil, false
	}

	message, err := json.Marshal(snapshot)
	if err != nil {
		b.logger.System().Error("Failed to marshal store snapshot", "error", err)
		return nil, false
	}
	return message, true
}

// WritePump forwards queued messages to the client's websocket connection.
// Runs as a goroutine per client and exits when the Send channel closes.
func (c *StatsClient) WritePump() {
	defer c.Conn.Close()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// ReadPump drains and discards client messages so that pings and close frames
// are processed. Unregisters the client when the connection drops.
func (c *StatsClient) ReadPump(b *StatsBroadcaster) {
	defer func() {
		b.Unregister(c)
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
