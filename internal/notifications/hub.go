package notifications

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"
)

// HeartbeatInterval is how often the stream handler writes a comment frame
// to keep intermediary proxies from closing idle connections.
const HeartbeatInterval = 20 * time.Second

// Heartbeat is an SSE comment frame, ignored by clients.
var Heartbeat = []byte(": ping\n\n")

// Publisher is the emit side of the fan-out channel. Lifecycle services
// depend on this interface so the in-process hub can later be swapped for a
// distributed broker without touching emitter call sites.
type Publisher interface {
	Emit(event string, payload interface{})
}

// Hub is a process-wide registry of connected live listeners. Delivery is
// fire-and-forget: no persistence, no replay, at-most-once per listener.
type Hub struct {
	mu      sync.Mutex
	seq     uint64
	clients map[uint64]chan []byte
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uint64]chan []byte)}
}

// Register adds a listener and returns its id and receive channel.
func (h *Hub) Register() (uint64, <-chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	ch := make(chan []byte, 16)
	h.clients[h.seq] = ch
	return h.seq, ch
}

// Unregister removes a listener. Safe to call for an unknown id.
func (h *Hub) Unregister(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

// Emit serializes the payload and pushes a framed SSE message to every
// registered listener. A listener that cannot keep up is skipped; a failure
// on one listener never affects the others.
func (h *Hub) Emit(event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("notifications: failed to marshal %s payload: %v", event, err)
		return
	}
	frame := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event, data))

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.clients {
		select {
		case ch <- frame:
		default:
		}
	}
}

// Len reports the number of currently registered listeners.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
