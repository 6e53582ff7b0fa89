package notify

import (
	"context"
	"sync"
	"time"

	"mikopo.org/internal/ids"
)

// Kind classifies a notice for the dashboard.
type Kind string

const (
	// KindSyncFailed reports a best-effort remote write that did not land.
	// The local record is still considered created.
	KindSyncFailed Kind = "sync_failed"
	// KindOfflineMode reports a session established from the local cache.
	KindOfflineMode Kind = "offline_mode"
	// KindReminder carries a repayment reminder line.
	KindReminder Kind = "reminder"
)

// Notice is a non-blocking, display-only message. Nothing in the system acts
// on a notice; dropping one loses a toast, not data.
type Notice struct {
	ID      string    `json:"id"`
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Hub fan-outs notices to all active subscribers (SSE clients, tests).
type Hub struct {
	mu   sync.RWMutex
	subs map[int]chan Notice
	next int
}

// New initialises an empty hub.
func New() *Hub {
	return &Hub{subs: make(map[int]chan Notice)}
}

// Subscribe registers a subscriber and returns a channel which will receive
// notices. The channel is closed when the provided context ends.
func (h *Hub) Subscribe(ctx context.Context) <-chan Notice {
	ch := make(chan Notice, 16)

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = ch
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, id)
		close(ch)
		h.mu.Unlock()
	}()

	return ch
}

// Publish fan-outs the notice to all subscribers.
func (h *Hub) Publish(kind Kind, message string) Notice {
	n := Notice{
		ID:      ids.New(),
		Kind:    kind,
		Message: message,
		At:      time.Now().UTC(),
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- n:
		default:
			// Drop when subscriber is slow to avoid blocking.
		}
	}
	return n
}
