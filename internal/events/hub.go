package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// subscriberBuffer bounds how many undelivered envelopes a slow subscriber
// may queue; further envelopes are dropped for that subscriber.
const subscriberBuffer = 64

// Hub is a websocket-backed Sink: every Publish is fanned out to all
// currently-connected subscribers as a JSON-encoded Envelope. A subscriber
// that falls behind subscriberBuffer envelopes misses the envelopes that do
// not fit in its queue but stays connected; it is never allowed to block the
// publisher (spec's "best-effort" delivery guarantee).
type Hub struct {
	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
}

type subscriber struct {
	send chan Envelope
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[*subscriber]struct{})}
}

// Publish implements Sink. It never blocks on a slow subscriber: an
// envelope that cannot be queued immediately is dropped for that
// subscriber, and a warning is logged.
func (h *Hub) Publish(env Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		select {
		case sub.send <- env:
		default:
			slog.Warn("events: dropping envelope for slow subscriber", "kind", env.Kind)
		}
	}
}

// ServeHTTP upgrades the request to a websocket and streams every published
// Envelope to the client as JSON text frames until the connection closes or
// the request context is cancelled.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Warn("events: websocket accept failed", "err", err)
		return
	}

	sub := &subscriber{send: make(chan Envelope, subscriberBuffer)}
	h.add(sub)
	defer h.remove(sub)

	ctx := r.Context()
	defer conn.Close(websocket.StatusNormalClosure, "done")

	for {
		select {
		case <-ctx.Done():
			return
		case env, ok := <-sub.send:
			if !ok {
				return
			}
			if err := h.writeJSON(ctx, conn, env); err != nil {
				slog.Debug("events: websocket write failed, closing", "err", err)
				return
			}
		}
	}
}

func (h *Hub) writeJSON(ctx context.Context, conn *websocket.Conn, env Envelope) error {
	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	body, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return conn.Write(writeCtx, websocket.MessageText, body)
}

func (h *Hub) add(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[sub] = struct{}{}
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers, sub)
}

// SubscriberCount returns the number of currently-connected subscribers.
// Used by tests.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}
