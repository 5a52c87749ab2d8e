// Package notify fans notification signals out to live stream connections.
// The hub carries no payload: a signal means "something changed for this
// user", and the subscriber re-reads its snapshot from storage. This keeps
// the stream endpoint event-driven instead of re-querying on a timer.
package notify

import (
	"context"
	"sync"
)

type Hub struct {
	mu   sync.RWMutex
	subs map[uint64]map[int]chan struct{}
	next int
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[uint64]map[int]chan struct{}),
	}
}

// Subscribe registers a listener for the user's notification signals. The
// channel is closed when the provided context ends.
func (h *Hub) Subscribe(ctx context.Context, userID uint64) <-chan struct{} {
	ch := make(chan struct{}, 4)

	h.mu.Lock()
	id := h.next
	h.next++
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[int]chan struct{})
	}
	h.subs[userID][id] = ch
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs[userID], id)
		if len(h.subs[userID]) == 0 {
			delete(h.subs, userID)
		}
		close(ch)
		h.mu.Unlock()
	}()

	return ch
}

// Publish signals every live subscription for the user.
func (h *Hub) Publish(userID uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[userID] {
		select {
		case ch <- struct{}{}:
		default:
			// Drop when subscriber is slow to avoid blocking.
		}
	}
}
