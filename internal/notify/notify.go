// Package notify carries "refresh requested" signals from the core to
// the presentation layer. The core publishes after mutations; the
// presentation layer re-renders whatever the topic names.
package notify

import "sync"

// Topic identifies which collection changed.
type Topic string

const (
	Todos    Topic = "todos"
	Projects Topic = "projects"
	Tags     Topic = "tags"
	Profile  Topic = "profile"
)

// Hub fans refresh topics out to subscribers. Publishing never blocks:
// a subscriber that stops draining loses signals rather than stalling
// the mutation path.
type Hub struct {
	mu   sync.Mutex
	subs []chan Topic
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers a new subscriber channel.
func (h *Hub) Subscribe() <-chan Topic {
	ch := make(chan Topic, 16)

	h.mu.Lock()
	h.subs = append(h.subs, ch)
	h.mu.Unlock()

	return ch
}

// Publish sends the topic to every subscriber, dropping on full
// channels. Safe to call on a nil hub.
func (h *Hub) Publish(t Topic) {
	if h == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- t:
		default:
		}
	}
}
