package devserver

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrSubscriberClosed is returned when sending to a closed subscriber
var ErrSubscriberClosed = errors.New("subscriber is closed")

// Subscriber is one websocket connection's send side
type Subscriber interface {
	ID() string
	WorkspaceID() string
	Send(data []byte) error
	Close() error
}

// Hub fans job events out to subscribers, organized by workspace.
// Safe for concurrent use.
type Hub struct {
	mu         sync.RWMutex
	workspaces map[string]map[string]Subscriber
}

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{workspaces: make(map[string]map[string]Subscriber)}
}

// Register adds a subscriber under its workspace
func (h *Hub) Register(sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	wsID := sub.WorkspaceID()
	if h.workspaces[wsID] == nil {
		h.workspaces[wsID] = make(map[string]Subscriber)
	}
	h.workspaces[wsID][sub.ID()] = sub

	log.Debug().Str("workspace_id", wsID).Str("subscriber_id", sub.ID()).Msg("Subscriber registered")
}

// Unregister removes a subscriber
func (h *Hub) Unregister(sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	wsID := sub.WorkspaceID()
	if subs, ok := h.workspaces[wsID]; ok {
		delete(subs, sub.ID())
		if len(subs) == 0 {
			delete(h.workspaces, wsID)
		}
	}
}

// Broadcast sends an event to every subscriber of a workspace. Slow or
// closed subscribers are dropped.
func (h *Hub) Broadcast(workspaceID string, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().Err(err).Str("type", event.Type).Msg("Failed to serialize event")
		return
	}

	h.mu.RLock()
	subs := make([]Subscriber, 0, len(h.workspaces[workspaceID]))
	for _, sub := range h.workspaces[workspaceID] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.Send(data); err != nil {
			h.Unregister(sub)
			_ = sub.Close()
		}
	}
}

// SubscriberCount returns the number of subscribers for a workspace
func (h *Hub) SubscriberCount(workspaceID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.workspaces[workspaceID])
}

// EventPublisher is the hub contract handlers depend on
type EventPublisher interface {
	Publish(workspaceID string, event Event)
}

var _ EventPublisher = (*Hub)(nil)

// Publish implements EventPublisher
func (h *Hub) Publish(workspaceID string, event Event) {
	h.Broadcast(workspaceID, event)
}

// NoOpPublisher drops every event (tests, websocket disabled)
type NoOpPublisher struct{}

// Publish does nothing
func (n *NoOpPublisher) Publish(workspaceID string, event Event) {}
