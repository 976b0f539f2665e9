// Package services provides infrastructure services.
package services

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"tempus/internal/domain/session"
	"tempus/internal/shared/logger"
)

// HubClient is a single WebSocket subscriber. Events are delivered through
// the buffered Send channel; the write pump owned by the HTTP handler drains
// it. A full channel means a slow consumer and the event is dropped for that
// client only.
type HubClient struct {
	Conn        *websocket.Conn
	Send        chan session.Event
	ConnectedAt time.Time
}

// SessionHub fans session events out to WebSocket subscribers. Subscribers
// join per-session groups (workstation clients, per-session dashboard views)
// or per-workstation groups (kiosk displays that survive session turnover).
type SessionHub struct {
	sessions     map[uint]map[*HubClient]struct{}
	workstations map[uint]map[*HubClient]struct{}
	mu           sync.RWMutex

	logger logger.Interface
}

// NewSessionHub creates a new SessionHub instance.
func NewSessionHub(log logger.Interface) *SessionHub {
	return &SessionHub{
		sessions:     make(map[uint]map[*HubClient]struct{}),
		workstations: make(map[uint]map[*HubClient]struct{}),
		logger:       log,
	}
}

// Subscribe registers a connection to a session's event group.
func (h *SessionHub) Subscribe(sessionID uint, conn *websocket.Conn) *HubClient {
	client := newHubClient(conn)

	h.mu.Lock()
	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[*HubClient]struct{})
	}
	h.sessions[sessionID][client] = struct{}{}
	count := len(h.sessions[sessionID])
	h.mu.Unlock()

	h.logger.Infow("session subscriber connected",
		"session_id", sessionID,
		"subscribers", count,
	)

	return client
}

// SubscribeWorkstation registers a connection to a workstation's event group.
func (h *SessionHub) SubscribeWorkstation(workstationID uint, conn *websocket.Conn) *HubClient {
	client := newHubClient(conn)

	h.mu.Lock()
	if h.workstations[workstationID] == nil {
		h.workstations[workstationID] = make(map[*HubClient]struct{})
	}
	h.workstations[workstationID][client] = struct{}{}
	count := len(h.workstations[workstationID])
	h.mu.Unlock()

	h.logger.Infow("workstation subscriber connected",
		"workstation_id", workstationID,
		"subscribers", count,
	)

	return client
}

// Unsubscribe removes a session subscriber and closes its send channel.
func (h *SessionHub) Unsubscribe(sessionID uint, client *HubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	group, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	if _, ok := group[client]; !ok {
		return
	}

	delete(group, client)
	close(client.Send)
	if len(group) == 0 {
		delete(h.sessions, sessionID)
	}

	h.logger.Infow("session subscriber disconnected",
		"session_id", sessionID,
	)
}

// UnsubscribeWorkstation removes a workstation subscriber and closes its send channel.
func (h *SessionHub) UnsubscribeWorkstation(workstationID uint, client *HubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	group, ok := h.workstations[workstationID]
	if !ok {
		return
	}
	if _, ok := group[client]; !ok {
		return
	}

	delete(group, client)
	close(client.Send)
	if len(group) == 0 {
		delete(h.workstations, workstationID)
	}

	h.logger.Infow("workstation subscriber disconnected",
		"workstation_id", workstationID,
	)
}

// Publish fans an event out to the session group and, when the event carries
// a workstation ID, to that workstation group. Never blocks the caller.
func (h *SessionHub) Publish(evt session.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.sessions[evt.SessionID] {
		h.deliver(client, evt)
	}
	if evt.WorkstationID != 0 {
		for client := range h.workstations[evt.WorkstationID] {
			h.deliver(client, evt)
		}
	}
}

func (h *SessionHub) deliver(client *HubClient, evt session.Event) {
	select {
	case client.Send <- evt:
	default:
		h.logger.Warnw("dropping event for slow subscriber",
			"event_type", evt.Type,
			"session_id", evt.SessionID,
		)
	}
}

// SubscriberCount returns the number of subscribers on a session group.
func (h *SessionHub) SubscriberCount(sessionID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

func newHubClient(conn *websocket.Conn) *HubClient {
	return &HubClient{
		Conn:        conn,
		Send:        make(chan session.Event, 256),
		ConnectedAt: time.Now(),
	}
}
