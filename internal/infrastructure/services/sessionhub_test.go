package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempus/internal/domain/session"
	"tempus/internal/shared/logger"
)

func newTestHub() *SessionHub {
	return NewSessionHub(logger.NewLogger())
}

func testEvent(sessionID, workstationID uint) session.Event {
	return session.Event{
		Type:          session.EventTimeUpdate,
		SessionID:     sessionID,
		WorkstationID: workstationID,
	}
}

func TestSessionHub_PublishToSessionGroup(t *testing.T) {
	hub := newTestHub()

	first := hub.Subscribe(1, nil)
	second := hub.Subscribe(1, nil)
	other := hub.Subscribe(2, nil)

	hub.Publish(testEvent(1, 0))

	assert.Len(t, first.Send, 1)
	assert.Len(t, second.Send, 1)
	assert.Len(t, other.Send, 0)
}

func TestSessionHub_PublishToWorkstationGroup(t *testing.T) {
	hub := newTestHub()

	kiosk := hub.SubscribeWorkstation(7, nil)
	otherKiosk := hub.SubscribeWorkstation(8, nil)

	hub.Publish(testEvent(1, 7))

	require.Len(t, kiosk.Send, 1)
	evt := <-kiosk.Send
	assert.Equal(t, uint(1), evt.SessionID)
	assert.Len(t, otherKiosk.Send, 0)
}

func TestSessionHub_Unsubscribe(t *testing.T) {
	hub := newTestHub()

	client := hub.Subscribe(1, nil)
	assert.Equal(t, 1, hub.SubscriberCount(1))

	hub.Unsubscribe(1, client)
	assert.Equal(t, 0, hub.SubscriberCount(1))

	_, open := <-client.Send
	assert.False(t, open)

	// double unsubscribe is a no-op
	hub.Unsubscribe(1, client)
}

func TestSessionHub_DropsWhenSubscriberIsSlow(t *testing.T) {
	hub := newTestHub()

	client := hub.Subscribe(1, nil)
	for i := 0; i < cap(client.Send); i++ {
		hub.Publish(testEvent(1, 0))
	}
	require.Len(t, client.Send, cap(client.Send))

	// must not block, the overflow event is dropped
	hub.Publish(testEvent(1, 0))
	assert.Len(t, client.Send, cap(client.Send))
}
