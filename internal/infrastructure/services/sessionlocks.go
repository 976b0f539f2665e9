package services

import (
	"context"
	"sync"
	"time"

	apperrors "tempus/internal/shared/errors"
)

// SessionLocks serializes mutating operations on a single session. Acquire
// waits a bounded interval for the per-session slot; a caller that cannot
// get it in time fails fast with a busy error instead of queueing behind a
// stuck peer.
type SessionLocks struct {
	slots map[uint]chan struct{}
	mu    sync.Mutex

	wait time.Duration
}

// NewSessionLocks creates a lock table with the given bounded wait.
func NewSessionLocks(wait time.Duration) *SessionLocks {
	if wait <= 0 {
		wait = 200 * time.Millisecond
	}
	return &SessionLocks{
		slots: make(map[uint]chan struct{}),
		wait:  wait,
	}
}

// Acquire takes the session's slot, waiting at most the configured bound.
// The returned release function must be called exactly once.
func (l *SessionLocks) Acquire(ctx context.Context, sessionID uint) (func(), error) {
	slot := l.slot(sessionID)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case slot <- struct{}{}:
		return func() { <-slot }, nil
	case <-timer.C:
		return nil, apperrors.NewBusyError("session is busy, try again")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *SessionLocks) slot(sessionID uint) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot, ok := l.slots[sessionID]
	if !ok {
		slot = make(chan struct{}, 1)
		l.slots[sessionID] = slot
	}
	return slot
}
