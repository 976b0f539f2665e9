package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempus/internal/domain/session"
	"tempus/internal/shared/errors"
)

func TestSuspendSessionUseCase_Execute(t *testing.T) {
	active := buildSession(t, 1, session.StatusActive, 900)
	sessionRepo := &mockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.Session, error) {
			return active, nil
		},
	}
	notifier := &mockNotifier{}
	audit := &mockAudit{}

	uc := NewSuspendSessionUseCase(sessionRepo, noopLocks{}, notifier, audit, testLogger())

	result, err := uc.Execute(context.Background(), SuspendSessionCommand{SessionID: 1, Actor: "desk-staff"})
	require.NoError(t, err)
	assert.Equal(t, "suspended", result.Status)
	assert.Equal(t, 900, result.Remaining)

	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, session.EventTimeUpdate, events[0].Type)

	calls := audit.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "session.suspended", calls[0].Action)
}

func TestSuspendSessionUseCase_Execute_PendingSession(t *testing.T) {
	pending := buildSession(t, 1, session.StatusPending, 3600)
	sessionRepo := &mockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.Session, error) {
			return pending, nil
		},
	}

	uc := NewSuspendSessionUseCase(sessionRepo, noopLocks{}, &mockNotifier{}, &mockAudit{}, testLogger())

	_, err := uc.Execute(context.Background(), SuspendSessionCommand{SessionID: 1, Actor: "desk-staff"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidStateError(err))
}

func TestResumeSessionUseCase_Execute(t *testing.T) {
	suspended := buildSession(t, 1, session.StatusSuspended, 750)
	sessionRepo := &mockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.Session, error) {
			return suspended, nil
		},
	}
	notifier := &mockNotifier{}
	audit := &mockAudit{}

	uc := NewResumeSessionUseCase(sessionRepo, noopLocks{}, notifier, audit, testLogger())

	result, err := uc.Execute(context.Background(), ResumeSessionCommand{SessionID: 1, Actor: "desk-staff"})
	require.NoError(t, err)
	assert.Equal(t, "active", result.Status)
	assert.Equal(t, 750, result.Remaining)

	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, session.EventTimeUpdate, events[0].Type)

	calls := audit.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "session.resumed", calls[0].Action)
}

func TestResumeSessionUseCase_Execute_NotSuspended(t *testing.T) {
	active := buildSession(t, 1, session.StatusActive, 750)
	sessionRepo := &mockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.Session, error) {
			return active, nil
		},
	}

	uc := NewResumeSessionUseCase(sessionRepo, noopLocks{}, &mockNotifier{}, &mockAudit{}, testLogger())

	_, err := uc.Execute(context.Background(), ResumeSessionCommand{SessionID: 1, Actor: "desk-staff"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidStateError(err))
}
