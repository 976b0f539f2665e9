package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempus/internal/domain/session"
	"tempus/internal/shared/errors"
)

func TestAddTimeUseCase_Execute(t *testing.T) {
	active := buildSession(t, 1, session.StatusActive, 600)
	updated := false
	sessionRepo := &mockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.Session, error) {
			return active, nil
		},
		UpdateFunc: func(ctx context.Context, s *session.Session) error {
			updated = true
			return nil
		},
	}
	notifier := &mockNotifier{}
	audit := &mockAudit{}

	uc := NewAddTimeUseCase(sessionRepo, noopLocks{}, notifier, audit, testLogger())

	result, err := uc.Execute(context.Background(), AddTimeCommand{SessionID: 1, Seconds: 900, Actor: "desk-staff"})
	require.NoError(t, err)
	assert.Equal(t, 1500, result.Remaining)
	assert.Equal(t, 900, result.ExtendedTotal)
	assert.True(t, updated)

	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, session.EventTimeAdded, events[0].Type)
	data, ok := events[0].Data.(session.TimeAddedData)
	require.True(t, ok)
	assert.Equal(t, 900, data.Seconds)
	assert.Equal(t, "desk-staff", data.AddedBy)

	calls := audit.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "session.time_added", calls[0].Action)
}

func TestAddTimeUseCase_Execute_PendingSessionTopUp(t *testing.T) {
	pending := buildSession(t, 1, session.StatusPending, 3600)
	sessionRepo := &mockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.Session, error) {
			return pending, nil
		},
	}

	uc := NewAddTimeUseCase(sessionRepo, noopLocks{}, &mockNotifier{}, &mockAudit{}, testLogger())

	result, err := uc.Execute(context.Background(), AddTimeCommand{SessionID: 1, Seconds: 600, Actor: "desk-staff"})
	require.NoError(t, err)
	assert.Equal(t, "pending", result.Status)
	assert.Equal(t, 4200, result.Remaining)
}

func TestAddTimeUseCase_Execute_TerminatedSession(t *testing.T) {
	terminated := buildSession(t, 1, session.StatusTerminated, 0)
	sessionRepo := &mockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.Session, error) {
			return terminated, nil
		},
	}

	uc := NewAddTimeUseCase(sessionRepo, noopLocks{}, &mockNotifier{}, &mockAudit{}, testLogger())

	_, err := uc.Execute(context.Background(), AddTimeCommand{SessionID: 1, Seconds: 600, Actor: "desk-staff"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidStateError(err))
}

func TestAddTimeUseCase_Execute_LockedSessionIsBusy(t *testing.T) {
	locks := deniedLocks{err: errors.NewBusyError("session is busy, try again")}

	uc := NewAddTimeUseCase(&mockSessionRepository{}, locks, &mockNotifier{}, &mockAudit{}, testLogger())

	_, err := uc.Execute(context.Background(), AddTimeCommand{SessionID: 1, Seconds: 600, Actor: "desk-staff"})
	require.Error(t, err)
	assert.True(t, errors.IsBusyError(err))
}
