package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempus/internal/domain/session"
	"tempus/internal/shared/errors"
)

func pendingRequest(t *testing.T, id, sessionID uint, minutes int) *session.ExtensionRequest {
	t.Helper()
	request, err := session.NewExtensionRequest(sessionID, minutes)
	require.NoError(t, err)
	require.NoError(t, request.SetID(id))
	return request
}

func TestRespondExtensionUseCase_Execute_ApproveCreditsSession(t *testing.T) {
	request := pendingRequest(t, 5, 1, 15)
	active := buildSession(t, 1, session.StatusActive, 300)
	sessionUpdated := false

	sessionRepo := &mockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.Session, error) {
			return active, nil
		},
		UpdateFunc: func(ctx context.Context, s *session.Session) error {
			sessionUpdated = true
			return nil
		},
	}
	requestRepo := &mockExtensionRequestRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.ExtensionRequest, error) {
			return request, nil
		},
	}
	notifier := &mockNotifier{}
	audit := &mockAudit{}

	uc := NewRespondExtensionUseCase(sessionRepo, requestRepo, noopLocks{}, passthroughTx{}, notifier, audit, testLogger())

	result, err := uc.Execute(context.Background(), RespondExtensionCommand{
		RequestID: 5,
		Approve:   true,
		Actor:     "desk-staff",
		Message:   "enjoy",
	})
	require.NoError(t, err)
	assert.Equal(t, "approved", result.Request.Status)
	require.NotNil(t, result.NewRemaining)
	assert.Equal(t, 300+15*60, *result.NewRemaining)
	assert.Equal(t, 300+15*60, active.Remaining())
	assert.True(t, sessionUpdated)

	types := notifier.EventTypes()
	require.Len(t, types, 2)
	assert.Equal(t, session.EventTimeAdded, types[0])
	assert.Equal(t, session.EventExtensionResponse, types[1])

	events := notifier.Events()
	data, ok := events[1].Data.(session.ExtensionResponseData)
	require.True(t, ok)
	assert.True(t, data.Approved)
	assert.Equal(t, 15, data.Minutes)
	require.NotNil(t, data.NewRemaining)
	assert.Equal(t, 300+15*60, *data.NewRemaining)

	calls := audit.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "extension.responded", calls[0].Action)
}

func TestRespondExtensionUseCase_Execute_DenyLeavesSessionUntouched(t *testing.T) {
	request := pendingRequest(t, 5, 1, 15)
	active := buildSession(t, 1, session.StatusActive, 300)

	sessionRepo := &mockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.Session, error) {
			return active, nil
		},
		UpdateFunc: func(ctx context.Context, s *session.Session) error {
			t.Fatal("denial must not write the session")
			return nil
		},
	}
	requestRepo := &mockExtensionRequestRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.ExtensionRequest, error) {
			return request, nil
		},
	}
	notifier := &mockNotifier{}

	uc := NewRespondExtensionUseCase(sessionRepo, requestRepo, noopLocks{}, passthroughTx{}, notifier, &mockAudit{}, testLogger())

	result, err := uc.Execute(context.Background(), RespondExtensionCommand{
		RequestID: 5,
		Approve:   false,
		Actor:     "desk-staff",
		Message:   "closing soon",
	})
	require.NoError(t, err)
	assert.Equal(t, "denied", result.Request.Status)
	assert.Nil(t, result.NewRemaining)
	assert.Equal(t, 300, active.Remaining())

	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, session.EventExtensionResponse, events[0].Type)
	data, ok := events[0].Data.(session.ExtensionResponseData)
	require.True(t, ok)
	assert.False(t, data.Approved)
	assert.Nil(t, data.NewRemaining)
	assert.Equal(t, "closing soon", data.Message)
}

func TestRespondExtensionUseCase_Execute_SecondResponseCannotDoubleCredit(t *testing.T) {
	request := pendingRequest(t, 5, 1, 15)
	require.NoError(t, request.Approve("desk-staff", "", time.Now()))

	active := buildSession(t, 1, session.StatusActive, 300)
	sessionRepo := &mockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.Session, error) {
			return active, nil
		},
	}
	requestRepo := &mockExtensionRequestRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.ExtensionRequest, error) {
			return request, nil
		},
	}

	uc := NewRespondExtensionUseCase(sessionRepo, requestRepo, noopLocks{}, passthroughTx{}, &mockNotifier{}, &mockAudit{}, testLogger())

	_, err := uc.Execute(context.Background(), RespondExtensionCommand{
		RequestID: 5,
		Approve:   true,
		Actor:     "desk-staff",
	})
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyResolvedError(err))
	assert.Equal(t, 300, active.Remaining())
}

func TestRespondExtensionUseCase_Execute_LockedSessionIsBusy(t *testing.T) {
	request := pendingRequest(t, 5, 1, 15)
	requestRepo := &mockExtensionRequestRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.ExtensionRequest, error) {
			return request, nil
		},
	}
	locks := deniedLocks{err: errors.NewBusyError("session is busy, try again")}

	uc := NewRespondExtensionUseCase(&mockSessionRepository{}, requestRepo, locks, passthroughTx{}, &mockNotifier{}, &mockAudit{}, testLogger())

	_, err := uc.Execute(context.Background(), RespondExtensionCommand{
		RequestID: 5,
		Approve:   true,
		Actor:     "desk-staff",
	})
	require.Error(t, err)
	assert.True(t, errors.IsBusyError(err))
	assert.True(t, request.IsPending())
}

func TestRespondExtensionUseCase_Execute_ResolvedWhileWaitingForLock(t *testing.T) {
	// The copy read before the lock is still pending; by the time the
	// transaction re-reads it, a concurrent responder has approved it.
	stale := pendingRequest(t, 5, 1, 15)
	resolved := pendingRequest(t, 5, 1, 15)
	require.NoError(t, resolved.Approve("other-staff", "", time.Now()))

	active := buildSession(t, 1, session.StatusActive, 300)
	sessionUpdated := false
	sessionRepo := &mockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.Session, error) {
			return active, nil
		},
		UpdateFunc: func(ctx context.Context, s *session.Session) error {
			sessionUpdated = true
			return nil
		},
	}

	reads := 0
	requestRepo := &mockExtensionRequestRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.ExtensionRequest, error) {
			reads++
			if reads == 1 {
				return stale, nil
			}
			return resolved, nil
		},
	}
	notifier := &mockNotifier{}

	uc := NewRespondExtensionUseCase(sessionRepo, requestRepo, noopLocks{}, passthroughTx{}, notifier, &mockAudit{}, testLogger())

	_, err := uc.Execute(context.Background(), RespondExtensionCommand{
		RequestID: 5,
		Approve:   true,
		Actor:     "desk-staff",
	})
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyResolvedError(err))
	assert.Equal(t, 300, active.Remaining())
	assert.False(t, sessionUpdated)
	assert.Empty(t, notifier.Events())
}
