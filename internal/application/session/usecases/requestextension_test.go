package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempus/internal/domain/session"
	"tempus/internal/shared/errors"
)

func TestRequestExtensionUseCase_Execute(t *testing.T) {
	active := buildSession(t, 1, session.StatusActive, 300)
	sessionRepo := &mockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.Session, error) {
			return active, nil
		},
	}
	requestRepo := &mockExtensionRequestRepository{
		FindPendingBySessionFunc: func(ctx context.Context, sessionID uint) (*session.ExtensionRequest, error) {
			return nil, errors.NewNotFoundError("no pending extension request")
		},
		SaveFunc: func(ctx context.Context, r *session.ExtensionRequest) error {
			return r.SetID(5)
		},
	}
	notifier := &mockNotifier{}
	audit := &mockAudit{}

	uc := NewRequestExtensionUseCase(sessionRepo, requestRepo, noopLocks{}, passthroughTx{}, notifier, audit, testLogger())

	result, err := uc.Execute(context.Background(), RequestExtensionCommand{SessionID: 1, Minutes: 15})
	require.NoError(t, err)
	assert.Equal(t, uint(5), result.ID)
	assert.Equal(t, uint(1), result.SessionID)
	assert.Equal(t, 15, result.MinutesRequested)
	assert.Equal(t, "pending", result.Status)

	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, session.EventExtensionRequested, events[0].Type)
	assert.Equal(t, uint(1), events[0].SessionID)
	data, ok := events[0].Data.(session.ExtensionRequestedData)
	require.True(t, ok)
	assert.Equal(t, uint(5), data.RequestID)
	assert.Equal(t, 15, data.Minutes)

	calls := audit.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "extension.requested", calls[0].Action)
}

func TestRequestExtensionUseCase_Execute_DuplicatePending(t *testing.T) {
	active := buildSession(t, 1, session.StatusActive, 300)
	existing, err := session.NewExtensionRequest(1, 10)
	require.NoError(t, err)

	sessionRepo := &mockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.Session, error) {
			return active, nil
		},
	}
	saved := false
	requestRepo := &mockExtensionRequestRepository{
		FindPendingBySessionFunc: func(ctx context.Context, sessionID uint) (*session.ExtensionRequest, error) {
			return existing, nil
		},
		SaveFunc: func(ctx context.Context, r *session.ExtensionRequest) error {
			saved = true
			return r.SetID(6)
		},
	}
	notifier := &mockNotifier{}

	uc := NewRequestExtensionUseCase(sessionRepo, requestRepo, noopLocks{}, passthroughTx{}, notifier, &mockAudit{}, testLogger())

	_, err = uc.Execute(context.Background(), RequestExtensionCommand{SessionID: 1, Minutes: 15})
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
	assert.False(t, saved)
	assert.Empty(t, notifier.Events())
}

func TestRequestExtensionUseCase_Execute_UniquenessCheckedInTransaction(t *testing.T) {
	active := buildSession(t, 1, session.StatusActive, 300)
	sessionRepo := &mockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.Session, error) {
			return active, nil
		},
	}

	// The pending lookup and the insert must share the write transaction,
	// otherwise two racing callers can each pass the check before either
	// row lands.
	tx := &trackingTx{}
	requestRepo := &mockExtensionRequestRepository{
		FindPendingBySessionFunc: func(ctx context.Context, sessionID uint) (*session.ExtensionRequest, error) {
			assert.True(t, tx.Open())
			return nil, errors.NewNotFoundError("no pending extension request")
		},
		SaveFunc: func(ctx context.Context, r *session.ExtensionRequest) error {
			assert.True(t, tx.Open())
			return r.SetID(5)
		},
	}

	uc := NewRequestExtensionUseCase(sessionRepo, requestRepo, noopLocks{}, tx, &mockNotifier{}, &mockAudit{}, testLogger())

	_, err := uc.Execute(context.Background(), RequestExtensionCommand{SessionID: 1, Minutes: 15})
	require.NoError(t, err)
}

func TestRequestExtensionUseCase_Execute_LockedSessionIsBusy(t *testing.T) {
	locks := deniedLocks{err: errors.NewBusyError("session is busy")}

	uc := NewRequestExtensionUseCase(&mockSessionRepository{}, &mockExtensionRequestRepository{}, locks, passthroughTx{}, &mockNotifier{}, &mockAudit{}, testLogger())

	_, err := uc.Execute(context.Background(), RequestExtensionCommand{SessionID: 1, Minutes: 15})
	require.Error(t, err)
	assert.True(t, errors.IsBusyError(err))
}

func TestRequestExtensionUseCase_Execute_ForeignWorkstation(t *testing.T) {
	owned := buildSession(t, 1, session.StatusActive, 300)
	sessionRepo := &mockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.Session, error) {
			return owned, nil
		},
	}
	saved := false
	requestRepo := &mockExtensionRequestRepository{
		SaveFunc: func(ctx context.Context, r *session.ExtensionRequest) error {
			saved = true
			return nil
		},
	}

	uc := NewRequestExtensionUseCase(sessionRepo, requestRepo, noopLocks{}, passthroughTx{}, &mockNotifier{}, &mockAudit{}, testLogger())

	// The session belongs to workstation 1; the caller identifies as 2. The
	// rejection reads the same as an unknown session.
	_, err := uc.Execute(context.Background(), RequestExtensionCommand{SessionID: 1, WorkstationID: 2, Minutes: 15})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
	assert.False(t, saved)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "session not found", appErr.Message)
}

func TestRequestExtensionUseCase_Execute_OwningWorkstationAllowed(t *testing.T) {
	owned := buildSession(t, 1, session.StatusActive, 300)
	sessionRepo := &mockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.Session, error) {
			return owned, nil
		},
	}
	requestRepo := &mockExtensionRequestRepository{
		FindPendingBySessionFunc: func(ctx context.Context, sessionID uint) (*session.ExtensionRequest, error) {
			return nil, errors.NewNotFoundError("no pending extension request")
		},
		SaveFunc: func(ctx context.Context, r *session.ExtensionRequest) error {
			return r.SetID(7)
		},
	}

	uc := NewRequestExtensionUseCase(sessionRepo, requestRepo, noopLocks{}, passthroughTx{}, &mockNotifier{}, &mockAudit{}, testLogger())

	result, err := uc.Execute(context.Background(), RequestExtensionCommand{SessionID: 1, WorkstationID: 1, Minutes: 15})
	require.NoError(t, err)
	assert.Equal(t, uint(7), result.ID)
}

func TestRequestExtensionUseCase_Execute_SessionNotLive(t *testing.T) {
	for _, status := range []session.Status{session.StatusPending, session.StatusTerminated, session.StatusExpired} {
		t.Run(status.String(), func(t *testing.T) {
			remaining := 300
			if status.IsTerminal() {
				remaining = 0
			}
			s := buildSession(t, 1, status, remaining)
			sessionRepo := &mockSessionRepository{
				FindByIDFunc: func(ctx context.Context, id uint) (*session.Session, error) {
					return s, nil
				},
			}

			uc := NewRequestExtensionUseCase(sessionRepo, &mockExtensionRequestRepository{}, noopLocks{}, passthroughTx{}, &mockNotifier{}, &mockAudit{}, testLogger())

			_, err := uc.Execute(context.Background(), RequestExtensionCommand{SessionID: 1, Minutes: 15})
			require.Error(t, err)
			assert.True(t, errors.IsInvalidStateError(err))
		})
	}
}

func TestRequestExtensionUseCase_Execute_MinutesOutOfRange(t *testing.T) {
	active := buildSession(t, 1, session.StatusActive, 300)
	sessionRepo := &mockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.Session, error) {
			return active, nil
		},
	}

	uc := NewRequestExtensionUseCase(sessionRepo, &mockExtensionRequestRepository{}, noopLocks{}, passthroughTx{}, &mockNotifier{}, &mockAudit{}, testLogger())

	for _, minutes := range []int{0, 4, 61} {
		_, err := uc.Execute(context.Background(), RequestExtensionCommand{SessionID: 1, Minutes: minutes})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	}
}
