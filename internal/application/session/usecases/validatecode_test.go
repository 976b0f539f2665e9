package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempus/internal/domain/session"
	"tempus/internal/shared/errors"
)

func TestValidateCodeUseCase_Execute_PendingSession(t *testing.T) {
	pending := buildSession(t, 1, session.StatusPending, 3600)
	sessionRepo := &mockSessionRepository{
		FindByCodeFunc: func(ctx context.Context, code string) (*session.Session, error) {
			assert.Equal(t, "ABCD23", code)
			return pending, nil
		},
	}

	uc := NewValidateCodeUseCase(sessionRepo, testLogger())

	result, err := uc.Execute(context.Background(), ValidateCodeCommand{Code: " abcd23 "})
	require.NoError(t, err)
	assert.False(t, result.IsReconnection)
	assert.Equal(t, "pending", result.Session.Status)
	assert.Equal(t, 3600, result.Session.Remaining)
}

func TestValidateCodeUseCase_Execute_ActiveSessionIsReconnection(t *testing.T) {
	active := buildSession(t, 1, session.StatusActive, 1800)
	sessionRepo := &mockSessionRepository{
		FindByCodeFunc: func(ctx context.Context, code string) (*session.Session, error) {
			return active, nil
		},
	}

	uc := NewValidateCodeUseCase(sessionRepo, testLogger())

	result, err := uc.Execute(context.Background(), ValidateCodeCommand{Code: "ABCD23", WorkstationID: 1})
	require.NoError(t, err)
	assert.True(t, result.IsReconnection)
}

func TestValidateCodeUseCase_Execute_RejectionsAreIndistinguishable(t *testing.T) {
	terminal := buildSession(t, 1, session.StatusTerminated, 0)

	tests := []struct {
		name          string
		workstationID uint
		repo          *mockSessionRepository
	}{
		{
			name: "unknown code",
			repo: &mockSessionRepository{
				FindByCodeFunc: func(ctx context.Context, code string) (*session.Session, error) {
					return nil, errors.NewNotFoundError("session not found")
				},
			},
		},
		{
			name: "finished session",
			repo: &mockSessionRepository{
				FindByCodeFunc: func(ctx context.Context, code string) (*session.Session, error) {
					return terminal, nil
				},
			},
		},
		{
			name:          "wrong workstation",
			workstationID: 42,
			repo: &mockSessionRepository{
				FindByCodeFunc: func(ctx context.Context, code string) (*session.Session, error) {
					return buildSession(t, 1, session.StatusPending, 3600), nil
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewValidateCodeUseCase(tt.repo, testLogger())

			_, err := uc.Execute(context.Background(), ValidateCodeCommand{
				Code:          "ABCD23",
				WorkstationID: tt.workstationID,
			})
			require.Error(t, err)
			assert.True(t, errors.IsNotFoundError(err))
			assert.Equal(t, "invalid access code", errors.GetAppError(err).Message)
		})
	}
}

func TestValidateCodeUseCase_Execute_EmptyCode(t *testing.T) {
	uc := NewValidateCodeUseCase(&mockSessionRepository{}, testLogger())

	_, err := uc.Execute(context.Background(), ValidateCodeCommand{Code: "   "})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
