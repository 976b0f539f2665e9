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

func TestGetTimeUseCase_Execute(t *testing.T) {
	active := buildSession(t, 1, session.StatusActive, 125)
	sessionRepo := &mockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*session.Session, error) {
			return active, nil
		},
	}

	uc := NewGetTimeUseCase(sessionRepo)

	result, err := uc.Execute(context.Background(), GetTimeQuery{SessionID: 1})
	require.NoError(t, err)
	assert.Equal(t, 125, result.Remaining)
	assert.Equal(t, "02:05", result.Clock)
	assert.Equal(t, "active", result.Status)
}

func TestListSessionsUseCase_Execute_StatusFilter(t *testing.T) {
	var captured session.Filter
	sessionRepo := &mockSessionRepository{
		ListFunc: func(ctx context.Context, filter session.Filter) ([]*session.Session, int64, error) {
			captured = filter
			return []*session.Session{buildSession(t, 1, session.StatusActive, 600)}, 1, nil
		},
	}

	uc := NewListSessionsUseCase(sessionRepo)

	result, err := uc.Execute(context.Background(), ListSessionsQuery{Status: "active", Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Sessions, 1)

	require.NotNil(t, captured.Status)
	assert.Equal(t, session.StatusActive, *captured.Status)
	assert.Equal(t, 2, captured.Page)
	assert.Equal(t, 10, captured.PageSize)
}

func TestListSessionsUseCase_Execute_InvalidStatus(t *testing.T) {
	uc := NewListSessionsUseCase(&mockSessionRepository{})

	_, err := uc.Execute(context.Background(), ListSessionsQuery{Status: "running"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestCleanupSessionsUseCase_Execute(t *testing.T) {
	var captured time.Time
	sessionRepo := &mockSessionRepository{
		DeleteEndedBeforeFunc: func(ctx context.Context, cutoff time.Time) (int64, error) {
			captured = cutoff
			return 3, nil
		},
	}
	audit := &mockAudit{}

	uc := NewCleanupSessionsUseCase(sessionRepo, audit, 30, testLogger())

	deleted, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -30), captured, time.Minute)

	calls := audit.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "session.cleanup", calls[0].Action)
}

func TestDailyReportUseCase_Execute(t *testing.T) {
	sessionRepo := &mockSessionRepository{
		StatsFunc: func(ctx context.Context) (*session.Stats, error) {
			return &session.Stats{
				Total:    20,
				Today:    4,
				ByStatus: map[string]int64{"active": 2, "terminated": 18},
			}, nil
		},
	}
	audit := &mockAudit{}

	uc := NewDailyReportUseCase(sessionRepo, audit, testLogger())

	today, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, today)

	calls := audit.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "report.daily", calls[0].Action)
}

func TestListExtensionRequestsUseCase_Execute_DefaultsToPending(t *testing.T) {
	var captured session.RequestStatus
	requestRepo := &mockExtensionRequestRepository{
		ListByStatusFunc: func(ctx context.Context, status session.RequestStatus) ([]*session.ExtensionRequest, error) {
			captured = status
			return nil, nil
		},
	}

	uc := NewListExtensionRequestsUseCase(requestRepo)

	_, err := uc.Execute(context.Background(), ListExtensionRequestsQuery{})
	require.NoError(t, err)
	assert.Equal(t, session.RequestPending, captured)
}

func TestListExtensionRequestsUseCase_Execute_InvalidStatus(t *testing.T) {
	uc := NewListExtensionRequestsUseCase(&mockExtensionRequestRepository{})

	_, err := uc.Execute(context.Background(), ListExtensionRequestsQuery{Status: "stalled"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
