package usecases

import (
	"context"

	"tempus/internal/domain/session"
)

type GetTimeQuery struct {
	SessionID uint
}

// GetTimeResult is the lightweight countdown snapshot polled by clients
// that do not hold a WebSocket subscription.
type GetTimeResult struct {
	SessionID   uint   `json:"session_id"`
	Remaining   int    `json:"remaining"`
	Clock       string `json:"clock"`
	PercentUsed int    `json:"percent_used"`
	Status      string `json:"status"`
}

type GetTimeUseCase struct {
	sessionRepo session.SessionRepository
}

func NewGetTimeUseCase(sessionRepo session.SessionRepository) *GetTimeUseCase {
	return &GetTimeUseCase{sessionRepo: sessionRepo}
}

func (uc *GetTimeUseCase) Execute(ctx context.Context, query GetTimeQuery) (*GetTimeResult, error) {
	found, err := uc.sessionRepo.FindByID(ctx, query.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetTimeResult{
		SessionID:   found.ID(),
		Remaining:   found.Remaining(),
		Clock:       found.Clock(),
		PercentUsed: found.PercentUsed(),
		Status:      found.Status().String(),
	}, nil
}
