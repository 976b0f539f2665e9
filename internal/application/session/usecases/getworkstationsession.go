package usecases

import (
	"context"

	"tempus/internal/domain/session"
)

type GetWorkstationSessionQuery struct {
	WorkstationID uint
}

// GetWorkstationSessionUseCase resolves the countdown snapshot of a
// workstation's current session. Kiosk displays subscribe per workstation
// and need the snapshot at handshake, before the first tick arrives.
type GetWorkstationSessionUseCase struct {
	sessionRepo session.SessionRepository
}

func NewGetWorkstationSessionUseCase(sessionRepo session.SessionRepository) *GetWorkstationSessionUseCase {
	return &GetWorkstationSessionUseCase{sessionRepo: sessionRepo}
}

func (uc *GetWorkstationSessionUseCase) Execute(ctx context.Context, query GetWorkstationSessionQuery) (*GetTimeResult, error) {
	found, err := uc.sessionRepo.FindLiveByWorkstation(ctx, query.WorkstationID)
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
