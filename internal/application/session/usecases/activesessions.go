package usecases

import (
	"context"

	"tempus/internal/application/session/dto"
	"tempus/internal/domain/session"
)

type ActiveSessionsUseCase struct {
	sessionRepo session.SessionRepository
}

func NewActiveSessionsUseCase(sessionRepo session.SessionRepository) *ActiveSessionsUseCase {
	return &ActiveSessionsUseCase{sessionRepo: sessionRepo}
}

func (uc *ActiveSessionsUseCase) Execute(ctx context.Context) ([]*dto.SessionDTO, error) {
	sessions, err := uc.sessionRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToSessionDTOs(sessions), nil
}
