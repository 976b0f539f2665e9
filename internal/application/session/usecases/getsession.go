package usecases

import (
	"context"

	"tempus/internal/application/session/dto"
	"tempus/internal/domain/session"
)

type GetSessionQuery struct {
	SessionID uint
}

type GetSessionUseCase struct {
	sessionRepo session.SessionRepository
}

func NewGetSessionUseCase(sessionRepo session.SessionRepository) *GetSessionUseCase {
	return &GetSessionUseCase{sessionRepo: sessionRepo}
}

func (uc *GetSessionUseCase) Execute(ctx context.Context, query GetSessionQuery) (*dto.SessionDTO, error) {
	found, err := uc.sessionRepo.FindByID(ctx, query.SessionID)
	if err != nil {
		return nil, err
	}
	return dto.ToSessionDTO(found), nil
}
