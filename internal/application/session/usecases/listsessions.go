package usecases

import (
	"context"

	"tempus/internal/application/session/dto"
	"tempus/internal/domain/session"
	"tempus/internal/shared/errors"
)

type ListSessionsQuery struct {
	Status        string
	UserID        uint
	WorkstationID uint
	Page          int
	PageSize      int
}

type ListSessionsResult struct {
	Sessions []*dto.SessionDTO `json:"sessions"`
	Total    int64             `json:"total"`
}

type ListSessionsUseCase struct {
	sessionRepo session.SessionRepository
}

func NewListSessionsUseCase(sessionRepo session.SessionRepository) *ListSessionsUseCase {
	return &ListSessionsUseCase{sessionRepo: sessionRepo}
}

func (uc *ListSessionsUseCase) Execute(ctx context.Context, query ListSessionsQuery) (*ListSessionsResult, error) {
	filter := session.Filter{
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	if query.Status != "" {
		status, ok := session.NewStatus(query.Status)
		if !ok {
			return nil, errors.NewValidationError("invalid status filter")
		}
		filter.Status = &status
	}
	if query.UserID != 0 {
		filter.UserID = &query.UserID
	}
	if query.WorkstationID != 0 {
		filter.WorkstationID = &query.WorkstationID
	}

	sessions, total, err := uc.sessionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListSessionsResult{
		Sessions: dto.ToSessionDTOs(sessions),
		Total:    total,
	}, nil
}
