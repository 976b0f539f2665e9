package usecases

import (
	"context"

	"tempus/internal/application/session/dto"
	"tempus/internal/domain/session"
	"tempus/internal/shared/errors"
)

type ListExtensionRequestsQuery struct {
	// SessionID narrows the listing to one session when non-zero.
	SessionID uint
	// Status filters by request status; empty means pending.
	Status string
}

type ListExtensionRequestsUseCase struct {
	requestRepo session.ExtensionRequestRepository
}

func NewListExtensionRequestsUseCase(requestRepo session.ExtensionRequestRepository) *ListExtensionRequestsUseCase {
	return &ListExtensionRequestsUseCase{requestRepo: requestRepo}
}

func (uc *ListExtensionRequestsUseCase) Execute(ctx context.Context, query ListExtensionRequestsQuery) ([]*dto.ExtensionRequestDTO, error) {
	if query.SessionID != 0 {
		requests, err := uc.requestRepo.ListBySession(ctx, query.SessionID)
		if err != nil {
			return nil, err
		}
		return dto.ToExtensionRequestDTOs(requests), nil
	}

	status := session.RequestPending
	if query.Status != "" {
		status = session.RequestStatus(query.Status)
		if !status.IsValid() {
			return nil, errors.NewValidationError("invalid request status filter")
		}
	}

	requests, err := uc.requestRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return dto.ToExtensionRequestDTOs(requests), nil
}
