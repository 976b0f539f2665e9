package mappers

import (
	"fmt"

	"tempus/internal/domain/session"
	"tempus/internal/infrastructure/persistence/models"
)

// ExtensionRequestToModel converts an extension request domain entity to a persistence model.
func ExtensionRequestToModel(r *session.ExtensionRequest) *models.ExtensionRequestModel {
	return &models.ExtensionRequestModel{
		ID:               r.ID(),
		SessionID:        r.SessionID(),
		MinutesRequested: r.MinutesRequested(),
		Status:           r.Status().String(),
		RespondedBy:      r.RespondedBy(),
		RespondedAt:      timePtrToMillis(r.RespondedAt()),
		ResponseMessage:  r.ResponseMessage(),
		CreatedAt:        r.CreatedAt().UnixMilli(),
		UpdatedAt:        r.UpdatedAt().UnixMilli(),
	}
}

// ExtensionRequestToDomain converts an extension request persistence model to a domain entity.
func ExtensionRequestToDomain(model *models.ExtensionRequestModel) (*session.ExtensionRequest, error) {
	r, err := session.ReconstructExtensionRequest(
		model.ID,
		model.SessionID,
		model.MinutesRequested,
		session.RequestStatus(model.Status),
		model.RespondedBy,
		millisPtrToTime(model.RespondedAt),
		model.ResponseMessage,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct extension request (id=%d): %w", model.ID, err)
	}

	return r, nil
}
