package mappers

import (
	"fmt"

	"tempus/internal/domain/session"
	"tempus/internal/infrastructure/persistence/models"
)

// SessionToModel converts a session domain entity to a persistence model.
func SessionToModel(s *session.Session) *models.SessionModel {
	return &models.SessionModel{
		ID:              s.ID(),
		AccessCode:      s.AccessCode(),
		UserID:          s.UserID(),
		WorkstationID:   s.WorkstationID(),
		InitialDuration: s.InitialDuration(),
		Remaining:       s.Remaining(),
		ExtendedTotal:   s.ExtendedTotal(),
		Status:          s.Status().String(),
		Operator:        s.Operator(),
		Notes:           s.Notes(),
		StartedAt:       timePtrToMillis(s.StartedAt()),
		EndedAt:         timePtrToMillis(s.EndedAt()),
		Version:         s.Version(),
		CreatedAt:       s.CreatedAt().UnixMilli(),
		UpdatedAt:       s.UpdatedAt().UnixMilli(),
	}
}

// SessionToDomain converts a session persistence model to a domain entity.
func SessionToDomain(model *models.SessionModel) (*session.Session, error) {
	status, ok := session.NewStatus(model.Status)
	if !ok {
		return nil, fmt.Errorf("invalid session status %q (id=%d)", model.Status, model.ID)
	}

	s, err := session.ReconstructSession(
		model.ID,
		model.AccessCode,
		model.UserID,
		model.WorkstationID,
		model.InitialDuration,
		model.Remaining,
		model.ExtendedTotal,
		millisPtrToTime(model.StartedAt),
		millisPtrToTime(model.EndedAt),
		status,
		model.Operator,
		model.Notes,
		model.Version,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct session (id=%d): %w", model.ID, err)
	}

	return s, nil
}
