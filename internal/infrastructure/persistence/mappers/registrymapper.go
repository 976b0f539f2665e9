package mappers

import (
	"tempus/internal/domain/registry"
	"tempus/internal/infrastructure/persistence/models"
)

// WorkstationToModel converts a workstation domain entity to a persistence model.
func WorkstationToModel(w *registry.Workstation) *models.WorkstationModel {
	return &models.WorkstationModel{
		ID:            w.ID(),
		Name:          w.Name(),
		Location:      w.Location(),
		Status:        w.Status().String(),
		TokenHash:     w.TokenHash(),
		TotalSessions: w.TotalSessions(),
		LastSeenAt:    timePtrToMillis(w.LastSeenAt()),
		CreatedAt:     w.CreatedAt().UnixMilli(),
		UpdatedAt:     w.UpdatedAt().UnixMilli(),
	}
}

// WorkstationToDomain converts a workstation persistence model to a domain entity.
func WorkstationToDomain(model *models.WorkstationModel) *registry.Workstation {
	return registry.ReconstructWorkstation(
		model.ID,
		model.Name,
		model.Location,
		registry.WorkstationStatus(model.Status),
		model.TokenHash,
		model.TotalSessions,
		millisPtrToTime(model.LastSeenAt),
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

// UserToModel converts a user domain entity to a persistence model.
func UserToModel(u *registry.User) *models.UserModel {
	return &models.UserModel{
		ID:            u.ID(),
		FirstName:     u.FirstName(),
		LastName:      u.LastName(),
		Active:        u.Active(),
		TotalSessions: u.TotalSessions(),
		LastSessionAt: timePtrToMillis(u.LastSessionAt()),
		CreatedAt:     u.CreatedAt().UnixMilli(),
		UpdatedAt:     u.UpdatedAt().UnixMilli(),
	}
}

// UserToDomain converts a user persistence model to a domain entity.
func UserToDomain(model *models.UserModel) *registry.User {
	return registry.ReconstructUser(
		model.ID,
		model.FirstName,
		model.LastName,
		model.Active,
		model.TotalSessions,
		millisPtrToTime(model.LastSessionAt),
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
