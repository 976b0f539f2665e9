package migration

import (
	"tempus/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.SessionModel{},
		&models.ExtensionRequestModel{},
		&models.WorkstationModel{},
		&models.UserModel{},
		&models.AuditLogModel{},
	}
}
