package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tempus/internal/domain/registry"
	"tempus/internal/infrastructure/persistence/mappers"
	"tempus/internal/infrastructure/persistence/models"
	"tempus/internal/shared/db"
	apperrors "tempus/internal/shared/errors"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Save(ctx context.Context, u *registry.User) error {
	model := mappers.UserToModel(u)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return u.SetID(model.ID)
}

func (r *UserRepository) Update(ctx context.Context, u *registry.User) error {
	model := mappers.UserToModel(u)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"first_name":      model.FirstName,
			"last_name":       model.LastName,
			"active":          model.Active,
			"total_sessions":  model.TotalSessions,
			"last_session_at": model.LastSessionAt,
			"updated_at":      model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*registry.User, error) {
	var model models.UserModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return mappers.UserToDomain(&model), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*registry.User, error) {
	var modelList []models.UserModel

	if err := db.GetTxFromContext(ctx, r.db).Order("last_name ASC, first_name ASC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*registry.User, 0, len(modelList))
	for i := range modelList {
		users = append(users, mappers.UserToDomain(&modelList[i]))
	}

	return users, nil
}
