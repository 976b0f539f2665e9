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

type WorkstationRepository struct {
	db *gorm.DB
}

func NewWorkstationRepository(db *gorm.DB) *WorkstationRepository {
	return &WorkstationRepository{db: db}
}

func (r *WorkstationRepository) Save(ctx context.Context, w *registry.Workstation) error {
	model := mappers.WorkstationToModel(w)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create workstation: %w", err)
	}

	return w.SetID(model.ID)
}

func (r *WorkstationRepository) Update(ctx context.Context, w *registry.Workstation) error {
	model := mappers.WorkstationToModel(w)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.WorkstationModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"location":       model.Location,
			"status":         model.Status,
			"token_hash":     model.TokenHash,
			"total_sessions": model.TotalSessions,
			"last_seen_at":   model.LastSeenAt,
			"updated_at":     model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update workstation: %w", result.Error)
	}

	return nil
}

func (r *WorkstationRepository) FindByID(ctx context.Context, id uint) (*registry.Workstation, error) {
	var model models.WorkstationModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("workstation not found")
		}
		return nil, fmt.Errorf("failed to get workstation: %w", err)
	}

	return mappers.WorkstationToDomain(&model), nil
}

func (r *WorkstationRepository) FindByName(ctx context.Context, name string) (*registry.Workstation, error) {
	var model models.WorkstationModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("name = ?", name).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("workstation not found")
		}
		return nil, fmt.Errorf("failed to get workstation by name: %w", err)
	}

	return mappers.WorkstationToDomain(&model), nil
}

func (r *WorkstationRepository) List(ctx context.Context) ([]*registry.Workstation, error) {
	var modelList []models.WorkstationModel

	if err := db.GetTxFromContext(ctx, r.db).Order("name ASC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list workstations: %w", err)
	}

	workstations := make([]*registry.Workstation, 0, len(modelList))
	for i := range modelList {
		workstations = append(workstations, mappers.WorkstationToDomain(&modelList[i]))
	}

	return workstations, nil
}
