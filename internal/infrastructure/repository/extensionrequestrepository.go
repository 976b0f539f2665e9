package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tempus/internal/domain/session"
	"tempus/internal/infrastructure/persistence/mappers"
	"tempus/internal/infrastructure/persistence/models"
	"tempus/internal/shared/db"
	apperrors "tempus/internal/shared/errors"
)

type ExtensionRequestRepository struct {
	db *gorm.DB
}

func NewExtensionRequestRepository(db *gorm.DB) *ExtensionRequestRepository {
	return &ExtensionRequestRepository{db: db}
}

func (r *ExtensionRequestRepository) Save(ctx context.Context, req *session.ExtensionRequest) error {
	model := mappers.ExtensionRequestToModel(req)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create extension request: %w", err)
	}

	return req.SetID(model.ID)
}

// Update persists a resolution. The WHERE clause only matches the row while
// it is still pending, so two responders racing on the same request cannot
// both win: the loser sees zero affected rows and an AlreadyResolved error.
func (r *ExtensionRequestRepository) Update(ctx context.Context, req *session.ExtensionRequest) error {
	model := mappers.ExtensionRequestToModel(req)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ExtensionRequestModel{}).
		Where("id = ? AND status = ?", model.ID, session.RequestPending.String()).
		Updates(map[string]interface{}{
			"status":           model.Status,
			"responded_by":     model.RespondedBy,
			"responded_at":     model.RespondedAt,
			"response_message": model.ResponseMessage,
			"updated_at":       model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update extension request: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return apperrors.NewAlreadyResolvedError("extension request already resolved")
	}

	return nil
}

func (r *ExtensionRequestRepository) FindByID(ctx context.Context, id uint) (*session.ExtensionRequest, error) {
	var model models.ExtensionRequestModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("extension request not found")
		}
		return nil, fmt.Errorf("failed to get extension request: %w", err)
	}

	return mappers.ExtensionRequestToDomain(&model)
}

func (r *ExtensionRequestRepository) FindPendingBySession(ctx context.Context, sessionID uint) (*session.ExtensionRequest, error) {
	var model models.ExtensionRequestModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("session_id = ? AND status = ?", sessionID, session.RequestPending.String()).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("no pending extension request")
		}
		return nil, fmt.Errorf("failed to get pending extension request: %w", err)
	}

	return mappers.ExtensionRequestToDomain(&model)
}

func (r *ExtensionRequestRepository) ListByStatus(ctx context.Context, status session.RequestStatus) ([]*session.ExtensionRequest, error) {
	var modelList []models.ExtensionRequestModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("status = ?", status.String()).
		Order("created_at ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list extension requests: %w", err)
	}

	return extensionRequestsToDomain(modelList)
}

func (r *ExtensionRequestRepository) ListBySession(ctx context.Context, sessionID uint) ([]*session.ExtensionRequest, error) {
	var modelList []models.ExtensionRequestModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list session extension requests: %w", err)
	}

	return extensionRequestsToDomain(modelList)
}

func extensionRequestsToDomain(modelList []models.ExtensionRequestModel) ([]*session.ExtensionRequest, error) {
	requests := make([]*session.ExtensionRequest, 0, len(modelList))
	for i := range modelList {
		req, err := mappers.ExtensionRequestToDomain(&modelList[i])
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}
