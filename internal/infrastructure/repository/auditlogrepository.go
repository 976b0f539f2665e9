package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"tempus/internal/infrastructure/persistence/models"
	"tempus/internal/shared/db"
)

// AuditEntry is the read-side shape of a recorded audit event.
type AuditEntry struct {
	ID        uint                   `json:"id"`
	Action    string                 `json:"action"`
	Actor     string                 `json:"actor"`
	SessionID *uint                  `json:"session_id,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt int64                  `json:"created_at"`
}

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Record(ctx context.Context, action, actor string, sessionID *uint, metadata map[string]interface{}) error {
	model := &models.AuditLogModel{
		Action:    action,
		Actor:     actor,
		SessionID: sessionID,
	}

	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal audit metadata: %w", err)
		}
		model.Metadata = raw
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	return nil
}

func (r *AuditLogRepository) ListBySession(ctx context.Context, sessionID uint, limit int) ([]AuditEntry, error) {
	if limit < 1 {
		limit = 50
	}

	var modelList []models.AuditLogModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	return auditEntriesFromModels(modelList)
}

func (r *AuditLogRepository) ListRecent(ctx context.Context, limit int) ([]AuditEntry, error) {
	if limit < 1 {
		limit = 50
	}

	var modelList []models.AuditLogModel
	err := db.GetTxFromContext(ctx, r.db).
		Order("created_at DESC").
		Limit(limit).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	return auditEntriesFromModels(modelList)
}

func auditEntriesFromModels(modelList []models.AuditLogModel) ([]AuditEntry, error) {
	entries := make([]AuditEntry, 0, len(modelList))
	for _, model := range modelList {
		entry := AuditEntry{
			ID:        model.ID,
			Action:    model.Action,
			Actor:     model.Actor,
			SessionID: model.SessionID,
			CreatedAt: model.CreatedAt,
		}
		if len(model.Metadata) > 0 {
			if err := json.Unmarshal(model.Metadata, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal audit metadata (id=%d): %w", model.ID, err)
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
