package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tempus/internal/domain/session"
	"tempus/internal/infrastructure/persistence/mappers"
	"tempus/internal/infrastructure/persistence/models"
	"tempus/internal/shared/db"
	apperrors "tempus/internal/shared/errors"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Save(ctx context.Context, s *session.Session) error {
	model := mappers.SessionToModel(s)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	// Write back the auto-generated ID to the domain object
	return s.SetID(model.ID)
}

// Update persists a mutated session with an optimistic lock on the version
// column. The domain layer bumps the version on every transition, so the
// WHERE clause matches the pre-transition value. Zero affected rows means a
// concurrent writer got there first.
func (r *SessionRepository) Update(ctx context.Context, s *session.Session) error {
	model := mappers.SessionToModel(s)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SessionModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"remaining":      model.Remaining,
			"extended_total": model.ExtendedTotal,
			"status":         model.Status,
			"operator":       model.Operator,
			"notes":          model.Notes,
			"started_at":     model.StartedAt,
			"ended_at":       model.EndedAt,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update session: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return apperrors.NewBusyError("session was modified concurrently")
	}

	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id uint) (*session.Session, error) {
	var model models.SessionModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return mappers.SessionToDomain(&model)
}

func (r *SessionRepository) FindByCode(ctx context.Context, code string) (*session.Session, error) {
	var model models.SessionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("access_code = ?", code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("session not found")
		}
		return nil, fmt.Errorf("failed to get session by code: %w", err)
	}

	return mappers.SessionToDomain(&model)
}

func (r *SessionRepository) FindLiveByWorkstation(ctx context.Context, workstationID uint) (*session.Session, error) {
	var model models.SessionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("workstation_id = ? AND status IN ?", workstationID, liveStatuses()).
		Order("id DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("no live session for workstation")
		}
		return nil, fmt.Errorf("failed to get workstation session: %w", err)
	}

	return mappers.SessionToDomain(&model)
}

func (r *SessionRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	var count int64

	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.SessionModel{}).
		Where("access_code = ? AND status IN ?", code, liveStatuses()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check access code: %w", err)
	}

	return count > 0, nil
}

func (r *SessionRepository) ListActive(ctx context.Context) ([]*session.Session, error) {
	var modelList []models.SessionModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("status = ?", session.StatusActive.String()).
		Order("id ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}

	return sessionsToDomain(modelList)
}

func (r *SessionRepository) List(ctx context.Context, filter session.Filter) ([]*session.Session, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.SessionModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.WorkstationID != nil {
		query = query.Where("workstation_id = ?", *filter.WorkstationID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var modelList []models.SessionModel
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions, err := sessionsToDomain(modelList)
	if err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

func (r *SessionRepository) DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("status IN ? AND ended_at IS NOT NULL AND ended_at < ?",
			[]string{session.StatusTerminated.String(), session.StatusExpired.String()},
			cutoff.UnixMilli()).
		Delete(&models.SessionModel{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete ended sessions: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *SessionRepository) Stats(ctx context.Context) (*session.Stats, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	stats := &session.Stats{ByStatus: make(map[string]int64)}

	if err := tx.Model(&models.SessionModel{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	dayStart := time.Now().Truncate(24 * time.Hour).UnixMilli()
	if err := tx.Model(&models.SessionModel{}).
		Where("created_at >= ?", dayStart).
		Count(&stats.Today).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's sessions: %w", err)
	}

	var byStatus []struct {
		Status string
		Count  int64
	}
	if err := tx.Model(&models.SessionModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to group sessions by status: %w", err)
	}
	for _, row := range byStatus {
		stats.ByStatus[row.Status] = row.Count
	}

	var aggregates struct {
		AvgDuration float64
		TotalAdded  int64
	}
	if err := tx.Model(&models.SessionModel{}).
		Select("COALESCE(AVG(initial_duration + extended_total), 0) as avg_duration, COALESCE(SUM(extended_total), 0) as total_added").
		Scan(&aggregates).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate session durations: %w", err)
	}
	stats.AvgDurationSecs = int(aggregates.AvgDuration)
	stats.TotalAddedSecs = aggregates.TotalAdded

	return stats, nil
}

func sessionsToDomain(modelList []models.SessionModel) ([]*session.Session, error) {
	sessions := make([]*session.Session, 0, len(modelList))
	for i := range modelList {
		s, err := mappers.SessionToDomain(&modelList[i])
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func liveStatuses() []string {
	return []string{
		session.StatusPending.String(),
		session.StatusActive.String(),
		session.StatusSuspended.String(),
	}
}
