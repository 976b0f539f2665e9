package usecases

import (
	"context"
	"time"

	"tempus/internal/domain/session"
	"tempus/internal/shared/logger"
)

// CleanupSessionsUseCase deletes terminated and expired sessions that have
// aged past the retention window. Runs as a daily job.
type CleanupSessionsUseCase struct {
	sessionRepo   session.SessionRepository
	audit         AuditSink
	retentionDays int
	logger        logger.Interface
}

func NewCleanupSessionsUseCase(
	sessionRepo session.SessionRepository,
	audit AuditSink,
	retentionDays int,
	logger logger.Interface,
) *CleanupSessionsUseCase {
	if retentionDays < 1 {
		retentionDays = 90
	}
	return &CleanupSessionsUseCase{
		sessionRepo:   sessionRepo,
		audit:         audit,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

func (uc *CleanupSessionsUseCase) Execute(ctx context.Context) (int, error) {
	cutoff := time.Now().AddDate(0, 0, -uc.retentionDays)

	deleted, err := uc.sessionRepo.DeleteEndedBefore(ctx, cutoff)
	if err != nil {
		uc.logger.Errorw("session cleanup failed", "error", err)
		return 0, err
	}

	if deleted > 0 {
		uc.audit.Record("session.cleanup", "system", nil, map[string]interface{}{
			"deleted":        deleted,
			"retention_days": uc.retentionDays,
		})
		uc.logger.Infow("old sessions cleaned up",
			"deleted", deleted,
			"cutoff", cutoff,
		)
	}

	return int(deleted), nil
}
