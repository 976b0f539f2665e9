package services

import (
	"context"
	"time"

	"tempus/internal/infrastructure/repository"
	"tempus/internal/shared/goroutine"
	"tempus/internal/shared/logger"
)

// AuditRecorder writes audit entries off the request path. A failed write is
// logged and never surfaces to the operation that produced it.
type AuditRecorder struct {
	repo   *repository.AuditLogRepository
	logger logger.Interface
}

func NewAuditRecorder(repo *repository.AuditLogRepository, log logger.Interface) *AuditRecorder {
	return &AuditRecorder{
		repo:   repo,
		logger: log,
	}
}

// Record persists the entry asynchronously.
func (r *AuditRecorder) Record(action, actor string, sessionID *uint, metadata map[string]interface{}) {
	goroutine.SafeGo(r.logger, "audit.record", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := r.repo.Record(ctx, action, actor, sessionID, metadata); err != nil {
			r.logger.Errorw("failed to record audit entry",
				"action", action,
				"error", err,
			)
		}
	})
}
