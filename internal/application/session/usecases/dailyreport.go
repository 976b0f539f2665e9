package usecases

import (
	"context"

	"tempus/internal/domain/session"
	"tempus/internal/shared/logger"
)

// DailyReportUseCase snapshots the day's usage into the audit trail. Runs
// as a daily job; the numbers also land in the log for operators without
// dashboard access.
type DailyReportUseCase struct {
	sessionRepo session.SessionRepository
	audit       AuditSink
	logger      logger.Interface
}

func NewDailyReportUseCase(
	sessionRepo session.SessionRepository,
	audit AuditSink,
	logger logger.Interface,
) *DailyReportUseCase {
	return &DailyReportUseCase{
		sessionRepo: sessionRepo,
		audit:       audit,
		logger:      logger,
	}
}

func (uc *DailyReportUseCase) Execute(ctx context.Context) (int, error) {
	stats, err := uc.sessionRepo.Stats(ctx)
	if err != nil {
		uc.logger.Errorw("daily report failed", "error", err)
		return 0, err
	}

	uc.audit.Record("report.daily", "system", nil, map[string]interface{}{
		"total":             stats.Total,
		"today":             stats.Today,
		"by_status":         stats.ByStatus,
		"avg_duration_secs": stats.AvgDurationSecs,
		"total_added_secs":  stats.TotalAddedSecs,
	})

	uc.logger.Infow("daily session report",
		"total", stats.Total,
		"today", stats.Today,
		"avg_duration_secs", stats.AvgDurationSecs,
		"total_added_secs", stats.TotalAddedSecs,
	)

	return int(stats.Today), nil
}
