package usecases

import (
	"context"

	"tempus/internal/domain/session"
)

// SessionStatsResult aggregates counters for the operator dashboard.
type SessionStatsResult struct {
	Total           int64            `json:"total"`
	Today           int64            `json:"today"`
	ByStatus        map[string]int64 `json:"by_status"`
	AvgDurationSecs int              `json:"avg_duration_secs"`
	TotalAddedSecs  int64            `json:"total_added_secs"`
}

type SessionStatsUseCase struct {
	sessionRepo session.SessionRepository
}

func NewSessionStatsUseCase(sessionRepo session.SessionRepository) *SessionStatsUseCase {
	return &SessionStatsUseCase{sessionRepo: sessionRepo}
}

func (uc *SessionStatsUseCase) Execute(ctx context.Context) (*SessionStatsResult, error) {
	stats, err := uc.sessionRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &SessionStatsResult{
		Total:           stats.Total,
		Today:           stats.Today,
		ByStatus:        stats.ByStatus,
		AvgDurationSecs: stats.AvgDurationSecs,
		TotalAddedSecs:  stats.TotalAddedSecs,
	}, nil
}
