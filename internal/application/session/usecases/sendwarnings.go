package usecases

import (
	"context"
	"sync"

	"tempus/internal/domain/session"
	"tempus/internal/shared/logger"
)

const minWarningTolerance = 5

// SendWarningsUseCase scans active sessions and emits a warning event when
// the countdown crosses a configured threshold. Each threshold fires once
// per session; a top-up that lifts the countdown back above the threshold
// re-arms it.
type SendWarningsUseCase struct {
	sessionRepo session.SessionRepository
	notifier    Notifier
	thresholds  []int
	tolerance   int
	logger      logger.Interface

	fired   map[uint]map[int]bool
	firedMu sync.Mutex
}

func NewSendWarningsUseCase(
	sessionRepo session.SessionRepository,
	notifier Notifier,
	thresholds []int,
	scanInterval int,
	logger logger.Interface,
) *SendWarningsUseCase {
	if len(thresholds) == 0 {
		thresholds = []int{300, 120, 60, 30, 10}
	}
	// Between two scans the countdown moves by the scan interval, so the
	// match window must be at least that wide or a threshold can be jumped
	// without ever firing.
	tolerance := scanInterval
	if tolerance < minWarningTolerance {
		tolerance = minWarningTolerance
	}
	return &SendWarningsUseCase{
		sessionRepo: sessionRepo,
		notifier:    notifier,
		thresholds:  thresholds,
		tolerance:   tolerance,
		logger:      logger,
		fired:       make(map[uint]map[int]bool),
	}
}

func (uc *SendWarningsUseCase) Execute(ctx context.Context) (int, error) {
	active, err := uc.sessionRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	uc.firedMu.Lock()
	defer uc.firedMu.Unlock()

	uc.dropStale(active)

	sent := 0
	for _, s := range active {
		sent += uc.scanSession(s)
	}

	return sent, nil
}

func (uc *SendWarningsUseCase) scanSession(s *session.Session) int {
	state := uc.fired[s.ID()]
	if state == nil {
		state = make(map[int]bool)
		uc.fired[s.ID()] = state
	}

	remaining := s.Remaining()
	sent := 0
	for _, threshold := range uc.thresholds {
		// Time added since the last crossing re-arms the threshold.
		if remaining > threshold+uc.tolerance {
			state[threshold] = false
			continue
		}

		if state[threshold] || remaining < threshold-uc.tolerance {
			continue
		}

		uc.notifier.Publish(s.WarningEvent(threshold))
		state[threshold] = true
		sent++

		uc.logger.Infow("time warning sent",
			"session_id", s.ID(),
			"threshold", threshold,
			"remaining", remaining,
		)
	}

	return sent
}

// dropStale forgets tracking state for sessions that are no longer active.
func (uc *SendWarningsUseCase) dropStale(active []*session.Session) {
	current := make(map[uint]struct{}, len(active))
	for _, s := range active {
		current[s.ID()] = struct{}{}
	}
	for id := range uc.fired {
		if _, ok := current[id]; !ok {
			delete(uc.fired, id)
		}
	}
}
