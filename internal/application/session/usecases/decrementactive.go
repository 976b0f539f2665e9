package usecases

import (
	"context"
	"time"

	"tempus/internal/domain/registry"
	"tempus/internal/domain/session"
	"tempus/internal/shared/errors"
	"tempus/internal/shared/logger"
)

// DecrementActiveUseCase is the countdown tick. Every interval it walks the
// active sessions, subtracts the elapsed seconds and expires the ones that
// hit zero. One misbehaving session never stops the clock for the others.
type DecrementActiveUseCase struct {
	sessionRepo     session.SessionRepository
	requestRepo     session.ExtensionRequestRepository
	workstationRepo registry.WorkstationRepository
	locks           SessionLocker
	notifier        Notifier
	audit           AuditSink
	seconds         int
	logger          logger.Interface
}

func NewDecrementActiveUseCase(
	sessionRepo session.SessionRepository,
	requestRepo session.ExtensionRequestRepository,
	workstationRepo registry.WorkstationRepository,
	locks SessionLocker,
	notifier Notifier,
	audit AuditSink,
	seconds int,
	logger logger.Interface,
) *DecrementActiveUseCase {
	if seconds < 1 {
		seconds = 1
	}
	return &DecrementActiveUseCase{
		sessionRepo:     sessionRepo,
		requestRepo:     requestRepo,
		workstationRepo: workstationRepo,
		locks:           locks,
		notifier:        notifier,
		audit:           audit,
		seconds:         seconds,
		logger:          logger,
	}
}

func (uc *DecrementActiveUseCase) Execute(ctx context.Context) (int, error) {
	active, err := uc.sessionRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, s := range active {
		if err := uc.decrementOne(ctx, s.ID()); err != nil {
			// A busy session is being mutated by an operator right now; the
			// next tick will catch up.
			if !errors.IsBusyError(err) {
				uc.logger.Errorw("failed to decrement session",
					"session_id", s.ID(),
					"error", err,
				)
			}
			continue
		}
		processed++
	}

	return processed, nil
}

func (uc *DecrementActiveUseCase) decrementOne(ctx context.Context, sessionID uint) error {
	release, err := uc.locks.Acquire(ctx, sessionID)
	if err != nil {
		return err
	}
	defer release()

	current, err := uc.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}

	now := time.Now()
	evt, err := current.Decrement(uc.seconds, now)
	if err != nil {
		// The session left the active state between the list and the lock.
		if errors.IsInvalidStateError(err) {
			return nil
		}
		return err
	}

	if err := uc.sessionRepo.Update(ctx, current); err != nil {
		return err
	}

	uc.notifier.Publish(evt)

	if evt.Type == session.EventSessionTerminated {
		uc.releaseWorkstation(ctx, current.WorkstationID())
		expirePendingRequest(ctx, uc.requestRepo, current.ID(), now, uc.logger)

		id := current.ID()
		uc.audit.Record("session.expired", "system", &id, nil)

		uc.logger.Infow("session expired",
			"session_id", current.ID(),
		)
	}

	return nil
}

func (uc *DecrementActiveUseCase) releaseWorkstation(ctx context.Context, workstationID uint) {
	workstation, err := uc.workstationRepo.FindByID(ctx, workstationID)
	if err == nil {
		workstation.MarkAvailable()
		err = uc.workstationRepo.Update(ctx, workstation)
	}
	if err != nil {
		uc.logger.Warnw("failed to release workstation",
			"workstation_id", workstationID,
			"error", err,
		)
	}
}
