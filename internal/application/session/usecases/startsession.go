package usecases

import (
	"context"
	"time"

	"tempus/internal/application/session/dto"
	"tempus/internal/domain/registry"
	"tempus/internal/domain/session"
	"tempus/internal/shared/errors"
	"tempus/internal/shared/logger"
)

type StartSessionCommand struct {
	Code string
	// WorkstationID is the authenticated workstation identity, zero when the
	// caller is unbound.
	WorkstationID uint
	Actor         string
}

type StartSessionResult struct {
	Session *dto.SessionDTO `json:"session"`
	// Reconnected reports that the session was already running and the
	// countdown kept its position.
	Reconnected bool `json:"reconnected"`
}

type StartSessionUseCase struct {
	sessionRepo     session.SessionRepository
	userRepo        registry.UserRepository
	workstationRepo registry.WorkstationRepository
	locks           SessionLocker
	notifier        Notifier
	audit           AuditSink
	logger          logger.Interface
}

func NewStartSessionUseCase(
	sessionRepo session.SessionRepository,
	userRepo registry.UserRepository,
	workstationRepo registry.WorkstationRepository,
	locks SessionLocker,
	notifier Notifier,
	audit AuditSink,
	logger logger.Interface,
) *StartSessionUseCase {
	return &StartSessionUseCase{
		sessionRepo:     sessionRepo,
		userRepo:        userRepo,
		workstationRepo: workstationRepo,
		locks:           locks,
		notifier:        notifier,
		audit:           audit,
		logger:          logger,
	}
}

// Execute redeems an access code. A pending session starts its countdown; an
// already-active session reconnects without touching the timer.
func (uc *StartSessionUseCase) Execute(ctx context.Context, cmd StartSessionCommand) (*StartSessionResult, error) {
	code := session.CanonicalizeCode(cmd.Code)
	if code == "" {
		return nil, errors.NewValidationError("access code is required")
	}

	found, err := uc.sessionRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, invalidCodeError()
		}
		return nil, err
	}

	if found.Status().IsTerminal() {
		return nil, invalidCodeError()
	}

	if cmd.WorkstationID != 0 && found.WorkstationID() != cmd.WorkstationID {
		uc.logger.Warnw("start attempted on wrong workstation",
			"session_id", found.ID(),
			"expected_workstation", found.WorkstationID(),
			"actual_workstation", cmd.WorkstationID,
		)
		return nil, invalidCodeError()
	}

	release, err := uc.locks.Acquire(ctx, found.ID())
	if err != nil {
		return nil, err
	}
	defer release()

	// Re-read under the lock, a concurrent redeem may have won the race.
	current, err := uc.sessionRepo.FindByID(ctx, found.ID())
	if err != nil {
		return nil, err
	}

	if current.Status() == session.StatusActive {
		evt, err := current.Reconnect()
		if err != nil {
			return nil, err
		}
		uc.notifier.Publish(evt)

		uc.logger.Infow("session reconnected",
			"session_id", current.ID(),
		)

		return &StartSessionResult{
			Session:     dto.ToSessionDTO(current),
			Reconnected: true,
		}, nil
	}

	evt, err := current.Start(time.Now())
	if err != nil {
		return nil, err
	}

	if err := uc.sessionRepo.Update(ctx, current); err != nil {
		uc.logger.Errorw("failed to persist session start", "error", err)
		return nil, err
	}

	uc.notifier.Publish(evt)
	uc.notifier.Publish(current.TimeUpdateEvent())
	uc.markStarted(ctx, current)

	sessionID := current.ID()
	uc.audit.Record("session.started", cmd.Actor, &sessionID, map[string]interface{}{
		"workstation_id": current.WorkstationID(),
		"remaining":      current.Remaining(),
	})

	uc.logger.Infow("session started",
		"session_id", current.ID(),
		"remaining", current.Remaining(),
	)

	return &StartSessionResult{
		Session: dto.ToSessionDTO(current),
	}, nil
}

// markStarted flips the workstation to occupied and bumps the usage
// counters. These are bookkeeping writes: failures are logged and do not
// undo the start.
func (uc *StartSessionUseCase) markStarted(ctx context.Context, s *session.Session) {
	now := time.Now()

	workstation, err := uc.workstationRepo.FindByID(ctx, s.WorkstationID())
	if err == nil {
		workstation.MarkOccupied()
		workstation.RecordSession(now)
		err = uc.workstationRepo.Update(ctx, workstation)
	}
	if err != nil {
		uc.logger.Warnw("failed to mark workstation occupied",
			"workstation_id", s.WorkstationID(),
			"error", err,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, s.UserID())
	if err == nil {
		user.RecordSession(now)
		err = uc.userRepo.Update(ctx, user)
	}
	if err != nil {
		uc.logger.Warnw("failed to bump user session counter",
			"user_id", s.UserID(),
			"error", err,
		)
	}
}
