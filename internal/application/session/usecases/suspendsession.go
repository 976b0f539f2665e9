package usecases

import (
	"context"

	"tempus/internal/application/session/dto"
	"tempus/internal/domain/session"
	"tempus/internal/shared/logger"
)

type SuspendSessionCommand struct {
	SessionID uint
	Actor     string
}

type SuspendSessionUseCase struct {
	sessionRepo session.SessionRepository
	locks       SessionLocker
	notifier    Notifier
	audit       AuditSink
	logger      logger.Interface
}

func NewSuspendSessionUseCase(
	sessionRepo session.SessionRepository,
	locks SessionLocker,
	notifier Notifier,
	audit AuditSink,
	logger logger.Interface,
) *SuspendSessionUseCase {
	return &SuspendSessionUseCase{
		sessionRepo: sessionRepo,
		locks:       locks,
		notifier:    notifier,
		audit:       audit,
		logger:      logger,
	}
}

// Execute pauses an active session's countdown.
func (uc *SuspendSessionUseCase) Execute(ctx context.Context, cmd SuspendSessionCommand) (*dto.SessionDTO, error) {
	release, err := uc.locks.Acquire(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := uc.sessionRepo.FindByID(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}

	evt, err := current.Suspend(cmd.Actor)
	if err != nil {
		return nil, err
	}

	if err := uc.sessionRepo.Update(ctx, current); err != nil {
		uc.logger.Errorw("failed to persist session suspension", "error", err)
		return nil, err
	}

	uc.notifier.Publish(evt)

	sessionID := current.ID()
	uc.audit.Record("session.suspended", cmd.Actor, &sessionID, nil)

	uc.logger.Infow("session suspended", "session_id", current.ID())

	return dto.ToSessionDTO(current), nil
}
