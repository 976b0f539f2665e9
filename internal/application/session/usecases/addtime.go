package usecases

import (
	"context"

	"tempus/internal/application/session/dto"
	"tempus/internal/domain/session"
	"tempus/internal/shared/logger"
)

type AddTimeCommand struct {
	SessionID uint
	Seconds   int
	Actor     string
}

type AddTimeUseCase struct {
	sessionRepo session.SessionRepository
	locks       SessionLocker
	notifier    Notifier
	audit       AuditSink
	logger      logger.Interface
}

func NewAddTimeUseCase(
	sessionRepo session.SessionRepository,
	locks SessionLocker,
	notifier Notifier,
	audit AuditSink,
	logger logger.Interface,
) *AddTimeUseCase {
	return &AddTimeUseCase{
		sessionRepo: sessionRepo,
		locks:       locks,
		notifier:    notifier,
		audit:       audit,
		logger:      logger,
	}
}

func (uc *AddTimeUseCase) Execute(ctx context.Context, cmd AddTimeCommand) (*dto.SessionDTO, error) {
	release, err := uc.locks.Acquire(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := uc.sessionRepo.FindByID(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}

	evt, err := current.AddTime(cmd.Seconds, cmd.Actor)
	if err != nil {
		return nil, err
	}

	if err := uc.sessionRepo.Update(ctx, current); err != nil {
		uc.logger.Errorw("failed to persist time extension", "error", err)
		return nil, err
	}

	uc.notifier.Publish(evt)

	sessionID := current.ID()
	uc.audit.Record("session.time_added", cmd.Actor, &sessionID, map[string]interface{}{
		"seconds":   cmd.Seconds,
		"remaining": current.Remaining(),
	})

	uc.logger.Infow("time added to session",
		"session_id", current.ID(),
		"seconds", cmd.Seconds,
		"remaining", current.Remaining(),
	)

	return dto.ToSessionDTO(current), nil
}
