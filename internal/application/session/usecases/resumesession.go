package usecases

import (
	"context"

	"tempus/internal/application/session/dto"
	"tempus/internal/domain/session"
	"tempus/internal/shared/logger"
)

type ResumeSessionCommand struct {
	SessionID uint
	Actor     string
}

type ResumeSessionUseCase struct {
	sessionRepo session.SessionRepository
	locks       SessionLocker
	notifier    Notifier
	audit       AuditSink
	logger      logger.Interface
}

func NewResumeSessionUseCase(
	sessionRepo session.SessionRepository,
	locks SessionLocker,
	notifier Notifier,
	audit AuditSink,
	logger logger.Interface,
) *ResumeSessionUseCase {
	return &ResumeSessionUseCase{
		sessionRepo: sessionRepo,
		locks:       locks,
		notifier:    notifier,
		audit:       audit,
		logger:      logger,
	}
}

// Execute resumes a suspended session's countdown from where it stopped.
func (uc *ResumeSessionUseCase) Execute(ctx context.Context, cmd ResumeSessionCommand) (*dto.SessionDTO, error) {
	release, err := uc.locks.Acquire(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := uc.sessionRepo.FindByID(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}

	evt, err := current.Resume(cmd.Actor)
	if err != nil {
		return nil, err
	}

	if err := uc.sessionRepo.Update(ctx, current); err != nil {
		uc.logger.Errorw("failed to persist session resume", "error", err)
		return nil, err
	}

	uc.notifier.Publish(evt)

	sessionID := current.ID()
	uc.audit.Record("session.resumed", cmd.Actor, &sessionID, nil)

	uc.logger.Infow("session resumed", "session_id", current.ID())

	return dto.ToSessionDTO(current), nil
}
