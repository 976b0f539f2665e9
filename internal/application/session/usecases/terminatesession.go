package usecases

import (
	"context"
	"time"

	"tempus/internal/application/session/dto"
	"tempus/internal/domain/registry"
	"tempus/internal/domain/session"
	"tempus/internal/shared/logger"
)

type TerminateSessionCommand struct {
	SessionID uint
	Reason    session.TerminationReason
	Actor     string
}

type TerminateSessionUseCase struct {
	sessionRepo     session.SessionRepository
	requestRepo     session.ExtensionRequestRepository
	workstationRepo registry.WorkstationRepository
	locks           SessionLocker
	notifier        Notifier
	audit           AuditSink
	logger          logger.Interface
}

func NewTerminateSessionUseCase(
	sessionRepo session.SessionRepository,
	requestRepo session.ExtensionRequestRepository,
	workstationRepo registry.WorkstationRepository,
	locks SessionLocker,
	notifier Notifier,
	audit AuditSink,
	logger logger.Interface,
) *TerminateSessionUseCase {
	return &TerminateSessionUseCase{
		sessionRepo:     sessionRepo,
		requestRepo:     requestRepo,
		workstationRepo: workstationRepo,
		locks:           locks,
		notifier:        notifier,
		audit:           audit,
		logger:          logger,
	}
}

func (uc *TerminateSessionUseCase) Execute(ctx context.Context, cmd TerminateSessionCommand) (*dto.SessionDTO, error) {
	release, err := uc.locks.Acquire(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := uc.sessionRepo.FindByID(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}

	reason := cmd.Reason
	if reason == "" {
		reason = session.ReasonNormalClose
	}

	now := time.Now()
	evt, err := current.Terminate(cmd.Actor, reason, now)
	if err != nil {
		return nil, err
	}

	if err := uc.sessionRepo.Update(ctx, current); err != nil {
		uc.logger.Errorw("failed to persist session termination", "error", err)
		return nil, err
	}

	uc.notifier.Publish(evt)
	uc.releaseWorkstation(ctx, current.WorkstationID())
	// A pending extension request cannot outlive its session.
	expirePendingRequest(ctx, uc.requestRepo, current.ID(), now, uc.logger)

	sessionID := current.ID()
	uc.audit.Record("session.terminated", cmd.Actor, &sessionID, map[string]interface{}{
		"reason": string(reason),
	})

	uc.logger.Infow("session terminated",
		"session_id", current.ID(),
		"reason", reason,
	)

	return dto.ToSessionDTO(current), nil
}

// releaseWorkstation is bookkeeping, a failure is logged and does not undo
// the termination.
func (uc *TerminateSessionUseCase) releaseWorkstation(ctx context.Context, workstationID uint) {
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
