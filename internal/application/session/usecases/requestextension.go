package usecases

import (
	"context"

	"tempus/internal/application/session/dto"
	"tempus/internal/domain/session"
	"tempus/internal/shared/errors"
	"tempus/internal/shared/logger"
)

// RequestExtensionCommand carries the workstation's ask. WorkstationID is
// zero when the caller is unbound; a non-zero value must match the session's
// owning workstation.
type RequestExtensionCommand struct {
	SessionID     uint
	WorkstationID uint
	Minutes       int
}

type RequestExtensionUseCase struct {
	sessionRepo session.SessionRepository
	requestRepo session.ExtensionRequestRepository
	locks       SessionLocker
	tx          TxRunner
	notifier    Notifier
	audit       AuditSink
	logger      logger.Interface
}

func NewRequestExtensionUseCase(
	sessionRepo session.SessionRepository,
	requestRepo session.ExtensionRequestRepository,
	locks SessionLocker,
	tx TxRunner,
	notifier Notifier,
	audit AuditSink,
	logger logger.Interface,
) *RequestExtensionUseCase {
	return &RequestExtensionUseCase{
		sessionRepo: sessionRepo,
		requestRepo: requestRepo,
		locks:       locks,
		tx:          tx,
		notifier:    notifier,
		audit:       audit,
		logger:      logger,
	}
}

// Execute files an extension request for a running session. A session may
// hold at most one pending request at a time; the uniqueness check runs
// under the session lock and inside the insert transaction so two
// concurrent callers cannot both file one.
func (uc *RequestExtensionUseCase) Execute(ctx context.Context, cmd RequestExtensionCommand) (*dto.ExtensionRequestDTO, error) {
	release, err := uc.locks.Acquire(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := uc.sessionRepo.FindByID(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}

	if cmd.WorkstationID != 0 && current.WorkstationID() != cmd.WorkstationID {
		uc.logger.Warnw("extension requested for a foreign session",
			"session_id", current.ID(),
			"owning_workstation", current.WorkstationID(),
			"actual_workstation", cmd.WorkstationID,
		)
		// Indistinguishable from an unknown session so a caller cannot map
		// which session IDs exist on other workstations.
		return nil, errors.NewNotFoundError("session not found")
	}

	if !current.Status().IsLive() {
		return nil, errors.NewInvalidStateError(current.Status().String(), session.StatusActive.String())
	}

	request, err := session.NewExtensionRequest(cmd.SessionID, cmd.Minutes)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.requestRepo.FindPendingBySession(txCtx, cmd.SessionID); err == nil {
			return errors.NewConflictError("session already has a pending extension request")
		} else if !errors.IsNotFoundError(err) {
			return err
		}

		return uc.requestRepo.Save(txCtx, request)
	})
	if err != nil {
		if !errors.IsConflictError(err) {
			uc.logger.Errorw("failed to save extension request", "error", err)
		}
		return nil, err
	}

	uc.notifier.Publish(request.RequestedEvent(current.WorkstationID()))

	sessionID := cmd.SessionID
	uc.audit.Record("extension.requested", "workstation", &sessionID, map[string]interface{}{
		"request_id": request.ID(),
		"minutes":    cmd.Minutes,
	})

	uc.logger.Infow("extension requested",
		"session_id", cmd.SessionID,
		"request_id", request.ID(),
		"minutes", cmd.Minutes,
	)

	return dto.ToExtensionRequestDTO(request), nil
}
