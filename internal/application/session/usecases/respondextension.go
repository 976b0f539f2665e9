package usecases

import (
	"context"
	"time"

	"tempus/internal/application/session/dto"
	"tempus/internal/domain/session"
	"tempus/internal/shared/errors"
	"tempus/internal/shared/logger"
)

type RespondExtensionCommand struct {
	RequestID uint
	Approve   bool
	Actor     string
	Message   string
}

type RespondExtensionResult struct {
	Request *dto.ExtensionRequestDTO `json:"request"`
	// NewRemaining carries the post-approval countdown, nil on denial.
	NewRemaining *int `json:"new_remaining,omitempty"`
}

type RespondExtensionUseCase struct {
	sessionRepo session.SessionRepository
	requestRepo session.ExtensionRequestRepository
	locks       SessionLocker
	tx          TxRunner
	notifier    Notifier
	audit       AuditSink
	logger      logger.Interface
}

func NewRespondExtensionUseCase(
	sessionRepo session.SessionRepository,
	requestRepo session.ExtensionRequestRepository,
	locks SessionLocker,
	tx TxRunner,
	notifier Notifier,
	audit AuditSink,
	logger logger.Interface,
) *RespondExtensionUseCase {
	return &RespondExtensionUseCase{
		sessionRepo: sessionRepo,
		requestRepo: requestRepo,
		locks:       locks,
		tx:          tx,
		notifier:    notifier,
		audit:       audit,
		logger:      logger,
	}
}

// Execute resolves a pending extension request. Approval credits the
// requested minutes and marks the request resolved in one transaction;
// a request already resolved fails without touching the session again.
func (uc *RespondExtensionUseCase) Execute(ctx context.Context, cmd RespondExtensionCommand) (*RespondExtensionResult, error) {
	request, err := uc.requestRepo.FindByID(ctx, cmd.RequestID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	var newRemaining *int
	var workstationID uint

	if cmd.Approve {
		resolved, remaining, wsID, err := uc.approve(ctx, request, cmd.Actor, cmd.Message, now)
		if err != nil {
			return nil, err
		}
		request = resolved
		newRemaining = &remaining
		workstationID = wsID
	} else {
		current, err := uc.sessionRepo.FindByID(ctx, request.SessionID())
		if err == nil {
			workstationID = current.WorkstationID()
		}

		if err := request.Deny(cmd.Actor, cmd.Message, now); err != nil {
			return nil, err
		}
		if err := uc.requestRepo.Update(ctx, request); err != nil {
			uc.logger.Errorw("failed to persist extension response", "error", err)
			return nil, err
		}
	}

	uc.notifier.Publish(request.ResponseEvent(workstationID, newRemaining))

	sessionID := request.SessionID()
	uc.audit.Record("extension.responded", cmd.Actor, &sessionID, map[string]interface{}{
		"request_id": request.ID(),
		"approved":   cmd.Approve,
		"minutes":    request.MinutesRequested(),
	})

	uc.logger.Infow("extension request resolved",
		"request_id", request.ID(),
		"session_id", request.SessionID(),
		"approved", cmd.Approve,
	)

	return &RespondExtensionResult{
		Request:      dto.ToExtensionRequestDTO(request),
		NewRemaining: newRemaining,
	}, nil
}

// approve credits the session and resolves the request atomically: the
// time credit and the resolution commit or roll back together, so a crash
// between the two cannot leave a credited session with a pending request.
func (uc *RespondExtensionUseCase) approve(ctx context.Context, stale *session.ExtensionRequest, actor, message string, now time.Time) (*session.ExtensionRequest, int, uint, error) {
	// Resolution state is checked before the session is touched so a second
	// approval cannot double-credit.
	if !stale.IsPending() {
		return nil, 0, 0, errors.NewAlreadyResolvedError("extension request already resolved")
	}

	release, err := uc.locks.Acquire(ctx, stale.SessionID())
	if err != nil {
		return nil, 0, 0, err
	}
	defer release()

	var (
		request *session.ExtensionRequest
		current *session.Session
		evt     session.Event
	)

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		// Re-read the request under the lock: the copy fetched before the
		// lock may have been resolved by a concurrent responder.
		request, err = uc.requestRepo.FindByID(txCtx, stale.ID())
		if err != nil {
			return err
		}
		if !request.IsPending() {
			return errors.NewAlreadyResolvedError("extension request already resolved")
		}

		current, err = uc.sessionRepo.FindByID(txCtx, request.SessionID())
		if err != nil {
			return err
		}

		evt, err = current.AddTime(request.MinutesRequested()*60, actor)
		if err != nil {
			return err
		}
		if err := uc.sessionRepo.Update(txCtx, current); err != nil {
			return err
		}

		if err := request.Approve(actor, message, now); err != nil {
			return err
		}
		return uc.requestRepo.Update(txCtx, request)
	})
	if err != nil {
		return nil, 0, 0, err
	}

	uc.notifier.Publish(evt)

	return request, current.Remaining(), current.WorkstationID(), nil
}
