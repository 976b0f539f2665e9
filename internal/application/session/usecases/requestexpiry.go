package usecases

import (
	"context"
	"time"

	"tempus/internal/domain/session"
	"tempus/internal/shared/errors"
	"tempus/internal/shared/logger"
)

// expirePendingRequest resolves a request that outlived its session. The
// session is already gone, so a failure here is bookkeeping: logged, never
// surfaced to the caller.
func expirePendingRequest(ctx context.Context, repo session.ExtensionRequestRepository, sessionID uint, now time.Time, log logger.Interface) {
	pending, err := repo.FindPendingBySession(ctx, sessionID)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			log.Warnw("failed to look up pending extension request",
				"session_id", sessionID,
				"error", err,
			)
		}
		return
	}

	if err := pending.Expire(now); err == nil {
		err = repo.Update(ctx, pending)
	}
	if err != nil {
		// A concurrent responder winning the race is fine, the request is
		// resolved either way.
		if !errors.IsAlreadyResolvedError(err) {
			log.Warnw("failed to expire extension request",
				"request_id", pending.ID(),
				"session_id", sessionID,
				"error", err,
			)
		}
		return
	}

	log.Infow("extension request expired with its session",
		"request_id", pending.ID(),
		"session_id", sessionID,
	)
}
