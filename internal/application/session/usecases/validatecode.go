package usecases

import (
	"context"

	"tempus/internal/application/session/dto"
	"tempus/internal/domain/session"
	"tempus/internal/shared/errors"
	"tempus/internal/shared/logger"
)

type ValidateCodeCommand struct {
	Code string
	// WorkstationID is the authenticated workstation identity, zero when the
	// caller is unbound.
	WorkstationID uint
}

type ValidateCodeResult struct {
	Session *dto.SessionDTO `json:"session"`
	// IsReconnection reports that the session is already running, so
	// redeeming the code again will resume it without resetting the timer.
	IsReconnection bool `json:"is_reconnection"`
}

type ValidateCodeUseCase struct {
	sessionRepo session.SessionRepository
	logger      logger.Interface
}

func NewValidateCodeUseCase(
	sessionRepo session.SessionRepository,
	logger logger.Interface,
) *ValidateCodeUseCase {
	return &ValidateCodeUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Execute checks an access code for redemption. Unknown codes, codes of
// finished sessions and codes bound to a different workstation all fail
// with the same generic error so a guesser learns nothing about which
// codes exist.
func (uc *ValidateCodeUseCase) Execute(ctx context.Context, cmd ValidateCodeCommand) (*ValidateCodeResult, error) {
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
		uc.logger.Warnw("access code redeemed on wrong workstation",
			"session_id", found.ID(),
			"expected_workstation", found.WorkstationID(),
			"actual_workstation", cmd.WorkstationID,
		)
		return nil, invalidCodeError()
	}

	return &ValidateCodeResult{
		Session:        dto.ToSessionDTO(found),
		IsReconnection: found.Status() == session.StatusActive,
	}, nil
}

func invalidCodeError() error {
	return errors.NewNotFoundError("invalid access code")
}
