package usecases

import (
	"context"

	"tempus/internal/application/session/dto"
	"tempus/internal/domain/registry"
	"tempus/internal/domain/session"
	"tempus/internal/shared/errors"
	"tempus/internal/shared/logger"
)

type CreateSessionCommand struct {
	UserID          uint
	WorkstationID   uint
	DurationSeconds int
	Operator        string
	Notes           string
}

type CreateSessionUseCase struct {
	sessionRepo     session.SessionRepository
	userRepo        registry.UserRepository
	workstationRepo registry.WorkstationRepository
	audit           AuditSink
	codeLength      int
	logger          logger.Interface
}

func NewCreateSessionUseCase(
	sessionRepo session.SessionRepository,
	userRepo registry.UserRepository,
	workstationRepo registry.WorkstationRepository,
	audit AuditSink,
	codeLength int,
	logger logger.Interface,
) *CreateSessionUseCase {
	if codeLength < session.DefaultCodeLength {
		codeLength = session.DefaultCodeLength
	}
	return &CreateSessionUseCase{
		sessionRepo:     sessionRepo,
		userRepo:        userRepo,
		workstationRepo: workstationRepo,
		audit:           audit,
		codeLength:      codeLength,
		logger:          logger,
	}
}

func (uc *CreateSessionUseCase) Execute(ctx context.Context, cmd CreateSessionCommand) (*dto.SessionDTO, error) {
	uc.logger.Infow("executing create session use case",
		"user_id", cmd.UserID,
		"workstation_id", cmd.WorkstationID,
		"duration", cmd.DurationSeconds,
	)

	user, err := uc.userRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if !user.Active() {
		return nil, errors.NewValidationError("user account is inactive")
	}

	if _, err := uc.workstationRepo.FindByID(ctx, cmd.WorkstationID); err != nil {
		return nil, err
	}

	newSession, err := session.NewSession(cmd.UserID, cmd.WorkstationID, cmd.DurationSeconds, cmd.Operator, cmd.Notes)
	if err != nil {
		uc.logger.Errorw("failed to create session entity", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	code, err := session.GenerateCode(uc.codeLength, func(candidate string) (bool, error) {
		return uc.sessionRepo.CodeInUse(ctx, candidate)
	})
	if err != nil {
		uc.logger.Errorw("failed to generate access code", "error", err)
		return nil, errors.NewInternalError("failed to generate access code")
	}
	if err := newSession.SetAccessCode(code); err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	if err := uc.sessionRepo.Save(ctx, newSession); err != nil {
		uc.logger.Errorw("failed to save session", "error", err)
		return nil, err
	}

	sessionID := newSession.ID()
	uc.audit.Record("session.created", cmd.Operator, &sessionID, map[string]interface{}{
		"user_id":        cmd.UserID,
		"workstation_id": cmd.WorkstationID,
		"duration":       newSession.InitialDuration(),
	})

	uc.logger.Infow("session created successfully",
		"session_id", newSession.ID(),
		"access_code", newSession.AccessCode(),
	)

	return dto.ToSessionDTO(newSession), nil
}
