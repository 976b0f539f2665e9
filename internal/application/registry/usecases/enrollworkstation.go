package usecases

import (
	"context"

	"tempus/internal/application/registry/dto"
	"tempus/internal/domain/registry"
	"tempus/internal/shared/errors"
	"tempus/internal/shared/logger"
)

type EnrollWorkstationCommand struct {
	Name     string
	Location string
}

// EnrollWorkstationResult carries the plain token exactly once; only its
// hash is stored.
type EnrollWorkstationResult struct {
	Workstation *dto.WorkstationDTO `json:"workstation"`
	Token       string              `json:"token"`
}

// TokenIssuer mints workstation identity tokens.
type TokenIssuer interface {
	Generate() (plainToken string, tokenHash string, err error)
}

type EnrollWorkstationUseCase struct {
	workstationRepo registry.WorkstationRepository
	tokens          TokenIssuer
	logger          logger.Interface
}

func NewEnrollWorkstationUseCase(
	workstationRepo registry.WorkstationRepository,
	tokens TokenIssuer,
	logger logger.Interface,
) *EnrollWorkstationUseCase {
	return &EnrollWorkstationUseCase{
		workstationRepo: workstationRepo,
		tokens:          tokens,
		logger:          logger,
	}
}

func (uc *EnrollWorkstationUseCase) Execute(ctx context.Context, cmd EnrollWorkstationCommand) (*EnrollWorkstationResult, error) {
	if _, err := uc.workstationRepo.FindByName(ctx, cmd.Name); err == nil {
		return nil, errors.NewConflictError("workstation name already enrolled")
	} else if !errors.IsNotFoundError(err) {
		return nil, err
	}

	plainToken, tokenHash, err := uc.tokens.Generate()
	if err != nil {
		uc.logger.Errorw("failed to mint workstation token", "error", err)
		return nil, errors.NewInternalError("failed to mint workstation token")
	}

	workstation, err := registry.NewWorkstation(cmd.Name, cmd.Location, tokenHash)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.workstationRepo.Save(ctx, workstation); err != nil {
		uc.logger.Errorw("failed to save workstation", "error", err)
		return nil, err
	}

	uc.logger.Infow("workstation enrolled",
		"workstation_id", workstation.ID(),
		"name", workstation.Name(),
	)

	return &EnrollWorkstationResult{
		Workstation: dto.ToWorkstationDTO(workstation),
		Token:       plainToken,
	}, nil
}
