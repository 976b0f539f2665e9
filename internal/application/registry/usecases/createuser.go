package usecases

import (
	"context"

	"tempus/internal/application/registry/dto"
	"tempus/internal/domain/registry"
	"tempus/internal/shared/errors"
	"tempus/internal/shared/logger"
)

type CreateUserCommand struct {
	FirstName string
	LastName  string
}

type CreateUserUseCase struct {
	userRepo registry.UserRepository
	logger   logger.Interface
}

func NewCreateUserUseCase(userRepo registry.UserRepository, logger logger.Interface) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*dto.UserDTO, error) {
	user, err := registry.NewUser(cmd.FirstName, cmd.LastName)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Save(ctx, user); err != nil {
		uc.logger.Errorw("failed to save user", "error", err)
		return nil, err
	}

	uc.logger.Infow("user registered",
		"user_id", user.ID(),
		"name", user.FullName(),
	)

	return dto.ToUserDTO(user), nil
}
