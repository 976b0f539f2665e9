package usecases

import (
	"context"

	"tempus/internal/application/registry/dto"
)

type EnrollWorkstationExecutor interface {
	Execute(ctx context.Context, cmd EnrollWorkstationCommand) (*EnrollWorkstationResult, error)
}

type ListWorkstationsExecutor interface {
	Execute(ctx context.Context) ([]*dto.WorkstationDTO, error)
}

type CreateUserExecutor interface {
	Execute(ctx context.Context, cmd CreateUserCommand) (*dto.UserDTO, error)
}

type ListUsersExecutor interface {
	Execute(ctx context.Context) ([]*dto.UserDTO, error)
}
