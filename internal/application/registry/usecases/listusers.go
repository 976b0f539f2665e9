package usecases

import (
	"context"

	"tempus/internal/application/registry/dto"
	"tempus/internal/domain/registry"
)

type ListUsersUseCase struct {
	userRepo registry.UserRepository
}

func NewListUsersUseCase(userRepo registry.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context) ([]*dto.UserDTO, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToUserDTOs(users), nil
}
