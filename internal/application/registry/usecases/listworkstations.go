package usecases

import (
	"context"

	"tempus/internal/application/registry/dto"
	"tempus/internal/domain/registry"
)

type ListWorkstationsUseCase struct {
	workstationRepo registry.WorkstationRepository
}

func NewListWorkstationsUseCase(workstationRepo registry.WorkstationRepository) *ListWorkstationsUseCase {
	return &ListWorkstationsUseCase{workstationRepo: workstationRepo}
}

func (uc *ListWorkstationsUseCase) Execute(ctx context.Context) ([]*dto.WorkstationDTO, error) {
	workstations, err := uc.workstationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToWorkstationDTOs(workstations), nil
}
