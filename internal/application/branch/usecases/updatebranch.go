package usecases

import (
	"context"

	"crmdesk/internal/application/branch/dto"
	"crmdesk/internal/domain/branch"
	"crmdesk/internal/shared/logger"
)

type UpdateBranchUseCase struct {
	branchRepo branch.Repository
	logger     logger.Interface
}

func NewUpdateBranchUseCase(branchRepo branch.Repository, logger logger.Interface) *UpdateBranchUseCase {
	return &UpdateBranchUseCase{branchRepo: branchRepo, logger: logger}
}

func (uc *UpdateBranchUseCase) Execute(ctx context.Context, id uint, req dto.UpdateBranchRequest) (*dto.BranchDTO, error) {
	b, err := uc.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.Update(req.Name, req.Address, req.City, req.Phone); err != nil {
		return nil, err
	}

	if err := uc.branchRepo.Update(ctx, b); err != nil {
		uc.logger.Warnw("failed to update branch", "branch_id", id, "error", err)
		return nil, err
	}

	uc.logger.Infow("branch updated", "branch_id", id)
	return dto.ToBranchDTO(b), nil
}
