package usecases

import (
	"context"

	"crmdesk/internal/application/branch/dto"
	"crmdesk/internal/domain/branch"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/mapper"
	"crmdesk/internal/shared/query"
)

type GetBranchUseCase struct {
	branchRepo branch.Repository
}

func NewGetBranchUseCase(branchRepo branch.Repository) *GetBranchUseCase {
	return &GetBranchUseCase{branchRepo: branchRepo}
}

func (uc *GetBranchUseCase) Execute(ctx context.Context, id uint) (*dto.BranchDTO, error) {
	b, err := uc.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToBranchDTO(b), nil
}

type ListBranchesUseCase struct {
	branchRepo branch.Repository
	logger     logger.Interface
}

func NewListBranchesUseCase(branchRepo branch.Repository, logger logger.Interface) *ListBranchesUseCase {
	return &ListBranchesUseCase{branchRepo: branchRepo, logger: logger}
}

func (uc *ListBranchesUseCase) Execute(ctx context.Context, filter query.ListFilter) (*dto.ListBranchesResponse, error) {
	branches, total, err := uc.branchRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list branches", "error", err)
		return nil, err
	}

	items := mapper.MapSlice(branches, dto.ToBranchDTO)
	return &dto.ListBranchesResponse{Branches: items, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

type DeleteBranchUseCase struct {
	branchRepo branch.Repository
	logger     logger.Interface
}

func NewDeleteBranchUseCase(branchRepo branch.Repository, logger logger.Interface) *DeleteBranchUseCase {
	return &DeleteBranchUseCase{branchRepo: branchRepo, logger: logger}
}

func (uc *DeleteBranchUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.branchRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Infow("branch deleted", "branch_id", id)
	return nil
}
