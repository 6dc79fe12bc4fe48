package branch

import (
	"context"

	"crmdesk/internal/application/branch/dto"
	"crmdesk/internal/application/branch/usecases"
	"crmdesk/internal/domain/branch"
	"crmdesk/internal/domain/organization"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/query"
)

type Service struct {
	create *usecases.CreateBranchUseCase
	update *usecases.UpdateBranchUseCase
	delete *usecases.DeleteBranchUseCase
	get    *usecases.GetBranchUseCase
	list   *usecases.ListBranchesUseCase
}

func NewService(repo branch.Repository, orgRepo organization.Repository, logger logger.Interface) *Service {
	return &Service{
		create: usecases.NewCreateBranchUseCase(repo, orgRepo, logger),
		update: usecases.NewUpdateBranchUseCase(repo, logger),
		delete: usecases.NewDeleteBranchUseCase(repo, logger),
		get:    usecases.NewGetBranchUseCase(repo),
		list:   usecases.NewListBranchesUseCase(repo, logger),
	}
}

func (s *Service) Create(ctx context.Context, req dto.CreateBranchRequest) (*dto.BranchDTO, error) {
	return s.create.Execute(ctx, req)
}

func (s *Service) Update(ctx context.Context, id uint, req dto.UpdateBranchRequest) (*dto.BranchDTO, error) {
	return s.update.Execute(ctx, id, req)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.delete.Execute(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uint) (*dto.BranchDTO, error) {
	return s.get.Execute(ctx, id)
}

func (s *Service) List(ctx context.Context, filter query.ListFilter) (*dto.ListBranchesResponse, error) {
	return s.list.Execute(ctx, filter)
}
