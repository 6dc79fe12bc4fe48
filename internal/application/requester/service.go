package requester

import (
	"context"

	"crmdesk/internal/application/requester/dto"
	"crmdesk/internal/application/requester/usecases"
	"crmdesk/internal/domain/organization"
	"crmdesk/internal/domain/requester"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/query"
)

type Service struct {
	create *usecases.CreateRequesterUseCase
	update *usecases.UpdateRequesterUseCase
	delete *usecases.DeleteRequesterUseCase
	get    *usecases.GetRequesterUseCase
	list   *usecases.ListRequestersUseCase
}

func NewService(repo requester.Repository, orgRepo organization.Repository, logger logger.Interface) *Service {
	return &Service{
		create: usecases.NewCreateRequesterUseCase(repo, orgRepo, logger),
		update: usecases.NewUpdateRequesterUseCase(repo, orgRepo, logger),
		delete: usecases.NewDeleteRequesterUseCase(repo, logger),
		get:    usecases.NewGetRequesterUseCase(repo),
		list:   usecases.NewListRequestersUseCase(repo, logger),
	}
}

func (s *Service) Create(ctx context.Context, req dto.CreateRequesterRequest) (*dto.RequesterDTO, error) {
	return s.create.Execute(ctx, req)
}

func (s *Service) Update(ctx context.Context, id uint, req dto.UpdateRequesterRequest) (*dto.RequesterDTO, error) {
	return s.update.Execute(ctx, id, req)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.delete.Execute(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uint) (*dto.RequesterDTO, error) {
	return s.get.Execute(ctx, id)
}

func (s *Service) List(ctx context.Context, filter query.ListFilter) (*dto.ListRequestersResponse, error) {
	return s.list.Execute(ctx, filter)
}
