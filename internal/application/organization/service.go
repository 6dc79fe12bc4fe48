// Package organization is the application service behind /api/organizations.
package organization

import (
	"context"

	"crmdesk/internal/application/organization/dto"
	"crmdesk/internal/application/organization/usecases"
	"crmdesk/internal/domain/organization"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/query"
)

type Service struct {
	create *usecases.CreateOrganizationUseCase
	update *usecases.UpdateOrganizationUseCase
	delete *usecases.DeleteOrganizationUseCase
	get    *usecases.GetOrganizationUseCase
	list   *usecases.ListOrganizationsUseCase
}

func NewService(repo organization.Repository, logger logger.Interface) *Service {
	return &Service{
		create: usecases.NewCreateOrganizationUseCase(repo, logger),
		update: usecases.NewUpdateOrganizationUseCase(repo, logger),
		delete: usecases.NewDeleteOrganizationUseCase(repo, logger),
		get:    usecases.NewGetOrganizationUseCase(repo, logger),
		list:   usecases.NewListOrganizationsUseCase(repo, logger),
	}
}

func (s *Service) Create(ctx context.Context, req dto.CreateOrganizationRequest) (*dto.OrganizationDTO, error) {
	return s.create.Execute(ctx, req)
}

func (s *Service) Update(ctx context.Context, id uint, req dto.UpdateOrganizationRequest) (*dto.OrganizationDTO, error) {
	return s.update.Execute(ctx, id, req)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.delete.Execute(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uint) (*dto.OrganizationDTO, error) {
	return s.get.Execute(ctx, id)
}

func (s *Service) List(ctx context.Context, filter query.ListFilter) (*dto.ListOrganizationsResponse, error) {
	return s.list.Execute(ctx, filter)
}
