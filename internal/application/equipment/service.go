package equipment

import (
	"context"

	"crmdesk/internal/application/equipment/dto"
	"crmdesk/internal/application/equipment/usecases"
	"crmdesk/internal/domain/branch"
	"crmdesk/internal/domain/equipment"
	"crmdesk/internal/domain/organization"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/query"
)

type Service struct {
	create *usecases.CreateEquipmentUseCase
	update *usecases.UpdateEquipmentUseCase
	delete *usecases.DeleteEquipmentUseCase
	get    *usecases.GetEquipmentUseCase
	list   *usecases.ListEquipmentUseCase
}

func NewService(repo equipment.Repository, orgRepo organization.Repository, branchRepo branch.Repository, logger logger.Interface) *Service {
	return &Service{
		create: usecases.NewCreateEquipmentUseCase(repo, orgRepo, branchRepo, logger),
		update: usecases.NewUpdateEquipmentUseCase(repo, branchRepo, logger),
		delete: usecases.NewDeleteEquipmentUseCase(repo, logger),
		get:    usecases.NewGetEquipmentUseCase(repo),
		list:   usecases.NewListEquipmentUseCase(repo, logger),
	}
}

func (s *Service) Create(ctx context.Context, req dto.CreateEquipmentRequest) (*dto.EquipmentDTO, error) {
	return s.create.Execute(ctx, req)
}

func (s *Service) Update(ctx context.Context, id uint, req dto.UpdateEquipmentRequest) (*dto.EquipmentDTO, error) {
	return s.update.Execute(ctx, id, req)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.delete.Execute(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uint) (*dto.EquipmentDTO, error) {
	return s.get.Execute(ctx, id)
}

func (s *Service) List(ctx context.Context, filter query.ListFilter) (*dto.ListEquipmentResponse, error) {
	return s.list.Execute(ctx, filter)
}
