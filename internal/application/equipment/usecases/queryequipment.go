package usecases

import (
	"context"

	"crmdesk/internal/application/equipment/dto"
	"crmdesk/internal/domain/equipment"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/mapper"
	"crmdesk/internal/shared/query"
)

type GetEquipmentUseCase struct {
	equipmentRepo equipment.Repository
}

func NewGetEquipmentUseCase(equipmentRepo equipment.Repository) *GetEquipmentUseCase {
	return &GetEquipmentUseCase{equipmentRepo: equipmentRepo}
}

func (uc *GetEquipmentUseCase) Execute(ctx context.Context, id uint) (*dto.EquipmentDTO, error) {
	e, err := uc.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToEquipmentDTO(e), nil
}

type ListEquipmentUseCase struct {
	equipmentRepo equipment.Repository
	logger        logger.Interface
}

func NewListEquipmentUseCase(equipmentRepo equipment.Repository, logger logger.Interface) *ListEquipmentUseCase {
	return &ListEquipmentUseCase{equipmentRepo: equipmentRepo, logger: logger}
}

func (uc *ListEquipmentUseCase) Execute(ctx context.Context, filter query.ListFilter) (*dto.ListEquipmentResponse, error) {
	es, total, err := uc.equipmentRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list equipment", "error", err)
		return nil, err
	}

	items := mapper.MapSlice(es, dto.ToEquipmentDTO)
	return &dto.ListEquipmentResponse{Equipment: items, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

type DeleteEquipmentUseCase struct {
	equipmentRepo equipment.Repository
	logger        logger.Interface
}

func NewDeleteEquipmentUseCase(equipmentRepo equipment.Repository, logger logger.Interface) *DeleteEquipmentUseCase {
	return &DeleteEquipmentUseCase{equipmentRepo: equipmentRepo, logger: logger}
}

func (uc *DeleteEquipmentUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.equipmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Infow("equipment deleted", "equipment_id", id)
	return nil
}
