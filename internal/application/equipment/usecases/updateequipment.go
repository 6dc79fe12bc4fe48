package usecases

import (
	"context"

	"crmdesk/internal/application/equipment/dto"
	"crmdesk/internal/domain/branch"
	"crmdesk/internal/domain/equipment"
	"crmdesk/internal/shared/logger"
)

type UpdateEquipmentUseCase struct {
	equipmentRepo equipment.Repository
	branchRepo    branch.Repository
	logger        logger.Interface
}

func NewUpdateEquipmentUseCase(equipmentRepo equipment.Repository, branchRepo branch.Repository, logger logger.Interface) *UpdateEquipmentUseCase {
	return &UpdateEquipmentUseCase{equipmentRepo: equipmentRepo, branchRepo: branchRepo, logger: logger}
}

func (uc *UpdateEquipmentUseCase) Execute(ctx context.Context, id uint, req dto.UpdateEquipmentRequest) (*dto.EquipmentDTO, error) {
	e, err := uc.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := checkBranchOwnership(ctx, uc.branchRepo, e.OrganizationID(), req.BranchID); err != nil {
		return nil, err
	}

	e.Update(req.BranchID, req.Model, req.Brand, req.InstalledAt)

	if err := uc.equipmentRepo.Update(ctx, e); err != nil {
		uc.logger.Warnw("failed to update equipment", "equipment_id", id, "error", err)
		return nil, err
	}

	uc.logger.Infow("equipment updated", "equipment_id", id)
	return dto.ToEquipmentDTO(e), nil
}
