package usecases

import (
	"context"
	"fmt"

	"crmdesk/internal/application/equipment/dto"
	"crmdesk/internal/domain/branch"
	"crmdesk/internal/domain/equipment"
	"crmdesk/internal/domain/organization"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

type CreateEquipmentUseCase struct {
	equipmentRepo equipment.Repository
	orgRepo       organization.Repository
	branchRepo    branch.Repository
	logger        logger.Interface
}

func NewCreateEquipmentUseCase(
	equipmentRepo equipment.Repository,
	orgRepo organization.Repository,
	branchRepo branch.Repository,
	logger logger.Interface,
) *CreateEquipmentUseCase {
	return &CreateEquipmentUseCase{
		equipmentRepo: equipmentRepo,
		orgRepo:       orgRepo,
		branchRepo:    branchRepo,
		logger:        logger,
	}
}

func (uc *CreateEquipmentUseCase) Execute(ctx context.Context, req dto.CreateEquipmentRequest) (*dto.EquipmentDTO, error) {
	uc.logger.Infow("executing create equipment use case",
		"organization_id", req.OrganizationID, "serial_number", req.SerialNumber)

	if _, err := uc.orgRepo.GetByID(ctx, req.OrganizationID); err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewValidationError("organization does not exist", "organization_id")
		}
		return nil, err
	}
	if err := checkBranchOwnership(ctx, uc.branchRepo, req.OrganizationID, req.BranchID); err != nil {
		return nil, err
	}

	e, err := equipment.NewEquipment(req.OrganizationID, req.BranchID, req.SerialNumber, req.Model, req.Brand, req.InstalledAt)
	if err != nil {
		return nil, err
	}

	if err := uc.equipmentRepo.Create(ctx, e); err != nil {
		uc.logger.Warnw("failed to create equipment", "serial_number", e.SerialNumber(), "error", err)
		return nil, err
	}

	return dto.ToEquipmentDTO(e), nil
}

// checkBranchOwnership requires the branch, when given, to belong to the organization.
func checkBranchOwnership(ctx context.Context, branchRepo branch.Repository, orgID uint, branchID *uint) error {
	if branchID == nil {
		return nil
	}
	b, err := branchRepo.GetByID(ctx, *branchID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewValidationError("branch does not exist", "branch_id")
		}
		return err
	}
	if b.OrganizationID() != orgID {
		return errors.NewValidationError(
			fmt.Sprintf("branch %d does not belong to organization %d", b.ID(), orgID), "branch_id")
	}
	return nil
}
