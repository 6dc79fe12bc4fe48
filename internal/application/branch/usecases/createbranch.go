package usecases

import (
	"context"

	"crmdesk/internal/application/branch/dto"
	"crmdesk/internal/domain/branch"
	"crmdesk/internal/domain/organization"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

type CreateBranchUseCase struct {
	branchRepo branch.Repository
	orgRepo    organization.Repository
	logger     logger.Interface
}

func NewCreateBranchUseCase(branchRepo branch.Repository, orgRepo organization.Repository, logger logger.Interface) *CreateBranchUseCase {
	return &CreateBranchUseCase{branchRepo: branchRepo, orgRepo: orgRepo, logger: logger}
}

func (uc *CreateBranchUseCase) Execute(ctx context.Context, req dto.CreateBranchRequest) (*dto.BranchDTO, error) {
	uc.logger.Infow("executing create branch use case", "organization_id", req.OrganizationID, "name", req.Name)

	if err := requireOrganization(ctx, uc.orgRepo, req.OrganizationID); err != nil {
		return nil, err
	}

	b, err := branch.NewBranch(req.OrganizationID, req.Name, req.Address, req.City, req.Phone)
	if err != nil {
		return nil, err
	}

	if err := uc.branchRepo.Create(ctx, b); err != nil {
		uc.logger.Warnw("failed to create branch", "organization_id", req.OrganizationID, "error", err)
		return nil, err
	}

	return dto.ToBranchDTO(b), nil
}

// requireOrganization turns a missing organization into a validation error
// on the payload rather than a 404 on the route.
func requireOrganization(ctx context.Context, orgRepo organization.Repository, id uint) error {
	if _, err := orgRepo.GetByID(ctx, id); err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewValidationError("organization does not exist", "organization_id")
		}
		return err
	}
	return nil
}
