package usecases

import (
	"context"

	"crmdesk/internal/application/organization/dto"
	"crmdesk/internal/domain/organization"
	"crmdesk/internal/shared/logger"
)

type UpdateOrganizationUseCase struct {
	orgRepo organization.Repository
	logger  logger.Interface
}

func NewUpdateOrganizationUseCase(orgRepo organization.Repository, logger logger.Interface) *UpdateOrganizationUseCase {
	return &UpdateOrganizationUseCase{orgRepo: orgRepo, logger: logger}
}

func (uc *UpdateOrganizationUseCase) Execute(ctx context.Context, id uint, req dto.UpdateOrganizationRequest) (*dto.OrganizationDTO, error) {
	org, err := uc.orgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := org.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	org.UpdateContact(req.Domain, req.Phone, req.Notes)

	if err := uc.orgRepo.Update(ctx, org); err != nil {
		uc.logger.Warnw("failed to update organization", "organization_id", id, "error", err)
		return nil, err
	}

	uc.logger.Infow("organization updated", "organization_id", id)
	return dto.ToOrganizationDTO(org), nil
}
