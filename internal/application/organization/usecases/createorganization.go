package usecases

import (
	"context"

	"crmdesk/internal/application/organization/dto"
	"crmdesk/internal/domain/organization"
	"crmdesk/internal/shared/logger"
)

type CreateOrganizationUseCase struct {
	orgRepo organization.Repository
	logger  logger.Interface
}

func NewCreateOrganizationUseCase(orgRepo organization.Repository, logger logger.Interface) *CreateOrganizationUseCase {
	return &CreateOrganizationUseCase{orgRepo: orgRepo, logger: logger}
}

// Execute stores the name in its normalized form, the same form the ticket
// sync looks organizations up by.
func (uc *CreateOrganizationUseCase) Execute(ctx context.Context, req dto.CreateOrganizationRequest) (*dto.OrganizationDTO, error) {
	org, err := organization.NewOrganization(req.Name, req.Domain, req.Phone, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := uc.orgRepo.Create(ctx, org); err != nil {
		uc.logger.Warnw("failed to create organization", "name", org.Name(), "error", err)
		return nil, err
	}

	uc.logger.Infow("organization created", "organization_id", org.ID(), "name", org.Name())
	return dto.ToOrganizationDTO(org), nil
}
