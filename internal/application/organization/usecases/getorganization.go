package usecases

import (
	"context"

	"crmdesk/internal/application/organization/dto"
	"crmdesk/internal/domain/organization"
	"crmdesk/internal/shared/logger"
)

type GetOrganizationUseCase struct {
	orgRepo organization.Repository
	logger  logger.Interface
}

func NewGetOrganizationUseCase(orgRepo organization.Repository, logger logger.Interface) *GetOrganizationUseCase {
	return &GetOrganizationUseCase{orgRepo: orgRepo, logger: logger}
}

func (uc *GetOrganizationUseCase) Execute(ctx context.Context, id uint) (*dto.OrganizationDTO, error) {
	org, err := uc.orgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToOrganizationDTO(org), nil
}
