package usecases

import (
	"context"

	"crmdesk/internal/domain/organization"
	"crmdesk/internal/shared/logger"
)

type DeleteOrganizationUseCase struct {
	orgRepo organization.Repository
	logger  logger.Interface
}

func NewDeleteOrganizationUseCase(orgRepo organization.Repository, logger logger.Interface) *DeleteOrganizationUseCase {
	return &DeleteOrganizationUseCase{orgRepo: orgRepo, logger: logger}
}

func (uc *DeleteOrganizationUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.orgRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Infow("organization deleted", "organization_id", id)
	return nil
}
