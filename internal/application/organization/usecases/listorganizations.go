package usecases

import (
	"context"

	"crmdesk/internal/application/organization/dto"
	"crmdesk/internal/domain/organization"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/mapper"
	"crmdesk/internal/shared/query"
)

type ListOrganizationsUseCase struct {
	orgRepo organization.Repository
	logger  logger.Interface
}

func NewListOrganizationsUseCase(orgRepo organization.Repository, logger logger.Interface) *ListOrganizationsUseCase {
	return &ListOrganizationsUseCase{orgRepo: orgRepo, logger: logger}
}

func (uc *ListOrganizationsUseCase) Execute(ctx context.Context, filter query.ListFilter) (*dto.ListOrganizationsResponse, error) {
	orgs, total, err := uc.orgRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list organizations", "error", err)
		return nil, err
	}

	items := mapper.MapSlice(orgs, dto.ToOrganizationDTO)
	return &dto.ListOrganizationsResponse{
		Organizations: items,
		Total:         total,
		Page:          filter.Page,
		PageSize:      filter.PageSize,
	}, nil
}
