package usecases

import (
	"context"

	"crmdesk/internal/application/requester/dto"
	"crmdesk/internal/domain/organization"
	"crmdesk/internal/domain/requester"
	"crmdesk/internal/shared/logger"
)

type UpdateRequesterUseCase struct {
	requesterRepo requester.Repository
	orgRepo       organization.Repository
	logger        logger.Interface
}

func NewUpdateRequesterUseCase(requesterRepo requester.Repository, orgRepo organization.Repository, logger logger.Interface) *UpdateRequesterUseCase {
	return &UpdateRequesterUseCase{requesterRepo: requesterRepo, orgRepo: orgRepo, logger: logger}
}

func (uc *UpdateRequesterUseCase) Execute(ctx context.Context, id uint, req dto.UpdateRequesterRequest) (*dto.RequesterDTO, error) {
	r, err := uc.requesterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := checkOrganization(ctx, uc.orgRepo, req.OrganizationID); err != nil {
		return nil, err
	}

	if err := r.Update(req.Name, req.Email, req.Phone, req.OrganizationID); err != nil {
		return nil, err
	}

	if err := uc.requesterRepo.Update(ctx, r); err != nil {
		uc.logger.Warnw("failed to update requester", "requester_id", id, "error", err)
		return nil, err
	}

	uc.logger.Infow("requester updated", "requester_id", id)
	return dto.ToRequesterDTO(r), nil
}
