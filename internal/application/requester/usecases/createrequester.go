package usecases

import (
	"context"

	"crmdesk/internal/application/requester/dto"
	"crmdesk/internal/domain/organization"
	"crmdesk/internal/domain/requester"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

type CreateRequesterUseCase struct {
	requesterRepo requester.Repository
	orgRepo       organization.Repository
	logger        logger.Interface
}

func NewCreateRequesterUseCase(requesterRepo requester.Repository, orgRepo organization.Repository, logger logger.Interface) *CreateRequesterUseCase {
	return &CreateRequesterUseCase{requesterRepo: requesterRepo, orgRepo: orgRepo, logger: logger}
}

func (uc *CreateRequesterUseCase) Execute(ctx context.Context, req dto.CreateRequesterRequest) (*dto.RequesterDTO, error) {
	uc.logger.Infow("executing create requester use case", "email", req.Email)

	if err := checkOrganization(ctx, uc.orgRepo, req.OrganizationID); err != nil {
		return nil, err
	}

	r, err := requester.NewRequester(req.Name, req.Email, req.Phone, req.RemoteID, req.OrganizationID)
	if err != nil {
		return nil, err
	}

	if err := uc.requesterRepo.Create(ctx, r); err != nil {
		uc.logger.Warnw("failed to create requester", "email", r.Email(), "error", err)
		return nil, err
	}

	return dto.ToRequesterDTO(r), nil
}

func checkOrganization(ctx context.Context, orgRepo organization.Repository, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := orgRepo.GetByID(ctx, *id); err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewValidationError("organization does not exist", "organization_id")
		}
		return err
	}
	return nil
}
