package usecases

import (
	"context"
	"fmt"

	"crmdesk/internal/application/visit/dto"
	"crmdesk/internal/domain/branch"
	"crmdesk/internal/domain/organization"
	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/domain/visit"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

type CreateVisitUseCase struct {
	visitRepo  visit.Repository
	orgRepo    organization.Repository
	branchRepo branch.Repository
	ticketRepo ticket.Repository
	renderer   NotesRenderer
	logger     logger.Interface
}

func NewCreateVisitUseCase(
	visitRepo visit.Repository,
	orgRepo organization.Repository,
	branchRepo branch.Repository,
	ticketRepo ticket.Repository,
	renderer NotesRenderer,
	logger logger.Interface,
) *CreateVisitUseCase {
	return &CreateVisitUseCase{
		visitRepo:  visitRepo,
		orgRepo:    orgRepo,
		branchRepo: branchRepo,
		ticketRepo: ticketRepo,
		renderer:   renderer,
		logger:     logger,
	}
}

func (uc *CreateVisitUseCase) Execute(ctx context.Context, req dto.CreateVisitRequest) (*dto.VisitDTO, error) {
	uc.logger.Infow("executing create visit use case",
		"organization_id", req.OrganizationID,
		"technician", req.Technician,
		"scheduled_at", req.ScheduledAt,
	)

	if err := uc.validateReferences(ctx, req); err != nil {
		return nil, err
	}

	v, err := visit.NewVisit(req.OrganizationID, req.BranchID, req.TicketID, req.ScheduledAt, req.Technician)
	if err != nil {
		return nil, err
	}

	if req.NotesMarkdown != "" {
		html, err := uc.renderer.Render(req.NotesMarkdown)
		if err != nil {
			return nil, fmt.Errorf("failed to render visit notes: %w", err)
		}
		v.SetNotes(req.NotesMarkdown, html)
	}

	if err := uc.visitRepo.Create(ctx, v); err != nil {
		uc.logger.Errorw("failed to create visit", "organization_id", req.OrganizationID, "error", err)
		return nil, err
	}

	return dto.ToVisitDTO(v), nil
}

func (uc *CreateVisitUseCase) validateReferences(ctx context.Context, req dto.CreateVisitRequest) error {
	if _, err := uc.orgRepo.GetByID(ctx, req.OrganizationID); err != nil {
		return asPayloadError(err, "organization does not exist", "organization_id")
	}

	if req.BranchID != nil {
		b, err := uc.branchRepo.GetByID(ctx, *req.BranchID)
		if err != nil {
			return asPayloadError(err, "branch does not exist", "branch_id")
		}
		if b.OrganizationID() != req.OrganizationID {
			return errors.NewValidationError("branch belongs to another organization", "branch_id")
		}
	}

	if req.TicketID != nil {
		if _, err := uc.ticketRepo.GetByID(ctx, *req.TicketID); err != nil {
			return asPayloadError(err, "ticket has not been synced", "ticket_id")
		}
	}
	return nil
}

func asPayloadError(err error, message, field string) error {
	if errors.IsNotFoundError(err) {
		return errors.NewValidationError(message, field)
	}
	return err
}
