package usecases

import (
	"context"

	"crmdesk/internal/application/ticket/dto"
	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID int64
}

type GetTicketUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewGetTicketUseCase(ticketRepo ticket.Repository, logger logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	if query.TicketID <= 0 {
		return nil, errors.NewValidationError("ticket id must be positive")
	}

	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to load ticket", "ticket_id", query.TicketID, "error", err)
		}
		return nil, err
	}

	return dto.ToTicketDTO(t, true), nil
}
