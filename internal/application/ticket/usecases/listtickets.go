package usecases

import (
	"context"
	"fmt"

	"crmdesk/internal/application/ticket/dto"
	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/mapper"
	"crmdesk/internal/shared/query"
)

type ListTicketsUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.Repository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, filter query.ListFilter) (*dto.ListTicketsResponse, error) {
	uc.logger.Debugw("executing list tickets use case",
		"page", filter.Page, "page_size", filter.PageSize, "predicates", len(filter.Predicates))

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	items := mapper.MapSlice(tickets, func(t *ticket.Ticket) *dto.TicketDTO {
		return dto.ToTicketDTO(t, false)
	})

	return &dto.ListTicketsResponse{
		Tickets:  items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
