// Package ticket serves the read-only view of synced Freshdesk tickets.
package ticket

import (
	"context"

	"crmdesk/internal/application/ticket/dto"
	"crmdesk/internal/application/ticket/usecases"
	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/query"
)

type Service struct {
	get  *usecases.GetTicketUseCase
	list *usecases.ListTicketsUseCase
}

func NewService(repo ticket.Repository, logger logger.Interface) *Service {
	return &Service{
		get:  usecases.NewGetTicketUseCase(repo, logger),
		list: usecases.NewListTicketsUseCase(repo, logger),
	}
}

func (s *Service) Get(ctx context.Context, id int64) (*dto.TicketDTO, error) {
	return s.get.Execute(ctx, usecases.GetTicketQuery{TicketID: id})
}

func (s *Service) List(ctx context.Context, filter query.ListFilter) (*dto.ListTicketsResponse, error) {
	return s.list.Execute(ctx, filter)
}
