package usecases

import (
	"context"

	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/shared/query"
)

type mockTicketRepository struct {
	UpsertFunc  func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc func(ctx context.Context, id int64) (*ticket.Ticket, error)
	ListFunc    func(ctx context.Context, filter query.ListFilter) ([]*ticket.Ticket, int64, error)
}

func (m *mockTicketRepository) Upsert(ctx context.Context, t *ticket.Ticket) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id int64) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter query.ListFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}
