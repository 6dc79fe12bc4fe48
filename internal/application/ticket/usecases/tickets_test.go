package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/internal/domain/ticket"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/query"
)

func newClosedTicket(t *testing.T, id int64, subject string) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(ticket.Snapshot{
		ID:          id,
		Subject:     subject,
		Status:      ticket.StatusClosed,
		Description: "<p>toner</p>",
		Stats:       map[string]any{"closed_at": "2024-03-01T10:00:00Z"},
		UpdatedAt:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return tk
}

func TestGetTicketUseCase_Execute_Success(t *testing.T) {
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*ticket.Ticket, error) {
			return newClosedTicket(t, id, "Printer offline"), nil
		},
	}
	uc := NewGetTicketUseCase(repo, logger.NewDiscard())

	got, err := uc.Execute(context.Background(), GetTicketQuery{TicketID: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.ID)
	assert.Equal(t, "closed", got.StatusName)
	assert.Equal(t, "<p>toner</p>", got.Description)
	assert.NotEmpty(t, got.Stats)
}

func TestGetTicketUseCase_Execute_InvalidID(t *testing.T) {
	uc := NewGetTicketUseCase(&mockTicketRepository{}, logger.NewDiscard())

	_, err := uc.Execute(context.Background(), GetTicketQuery{TicketID: 0})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestGetTicketUseCase_Execute_NotFound(t *testing.T) {
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*ticket.Ticket, error) {
			return nil, apperrors.NewNotFoundError("ticket not found")
		},
	}
	uc := NewGetTicketUseCase(repo, logger.NewDiscard())

	_, err := uc.Execute(context.Background(), GetTicketQuery{TicketID: 7})
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestListTicketsUseCase_Execute(t *testing.T) {
	var seen query.ListFilter
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter query.ListFilter) ([]*ticket.Ticket, int64, error) {
			seen = filter
			return []*ticket.Ticket{newClosedTicket(t, 1, "a"), newClosedTicket(t, 2, "b")}, 12, nil
		},
	}
	uc := NewListTicketsUseCase(repo, logger.NewDiscard())

	filter := query.NewListFilter(query.WithPage(2, 10))
	resp, err := uc.Execute(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, int64(12), resp.Total)
	assert.Equal(t, 2, resp.Page)
	require.Len(t, resp.Tickets, 2)
	assert.Empty(t, resp.Tickets[0].Description, "list items leave out the description")
	assert.Equal(t, 2, seen.Page)
}

func TestListTicketsUseCase_Execute_RepositoryError(t *testing.T) {
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter query.ListFilter) ([]*ticket.Ticket, int64, error) {
			return nil, 0, errors.New("connection reset")
		},
	}
	uc := NewListTicketsUseCase(repo, logger.NewDiscard())

	_, err := uc.Execute(context.Background(), query.NewListFilter())
	assert.ErrorContains(t, err, "failed to list tickets")
}
