package ticket

import (
	"context"

	"crmdesk/internal/shared/query"
)

type Repository interface {
	// Upsert inserts the ticket or overwrites every mutable column of the
	// row with the same ID.
	Upsert(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id int64) (*Ticket, error)
	List(ctx context.Context, filter query.ListFilter) ([]*Ticket, int64, error)
}
