package requester

import (
	"context"

	"crmdesk/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, r *Requester) error
	Update(ctx context.Context, r *Requester) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Requester, error)
	// GetByEmail and GetByRemoteID return (nil, nil) when nothing matches.
	GetByEmail(ctx context.Context, email string) (*Requester, error)
	GetByRemoteID(ctx context.Context, remoteID int64) (*Requester, error)
	List(ctx context.Context, filter query.ListFilter) ([]*Requester, int64, error)
}
