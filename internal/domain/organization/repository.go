package organization

import (
	"context"

	"crmdesk/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, org *Organization) error
	Update(ctx context.Context, org *Organization) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Organization, error)
	GetByName(ctx context.Context, normalizedName string) (*Organization, error)
	List(ctx context.Context, filter query.ListFilter) ([]*Organization, int64, error)

	// EnsureByName inserts the organization if no row holds the normalized name
	// and returns the stored row either way. Safe under concurrent callers.
	EnsureByName(ctx context.Context, normalizedName string) (*Organization, error)
}
