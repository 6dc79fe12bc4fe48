package branch

import (
	"context"
	"strings"
	"time"

	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/query"
)

// Branch is a site of an organization where equipment lives and visits happen.
type Branch struct {
	id             uint
	organizationID uint
	name           string
	address        string
	city           string
	phone          string
	createdAt      time.Time
	updatedAt      time.Time
}

func NewBranch(organizationID uint, name, address, city, phone string) (*Branch, error) {
	if organizationID == 0 {
		return nil, errors.NewValidationError("organization_id is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("branch name is required")
	}
	now := time.Now().UTC()
	return &Branch{
		organizationID: organizationID,
		name:           name,
		address:        strings.TrimSpace(address),
		city:           strings.TrimSpace(city),
		phone:          strings.TrimSpace(phone),
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructBranch(id, organizationID uint, name, address, city, phone string, createdAt, updatedAt time.Time) *Branch {
	return &Branch{
		id:             id,
		organizationID: organizationID,
		name:           name,
		address:        address,
		city:           city,
		phone:          phone,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (b *Branch) ID() uint             { return b.id }
func (b *Branch) OrganizationID() uint { return b.organizationID }
func (b *Branch) Name() string         { return b.name }
func (b *Branch) Address() string      { return b.address }
func (b *Branch) City() string         { return b.city }
func (b *Branch) Phone() string        { return b.phone }
func (b *Branch) CreatedAt() time.Time { return b.createdAt }
func (b *Branch) UpdatedAt() time.Time { return b.updatedAt }

func (b *Branch) SetID(id uint) { b.id = id }

func (b *Branch) Update(name, address, city, phone *string) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return errors.NewValidationError("branch name cannot be empty")
		}
		b.name = n
	}
	if address != nil {
		b.address = strings.TrimSpace(*address)
	}
	if city != nil {
		b.city = strings.TrimSpace(*city)
	}
	if phone != nil {
		b.phone = strings.TrimSpace(*phone)
	}
	b.updatedAt = time.Now().UTC()
	return nil
}

type Repository interface {
	Create(ctx context.Context, b *Branch) error
	Update(ctx context.Context, b *Branch) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Branch, error)
	List(ctx context.Context, filter query.ListFilter) ([]*Branch, int64, error)
}
