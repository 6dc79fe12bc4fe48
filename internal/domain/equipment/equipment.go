package equipment

import (
	"context"
	"strings"
	"time"

	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/query"
)

// Equipment is an installed device identified by its serial number.
type Equipment struct {
	id             uint
	organizationID uint
	branchID       *uint
	serialNumber   string
	model          string
	brand          string
	installedAt    *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

// NormalizeSerial uppercases and strips spaces so "ab 12-3" and "AB12-3" collide.
func NormalizeSerial(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

func NewEquipment(organizationID uint, branchID *uint, serial, model, brand string, installedAt *time.Time) (*Equipment, error) {
	if organizationID == 0 {
		return nil, errors.NewValidationError("organization_id is required")
	}
	serial = NormalizeSerial(serial)
	if serial == "" {
		return nil, errors.NewValidationError("serial_number is required")
	}
	now := time.Now().UTC()
	return &Equipment{
		organizationID: organizationID,
		branchID:       branchID,
		serialNumber:   serial,
		model:          strings.TrimSpace(model),
		brand:          strings.TrimSpace(brand),
		installedAt:    installedAt,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructEquipment(id, organizationID uint, branchID *uint, serial, model, brand string, installedAt *time.Time, createdAt, updatedAt time.Time) *Equipment {
	return &Equipment{
		id:             id,
		organizationID: organizationID,
		branchID:       branchID,
		serialNumber:   serial,
		model:          model,
		brand:          brand,
		installedAt:    installedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (e *Equipment) ID() uint                { return e.id }
func (e *Equipment) OrganizationID() uint    { return e.organizationID }
func (e *Equipment) BranchID() *uint         { return e.branchID }
func (e *Equipment) SerialNumber() string    { return e.serialNumber }
func (e *Equipment) Model() string           { return e.model }
func (e *Equipment) Brand() string           { return e.brand }
func (e *Equipment) InstalledAt() *time.Time { return e.installedAt }
func (e *Equipment) CreatedAt() time.Time    { return e.createdAt }
func (e *Equipment) UpdatedAt() time.Time    { return e.updatedAt }

func (e *Equipment) SetID(id uint) { e.id = id }

func (e *Equipment) Update(branchID *uint, model, brand *string, installedAt *time.Time) {
	if branchID != nil {
		e.branchID = branchID
	}
	if model != nil {
		e.model = strings.TrimSpace(*model)
	}
	if brand != nil {
		e.brand = strings.TrimSpace(*brand)
	}
	if installedAt != nil {
		e.installedAt = installedAt
	}
	e.updatedAt = time.Now().UTC()
}

type Repository interface {
	Create(ctx context.Context, e *Equipment) error
	Update(ctx context.Context, e *Equipment) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Equipment, error)
	List(ctx context.Context, filter query.ListFilter) ([]*Equipment, int64, error)
}
