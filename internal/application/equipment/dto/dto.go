package dto

import (
	"time"

	"crmdesk/internal/domain/equipment"
	"crmdesk/internal/shared/query"
)

var FilterFields = query.NewFields(
	query.Field{Name: "organization_id", Column: "organization_id", Kind: query.KindInt},
	query.Field{Name: "branch_id", Column: "branch_id", Kind: query.KindInt},
	query.Field{Name: "serial_number", Column: "serial_number", Kind: query.KindString},
	query.Field{Name: "brand", Column: "brand", Kind: query.KindString},
	query.Field{Name: "model", Column: "model", Kind: query.KindString},
	query.Field{Name: "installed", Column: "installed_at", Kind: query.KindTime},
)

type CreateEquipmentRequest struct {
	OrganizationID uint       `json:"organization_id" binding:"required"`
	BranchID       *uint      `json:"branch_id"`
	SerialNumber   string     `json:"serial_number" binding:"required,max=120"`
	Model          string     `json:"model" binding:"max=120"`
	Brand          string     `json:"brand" binding:"max=120"`
	InstalledAt    *time.Time `json:"installed_at"`
}

type UpdateEquipmentRequest struct {
	BranchID    *uint      `json:"branch_id"`
	Model       *string    `json:"model" binding:"omitempty,max=120"`
	Brand       *string    `json:"brand" binding:"omitempty,max=120"`
	InstalledAt *time.Time `json:"installed_at"`
}

type EquipmentDTO struct {
	ID             uint       `json:"id"`
	OrganizationID uint       `json:"organization_id"`
	BranchID       *uint      `json:"branch_id"`
	SerialNumber   string     `json:"serial_number"`
	Model          string     `json:"model"`
	Brand          string     `json:"brand"`
	InstalledAt    *time.Time `json:"installed_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type ListEquipmentResponse struct {
	Equipment []*EquipmentDTO
	Total     int64
	Page      int
	PageSize  int
}

func ToEquipmentDTO(e *equipment.Equipment) *EquipmentDTO {
	if e == nil {
		return nil
	}
	return &EquipmentDTO{
		ID:             e.ID(),
		OrganizationID: e.OrganizationID(),
		BranchID:       e.BranchID(),
		SerialNumber:   e.SerialNumber(),
		Model:          e.Model(),
		Brand:          e.Brand(),
		InstalledAt:    e.InstalledAt(),
		CreatedAt:      e.CreatedAt(),
		UpdatedAt:      e.UpdatedAt(),
	}
}
