package dto

import (
	"time"

	"crmdesk/internal/domain/branch"
	"crmdesk/internal/shared/query"
)

var FilterFields = query.NewFields(
	query.Field{Name: "organization_id", Column: "organization_id", Kind: query.KindInt},
	query.Field{Name: "name", Column: "name", Kind: query.KindString},
	query.Field{Name: "city", Column: "city", Kind: query.KindString},
)

type CreateBranchRequest struct {
	OrganizationID uint   `json:"organization_id" binding:"required"`
	Name           string `json:"name" binding:"required,max=200"`
	Address        string `json:"address" binding:"max=500"`
	City           string `json:"city" binding:"max=120"`
	Phone          string `json:"phone" binding:"max=50"`
}

type UpdateBranchRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=200"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	City    *string `json:"city" binding:"omitempty,max=120"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
}

type BranchDTO struct {
	ID             uint      `json:"id"`
	OrganizationID uint      `json:"organization_id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	Phone          string    `json:"phone"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ListBranchesResponse struct {
	Branches []*BranchDTO
	Total    int64
	Page     int
	PageSize int
}

func ToBranchDTO(b *branch.Branch) *BranchDTO {
	if b == nil {
		return nil
	}
	return &BranchDTO{
		ID:             b.ID(),
		OrganizationID: b.OrganizationID(),
		Name:           b.Name(),
		Address:        b.Address(),
		City:           b.City(),
		Phone:          b.Phone(),
		CreatedAt:      b.CreatedAt(),
		UpdatedAt:      b.UpdatedAt(),
	}
}
