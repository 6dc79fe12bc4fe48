package dto

import (
	"time"

	"crmdesk/internal/domain/organization"
	"crmdesk/internal/shared/query"
)

// FilterFields are the list filters accepted on /api/organizations.
var FilterFields = query.NewFields(
	query.Field{Name: "name", Column: "name", Kind: query.KindString},
	query.Field{Name: "domain", Column: "domain", Kind: query.KindString},
	query.Field{Name: "created", Column: "created_at", Kind: query.KindTime},
)

type CreateOrganizationRequest struct {
	Name   string `json:"name" binding:"required,max=200"`
	Domain string `json:"domain" binding:"omitempty,fqdn"`
	Phone  string `json:"phone" binding:"omitempty,max=50"`
	Notes  string `json:"notes"`
}

type UpdateOrganizationRequest struct {
	Name   *string `json:"name" binding:"omitempty,max=200"`
	Domain *string `json:"domain" binding:"omitempty,fqdn"`
	Phone  *string `json:"phone" binding:"omitempty,max=50"`
	Notes  *string `json:"notes"`
}

type OrganizationDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain"`
	Phone     string    `json:"phone"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListOrganizationsResponse struct {
	Organizations []*OrganizationDTO
	Total         int64
	Page          int
	PageSize      int
}

func ToOrganizationDTO(o *organization.Organization) *OrganizationDTO {
	if o == nil {
		return nil
	}
	return &OrganizationDTO{
		ID:        o.ID(),
		Name:      o.Name(),
		Domain:    o.Domain(),
		Phone:     o.Phone(),
		Notes:     o.Notes(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}
