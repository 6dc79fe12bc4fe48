package dto

import (
	"time"

	"crmdesk/internal/domain/requester"
	"crmdesk/internal/shared/query"
)

var FilterFields = query.NewFields(
	query.Field{Name: "organization_id", Column: "organization_id", Kind: query.KindInt},
	query.Field{Name: "name", Column: "name", Kind: query.KindString},
	query.Field{Name: "email", Column: "email", Kind: query.KindString},
	query.Field{Name: "remote_id", Column: "remote_id", Kind: query.KindInt},
)

type CreateRequesterRequest struct {
	Name           string `json:"name" binding:"required_without=Email,max=200"`
	Email          string `json:"email" binding:"omitempty,email,max=254"`
	Phone          string `json:"phone" binding:"max=50"`
	RemoteID       *int64 `json:"remote_id" binding:"omitempty,gt=0"`
	OrganizationID *uint  `json:"organization_id"`
}

type UpdateRequesterRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=200"`
	Email          *string `json:"email" binding:"omitempty,email,max=254"`
	Phone          *string `json:"phone" binding:"omitempty,max=50"`
	OrganizationID *uint   `json:"organization_id"`
}

type RequesterDTO struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	RemoteID       *int64    `json:"remote_id"`
	OrganizationID *uint     `json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ListRequestersResponse struct {
	Requesters []*RequesterDTO
	Total      int64
	Page       int
	PageSize   int
}

func ToRequesterDTO(r *requester.Requester) *RequesterDTO {
	if r == nil {
		return nil
	}
	return &RequesterDTO{
		ID:             r.ID(),
		Name:           r.Name(),
		Email:          r.Email(),
		Phone:          r.Phone(),
		RemoteID:       r.RemoteID(),
		OrganizationID: r.OrganizationID(),
		CreatedAt:      r.CreatedAt(),
		UpdatedAt:      r.UpdatedAt(),
	}
}
