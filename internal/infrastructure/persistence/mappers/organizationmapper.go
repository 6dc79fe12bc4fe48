package mappers

import (
	"crmdesk/internal/domain/branch"
	"crmdesk/internal/domain/organization"
	"crmdesk/internal/infrastructure/persistence/models"
)

func OrganizationToModel(o *organization.Organization) *models.OrganizationModel {
	return &models.OrganizationModel{
		ID:        o.ID(),
		Name:      o.Name(),
		Domain:    o.Domain(),
		Phone:     o.Phone(),
		Notes:     o.Notes(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}

func OrganizationToDomain(m *models.OrganizationModel) *organization.Organization {
	return organization.ReconstructOrganization(m.ID, m.Name, m.Domain, m.Phone, m.Notes, m.CreatedAt.UTC(), m.UpdatedAt.UTC())
}

func BranchToModel(b *branch.Branch) *models.BranchModel {
	return &models.BranchModel{
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

func BranchToDomain(m *models.BranchModel) *branch.Branch {
	return branch.ReconstructBranch(m.ID, m.OrganizationID, m.Name, m.Address, m.City, m.Phone, m.CreatedAt.UTC(), m.UpdatedAt.UTC())
}
