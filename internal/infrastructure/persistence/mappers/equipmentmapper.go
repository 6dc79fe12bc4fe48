package mappers

import (
	"crmdesk/internal/domain/equipment"
	"crmdesk/internal/infrastructure/persistence/models"
)

func EquipmentToModel(e *equipment.Equipment) *models.EquipmentModel {
	return &models.EquipmentModel{
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

func EquipmentToDomain(m *models.EquipmentModel) *equipment.Equipment {
	return equipment.ReconstructEquipment(m.ID, m.OrganizationID, m.BranchID, m.SerialNumber, m.Model, m.Brand,
		utcPtr(m.InstalledAt), m.CreatedAt.UTC(), m.UpdatedAt.UTC())
}
