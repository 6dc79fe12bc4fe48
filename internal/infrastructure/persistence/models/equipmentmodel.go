package models

import (
	"time"

	"crmdesk/internal/shared/constants"
)

type EquipmentModel struct {
	ID             uint   `gorm:"primaryKey"`
	OrganizationID uint   `gorm:"not null;index"`
	BranchID       *uint  `gorm:"index"`
	SerialNumber   string `gorm:"uniqueIndex;size:100;not null"`
	Model          string `gorm:"size:255"`
	Brand          string `gorm:"size:255"`
	InstalledAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (EquipmentModel) TableName() string {
	return constants.TableEquipment
}
