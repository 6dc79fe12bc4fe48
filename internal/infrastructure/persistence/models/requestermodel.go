package models

import (
	"time"

	"crmdesk/internal/shared/constants"
)

// RequesterModel keeps Email and RemoteID nullable so the unique indexes only
// bind rows that actually carry a value.
type RequesterModel struct {
	ID             uint    `gorm:"primaryKey"`
	Name           string  `gorm:"size:255;not null"`
	Email          *string `gorm:"uniqueIndex;size:255"`
	Phone          string  `gorm:"size:50"`
	RemoteID       *int64  `gorm:"uniqueIndex"`
	OrganizationID *uint   `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (RequesterModel) TableName() string {
	return constants.TableRequesters
}
