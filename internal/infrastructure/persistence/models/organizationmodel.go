package models

import (
	"time"

	"crmdesk/internal/shared/constants"
)

// OrganizationModel stores companies. Name holds the normalized form and is the
// key the ticket sync deduplicates on.
type OrganizationModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:255;not null"`
	Domain    string `gorm:"size:255"`
	Phone     string `gorm:"size:50"`
	Notes     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (OrganizationModel) TableName() string {
	return constants.TableOrganizations
}

type BranchModel struct {
	ID             uint   `gorm:"primaryKey"`
	OrganizationID uint   `gorm:"not null;uniqueIndex:idx_branch_org_name"`
	Name           string `gorm:"size:255;not null;uniqueIndex:idx_branch_org_name"`
	Address        string `gorm:"size:500"`
	City           string `gorm:"size:100"`
	Phone          string `gorm:"size:50"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (BranchModel) TableName() string {
	return constants.TableBranches
}
