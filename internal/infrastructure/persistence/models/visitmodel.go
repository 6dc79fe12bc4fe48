package models

import (
	"time"

	"crmdesk/internal/shared/constants"
)

type VisitModel struct {
	ID             uint      `gorm:"primaryKey"`
	OrganizationID uint      `gorm:"not null;index"`
	BranchID       *uint     `gorm:"index"`
	TicketID       *int64    `gorm:"index"`
	ScheduledAt    time.Time `gorm:"not null;index"`
	CompletedAt    *time.Time
	Technician     string `gorm:"size:255;not null"`
	NotesMarkdown  string `gorm:"type:text"`
	NotesHTML      string `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (VisitModel) TableName() string {
	return constants.TableVisits
}
