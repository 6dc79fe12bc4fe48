package models

import (
	"time"

	"gorm.io/datatypes"

	"crmdesk/internal/shared/constants"
)

// TicketModel mirrors a remote ticket. The primary key is the remote id and is
// never generated locally. created_at/updated_at hold the remote timestamps;
// the fields are not named CreatedAt/UpdatedAt so gorm leaves them alone.
type TicketModel struct {
	ID              int64             `gorm:"primaryKey;autoIncrement:false"`
	Subject         string            `gorm:"size:500;not null"`
	Status          int               `gorm:"not null;index"`
	Priority        int               `gorm:"not null;default:0"`
	Type            string            `gorm:"size:100"`
	Source          int               `gorm:"not null;default:0"`
	RequesterEmail  string            `gorm:"size:255;index"`
	RequesterID     *uint             `gorm:"index"`
	OrganizationID  *uint             `gorm:"index"`
	Description     string            `gorm:"type:text"`
	CustomFields    datatypes.JSONMap `gorm:"type:json"`
	Stats           datatypes.JSONMap `gorm:"type:json"`
	RemoteCreatedAt time.Time         `gorm:"column:created_at;not null"`
	RemoteUpdatedAt time.Time         `gorm:"column:updated_at;not null;index"`
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}
