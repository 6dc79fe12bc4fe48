package models

import (
	"time"

	"gorm.io/datatypes"

	"crmdesk/internal/shared/constants"
)

type SyncFailure struct {
	TicketID  int64  `json:"ticket_id"`
	Error     string `json:"error"`
	Permanent bool   `json:"permanent,omitempty"`
}

type SyncRunModel struct {
	ID         string                           `gorm:"primaryKey;size:36"`
	Trigger    string                           `gorm:"size:20;not null"`
	Since      time.Time                        `gorm:"not null"`
	Status     string                           `gorm:"size:20;not null;index"`
	Imported   int                              `gorm:"not null;default:0"`
	Failed     int                              `gorm:"not null;default:0"`
	Pages      int                              `gorm:"not null;default:0"`
	Failures   datatypes.JSONSlice[SyncFailure] `gorm:"type:json"`
	Error      string                           `gorm:"type:text"`
	StartedAt  time.Time                        `gorm:"not null;index"`
	FinishedAt *time.Time
}

func (SyncRunModel) TableName() string {
	return constants.TableSyncRuns
}

type SyncCursorModel struct {
	Name      string    `gorm:"primaryKey;size:100"`
	Position  time.Time `gorm:"not null"`
	UpdatedAt time.Time
}

func (SyncCursorModel) TableName() string {
	return constants.TableSyncCursors
}

// All lists every model, in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&OrganizationModel{},
		&BranchModel{},
		&RequesterModel{},
		&EquipmentModel{},
		&QuoteModel{},
		&VisitModel{},
		&TicketModel{},
		&SyncRunModel{},
		&SyncCursorModel{},
	}
}
