package models

import (
	"time"

	"crmdesk/internal/shared/constants"
)

type QuoteModel struct {
	ID             uint   `gorm:"primaryKey"`
	Number         string `gorm:"uniqueIndex;size:20;not null"`
	OrganizationID uint   `gorm:"not null;index"`
	RequesterID    *uint  `gorm:"index"`
	Title          string `gorm:"size:255;not null"`
	AmountCents    int64  `gorm:"not null;default:0"`
	Currency       string `gorm:"size:3;not null"`
	Status         string `gorm:"size:20;not null;index"`
	SentAt         *time.Time
	DecidedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (QuoteModel) TableName() string {
	return constants.TableQuotes
}
