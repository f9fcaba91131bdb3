package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Contract struct {
	ID            string          `gorm:"type:uuid;primaryKey"`
	Code          string          `gorm:"size:64;not null;uniqueIndex"`
	Title         string          `gorm:"size:512;not null"`
	Type          string          `gorm:"size:16;not null"`
	PartnerID     string          `gorm:"type:uuid;not null;index"`
	UnitID        string          `gorm:"type:uuid;not null;index"`
	SalespersonID *string         `gorm:"type:uuid"`
	Value         decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	EstimatedCost decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	SignedDate    *time.Time      `gorm:"type:date"`
	StartDate     *time.Time      `gorm:"type:date"`
	EndDate       *time.Time      `gorm:"type:date"`
	Status        string          `gorm:"size:16;not null"`
	Category      string          `gorm:"size:16;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Contract) TableName() string {
	return "contracts"
}
