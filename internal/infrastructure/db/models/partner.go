package models

import "time"

type Partner struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	Name          string `gorm:"size:255;not null"`
	ShortName     string `gorm:"size:64"`
	TaxCode       string `gorm:"size:20"`
	Industry      string `gorm:"size:32;not null"`
	Type          string `gorm:"size:16;not null"`
	Address       string `gorm:"type:text"`
	Phone         string `gorm:"size:32"`
	Email         string `gorm:"size:320"`
	ContactPerson string `gorm:"size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Partner) TableName() string {
	return "partners"
}
