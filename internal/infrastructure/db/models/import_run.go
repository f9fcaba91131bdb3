package models

import "time"

type ImportRun struct {
	ID          string             `gorm:"type:uuid;primaryKey"`
	SessionID   string             `gorm:"type:text;not null"`
	Entity      string             `gorm:"type:text;not null;index"`
	FileName    string             `gorm:"type:text;not null"`
	Status      string             `gorm:"type:text;not null"`
	TotalRows   int                `gorm:"not null;default:0"`
	ValidRows   int                `gorm:"not null;default:0"`
	InvalidRows int                `gorm:"not null;default:0"`
	Attempts    int                `gorm:"not null;default:0"`
	Succeeded   int                `gorm:"not null;default:0"`
	Failed      int                `gorm:"not null;default:0"`
	Failures    []ImportRunFailure `gorm:"foreignKey:RunID"`
	StartedAt   time.Time
	FinishedAt  time.Time
	CreatedAt   time.Time
}

func (ImportRun) TableName() string {
	return "import_runs"
}

type ImportRunFailure struct {
	ID       int64  `gorm:"primaryKey"`
	RunID    string `gorm:"type:uuid;index;not null"`
	RowIndex int    `gorm:"not null"`
	Message  string `gorm:"type:text;not null"`
}

func (ImportRunFailure) TableName() string {
	return "import_run_failures"
}
