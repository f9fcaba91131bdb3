package models

type Unit struct {
	ID   string `gorm:"type:uuid;primaryKey"`
	Code string `gorm:"size:32;not null;uniqueIndex"`
	Name string `gorm:"size:255;not null"`
}

func (Unit) TableName() string {
	return "units"
}

type Employee struct {
	ID       string  `gorm:"type:uuid;primaryKey"`
	Code     string  `gorm:"size:32;not null;uniqueIndex"`
	FullName string  `gorm:"size:255;not null"`
	UnitID   *string `gorm:"type:uuid"`
}

func (Employee) TableName() string {
	return "employees"
}
