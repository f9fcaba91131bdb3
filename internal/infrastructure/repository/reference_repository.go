package repository

import (
	"context"

	"github.com/go-faster/errors"
	"gorm.io/gorm"

	"github.com/bizdash/import-service/internal/domain/org"
	"github.com/bizdash/import-service/internal/infrastructure/db/models"
)

type UnitRepository struct {
	db *gorm.DB
}

func NewUnitRepository(db *gorm.DB) *UnitRepository {
	return &UnitRepository{db: db}
}

func (r *UnitRepository) ListAll(ctx context.Context) ([]org.Unit, error) {
	var rows []models.Unit
	if err := r.db.WithContext(ctx).Order("code").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list units")
	}

	units := make([]org.Unit, 0, len(rows))
	for _, row := range rows {
		units = append(units, org.Unit{ID: row.ID, Code: row.Code, Name: row.Name})
	}
	return units, nil
}

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) ListAll(ctx context.Context) ([]org.Employee, error) {
	var rows []models.Employee
	if err := r.db.WithContext(ctx).Order("code").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list employees")
	}

	employees := make([]org.Employee, 0, len(rows))
	for _, row := range rows {
		employee := org.Employee{ID: row.ID, Code: row.Code, FullName: row.FullName}
		if row.UnitID != nil {
			employee.UnitID = *row.UnitID
		}
		employees = append(employees, employee)
	}
	return employees, nil
}
