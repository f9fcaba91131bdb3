package org

import "context"

type UnitRepository interface {
	ListAll(ctx context.Context) ([]Unit, error)
}

type EmployeeRepository interface {
	ListAll(ctx context.Context) ([]Employee, error)
}
