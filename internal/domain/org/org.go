package org

// Unit is a business unit that owns contracts.
type Unit struct {
	ID   string
	Code string
	Name string
}

// Employee is a member of staff; contracts reference one as salesperson.
type Employee struct {
	ID       string
	Code     string
	FullName string
	UnitID   string
}
