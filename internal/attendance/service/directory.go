package service

import (
	"errors"
	"strings"

	"github.com/goldenhour/attendance-server/internal/attendance/types"
)

var (
	ErrInvalidEmployeeID = errors.New("employee_id is required")
	ErrUnknownEmployee   = errors.New("unknown employee")
)

// EmployeeLookup is the slice of the catalog the directory needs.
type EmployeeLookup interface {
	FindEmployee(employeeID string) (types.Employee, bool)
}

// EmployeeDirectory resolves employee identities for the workflow. Clock
// events from IDs that are not in the employee catalog are rejected.
type EmployeeDirectory struct {
	lookup EmployeeLookup
}

func NewEmployeeDirectory(l EmployeeLookup) *EmployeeDirectory {
	return &EmployeeDirectory{lookup: l}
}

func (d *EmployeeDirectory) Resolve(employeeID string) (types.Employee, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return types.Employee{}, ErrInvalidEmployeeID
	}
	emp, ok := d.lookup.FindEmployee(employeeID)
	if !ok {
		return types.Employee{}, ErrUnknownEmployee
	}
	return emp, nil
}
