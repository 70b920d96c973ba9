// Package catalog loads the store-operations reference data (employees,
// outlets, and models) from delimited text files. Catalogs are read once
// at startup and queried by exact key; the attendance workflow consumes
// them through small lookup interfaces.
package catalog

import (
	"github.com/goldenhour/attendance-server/internal/attendance/types"
)

type Outlet struct {
	OutletCode string
	OutletName string
}

type Model struct {
	ModelID       string
	Price         float64
	StockByOutlet map[string]int
}

// Catalog holds the loaded reference data. Lookups are read-only and safe
// for concurrent use.
type Catalog struct {
	employees []types.Employee
	outlets   []Outlet
	models    []Model
}

// FindEmployee returns the employee with the given ID by exact match.
func (c *Catalog) FindEmployee(employeeID string) (types.Employee, bool) {
	for _, e := range c.employees {
		if e.EmployeeID == employeeID {
			return e, true
		}
	}
	return types.Employee{}, false
}

// OutletName resolves an outlet code to its display name by exact match.
func (c *Catalog) OutletName(code string) (string, bool) {
	for _, o := range c.outlets {
		if o.OutletCode == code {
			return o.OutletName, true
		}
	}
	return "", false
}

func (c *Catalog) Employees() []types.Employee { return c.employees }
func (c *Catalog) Outlets() []Outlet           { return c.outlets }
func (c *Catalog) Models() []Model             { return c.models }
