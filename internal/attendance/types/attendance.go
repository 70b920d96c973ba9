package types

// Employee is the identity the attendance workflow operates on. Loaded
// from the employee catalog; the first 3 characters of the ID double as
// the outlet code.
type Employee struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
}

type ClockRequest struct {
	EmployeeID string `json:"employee_id"`
}

type ClockInResult struct {
	OK         bool   `json:"ok"`
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	OutletCode string `json:"outlet_code"`
	OutletName string `json:"outlet_name"`
	Date       string `json:"date"`
	ClockIn    string `json:"clock_in"` // display format, e.g. "9:00 AM"
}

type ClockOutResult struct {
	OK          bool    `json:"ok"`
	EmployeeID  string  `json:"employee_id"`
	Name        string  `json:"name"`
	OutletCode  string  `json:"outlet_code"`
	OutletName  string  `json:"outlet_name"`
	Date        string  `json:"date"`
	ClockOut    string  `json:"clock_out"` // display format
	HoursWorked float64 `json:"hours_worked"`
}

// TodayStatus reports the stored state of an employee's record for the
// current date, as found in the ledger.
type TodayStatus struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	ClockIn    string `json:"clock_in,omitempty"`  // 24-hour HH:MM:SS
	ClockOut   string `json:"clock_out,omitempty"` // 24-hour HH:MM:SS, empty while open
	OutletCode string `json:"outlet_code,omitempty"`
}
