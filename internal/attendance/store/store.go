package store

import (
	"context"
	"errors"
)

// Storage formats shared by every ledger backend. The CSV file is the
// canonical representation, so the record keeps its fields as the exact
// strings that appear on a ledger line.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// ErrRecordNotFound is returned by UpdateClockOut when no open row matches
// the (employee, date) key. Callers must treat it as a hard failure: the
// clock-out was not persisted.
var ErrRecordNotFound = errors.New("attendance record not found")

// AttendanceRecord is one ledger row: a keyed daily record created by a
// clock-in and completed, at most once, by a clock-out.
type AttendanceRecord struct {
	EmployeeID string
	Date       string // DateLayout
	ClockIn    string // TimeLayout
	ClockOut   string // TimeLayout, empty while the record is open
	OutletCode string // captured from the employee ID at clock-in time
}

// Open reports whether the record has a clock-in but no clock-out yet.
func (r AttendanceRecord) Open() bool {
	return r.ClockIn != "" && r.ClockOut == ""
}

// Complete reports whether the record has both times set. Complete records
// are terminal and never rewritten.
func (r AttendanceRecord) Complete() bool {
	return r.ClockOut != ""
}

// LedgerStore is the attendance ledger: at most one record per
// (employee, date) key.
//
// Append does not check for an existing key. That check belongs to the
// workflow, which serializes the whole read-check-write sequence. The
// store's own job is to keep each primitive safe against concurrent use.
type LedgerStore interface {
	// EnsureInitialized creates the backing storage if it does not exist.
	// Idempotent; never truncates existing data.
	EnsureInitialized(ctx context.Context) error

	// FindByKey returns the record for (employeeID, date), or nil when no
	// row matches. Rows that fail to decode are skipped, not surfaced.
	FindByKey(ctx context.Context, employeeID, date string) (*AttendanceRecord, error)

	// Append adds one new row.
	Append(ctx context.Context, rec AttendanceRecord) error

	// UpdateClockOut sets the clock-out time on the open row matching the
	// key, preserving every other field. Returns ErrRecordNotFound when no
	// open row matches.
	UpdateClockOut(ctx context.Context, employeeID, date, clockOut string) error
}
