package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/goldenhour/attendance-server/internal/attendance/store"
	"github.com/goldenhour/attendance-server/internal/attendance/types"
)

// Business-rule rejections. All recoverable; the message carries the
// prior timestamp that blocks the action where there is one.
var (
	ErrAlreadyClockedIn      = errors.New("already clocked in today")
	ErrAlreadyCompletedToday = errors.New("already clocked in and out today")
	ErrNotClockedInYet       = errors.New("not clocked in today")
	ErrAlreadyClockedOut     = errors.New("already clocked out today")
	ErrClockOutBeforeClockIn = errors.New("clock-out time is earlier than clock-in")
)

// unknownOutletName is the sentinel for outlet codes missing from the
// catalog. An unmatched code is never an error.
const unknownOutletName = "Unknown Outlet"

// outletCodeLen is how many leading characters of an employee ID form its
// outlet code.
const outletCodeLen = 3

// OutletLookup resolves an outlet code to its display name.
type OutletLookup interface {
	OutletName(code string) (string, bool)
}

type Deps struct {
	Ledger    store.LedgerStore
	Directory *EmployeeDirectory
	Outlets   OutletLookup
	Logger    *log.Logger

	// Now is the clock used for dates and times. Defaults to time.Now;
	// tests inject a fixed clock.
	Now func() time.Time
}

// AttendanceService drives the per-key state machine
// NotClockedIn -> ClockedIn -> ClockedOutComplete.
//
// One mutex covers each whole read-check-write sequence, so two
// concurrent clock-ins for the same key cannot both pass the existence
// check and both append.
type AttendanceService struct {
	mu        sync.Mutex
	ledger    store.LedgerStore
	directory *EmployeeDirectory
	outlets   OutletLookup
	logger    *log.Logger
	now       func() time.Time
}

func NewAttendanceService(d Deps) *AttendanceService {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &AttendanceService{
		ledger:    d.Ledger,
		directory: d.Directory,
		outlets:   d.Outlets,
		logger:    d.Logger,
		now:       now,
	}
}

// ClockIn records the start of today's attendance for an employee.
func (s *AttendanceService) ClockIn(ctx context.Context, employeeID string) (types.ClockInResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, err := s.directory.Resolve(employeeID)
	if err != nil {
		return types.ClockInResult{}, err
	}

	now := s.now()
	date := now.Format(store.DateLayout)

	rec, err := s.ledger.FindByKey(ctx, emp.EmployeeID, date)
	if err != nil {
		return types.ClockInResult{}, fmt.Errorf("look up today's record: %w", err)
	}

	if rec != nil && rec.Open() {
		return types.ClockInResult{}, fmt.Errorf("%w at %s", ErrAlreadyClockedIn, FormatClockTime(rec.ClockIn))
	}
	if rec != nil && rec.Complete() {
		return types.ClockInResult{}, ErrAlreadyCompletedToday
	}

	outletCode := outletCodeFor(emp.EmployeeID)
	outletName := s.outletName(outletCode)
	clockIn := now.Format(store.TimeLayout)

	if err := s.ledger.Append(ctx, store.AttendanceRecord{
		EmployeeID: emp.EmployeeID,
		Date:       date,
		ClockIn:    clockIn,
		OutletCode: outletCode,
	}); err != nil {
		return types.ClockInResult{}, fmt.Errorf("save clock-in: %w", err)
	}

	s.logger.Printf("clock-in employee=%s outlet=%s date=%s time=%s", emp.EmployeeID, outletCode, date, clockIn)

	return types.ClockInResult{
		OK:         true,
		EmployeeID: emp.EmployeeID,
		Name:       emp.Name,
		OutletCode: outletCode,
		OutletName: outletName,
		Date:       date,
		ClockIn:    FormatClockTime(clockIn),
	}, nil
}

// ClockOut completes today's attendance record and reports hours worked.
func (s *AttendanceService) ClockOut(ctx context.Context, employeeID string) (types.ClockOutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, err := s.directory.Resolve(employeeID)
	if err != nil {
		return types.ClockOutResult{}, err
	}

	now := s.now()
	date := now.Format(store.DateLayout)

	rec, err := s.ledger.FindByKey(ctx, emp.EmployeeID, date)
	if err != nil {
		return types.ClockOutResult{}, fmt.Errorf("look up today's record: %w", err)
	}

	if rec == nil || rec.ClockIn == "" {
		return types.ClockOutResult{}, ErrNotClockedInYet
	}
	if rec.Complete() {
		return types.ClockOutResult{}, fmt.Errorf("%w at %s", ErrAlreadyClockedOut, FormatClockTime(rec.ClockOut))
	}

	clockOut := now.Format(store.TimeLayout)
	if clockOut < rec.ClockIn {
		// Zero-padded HH:MM:SS strings order lexicographically. Crossing
		// midnight resolves to ErrNotClockedInYet above (the date key
		// changes), so a negative interval means clock skew or a
		// hand-edited row. Refuse it rather than store negative hours.
		return types.ClockOutResult{}, ErrClockOutBeforeClockIn
	}
	hours, err := hoursBetween(rec.ClockIn, clockOut)
	if err != nil {
		return types.ClockOutResult{}, fmt.Errorf("stored clock-in unusable: %w", err)
	}

	// Persisting is a hard requirement: a not-found result here means the
	// record vanished between lookup and update, and the clock-out must
	// not be reported as saved.
	if err := s.ledger.UpdateClockOut(ctx, emp.EmployeeID, date, clockOut); err != nil {
		return types.ClockOutResult{}, fmt.Errorf("save clock-out: %w", err)
	}

	outletCode := rec.OutletCode
	if outletCode == "" {
		outletCode = outletCodeFor(emp.EmployeeID)
	}

	s.logger.Printf("clock-out employee=%s outlet=%s date=%s time=%s hours=%.1f", emp.EmployeeID, outletCode, date, clockOut, hours)

	return types.ClockOutResult{
		OK:          true,
		EmployeeID:  emp.EmployeeID,
		Name:        emp.Name,
		OutletCode:  outletCode,
		OutletName:  s.outletName(outletCode),
		Date:        date,
		ClockOut:    FormatClockTime(clockOut),
		HoursWorked: hours,
	}, nil
}

// Today returns the stored record for the employee's current date, or nil
// when there is none.
func (s *AttendanceService) Today(ctx context.Context, employeeID string) (*types.TodayStatus, error) {
	emp, err := s.directory.Resolve(employeeID)
	if err != nil {
		return nil, err
	}

	date := s.now().Format(store.DateLayout)
	rec, err := s.ledger.FindByKey(ctx, emp.EmployeeID, date)
	if err != nil {
		return nil, fmt.Errorf("look up today's record: %w", err)
	}
	if rec == nil {
		return nil, nil
	}

	return &types.TodayStatus{
		EmployeeID: rec.EmployeeID,
		Date:       rec.Date,
		ClockIn:    rec.ClockIn,
		ClockOut:   rec.ClockOut,
		OutletCode: rec.OutletCode,
	}, nil
}

func (s *AttendanceService) outletName(code string) string {
	if name, ok := s.outlets.OutletName(code); ok {
		return name
	}
	return unknownOutletName
}

// outletCodeFor derives the outlet code from an employee ID. IDs shorter
// than the code length yield the whole ID.
func outletCodeFor(employeeID string) string {
	if len(employeeID) < outletCodeLen {
		return employeeID
	}
	return employeeID[:outletCodeLen]
}
