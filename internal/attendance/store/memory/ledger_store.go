package memory

import (
	"context"
	"sync"

	"github.com/goldenhour/attendance-server/internal/attendance/store"
)

// LedgerStore is an in-memory attendance ledger intended for tests and
// dev environments. Rows keep their append order, matching the file
// store's first-match scan semantics.
type LedgerStore struct {
	mu   sync.Mutex
	rows []store.AttendanceRecord
}

func New() *LedgerStore {
	return &LedgerStore{}
}

func (s *LedgerStore) EnsureInitialized(_ context.Context) error {
	return nil
}

func (s *LedgerStore) FindByKey(_ context.Context, employeeID, date string) (*store.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rows {
		if r.EmployeeID == employeeID && r.Date == date {
			rec := r
			return &rec, nil
		}
	}
	return nil, nil
}

func (s *LedgerStore) Append(_ context.Context, rec store.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rec)
	return nil
}

func (s *LedgerStore) UpdateClockOut(_ context.Context, employeeID, date, clockOut string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.rows {
		if r.EmployeeID != employeeID || r.Date != date {
			continue
		}
		if r.ClockOut != "" {
			continue
		}
		s.rows[i].ClockOut = clockOut
		return nil
	}
	return store.ErrRecordNotFound
}

// Rows returns a copy of every stored row. Test-only helper.
func (s *LedgerStore) Rows() []store.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.AttendanceRecord, len(s.rows))
	copy(out, s.rows)
	return out
}
