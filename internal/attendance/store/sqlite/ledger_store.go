package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goldenhour/attendance-server/internal/attendance/store"
	dbpkg "github.com/goldenhour/attendance-server/internal/db"
)

// LedgerStore keeps the attendance ledger in SQLite. Same contract as the
// CSV file backend; the UNIQUE(employee_id, date) constraint backs the
// one-row-per-key invariant at the storage level too.
type LedgerStore struct {
	conn   *sql.DB
	writer *dbpkg.Worker
}

func New(conn *sql.DB, writer *dbpkg.Worker) *LedgerStore {
	return &LedgerStore{conn: conn, writer: writer}
}

// EnsureInitialized is a no-op here; migrations create the schema when
// the database is opened.
func (s *LedgerStore) EnsureInitialized(_ context.Context) error {
	return nil
}

func (s *LedgerStore) FindByKey(ctx context.Context, employeeID, date string) (*store.AttendanceRecord, error) {
	var (
		rec      store.AttendanceRecord
		clockOut sql.NullString
	)

	err := s.conn.QueryRowContext(ctx, `
SELECT employee_id, date, clock_in, clock_out, outlet_code
FROM attendance
WHERE employee_id = ? AND date = ?;
`, employeeID, date).Scan(&rec.EmployeeID, &rec.Date, &rec.ClockIn, &clockOut, &rec.OutletCode)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByKey query: %w", err)
	}

	if clockOut.Valid {
		rec.ClockOut = clockOut.String
	}
	return &rec, nil
}

func (s *LedgerStore) Append(ctx context.Context, rec store.AttendanceRecord) error {
	nowMs := time.Now().UTC().UnixMilli()

	var clockOut any
	if rec.ClockOut != "" {
		clockOut = rec.ClockOut
	}

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO attendance(
  employee_id, date, clock_in, clock_out, outlet_code,
  created_at_ms, updated_at_ms
) VALUES (?, ?, ?, ?, ?, ?, ?);
`, rec.EmployeeID, rec.Date, rec.ClockIn, clockOut, rec.OutletCode, nowMs, nowMs); err != nil {
			return fmt.Errorf("Append insert: %w", err)
		}
		return nil
	})
}

// UpdateClockOut completes the open row for the key. The clock_out guard
// in the WHERE clause means a completed row can never be rewritten, even
// by a caller that skipped the workflow's checks.
func (s *LedgerStore) UpdateClockOut(ctx context.Context, employeeID, date, clockOut string) error {
	nowMs := time.Now().UTC().UnixMilli()

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE attendance
SET clock_out = ?,
    updated_at_ms = ?
WHERE employee_id = ? AND date = ?
  AND (clock_out IS NULL OR clock_out = '');
`, clockOut, nowMs, employeeID, date)
		if err != nil {
			return fmt.Errorf("UpdateClockOut: %w", err)
		}

		n, _ := res.RowsAffected()
		if n == 0 {
			return store.ErrRecordNotFound
		}
		return nil
	})
}
