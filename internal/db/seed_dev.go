package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SeedDev inserts a completed demo attendance row for yesterday so a fresh
// dev database has something to look at. Idempotent: re-running leaves an
// existing row alone.
func SeedDev(ctx context.Context, conn *sql.DB) error {
	now := time.Now().UTC().UnixMilli()
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	if _, err := conn.ExecContext(ctx, `
INSERT INTO attendance(
  employee_id, date, clock_in, clock_out, outlet_code,
  created_at_ms, updated_at_ms
) VALUES ('DEMO01', ?, '09:00:00', '17:30:00', 'DEM', ?, ?)
ON CONFLICT(employee_id, date) DO NOTHING;
`, yesterday, now, now); err != nil {
		return fmt.Errorf("seed demo attendance: %w", err)
	}

	return nil
}
