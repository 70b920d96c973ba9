package csvfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goldenhour/attendance-server/internal/attendance/store"
)

// LedgerStore keeps the attendance ledger in a flat delimited text file.
//
// Rows are not individually addressable at fixed offsets, so an update
// loads every line, rewrites the matching one in memory, and writes the
// whole set back. Row counts are small (one per employee per day) and
// durability matters more than update throughput, so this is fine.
//
// A single mutex guards every operation. The workflow layer serializes
// its own read-check-write sequences on top of this; the store's lock
// only protects the file against interleaved primitives.
type LedgerStore struct {
	mu   sync.Mutex
	path string
}

func New(path string) *LedgerStore {
	return &LedgerStore{path: path}
}

// EnsureInitialized creates the ledger file with its header row if it does
// not exist yet. Idempotent; an existing file is never touched.
func (s *LedgerStore) EnsureInitialized(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat ledger: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir ledger dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, []byte(Header+"\n"), 0o644); err != nil {
		return fmt.Errorf("create ledger: %w", err)
	}
	return nil
}

// FindByKey scans the data rows for an exact (employeeID, date) match.
// Returns nil when no row matches or the file does not exist yet.
// Malformed rows are skipped so one bad line must not hide every other
// employee's records.
func (s *LedgerStore) FindByKey(_ context.Context, employeeID, date string) (*store.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.readLines()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	for _, line := range dataLines(lines) {
		fields, err := decodeLine(line)
		if err != nil {
			continue
		}
		if fields[0] == employeeID && fields[1] == date {
			rec := recordFromFields(fields)
			return &rec, nil
		}
	}
	return nil, nil
}

// Append writes one new row at the end of the file. No key-collision
// check here; that is the workflow's job before calling Append.
func (s *LedgerStore) Append(_ context.Context, rec store.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger for append: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(encodeRecord(rec) + "\n"); err != nil {
		return fmt.Errorf("append ledger row: %w", err)
	}
	return nil
}

// UpdateClockOut rewrites the open row matching (employeeID, date) with
// the given clock-out time, preserving every other field verbatim, then
// writes the full line set back. Returns store.ErrRecordNotFound when no
// open row matches. A clock-out that found nothing to update must never
// look like success.
func (s *LedgerStore) UpdateClockOut(_ context.Context, employeeID, date, clockOut string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.readLines()
	if err != nil {
		return err
	}

	updated := false
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		fields, err := decodeLine(line)
		if err != nil {
			continue
		}
		if fields[0] != employeeID || fields[1] != date {
			continue
		}
		if fields[3] != "" {
			// Completed rows are terminal.
			continue
		}
		rec := recordFromFields(fields)
		rec.ClockOut = clockOut
		lines[i] = encodeRecord(rec)
		updated = true
		break
	}

	if !updated {
		return store.ErrRecordNotFound
	}
	return s.writeLines(lines)
}

func (s *LedgerStore) readLines() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n"), nil
}

// writeLines replaces the file contents atomically: write a sibling temp
// file, then rename over the original, so a failed write cannot leave a
// half-rewritten ledger behind.
func (s *LedgerStore) writeLines(lines []string) error {
	tmp := s.path + ".tmp"
	data := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(tmp, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write ledger temp: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}

// dataLines returns every non-empty line after the header.
func dataLines(lines []string) []string {
	if len(lines) <= 1 {
		return nil
	}
	out := make([]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
