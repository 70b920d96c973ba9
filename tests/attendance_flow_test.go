package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goldenhour/attendance-server/internal/attendance/service"
	"github.com/goldenhour/attendance-server/internal/attendance/store"
	"github.com/goldenhour/attendance-server/internal/attendance/store/csvfile"
	"github.com/goldenhour/attendance-server/internal/attendance/types"
	"github.com/goldenhour/attendance-server/internal/catalog"
	"github.com/goldenhour/attendance-server/internal/httpapi"
)

// newFlowServer wires the whole stack (catalog files, CSV ledger, the
// workflow service, and the HTTP API) against a temp directory, exactly
// as the server binary does.
func newFlowServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}

	logger := log.New(io.Discard, "", 0)
	cat, err := catalog.Load(catalog.Paths{
		Employees: write("employees.csv", "EmployeeID,Name\nABC123,Aina Binti Ahmad\n"),
		Outlets:   write("outlets.csv", "OutletCode,OutletName\nABC,Mid Valley\n"),
		Models:    write("models.csv", "ModelID,Price,OutletCode,Stock\nM100,1999.00,ABC,5\n"),
	}, logger)
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}

	ledgerPath := filepath.Join(dir, "attendance.csv")
	ledger := csvfile.New(ledgerPath)
	if err := ledger.EnsureInitialized(context.Background()); err != nil {
		t.Fatalf("initialize ledger: %v", err)
	}

	svc := service.NewAttendanceService(service.Deps{
		Ledger:    ledger,
		Directory: service.NewEmployeeDirectory(cat),
		Outlets:   cat,
		Logger:    logger,
	})

	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:     logger,
		Addr:       ":0",
		Attendance: svc,
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, ledgerPath
}

func post(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

// TestFullDay walks one employee through a whole shift against a real
// ledger file: clock in, duplicate clock-in rejected, clock out, duplicate
// clock-out rejected. The file is checked after each transition.
func TestFullDay(t *testing.T) {
	ts, ledgerPath := newFlowServer(t)
	today := time.Now().Format(store.DateLayout)

	// Clock in.
	resp, data := post(t, ts.URL+"/v1/clock_in", `{"employee_id":"ABC123"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("clock-in: expected 200, got %d: %s", resp.StatusCode, data)
	}
	var in types.ClockInResult
	if err := json.Unmarshal(data, &in); err != nil {
		t.Fatalf("decode clock-in: %v", err)
	}
	if in.Date != today {
		t.Errorf("expected date %s, got %s", today, in.Date)
	}
	if in.OutletName != "Mid Valley" {
		t.Errorf("expected outlet resolved, got %q", in.OutletName)
	}

	content, err := os.ReadFile(ledgerPath)
	if err != nil {
		t.Fatalf("read ledger: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != csvfile.Header {
		t.Errorf("expected header first, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "ABC123,"+today+",") {
		t.Errorf("unexpected row: %q", lines[1])
	}
	if !strings.HasSuffix(lines[1], ",ABC") || !strings.Contains(lines[1], ",,") {
		t.Errorf("expected open record with empty clock-out and outlet ABC, got %q", lines[1])
	}

	// Duplicate clock-in.
	resp, data = post(t, ts.URL+"/v1/clock_in", `{"employee_id":"ABC123"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate clock-in: expected 409, got %d: %s", resp.StatusCode, data)
	}

	// Clock out.
	resp, data = post(t, ts.URL+"/v1/clock_out", `{"employee_id":"ABC123"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("clock-out: expected 200, got %d: %s", resp.StatusCode, data)
	}
	var out types.ClockOutResult
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode clock-out: %v", err)
	}
	// Same-second in/out rounds to zero hours.
	if out.HoursWorked != 0.0 {
		t.Errorf("expected 0.0 hours, got %v", out.HoursWorked)
	}

	content, err = os.ReadFile(ledgerPath)
	if err != nil {
		t.Fatalf("read ledger: %v", err)
	}
	lines = strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected still header + 1 row after update, got %d lines", len(lines))
	}
	if strings.Contains(lines[1], ",,") {
		t.Errorf("expected completed record, still open: %q", lines[1])
	}

	// Duplicate clock-out.
	resp, data = post(t, ts.URL+"/v1/clock_out", `{"employee_id":"ABC123"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate clock-out: expected 409, got %d: %s", resp.StatusCode, data)
	}
	var errBody struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &errBody); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errBody.Error != "already_clocked_out" {
		t.Errorf("expected already_clocked_out, got %q", errBody.Error)
	}
	if errBody.Message == "" {
		t.Error("expected a message carrying the prior clock-out time")
	}
}
