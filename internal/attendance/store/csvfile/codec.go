package csvfile

import (
	"errors"
	"strings"

	"github.com/goldenhour/attendance-server/internal/attendance/store"
)

// Header is the fixed first line of the ledger file. Written exactly once,
// when the file is created.
const Header = "EmployeeID,Date,ClockInTime,ClockOutTime,OutletCode"

const fieldCount = 5

// ErrMalformedLine marks a row that cannot yield at least the employee,
// date and clock-in columns. Such rows are skipped during scans.
var ErrMalformedLine = errors.New("malformed ledger line")

// decodeLine splits one data line into exactly fieldCount fields.
//
// Trailing empty fields are preserved: a line ending in a comma still
// yields an empty last field, which is how an open record (no clock-out)
// is represented. Short rows with at least 3 fields are padded with empty
// strings; legacy hand-edited rows must not be rejected. Rows with extra
// fields keep the first 5.
func decodeLine(line string) ([]string, error) {
	parts := strings.Split(line, ",")
	if len(parts) < 3 {
		return nil, ErrMalformedLine
	}

	for i, p := range parts {
		parts[i] = unquote(strings.TrimSpace(p))
	}

	switch {
	case len(parts) < fieldCount:
		padded := make([]string, fieldCount)
		copy(padded, parts)
		parts = padded
	case len(parts) > fieldCount:
		parts = parts[:fieldCount]
	}
	return parts, nil
}

// encodeRecord is the exact inverse of decodeLine's field order. Quotes
// are never added on write; an open record serializes with a literal
// trailing comma before the outlet code's empty clock-out column.
func encodeRecord(rec store.AttendanceRecord) string {
	return strings.Join([]string{
		rec.EmployeeID,
		rec.Date,
		rec.ClockIn,
		rec.ClockOut,
		rec.OutletCode,
	}, ",")
}

func recordFromFields(fields []string) store.AttendanceRecord {
	return store.AttendanceRecord{
		EmployeeID: fields[0],
		Date:       fields[1],
		ClockIn:    fields[2],
		ClockOut:   fields[3],
		OutletCode: fields[4],
	}
}

// unquote strips a single pair of matching outer double quotes. No nested
// or escaped quote handling; fields are either bare or wrapped once.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
