package service

import (
	"math"
	"time"

	"github.com/goldenhour/attendance-server/internal/attendance/store"
)

const displayLayout = "3:04 PM"

// FormatClockTime converts a stored 24-hour HH:MM:SS string to the
// display format, e.g. "09:58:00" -> "9:58 AM". Display is best-effort:
// malformed input comes back unchanged rather than blocking a
// transaction.
func FormatClockTime(s string) string {
	t, err := time.Parse(store.TimeLayout, s)
	if err != nil {
		return s
	}
	return t.Format(displayLayout)
}

// hoursBetween computes worked hours from two stored time-of-day strings,
// rounded half-up on the tenths digit.
func hoursBetween(clockIn, clockOut string) (float64, error) {
	in, err := time.Parse(store.TimeLayout, clockIn)
	if err != nil {
		return 0, err
	}
	out, err := time.Parse(store.TimeLayout, clockOut)
	if err != nil {
		return 0, err
	}
	hours := out.Sub(in).Seconds() / 3600.0
	return math.Round(hours*10) / 10, nil
}
