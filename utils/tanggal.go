package utils

import (
	"fmt"
	"strings"
	"time"
)

const LayoutTanggal = "2006-01-02"

// DateOnly drops the clock part, keeping the calendar date as seen in t's location.
// The result is midnight UTC so dates compare equal regardless of origin.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseTanggal accepts "2006-01-02" or RFC3339 and returns the calendar date.
func ParseTanggal(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("tanggal kosong")
	}
	if t, err := time.Parse(LayoutTanggal, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("format tanggal tidak valid %q: %w", s, err)
	}
	return DateOnly(t), nil
}

func FormatTanggal(t time.Time) string {
	return t.Format(LayoutTanggal)
}
