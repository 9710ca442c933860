// Package timeparse turns the date and time strings typed into slash
// commands into zone-aware timestamps.
package timeparse

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout accepts "04/20/2025 7:30 PM" as well as zero-padded hours and months.
const Layout = "1/2/2006 3:04 PM"

// DisplayLayout is how scheduled times are echoed back to users
const DisplayLayout = "01/02/2006 at 03:04 PM"

// ErrInvalidDateTime is returned when the date or time does not match MM/DD/YYYY and HH:MM AM/PM
var ErrInvalidDateTime = errors.New("invalid date or time format, use MM/DD/YYYY and HH:MM AM/PM")

// Parse resolves a date and a 12-hour clock time in loc
func Parse(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	date = strings.TrimSpace(date)
	clock = strings.ToUpper(strings.Join(strings.Fields(clock), " "))
	if date == "" || clock == "" {
		return time.Time{}, ErrInvalidDateTime
	}

	// "7:30PM" is common enough to accept
	if !strings.Contains(clock, " ") && (strings.HasSuffix(clock, "AM") || strings.HasSuffix(clock, "PM")) {
		clock = clock[:len(clock)-2] + " " + clock[len(clock)-2:]
	}

	t, err := time.ParseInLocation(Layout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q %q", ErrInvalidDateTime, date, clock)
	}

	return t, nil
}

// ValidateDate checks that date alone is a MM/DD/YYYY calendar date
func ValidateDate(date string) error {
	if _, err := time.Parse("1/2/2006", strings.TrimSpace(date)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateTime, date)
	}
	return nil
}

// Format renders t for announcements
func Format(t time.Time) string {
	return t.Format(DisplayLayout)
}
