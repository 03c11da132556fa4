package utils

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/julianstephens/daycards/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// TodayInTimezone returns today's date (YYYY-MM-DD) as seen from timezone.
func TodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// ParseDate parses a card date (YYYY-MM-DD). Only the canonical zero-padded form is accepted.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return time.Time{}, err
	}
	if t.Format(constants.DateFormat) != date {
		return time.Time{}, fmt.Errorf("date %q is not in canonical form", date)
	}
	return t, nil
}

// FormatClock renders the header clock as a date line and a time line.
func FormatClock(t time.Time) (string, string) {
	return t.Format(constants.ClockDateFormat), t.Format(constants.ClockTimeFormat)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}
