package util

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used on the command line and in
// the key ledger.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date in the local time zone. The word
// "today" resolves to the date of now.
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "today") {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD or \"today\")", s)
	}
	return t, nil
}

// ValidateTeacherID checks that an identifier is not blank once normalized.
func ValidateTeacherID(id string) error {
	if NormalizeTeacherID(id) == "" {
		return fmt.Errorf("teacher identifier must not be empty")
	}
	return nil
}
