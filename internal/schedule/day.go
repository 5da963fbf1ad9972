package schedule

import "time"

var weekdayNames = [...]string{
	time.Sunday:    "DOMINGO",
	time.Monday:    "LUNES",
	time.Tuesday:   "MARTES",
	time.Wednesday: "MIÉRCOLES",
	time.Thursday:  "JUEVES",
	time.Friday:    "VIERNES",
	time.Saturday:  "SÁBADO",
}

// Today returns the upper-case Spanish day name used in the dia column
// for the weekday of now.
func Today(now time.Time) string {
	return weekdayNames[now.Weekday()]
}

// DayName resolves a user-supplied day: "today" maps through Today and
// anything else is upper-cased.
func DayName(day string, now time.Time) string {
	if normalizeDay(day) == "TODAY" {
		return Today(now)
	}
	return normalizeDay(day)
}
