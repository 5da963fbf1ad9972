package schedule

import (
	"fmt"
	"strings"
	"time"
)

// TimeState distinguishes the ways a schedule time can be missing.
type TimeState int

const (
	// TimeAbsent means the input had no time-range column at all.
	TimeAbsent TimeState = iota
	// TimeEmpty means the time-range cell was blank.
	TimeEmpty
	// TimeInvalid means the text could not be parsed as HH:MM.
	TimeInvalid
	// TimeSet means the value holds a parsed time of day.
	TimeSet
)

const clockLayout = "15:04"

// TimeOfDay is a minute-resolution time of day together with the state it
// was parsed in. Only TimeSet values take part in min/max aggregation.
type TimeOfDay struct {
	State   TimeState
	Minutes int
	// Raw is the trimmed source text, kept for invalid values.
	Raw string
}

// ParseTimeOfDay parses a 24-hour "HH:MM" value. A blank string yields
// TimeEmpty and anything unparseable yields TimeInvalid.
func ParseTimeOfDay(s string) TimeOfDay {
	s = strings.TrimSpace(s)
	if s == "" {
		return TimeOfDay{State: TimeEmpty}
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return TimeOfDay{State: TimeInvalid, Raw: s}
	}
	return TimeOfDay{State: TimeSet, Minutes: t.Hour()*60 + t.Minute(), Raw: s}
}

// IsSet reports whether t holds a parsed time.
func (t TimeOfDay) IsSet() bool { return t.State == TimeSet }

// String renders a set time as zero-padded "HH:MM" and every other state
// as "".
func (t TimeOfDay) String() string {
	if !t.IsSet() {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.Minutes/60, t.Minutes%60)
}

// Before reports whether t is earlier than o. Both must be set.
func (t TimeOfDay) Before(o TimeOfDay) bool { return t.Minutes < o.Minutes }

// SplitRange splits a combined time-range cell into its start and end text.
//
// The separator is " A " in any case, then "-". Without a separator the
// whole text is both start and end. Only the first two pieces are used and
// each is trimmed.
func SplitRange(s string) (start, end string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}

	var parts []string
	switch upper := strings.ToUpper(s); {
	case strings.Contains(upper, " A "):
		parts = strings.Split(upper, " A ")
	case strings.Contains(s, "-"):
		parts = strings.Split(s, "-")
	default:
		return s, s
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

// ParseRange splits and parses a time-range cell.
func ParseRange(s string) (start, end TimeOfDay) {
	a, b := SplitRange(s)
	return ParseTimeOfDay(a), ParseTimeOfDay(b)
}

// FormatRange renders a start/end pair for display: "HH:MM a HH:MM" when
// both are set and differ, a single time when they are equal or only one
// is set, and "" otherwise.
func FormatRange(start, end TimeOfDay) string {
	switch {
	case start.IsSet() && end.IsSet():
		if start.Minutes == end.Minutes {
			return start.String()
		}
		return start.String() + " a " + end.String()
	case start.IsSet():
		return start.String()
	case end.IsSet():
		return end.String()
	}
	return ""
}
