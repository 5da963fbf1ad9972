package keylog

import (
	"slices"
	"strings"
	"time"

	"facilitiesdesk/keydesk/internal/table"
	"facilitiesdesk/keydesk/internal/util"
)

// Query selects ledger records. The zero Query selects everything.
type Query struct {
	// Filters maps column names to case-insensitive substrings. Blank
	// values and unknown columns are ignored.
	Filters map[string]string
	// From and To bound the delivery date, both inclusive. To covers its
	// whole day. A zero value leaves that side open.
	From time.Time
	To   time.Time
	// Outstanding keeps only keys that have not been returned.
	Outstanding bool
}

// filterNormalizers bring filter values into the stored form of their
// column before matching.
var filterNormalizers = map[string]func(string) string{
	ColTeacherID: util.NormalizeTeacherID,
}

var deliveryDateLayouts = []string{util.DateLayout, "2006-01-02 15:04:05", time.RFC3339}

func parseDeliveryDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range deliveryDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// Query returns the records matching q. Records whose delivery date cannot
// be parsed are excluded whenever a date bound is set.
func (l *Ledger) Query(q Query) []Record {
	preds := table.NormalizePredicates(q.Filters, filterNormalizers)
	records := Records(table.Filter(Table(l.records), preds))
	if q.Outstanding {
		records = slices.DeleteFunc(records, func(r Record) bool { return !r.Outstanding() })
	}
	if q.From.IsZero() && q.To.IsZero() {
		return records
	}

	var from, until time.Time
	if !q.From.IsZero() {
		from = startOfDay(q.From)
	}
	if !q.To.IsZero() {
		until = startOfDay(q.To).AddDate(0, 0, 1)
	}

	var out []Record
	for _, r := range records {
		d, ok := parseDeliveryDate(r.DeliveryDate)
		if !ok {
			continue
		}
		if !from.IsZero() && d.Before(from) {
			continue
		}
		if !until.IsZero() && !d.Before(until) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// QueryByDate returns the records delivered on the calendar day of date.
func (l *Ledger) QueryByDate(date time.Time) []Record {
	return l.Query(Query{From: date, To: date})
}
