package table

import (
	"fmt"
	"strings"

	"facilitiesdesk/keydesk/internal/util"
)

// Filter returns the rows of t in which every predicate value is a
// case-insensitive substring of its column. Blank predicate values and
// predicates naming a column t does not have are ignored. t is not modified.
func Filter(t *Table, predicates map[string]string) *Table {
	type predicate struct {
		col   int
		value string
	}
	var active []predicate
	for column, value := range predicates {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if col := t.Index(column); col >= 0 {
			active = append(active, predicate{col: col, value: value})
		}
	}

	var keep []int
	for i := range t.Rows {
		ok := true
		for _, p := range active {
			if !util.ContainsFold(t.Cell(i, p.col), p.value) {
				ok = false
				break
			}
		}
		if ok {
			keep = append(keep, i)
		}
	}
	return t.subset(keep)
}

// NormalizePredicates returns a copy of predicates with each value passed
// through the normalizer registered for its column, so filter input is
// compared in the same form the column stores.
func NormalizePredicates(predicates map[string]string, normalizers map[string]func(string) string) map[string]string {
	out := make(map[string]string, len(predicates))
	for column, value := range predicates {
		if norm, ok := normalizers[column]; ok && strings.TrimSpace(value) != "" {
			value = norm(value)
		}
		out[column] = value
	}
	return out
}

// Search returns the rows of t in which any cell contains text, ignoring
// case. A blank text matches every row.
func Search(t *Table, text string) *Table {
	text = strings.TrimSpace(text)
	var keep []int
	for i := range t.Rows {
		if text == "" {
			keep = append(keep, i)
			continue
		}
		for col := range t.Columns {
			if util.ContainsFold(t.Cell(i, col), text) {
				keep = append(keep, i)
				break
			}
		}
	}
	return t.subset(keep)
}

// ParsePredicates turns "column=value" pairs into a predicate map.
func ParsePredicates(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		column, value, ok := strings.Cut(pair, "=")
		column = strings.TrimSpace(column)
		if !ok || column == "" {
			return nil, fmt.Errorf("invalid filter %q (want column=value)", pair)
		}
		out[column] = value
	}
	return out, nil
}
