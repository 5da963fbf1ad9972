package table

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Sort returns a copy of t ordered by column.
//
// Collation: cells that parse as numbers sort before all other cells and
// compare numerically. Remaining cells compare by the byte order of their
// lower-cased text, so there are no locale rules and accented letters sort
// by code point. Equal cells keep their previous relative order in both
// directions. If normalize is non-nil it is applied to each cell first.
func Sort(t *Table, column string, descending bool, normalize func(string) string) (*Table, error) {
	col := t.Index(column)
	if col < 0 {
		return nil, fmt.Errorf("unknown column %q", column)
	}

	keys := make([]sortKey, len(t.Rows))
	order := make([]int, len(t.Rows))
	for i := range t.Rows {
		v := t.Cell(i, col)
		if normalize != nil {
			v = normalize(v)
		}
		keys[i] = newSortKey(v)
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		c := keys[order[a]].compare(keys[order[b]])
		if descending {
			return c > 0
		}
		return c < 0
	})
	return t.subset(order), nil
}

type sortKey struct {
	numeric bool
	number  float64
	text    string
}

func newSortKey(v string) sortKey {
	trimmed := strings.TrimSpace(v)
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) {
		return sortKey{numeric: true, number: f}
	}
	return sortKey{text: strings.ToLower(v)}
}

func (k sortKey) compare(o sortKey) int {
	switch {
	case k.numeric && !o.numeric:
		return -1
	case !k.numeric && o.numeric:
		return 1
	case k.numeric:
		switch {
		case k.number < o.number:
			return -1
		case k.number > o.number:
			return 1
		}
		return 0
	}
	return strings.Compare(k.text, o.text)
}
