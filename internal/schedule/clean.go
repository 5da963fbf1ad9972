package schedule

import (
	"fmt"
	"slices"
	"strings"

	"facilitiesdesk/keydesk/internal/domain"
	"facilitiesdesk/keydesk/internal/table"
	"facilitiesdesk/keydesk/internal/util"
)

// derivedColumns are added to the normalized header, in this order, when
// the input lacks them.
var derivedColumns = []string{ColTimeRange, ColTeacher, ColTeacherID, ColDay, ColSubject, ColStart, ColEnd}

// namedColumns are held in Row's typed fields rather than Row.Fields.
var namedColumns = []string{ColTeacherID, ColTeacher, ColSubject, ColRoom, ColDay, ColTimeRange, ColStart, ColEnd}

// Swapped in tests to exercise the failure fallbacks.
var (
	parseRow  = normalizeRow
	aggregate = consolidate
)

// Clean normalizes a raw schedule extract and consolidates rows that
// describe the same class.
//
// Rows are grouped on (teacher id, teacher, subject, room, day). Each group
// becomes one row whose start is the earliest parsed start and whose end
// is the latest parsed end; every other column comes from the group's
// first row. Groups are returned sorted by key.
//
// If any key column is absent from the input, grouping is skipped and the
// per-row normalized schedule is returned with MissingKeys set.
//
// If aggregation fails, the per-row normalized schedule is returned along
// with an error wrapping domain.ErrProcessing. If normalization itself
// fails, an empty schedule with the normalized header is returned instead.
func Clean(raw *table.Table) (*Schedule, error) {
	if raw == nil {
		raw = table.New()
	}

	normalized, err := normalize(raw)
	if err != nil {
		return normalized, err
	}
	if missing := missingKeys(raw); len(missing) > 0 {
		normalized.MissingKeys = missing
		return normalized, nil
	}

	rows, err := safeAggregate(normalized.Rows)
	if err != nil {
		return normalized, err
	}
	return &Schedule{
		Columns:      CleanedColumns(raw.Has),
		Rows:         rows,
		Consolidated: true,
	}, nil
}

// FromTable normalizes a previously cleaned table without grouping it.
// The time range is re-split so start and end are available.
func FromTable(t *table.Table) (*Schedule, error) {
	if t == nil {
		t = table.New()
	}
	s, err := normalize(t)
	if err != nil {
		return s, err
	}
	s.MissingKeys = missingKeys(t)
	s.Consolidated = len(s.MissingKeys) == 0
	return s, nil
}

func normalizedColumns(raw *table.Table) []string {
	cols := slices.Clone(raw.Columns)
	for _, c := range derivedColumns {
		if !slices.Contains(cols, c) {
			cols = append(cols, c)
		}
	}
	return cols
}

func normalize(raw *table.Table) (s *Schedule, err error) {
	cols := normalizedColumns(raw)
	defer func() {
		if r := recover(); r != nil {
			s = &Schedule{Columns: cols}
			err = fmt.Errorf("schedule: %w: normalizing rows: %v", domain.ErrProcessing, r)
		}
	}()

	s = &Schedule{Columns: cols, Rows: make([]Row, 0, raw.Len())}
	for i := range raw.Rows {
		s.Rows = append(s.Rows, parseRow(raw, i))
	}
	return s, nil
}

func normalizeRow(raw *table.Table, i int) Row {
	subjectCol := ColSubject
	if raw.Has(ColSubjectSource) {
		subjectCol = ColSubjectSource
	}

	r := Row{
		TeacherID: util.NormalizeTeacherID(raw.Value(i, ColTeacherID)),
		Teacher:   strings.TrimSpace(raw.Value(i, ColTeacher)),
		Subject:   strings.TrimSpace(raw.Value(i, subjectCol)),
		Room:      raw.Value(i, ColRoom),
		Day:       normalizeDay(raw.Value(i, ColDay)),
		TimeRange: raw.Value(i, ColTimeRange),
		Fields:    make(map[string]string),
	}
	if raw.Has(ColTimeRange) {
		r.Start, r.End = ParseRange(r.TimeRange)
	}

	for col, name := range raw.Columns {
		if slices.Contains(namedColumns, name) {
			continue
		}
		if _, dup := r.Fields[name]; dup {
			continue
		}
		r.Fields[name] = raw.Cell(i, col)
	}
	return r
}

func missingKeys(raw *table.Table) []string {
	var missing []string
	for _, c := range KeyColumns {
		present := raw.Has(c)
		if c == ColSubject {
			present = present || raw.Has(ColSubjectSource)
		}
		if !present {
			missing = append(missing, c)
		}
	}
	return missing
}

func safeAggregate(rows []Row) (out []Row, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("schedule: %w: consolidating rows: %v", domain.ErrProcessing, r)
		}
	}()
	return aggregate(rows), nil
}

type groupKey [5]string

type group struct {
	first      Row
	start, end TimeOfDay
}

func consolidate(rows []Row) []Row {
	groups := make(map[groupKey]*group)
	var keys []groupKey
	for _, r := range rows {
		k := r.key()
		g, ok := groups[k]
		if !ok {
			g = &group{first: r}
			groups[k] = g
			keys = append(keys, k)
		}
		if r.Start.IsSet() && (!g.start.IsSet() || r.Start.Before(g.start)) {
			g.start = r.Start
		}
		if r.End.IsSet() && (!g.end.IsSet() || g.end.Before(r.End)) {
			g.end = r.End
		}
	}

	slices.SortFunc(keys, func(a, b groupKey) int {
		for i := range a {
			if c := strings.Compare(a[i], b[i]); c != 0 {
				return c
			}
		}
		return 0
	})

	out := make([]Row, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		r := g.first.clone()
		if g.start.IsSet() {
			r.Start = g.start
		}
		if g.end.IsSet() {
			r.End = g.end
		}
		r.TimeRange = FormatRange(r.Start, r.End)

		fields := make(map[string]string)
		for _, c := range PassthroughColumns {
			if v, ok := r.Fields[c]; ok {
				fields[c] = v
			}
		}
		r.Fields = fields
		out = append(out, r)
	}
	return out
}
