// Package schedule consolidates raw class-schedule extracts and keeps the
// cleaned schedule the desk works from.
//
// A raw extract often splits one class block across several rows, each
// with its own time fragment. Clean merges rows sharing the same teacher,
// subject, room and day into one row spanning the earliest start and the
// latest end.
package schedule

import (
	"slices"
	"strings"

	"facilitiesdesk/keydesk/internal/table"
	"facilitiesdesk/keydesk/internal/util"
)

// Column names used by raw and cleaned schedules.
const (
	ColTeacherID     = "nroidenti"
	ColTeacher       = "profesor"
	ColSubject       = "materia"
	ColSubjectSource = "MATERIA"
	ColRoom          = "aula"
	ColDay           = "dia"
	ColTimeRange     = "horario"
	ColStart         = "hora_ini"
	ColEnd           = "hora_fin"
)

// KeyColumns is the grouping key of a consolidated schedule, in order.
var KeyColumns = []string{ColTeacherID, ColTeacher, ColSubject, ColRoom, ColDay}

// PassthroughColumns are carried from the first row of each group, in
// this order, when present in the input.
var PassthroughColumns = []string{
	"nro_estudiantes", "grupo", "nivel_grupo", "semestre", "PROGRAMA",
	"semanas", "nro_horas", "fecha_inicio", "fecha_fin",
	"nro_estudiantes_premat", "TOTAL", "OBSERVACION",
}

// CleanedColumns returns the header of a consolidated schedule whose
// input carried the given passthrough columns.
func CleanedColumns(present func(string) bool) []string {
	cols := append(slices.Clone(KeyColumns), ColStart, ColEnd)
	for _, c := range PassthroughColumns {
		if present == nil || present(c) {
			cols = append(cols, c)
		}
	}
	return append(cols, ColTimeRange)
}

// Row is one class entry of a schedule.
type Row struct {
	TeacherID string
	Teacher   string
	Subject   string
	Room      string
	Day       string
	TimeRange string
	Start     TimeOfDay
	End       TimeOfDay
	// Fields holds every other column of the row by name.
	Fields map[string]string
}

// Value returns the cell for column as it is written to a table.
func (r Row) Value(column string) string {
	switch column {
	case ColTeacherID:
		return r.TeacherID
	case ColTeacher:
		return r.Teacher
	case ColSubject:
		return r.Subject
	case ColRoom:
		return r.Room
	case ColDay:
		return r.Day
	case ColTimeRange:
		return r.TimeRange
	case ColStart:
		return r.Start.String()
	case ColEnd:
		return r.End.String()
	}
	return r.Fields[column]
}

func (r Row) key() groupKey {
	return groupKey{r.TeacherID, r.Teacher, r.Subject, r.Room, r.Day}
}

func (r Row) clone() Row {
	c := r
	if r.Fields != nil {
		c.Fields = make(map[string]string, len(r.Fields))
		for k, v := range r.Fields {
			c.Fields[k] = v
		}
	}
	return c
}

// Schedule is an ordered set of rows with the header they are written
// under.
type Schedule struct {
	Columns []string
	Rows    []Row
	// Consolidated is false when grouping was skipped.
	Consolidated bool
	// MissingKeys lists the key columns absent from the input when
	// grouping was skipped.
	MissingKeys []string
}

// Empty returns a consolidated schedule with no rows and the full cleaned
// header.
func Empty() *Schedule {
	return &Schedule{Columns: CleanedColumns(nil), Consolidated: true}
}

// Len returns the number of rows.
func (s *Schedule) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Rows)
}

// Table renders the schedule as a flat table.
func (s *Schedule) Table() *table.Table {
	t := table.New(s.Columns...)
	for _, r := range s.Rows {
		values := make([]string, len(s.Columns))
		for i, c := range s.Columns {
			values[i] = r.Value(c)
		}
		t.Append(values...)
	}
	return t
}

// Clone returns a deep copy of s.
func (s *Schedule) Clone() *Schedule {
	c := &Schedule{
		Columns:      slices.Clone(s.Columns),
		Rows:         make([]Row, len(s.Rows)),
		Consolidated: s.Consolidated,
		MissingKeys:  slices.Clone(s.MissingKeys),
	}
	for i, r := range s.Rows {
		c.Rows[i] = r.clone()
	}
	return c
}

func (s *Schedule) where(keep func(Row) bool) *Schedule {
	out := &Schedule{
		Columns:      slices.Clone(s.Columns),
		Consolidated: s.Consolidated,
		MissingKeys:  slices.Clone(s.MissingKeys),
	}
	for _, r := range s.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r.clone())
		}
	}
	return out
}

// FindTeacher returns the rows whose teacher identifier contains id. Both
// sides are normalized first. A blank id matches every row.
func (s *Schedule) FindTeacher(id string) *Schedule {
	id = util.NormalizeTeacherID(id)
	return s.where(func(r Row) bool {
		return util.ContainsFold(util.NormalizeTeacherID(r.TeacherID), id)
	})
}

// Daily returns the rows held on day, compared upper-cased.
func (s *Schedule) Daily(day string) *Schedule {
	day = normalizeDay(day)
	return s.where(func(r Row) bool { return r.Day == day })
}

// ByTeacher returns the rows whose normalized identifier equals id.
func (s *Schedule) ByTeacher(id string) *Schedule {
	id = util.NormalizeTeacherID(id)
	return s.where(func(r Row) bool { return r.TeacherID == id })
}

func normalizeDay(day string) string {
	return strings.ToUpper(strings.TrimSpace(day))
}
