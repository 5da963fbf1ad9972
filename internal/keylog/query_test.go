package keylog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"facilitiesdesk/keydesk/internal/table"
)

// newMemRepo returns an in-memory Repository seeded with t.
func newMemRepo(t *table.Table) Repository { return &memRepo{t: t} }

type memRepo struct{ t *table.Table }

func (r *memRepo) Load() (*table.Table, error) { return r.t.Clone(), nil }
func (r *memRepo) Save(t *table.Table) error   { r.t = t.Clone(); return nil }

func seeded(t *testing.T, records ...Record) *Ledger {
	t.Helper()
	l, err := Open("", WithRepository(newMemRepo(Table(records))))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return l
}

func day(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return d
}

func rooms(records []Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.Room)
	}
	return out
}

func TestQuery_DateRange(t *testing.T) {
	l := seeded(t,
		Record{DeliveryDate: "2024-01-10", TeacherID: "1", Room: "first", Status: StatusReturned},
		Record{DeliveryDate: "2024-01-20", TeacherID: "2", Room: "second", Status: StatusReturned},
	)

	got := l.Query(Query{From: day("2024-01-01"), To: day("2024-01-15")})
	if diff := cmp.Diff([]string{"first"}, rooms(got)); diff != "" {
		t.Errorf("range mismatch (-want +got):\n%s", diff)
	}
}

func TestQuery_BoundsInclusive(t *testing.T) {
	l := seeded(t,
		Record{DeliveryDate: "2024-01-10", Room: "a"},
		Record{DeliveryDate: "2024-01-15 18:30:00", Room: "b"},
		Record{DeliveryDate: "2024-01-16", Room: "c"},
		Record{DeliveryDate: "not a date", Room: "d"},
	)

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"both bounds", Query{From: day("2024-01-10"), To: day("2024-01-15")}, []string{"a", "b"}},
		{"from only", Query{From: day("2024-01-15")}, []string{"b", "c"}},
		{"to only", Query{To: day("2024-01-10")}, []string{"a"}},
		{"unbounded keeps bad dates", Query{}, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, rooms(l.Query(tt.q))); diff != "" {
				t.Errorf("query mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQuery_Filters(t *testing.T) {
	l := seeded(t,
		Record{DeliveryDate: "2024-01-10", Teacher: "Ana Perez", Room: "A-101", Status: StatusDelivered},
		Record{DeliveryDate: "2024-01-11", Teacher: "Luis Gomez", Room: "B-202", Status: StatusReturned},
		Record{DeliveryDate: "2024-01-12", Teacher: "ana ruiz", Room: "B-203", Status: StatusDelivered},
	)

	tests := []struct {
		name    string
		filters map[string]string
		want    []string
	}{
		{"case-insensitive", map[string]string{ColTeacher: "ANA"}, []string{"A-101", "B-203"}},
		{"anded", map[string]string{ColTeacher: "ana", ColRoom: "b-"}, []string{"B-203"}},
		{"status", map[string]string{ColStatus: "devuelta"}, []string{"B-202"}},
		{"blank ignored", map[string]string{ColTeacher: ""}, []string{"A-101", "B-202", "B-203"}},
		{"unknown column ignored", map[string]string{"color": "red"}, []string{"A-101", "B-202", "B-203"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, rooms(l.Query(Query{Filters: tt.filters}))); diff != "" {
				t.Errorf("filter mismatch (-want +got):\n%s", diff)
			}
		})
	}

	combined := l.Query(Query{Filters: map[string]string{ColTeacher: "ana"}, From: day("2024-01-11")})
	if diff := cmp.Diff([]string{"B-203"}, rooms(combined)); diff != "" {
		t.Errorf("combined mismatch (-want +got):\n%s", diff)
	}
}

func TestQuery_FilterNormalizesTeacherID(t *testing.T) {
	l := seeded(t)
	if _, err := l.Deliver(Delivery{TeacherID: "55.0", Teacher: "Ana Perez", Room: "A-101"}); err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}

	for _, value := range []string{"55.0", "55", " 55_x000D_ "} {
		got := l.Query(Query{Filters: map[string]string{ColTeacherID: value}})
		if diff := cmp.Diff([]string{"A-101"}, rooms(got)); diff != "" {
			t.Errorf("filter %s=%q mismatch (-want +got):\n%s", ColTeacherID, value, diff)
		}
	}
}

func TestQuery_Outstanding(t *testing.T) {
	l := seeded(t,
		Record{DeliveryDate: "2024-01-10", TeacherID: "1", Room: "kept", Status: StatusDelivered},
		Record{DeliveryDate: "2024-01-10", TeacherID: "2", Room: "back", Status: StatusReturned},
		Record{DeliveryDate: "2024-01-20", TeacherID: "3", Room: "later", Status: StatusDelivered},
	)

	got := l.Query(Query{Outstanding: true, To: day("2024-01-15")})
	if diff := cmp.Diff([]string{"kept"}, rooms(got)); diff != "" {
		t.Errorf("outstanding mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"kept", "later"}, rooms(l.Outstanding())); diff != "" {
		t.Errorf("Outstanding mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryByDate(t *testing.T) {
	l := seeded(t,
		Record{DeliveryDate: "2024-01-10", Room: "a"},
		Record{DeliveryDate: "2024-01-11", Room: "b"},
		Record{DeliveryDate: "2024-01-10", Room: "c"},
	)

	got := l.QueryByDate(time.Date(2024, 1, 10, 15, 0, 0, 0, time.Local))
	if diff := cmp.Diff([]string{"a", "c"}, rooms(got)); diff != "" {
		t.Errorf("by-date mismatch (-want +got):\n%s", diff)
	}
}

func TestQuery_DoesNotMutate(t *testing.T) {
	l := seeded(t, Record{DeliveryDate: "2024-01-10", Room: "a"})
	got := l.Query(Query{})
	got[0].Room = "changed"
	if l.History()[0].Room != "a" {
		t.Error("Query exposes internal records")
	}
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xlsx")
	records := []Record{
		{DeliveryDate: "2024-01-10", DeliveryTime: "08:00:00", TeacherID: "0012", Teacher: "Ana", Status: StatusDelivered},
	}
	if err := Export(records, path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	got, err := table.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if diff := cmp.Diff(records, Records(got)); diff != "" {
		t.Errorf("export mismatch (-want +got):\n%s", diff)
	}
}
