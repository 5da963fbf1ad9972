package table

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAppend_PadsAndTruncates(t *testing.T) {
	tbl := New("a", "b", "c")
	tbl.Append("1")
	tbl.Append("1", "2", "3", "4")

	want := [][]string{{"1", "", ""}, {"1", "2", "3"}}
	if diff := cmp.Diff(want, tbl.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestValue_MissingColumnAndShortRow(t *testing.T) {
	tbl := &Table{Columns: []string{"a", "b"}, Rows: [][]string{{"x"}}}

	if got := tbl.Value(0, "b"); got != "" {
		t.Errorf("short row: got %q, want empty", got)
	}
	if got := tbl.Value(0, "missing"); got != "" {
		t.Errorf("missing column: got %q, want empty", got)
	}
	if got := tbl.Value(5, "a"); got != "" {
		t.Errorf("out of range row: got %q, want empty", got)
	}
	if got := tbl.Value(0, "a"); got != "x" {
		t.Errorf("got %q, want %q", got, "x")
	}
}

func TestClone_IsIndependent(t *testing.T) {
	tbl := New("a")
	tbl.Append("1")

	c := tbl.Clone()
	c.Rows[0][0] = "changed"
	c.Columns[0] = "z"

	if tbl.Rows[0][0] != "1" || tbl.Columns[0] != "a" {
		t.Errorf("clone shares storage with original: %+v", tbl)
	}
}

func TestFilter(t *testing.T) {
	tbl := New("docente", "salon", "estado")
	tbl.Append("Ana Perez", "A-101", "Entregada")
	tbl.Append("Luis Gomez", "B-202", "Devuelta")
	tbl.Append("Ana Ruiz", "B-203", "Entregada")

	tests := []struct {
		name       string
		predicates map[string]string
		want       []string
	}{
		{"single", map[string]string{"docente": "ana"}, []string{"Ana Perez", "Ana Ruiz"}},
		{"anded", map[string]string{"docente": "ANA", "salon": "b-"}, []string{"Ana Ruiz"}},
		{"blank ignored", map[string]string{"docente": "  "}, []string{"Ana Perez", "Luis Gomez", "Ana Ruiz"}},
		{"unknown column ignored", map[string]string{"nope": "x"}, []string{"Ana Perez", "Luis Gomez", "Ana Ruiz"}},
		{"no match", map[string]string{"estado": "perdida"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tbl, tt.predicates)
			var names []string
			for i := range got.Rows {
				names = append(names, got.Value(i, "docente"))
			}
			if diff := cmp.Diff(tt.want, names); diff != "" {
				t.Errorf("filter mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if tbl.Len() != 3 {
		t.Errorf("Filter modified its input")
	}
}

func TestNormalizePredicates(t *testing.T) {
	in := map[string]string{"id": " 55.0 ", "aula": "55.0", "blank": ""}
	normalizers := map[string]func(string) string{
		"id":    func(v string) string { return strings.TrimSuffix(strings.TrimSpace(v), ".0") },
		"blank": func(string) string { return "x" },
	}

	got := NormalizePredicates(in, normalizers)
	want := map[string]string{"id": "55", "aula": "55.0", "blank": ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NormalizePredicates mismatch (-want +got):\n%s", diff)
	}
	if in["id"] != " 55.0 " {
		t.Error("NormalizePredicates modified its input")
	}
}

func TestSearch(t *testing.T) {
	tbl := New("aula", "profesor")
	tbl.Append("101", "Ana")
	tbl.Append("202", "Luis")

	if got := Search(tbl, "LUIS").Len(); got != 1 {
		t.Errorf("expected 1 match, got %d", got)
	}
	if got := Search(tbl, "").Len(); got != 2 {
		t.Errorf("blank search should match all rows, got %d", got)
	}
}

func TestParsePredicates(t *testing.T) {
	got, err := ParsePredicates([]string{"docente=Ana", "salon = B=2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]string{"docente": "Ana", "salon": " B=2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("predicates mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"docente", "=x"} {
		if _, err := ParsePredicates([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
