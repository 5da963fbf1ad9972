package table

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func column(tbl *Table, name string) []string {
	var out []string
	for i := range tbl.Rows {
		out = append(out, tbl.Value(i, name))
	}
	return out
}

func TestSort_NumbersBeforeText(t *testing.T) {
	tbl := New("v")
	for _, v := range []string{"beta", "10", "Alpha", "9", "2.5", "alpha"} {
		tbl.Append(v)
	}

	got, err := Sort(tbl, "v", false, nil)
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	want := []string{"2.5", "9", "10", "Alpha", "alpha", "beta"}
	if diff := cmp.Diff(want, column(got, "v")); diff != "" {
		t.Errorf("ascending mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_DescendingKeepsTieOrder(t *testing.T) {
	tbl := New("v", "id")
	tbl.Append("b", "1")
	tbl.Append("B", "2")
	tbl.Append("a", "3")
	tbl.Append("5", "4")

	got, err := Sort(tbl, "v", true, nil)
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	want := []string{"1", "2", "3", "4"}
	if diff := cmp.Diff(want, column(got, "id")); diff != "" {
		t.Errorf("descending mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_AccentsByCodePoint(t *testing.T) {
	tbl := New("dia")
	for _, v := range []string{"SÁBADO", "SABADO", "MIÉRCOLES", "MARTES"} {
		tbl.Append(v)
	}

	got, _ := Sort(tbl, "dia", false, nil)
	want := []string{"MARTES", "MIÉRCOLES", "SABADO", "SÁBADO"}
	if diff := cmp.Diff(want, column(got, "dia")); diff != "" {
		t.Errorf("collation mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_Normalize(t *testing.T) {
	tbl := New("nroidenti")
	tbl.Append("200.0")
	tbl.Append("30")

	strip := func(s string) string { return strings.TrimSuffix(s, ".0") }
	got, _ := Sort(tbl, "nroidenti", false, strip)
	if diff := cmp.Diff([]string{"30", "200.0"}, column(got, "nroidenti")); diff != "" {
		t.Errorf("normalized sort mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_UnknownColumn(t *testing.T) {
	if _, err := Sort(New("a"), "b", false, nil); err == nil {
		t.Fatal("expected error for unknown column")
	}
}
