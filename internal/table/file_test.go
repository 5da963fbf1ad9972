package table

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleTable() *Table {
	tbl := New("nroidenti", "profesor", "horario")
	tbl.Append("123456", "Ana, Pérez", "08:00 a 10:00")
	tbl.Append("0042", "Luis \"Lucho\"", "")
	return tbl
}

func TestWriteRead_RoundTrip(t *testing.T) {
	for _, ext := range []string{".csv", ".tsv", ".xlsx"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "table"+ext)
			want := sampleTable()

			if err := WriteFile(path, want); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}
			got, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile failed: %v", err)
			}

			if diff := cmp.Diff(want.Columns, got.Columns); diff != "" {
				t.Errorf("columns mismatch (-want +got):\n%s", diff)
			}
			for i := range want.Rows {
				for _, col := range want.Columns {
					if w, g := want.Value(i, col), got.Value(i, col); w != g {
						t.Errorf("row %d column %s: want %q, got %q", i, col, w, g)
					}
				}
			}
		})
	}
}

func TestReadFile_RaggedCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.csv")
	data := "\ufeffprofesor, dia ,aula\nAna,lunes\n\n,,\nLuis,martes,101,extra\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	want := &Table{
		Columns: []string{"profesor", "dia", "aula"},
		Rows:    [][]string{{"Ana", "lunes", ""}, {"Luis", "martes", "101"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.csv"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestReadFile_EmptyCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(got.Columns) != 0 || got.Len() != 0 {
		t.Errorf("expected empty table, got %+v", got)
	}
}

func TestReadFile_CorruptWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if _, err := ReadFile(path); err == nil {
		t.Fatal("expected error for corrupt workbook")
	}
}

func TestFormatOf_Unsupported(t *testing.T) {
	for _, path := range []string{"schedule.xls", "schedule", "a.json"} {
		if _, err := FormatOf(path); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("FormatOf(%q): expected ErrUnsupportedFormat, got %v", path, err)
		}
	}
	if f, err := FormatOf("A.XLSX"); err != nil || f != FormatXLSX {
		t.Errorf("FormatOf is expected to ignore extension case, got %q, %v", f, err)
	}
}

func TestWriteFile_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.csv")
	if err := WriteFile(path, sampleTable()); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := WriteFile(path, sampleTable()); err != nil {
		t.Fatalf("second WriteFile failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the table file, found %d entries", len(entries))
	}
}

func TestFileStore(t *testing.T) {
	store := FileStore{Path: filepath.Join(t.TempDir(), "t.csv")}
	if err := store.Save(sampleTable()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Len() != 2 {
		t.Errorf("expected 2 rows, got %d", got.Len())
	}
}
