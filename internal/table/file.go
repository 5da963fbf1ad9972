package table

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for file extensions with no codec.
var ErrUnsupportedFormat = errors.New("unsupported table format")

// Format identifies an on-disk tabular encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
)

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".tsv":
		return FormatTSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q (use .csv, .tsv or .xlsx)", ErrUnsupportedFormat, filepath.Ext(path))
}

// ReadFile reads the table stored at path. A missing file yields an error
// satisfying errors.Is(err, fs.ErrNotExist).
func ReadFile(path string) (*Table, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	switch format {
	case FormatXLSX:
		return readXLSX(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readDelimited(f, delimiter(format))
	}
}

// WriteFile replaces the file at path with t. The table is written to a
// temporary file in the same directory and renamed into place, so readers
// never observe a partial file. Parent directories are created.
func WriteFile(path string, t *Table) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	encode := func(w io.Writer) error { return writeDelimited(w, t, delimiter(format)) }
	if format == FormatXLSX {
		encode = func(w io.Writer) error { return writeXLSX(w, t) }
	}
	return writeAtomic(path, encode)
}

func delimiter(f Format) rune {
	if f == FormatTSV {
		return '\t'
	}
	return ','
}

func writeAtomic(path string, encode func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := encode(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// FileStore persists a table at a fixed path. It is the durability mirror
// used by the schedule store and the key ledger.
type FileStore struct {
	Path string
}

// Load reads the table at the store's path.
func (s FileStore) Load() (*Table, error) { return ReadFile(s.Path) }

// Save rewrites the table at the store's path.
func (s FileStore) Save(t *Table) error { return WriteFile(s.Path, t) }
