package desk

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"facilitiesdesk/keydesk/internal/table"
)

// Output formats accepted by -o.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// ValidateOutput normalizes an -o value, rejecting unknown formats.
func ValidateOutput(output string) (string, error) {
	switch output = strings.ToLower(strings.TrimSpace(output)); output {
	case "":
		return OutputTable, nil
	case OutputTable, OutputJSON:
		return output, nil
	}
	return "", fmt.Errorf("unsupported output format %q", output)
}

// PrintJSON encodes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintTable writes the given columns of t as an aligned text table.
// Columns t does not have are skipped. With no columns every column is
// printed.
func PrintTable(w io.Writer, t *table.Table, columns []string) error {
	var idx []int
	for _, c := range columns {
		if i := t.Index(c); i >= 0 {
			idx = append(idx, i)
		}
	}
	if len(columns) == 0 {
		for i := range t.Columns {
			idx = append(idx, i)
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := make([]string, len(idx))
	rule := make([]string, len(idx))
	for j, i := range idx {
		header[j] = strings.ToUpper(t.Columns[i])
		rule[j] = strings.Repeat("-", len(t.Columns[i]))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, strings.Join(rule, "\t"))

	cells := make([]string, len(idx))
	for r := range t.Rows {
		for j, i := range idx {
			cells[j] = dash(t.Cell(r, i))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// Records converts the given columns of t into JSON-friendly maps.
func Records(t *table.Table, columns []string) []map[string]string {
	out := make([]map[string]string, 0, t.Len())
	for r := range t.Rows {
		row := make(map[string]string, len(t.Columns))
		for i, c := range t.Columns {
			if len(columns) > 0 && !slices.Contains(columns, c) {
				continue
			}
			row[c] = t.Cell(r, i)
		}
		out = append(out, row)
	}
	return out
}


func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
