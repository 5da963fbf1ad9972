package key

import (
	"fmt"
	"os"
	"time"

	"facilitiesdesk/keydesk/internal/desk"
	"facilitiesdesk/keydesk/internal/keylog"
	"facilitiesdesk/keydesk/internal/table"
	"facilitiesdesk/keydesk/internal/tui"
	"facilitiesdesk/keydesk/internal/util"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

var listColumns = []string{
	keylog.ColDeliveryDate, keylog.ColDeliveryTime, keylog.ColRoom, keylog.ColSubject,
	keylog.ColTeacher, keylog.ColTeacherID, keylog.ColStatus, keylog.ColReturnTime,
}

var columnNormalizers = map[string]func(string) string{
	keylog.ColTeacherID: util.NormalizeTeacherID,
}

// selector is the record selection shared by list, export and browse.
type selector struct {
	filters     []string
	from        string
	to          string
	date        string
	outstanding bool
	sortCol     string
	desc        bool
}

func addSelectorFlags(cmd *cobra.Command, sel *selector) {
	cmd.Flags().StringArrayVar(&sel.filters, "filter", nil, "Column filter column=value (repeatable, case-insensitive substring)")
	cmd.Flags().StringVar(&sel.from, "from", "", "First delivery date, YYYY-MM-DD or today (inclusive)")
	cmd.Flags().StringVar(&sel.to, "to", "", "Last delivery date, YYYY-MM-DD or today (inclusive)")
	cmd.Flags().StringVar(&sel.date, "date", "", "Exact delivery date, YYYY-MM-DD or today")
	cmd.Flags().BoolVar(&sel.outstanding, "outstanding", false, "Only keys that have not been returned")
	cmd.Flags().StringVar(&sel.sortCol, "sort", "", "Column to sort by")
	cmd.Flags().BoolVar(&sel.desc, "desc", false, "Sort descending")
	cmd.MarkFlagsMutuallyExclusive("date", "from")
	cmd.MarkFlagsMutuallyExclusive("date", "to")
}

// query translates the flags into a ledger query.
func (sel selector) query(now time.Time) (keylog.Query, error) {
	var q keylog.Query
	preds, err := table.ParsePredicates(sel.filters)
	if err != nil {
		return q, err
	}
	q.Filters = preds

	if sel.date != "" {
		d, err := util.ParseDate(sel.date, now)
		if err != nil {
			return q, err
		}
		q.From, q.To = d, d
		return q, nil
	}
	if sel.from != "" {
		if q.From, err = util.ParseDate(sel.from, now); err != nil {
			return q, err
		}
	}
	if sel.to != "" {
		if q.To, err = util.ParseDate(sel.to, now); err != nil {
			return q, err
		}
	}
	return q, nil
}

// load opens the ledger and returns the selected records as a table.
func (sel selector) load(cmd *cobra.Command) (*table.Table, error) {
	s, err := desk.FromCommand(cmd)
	if err != nil {
		return nil, err
	}
	q, err := sel.query(s.Now())
	if err != nil {
		return nil, err
	}
	ledger, err := s.OpenLedger()
	if err != nil {
		return nil, err
	}

	q.Outstanding = sel.outstanding
	records := ledger.Query(q)

	t := keylog.Table(records)
	if sel.sortCol == "" {
		return t, nil
	}
	return table.Sort(t, sel.sortCol, sel.desc, columnNormalizers[sel.sortCol])
}

// ListCommand returns the "key list" command.
func ListCommand() *cobra.Command {
	var (
		sel    selector
		output string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List key hand-outs",
		Long: `List key hand-outs from the ledger.

Examples:
  keydesk key list --outstanding
  keydesk key list --date today
  keydesk key list --from 2024-01-01 --to 2024-01-31 --filter salon=B-2
  keydesk key list --sort fecha_entrega --desc -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := desk.ValidateOutput(output)
			if err != nil {
				return err
			}
			t, err := sel.load(cmd)
			if err != nil {
				return err
			}

			if format == desk.OutputJSON {
				return desk.PrintJSON(cmd.OutOrStdout(), keylog.Records(t))
			}
			if t.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No key hand-outs found.")
				return nil
			}
			return desk.PrintTable(cmd.OutOrStdout(), t, listColumns)
		},
		SilenceUsage: true,
	}

	addSelectorFlags(cmd, &sel)
	cmd.Flags().StringVarP(&output, "output", "o", desk.OutputTable, "Output format: table or json")

	return cmd
}

// ExportCommand returns the "key export" command.
func ExportCommand() *cobra.Command {
	var sel selector
	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Export key hand-outs to a file",
		Long: `Write the selected hand-outs, with every ledger column, to path. The format
follows the extension (.xlsx, .csv or .tsv).

Examples:
  keydesk key export enero.xlsx --from 2024-01-01 --to 2024-01-31`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := sel.load(cmd)
			if err != nil {
				return err
			}
			if err := keylog.Export(keylog.Records(t), args[0]); err != nil {
				return fmt.Errorf("failed to export key ledger: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d hand-outs to %s\n", t.Len(), args[0])
			return nil
		},
		SilenceUsage: true,
	}

	addSelectorFlags(cmd, &sel)

	return cmd
}

// BrowseCommand returns the "key browse" command.
func BrowseCommand() *cobra.Command {
	var sel selector
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse key hand-outs interactively",
		Long: `Open a full-screen, searchable and sortable view of the key ledger.

Examples:
  keydesk key browse --outstanding`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("key browse requires a terminal; use key list instead")
			}
			t, err := sel.load(cmd)
			if err != nil {
				return err
			}
			return tui.RunTableBrowser(t, tui.BrowserOptions{
				Title:        "keys",
				Context:      fmt.Sprintf("%d hand-outs", t.Len()),
				Columns:      listColumns,
				Normalize:    columnNormalizers,
				StatusColumn: keylog.ColStatus,
			})
		},
		SilenceUsage: true,
	}

	addSelectorFlags(cmd, &sel)

	return cmd
}
