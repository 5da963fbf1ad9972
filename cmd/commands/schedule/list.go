package schedule

import (
	"fmt"
	"time"

	"facilitiesdesk/keydesk/internal/desk"
	"facilitiesdesk/keydesk/internal/schedule"
	"facilitiesdesk/keydesk/internal/table"
	"facilitiesdesk/keydesk/internal/util"

	"github.com/spf13/cobra"
)

// listColumns are the columns shown by the table output.
var listColumns = []string{
	schedule.ColDay, schedule.ColTimeRange, schedule.ColRoom, schedule.ColSubject,
	schedule.ColTeacher, schedule.ColTeacherID,
}

// columnNormalizers keeps "55.0" and "55" together when sorting by teacher.
var columnNormalizers = map[string]func(string) string{
	schedule.ColTeacherID: util.NormalizeTeacherID,
}

// selector is the row selection shared by list, export and browse.
type selector struct {
	day     string
	teacher string
	filters []string
	sortCol string
	desc    bool
}

func addSelectorFlags(cmd *cobra.Command, sel *selector) {
	cmd.Flags().StringVar(&sel.day, "day", "", `Day of week (e.g. LUNES) or "today"`)
	cmd.Flags().StringVar(&sel.teacher, "teacher", "", "Teacher identifier, matched as a substring")
	cmd.Flags().StringArrayVar(&sel.filters, "filter", nil, "Column filter column=value (repeatable, case-insensitive substring)")
	cmd.Flags().StringVar(&sel.sortCol, "sort", "", "Column to sort by")
	cmd.Flags().BoolVar(&sel.desc, "desc", false, "Sort descending")
}

// apply returns the selected rows of sched as a table.
func (sel selector) apply(sched *schedule.Schedule, now time.Time) (*table.Table, error) {
	preds, err := table.ParsePredicates(sel.filters)
	if err != nil {
		return nil, err
	}
	if sel.day != "" {
		sched = sched.Daily(schedule.DayName(sel.day, now))
	}
	if sel.teacher != "" {
		sched = sched.FindTeacher(sel.teacher)
	}

	t := table.Filter(sched.Table(), table.NormalizePredicates(preds, columnNormalizers))
	if sel.sortCol == "" {
		return t, nil
	}
	return table.Sort(t, sel.sortCol, sel.desc, columnNormalizers[sel.sortCol])
}

func (sel selector) load(cmd *cobra.Command) (*desk.Session, *table.Table, error) {
	s, err := desk.FromCommand(cmd)
	if err != nil {
		return nil, nil, err
	}
	store, err := s.OpenSchedule()
	if err != nil {
		return nil, nil, err
	}
	t, err := sel.apply(store.Schedule(), s.Now())
	if err != nil {
		return nil, nil, err
	}
	return s, t, nil
}

// ListCommand returns the "schedule list" command.
func ListCommand() *cobra.Command {
	var (
		sel    selector
		output string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scheduled classes",
		Long: `List classes from the stored schedule.

Examples:
  keydesk schedule list --day today
  keydesk schedule list --teacher 1234567 --sort horario
  keydesk schedule list --filter aula=B-2 --filter materia=calculo
  keydesk schedule list --day LUNES -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := desk.ValidateOutput(output)
			if err != nil {
				return err
			}
			_, t, err := sel.load(cmd)
			if err != nil {
				return err
			}

			if format == desk.OutputJSON {
				return desk.PrintJSON(cmd.OutOrStdout(), desk.Records(t, nil))
			}
			if t.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No classes found.")
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

// ExportCommand returns the "schedule export" command.
func ExportCommand() *cobra.Command {
	var sel selector
	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Export scheduled classes to a file",
		Long: `Write the selected classes, with every column, to path. The format follows
the extension (.xlsx, .csv or .tsv).

Examples:
  keydesk schedule export lunes.xlsx --day LUNES
  keydesk schedule export todo.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, t, err := sel.load(cmd)
			if err != nil {
				return err
			}
			if err := table.WriteFile(args[0], t); err != nil {
				return fmt.Errorf("failed to export schedule: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d classes to %s\n", t.Len(), args[0])
			return nil
		},
		SilenceUsage: true,
	}

	addSelectorFlags(cmd, &sel)

	return cmd
}
