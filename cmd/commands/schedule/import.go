package schedule

import (
	"fmt"
	"strings"

	"facilitiesdesk/keydesk/internal/desk"
	"facilitiesdesk/keydesk/internal/schedule"
	"facilitiesdesk/keydesk/internal/table"

	"github.com/spf13/cobra"
)

// ImportCommand returns the "schedule import" command.
func ImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <raw-file>",
		Short: "Clean a raw extract and make it the stored schedule",
		Long: `Clean a raw registrar extract and overwrite the stored schedule with it.

The raw file may be .xlsx, .csv or .tsv. If the extract lacks one of the
grouping columns (nroidenti, profesor, MATERIA/materia, aula, dia) the rows are
stored normalized but unmerged.

Examples:
  keydesk schedule import programacion.xlsx
  keydesk --schedule /srv/desk/limpia.xlsx schedule import export.csv`,
		Args:         cobra.ExactArgs(1),
		RunE:         runImport,
		SilenceUsage: true,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	s, err := desk.FromCommand(cmd)
	if err != nil {
		return err
	}
	store, err := s.OpenSchedule()
	if err != nil {
		return err
	}

	cleaned, err := store.Import(args[0])
	if cleaned == nil {
		return err
	}
	if err := s.Check(err); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d classes from %s into %s.\n", cleaned.Len(), args[0], s.SchedulePath)
	printMissing(cmd, cleaned)
	return nil
}

// CleanCommand returns the "schedule clean" command.
func CleanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean <raw-file> <out-file>",
		Short: "Clean a raw extract into a file without touching the stored schedule",
		Long: `Clean a raw registrar extract and write the result to out-file.

The output format follows the out-file extension (.xlsx, .csv or .tsv).

Examples:
  keydesk schedule clean programacion.xlsx limpia.csv`,
		Args:         cobra.ExactArgs(2),
		RunE:         runClean,
		SilenceUsage: true,
	}
}

func runClean(cmd *cobra.Command, args []string) error {
	s, err := desk.FromCommand(cmd)
	if err != nil {
		return err
	}

	raw, err := table.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	s.Logger.Debug("read raw schedule", "path", args[0], "rows", raw.Len())

	cleaned, err := schedule.Clean(raw)
	if err := s.Check(err); err != nil {
		return err
	}
	if err := schedule.SaveAs(cleaned, args[1]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Cleaned %d rows into %d classes: %s\n", raw.Len(), cleaned.Len(), args[1])
	printMissing(cmd, cleaned)
	return nil
}

func printMissing(cmd *cobra.Command, s *schedule.Schedule) {
	if len(s.MissingKeys) == 0 {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Warning: rows were not merged, missing columns: %s\n", strings.Join(s.MissingKeys, ", "))
}
