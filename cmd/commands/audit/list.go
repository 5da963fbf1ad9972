package audit

import (
	"fmt"
	"text/tabwriter"
	"time"

	"facilitiesdesk/keydesk/internal/auditlog"
	"facilitiesdesk/keydesk/internal/desk"
	"facilitiesdesk/keydesk/internal/util"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent audit entries",
		Long: `List recent audit entries stored locally.

Examples:
  keydesk audit list
  keydesk audit list --limit 50
  keydesk audit list --command "keydesk key deliver"
  keydesk audit list --teacher 1234567
  keydesk audit list --run 6f1c2a9e-...
  keydesk audit list -o json`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 25, "Number of entries to display")
	cmd.Flags().String("command", "", "Filter by exact command path")
	cmd.Flags().String("teacher", "", "Filter by teacher identifier")
	cmd.Flags().String("run", "", "Show every entry of one run")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")
	cmd.MarkFlagsMutuallyExclusive("run", "command")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	filter, _ := cmd.Flags().GetString("command")
	teacher, _ := cmd.Flags().GetString("teacher")
	runID, _ := cmd.Flags().GetString("run")
	output, _ := cmd.Flags().GetString("output")
	output, err := desk.ValidateOutput(output)
	if err != nil {
		return err
	}

	repo, err := auditlog.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	var entries []auditlog.AuditEntry
	switch {
	case runID != "":
		entries, err = repo.ListByRun(runID)
	case filter != "":
		entries, err = repo.ListByCommand(filter, limit)
	default:
		entries, err = repo.List(limit)
	}
	if err != nil {
		return err
	}
	entries = byTeacher(entries, teacher)

	if output == desk.OutputJSON {
		return desk.PrintJSON(cmd.OutOrStdout(), entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No audit entries found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tCOMMAND\tOUTCOME\tDURATION\tTEACHER\tROOM\tDETAIL")
	fmt.Fprintln(w, "----\t-------\t-------\t--------\t-------\t----\t------")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
			entry.Command,
			entry.Outcome,
			formatDuration(entry.DurationMs),
			formatTeacher(entry),
			orDash(entry.Room),
			orDash(entry.Detail),
		)
	}
	w.Flush()
	return nil
}

func byTeacher(entries []auditlog.AuditEntry, teacher string) []auditlog.AuditEntry {
	id := util.NormalizeTeacherID(teacher)
	if id == "" {
		return entries
	}
	var out []auditlog.AuditEntry
	for _, e := range entries {
		if e.TeacherID == id {
			out = append(out, e)
		}
	}
	return out
}

func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	d := time.Duration(ms) * time.Millisecond
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

// formatTeacher renders "name (id)", or whichever half is known.
func formatTeacher(entry auditlog.AuditEntry) string {
	switch {
	case entry.TeacherName != "" && entry.TeacherID != "":
		return entry.TeacherName + " (" + entry.TeacherID + ")"
	case entry.TeacherID != "":
		return entry.TeacherID
	default:
		return orDash(entry.TeacherName)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
