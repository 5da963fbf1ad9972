package schedule

import (
	"fmt"
	"os"
	"time"

	"facilitiesdesk/keydesk/internal/schedule"
	"facilitiesdesk/keydesk/internal/tui"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

var browseColumns = []string{
	schedule.ColTeacherID, schedule.ColTeacher, schedule.ColSubject, schedule.ColRoom,
	schedule.ColDay, schedule.ColTimeRange, "grupo",
}

// BrowseCommand returns the "schedule browse" command.
func BrowseCommand() *cobra.Command {
	var sel selector
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the schedule interactively",
		Long: `Open a full-screen, searchable and sortable view of the stored schedule.

Examples:
  keydesk schedule browse
  keydesk schedule browse --day today`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("schedule browse requires a terminal; use schedule list instead")
			}
			_, t, err := sel.load(cmd)
			if err != nil {
				return err
			}

			dayLabel := "all days"
			if sel.day != "" {
				dayLabel = schedule.DayName(sel.day, time.Now())
			}
			return tui.RunTableBrowser(t, tui.BrowserOptions{
				Title:     "schedule",
				Context:   dayLabel,
				Columns:   browseColumns,
				Normalize: columnNormalizers,
			})
		},
		SilenceUsage: true,
	}

	addSelectorFlags(cmd, &sel)

	return cmd
}
