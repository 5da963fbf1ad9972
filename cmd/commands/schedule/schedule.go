package schedule

import "github.com/spf13/cobra"

// NewCommand returns the "schedule" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Import, clean and browse the class schedule",
		Long: "Import raw registrar extracts into the cleaned schedule and look up\n" +
			"classes by day, teacher or any column.\n\n" +
			"Rows of a raw extract that describe the same class (same teacher, subject,\n" +
			"room and day) are merged into one row spanning the earliest start and the\n" +
			"latest end.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ImportCommand())
	cmd.AddCommand(CleanCommand())
	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ExportCommand())
	cmd.AddCommand(BrowseCommand())

	return cmd
}
