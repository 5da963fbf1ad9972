package key

import "github.com/spf13/cobra"

// NewCommand returns the "key" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Hand out, take back and look up classroom keys",
		Long: "Record key hand-outs against the class schedule and their returns.\n\n" +
			"A teacher holds at most one key at a time. Teacher identifiers are\n" +
			"normalized before every comparison, so \"55.0\" and \"55\" are the same teacher.",
		SilenceUsage: true,
	}

	cmd.AddCommand(DeliverCommand())
	cmd.AddCommand(ReturnCommand())
	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ExportCommand())
	cmd.AddCommand(BrowseCommand())

	return cmd
}
