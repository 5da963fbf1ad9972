package audit

import "github.com/spf13/cobra"

// NewCommand returns the "audit" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "View and manage the desk's audit history",
		Long: "View a local audit trail of keydesk commands (who handed out or took\n" +
			"back which key, imports and exports) and prune old entries.\n\n" +
			"Audit history is stored locally in ~/.config/keydesk/keydesk.db.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
