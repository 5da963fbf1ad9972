package config

import (
	"facilitiesdesk/keydesk/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage keydesk configuration",
		Long: "View and modify persistent keydesk settings.\n\n" +
			"Configuration is stored at ~/.config/keydesk/config.json.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
