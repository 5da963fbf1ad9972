package config

import (
	"fmt"
	"os"
	"strings"

	"facilitiesdesk/keydesk/internal/config"
	"facilitiesdesk/keydesk/internal/tui"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

// GetCommand returns the "config get" command.
func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value",
		Long: "Get a persistent configuration value.\n\n" +
			"Without a key, a terminal opens the settings viewer and anything else\n" +
			"gets every key as \"name: value\" lines. --effective prints the value\n" +
			"commands will use, with defaults filled in.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  keydesk config get                          # interactive viewer\n" +
			"  keydesk config get ledger-path              # stored value\n" +
			"  keydesk config get ledger-path --effective  # value in use",
		Args:         cobra.MaximumNArgs(1),
		RunE:         runGet,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("effective", false, "Print the value in use, applying defaults")

	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	effective, _ := cmd.Flags().GetBool("effective")

	if len(args) == 0 && !effective && term.IsTerminal(int(os.Stdout.Fd())) {
		if err := tui.RunConfigView(); err != nil {
			return fmt.Errorf("config view failed: %w", err)
		}
		return nil
	}

	specs := config.Keys
	if len(args) == 1 {
		spec := config.Lookup(args[0])
		if spec == nil {
			return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
		}
		specs = []config.KeySpec{*spec}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, spec := range specs {
		value := spec.Get(cfg)
		if effective {
			value = spec.Effective(cfg)
		}
		switch {
		case len(args) == 1 && value == "":
			fmt.Fprintln(out, "not set")
		case len(args) == 1:
			fmt.Fprintln(out, value)
		case value == "":
			fmt.Fprintf(out, "%s: (not set)\n", spec.Name)
		default:
			fmt.Fprintf(out, "%s: %s\n", spec.Name, value)
		}
	}
	return nil
}
