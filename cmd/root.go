package cmd

import (
	"context"
	"os"

	"facilitiesdesk/keydesk/cmd/commands/audit"
	cfgcmd "facilitiesdesk/keydesk/cmd/commands/config"
	"facilitiesdesk/keydesk/cmd/commands/key"
	"facilitiesdesk/keydesk/cmd/commands/schedule"
	"facilitiesdesk/keydesk/internal/auditlog"
	"facilitiesdesk/keydesk/internal/desk"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "keydesk",
		Short: "A desk tool for classroom keys and the class schedule",
		Long: `keydesk tracks classroom key hand-outs against the class schedule.

It cleans raw registrar schedule extracts, merging rows of the same class into
one time block, and keeps a ledger of which teacher holds which room key.

Quick start:
  keydesk schedule import programacion.xlsx   # Clean and store the schedule
  keydesk schedule list --day today           # Today's classes
  keydesk key deliver                         # Hand out a key (interactive)
  keydesk key return 1234567                  # Take a key back
  keydesk key list --outstanding              # Keys still out`,
		SilenceUsage: true,
	}

	desk.AddFlags(cmd)

	cmd.AddCommand(schedule.NewCommand())
	cmd.AddCommand(key.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(audit.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()

	recorder := newRecorder(openAuditRepository, uuid.NewString())
	ctx := auditlog.WithRunID(context.Background(), recorder.runID)

	executed, err := root.ExecuteContextC(ctx)
	recorder.record(executed, os.Args[1:], err)
	if err != nil {
		os.Exit(1)
	}
}

func openAuditRepository() (auditlog.Repository, error) {
	return auditlog.Open()
}
