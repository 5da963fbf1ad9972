// Package desk wires the configured schedule store, key ledger and logger
// for one command invocation.
package desk

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"facilitiesdesk/keydesk/internal/auditlog"
	"facilitiesdesk/keydesk/internal/config"
	"facilitiesdesk/keydesk/internal/domain"
	"facilitiesdesk/keydesk/internal/keylog"
	"facilitiesdesk/keydesk/internal/logging"
	"facilitiesdesk/keydesk/internal/schedule"

	"github.com/spf13/cobra"
)

// Persistent flag names registered by AddFlags.
const (
	FlagSchedule = "schedule"
	FlagLedger   = "ledger"
	FlagLogLevel = "log-level"
)

// AddFlags registers the data-file and logging flags on a root command.
func AddFlags(root *cobra.Command) {
	root.PersistentFlags().String(FlagSchedule, "", "Cleaned schedule file (.xlsx, .csv or .tsv)")
	root.PersistentFlags().String(FlagLedger, "", "Key ledger file (.xlsx, .csv or .tsv)")
	root.PersistentFlags().String(FlagLogLevel, "", "Log level: debug, info, warn or error")
}

// Session holds what a desk command needs once flags and config are
// resolved.
type Session struct {
	SchedulePath string
	LedgerPath   string
	Logger       *slog.Logger
	Now          func() time.Time

	stderr io.Writer
}

// FromCommand resolves paths and the logger for cmd. Flags win over the
// config file, which wins over the defaults. A command without the
// persistent flags uses config and defaults only.
func FromCommand(cmd *cobra.Command) (*Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	schedulePath, err := cfg.ResolveSchedulePath(flagValue(cmd, FlagSchedule))
	if err != nil {
		return nil, err
	}
	ledgerPath, err := cfg.ResolveLedgerPath(flagValue(cmd, FlagLedger))
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, err
	}

	return &Session{
		SchedulePath: schedulePath,
		LedgerPath:   ledgerPath,
		Logger:       logger,
		Now:          time.Now,
		stderr:       cmd.ErrOrStderr(),
	}, nil
}

// Logger builds the logger FromCommand would give cmd, for code that runs
// outside a session.
func Logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return newLogger(cmd, cfg)
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.ResolveLogLevel(flagValue(cmd, FlagLogLevel)))
	if err != nil {
		return nil, err
	}
	if runID := auditlog.RunIDFromContext(cmd.Context()); runID != "" {
		logger = logger.With("run", runID)
	}
	return logger, nil
}

func flagValue(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return v
}

// OpenSchedule opens the cleaned schedule. Startup fallbacks are printed
// as warnings and do not fail.
func (s *Session) OpenSchedule() (*schedule.Store, error) {
	store, err := schedule.Open(s.SchedulePath, schedule.WithLogger(s.Logger))
	if err := s.Check(err); err != nil {
		return nil, err
	}
	return store, nil
}

// OpenLedger opens the key ledger with the same fallback handling as
// OpenSchedule.
func (s *Session) OpenLedger() (*keylog.Ledger, error) {
	ledger, err := keylog.Open(s.LedgerPath, keylog.WithLogger(s.Logger), keylog.WithClock(s.Now))
	if err := s.Check(err); err != nil {
		return nil, err
	}
	return ledger, nil
}

// Check prints err to stderr as a warning and returns nil when err only
// marks a degraded but usable result. Any other error is returned
// unchanged.
func (s *Session) Check(err error) error {
	if err == nil {
		return nil
	}
	if domain.IsWarning(err) || errors.Is(err, domain.ErrProcessing) {
		fmt.Fprintf(s.stderr, "Warning: %v\n", err)
		return nil
	}
	return err
}

// Tag attaches audit metadata to the command so the audit trail records
// who and where the command acted on.
func Tag(cmd *cobra.Command, meta auditlog.Metadata) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), meta))
}
