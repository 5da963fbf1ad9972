package cmd

import (
	"context"
	"log/slog"
	"time"

	"facilitiesdesk/keydesk/internal/auditlog"
	"facilitiesdesk/keydesk/internal/desk"
	"facilitiesdesk/keydesk/internal/domain"
	"facilitiesdesk/keydesk/internal/logging"

	"github.com/spf13/cobra"
)

// recorder writes one audit entry per executed desk command.
type recorder struct {
	open  func() (auditlog.Repository, error)
	runID string
	start time.Time
	now   func() time.Time

	logger func(*cobra.Command) *slog.Logger
}

func newRecorder(open func() (auditlog.Repository, error), runID string) *recorder {
	return &recorder{open: open, runID: runID, start: time.Now(), now: time.Now, logger: commandLogger}
}

func commandLogger(cmd *cobra.Command) *slog.Logger {
	logger, err := desk.Logger(cmd)
	if err != nil {
		return logging.Discard()
	}
	return logger
}

// record saves the outcome of executed. Audit failures never change the
// command's own result; they are only logged at debug level.
func (r *recorder) record(executed *cobra.Command, args []string, runErr error) {
	if !audited(executed) {
		return
	}

	repo, err := r.open()
	if err != nil {
		r.logger(executed).Debug("audit log unavailable", "error", err)
		return
	}
	defer repo.Close()

	ctx := executed.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	meta := auditlog.MetadataFromContext(ctx)

	entry := &auditlog.AuditEntry{
		RunID:       r.runID,
		Command:     executed.CommandPath(),
		Args:        auditlog.SanitizeArgs(args),
		TeacherID:   meta.TeacherID,
		TeacherName: meta.TeacherName,
		Room:        meta.Room,
		Outcome:     outcome(runErr),
		DurationMs:  r.now().Sub(r.start).Milliseconds(),
	}
	if runErr != nil {
		entry.Detail = runErr.Error()
	}
	if err := repo.Save(entry); err != nil {
		r.logger(executed).Debug("failed to save audit entry", "command", entry.Command, "error", err)
	}
}

// audited reports whether a command run belongs in the audit trail: the
// bare root, help, completion, the audit commands themselves and
// parent-only commands are skipped.
func audited(c *cobra.Command) bool {
	if c == nil || !c.HasParent() || !c.Runnable() {
		return false
	}
	top := c
	for top.HasParent() && top.Parent().HasParent() {
		top = top.Parent()
	}
	switch top.Name() {
	case "audit", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	return true
}

func outcome(err error) string {
	switch {
	case err == nil:
		return auditlog.OutcomeSuccess
	case domain.IsDeclined(err):
		return auditlog.OutcomeDeclined
	default:
		return auditlog.OutcomeError
	}
}
