package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"facilitiesdesk/keydesk/internal/auditlog"
	"facilitiesdesk/keydesk/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
)

type memAudit struct {
	entries []auditlog.AuditEntry
	closed  bool
	saveErr error
}

func (m *memAudit) Save(e *auditlog.AuditEntry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries = append(m.entries, *e)
	return nil
}
func (m *memAudit) List(int) ([]auditlog.AuditEntry, error)                  { return m.entries, nil }
func (m *memAudit) ListByCommand(string, int) ([]auditlog.AuditEntry, error) { return nil, nil }
func (m *memAudit) ListByRun(string) ([]auditlog.AuditEntry, error)          { return nil, nil }
func (m *memAudit) Prune(time.Duration) (int64, error)                       { return 0, nil }
func (m *memAudit) Close() error                                             { m.closed = true; return nil }

func testRecorder(repo *memAudit) *recorder {
	start := time.Date(2024, 1, 8, 7, 45, 0, 0, time.UTC)
	r := newRecorder(func() (auditlog.Repository, error) { return repo, nil }, "run-1")
	r.start = start
	r.now = func() time.Time { return start.Add(250 * time.Millisecond) }
	return r
}

// testTree builds keydesk with a "key deliver" leaf that tags metadata and
// fails with runErr.
func testTree(runErr error) (root, deliver *cobra.Command) {
	root = &cobra.Command{Use: "keydesk"}
	keyCmd := &cobra.Command{Use: "key"}
	deliver = &cobra.Command{
		Use: "deliver",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
				TeacherID: "55", TeacherName: "Ana Perez", Room: "A-101",
			}))
			return runErr
		},
	}
	deliver.Flags().String("notes", "", "")
	list := &cobra.Command{Use: "list", RunE: func(*cobra.Command, []string) error { return nil }}
	auditCmd := &cobra.Command{Use: "audit"}
	auditCmd.AddCommand(list)
	keyCmd.AddCommand(deliver)
	root.AddCommand(keyCmd, auditCmd)
	root.SilenceErrors = true
	root.SilenceUsage = true
	return root, deliver
}

func TestRecord_Outcomes(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantOutcome string
		wantDetail  string
	}{
		{"success", nil, auditlog.OutcomeSuccess, ""},
		{"declined", fmt.Errorf("ledger: %w: 55", domain.ErrDuplicateActiveDelivery), auditlog.OutcomeDeclined, "ledger: teacher already has an outstanding key: 55"},
		{"error", errors.New("boom"), auditlog.OutcomeError, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memAudit{}
			root, _ := testTree(tt.err)
			args := []string{"key", "deliver", "--notes=secret"}
			root.SetArgs(args)
			executed, err := root.ExecuteC()

			testRecorder(repo).record(executed, args, err)

			want := []auditlog.AuditEntry{{
				RunID:       "run-1",
				Command:     "keydesk key deliver",
				Args:        "key deliver --notes=<redacted>",
				TeacherID:   "55",
				TeacherName: "Ana Perez",
				Room:        "A-101",
				Outcome:     tt.wantOutcome,
				Detail:      tt.wantDetail,
				DurationMs:  250,
			}}
			if diff := cmp.Diff(want, repo.entries); diff != "" {
				t.Errorf("entries mismatch (-want +got):\n%s", diff)
			}
			if !repo.closed {
				t.Error("expected repository to be closed")
			}
		})
	}
}

func TestRecord_SkipsNonDeskCommands(t *testing.T) {
	for _, args := range [][]string{{}, {"audit", "list"}, {"key"}, {"help"}} {
		repo := &memAudit{}
		root, _ := testTree(nil)
		root.SetArgs(args)
		executed, err := root.ExecuteC()

		testRecorder(repo).record(executed, args, err)

		if len(repo.entries) != 0 {
			t.Errorf("%v: expected no audit entry, got %+v", args, repo.entries)
		}
	}
}

func TestRecord_OpenFailureIsIgnored(t *testing.T) {
	root, _ := testTree(nil)
	root.SetArgs([]string{"key", "deliver"})
	executed, err := root.ExecuteC()

	var logs bytes.Buffer
	r := newRecorder(func() (auditlog.Repository, error) { return nil, errors.New("no db") }, "run-1")
	r.logger = debugLogger(&logs)
	r.record(executed, nil, err)

	if !strings.Contains(logs.String(), "no db") {
		t.Errorf("expected open failure in debug log, got: %s", logs.String())
	}
}

func TestRecord_SaveFailureIsLogged(t *testing.T) {
	root, _ := testTree(nil)
	root.SetArgs([]string{"key", "deliver"})
	executed, err := root.ExecuteC()

	var logs bytes.Buffer
	repo := &memAudit{saveErr: errors.New("database is locked")}
	r := testRecorder(repo)
	r.logger = debugLogger(&logs)
	r.record(executed, nil, err)

	for _, want := range []string{"failed to save audit entry", "keydesk key deliver", "database is locked"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("expected %q in debug log, got: %s", want, logs.String())
		}
	}
	if !repo.closed {
		t.Error("repository not closed after a failed save")
	}
}

func debugLogger(w *bytes.Buffer) func(*cobra.Command) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return func(*cobra.Command) *slog.Logger { return logger }
}

func TestRootCommand_Tree(t *testing.T) {
	root := rootCmd()
	for _, path := range [][]string{
		{"schedule", "import"}, {"schedule", "clean"}, {"schedule", "list"}, {"schedule", "export"}, {"schedule", "browse"},
		{"key", "deliver"}, {"key", "return"}, {"key", "list"}, {"key", "export"}, {"key", "browse"},
		{"config", "get"}, {"config", "set"}, {"audit", "list"}, {"audit", "prune"},
	} {
		c, _, err := root.Find(path)
		if err != nil || c.Name() != path[len(path)-1] {
			t.Errorf("command %v not found (err=%v)", path, err)
		}
	}
	for _, flag := range []string{"schedule", "ledger", "log-level"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}
}
