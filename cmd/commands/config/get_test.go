package config

import (
	"strings"
	"testing"

	"facilitiesdesk/keydesk/internal/config"
)

func TestGet_LedgerPath_NotSet(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "get", "ledger-path")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "not set") {
		t.Errorf("expected 'not set', got: %s", stdout)
	}
}

func TestGet_LedgerPath_Set(t *testing.T) {
	path := setupTestConfig(t)

	cfg := &config.Config{LedgerPath: "/srv/desk/registro.xlsx"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, stderr := execConfig(t, "get", "LEDGER-PATH")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "/srv/desk/registro.xlsx") {
		t.Errorf("expected ledger path, got: %s", stdout)
	}
}

func TestGet_NoKey_ListsAll(t *testing.T) {
	path := setupTestConfig(t)

	cfg := &config.Config{LogLevel: "info"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	// Test output is a buffer, not a terminal, so the viewer never opens.
	stdout, _ := execConfig(t, "get")

	for _, want := range []string{"schedule-path: (not set)", "ledger-path: (not set)", "log-level: info"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output, got: %s", want, stdout)
		}
	}
}

func TestGet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "get", "bogus-key")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got: %s", stderr)
	}
}

func TestGet_Effective(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "get", "log-level", "--effective")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if got := strings.TrimSpace(stdout); got != "warn" {
		t.Errorf("effective log level = %q, want %q", got, "warn")
	}
}
