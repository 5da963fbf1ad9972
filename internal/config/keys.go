package config

import (
	"fmt"
	"strings"

	"facilitiesdesk/keydesk/internal/util"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "ledger-path").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save). It rejects values the
	// key cannot hold.
	Set func(cfg *Config, value string) error

	// Effective returns the value in force when the key is unset, with
	// defaults applied.
	Effective func(cfg *Config) string
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "schedule-path",
		Description: "Cleaned schedule file used when --schedule is not specified",
		Get:         func(cfg *Config) string { return cfg.SchedulePath },
		Set: func(cfg *Config, v string) error {
			cfg.SchedulePath = strings.TrimSpace(v)
			return nil
		},
		Effective: func(cfg *Config) string {
			p, _ := cfg.ResolveSchedulePath("")
			return p
		},
	},
	{
		Name:        "ledger-path",
		Description: "Key ledger file used when --ledger is not specified",
		Get:         func(cfg *Config) string { return cfg.LedgerPath },
		Set: func(cfg *Config, v string) error {
			cfg.LedgerPath = strings.TrimSpace(v)
			return nil
		},
		Effective: func(cfg *Config) string {
			p, _ := cfg.ResolveLedgerPath("")
			return p
		},
	},
	{
		Name:        "log-level",
		Description: "Log verbosity when --log-level is not specified (debug, info, warn, error; blank for warn)",
		Get:         func(cfg *Config) string { return cfg.LogLevel },
		Set: func(cfg *Config, v string) error {
			v = util.NormalizeKey(v)
			switch v {
			case "", "debug", "info", "warn", "error":
				cfg.LogLevel = v
				return nil
			}
			return fmt.Errorf("invalid log level %q (use debug, info, warn or error)", v)
		},
		Effective: func(cfg *Config) string { return cfg.ResolveLogLevel("") },
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := util.NormalizeKey(name)
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	// Find the longest key name for alignment.
	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
