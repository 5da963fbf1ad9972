package components

import (
	"strings"
	"testing"
)

func TestFooter_DropsHintsThatDoNotFit(t *testing.T) {
	bindings := []KeyBinding{
		{Key: "j/k", Desc: "nav"},
		{Key: "/", Desc: "search"},
		{Key: "q", Desc: "quit"},
	}

	wide := Footer(80, bindings)
	for _, want := range []string{"nav", "search", "quit"} {
		if !strings.Contains(wide, want) {
			t.Errorf("wide footer missing %q:\n%s", want, wide)
		}
	}

	narrow := Footer(20, bindings)
	if !strings.Contains(narrow, "nav") || strings.Contains(narrow, "quit") {
		t.Errorf("narrow footer should keep only the first hints:\n%s", narrow)
	}

	if got := Footer(5, bindings); got != "" {
		t.Errorf("expected nothing on a tiny terminal, got %q", got)
	}
}

func TestStatusBar(t *testing.T) {
	if got := StatusBar(40, "", false); got != "" {
		t.Errorf("expected empty bar, got %q", got)
	}
	if got := StatusBar(40, "saved", false); !strings.Contains(got, "✓ saved") {
		t.Errorf("success bar = %q", got)
	}
	if got := StatusBar(40, "boom", true); !strings.Contains(got, "✗ boom") {
		t.Errorf("error bar = %q", got)
	}
}

func TestHeader(t *testing.T) {
	got := Header(60, "schedule", "LUNES")
	for _, want := range []string{"keydesk", "schedule", "LUNES"} {
		if !strings.Contains(got, want) {
			t.Errorf("header missing %q:\n%s", want, got)
		}
	}
}
