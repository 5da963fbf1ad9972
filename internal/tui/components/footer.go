package components

import (
	"facilitiesdesk/keydesk/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding is one key hint shown in the footer.
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer renders the key hints below a rule. Hints that do not fit the
// width are dropped from the end.
func Footer(width int, bindings []KeyBinding) string {
	if width < 10 || len(bindings) == 0 {
		return ""
	}

	sep := styles.KeySepStyle.Render("  ")
	room := width - 4
	var line string
	for i, b := range bindings {
		hint := styles.FormatKeyBinding(b.Key, b.Desc)
		next := hint
		if i > 0 {
			next = line + sep + hint
		}
		if lipgloss.Width(next) > room {
			break
		}
		line = next
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderTop(true).
		BorderForeground(styles.DimGray).
		Render(line)
}
