package components

import (
	"facilitiesdesk/keydesk/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar renders the last action's outcome above the footer, or
// nothing when there is no message.
func StatusBar(width int, message string, isError bool) string {
	if message == "" {
		return ""
	}

	mark, style := "✓ ", styles.SuccessText
	if isError {
		mark, style = "✗ ", styles.ErrorText
	}
	return lipgloss.NewStyle().Width(width).Padding(0, 2).Render(style.Render(mark + message))
}
