package styles

import (
	"facilitiesdesk/keydesk/internal/keylog"

	"github.com/charmbracelet/lipgloss"
)

// Text styles.
var (
	Title      = lipgloss.NewStyle().Bold(true).Foreground(White)
	Subtitle   = lipgloss.NewStyle().Foreground(Gray)
	Label      = lipgloss.NewStyle().Foreground(Gray).Bold(true)
	Value      = lipgloss.NewStyle().Foreground(White)
	MutedText  = lipgloss.NewStyle().Foreground(Muted)
	AccentText = lipgloss.NewStyle().Foreground(Blue)

	ErrorText   = lipgloss.NewStyle().Foreground(Red).Bold(true)
	SuccessText = lipgloss.NewStyle().Foreground(Green).Bold(true)
)

// Card is a rounded-border panel for content sections.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(DimGray).
	Padding(1, 2)

// StatusStyle returns the style for a key ledger status. Keys still out
// stand out; returned keys are quiet.
func StatusStyle(status string) lipgloss.Style {
	switch keylog.Status(status) {
	case keylog.StatusDelivered:
		return lipgloss.NewStyle().Foreground(Yellow).Bold(true)
	case keylog.StatusReturned:
		return lipgloss.NewStyle().Foreground(Green)
	default:
		return lipgloss.NewStyle().Foreground(Gray)
	}
}

// Footer key hints.
var (
	KeyStyle     = lipgloss.NewStyle().Foreground(Blue).Bold(true)
	KeyDescStyle = lipgloss.NewStyle().Foreground(Muted)
	KeySepStyle  = lipgloss.NewStyle().Foreground(DimGray)
)

// FormatKeyBinding formats a single key binding for the footer.
func FormatKeyBinding(key, desc string) string {
	return KeyStyle.Render(key) + " " + KeyDescStyle.Render(desc)
}

// Table browser cells.
var (
	TableHeader = lipgloss.NewStyle().Bold(true).Foreground(Gray).Padding(0, 1)
	TableCell   = lipgloss.NewStyle().Foreground(White).Padding(0, 1)

	// TableSelectedRow is the row under the cursor.
	TableSelectedRow = lipgloss.NewStyle().
				Foreground(White).
				Background(DarkBlue).
				Bold(true).
				Padding(0, 1)
)
