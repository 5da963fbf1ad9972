package tui

import (
	"fmt"
	"strings"

	"facilitiesdesk/keydesk/internal/config"
	"facilitiesdesk/keydesk/internal/tui/components"
	"facilitiesdesk/keydesk/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsCardWidth = 84
	settingsNameWidth = 16
)

type settingsSavedMsg struct{ key string }

type settingsErrorMsg struct{ err error }

type configViewModel struct {
	cfg  *config.Config
	keys []config.KeySpec
	save func(*config.Config) error

	cursor  int
	editing bool
	editor  textinput.Model

	width  int
	height int

	status  string
	isError bool
}

// RunConfigView opens the desk settings: the data files and log level,
// with the defaults that apply when a key is unset.
func RunConfigView() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	_, err = tea.NewProgram(newConfigViewModel(cfg), tea.WithAltScreen()).Run()
	return err
}

func newConfigViewModel(cfg *config.Config) configViewModel {
	return configViewModel{
		cfg:  cfg,
		keys: config.Keys,
		save: (*config.Config).Save,
	}
}

func (m configViewModel) Init() tea.Cmd {
	return nil
}

func (m configViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditor(msg)
		}
		return m.updateList(msg)

	case settingsSavedMsg:
		m.editing = false
		m.setStatus(msg.key+" saved", false)
		return m, nil

	case settingsErrorMsg:
		m.setStatus("Error: "+msg.err.Error(), true)
		return m, nil
	}
	return m, nil
}

func (m *configViewModel) setStatus(s string, isError bool) {
	m.status, m.isError = s, isError
}

func (m configViewModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, len(m.keys)-1)
	case "enter", "e":
		if len(m.keys) == 0 {
			return m, nil
		}
		key := m.keys[m.cursor]
		ti := textinput.New()
		ti.Width = 52
		ti.Placeholder = key.Effective(m.cfg)
		ti.SetValue(key.Get(m.cfg))
		ti.Focus()
		m.editor = ti
		m.editing = true
		m.setStatus("", false)
		return m, textinput.Blink
	case "d":
		if len(m.keys) == 0 {
			return m, nil
		}
		key := m.keys[m.cursor]
		if key.Get(m.cfg) == "" {
			return m, nil
		}
		return m.apply(key, "")
	}
	return m, nil
}

func (m configViewModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.setStatus("", false)
		return m, nil
	case "enter":
		return m.apply(m.keys[m.cursor], strings.TrimSpace(m.editor.Value()))
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// apply sets key to value in memory and saves in the background. A value
// the key rejects keeps the editor open.
func (m configViewModel) apply(key config.KeySpec, value string) (tea.Model, tea.Cmd) {
	previous := key.Get(m.cfg)
	if err := key.Set(m.cfg, value); err != nil {
		_ = key.Set(m.cfg, previous)
		m.setStatus("Error: "+err.Error(), true)
		return m, nil
	}

	cfg, save := m.cfg, m.save
	return m, func() tea.Msg {
		if err := save(cfg); err != nil {
			return settingsErrorMsg{err: err}
		}
		return settingsSavedMsg{key: key.Name}
	}
}

func (m configViewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	bindings := []components.KeyBinding{
		{Key: "j/k", Desc: "navigate"},
		{Key: "e", Desc: "edit"},
		{Key: "d", Desc: "use default"},
		{Key: "q", Desc: "quit"},
	}
	if m.editing {
		bindings = []components.KeyBinding{
			{Key: "enter", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	}

	header := components.Header(m.width, "settings", "")
	footer := components.Footer(m.width, bindings)
	sections := []string{header, ""}
	var statusBar string
	if m.status != "" {
		statusBar = components.StatusBar(m.width, m.status, m.isError)
	}

	bodyH := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-lipgloss.Height(statusBar), 1)
	sections[1] = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, m.renderSettings())
	if statusBar != "" {
		sections = append(sections, statusBar)
	}
	sections = append(sections, footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m configViewModel) renderSettings() string {
	title := styles.Title.Render("Desk settings")
	if len(m.keys) == 0 {
		return lipgloss.JoinVertical(lipgloss.Center, title, "", styles.MutedText.Render("Nothing to configure."))
	}

	var lines []string
	for i, key := range m.keys {
		lines = append(lines, m.renderKey(i, key)...)
	}
	card := styles.Card.Width(settingsCardWidth).Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Center, title, "", card)
}

func (m configViewModel) renderKey(i int, key config.KeySpec) []string {
	selected := i == m.cursor
	value := key.Get(m.cfg)

	if !selected {
		shown := value
		if shown == "" {
			shown = "default"
		}
		return []string{"  " + styles.MutedText.Width(settingsNameWidth).Render(key.Name) + styles.MutedText.Render(shown)}
	}

	prefix := styles.AccentText.Render("> ")
	name := styles.Label.Width(settingsNameWidth).Render(key.Name)
	if m.editing {
		return []string{prefix + name + m.editor.View()}
	}

	shown := styles.Value.Bold(true).Render(value)
	if value == "" {
		shown = styles.MutedText.Render("default")
	}
	lines := []string{prefix + name + shown}
	indent := strings.Repeat(" ", 4)
	lines = append(lines, indent+styles.MutedText.Italic(true).Render(key.Description))
	if value == "" {
		lines = append(lines, indent+styles.MutedText.Render("in use: "+key.Effective(m.cfg)))
	}
	return lines
}
