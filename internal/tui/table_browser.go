package tui

import (
	"fmt"
	"slices"
	"strings"

	"facilitiesdesk/keydesk/internal/table"
	"facilitiesdesk/keydesk/internal/tui/components"
	"facilitiesdesk/keydesk/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PageSizes are the rows-per-page choices cycled with +/-.
var PageSizes = []int{10, 20, 50, 100, 200}

const maxCellWidth = 28

// BrowserOptions configures RunTableBrowser.
type BrowserOptions struct {
	// Title is shown in the header breadcrumb.
	Title string
	// Context is shown on the right of the header.
	Context string
	// Columns limits the visible columns. Empty shows every column.
	Columns []string
	// Normalize maps a column to the function applied to its cells before
	// sorting.
	Normalize map[string]func(string) string
	// StatusColumn names a column rendered with styles.StatusStyle.
	StatusColumn string
}

type tableBrowserModel struct {
	opts   BrowserOptions
	source *table.Table
	view   *table.Table
	cols   []int

	search    textinput.Model
	searching bool

	sortCol  int // index into cols, -1 when unsorted
	sortDesc bool

	pageSize int
	cursor   int

	width  int
	height int

	status        string
	statusIsError bool
}

// RunTableBrowser shows t in a full-screen, searchable, sortable and
// paginated table until the user quits.
func RunTableBrowser(t *table.Table, opts BrowserOptions) error {
	m := newTableBrowserModel(t, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func newTableBrowserModel(t *table.Table, opts BrowserOptions) tableBrowserModel {
	ti := textinput.New()
	ti.Placeholder = "search"
	ti.Prompt = "/ "
	ti.Width = 40

	var cols []int
	for _, name := range opts.Columns {
		if i := t.Index(name); i >= 0 {
			cols = append(cols, i)
		}
	}
	if len(cols) == 0 {
		for i := range t.Columns {
			cols = append(cols, i)
		}
	}

	m := tableBrowserModel{
		opts:     opts,
		source:   t,
		cols:     cols,
		search:   ti,
		sortCol:  -1,
		pageSize: PageSizes[0],
	}
	m.refresh()
	return m
}

// refresh recomputes the visible rows from the search text and sort.
func (m *tableBrowserModel) refresh() {
	view := table.Search(m.source, m.search.Value())
	if m.sortCol >= 0 {
		name := m.source.Columns[m.cols[m.sortCol]]
		if sorted, err := table.Sort(view, name, m.sortDesc, m.opts.Normalize[name]); err == nil {
			view = sorted
		}
	}
	m.view = view
	m.cursor = min(m.cursor, max(view.Len()-1, 0))
}

func (m tableBrowserModel) pageCount() int {
	return max(1, (m.view.Len()+m.pageSize-1)/m.pageSize)
}

func (m tableBrowserModel) page() int { return m.cursor / m.pageSize }

func (m tableBrowserModel) Init() tea.Cmd {
	return nil
}

func (m tableBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m tableBrowserModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursor = 0
	m.refresh()
	m.status = fmt.Sprintf("%d matching rows", m.view.Len())
	m.statusIsError = false
	return m, cmd
}

func (m tableBrowserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := max(m.view.Len()-1, 0)

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.refresh()
			m.status = "Search cleared"
			return m, nil
		}
		return m, tea.Quit
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, last)
	case "right", "l", "n":
		m.cursor = min((m.page()+1)*m.pageSize, last)
	case "left", "h", "p":
		m.cursor = max((m.page()-1)*m.pageSize, 0)
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = last
	case "s":
		m.sortCol++
		if m.sortCol >= len(m.cols) {
			m.sortCol = -1
		}
		m.refresh()
		m.status = m.sortStatus()
	case "r":
		if m.sortCol >= 0 {
			m.sortDesc = !m.sortDesc
			m.refresh()
			m.status = m.sortStatus()
		}
	case "+", "=":
		m.pageSize = nextPageSize(m.pageSize, 1)
		m.status = fmt.Sprintf("%d rows per page", m.pageSize)
	case "-":
		m.pageSize = nextPageSize(m.pageSize, -1)
		m.status = fmt.Sprintf("%d rows per page", m.pageSize)
	}
	m.statusIsError = false
	return m, nil
}

func nextPageSize(current, step int) int {
	i := slices.Index(PageSizes, current)
	if i < 0 {
		return PageSizes[0]
	}
	i = min(max(i+step, 0), len(PageSizes)-1)
	return PageSizes[i]
}

func (m tableBrowserModel) sortStatus() string {
	if m.sortCol < 0 {
		return "Unsorted"
	}
	dir := "ascending"
	if m.sortDesc {
		dir = "descending"
	}
	return fmt.Sprintf("Sorted by %s (%s)", m.source.Columns[m.cols[m.sortCol]], dir)
}

func (m tableBrowserModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, m.opts.Title, m.opts.Context)

	var bindings []components.KeyBinding
	if m.searching {
		bindings = []components.KeyBinding{
			{Key: "enter", Desc: "done"},
		}
	} else {
		bindings = []components.KeyBinding{
			{Key: "j/k", Desc: "nav"},
			{Key: "h/l", Desc: "page"},
			{Key: "/", Desc: "search"},
			{Key: "s", Desc: "sort"},
			{Key: "r", Desc: "reverse"},
			{Key: "+/-", Desc: "page size"},
			{Key: "q", Desc: "quit"},
		}
	}
	footer := components.Footer(m.width, bindings)
	statusBar := components.StatusBar(m.width, m.status, m.statusIsError)

	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	content := m.renderSearchBar() + "\n" + m.renderTable(contentH-2)
	if lines := lipgloss.Height(content); lines < contentH {
		content += lipgloss.NewStyle().Height(contentH - lines).Render("")
	}

	sections := []string{header, content}
	if statusBar != "" {
		sections = append(sections, statusBar)
	}
	sections = append(sections, footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m tableBrowserModel) renderSearchBar() string {
	pageInfo := styles.MutedText.Render(fmt.Sprintf("page %d/%d  %d rows", m.page()+1, m.pageCount(), m.view.Len()))
	if m.searching || m.search.Value() != "" {
		return "  " + m.search.View() + "  " + pageInfo
	}
	return "  " + pageInfo
}

func (m tableBrowserModel) renderTable(height int) string {
	if m.view.Len() == 0 {
		if m.source.Len() == 0 {
			return "\n  No rows to show."
		}
		return "\n  No rows match the search."
	}

	start := m.page() * m.pageSize
	end := min(start+m.pageSize, m.view.Len())
	// Keep the cursor on screen when the page is taller than the terminal.
	if visible := max(height-1, 1); end-start > visible {
		start = max(m.cursor-visible+1, start)
		end = min(start+visible, end)
	}

	widths := m.columnWidths(start, end)

	headerCells := make([]string, len(m.cols))
	for i, c := range m.cols {
		name := m.source.Columns[c]
		if i == m.sortCol {
			if m.sortDesc {
				name += " ↓"
			} else {
				name += " ↑"
			}
		}
		headerCells[i] = pad(strings.ToUpper(name), widths[i])
	}
	rows := []string{styles.TableHeader.Render("  " + strings.Join(headerCells, " "))}

	for r := start; r < end; r++ {
		cells := make([]string, len(m.cols))
		for i, c := range m.cols {
			cell := pad(m.view.Cell(r, c), widths[i])
			if m.source.Columns[c] == m.opts.StatusColumn && r != m.cursor {
				cell = styles.StatusStyle(strings.TrimSpace(m.view.Cell(r, c))).Render(cell)
			}
			cells[i] = cell
		}

		line := strings.Join(cells, " ")
		if r == m.cursor {
			rows = append(rows, styles.TableSelectedRow.Render(styles.AccentText.Render(">")+" "+line))
		} else {
			rows = append(rows, styles.TableCell.Render("  "+line))
		}
	}
	return strings.Join(rows, "\n")
}

func (m tableBrowserModel) columnWidths(start, end int) []int {
	widths := make([]int, len(m.cols))
	for i, c := range m.cols {
		w := ansi.StringWidth(m.source.Columns[c]) + 2
		for r := start; r < end; r++ {
			w = max(w, ansi.StringWidth(m.view.Cell(r, c)))
		}
		widths[i] = min(w, maxCellWidth)
	}
	return widths
}

func pad(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if gap := width - ansi.StringWidth(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}
