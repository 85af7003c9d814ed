// Package tui provides an interactive terminal search view.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kotae-cli/internal/core/domain"
	"github.com/custodia-labs/kotae-cli/internal/core/ports/driving"
)

// visibleResults caps the rows rendered below the input.
const visibleResults = 10

// Styles used by the view.
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	fallbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// searchCompleted carries the outcome of an asynchronous search.
type searchCompleted struct {
	resp *domain.SearchResponse
	err  error
}

// Model is the interactive search model: a query input above a result list.
type Model struct {
	ctx    context.Context
	search driving.GroundingSearch

	input     textinput.Model
	resp      *domain.SearchResponse
	selected  int
	searching bool
	err       error
	width     int
}

// NewModel creates a new interactive search model.
func NewModel(ctx context.Context, search driving.GroundingSearch) Model {
	input := textinput.New()
	input.Placeholder = "質問や作品名を入力..."
	input.Focus()
	input.CharLimit = 256

	return Model{
		ctx:    ctx,
		search: search,
		input:  input,
		width:  80,
	}
}

// Init starts the input cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 4
		return m, nil

	case searchCompleted:
		m.searching = false
		m.err = msg.err
		if msg.err == nil {
			m.resp = msg.resp
			m.selected = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			query := strings.TrimSpace(m.input.Value())
			if query == "" || m.searching {
				return m, nil
			}
			m.searching = true
			m.err = nil
			return m, m.performSearch(query)

		case tea.KeyUp:
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case tea.KeyDown:
			if m.resp != nil && m.selected < len(m.resp.Results)-1 {
				m.selected++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// performSearch runs the retrieval off the update loop.
func (m Model) performSearch(query string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.search.Search(m.ctx, query)
		return searchCompleted{resp: resp, err: err}
	}
}

// View renders the input, result list, and selected-result detail.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("kotae"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.searching:
		b.WriteString(dimStyle.Render("検索中..."))

	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))

	case m.resp != nil:
		m.renderResults(&b)
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("enter: search • ↑/↓: select • esc: quit"))
	return b.String()
}

// renderResults writes the result rows and the selected record's content.
func (m Model) renderResults(b *strings.Builder) {
	if len(m.resp.Results) == 0 {
		b.WriteString(dimStyle.Render("該当なし"))
		return
	}

	if m.resp.FallbackUsed {
		b.WriteString(fallbackStyle.Render("キーワード検索の結果"))
		b.WriteString("\n")
	}

	for i, r := range m.resp.Results {
		if i >= visibleResults {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", len(m.resp.Results)-visibleResults)))
			b.WriteString("\n")
			break
		}

		line := fmt.Sprintf("%s  %s", r.Title, dimStyle.Render(r.SourceName))
		if i == m.selected {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.selected < len(m.resp.Results) {
		r := m.resp.Results[m.selected]
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(truncateLines(r.Content, 5)))
		if r.Link != "" {
			b.WriteString("\n")
			b.WriteString(dimStyle.Render(r.Link))
		}
	}
}

// truncateLines keeps at most n lines of s.
func truncateLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n..."
}

// Run starts the interactive search program.
func Run(ctx context.Context, search driving.GroundingSearch) error {
	if search == nil {
		return ErrMissingSearchService
	}

	program := tea.NewProgram(NewModel(ctx, search), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
