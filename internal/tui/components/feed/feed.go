package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/omarhani/rafiq/internal/models"
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model renders the activity timeline in a scrollable viewport, newest first.
type Model struct {
	viewport viewport.Model
	events   []models.TimelineEvent
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.events) == 0 {
		return "\n  No activity yet."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

func (m *Model) SetEvents(events []models.TimelineEvent) {
	m.events = events
	m.render()
}

func (m *Model) render() {
	var b strings.Builder
	for _, ev := range m.events {
		line := fmt.Sprintf("%s %s %s\n",
			timeStyle.Render(ev.CreatedAt.Format("Jan 2 15:04")),
			titleStyle.Render(ev.Title),
			kindStyle.Render(string(ev.Type)),
		)
		b.WriteString(line)
	}
	m.viewport.SetContent(b.String())
}
