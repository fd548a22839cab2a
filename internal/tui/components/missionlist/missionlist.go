package missionlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/omarhani/rafiq/internal/models"
)

type ToggleMissionMsg struct {
	ID string
}

type Item struct {
	Mission     models.Mission
	SubjectName string
	SubjectIcon string
	Done        bool
}

func (i Item) Title() string {
	mark := "○"
	if i.Done {
		mark = "●"
	}
	return fmt.Sprintf("%s %s", mark, i.Mission.Title)
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s %s", i.SubjectIcon, i.SubjectName)
	if i.Mission.Duration != "" {
		desc += " | " + i.Mission.Duration
	}
	if i.Mission.Deadline != "" {
		desc += " | due " + i.Mission.Deadline
	}
	return desc
}

func (i Item) FilterValue() string { return i.Mission.Title }

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle done"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(subjects []models.Subject, completed map[string]bool, width, height int) Model {
	l := list.New(buildItems(subjects, completed), list.NewDefaultDelegate(), width, height)
	l.Title = "Missions"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}

	return Model{list: l, keys: keys}
}

func buildItems(subjects []models.Subject, completed map[string]bool) []list.Item {
	var items []list.Item
	for _, s := range subjects {
		for _, m := range s.AllMissions() {
			items = append(items, Item{
				Mission:     m,
				SubjectName: s.Name,
				SubjectIcon: s.Icon,
				Done:        completed[m.ID],
			})
		}
	}
	return items
}

// SetPlan rebuilds the items while keeping the cursor position.
func (m *Model) SetPlan(subjects []models.Subject, completed map[string]bool) {
	idx := m.list.Index()
	m.list.SetItems(buildItems(subjects, completed))
	if idx < len(m.list.Items()) {
		m.list.Select(idx)
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		if key.Matches(msg, m.keys.Toggle) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleMissionMsg{ID: i.Mission.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No missions in the plan."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
