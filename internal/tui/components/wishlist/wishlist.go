package wishlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/omarhani/rafiq/internal/models"
)

type AddWishMsg struct{}

type ToggleWishMsg struct {
	ID string
}

type Item struct {
	Wish models.Wish
}

func (i Item) Title() string {
	mark := "○"
	if i.Wish.Completed {
		mark = "●"
	}
	return mark + " " + i.Wish.Text
}

func (i Item) Description() string {
	return i.Wish.CreatedAt.Format("Mon Jan 2")
}

func (i Item) FilterValue() string { return i.Wish.Text }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add wish"),
		),
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

func New(wishes []models.Wish, width, height int) Model {
	l := list.New(buildItems(wishes), list.NewDefaultDelegate(), width, height)
	l.Title = "Wishes"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle}
	}

	return Model{list: l, keys: keys}
}

func buildItems(wishes []models.Wish) []list.Item {
	items := make([]list.Item, len(wishes))
	for i, w := range wishes {
		items[i] = Item{Wish: w}
	}
	return items
}

func (m *Model) SetWishes(wishes []models.Wish) {
	idx := m.list.Index()
	m.list.SetItems(buildItems(wishes))
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
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddWishMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleWishMsg{ID: i.Wish.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No wishes yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
