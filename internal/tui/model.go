package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/omarhani/rafiq/internal/identity"
	"github.com/omarhani/rafiq/internal/store"
	"github.com/omarhani/rafiq/internal/syncer"
	"github.com/omarhani/rafiq/internal/tui/components/feed"
	"github.com/omarhani/rafiq/internal/tui/components/missionlist"
	"github.com/omarhani/rafiq/internal/tui/components/wishlist"
	"github.com/omarhani/rafiq/internal/validation"
	"github.com/omarhani/rafiq/internal/wisdom"
)

type SessionState int

const (
	StateHome SessionState = iota
	StateMissions
	StateWishes
	StateVent
	StateTimeline
	StateWishInput
	StateVentInput
	StateUserSwitch
)

// tabCount covers the browsable tabs; form states come after.
const tabCount = 5

type WishFormModel struct {
	Text string
}

type VentFormModel struct {
	Text string
}

type SwitchFormModel struct {
	Name string
	PIN  string
}

type Model struct {
	store   *store.Store
	engine  *syncer.Engine
	session *identity.Session
	mentor  *wisdom.Client

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	missionList missionlist.Model
	wishList    wishlist.Model
	timeline    feed.Model

	form       *huh.Form
	wishForm   *WishFormModel
	ventForm   *VentFormModel
	switchForm *SwitchFormModel

	daily        wisdom.Wisdom
	lastFeedback string
	statusMsg    string

	validationWarning string

	quitting bool
	width    int
	height   int
}

// NewModel builds the TUI over an already-loaded store. The engine may be nil
// when no cloud backend is configured; sync actions become no-ops then.
func NewModel(st *store.Store, engine *syncer.Engine, session *identity.Session, mentor *wisdom.Client) Model {
	snap := st.Read()

	tl := feed.New(0, 0)
	tl.SetEvents(snap.Timeline)

	m := Model{
		store:       st,
		engine:      engine,
		session:     session,
		mentor:      mentor,
		state:       StateHome,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		missionList: missionlist.New(snap.Plan, snap.CompletedMissions, 0, 0),
		wishList:    wishlist.New(snap.Wishes, 0, 0),
		timeline:    tl,
	}

	m.updateValidationStatus()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateWishes, StateVent:
		keys = append(keys, m.keys.Add)
	}
	if m.engine != nil {
		keys = append(keys, m.keys.Sync)
	}
	keys = append(keys, m.keys.User)
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.User, m.keys.Sync}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateWishes, StateVent:
		actions = []key.Binding{m.keys.Add}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return m.fetchWisdom()
}

// refresh reloads the snapshot into every component after a mutation or after
// a pull replaced local state wholesale.
func (m *Model) refresh() {
	snap := m.store.Read()
	m.missionList.SetPlan(snap.Plan, snap.CompletedMissions)
	m.wishList.SetWishes(snap.Wishes)
	m.timeline.SetEvents(snap.Timeline)
	m.updateValidationStatus()
}

func (m *Model) updateValidationStatus() {
	result := validation.New().ValidateSnapshot(m.store.Read())
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}

func newWishForm(fm *WishFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("This week I wish to...").
				Value(&fm.Text).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("wish cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func newVentForm(fm *VentFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What's on your mind?").
				Value(&fm.Text).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("say anything, it stays between us")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func newSwitchForm(fm *SwitchFormModel) *huh.Form {
	options := make([]huh.Option[string], len(identity.Profiles))
	for i, p := range identity.Profiles {
		options[i] = huh.NewOption(p, p)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Who is studying?").
				Options(options...).
				Value(&fm.Name),
			huh.NewInput().
				Title("PIN").
				EchoMode(huh.EchoModePassword).
				Value(&fm.PIN).
				Validate(func(s string) error {
					if !identity.CheckPIN(s) {
						return fmt.Errorf("wrong PIN")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}
