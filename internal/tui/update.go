package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/omarhani/rafiq/internal/models"
	"github.com/omarhani/rafiq/internal/reducer"
	"github.com/omarhani/rafiq/internal/tui/components/missionlist"
	"github.com/omarhani/rafiq/internal/tui/components/wishlist"
	"github.com/omarhani/rafiq/internal/wisdom"
)

const remoteTimeout = 15 * time.Second

type wisdomMsg struct {
	Daily wisdom.Wisdom
}

type ventSavedMsg struct {
	Feedback string
}

type syncedMsg struct {
	Err error
}

type userSwitchedMsg struct {
	Name string
	Err  error
}

func (m Model) fetchWisdom() tea.Cmd {
	mentor := m.mentor
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()
		return wisdomMsg{Daily: mentor.DailyWisdom(ctx)}
	}
}

func (m Model) saveVent(text string) tea.Cmd {
	mentor := m.mentor
	st := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()
		analysis := mentor.AnalyzeVent(ctx, text)
		st.MutateImmediate(func(s models.Snapshot) models.Snapshot {
			return reducer.AddVent(s, text, analysis.Mood, analysis.Feedback, analysis.SentimentScore, time.Now())
		})
		return ventSavedMsg{Feedback: analysis.Feedback}
	}
}

func (m Model) syncNow() tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()
		return syncedMsg{Err: engine.SyncNow(ctx)}
	}
}

func (m Model) switchUser(name string) tea.Cmd {
	engine := m.engine
	st := m.store
	session := m.session
	return func() tea.Msg {
		if engine == nil {
			session.Set(name)
			snap := st.Read()
			snap.UserName = name
			st.Replace(snap)
			return userSwitchedMsg{Name: name}
		}
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()
		var err error
		if session.Active() {
			err = engine.SwitchUser(ctx, name)
		} else {
			err = engine.Connect(ctx, name)
		}
		return userSwitchedMsg{Name: name, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		contentW, contentH := msg.Width-4, msg.Height-6
		m.missionList.SetSize(contentW, contentH)
		m.wishList.SetSize(contentW, contentH)
		m.timeline.SetSize(contentW, contentH)
		return m, nil

	case wisdomMsg:
		m.daily = msg.Daily
		return m, nil

	case ventSavedMsg:
		m.lastFeedback = msg.Feedback
		m.refresh()
		return m, nil

	case syncedMsg:
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("sync failed: %v", msg.Err)
		} else {
			m.statusMsg = "synced"
		}
		return m, nil

	case userSwitchedMsg:
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("switch to %s incomplete: %v", msg.Name, msg.Err)
		} else {
			m.statusMsg = "welcome, " + msg.Name
		}
		m.refresh()
		return m, nil

	case missionlist.ToggleMissionMsg:
		m.store.Mutate(func(s models.Snapshot) models.Snapshot {
			return reducer.ToggleMission(s, msg.ID, time.Now())
		})
		m.refresh()
		return m, nil

	case wishlist.AddWishMsg:
		return m.openWishForm()

	case wishlist.ToggleWishMsg:
		m.store.MutateImmediate(func(s models.Snapshot) models.Snapshot {
			return reducer.ToggleWish(s, msg.ID)
		})
		m.refresh()
		return m, nil
	}

	switch m.state {
	case StateWishInput, StateVentInput, StateUserSwitch:
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.User):
			return m.openSwitchForm()
		case key.Matches(msg, m.keys.Sync):
			if m.engine != nil {
				m.statusMsg = "syncing..."
				return m, m.syncNow()
			}
			return m, nil
		case key.Matches(msg, m.keys.Add) && m.state == StateVent:
			return m.openVentForm()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateMissions:
		m.missionList, cmd = m.missionList.Update(msg)
	case StateWishes:
		m.wishList, cmd = m.wishList.Update(msg)
	case StateTimeline:
		m.timeline, cmd = m.timeline.Update(msg)
	}
	return m, cmd
}

func (m Model) openWishForm() (tea.Model, tea.Cmd) {
	m.previousState = m.state
	m.state = StateWishInput
	m.wishForm = &WishFormModel{}
	m.form = newWishForm(m.wishForm)
	return m, m.form.Init()
}

func (m Model) openVentForm() (tea.Model, tea.Cmd) {
	m.previousState = m.state
	m.state = StateVentInput
	m.ventForm = &VentFormModel{}
	m.form = newVentForm(m.ventForm)
	return m, m.form.Init()
}

func (m Model) openSwitchForm() (tea.Model, tea.Cmd) {
	m.previousState = m.state
	m.state = StateUserSwitch
	m.switchForm = &SwitchFormModel{Name: m.session.Name()}
	m.form = newSwitchForm(m.switchForm)
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		state := m.state
		m.state = m.previousState
		m.form = nil
		switch state {
		case StateWishInput:
			text := strings.TrimSpace(m.wishForm.Text)
			m.store.MutateImmediate(func(s models.Snapshot) models.Snapshot {
				return reducer.AddWish(s, text, time.Now())
			})
			m.refresh()
		case StateVentInput:
			m.statusMsg = "thinking..."
			cmds = append(cmds, m.saveVent(strings.TrimSpace(m.ventForm.Text)))
		case StateUserSwitch:
			m.statusMsg = "switching user..."
			cmds = append(cmds, m.switchUser(m.switchForm.Name))
		}
	case huh.StateAborted:
		m.state = m.previousState
		m.form = nil
	}
	return m, tea.Batch(cmds...)
}
