package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/omarhani/rafiq/internal/plan"
	"github.com/omarhani/rafiq/internal/schedule"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateHome:
		content = docStyle.Render(m.viewHome())
	case StateMissions:
		content = docStyle.Render(m.missionList.View())
	case StateWishes:
		content = docStyle.Render(m.wishList.View())
	case StateVent:
		content = docStyle.Render(m.viewVent())
	case StateTimeline:
		content = docStyle.Render(m.timeline.View())
	case StateWishInput, StateVentInput, StateUserSwitch:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Home", "Missions", "Wishes", "Vent", "Timeline"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	var parts []string
	if m.session.Active() {
		parts = append(parts, m.session.Name())
	} else {
		parts = append(parts, "offline")
	}
	if m.engine != nil {
		parts = append(parts, "sync: "+m.engine.State().String())
	}
	if m.statusMsg != "" {
		parts = append(parts, m.statusMsg)
	}
	if m.validationWarning != "" {
		parts = append(parts, m.validationWarning)
	}
	return statusStyle.Render(strings.Join(parts, "  ·  "))
}

func (m Model) viewHome() string {
	snap := m.store.Read()
	var b strings.Builder

	greeting := "Welcome back"
	if m.session.Active() {
		greeting = "Welcome back, " + m.session.Name()
	}
	b.WriteString(headerStyle.Render(greeting) + "\n\n")

	if m.daily.Content != "" {
		b.WriteString(quoteStyle.Render(fmt.Sprintf("“%s” — %s", m.daily.Content, m.daily.Source)) + "\n\n")
	}

	total := plan.TotalProgress(snap.Plan, snap.CompletedMissions)
	b.WriteString(fmt.Sprintf("Overall %s %3.0f%%\n\n", renderBar(total, 24), total))

	for _, subj := range snap.Plan {
		pct := plan.SubjectProgress(subj, snap.CompletedMissions)
		b.WriteString(fmt.Sprintf("%s %-18s %s %3.0f%%\n", subj.Icon, subj.Name, renderBar(pct, 20), pct))
	}

	focus := schedule.FocusForDay(snap.Plan, snap.CompletedMissions, time.Now().Weekday())
	if len(focus) > 0 {
		b.WriteString("\n" + headerStyle.Render("Today's focus") + "\n")
		for i, f := range focus {
			if i >= 3 {
				break
			}
			note := ""
			if f.HasLesson {
				note = dimStyle.Render(" (lesson today)")
			}
			b.WriteString(fmt.Sprintf("  %s %s%s\n", f.Subject.Icon, f.Subject.Name, note))
		}
	}

	philosophy := plan.DefaultPhilosophy()
	b.WriteString("\n" + headerStyle.Render(philosophy.Title) + "\n")
	for _, p := range philosophy.Principles {
		b.WriteString(dimStyle.Render("  • "+p) + "\n")
	}

	return b.String()
}

func (m Model) viewVent() string {
	snap := m.store.Read()
	var b strings.Builder

	b.WriteString(headerStyle.Render("Venting space") + "\n")
	b.WriteString(dimStyle.Render("Press 'a' to write. Entries are never edited or deleted.") + "\n\n")

	if m.lastFeedback != "" {
		b.WriteString(quoteStyle.Render(m.lastFeedback) + "\n\n")
	}

	if len(snap.VentLogs) == 0 {
		b.WriteString("  Nothing here yet.\n")
		return b.String()
	}

	for i, v := range snap.VentLogs {
		if i >= 5 {
			break
		}
		b.WriteString(dimStyle.Render(v.CreatedAt.Format("Jan 2 15:04")))
		if v.Mood != "" {
			b.WriteString(dimStyle.Render("  [" + v.Mood + "]"))
		}
		b.WriteString("\n  " + v.Content + "\n")
		if v.Feedback != "" {
			b.WriteString("  " + quoteStyle.Render(v.Feedback) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
