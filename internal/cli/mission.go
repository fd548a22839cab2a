package cli

import (
	"fmt"
	"time"

	"github.com/omarhani/rafiq/internal/models"
	"github.com/omarhani/rafiq/internal/plan"
	"github.com/omarhani/rafiq/internal/reducer"
)

type MissionCmd struct {
	List   MissionListCmd   `cmd:"" help:"List missions, optionally for one subject."`
	Toggle MissionToggleCmd `cmd:"" help:"Toggle a mission's completion state."`
	Edit   MissionEditCmd   `cmd:"" help:"Edit a mission's fields."`
	Show   MissionShowCmd   `cmd:"" help:"Show a mission's full details."`
}

type MissionListCmd struct {
	Subject string `arg:"" optional:"" help:"Subject ID (english|arabic|chemistry|physics|math)."`
	Pending bool   `short:"p" help:"Show only incomplete missions."`
}

func (c *MissionListCmd) Run(ctx *Context) error {
	snap := ctx.Store.Read()

	if c.Subject != "" && plan.FindSubject(snap.Plan, c.Subject) < 0 {
		return fmt.Errorf("unknown subject: %s", c.Subject)
	}

	for _, subj := range snap.Plan {
		if c.Subject != "" && subj.ID != c.Subject {
			continue
		}
		fmt.Printf("%s %s\n", subj.Icon, subj.Name)
		for _, m := range subj.AllMissions() {
			done := snap.CompletedMissions[m.ID]
			if c.Pending && done {
				continue
			}
			mark := " "
			if done {
				mark = "x"
			}
			fmt.Printf("  [%s] %-12s %s\n", mark, m.ID, m.Title)
		}
	}
	return nil
}

type MissionToggleCmd struct {
	ID string `arg:"" help:"Mission ID, e.g. ch-m3."`
}

func (c *MissionToggleCmd) Run(ctx *Context) error {
	snap := ctx.Store.Read()
	m, _, ok := plan.FindMission(snap.Plan, c.ID)
	if !ok {
		return fmt.Errorf("unknown mission: %s", c.ID)
	}

	ctx.Store.Mutate(func(s models.Snapshot) models.Snapshot {
		return reducer.ToggleMission(s, c.ID, time.Now())
	})
	if err := ctx.Store.SaveNow(); err != nil {
		return err
	}

	if ctx.Store.Read().CompletedMissions[c.ID] {
		fmt.Printf("Mission accomplished: %s\n", m.Title)
	} else {
		fmt.Printf("Mission reopened: %s\n", m.Title)
	}

	ctx.syncAfterMutation()
	return nil
}

type MissionEditCmd struct {
	ID        string `arg:"" help:"Mission ID."`
	Title     string `short:"t" help:"New title."`
	Content   string `short:"c" help:"New content."`
	Duration  string `short:"d" help:"New duration, e.g. '45 min'."`
	Method    string `short:"m" help:"New study method."`
	Outcome   string `short:"o" help:"New expected outcome."`
	Priority  int    `short:"p" help:"New priority (1-5, lower is higher priority)." default:"-1"`
	Deadline  string `help:"New deadline (YYYY-MM-DD)."`
	Notebook  string `help:"New notebook link."`
	Questions string `help:"New question-bank link."`
}

func (c *MissionEditCmd) Validate() error {
	if c.Priority != -1 && (c.Priority < 1 || c.Priority > 5) {
		return fmt.Errorf("priority must be between 1 and 5")
	}
	return nil
}

func (c *MissionEditCmd) Run(ctx *Context) error {
	snap := ctx.Store.Read()
	existing, subjectID, ok := plan.FindMission(snap.Plan, c.ID)
	if !ok {
		return fmt.Errorf("unknown mission: %s", c.ID)
	}

	patch := reducer.MissionPatch{}
	changed := false
	set := func(dst **string, v string) {
		if v != "" {
			*dst = &v
			changed = true
		}
	}
	set(&patch.Title, c.Title)
	set(&patch.Content, c.Content)
	set(&patch.Duration, c.Duration)
	set(&patch.Method, c.Method)
	set(&patch.Outcome, c.Outcome)
	set(&patch.Deadline, c.Deadline)
	if c.Priority != -1 {
		patch.Priority = &c.Priority
		changed = true
	}
	if c.Notebook != "" || c.Questions != "" {
		links := models.MissionLinks{}
		if existing.Links != nil {
			links = *existing.Links
		}
		if c.Notebook != "" {
			links.Notebook = c.Notebook
		}
		if c.Questions != "" {
			links.Questions = c.Questions
		}
		patch.Links = &links
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to change, pass at least one field flag")
	}

	ctx.Store.Mutate(func(s models.Snapshot) models.Snapshot {
		return reducer.UpdateMission(s, subjectID, c.ID, patch)
	})
	if err := ctx.Store.SaveNow(); err != nil {
		return err
	}

	fmt.Printf("Updated mission %s\n", c.ID)
	ctx.syncAfterMutation()
	return nil
}

type MissionShowCmd struct {
	ID string `arg:"" help:"Mission ID."`
}

func (c *MissionShowCmd) Run(ctx *Context) error {
	snap := ctx.Store.Read()
	m, subjectID, ok := plan.FindMission(snap.Plan, c.ID)
	if !ok {
		return fmt.Errorf("unknown mission: %s", c.ID)
	}
	subj := snap.Plan[plan.FindSubject(snap.Plan, subjectID)]

	fmt.Printf("%s (%s %s)\n", m.Title, subj.Icon, subj.Name)
	fmt.Printf("  ID:       %s\n", m.ID)
	if m.Content != "" {
		fmt.Printf("  Content:  %s\n", m.Content)
	}
	if m.Duration != "" {
		fmt.Printf("  Duration: %s\n", m.Duration)
	}
	if m.Method != "" {
		fmt.Printf("  Method:   %s\n", m.Method)
	}
	if m.Outcome != "" {
		fmt.Printf("  Outcome:  %s\n", m.Outcome)
	}
	if m.Priority > 0 {
		fmt.Printf("  Priority: %d\n", m.Priority)
	}
	if m.Deadline != "" {
		fmt.Printf("  Deadline: %s\n", m.Deadline)
	}
	if m.Links != nil {
		if m.Links.Notebook != "" {
			fmt.Printf("  Notebook:  %s\n", m.Links.Notebook)
		}
		if m.Links.Questions != "" {
			fmt.Printf("  Questions: %s\n", m.Links.Questions)
		}
	}
	status := "pending"
	if snap.CompletedMissions[m.ID] {
		status = "completed"
	}
	fmt.Printf("  Status:   %s\n", status)
	return nil
}
