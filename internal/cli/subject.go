package cli

import (
	"fmt"
	"strings"

	"github.com/omarhani/rafiq/internal/models"
	"github.com/omarhani/rafiq/internal/plan"
	"github.com/omarhani/rafiq/internal/reducer"
)

type SubjectCmd struct {
	List SubjectListCmd `cmd:"" help:"List subjects with progress."`
	Edit SubjectEditCmd `cmd:"" help:"Edit a subject's fields."`
}

type SubjectListCmd struct{}

func (c *SubjectListCmd) Run(ctx *Context) error {
	snap := ctx.Store.Read()
	for _, subj := range snap.Plan {
		fmt.Println(formatSubjectLine(subj, snap.CompletedMissions))
		if len(subj.LessonDays) > 0 {
			fmt.Printf("     lessons: %s\n", strings.Join(subj.LessonDays, ", "))
		}
	}
	return nil
}

type SubjectEditCmd struct {
	ID            string `arg:"" help:"Subject ID."`
	Name          string `short:"n" help:"New display name."`
	Icon          string `short:"i" help:"New icon."`
	LessonDays    string `short:"l" help:"Comma-separated lesson days, e.g. 'Saturday,Tuesday'."`
	ScheduleImage string `help:"New schedule image path."`
}

func (c *SubjectEditCmd) Run(ctx *Context) error {
	snap := ctx.Store.Read()
	if plan.FindSubject(snap.Plan, c.ID) < 0 {
		return fmt.Errorf("unknown subject: %s", c.ID)
	}

	patch := reducer.SubjectPatch{}
	changed := false
	if c.Name != "" {
		patch.Name = &c.Name
		changed = true
	}
	if c.Icon != "" {
		patch.Icon = &c.Icon
		changed = true
	}
	if c.ScheduleImage != "" {
		patch.ScheduleImage = &c.ScheduleImage
		changed = true
	}
	if c.LessonDays != "" {
		days := strings.Split(c.LessonDays, ",")
		for i := range days {
			days[i] = strings.TrimSpace(days[i])
		}
		patch.LessonDays = &days
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to change, pass at least one field flag")
	}

	ctx.Store.Mutate(func(s models.Snapshot) models.Snapshot {
		return reducer.UpdateSubject(s, c.ID, patch)
	})
	if err := ctx.Store.SaveNow(); err != nil {
		return err
	}

	fmt.Printf("Updated subject %s\n", c.ID)
	ctx.syncAfterMutation()
	return nil
}
