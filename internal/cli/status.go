package cli

import (
	"fmt"
	"time"

	"github.com/omarhani/rafiq/internal/plan"
	"github.com/omarhani/rafiq/internal/schedule"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	snap := ctx.Store.Read()

	if ctx.Session.Active() {
		fmt.Printf("User: %s\n", ctx.Session.Name())
	} else {
		fmt.Println("User: (not connected)")
	}

	total := plan.TotalProgress(snap.Plan, snap.CompletedMissions)
	fmt.Printf("Overall %s %3.0f%%\n\n", progressBar(total, 24), total)

	for _, subj := range snap.Plan {
		fmt.Println("  " + formatSubjectLine(subj, snap.CompletedMissions))
	}

	focus := schedule.FocusForDay(snap.Plan, snap.CompletedMissions, time.Now().Weekday())
	if len(focus) > 0 {
		fmt.Println("\nToday's focus:")
		for _, f := range focus {
			marker := ""
			if f.HasLesson {
				marker = " (lesson today)"
			}
			fmt.Printf("  %s %s%s\n", f.Subject.Icon, f.Subject.Name, marker)
		}
	}

	if ctx.Engine != nil {
		fmt.Printf("\nSync: %s\n", ctx.Engine.State())
	}
	return nil
}
