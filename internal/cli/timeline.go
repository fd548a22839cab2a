package cli

import (
	"fmt"

	"github.com/omarhani/rafiq/internal/models"
)

type TimelineCmd struct {
	Limit int `short:"n" help:"Show at most this many events." default:"20"`
}

func (c *TimelineCmd) Run(ctx *Context) error {
	snap := ctx.Store.Read()
	if len(snap.Timeline) == 0 {
		fmt.Println("No activity yet")
		return nil
	}

	shown := 0
	for _, ev := range snap.Timeline {
		if c.Limit > 0 && shown >= c.Limit {
			break
		}
		fmt.Printf("%s  %-8s %s\n", ev.CreatedAt.Format("Jan 2 15:04"), eventLabel(ev.Type), ev.Title)
		shown++
	}
	return nil
}

func eventLabel(t models.TimelineEventType) string {
	switch t {
	case models.TimelineEventMission:
		return "mission"
	case models.TimelineEventVent:
		return "vent"
	case models.TimelineEventWish:
		return "wish"
	}
	return string(t)
}
