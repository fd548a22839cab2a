package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/omarhani/rafiq/internal/models"
	"github.com/omarhani/rafiq/internal/reducer"
)

type VentCmd struct {
	Add  VentAddCmd  `cmd:"" help:"Write a vent entry and get supportive feedback."`
	List VentListCmd `cmd:"" help:"List past vent entries."`
}

type VentAddCmd struct {
	Text []string `arg:"" help:"What's on your mind."`
}

func (c *VentAddCmd) Run(ctx *Context) error {
	text := strings.TrimSpace(strings.Join(c.Text, " "))
	if text == "" {
		return fmt.Errorf("vent text cannot be empty")
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()
	analysis := ctx.Wisdom.AnalyzeVent(reqCtx, text)

	ctx.Store.MutateImmediate(func(s models.Snapshot) models.Snapshot {
		return reducer.AddVent(s, text, analysis.Mood, analysis.Feedback, analysis.SentimentScore, time.Now())
	})
	if err := ctx.Store.SaveNow(); err != nil {
		return err
	}

	fmt.Println("Saved.")
	fmt.Println()
	fmt.Println(analysis.Feedback)

	ctx.syncAfterMutation()
	return nil
}

type VentListCmd struct {
	Limit int `short:"n" help:"Show at most this many entries." default:"10"`
}

func (c *VentListCmd) Run(ctx *Context) error {
	snap := ctx.Store.Read()
	if len(snap.VentLogs) == 0 {
		fmt.Println("No vent entries yet")
		return nil
	}

	shown := 0
	for _, v := range snap.VentLogs {
		if c.Limit > 0 && shown >= c.Limit {
			break
		}
		fmt.Printf("%s", v.CreatedAt.Format("Jan 2 15:04"))
		if v.Mood != "" {
			fmt.Printf("  [%s]", v.Mood)
		}
		fmt.Println()
		fmt.Printf("  %s\n", v.Content)
		if v.Feedback != "" {
			fmt.Printf("  → %s\n", v.Feedback)
		}
		fmt.Println()
		shown++
	}
	return nil
}
