package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/omarhani/rafiq/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	// Automatic backup on startup, before anything can overwrite local state.
	if _, err := ctx.Backups.Create(); err != nil {
		ctx.Log.Warn("automatic backup failed", "error", err)
	}

	if ctx.Engine != nil && ctx.Session.Active() {
		reqCtx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		if err := ctx.Engine.Pull(reqCtx); err != nil {
			ctx.Log.Warn("startup pull failed, continuing with local state", "error", err)
		}
		cancel()

		ctx.Engine.Start()
		defer ctx.Engine.Stop()
	}

	p := tea.NewProgram(tui.NewModel(ctx.Store, ctx.Engine, ctx.Session, ctx.Wisdom), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}

	if err := ctx.Store.SaveNow(); err != nil {
		return err
	}
	ctx.syncAfterMutation()
	return nil
}
