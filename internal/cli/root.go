package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/omarhani/rafiq/internal/backup"
	"github.com/omarhani/rafiq/internal/config"
	"github.com/omarhani/rafiq/internal/identity"
	"github.com/omarhani/rafiq/internal/logger"
	"github.com/omarhani/rafiq/internal/models"
	"github.com/omarhani/rafiq/internal/plan"
	"github.com/omarhani/rafiq/internal/store"
	"github.com/omarhani/rafiq/internal/syncer"
	"github.com/omarhani/rafiq/internal/wisdom"
)

// Context carries the wired application into every command.
type Context struct {
	Config  config.Config
	Store   *store.Store
	Session *identity.Session
	Engine  *syncer.Engine
	Backups *backup.Manager
	Wisdom  *wisdom.Client
	Log     *logger.Logger
}

const remoteTimeout = 10 * time.Second

// requireEngine guards commands that need a configured cloud backend.
func (c *Context) requireEngine() (*syncer.Engine, error) {
	if c.Engine == nil {
		return nil, fmt.Errorf("no cloud backend configured, set RAFIQ_CLOUD_BACKEND to postgres or sqlite")
	}
	return c.Engine, nil
}

// syncAfterMutation pushes the snapshot for one-shot commands. Long-lived
// sessions (the TUI) rely on the engine's debounced background push instead;
// a process about to exit cannot.
func (c *Context) syncAfterMutation() {
	if c.Engine == nil || !c.Session.Active() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()
	if err := c.Engine.SyncNow(ctx); err != nil {
		// Best-effort, mirrors the background push policy.
		fmt.Printf("Note: cloud sync failed (%v); changes are saved locally.\n", err)
	}
}

func progressBar(percent float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func formatSubjectLine(subj models.Subject, completed map[string]bool) string {
	pct := plan.SubjectProgress(subj, completed)
	return fmt.Sprintf("%s %-18s %s %3.0f%%", subj.Icon, subj.Name, progressBar(pct, 20), pct)
}
