package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/omarhani/rafiq/internal/identity"
)

type SyncCmd struct {
	Now        SyncNowCmd        `cmd:"" help:"Push the local snapshot to the cloud immediately."`
	Pull       SyncPullCmd       `cmd:"" help:"Replace local state with the cloud snapshot."`
	Connect    SyncConnectCmd    `cmd:"" help:"Sign in as a profile and adopt its cloud state."`
	Status     SyncStatusCmd     `cmd:"" default:"withargs" help:"Show sync configuration and state."`
	Disconnect SyncDisconnectCmd `cmd:"" help:"Disconnect from the cloud and keep working locally."`
}

type SyncNowCmd struct{}

func (c *SyncNowCmd) Run(ctx *Context) error {
	engine, err := ctx.requireEngine()
	if err != nil {
		return err
	}
	reqCtx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()
	if err := engine.SyncNow(reqCtx); err != nil {
		return err
	}
	fmt.Println("Synced.")
	return nil
}

type SyncPullCmd struct{}

func (c *SyncPullCmd) Run(ctx *Context) error {
	engine, err := ctx.requireEngine()
	if err != nil {
		return err
	}
	reqCtx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()
	if err := engine.Pull(reqCtx); err != nil {
		return err
	}
	if err := ctx.Store.SaveNow(); err != nil {
		return err
	}
	fmt.Println("Pulled cloud snapshot. A backup of the previous local state was kept.")
	return nil
}

// SyncConnectCmd adopts the profile's remote state wholesale. Unlike
// 'user switch' it does not carry the current plan across.
type SyncConnectCmd struct {
	Name string `arg:"" help:"Profile name."`
	PIN  string `help:"Entry PIN." default:""`
}

func (c *SyncConnectCmd) Run(ctx *Context) error {
	engine, err := ctx.requireEngine()
	if err != nil {
		return err
	}
	name := strings.TrimSpace(c.Name)
	if !identity.KnownProfile(name) {
		return fmt.Errorf("unknown profile %q, known: %s", name, strings.Join(identity.Profiles, ", "))
	}
	if !identity.CheckPIN(c.PIN) {
		return fmt.Errorf("wrong PIN")
	}
	reqCtx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()
	if err := engine.Connect(reqCtx, name); err != nil {
		fmt.Printf("Note: cloud pull failed (%v); continuing with local state.\n", err)
	}
	if err := ctx.Store.SaveNow(); err != nil {
		return err
	}
	fmt.Printf("Connected as %s.\n", name)
	return nil
}

type SyncStatusCmd struct{}

func (c *SyncStatusCmd) Run(ctx *Context) error {
	if ctx.Engine == nil {
		fmt.Println("Cloud sync: not configured (set RAFIQ_CLOUD_BACKEND)")
		return nil
	}
	fmt.Printf("Backend: %s\n", ctx.Config.CloudBackend)
	if ctx.Session.Active() {
		fmt.Printf("User:    %s (key %s)\n", ctx.Session.Name(), ctx.Session.Key())
	} else {
		fmt.Println("User:    not connected")
	}
	fmt.Printf("State:   %s\n", ctx.Engine.State())
	return nil
}

type SyncDisconnectCmd struct{}

func (c *SyncDisconnectCmd) Run(ctx *Context) error {
	engine, err := ctx.requireEngine()
	if err != nil {
		return err
	}
	if err := engine.Connect(context.Background(), ""); err != nil {
		return err
	}
	if err := ctx.Store.SaveNow(); err != nil {
		return err
	}
	fmt.Println("Disconnected. Changes stay on this machine until you connect again.")
	return nil
}
