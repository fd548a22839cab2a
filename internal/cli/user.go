package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/omarhani/rafiq/internal/identity"
)

type UserCmd struct {
	Switch UserSwitchCmd `cmd:"" help:"Switch to another profile, carrying the current plan across."`
	Whoami UserWhoamiCmd `cmd:"" help:"Show the active profile."`
	List   UserListCmd   `cmd:"" help:"List known profiles."`
}

type UserSwitchCmd struct {
	Name string `arg:"" help:"Profile name."`
	PIN  string `help:"Entry PIN." default:""`
}

func (c *UserSwitchCmd) Run(ctx *Context) error {
	name := strings.TrimSpace(c.Name)
	if !identity.KnownProfile(name) {
		return fmt.Errorf("unknown profile %q, known: %s", name, strings.Join(identity.Profiles, ", "))
	}
	if !identity.CheckPIN(c.PIN) {
		return fmt.Errorf("wrong PIN")
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()

	if ctx.Engine != nil && ctx.Session.Active() {
		// Full switch: keep the plan, adopt the target's own progress.
		if err := ctx.Engine.SwitchUser(reqCtx, name); err != nil {
			return err
		}
	} else if ctx.Engine != nil {
		if err := ctx.Engine.Connect(reqCtx, name); err != nil {
			fmt.Printf("Note: cloud pull failed (%v); continuing with local state.\n", err)
		}
	} else {
		ctx.Session.Set(name)
		snap := ctx.Store.Read()
		snap.UserName = name
		ctx.Store.Replace(snap)
	}

	if err := ctx.Store.SaveNow(); err != nil {
		return err
	}
	fmt.Printf("Welcome, %s.\n", name)
	return nil
}

type UserWhoamiCmd struct{}

func (c *UserWhoamiCmd) Run(ctx *Context) error {
	if !ctx.Session.Active() {
		fmt.Println("Not connected. Use 'rafiq user switch <name>' to sign in.")
		return nil
	}
	fmt.Printf("%s (storage key %s)\n", ctx.Session.Name(), ctx.Session.Key())
	return nil
}

type UserListCmd struct{}

func (c *UserListCmd) Run(ctx *Context) error {
	active := ctx.Session.Name()
	for _, p := range identity.Profiles {
		mark := " "
		if p == active {
			mark = "*"
		}
		fmt.Printf("%s %s\n", mark, p)
	}
	return nil
}
