package cli

import (
	"fmt"

	"github.com/omarhani/rafiq/internal/plan"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.SaveNow(); err != nil {
		return err
	}
	snap := ctx.Store.Read()
	fmt.Printf("Initialized rafiq storage at: %s\n", ctx.Store.Path())
	fmt.Printf("Plan: %d subjects, %d missions\n", len(snap.Plan), len(plan.AllMissionIDs(snap.Plan)))
	return nil
}
