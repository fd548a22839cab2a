package cli

import (
	"fmt"

	"github.com/omarhani/rafiq/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	snap := ctx.Store.Read()

	fmt.Println("Validating snapshot...")
	result := validation.New().ValidateSnapshot(snap)

	fmt.Println()
	if !result.HasConflicts() {
		fmt.Println("✓ No conflicts found")
		return nil
	}

	fmt.Printf("Found %d conflict(s):\n", len(result.Conflicts))
	for _, c := range result.Conflicts {
		fmt.Printf("  [%s] %s\n", c.Type, c.Message)
	}
	// Conflicts are reported, not fatal. The store stays usable.
	return nil
}
