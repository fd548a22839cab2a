package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/omarhani/rafiq/internal/models"
	"github.com/omarhani/rafiq/internal/reducer"
)

type WishCmd struct {
	Add    WishAddCmd    `cmd:"" help:"Add a wish for the week."`
	Toggle WishToggleCmd `cmd:"" help:"Toggle a wish's completion state."`
	List   WishListCmd   `cmd:"" help:"List wishes."`
}

type WishAddCmd struct {
	Text []string `arg:"" help:"The wish text."`
}

func (c *WishAddCmd) Run(ctx *Context) error {
	text := strings.TrimSpace(strings.Join(c.Text, " "))
	if text == "" {
		return fmt.Errorf("wish text cannot be empty")
	}

	ctx.Store.MutateImmediate(func(s models.Snapshot) models.Snapshot {
		return reducer.AddWish(s, text, time.Now())
	})
	if err := ctx.Store.SaveNow(); err != nil {
		return err
	}

	fmt.Printf("Wish added: %s\n", text)
	ctx.syncAfterMutation()
	return nil
}

type WishToggleCmd struct {
	ID string `arg:"" help:"Wish ID, or a unique prefix of one."`
}

func (c *WishToggleCmd) Run(ctx *Context) error {
	snap := ctx.Store.Read()
	id, err := resolveWishID(snap.Wishes, c.ID)
	if err != nil {
		return err
	}

	ctx.Store.MutateImmediate(func(s models.Snapshot) models.Snapshot {
		return reducer.ToggleWish(s, id)
	})
	if err := ctx.Store.SaveNow(); err != nil {
		return err
	}

	fmt.Printf("Toggled wish %s\n", id)
	ctx.syncAfterMutation()
	return nil
}

// resolveWishID accepts a full id or a unique prefix, since wish ids are
// generated UUIDs nobody wants to type out.
func resolveWishID(wishes []models.Wish, prefix string) (string, error) {
	var match string
	for _, w := range wishes {
		if !strings.HasPrefix(w.ID, prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("wish id prefix %q is ambiguous", prefix)
		}
		match = w.ID
	}
	if match == "" {
		return "", fmt.Errorf("no wish matches %q", prefix)
	}
	return match, nil
}

type WishListCmd struct {
	Pending bool `short:"p" help:"Show only incomplete wishes."`
}

func (c *WishListCmd) Run(ctx *Context) error {
	snap := ctx.Store.Read()
	if len(snap.Wishes) == 0 {
		fmt.Println("No wishes yet")
		return nil
	}

	for _, w := range snap.Wishes {
		if c.Pending && w.Completed {
			continue
		}
		mark := " "
		if w.Completed {
			mark = "x"
		}
		fmt.Printf("[%s] %s  %s (%s)\n", mark, w.ID[:8], w.Text, w.CreatedAt.Format("Jan 2"))
	}
	return nil
}
