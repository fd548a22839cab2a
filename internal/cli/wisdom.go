package cli

import (
	"context"
	"fmt"
)

type WisdomCmd struct{}

func (c *WisdomCmd) Run(ctx *Context) error {
	reqCtx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()

	w := ctx.Wisdom.DailyWisdom(reqCtx)
	fmt.Printf("“%s”\n", w.Content)
	fmt.Printf("   — %s (%s)\n", w.Source, w.Category)
	return nil
}
