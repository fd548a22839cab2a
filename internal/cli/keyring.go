package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/omarhani/rafiq/internal/credentials"
)

type KeyringCmd struct {
	Set   KeyringSetCmd   `cmd:"" help:"Store the cloud connection string in the OS keyring."`
	Show  KeyringShowCmd  `cmd:"" help:"Show where the cloud connection string comes from."`
	Clear KeyringClearCmd `cmd:"" help:"Remove the stored connection string."`
}

type KeyringSetCmd struct {
	DSN string `arg:"" help:"PostgreSQL connection string."`
}

func (c *KeyringSetCmd) Run(ctx *Context) error {
	if !strings.HasPrefix(c.DSN, "postgres://") &&
		!strings.HasPrefix(c.DSN, "postgresql://") &&
		!strings.Contains(c.DSN, "host=") {
		return errors.New("expected a PostgreSQL connection string")
	}
	if err := credentials.Store(c.DSN); err != nil {
		return err
	}
	fmt.Println("✓ Connection string stored in the OS keyring")
	return nil
}

type KeyringShowCmd struct{}

func (c *KeyringShowCmd) Run(ctx *Context) error {
	_, err := credentials.DSN()
	switch {
	case err == nil:
		fmt.Println("Cloud connection string: stored in the OS keyring")
	case errors.Is(err, credentials.ErrNotFound):
		fmt.Println("Cloud connection string: not in the keyring (env vars apply)")
	default:
		return err
	}
	return nil
}

type KeyringClearCmd struct{}

func (c *KeyringClearCmd) Run(ctx *Context) error {
	if err := credentials.Clear(); err != nil {
		if errors.Is(err, credentials.ErrNotFound) {
			fmt.Println("Nothing stored.")
			return nil
		}
		return err
	}
	fmt.Println("✓ Connection string removed from the OS keyring")
	return nil
}
