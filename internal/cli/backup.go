package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a backup of the local snapshot."`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore the snapshot from a backup."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	if err := ctx.Store.SaveNow(); err != nil {
		return err
	}

	backupPath, err := ctx.Backups.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	backups, err := ctx.Backups.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found")
		return nil
	}

	fmt.Println("Backups (newest first):")
	for _, b := range backups {
		fmt.Printf("  %s  %s  %d bytes\n",
			b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Name string `arg:"" optional:"" help:"Backup file name. Defaults to the newest backup."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	backups, err := ctx.Backups.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups to restore from")
	}

	target := backups[0].Path
	if c.Name != "" {
		target = ""
		for _, b := range backups {
			if filepath.Base(b.Path) == c.Name {
				target = b.Path
				break
			}
		}
		if target == "" {
			return fmt.Errorf("no backup named %s", c.Name)
		}
	}

	if !c.Yes {
		fmt.Printf("Restore %s over the current snapshot? [y/N] ", filepath.Base(target))
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.TrimSpace(strings.ToLower(answer)) != "y" {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := ctx.Backups.Restore(target); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("restored blob failed to load: %w", err)
	}

	fmt.Printf("✓ Restored from %s\n", filepath.Base(target))
	fmt.Println("A pre-restore backup of the replaced snapshot was kept.")
	return nil
}
