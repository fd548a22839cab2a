package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/omarhani/rafiq/internal/backup"
	"github.com/omarhani/rafiq/internal/cli"
	"github.com/omarhani/rafiq/internal/cloud"
	"github.com/omarhani/rafiq/internal/config"
	"github.com/omarhani/rafiq/internal/identity"
	"github.com/omarhani/rafiq/internal/logger"
	"github.com/omarhani/rafiq/internal/store"
	"github.com/omarhani/rafiq/internal/syncer"
	"github.com/omarhani/rafiq/internal/wisdom"
)

var CLI struct {
	Version kong.VersionFlag

	Init     cli.InitCmd     `cmd:"" help:"Initialize rafiq storage with the seeded study plan."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Status   cli.StatusCmd   `cmd:"" help:"Show progress and today's focus."`
	Mission  cli.MissionCmd  `cmd:"" help:"Manage missions."`
	Subject  cli.SubjectCmd  `cmd:"" help:"Manage subjects."`
	Wish     cli.WishCmd     `cmd:"" help:"Manage weekly wishes."`
	Vent     cli.VentCmd     `cmd:"" help:"Write and review vent entries."`
	Timeline cli.TimelineCmd `cmd:"" help:"Show the activity timeline."`
	Wisdom   cli.WisdomCmd   `cmd:"" help:"Show the daily wisdom quote."`
	User     cli.UserCmd     `cmd:"" help:"Switch and inspect profiles."`
	Sync     cli.SyncCmd     `cmd:"" help:"Cloud sync operations."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage snapshot backups."`
	Keyring  cli.KeyringCmd  `cmd:"" help:"Manage cloud credentials in the OS keyring."`
	Validate cli.ValidateCmd `cmd:"" help:"Check the snapshot for structural conflicts."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("rafiq"),
		kong.Description("Study planning companion with local-first cloud sync"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	st := store.New(cfg.SnapshotPath, log)
	if err := st.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	session := identity.NewSession()
	if name := st.Read().UserName; name != "" {
		session.Set(name)
	}

	backups := backup.NewManager(cfg.SnapshotPath)

	var engine *syncer.Engine
	remote, err := openCloud(cfg, log)
	if err != nil {
		log.Warn("cloud backend unavailable, staying offline", "backend", cfg.CloudBackend, "error", err)
	} else if remote != nil {
		defer remote.Close()
		engine = syncer.New(st, remote, session, backups, log)
	}

	appCtx := &cli.Context{
		Config:  cfg,
		Store:   st,
		Session: session,
		Engine:  engine,
		Backups: backups,
		Wisdom:  wisdom.NewClient(cfg.OpenAIKey, cfg.OpenAIModel, log),
		Log:     log,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openCloud(cfg config.Config, log *logger.Logger) (cloud.Store, error) {
	switch cfg.CloudBackend {
	case "":
		return nil, nil
	case "postgres":
		return cloud.NewPostgresStore(cfg.PostgresDSN, log)
	case "sqlite":
		return cloud.NewSQLiteStore(cfg.SQLitePath, log)
	default:
		return nil, fmt.Errorf("unknown cloud backend %q", cfg.CloudBackend)
	}
}
