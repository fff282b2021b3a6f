package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/steadhq/stead/internal/accountability"
	"github.com/steadhq/stead/internal/cli"
	"github.com/steadhq/stead/internal/cli/backups"
	"github.com/steadhq/stead/internal/cli/settings"
	"github.com/steadhq/stead/internal/cli/system"
	"github.com/steadhq/stead/internal/config"
	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/discipline"
	"github.com/steadhq/stead/internal/errors"
	"github.com/steadhq/stead/internal/keyring"
	"github.com/steadhq/stead/internal/logger"
	"github.com/steadhq/stead/internal/storage"
	"github.com/steadhq/stead/internal/storage/postgres"
	"github.com/steadhq/stead/internal/storage/sqlite"
	"github.com/steadhq/stead/internal/summary"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool   `help:"Enable debug logging."`
	Db      string `help:"SQLite database path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use environment variables, .pgpass, or the OS keyring instead." type:"string"`

	Init    system.InitCmd    `cmd:"" help:"Initialize stead storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage the OS keyring entry for PostgreSQL."`
	Area       cli.AreaCmd       `cmd:"" help:"Manage focus areas."`
	Session    cli.SessionCmd    `cmd:"" help:"Track deep work sessions."`
	Goal       cli.GoalCmd       `cmd:"" help:"Manage goals across horizons."`
	Discipline cli.DisciplineCmd `cmd:"" help:"Manage disciplines and check-ins."`
	Journal    cli.JournalCmd    `cmd:"" help:"Write and review daily reflections."`
	Partner    cli.PartnerCmd    `cmd:"" help:"Accountability partner check-ins."`
	Stats      cli.StatsCmd      `cmd:"" help:"Show an overview across goals, sessions, and reflections."`
	Backup     struct {
		Run     backups.BackupRunCmd     `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Settings   settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	VersionCmd system.VersionCmd    `cmd:"" name:"version" help:"Print the stead version."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("stead"),
		kong.Description("Personal goal tracking and discipline companion"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if configDir, err := config.Dir(); err == nil {
		if err := logger.Init(logger.Config{
			Debug:     CLI.Debug || cfg.Debug,
			ConfigDir: configDir,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
		}
	}

	store, err := openStore(cfg)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:       store,
		Disciplines: discipline.NewService(store),
		Reporter:    accountability.NewReporter(store),
		Summary:     summary.NewService(store),
	}

	// Load the store before running the command (init handles its own loading)
	if ctx.Selected() != nil {
		name := ctx.Selected().Name
		if name != "init" && name != "version" {
			if err := store.Load(); err != nil {
				errors.Fatal(err)
			}
		}
	}

	errors.Fatal(ctx.Run(appCtx))
}

// openStore picks the storage driver: an explicit --db value wins, then a
// keyring-held PostgreSQL connection string, then the sqlite database from
// the config file or default location.
func openStore(cfg config.Config) (storage.Provider, error) {
	target := CLI.Db
	fromKeyring := false
	if target == "" {
		if connStr, err := keyring.GetConnectionString(); err == nil && connStr != "" {
			target = connStr
			fromKeyring = true
		}
	}

	if strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://") {
		if _, err := postgres.ValidateConnString(target); err != nil {
			if !stderrors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, err
			}
			// Embedded passwords are allowed from the keyring but never
			// from --db.
			if !fromKeyring {
				fmt.Fprintf(os.Stderr, "❌ Error: PostgreSQL connection strings with embedded credentials are NOT allowed.\n")
				fmt.Fprintf(os.Stderr, "       Use one of these secure alternatives:\n")
				fmt.Fprintf(os.Stderr, "       1. OS keyring:    stead keyring set \"postgresql://user@host:5432/stead\"\n")
				fmt.Fprintf(os.Stderr, "       2. Environment:   export PGPASSWORD=yourpassword\n")
				fmt.Fprintf(os.Stderr, "       3. .pgpass file:  use a connection string without a password\n")
				os.Exit(1)
			}
		}
		return postgres.New(target), nil
	}

	if target == "" {
		dbPath, err := cfg.DatabasePath()
		if err != nil {
			return nil, err
		}
		target = dbPath
	}

	return sqlite.NewStore(expandHome(target)), nil
}

// expandHome resolves a leading ~/ in a database path; the db flag must stay
// a plain string so it can carry connection strings, which keeps kong's
// type:"path" expansion out of play.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
