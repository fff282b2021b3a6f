package system

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/steadhq/stead/internal/cli"
	"github.com/steadhq/stead/internal/migration"
	"github.com/steadhq/stead/internal/storage/postgres"
	"github.com/steadhq/stead/internal/storage/sqlite"
	"github.com/steadhq/stead/migrations"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	// Load the database
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	// Each driver ships its own migration directory
	var db *sql.DB
	var dialect string
	switch store := ctx.Store.(type) {
	case *sqlite.Store:
		db = store.GetDB()
		dialect = "sqlite"
	case *postgres.Store:
		db = store.GetDB()
		dialect = "postgres"
	default:
		return fmt.Errorf("migrate command does not support this storage driver")
	}

	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, dialect)
	if err != nil {
		return fmt.Errorf("failed to open migration directory: %w", err)
	}

	// Create migration runner
	runner := migration.NewRunner(db, subFS)

	// Apply migrations
	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})

	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}
