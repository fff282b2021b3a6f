package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/steadhq/stead/internal/cli"
	"github.com/steadhq/stead/internal/storage"
	"github.com/steadhq/stead/internal/storage/postgres"
	"github.com/steadhq/stead/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			// Normalize paths to absolute for accurate comparison
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Database exists, close it first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			// Then delete it
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			// Some other error occurred while checking the database; surface it to the user
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	// Initialize destination store
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized stead storage at: %s\n", ctx.Store.GetConfigPath())

	// If source is provided, migrate data
	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	// Determine source store type and instantiate it
	var sourceStore storage.Provider
	if strings.HasPrefix(sourcePath, "postgres://") || strings.HasPrefix(sourcePath, "postgresql://") {
		// Validate source connection string for embedded credentials
		if valid, err := postgres.ValidateConnString(sourcePath); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
		sourceStore = postgres.New(sourcePath)
	} else {
		// Default to SQLite for file paths
		sourceStore = sqlite.NewStore(sourcePath)
	}

	// Load the source store
	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	// Migrate Settings
	fmt.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	// Migrate Focus Areas
	fmt.Println("  Migrating focus areas...")
	areas, err := sourceStore.GetAllAreas(true, true)
	if err != nil {
		return fmt.Errorf("failed to get focus areas from source: %w", err)
	}
	for _, area := range areas {
		if err := ctx.Store.AddArea(area); err != nil {
			return fmt.Errorf("failed to add focus area %s: %w", area.ID, err)
		}
	}
	fmt.Printf("    Migrated %d focus areas\n", len(areas))

	// Migrate Sessions
	fmt.Println("  Migrating sessions...")
	sessions, err := sourceStore.GetAllSessions()
	if err != nil {
		return fmt.Errorf("failed to get sessions from source: %w", err)
	}
	for _, session := range sessions {
		if err := ctx.Store.AddSession(session); err != nil {
			return fmt.Errorf("failed to add session %s: %w", session.ID, err)
		}
	}
	fmt.Printf("    Migrated %d sessions\n", len(sessions))

	// Migrate Goals
	fmt.Println("  Migrating goals...")
	goals, err := sourceStore.GetAllGoals(true)
	if err != nil {
		return fmt.Errorf("failed to get goals from source: %w", err)
	}
	for _, goal := range goals {
		if err := ctx.Store.AddGoal(goal); err != nil {
			return fmt.Errorf("failed to add goal %s: %w", goal.ID, err)
		}
	}
	fmt.Printf("    Migrated %d goals\n", len(goals))

	// Migrate Disciplines
	fmt.Println("  Migrating disciplines...")
	disciplines, err := sourceStore.GetAllDisciplines(true)
	if err != nil {
		return fmt.Errorf("failed to get disciplines from source: %w", err)
	}
	for _, d := range disciplines {
		if err := ctx.Store.AddDiscipline(d); err != nil {
			return fmt.Errorf("failed to add discipline %s: %w", d.ID, err)
		}
	}
	fmt.Printf("    Migrated %d disciplines\n", len(disciplines))

	// Migrate Discipline Checks
	fmt.Println("  Migrating discipline checks...")
	checks, err := sourceStore.GetAllChecks()
	if err != nil {
		return fmt.Errorf("failed to get discipline checks from source: %w", err)
	}
	for _, check := range checks {
		if _, err := ctx.Store.UpsertCheck(check); err != nil {
			return fmt.Errorf("failed to add discipline check %s: %w", check.ID, err)
		}
	}
	fmt.Printf("    Migrated %d discipline checks\n", len(checks))

	// Migrate Reflections
	fmt.Println("  Migrating reflections...")
	reflections, err := sourceStore.GetAllReflections()
	if err != nil {
		return fmt.Errorf("failed to get reflections from source: %w", err)
	}
	for _, reflection := range reflections {
		if _, err := ctx.Store.UpsertReflection(reflection); err != nil {
			return fmt.Errorf("failed to add reflection for %s: %w", reflection.Day, err)
		}
	}
	fmt.Printf("    Migrated %d reflections\n", len(reflections))

	// Migrate Partner Check-Ins
	fmt.Println("  Migrating partner check-ins...")
	partnerCheckIns, err := sourceStore.GetAllPartnerCheckIns()
	if err != nil {
		return fmt.Errorf("failed to get partner check-ins from source: %w", err)
	}
	for _, checkIn := range partnerCheckIns {
		if _, err := ctx.Store.UpsertPartnerCheckIn(checkIn); err != nil {
			return fmt.Errorf("failed to add partner check-in for %s: %w", checkIn.Day, err)
		}
	}
	fmt.Printf("    Migrated %d partner check-ins\n", len(partnerCheckIns))

	return nil
}
