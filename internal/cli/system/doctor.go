package system

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/steadhq/stead/internal/backup"
	"github.com/steadhq/stead/internal/cli"
	"github.com/steadhq/stead/internal/config"
	"github.com/steadhq/stead/internal/keyring"
	"github.com/steadhq/stead/internal/migration"
	"github.com/steadhq/stead/internal/storage/postgres"
	"github.com/steadhq/stead/internal/storage/sqlite"
	"github.com/steadhq/stead/internal/utils"
	"github.com/steadhq/stead/migrations"
)

var listProcessesFunc = ps.Processes

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false
	usingSQLite := isSQLite(ctx)

	// Check 1: Config directory writable
	if err := checkConfigDirWritable(); err != nil {
		fmt.Printf("❌ Config directory writable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Config directory writable: OK\n")
	}

	// Check 2: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 3: Schema version valid (only if DB is reachable)
	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	// Check 4: Migrations complete (only if DB is reachable)
	if dbReachable {
		if err := checkMigrationsComplete(ctx); err != nil {
			fmt.Printf("❌ Migrations complete: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Migrations complete: OK\n")
		}
	} else {
		fmt.Printf("⊘ Migrations complete: SKIPPED (database not reachable)\n")
	}

	// Check 5: Backups present (warning only, file backups are SQLite-only)
	if usingSQLite {
		if err := checkBackupsPresent(ctx); err != nil {
			fmt.Printf("⚠ Backups present: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Backups present: OK\n")
		}
	} else {
		fmt.Printf("⊘ Backups present: SKIPPED (PostgreSQL storage)\n")
	}

	// Check 6: Check integrity (only if DB is reachable)
	if dbReachable {
		if err := checkCheckIntegrity(ctx); err != nil {
			fmt.Printf("❌ Check integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Check integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Check integrity: SKIPPED (database not reachable)\n")
	}

	// Check 7: Duplicate check rows (only if DB is reachable)
	if dbReachable {
		if err := checkDuplicateChecks(ctx); err != nil {
			fmt.Printf("❌ Duplicate checks: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Duplicate checks: OK\n")
		}
	} else {
		fmt.Printf("⊘ Duplicate checks: SKIPPED (database not reachable)\n")
	}

	// Check 8: Date formats (only if DB is reachable)
	if dbReachable {
		if err := checkDayFormats(ctx); err != nil {
			fmt.Printf("❌ Date formats: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Date formats: OK\n")
		}
	} else {
		fmt.Printf("⊘ Date formats: SKIPPED (database not reachable)\n")
	}

	// Check 9: Timestamp integrity (only if DB is reachable)
	if dbReachable {
		if err := checkTimestampIntegrity(ctx); err != nil {
			fmt.Printf("❌ Timestamp integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Timestamp integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Timestamp integrity: SKIPPED (database not reachable)\n")
	}

	// Check 10: Clock/timezone sanity
	if err := checkClockTimezone(ctx, dbReachable); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 11: Keyring available (PostgreSQL connection strings live there)
	if usingSQLite {
		fmt.Printf("⊘ Keyring available: SKIPPED (SQLite storage)\n")
	} else if !keyring.IsAvailable() {
		fmt.Printf("❌ Keyring available: FAIL\n")
		fmt.Printf("   Error: no usable system keyring found\n")
		hasError = true
	} else {
		fmt.Printf("✓ Keyring available: OK\n")
	}

	// Check 12: Concurrent processes (warning only)
	if count, err := countOtherSteadProcesses(); err != nil {
		fmt.Printf("⚠ Concurrent processes: WARNING\n")
		fmt.Printf("   failed to list processes: %v\n", err)
	} else if count > 0 {
		fmt.Printf("⚠ Concurrent processes: WARNING\n")
		fmt.Printf("   %d other stead process(es) running, concurrent SQLite writes can conflict\n", count)
	} else {
		fmt.Printf("✓ Concurrent processes: OK\n")
	}

	// Check 13: Log directory writable
	if err := checkLogDirWritable(); err != nil {
		fmt.Printf("❌ Log directory writable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Log directory writable: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func isSQLite(ctx *cli.Context) bool {
	_, ok := ctx.Store.(*sqlite.Store)
	return ok
}

// storeDB returns the raw connection and migration dialect for the store,
// or nil for drivers without one
func storeDB(ctx *cli.Context) (*sql.DB, string) {
	switch store := ctx.Store.(type) {
	case *sqlite.Store:
		return store.GetDB(), "sqlite"
	case *postgres.Store:
		return store.GetDB(), "postgres"
	default:
		return nil, ""
	}
}

func checkConfigDirWritable() error {
	dir, err := config.Dir()
	if err != nil {
		return fmt.Errorf("failed to resolve config directory: %w", err)
	}

	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0600); err != nil {
		return fmt.Errorf("config directory is not writable: %w", err)
	}
	return os.Remove(probe)
}

func checkDBReachable(ctx *cli.Context) error {
	// Try to load the database
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	db, _ := storeDB(ctx)
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	var result int
	if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}

	return nil
}

func newRunner(ctx *cli.Context) (*migration.Runner, error) {
	db, dialect := storeDB(ctx)
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration directory: %w", err)
	}

	return migration.NewRunner(db, subFS), nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := newRunner(ctx)
	if err != nil {
		return err
	}

	current, latest, err := runner.Status()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}

	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	runner, err := newRunner(ctx)
	if err != nil {
		return err
	}

	current, latest, err := runner.Status()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'stead migrate')", current, latest)
	}

	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'stead backup run'")
	}

	return nil
}

func checkCheckIntegrity(ctx *cli.Context) error {
	db, _ := storeDB(ctx)
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	// Check for orphaned check-ins (rows referencing non-existent disciplines)
	var orphanedCount int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM discipline_checks dc
		LEFT JOIN disciplines d ON dc.discipline_id = d.id
		WHERE d.id IS NULL
	`).Scan(&orphanedCount)
	if err != nil {
		return fmt.Errorf("failed to check orphaned check-ins: %w", err)
	}
	if orphanedCount > 0 {
		return fmt.Errorf("found %d orphaned check-ins (referencing non-existent disciplines)", orphanedCount)
	}

	return nil
}

func checkDuplicateChecks(ctx *cli.Context) error {
	db, _ := storeDB(ctx)
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	// Check for duplicate check-ins (multiple rows for same discipline + day)
	var duplicateCount int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM (
			SELECT discipline_id, day
			FROM discipline_checks
			GROUP BY discipline_id, day
			HAVING COUNT(*) > 1
		) AS dup
	`).Scan(&duplicateCount)
	if err != nil {
		return fmt.Errorf("failed to check duplicate check-ins: %w", err)
	}
	if duplicateCount > 0 {
		return fmt.Errorf("found %d discipline+day combinations with duplicate check-ins", duplicateCount)
	}

	return nil
}

func checkDayFormats(ctx *cli.Context) error {
	db, dialect := storeDB(ctx)
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	predicate := `day NOT GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]'`
	if dialect == "postgres" {
		predicate = `day !~ '^[0-9]{4}-[0-9]{2}-[0-9]{2}$'`
	}

	for _, table := range []string{"discipline_checks", "reflections", "partner_checkins"} {
		var invalidCount int
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, table, predicate)
		if err := db.QueryRow(query).Scan(&invalidCount); err != nil {
			return fmt.Errorf("failed to check %s dates: %w", table, err)
		}
		if invalidCount > 0 {
			return fmt.Errorf("found %d rows in %s with invalid date format", invalidCount, table)
		}
	}

	return nil
}

func checkTimestampIntegrity(ctx *cli.Context) error {
	db, _ := storeDB(ctx)
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	// Timestamps are stored as RFC3339 text in both drivers
	checks := []struct {
		table     string
		predicate string
	}{
		{"disciplines", "created_at = ''"},
		{"discipline_checks", "created_at = '' OR updated_at = ''"},
		{"reflections", "created_at = '' OR updated_at = ''"},
	}

	for _, c := range checks {
		var corruptedCount int
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, c.table, c.predicate)
		if err := db.QueryRow(query).Scan(&corruptedCount); err != nil {
			return fmt.Errorf("failed to check %s timestamps: %w", c.table, err)
		}
		if corruptedCount > 0 {
			return fmt.Errorf("found %d rows in %s with corrupted timestamps", corruptedCount, c.table)
		}
	}

	return nil
}

func checkClockTimezone(ctx *cli.Context, dbReachable bool) error {
	// Check if system time is reasonable
	now := time.Now()

	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	if dbReachable {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		if _, err := utils.LoadLocation(settings.Timezone); err != nil {
			return fmt.Errorf("configured timezone %q is not loadable: %w", settings.Timezone, err)
		}
	}

	return nil
}

func countOtherSteadProcesses() (int, error) {
	processes, err := listProcessesFunc()
	if err != nil {
		return 0, err
	}

	self := os.Getpid()
	count := 0
	for _, p := range processes {
		if p.Pid() == self {
			continue
		}
		if p.Executable() == "stead" {
			count++
		}
	}
	return count, nil
}

func checkLogDirWritable() error {
	dir, err := config.Dir()
	if err != nil {
		return fmt.Errorf("failed to resolve config directory: %w", err)
	}

	logDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	probe := filepath.Join(logDir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0600); err != nil {
		return fmt.Errorf("log directory is not writable: %w", err)
	}
	return os.Remove(probe)
}
