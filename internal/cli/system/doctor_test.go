package system

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	ps "github.com/mitchellh/go-ps"

	"github.com/steadhq/stead/internal/backup"
	"github.com/steadhq/stead/internal/cli"
	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/migration"
	"github.com/steadhq/stead/internal/models"
	"github.com/steadhq/stead/internal/storage/sqlite"
	"github.com/steadhq/stead/migrations"
)

func setupTestDoctorDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	// Keep config-dir checks away from the real user config directory
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "config"))
	t.Setenv("HOME", tempDir)

	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	ctx := &cli.Context{
		Store: store,
	}

	cleanup := func() {
		store.Close()
	}

	return ctx, cleanup
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	cmd := &DoctorCmd{}
	err := cmd.Run(ctx)

	// Should pass all checks (missing backups is only a warning)
	if err != nil {
		t.Errorf("doctor command failed on healthy database: %v", err)
	}
}

func TestDoctorCmd_WithBackups(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("doctor command failed with backups present: %v", err)
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	store := ctx.Store.(*sqlite.Store)
	db := store.GetDB()
	if db == nil {
		t.Fatal("database connection is nil")
	}

	// Set an impossible future schema version
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to delete schema version: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (999)"); err != nil {
		t.Fatalf("failed to insert corrupted schema version: %v", err)
	}

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Error("doctor command should fail with corrupted schema")
	}
}

func TestDoctorCmd_OrphanedChecks(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	db := ctx.Store.(*sqlite.Store).GetDB()

	// Insert a check-in pointing at a discipline that does not exist
	_, err := db.Exec(`
		INSERT INTO discipline_checks (id, discipline_id, day, rating, actual_minutes, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, '', ?, ?)`,
		uuid.New().String(), "no-such-discipline", "2026-02-10", string(constants.RatingNailedIt),
		time.Now().Format(time.RFC3339), time.Now().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("failed to insert orphaned check: %v", err)
	}

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Error("doctor command should fail with orphaned check-ins")
	}
}

func TestDoctorCmd_MalformedDay(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	d := models.Discipline{
		ID:        uuid.New().String(),
		Name:      "Read daily",
		Frequency: constants.FrequencyDaily,
		Status:    constants.DisciplineActive,
		StartedAt: time.Now(),
		CreatedAt: time.Now(),
	}
	if err := ctx.Store.AddDiscipline(d); err != nil {
		t.Fatalf("failed to add discipline: %v", err)
	}

	// Bypass model validation and write a non-ISO day directly
	db := ctx.Store.(*sqlite.Store).GetDB()
	_, err := db.Exec(`
		INSERT INTO discipline_checks (id, discipline_id, day, rating, actual_minutes, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, '', ?, ?)`,
		uuid.New().String(), d.ID, "02/10/2026", string(constants.RatingNailedIt),
		time.Now().Format(time.RFC3339), time.Now().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("failed to insert malformed check: %v", err)
	}

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Error("doctor command should fail with malformed day values")
	}
}

func TestCheckMigrationsComplete_Incomplete(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	db := ctx.Store.(*sqlite.Store).GetDB()

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatalf("failed to access sqlite migrations: %v", err)
	}

	runner := migration.NewRunner(db, subFS)
	currentVersion, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("failed to get current version: %v", err)
	}

	// Downgrade to one before current to simulate a half-applied upgrade
	if currentVersion > 1 {
		if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
			t.Fatalf("failed to delete schema version: %v", err)
		}
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", currentVersion-1); err != nil {
			t.Fatalf("failed to insert downgraded schema version: %v", err)
		}

		if err := checkMigrationsComplete(ctx); err == nil {
			t.Error("checkMigrationsComplete should fail with incomplete migrations")
		}
	}
}

func TestCheckClockTimezone(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	if err := checkClockTimezone(ctx, true); err != nil {
		t.Errorf("clock/timezone check failed on default settings: %v", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	settings.Timezone = "Not/AZone"
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	if err := checkClockTimezone(ctx, true); err == nil {
		t.Error("clock/timezone check should fail with an unloadable timezone")
	}
}

type fakeProcess struct {
	pid int
	exe string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 0 }
func (p fakeProcess) Executable() string { return p.exe }

func TestCountOtherSteadProcesses(t *testing.T) {
	old := listProcessesFunc
	listProcessesFunc = func() ([]ps.Process, error) {
		return []ps.Process{
			fakeProcess{pid: os.Getpid(), exe: "stead"}, // self is excluded
			fakeProcess{pid: 12345, exe: "stead"},
			fakeProcess{pid: 23456, exe: "vim"},
		}, nil
	}
	defer func() { listProcessesFunc = old }()

	count, err := countOtherSteadProcesses()
	if err != nil {
		t.Fatalf("countOtherSteadProcesses failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 other stead process, got %d", count)
	}
}
