package postgres

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/models"
	"github.com/steadhq/stead/internal/storage"
)

// setupPostgresTestStore creates a store against a real PostgreSQL instance.
// Set STEAD_POSTGRES_TEST_URL to run these tests.
// Example: STEAD_POSTGRES_TEST_URL="postgres://user@localhost:5432/stead_test?sslmode=disable"
func setupPostgresTestStore(t *testing.T) *Store {
	connStr := os.Getenv("STEAD_POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("STEAD_POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize postgres store: %v", err)
	}

	t.Cleanup(func() {
		// Drop the whole schema so each test run starts clean
		if db := store.GetDB(); db != nil {
			db.Exec("DROP SCHEMA IF EXISTS " + constants.AppName + " CASCADE")
		}
		store.Close()
	})

	return store
}

func TestPostgresInitSeedsDefaultSettings(t *testing.T) {
	store := setupPostgresTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.Timezone != constants.DefaultTimezone {
		t.Errorf("expected default timezone %q, got %q", constants.DefaultTimezone, settings.Timezone)
	}

	// A second Init must be a no-op, not a re-seed
	if err := store.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}

	settings.Timezone = "Europe/Berlin"
	settings.PartnerName = "Sam"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings after save failed: %v", err)
	}
	if got != settings {
		t.Errorf("expected settings %+v, got %+v", settings, got)
	}
}

func TestPostgresAreaLifecycle(t *testing.T) {
	store := setupPostgresTestStore(t)

	area := models.FocusArea{
		ID:        "area-pg-1",
		Name:      "Writing",
		Color:     "#creative",
		CreatedAt: time.Now().UTC(),
	}
	if err := store.AddArea(area); err != nil {
		t.Fatalf("AddArea failed: %v", err)
	}

	got, err := store.GetArea(area.ID)
	if err != nil {
		t.Fatalf("GetArea failed: %v", err)
	}
	if got.Name != area.Name {
		t.Errorf("expected name %q, got %q", area.Name, got.Name)
	}

	byName, err := store.GetAreaByName("Writing")
	if err != nil {
		t.Fatalf("GetAreaByName failed: %v", err)
	}
	if byName.ID != area.ID {
		t.Errorf("expected id %q, got %q", area.ID, byName.ID)
	}

	if err := store.DeleteArea(area.ID); err != nil {
		t.Fatalf("DeleteArea failed: %v", err)
	}
	if _, err := store.GetArea(area.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestPostgresCheckUpsert(t *testing.T) {
	store := setupPostgresTestStore(t)

	disc := models.Discipline{
		ID:        "disc-pg-1",
		Name:      "Morning run",
		Frequency: constants.FrequencyDaily,
		StartedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:    constants.DisciplineActive,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.AddDiscipline(disc); err != nil {
		t.Fatalf("AddDiscipline failed: %v", err)
	}

	first, err := store.UpsertCheck(models.DisciplineCheck{
		ID:           "check-pg-1",
		DisciplineID: disc.ID,
		Day:          "2026-01-05",
		Rating:       constants.RatingClose,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("UpsertCheck failed: %v", err)
	}

	second, err := store.UpsertCheck(models.DisciplineCheck{
		ID:            "check-pg-2",
		DisciplineID:  disc.ID,
		Day:           "2026-01-05",
		Rating:        constants.RatingNailedIt,
		ActualMinutes: 30,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("UpsertCheck (2nd) failed: %v", err)
	}

	// The original row survives the conflict, only ratings change
	if second.ID != first.ID {
		t.Errorf("expected id %q to survive upsert, got %q", first.ID, second.ID)
	}
	if second.Rating != constants.RatingNailedIt {
		t.Errorf("expected rating %q, got %q", constants.RatingNailedIt, second.Rating)
	}
	if second.ActualMinutes != 30 {
		t.Errorf("expected 30 actual minutes, got %d", second.ActualMinutes)
	}

	checks, err := store.GetChecksForDiscipline(disc.ID)
	if err != nil {
		t.Fatalf("GetChecksForDiscipline failed: %v", err)
	}
	if len(checks) != 1 {
		t.Errorf("expected 1 check after upsert, got %d", len(checks))
	}
}

func TestPostgresLoadValidatesSchema(t *testing.T) {
	store := setupPostgresTestStore(t)
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	store.db = nil

	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := store.GetSettings(); err != nil {
		t.Errorf("GetSettings after Load failed: %v", err)
	}
}
