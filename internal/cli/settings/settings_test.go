package settings

import (
	"path/filepath"
	"testing"

	"github.com/steadhq/stead/internal/cli"
	"github.com/steadhq/stead/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{
		Store: store,
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, cleanup
}

func TestSettingsCmd_List(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{
		List: true,
	}

	if err := cmd.Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
}

func TestSettingsCmd_UpdateTimezone(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	tz := "Europe/Berlin"
	cmd := &SettingsCmd{
		Timezone: &tz,
	}

	if err := cmd.Run(ctx); err != nil {
		t.Errorf("settings update failed: %v", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get updated settings: %v", err)
	}
	if settings.Timezone != tz {
		t.Errorf("expected timezone %q, got %q", tz, settings.Timezone)
	}
}

func TestSettingsCmd_RejectsInvalidTimezone(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	before, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}

	tz := "Mars/OlympusMons"
	cmd := &SettingsCmd{
		Timezone: &tz,
	}

	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error for invalid timezone")
	}

	// The stored value must be untouched
	after, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if after.Timezone != before.Timezone {
		t.Errorf("timezone changed despite validation failure: %q -> %q", before.Timezone, after.Timezone)
	}
}

func TestSettingsCmd_UpdatePartnerName(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	name := "Sam"
	cmd := &SettingsCmd{
		PartnerName: &name,
	}

	if err := cmd.Run(ctx); err != nil {
		t.Errorf("settings update failed: %v", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get updated settings: %v", err)
	}
	if settings.PartnerName != name {
		t.Errorf("expected partner name %q, got %q", name, settings.PartnerName)
	}
}

func TestSettingsCmd_NoFlagsIsNoop(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("settings with no flags should not fail: %v", err)
	}
}
