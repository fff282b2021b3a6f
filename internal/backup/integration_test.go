package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// TestBackupRestoreWorkflow walks the full backup-modify-restore cycle
// against a database shaped like the real one.
func TestBackupRestoreWorkflow(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "stead.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS disciplines (
		id TEXT PRIMARY KEY,
		name TEXT,
		frequency TEXT
	)`)
	if err != nil {
		t.Fatalf("failed to create disciplines table: %v", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS discipline_checks (
		id TEXT PRIMARY KEY,
		discipline_id TEXT,
		day TEXT,
		rating TEXT
	)`)
	if err != nil {
		t.Fatalf("failed to create checks table: %v", err)
	}

	if _, err := db.Exec("INSERT INTO disciplines (id, name, frequency) VALUES ('d1', 'Meditation', 'daily')"); err != nil {
		t.Fatalf("failed to insert discipline: %v", err)
	}
	if _, err := db.Exec("INSERT INTO discipline_checks (id, discipline_id, day, rating) VALUES ('c1', 'd1', '2026-01-15', 'nailed_it')"); err != nil {
		t.Fatalf("failed to insert check: %v", err)
	}
	db.Close()

	mgr := NewManager(dbPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	// Change the database after the backup was taken
	db, err = sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec("INSERT INTO discipline_checks (id, discipline_id, day, rating) VALUES ('c2', 'd1', '2026-01-16', 'missed')"); err != nil {
		t.Fatalf("failed to insert second check: %v", err)
	}
	db.Close()

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("failed to restore backup: %v", err)
	}

	db, err = sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database after restore: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM discipline_checks").Scan(&count); err != nil {
		t.Fatalf("failed to count checks after restore: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 check after restore, got %d", count)
	}

	var rating string
	if err := db.QueryRow("SELECT rating FROM discipline_checks WHERE id = 'c1'").Scan(&rating); err != nil {
		t.Fatalf("failed to query check after restore: %v", err)
	}
	if rating != "nailed_it" {
		t.Errorf("check data mismatch after restore: got rating=%s", rating)
	}

	// The restore itself should have produced a pre-restore backup
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) < 2 {
		t.Errorf("expected at least 2 backups after restore, got %d", len(backups))
	}
}

func TestRestoreWithCorruptedBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	corruptedPath := filepath.Join(mgr.GetBackupDir(), "corrupted.db")
	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}
	if err := os.WriteFile(corruptedPath, []byte("not a valid sqlite database"), 0600); err != nil {
		t.Fatalf("failed to create corrupted file: %v", err)
	}

	if err := mgr.RestoreBackup(corruptedPath); err == nil {
		t.Error("expected error when restoring from corrupted backup")
	}
}

func TestBackupDirectoryCreation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	os.RemoveAll(mgr.GetBackupDir())

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if _, err := os.Stat(mgr.GetBackupDir()); os.IsNotExist(err) {
		t.Error("backup directory was not created")
	}
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		t.Error("backup file was not created")
	}
}
