package backups

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/steadhq/stead/internal/backup"
	"github.com/steadhq/stead/internal/cli"
	"github.com/steadhq/stead/internal/constants"
)

// manager resolves the backup manager for the current store, refusing
// PostgreSQL where file-level backups don't apply
func manager(ctx *cli.Context) (*backup.Manager, error) {
	dbPath := ctx.Store.GetConfigPath()
	if dbPath == "postgresql" {
		return nil, fmt.Errorf("backups require SQLite storage (use pg_dump for PostgreSQL)")
	}
	return backup.NewManager(dbPath), nil
}

type BackupRunCmd struct{}

func (c *BackupRunCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		filename := filepath.Base(b.Path)
		fmt.Printf("  %-34s %10s  %s\n", filename, humanize.Bytes(uint64(b.Size)), humanize.Time(b.Timestamp))
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())

	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}

	backupPath, err := resolveBackupPath(mgr, c.BackupFile)
	if err != nil {
		return err
	}

	ok, err := confirmRestore(backupPath)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Restore cancelled.")
		return nil
	}

	// The database file cannot be swapped while a connection holds it open.
	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database connection: %v\n", err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Println("✓ Database restored successfully!")
	fmt.Println("  Restart any stead processes that were stopped for the restore.")
	return nil
}

// resolveBackupPath accepts an absolute path, a path relative to the working
// directory, or a bare filename looked up in the backup directory.
func resolveBackupPath(mgr *backup.Manager, name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}

	if _, err := os.Stat(name); err == nil {
		return filepath.Abs(name)
	}

	candidate := filepath.Join(mgr.GetBackupDir(), name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", mgr.GetBackupDir())
}

// confirmRestore warns about the overwrite and reads a y/N answer.
func confirmRestore(backupPath string) (bool, error) {
	fmt.Println("⚠️  WARNING: This will replace your current database with the backup.")
	fmt.Println("⚠️  Stop all stead processes (including the TUI) first; concurrent")
	fmt.Println("   access during a restore can corrupt the database.")
	fmt.Println("A safety backup of the current database is taken before restoring.")
	fmt.Printf("\nRestore from: %s\n", backupPath)
	fmt.Print("Continue? [y/N]: ")

	response, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
