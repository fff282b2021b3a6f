package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/steadhq/stead/internal/cli"
	"github.com/steadhq/stead/internal/keyring"
	"github.com/steadhq/stead/internal/storage/postgres"
)

// KeyringSetCmd saves a PostgreSQL connection string to the OS keyring.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !looksLikePostgres(cmd.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// Embedded passwords are rejected for --db and init --from but
		// tolerated here, where the keyring encrypts them at rest.
		fmt.Println("⚠️  Warning: connection string embeds a password.")
		fmt.Println("   The OS keyring stores it encrypted, so it stays off the command line from now on.")
		fmt.Println("   Prefer .pgpass or environment variables if you want passwords kept separate entirely.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Println("✓ Connection string saved to OS keyring")
	fmt.Println("  stead will pick it up whenever --db is not set")
	return nil
}

// KeyringGetCmd prints the stored connection string with its password masked.
type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring. Use 'stead keyring set' to store one")
	}
	if err != nil {
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}

	fmt.Println("Connection string stored in keyring:")
	fmt.Println(maskPassword(connStr))
	return nil
}

// KeyringDeleteCmd removes the stored connection string from the OS keyring.
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring")
	}
	if err != nil {
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}

	fmt.Println("✓ Connection string removed from OS keyring")
	return nil
}

// KeyringStatusCmd reports whether the OS keyring works and holds credentials.
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}

	fmt.Println("✓ OS keyring is available")
	if _, err := keyring.GetConnectionString(); err == nil {
		fmt.Println("✓ Connection string is stored in keyring")
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("ℹ No connection string stored in keyring")
	}
	return nil
}

func looksLikePostgres(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") ||
		strings.HasPrefix(connStr, "postgresql://") ||
		strings.Contains(connStr, "host=")
}

// maskPassword replaces any password in a connection string with **** so the
// string can be echoed back to the terminal.
func maskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		scheme, rest, _ := strings.Cut(connStr, "://")
		if at := strings.LastIndex(rest, "@"); at != -1 {
			if user, _, hasPassword := strings.Cut(rest[:at], ":"); hasPassword {
				return scheme + "://" + user + ":****" + rest[at:]
			}
		}
		return connStr
	}

	if strings.Contains(connStr, "password=") {
		fields := strings.Fields(connStr)
		for i, field := range fields {
			if strings.HasPrefix(field, "password=") {
				fields[i] = "password=****"
			}
		}
		return strings.Join(fields, " ")
	}

	return connStr
}
