package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/steadhq/stead/internal/constants"
	"github.com/steadhq/stead/internal/logger"
	"github.com/steadhq/stead/internal/migration"
	"github.com/steadhq/stead/internal/models"
	"github.com/steadhq/stead/migrations"
)

// Store keeps all stead data in a PostgreSQL database, inside a schema named
// after the app so it can share a database with other tools.
type Store struct {
	connStr string
	db      *sql.DB
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func New(connStr string) *Store {
	return &Store{connStr: withSearchPath(connStr)}
}

// withSearchPath pins the connection's search_path to the app schema unless
// the caller already chose one.
func withSearchPath(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return connStr
		}
		q := u.Query()
		if q.Get("search_path") != "" {
			return connStr
		}
		q.Set("search_path", constants.AppName)
		u.RawQuery = q.Encode()
		return u.String()
	}

	if hasSearchPathParam(connStr) {
		return connStr
	}
	return strings.TrimSpace(connStr) + " search_path=" + constants.AppName
}

// dsnHasKey scans space-separated key=value pairs for the given key,
// ignoring case. Values never match, only keys.
func dsnHasKey(connStr, key string) bool {
	for _, field := range strings.Fields(connStr) {
		k, _, ok := strings.Cut(field, "=")
		if ok && strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

func hasSearchPathParam(connStr string) bool {
	return dsnHasKey(connStr, "search_path")
}

func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	return dsnHasKey(connStr, "sslmode")
}

// ValidateConnString reports whether connStr is a usable PostgreSQL
// connection string in URL or DSN form. Strings that embed a password fail
// with ErrEmbeddedCredentials; passwords belong in the OS keyring, .pgpass,
// or the environment.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}
		if _, set := u.User.Password(); set {
			return false, ErrEmbeddedCredentials
		}
		if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return true, nil
	}

	for _, field := range strings.Fields(connStr) {
		if key, _, ok := strings.Cut(field, "="); ok && strings.EqualFold(strings.TrimSpace(key), "password") {
			return false, ErrEmbeddedCredentials
		}
	}
	return true, nil
}

// open dials the server and applies the pool limits shared by Init and Load.
func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// ping verifies the connection, adding an sslmode hint when the server
// rejects SSL and the connection string never mentions it.
func (s *Store) ping() error {
	err := s.db.Ping()
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
		return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
	}
	return fmt.Errorf("failed to connect to database: %w", err)
}

func (s *Store) Init() error {
	db, err := s.open()
	if err != nil {
		return err
	}

	// The schema must exist before s.db is usable for anything else.
	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db

	if err := s.ping(); err != nil {
		return err
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Seed settings on first init so later reads never miss.
	if _, err := s.GetSettings(); err != nil {
		defaults := models.Settings{
			Timezone:    constants.DefaultTimezone,
			PartnerName: constants.DefaultPartnerName,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db

	if err := s.ping(); err != nil {
		return err
	}

	return s.validateSchemaVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) migrationRunner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

func (s *Store) runMigrations() error {
	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	return err
}

func (s *Store) validateSchemaVersion() error {
	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

// GetConfigPath returns a non-sensitive identifier rather than the full
// connection string.
func (s *Store) GetConfigPath() string {
	return "postgresql"
}

// GetDB returns the underlying database connection.
// Returns nil if the database has not been initialized or loaded.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
