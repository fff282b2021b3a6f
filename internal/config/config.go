package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/steadhq/stead/internal/constants"
)

var userConfigDirFunc = os.UserConfigDir

// Config holds file-level application configuration. Every field is
// optional; CLI flags take precedence over file values. The database
// connection string for PostgreSQL never lives here, it goes through
// the OS keyring.
type Config struct {
	Debug    bool   `toml:"debug"`
	Database string `toml:"database"` // sqlite path, empty means the default location
	Timezone string `toml:"timezone"`
	Partner  string `toml:"partner"`
}

// Default returns the configuration used when no config file exists
func Default() Config {
	return Config{
		Debug:    false,
		Timezone: constants.DefaultTimezone,
	}
}

// Dir returns the stead configuration directory, creating it on first use
func Dir() (string, error) {
	base, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	dir := filepath.Join(base, constants.AppName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config dir: %w", err)
	}

	return dir, nil
}

// Path returns the location of the optional stead.toml config file
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.AppName+".toml"), nil
}

// Load reads the config file. A missing file is not an error and yields
// Default(); a present but unparseable file is reported.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}

	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// DatabasePath resolves the sqlite database location: the configured
// path when set, otherwise <config-dir>/stead.db
func (c Config) DatabasePath() (string, error) {
	if c.Database != "" {
		return c.Database, nil
	}

	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.AppName+".db"), nil
}
