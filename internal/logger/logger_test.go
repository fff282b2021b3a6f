package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	t.Run("default level", func(t *testing.T) {
		configDir := filepath.Join(t.TempDir(), "config")

		if err := Init(Config{Debug: false, ConfigDir: configDir}); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		if Logger == nil {
			t.Fatal("Logger is nil after Init")
		}

		logDir := filepath.Join(configDir, "logs")
		if _, err := os.Stat(logDir); err != nil {
			t.Errorf("log directory not created: %v", err)
		}

		// Warn passes the default level filter, so the rotated file must
		// exist after this.
		Warn("Test warning message")
		if _, err := os.Stat(filepath.Join(logDir, "stead.log")); err != nil {
			t.Errorf("log file not created after write: %v", err)
		}

		// Below-threshold levels should be silently dropped.
		Debug("Test debug message")
		Info("Test info message")
	})

	t.Run("debug mode", func(t *testing.T) {
		configDir := filepath.Join(t.TempDir(), "config")

		if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		if Logger == nil {
			t.Fatal("Logger is nil after Init")
		}

		Debug("Test debug message in debug mode")
		Info("Test info message in debug mode")
	})
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// None of these may panic before Init has run.
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
