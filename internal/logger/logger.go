package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logger. Commands log through the package-level
// helpers, which stay silent until Init has run.
var Logger *log.Logger

// Config controls where logs go and how chatty they are.
type Config struct {
	Debug     bool
	ConfigDir string
}

// Init points the global logger at a size-rotated file under the config
// directory. Debug mode mirrors everything to stderr and reports callers;
// otherwise the terminal is left to command output alone.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	rotated := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "stead.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var writer io.Writer = rotated
	level := log.WarnLevel
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, rotated)
		level = log.DebugLevel
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "stead",
	})
	return nil
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
