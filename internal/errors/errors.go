package errors

import (
	"fmt"
	"os"

	"github.com/steadhq/stead/internal/logger"
)

// Format renders an error as a user-facing message with an "Error: " prefix.
// A nil error renders as the empty string.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf is Format with printf-style message construction.
func Formatf(format string, args ...interface{}) string {
	return "Error: " + fmt.Sprintf(format, args...)
}

// Fatal logs err, prints it to stderr, and exits with code 1. A nil error is
// a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

// Fatalf is Fatal with printf-style message construction.
func Fatalf(format string, args ...interface{}) {
	Fatal(fmt.Errorf(format, args...))
}
