// Package errors renders user-facing failures at the CLI boundary. Command
// code returns plain errors; only main decides whether one is fatal.
package errors

import (
	"fmt"
	"os"

	"wayfare/internal/logger"
)

// Format renders err for terminal output with the standard "Error: " prefix.
// A nil err renders as the empty string so callers can print unconditionally.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf is Format over a format string instead of an error value.
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal records err in the log, prints it on stderr, and exits 1. Does
// nothing for a nil err.
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf is Fatal with a formatted message.
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
