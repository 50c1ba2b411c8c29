// Package errors formats command failures for the terminal.
package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitual/internal/logger"
)

// Format prefixes an error message with "Error: ".
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf is Format for a format string.
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// NotFound renders the message printed when a name or id does not resolve.
func NotFound(kind, ref string) string {
	return fmt.Sprintf("%s %q not found", kind, ref)
}

// Fatal logs err, prints it to stderr and exits with status 1.
func Fatal(err error) {
	if err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, Format(err))
		os.Exit(1)
	}
}
