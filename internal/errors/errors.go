// Package errors prints command failures and exits.
package errors

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/daycards/internal/board"
	"github.com/julianstephens/daycards/internal/logger"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal reports err on stderr and exits with code 1. It returns when err is nil.
func Fatal(err error) {
	if code := report(os.Stderr, err); code != 0 {
		os.Exit(code)
	}
}

// report logs err and writes it to w, returning the exit code. Refused input is
// logged at debug level; anything else is an error.
func report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if board.IsValidation(err) {
		logger.Debug("Command rejected", "error", err)
	} else {
		logger.Error("Command execution failed", "error", err)
	}
	fmt.Fprintln(w, Format(err))
	return 1
}
