package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/daycards/internal/board"
	"github.com/julianstephens/daycards/internal/logger"
	"github.com/julianstephens/daycards/internal/storage"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "storage error", err: fmt.Errorf("failed to write storage: %w", errors.New("disk full")), expected: "Error: failed to write storage: disk full"},
		{name: "rejected input", err: fmt.Errorf("%w: 2024-01-01", board.ErrDuplicateDate), expected: "Error: date card already exists: 2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestReport(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantLog  string
		level    string
	}{
		{name: "nil", err: nil, wantCode: 0},
		{name: "empty task text", err: board.ErrEmptyText, wantCode: 1, wantLog: "Command rejected", level: "DEBU"},
		{name: "missing card", err: fmt.Errorf("toggle: %w", board.ErrListNotFound), wantCode: 1, wantLog: "Command rejected", level: "DEBU"},
		{name: "storage not set up", err: storage.ErrNotInitialized, wantCode: 1, wantLog: "Command execution failed", level: "ERRO"},
	}

	prev := logger.Logger
	t.Cleanup(func() { logger.Logger = prev })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs, out bytes.Buffer
			logger.Logger = log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel})

			if code := report(&out, tt.err); code != tt.wantCode {
				t.Errorf("report() = %d, want %d", code, tt.wantCode)
			}
			if tt.err == nil {
				if out.Len() != 0 || logs.Len() != 0 {
					t.Errorf("nil error wrote %q and logged %q", out.String(), logs.String())
				}
				return
			}
			if want := Format(tt.err) + "\n"; out.String() != want {
				t.Errorf("output = %q, want %q", out.String(), want)
			}
			if got := logs.String(); !strings.Contains(got, tt.wantLog) || !strings.Contains(got, tt.level) {
				t.Errorf("log = %q, want %s at %s", got, tt.wantLog, tt.level)
			}
		})
	}
}

// TestFatal runs Fatal in a child process, since it exits.
func TestFatal(t *testing.T) {
	switch os.Getenv("DAYCARDS_TEST_FATAL") {
	case "error":
		Fatal(board.ErrEmptyText)
		return
	case "nil":
		Fatal(nil)
		os.Exit(0)
	}

	tests := []struct {
		mode     string
		wantCode int
		stderr   string
	}{
		{mode: "error", wantCode: 1, stderr: "Error: task text cannot be empty"},
		{mode: "nil", wantCode: 0},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
			cmd.Env = append(os.Environ(), "DAYCARDS_TEST_FATAL="+tt.mode)
			var stderr bytes.Buffer
			cmd.Stderr = &stderr

			err := cmd.Run()
			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("child failed to run: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(stderr.String(), tt.stderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.stderr)
			}
		})
	}
}
