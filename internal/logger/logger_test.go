package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: false, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	want := filepath.Join(configDir, "logs", "daycards.log")
	if Path() != want {
		t.Errorf("Path() = %q, want %q", Path(), want)
	}

	Debug("hidden debug record")
	Warn("visible warning", "key", "value")

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "visible warning") {
		t.Errorf("log file missing warning: %q", content)
	}
	if strings.Contains(content, "hidden debug record") {
		t.Error("debug record written at warn level")
	}
}

func TestInitDebugMode(t *testing.T) {
	var stderr bytes.Buffer
	if err := Init(Config{Debug: true, ConfigDir: t.TempDir(), Stderr: &stderr}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}

	Debug("Test debug message in debug mode")
	if !strings.Contains(stderr.String(), "Test debug message in debug mode") {
		t.Errorf("debug record not mirrored to stderr: %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "daycards") {
		t.Errorf("records should carry the app prefix: %q", stderr.String())
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestInitWithInvalidDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := Init(Config{ConfigDir: blocker}); err == nil {
		t.Error("Init() should fail when the config dir is a file")
	}
}
