package logger

import (
	"path/filepath"
	"testing"

	"github.com/campuslink/cli/pkg/config"
)

func TestInitAndLog(t *testing.T) {
	if err := config.Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	Init(false)
	if GetLogger() == nil {
		t.Fatal("Logger not initialized")
	}

	// None of these should panic.
	Debug("debug message", "key", "value")
	Info("info message")
	Warn("warn message")
	Error("error message", "error", "boom")
}

func TestLogBeforeInitIsSafe(t *testing.T) {
	saved := logger
	logger = nil
	defer func() { logger = saved }()

	Debug("no logger yet")
	Info("no logger yet")
	Warn("no logger yet")
	Error("no logger yet")
}
