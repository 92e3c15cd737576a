package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestInitWithCustomPath validates custom config path
func TestInitWithCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	customConfigPath := filepath.Join(tempDir, "custom", "path", "config.toml")

	if err := Init(customConfigPath); err != nil {
		t.Fatalf("Failed to initialize with custom path: %v", err)
	}

	configDir := GetConfigDir()
	expectedDir := filepath.Join(tempDir, "custom", "path")

	if configDir != expectedDir {
		t.Errorf("Expected config dir %s, got %s", expectedDir, configDir)
	}

	if _, err := os.Stat(configDir); err != nil {
		t.Errorf("Config directory should exist: %v", err)
	}
}

// TestGetCredentialsPath validates credentials path placement
func TestGetCredentialsPath(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	credsPath := GetCredentialsPath()
	if credsPath == "" {
		t.Fatal("Credentials path should not be empty")
	}

	if filepath.Dir(credsPath) != GetConfigDir() {
		t.Errorf("Credentials should live in the config dir, got %s", credsPath)
	}
}

// TestDefaults validates baked-in configuration defaults
func TestDefaults(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	if got := GetString("api.base_url"); got != "http://127.0.0.1:8001" {
		t.Errorf("Unexpected api.base_url default: %s", got)
	}

	if got := GetInt("api.page_size"); got != 10 {
		t.Errorf("Expected page_size 10, got %d", got)
	}

	if got := GetInt("api.timeout"); got != 30 {
		t.Errorf("Expected timeout 30, got %d", got)
	}

	if got := GetInt("cache.notification_poll"); got != 30 {
		t.Errorf("Expected notification_poll 30, got %d", got)
	}

	if got := GetInt("stories.tick_ms"); got != 50 {
		t.Errorf("Expected stories.tick_ms 50, got %d", got)
	}

	if GetBool("stories.dedupe_views") {
		t.Error("stories.dedupe_views should default to false")
	}

	if got := GetString("output.format"); got != "text" {
		t.Errorf("Expected output.format text, got %s", got)
	}
}

// TestSetString persists and reads back a value
func TestSetString(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	if err := SetString("output.format", "json"); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}

	if got := GetString("output.format"); got != "json" {
		t.Errorf("Expected json, got %s", got)
	}
}
