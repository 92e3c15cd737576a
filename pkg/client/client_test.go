package client

import (
	"path/filepath"
	"testing"

	"github.com/campuslink/cli/pkg/config"
)

func TestGetClientInitializesOnDemand(t *testing.T) {
	if err := config.Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	httpClient = nil
	c := GetClient()
	if c == nil {
		t.Fatal("GetClient returned nil")
	}

	if c.BaseURL != "http://127.0.0.1:8001" {
		t.Errorf("Unexpected base URL: %s", c.BaseURL)
	}

	if got := c.Header.Get("User-Agent"); got != "CampusLink-CLI/0.1.0" {
		t.Errorf("Unexpected User-Agent: %s", got)
	}
}

func TestAuthTokenLifecycle(t *testing.T) {
	if err := config.Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	SetAuthToken("abc123")
	if got := GetClient().Header.Get("Authorization"); got != "Bearer abc123" {
		t.Errorf("Authorization header: %s", got)
	}

	ClearAuthToken()
	if got := GetClient().Header.Get("Authorization"); got != "" {
		t.Errorf("Authorization header should be cleared, got %s", got)
	}
}
