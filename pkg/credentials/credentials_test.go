package credentials

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/campuslink/cli/pkg/config"
)

// TestCredentialsIsExpired validates token expiration check
func TestCredentialsIsExpired(t *testing.T) {
	testCases := []struct {
		expiresAt time.Time
		expect    bool
		name      string
	}{
		{time.Now().Add(-1 * time.Hour), true, "past expiration"},
		{time.Now().Add(1 * time.Hour), false, "future expiration"},
		{time.Time{}, false, "zero time never expires"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			creds := &Credentials{
				AccessToken: "test_token",
				ExpiresAt:   tc.expiresAt,
			}

			if got := creds.IsExpired(); got != tc.expect {
				t.Errorf("Expected IsExpired=%v, got %v", tc.expect, got)
			}
		})
	}
}

// TestCredentialsIsValid validates credential validity check
func TestCredentialsIsValid(t *testing.T) {
	testCases := []struct {
		accessToken string
		expiresAt   time.Time
		expect      bool
		name        string
	}{
		{"valid_token", time.Now().Add(1 * time.Hour), true, "valid credentials"},
		{"", time.Now().Add(1 * time.Hour), false, "empty access token"},
		{"valid_token", time.Now().Add(-1 * time.Hour), false, "expired token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			creds := &Credentials{
				AccessToken: tc.accessToken,
				ExpiresAt:   tc.expiresAt,
			}

			if got := creds.IsValid(); got != tc.expect {
				t.Errorf("Expected IsValid=%v, got %v", tc.expect, got)
			}
		})
	}
}

// TestSaveLoadDelete validates the credentials file roundtrip
func TestSaveLoadDelete(t *testing.T) {
	tempDir := t.TempDir()
	if err := config.Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load before save failed: %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil credentials before first save")
	}

	creds := &Credentials{
		AccessToken: "token_123",
		ExpiresAt:   time.Now().Add(time.Hour),
		UserID:      "7",
		Username:    "maria",
		Email:       "maria@campus.edu",
		FullName:    "Maria Lopez",
		University:  "State University",
	}
	if err := Save(creds); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Owner read/write only
	info, err := os.Stat(config.GetCredentialsPath())
	if err != nil {
		t.Fatalf("Credentials file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected file mode 0600, got %v", info.Mode().Perm())
	}

	loaded, err = Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil after save")
	}
	if loaded.AccessToken != creds.AccessToken {
		t.Errorf("AccessToken mismatch: %s", loaded.AccessToken)
	}
	if loaded.Username != "maria" || loaded.UserID != "7" {
		t.Error("User identity not persisted")
	}
	if loaded.University != "State University" {
		t.Error("University not persisted")
	}

	if err := Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	loaded, err = Load()
	if err != nil {
		t.Fatalf("Load after delete failed: %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil credentials after delete")
	}
}
