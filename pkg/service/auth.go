package service

import (
	"fmt"
	"time"

	"github.com/campuslink/cli/pkg/api"
	"github.com/campuslink/cli/pkg/client"
	"github.com/campuslink/cli/pkg/credentials"
	"github.com/campuslink/cli/pkg/errors"
	"github.com/campuslink/cli/pkg/logger"
	"github.com/campuslink/cli/pkg/output"
	"github.com/campuslink/cli/pkg/prompter"
)

// tokenLifetime mirrors the server's access token expiry. The token
// endpoint does not echo it, so the client tracks it locally.
const tokenLifetime = 24 * time.Hour

type AuthService struct{}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	return &AuthService{}
}

// Login handles user login
func (s *AuthService) Login(email string) error {
	creds, err := credentials.Load()
	if err != nil {
		logger.Error("Failed to load credentials", "error", err)
		return err
	}

	if creds != nil && creds.IsValid() {
		output.PrintWarning("Already logged in as %s", creds.Username)
		confirm, err := prompter.PromptConfirm("Continue with new login?")
		if err != nil {
			return err
		}
		if !confirm {
			return nil
		}
	}

	if email == "" {
		email, err = prompter.PromptString("Email: ")
		if err != nil {
			return err
		}
	}
	if email == "" {
		return errors.ValidationError("email", "cannot be empty")
	}

	password, err := prompter.PromptPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return errors.ValidationError("password", "cannot be empty")
	}

	client.Init()

	output.PrintInfo("Authenticating...")
	result, err := api.Login(email, password)
	if err != nil {
		output.PrintError("Login failed: %v", err)
		return err
	}

	creds = &credentials.Credentials{
		AccessToken: result.AccessToken,
		ExpiresAt:   time.Now().Add(tokenLifetime),
		UserID:      result.User.ID,
		Username:    result.User.Username,
		Email:       email,
		FullName:    result.User.FullName,
		University:  result.User.University,
	}
	if err := credentials.Save(creds); err != nil {
		output.PrintError("Failed to save credentials: %v", err)
		return err
	}

	output.PrintSuccess("✓ Login successful!")
	output.PrintInfo("Logged in as %s", result.User.Username)
	fmt.Printf("\n")
	return output.PrintRecord("", map[string]interface{}{
		"Username":   result.User.Username,
		"Name":       result.User.FullName,
		"University": result.User.University,
		"Followers":  result.User.Followers,
		"Following":  result.User.Following,
	})
}

// Signup registers a new account and logs in
func (s *AuthService) Signup(username, email string) error {
	var err error
	if username == "" {
		username, err = prompter.PromptString("Username: ")
		if err != nil {
			return err
		}
	}
	if username == "" {
		return errors.ValidationError("username", "cannot be empty")
	}

	if email == "" {
		email, err = prompter.PromptString("Email: ")
		if err != nil {
			return err
		}
	}
	if email == "" {
		return errors.ValidationError("email", "cannot be empty")
	}

	password, err := prompter.PromptPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return errors.ValidationError("password", "cannot be empty")
	}

	client.Init()

	output.PrintInfo("Creating account...")
	result, err := api.Signup(username, email, password)
	if err != nil {
		output.PrintError("Signup failed: %v", err)
		return err
	}

	creds := &credentials.Credentials{
		AccessToken: result.AccessToken,
		ExpiresAt:   time.Now().Add(tokenLifetime),
		UserID:      result.User.ID,
		Username:    result.User.Username,
		Email:       email,
		FullName:    result.User.FullName,
		University:  result.User.University,
	}
	if err := credentials.Save(creds); err != nil {
		output.PrintError("Failed to save credentials: %v", err)
		return err
	}

	output.PrintSuccess("✓ Welcome to CampusLink, %s!", result.User.Username)
	return nil
}

// Logout handles user logout
func (s *AuthService) Logout() error {
	creds, err := credentials.Load()
	if err != nil {
		logger.Error("Failed to load credentials", "error", err)
		return err
	}

	if creds == nil {
		output.PrintWarning("Not logged in")
		return nil
	}

	confirm, err := prompter.PromptConfirm("Logout?")
	if err != nil {
		return err
	}
	if !confirm {
		return nil
	}

	if err := credentials.Delete(); err != nil {
		output.PrintError("Failed to delete credentials: %v", err)
		return err
	}

	client.ClearAuthToken()

	output.PrintSuccess("✓ Logged out successfully")
	return nil
}

// WhoAmI displays the current user's account
func (s *AuthService) WhoAmI() error {
	if err := EnsureSession(); err != nil {
		return err
	}

	user, err := api.GetCurrentUser()
	if err != nil {
		if api.IsUnauthorized(err) {
			output.PrintError("Session expired. Please login again.")
			credentials.Delete()
			return errors.SessionExpiredError()
		}
		output.PrintError("Failed to fetch user: %v", err)
		return err
	}

	fmt.Printf("\n")
	return output.PrintRecord("", map[string]interface{}{
		"Username":   user.Username,
		"Name":       user.FullName,
		"University": user.University,
		"Bio":        user.Bio,
		"Followers":  user.Followers,
		"Following":  user.Following,
	})
}

// EnsureSession loads stored credentials and prepares the HTTP client for
// authenticated requests. Commands that talk to the API call this first.
func EnsureSession() error {
	creds, err := credentials.Load()
	if err != nil {
		logger.Error("Failed to load credentials", "error", err)
		return err
	}

	if creds == nil || !creds.IsValid() {
		output.PrintError("Not logged in. Please run 'campuslink auth login'")
		return errors.AuthError("not authenticated").
			WithSuggestion("Run 'campuslink auth login' to authenticate")
	}

	client.Init()
	client.SetAuthToken(creds.AccessToken)
	api.SetViewer(creds.UserID)
	return nil
}
