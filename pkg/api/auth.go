package api

import (
	json "github.com/json-iterator/go"

	"github.com/campuslink/cli/pkg/client"
	"github.com/campuslink/cli/pkg/logger"
)

// viewerID is the authenticated user's id, used to resolve viewer-relative
// flags (IsLiked, IsFollowing) when normalizing raw records.
var viewerID string

// SetViewer records the authenticated user's id for normalization.
func SetViewer(id string) {
	viewerID = id
}

// ViewerID returns the authenticated user's id, or "" when logged out.
func ViewerID() string {
	return viewerID
}

// TokenResponse is the OAuth2 password-flow token envelope
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginResult bundles the token with the normalized current user
type LoginResult struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// Login authenticates with email and password against the OAuth2 token
// endpoint, then fetches the current user's profile.
func Login(email, password string) (*LoginResult, error) {
	logger.Debug("Attempting login", "email", email)

	var tokenResp TokenResponse

	resp, err := client.GetClient().
		R().
		SetFormData(map[string]string{
			"username": email, // OAuth2 password flow expects "username"
			"password": password,
		}).
		SetResult(&tokenResp).
		Post("/token")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	client.SetAuthToken(tokenResp.AccessToken)

	user, err := GetCurrentUser()
	if err != nil {
		return nil, err
	}
	SetViewer(user.ID)

	logger.Debug("Login successful", "username", user.Username)
	return &LoginResult{AccessToken: tokenResp.AccessToken, User: *user}, nil
}

// Signup registers a new account and logs in
func Signup(username, email, password string) (*LoginResult, error) {
	logger.Debug("Signing up", "username", username)

	body := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}

	reqBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/users/")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return Login(email, password)
}

// GetCurrentUser gets the current authenticated user
func GetCurrentUser() (*User, error) {
	logger.Debug("Fetching current user")

	var raw rawUser

	resp, err := client.GetClient().
		R().
		SetResult(&raw).
		Get("/users/me/")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	user := normalizeUser(raw)
	logger.Debug("Current user fetched", "username", user.Username)
	return &user, nil
}
