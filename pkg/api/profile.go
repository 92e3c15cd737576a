package api

import (
	"fmt"

	"github.com/campuslink/cli/pkg/client"
	"github.com/campuslink/cli/pkg/logger"
)

// UpdateProfileRequest is the request to update the viewer's profile
type UpdateProfileRequest struct {
	FullName       string `json:"full_name,omitempty"`
	Bio            string `json:"bio,omitempty"`
	University     string `json:"university,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// GetProfile retrieves a user's profile by username
func GetProfile(username string) (*User, error) {
	logger.Debug("Fetching profile", "username", username)

	var raw rawUser

	resp, err := client.GetClient().
		R().
		SetResult(&raw).
		Get(fmt.Sprintf("/profiles/%s", username))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	user := normalizeUser(raw)
	return &user, nil
}

// UpdateProfile updates the viewer's profile. avatarPath, when non-empty,
// is uploaded first and its reference URL stored as the profile picture.
func UpdateProfile(req UpdateProfileRequest, avatarPath string) (*User, error) {
	logger.Debug("Updating profile")

	if avatarPath != "" {
		url, err := UploadFile(avatarPath)
		if err != nil {
			return nil, err
		}
		req.ProfilePicture = url
	}

	resp, err := client.GetClient().
		R().
		SetBody(req).
		Put("/profiles/me")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	// The profile endpoint returns the bare profile record; refetch the
	// full user so callers get a normalized view-model.
	return GetCurrentUser()
}

// FollowUser follows a user by id
func FollowUser(userID string) error {
	logger.Debug("Following user", "user_id", userID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/users/%s/follow", userID))

	return CheckResponse(resp, err)
}

// UnfollowUser unfollows a user by id
func UnfollowUser(userID string) error {
	logger.Debug("Unfollowing user", "user_id", userID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/users/%s/unfollow", userID))

	return CheckResponse(resp, err)
}

// SearchUsers searches users by free-text query
func SearchUsers(query string) ([]User, error) {
	logger.Debug("Searching users", "query", query)

	var raw []rawUser

	resp, err := client.GetClient().
		R().
		SetQueryParam("q", query).
		SetResult(&raw).
		Get("/search/users")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	users := make([]User, 0, len(raw))
	for _, u := range raw {
		users = append(users, normalizeUser(u))
	}
	return users, nil
}

// GetSuggestedUsers returns users the viewer might follow. The backend has
// no dedicated endpoint, so this is the search endpoint with the viewer
// filtered out.
func GetSuggestedUsers() ([]User, error) {
	users, err := SearchUsers("")
	if err != nil {
		return nil, err
	}

	suggestions := make([]User, 0, len(users))
	for _, u := range users {
		if u.ID != ViewerID() {
			suggestions = append(suggestions, u)
		}
	}
	return suggestions, nil
}

// GetFriends retrieves the viewer's friends list
func GetFriends() ([]User, error) {
	logger.Debug("Fetching friends")

	var raw []rawUser

	resp, err := client.GetClient().
		R().
		SetResult(&raw).
		Get("/friends/")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	friends := make([]User, 0, len(raw))
	for _, u := range raw {
		friends = append(friends, normalizeUser(u))
	}
	return friends, nil
}
