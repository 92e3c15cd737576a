package service

import (
	"context"
	"fmt"
	"os"

	"github.com/campuslink/cli/pkg/api"
	"github.com/campuslink/cli/pkg/cache"
	"github.com/campuslink/cli/pkg/config"
	"github.com/campuslink/cli/pkg/errors"
	"github.com/campuslink/cli/pkg/logger"
	"github.com/campuslink/cli/pkg/optimistic"
	"github.com/campuslink/cli/pkg/output"
	"github.com/campuslink/cli/pkg/pager"
)

// ProfileService provides profile viewing, editing, and the social graph.
type ProfileService struct {
	store     *cache.Store
	mutations *optimistic.Coordinator
}

// NewProfileService creates a new profile service.
func NewProfileService(store *cache.Store, mutations *optimistic.Coordinator) *ProfileService {
	return &ProfileService{store: store, mutations: mutations}
}

// ViewProfile displays a user's profile and recent posts.
func (ps *ProfileService) ViewProfile(username string) error {
	if err := EnsureSession(); err != nil {
		return err
	}
	logger.Debug("Viewing profile", "username", username)

	user, err := ps.loadProfile(username)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	if output.GetOutputFormat() == output.FormatJSON {
		return output.Print("Profile", user)
	}

	fmt.Printf("\n")
	boldText.Printf("%s", user.FullName)
	dimText.Printf(" @%s\n", user.Username)
	fmt.Printf("%s\n", user.University)
	if user.Bio != "" {
		fmt.Printf("%s\n", user.Bio)
	}
	follows := ""
	if user.IsFollowing {
		follows = " · following"
	}
	dimText.Printf("%d followers · %d following%s\n\n", user.Followers, user.Following, follows)

	return ps.ViewUserPosts(username, 1)
}

// ViewUserPosts displays a user's post list through the pagination
// controller.
func (ps *ProfileService) ViewUserPosts(username string, pages int) error {
	if err := EnsureSession(); err != nil {
		return err
	}

	pageSize := config.GetInt("api.page_size")
	p := pager.New(ps.store, cache.ProfilePostsKey(username), pageSize,
		func(page, pageSize int) ([]api.Post, error) {
			return api.GetUserPosts(username, page, pageSize)
		})

	for i := 0; i < pages; i++ {
		if err := p.FetchNext(); err != nil {
			return fmt.Errorf("failed to fetch posts: %w", err)
		}
		if p.State() == pager.StateExhausted {
			break
		}
	}

	posts := p.Items()
	if len(posts) == 0 {
		fmt.Printf("@%s hasn't posted yet.\n", username)
		return nil
	}

	if output.GetOutputFormat() != output.FormatText {
		return output.PrintList("Posts", feedListPayload(posts), postColumns)
	}

	fmt.Printf("Posts by @%s:\n\n", username)
	displayPosts(posts)
	return nil
}

// UpdateProfile edits the viewer's profile. Empty fields are left as-is.
func (ps *ProfileService) UpdateProfile(fullName, bio, university, avatarPath string) error {
	if err := EnsureSession(); err != nil {
		return err
	}

	if fullName == "" && bio == "" && university == "" && avatarPath == "" {
		return errors.ValidationError("profile", "nothing to update")
	}
	if avatarPath != "" {
		if _, err := os.Stat(avatarPath); err != nil {
			return errors.FileNotFoundError(avatarPath)
		}
	}

	output.PrintInfo("Updating profile...")
	user, err := api.UpdateProfile(api.UpdateProfileRequest{
		FullName:   fullName,
		Bio:        bio,
		University: university,
	}, avatarPath)
	if err != nil {
		output.PrintError("Failed to update profile: %v", err)
		return err
	}

	ps.store.Write(cache.ProfileKey(user.Username), *user)

	output.PrintSuccess("✓ Profile updated")
	return nil
}

// ToggleFollow follows or unfollows a user. Follower count and the
// following flag flip immediately and roll back on failure.
func (ps *ProfileService) ToggleFollow(username string) error {
	if err := EnsureSession(); err != nil {
		return err
	}

	user, err := ps.loadProfile(username)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	verb := "Followed"
	if user.IsFollowing {
		verb = "Unfollowed"
	}

	err = ps.mutations.Run(context.Background(), optimistic.ToggleFollow(*user))
	if err == optimistic.ErrPending {
		output.PrintWarning("A follow change for @%s is already in flight", username)
		return nil
	}
	if err != nil {
		output.PrintError("Failed to update follow: %v", err)
		return err
	}

	output.PrintSuccess("✓ %s @%s", verb, username)
	return nil
}

// ViewSuggestions displays people the viewer might know.
func (ps *ProfileService) ViewSuggestions() error {
	if err := EnsureSession(); err != nil {
		return err
	}

	key := cache.SuggestionsKey()
	var users []api.User
	if value, ok := ps.store.Read(key); ok {
		users, _ = value.([]api.User)
	}
	if users == nil {
		fetched, err := api.GetSuggestedUsers()
		if err != nil {
			return fmt.Errorf("failed to fetch suggestions: %w", err)
		}
		ps.store.Write(key, fetched)
		users = fetched
	}

	if len(users) == 0 {
		fmt.Println("No suggestions right now.")
		return nil
	}

	if output.GetOutputFormat() != output.FormatText {
		return output.Print("Suggestions", users)
	}

	fmt.Printf("\n👥 People You May Know\n\n")
	displayUsers(users)
	return nil
}

// ViewFriends displays mutual follows.
func (ps *ProfileService) ViewFriends() error {
	if err := EnsureSession(); err != nil {
		return err
	}

	users, err := api.GetFriends()
	if err != nil {
		return fmt.Errorf("failed to fetch friends: %w", err)
	}

	if len(users) == 0 {
		fmt.Println("No friends yet. Follow classmates who follow you back!")
		return nil
	}

	if output.GetOutputFormat() != output.FormatText {
		return output.Print("Friends", users)
	}

	fmt.Printf("\n👥 Friends (%d)\n\n", len(users))
	displayUsers(users)
	return nil
}

// loadProfile reads a profile through the cache.
func (ps *ProfileService) loadProfile(username string) (*api.User, error) {
	key := cache.ProfileKey(username)
	if value, ok := ps.store.Read(key); ok {
		if user, ok := value.(api.User); ok {
			return &user, nil
		}
	}

	user, err := api.GetProfile(username)
	if err != nil {
		return nil, err
	}
	ps.store.Write(key, *user)
	return user, nil
}
