package service

import (
	"context"
	"fmt"
	"os"

	"github.com/campuslink/cli/pkg/api"
	"github.com/campuslink/cli/pkg/cache"
	"github.com/campuslink/cli/pkg/errors"
	"github.com/campuslink/cli/pkg/logger"
	"github.com/campuslink/cli/pkg/optimistic"
	"github.com/campuslink/cli/pkg/output"
)

// PostService provides post creation and like/unlike.
type PostService struct {
	store     *cache.Store
	mutations *optimistic.Coordinator
}

// NewPostService creates a new post service.
func NewPostService(store *cache.Store, mutations *optimistic.Coordinator) *PostService {
	return &PostService{store: store, mutations: mutations}
}

// CreatePost publishes a new post, optionally with an image.
func (ps *PostService) CreatePost(caption, imagePath string) error {
	if err := EnsureSession(); err != nil {
		return err
	}

	if caption == "" && imagePath == "" {
		return errors.ValidationError("caption", "post needs a caption or an image")
	}
	if imagePath != "" {
		if _, err := os.Stat(imagePath); err != nil {
			return errors.FileNotFoundError(imagePath)
		}
	}

	logger.Debug("Creating post", "has_image", imagePath != "")
	output.PrintInfo("Publishing post...")

	post, err := api.CreatePost(caption, imagePath)
	if err != nil {
		output.PrintError("Failed to create post: %v", err)
		return err
	}

	// A new post changes the feed and the author's post list.
	ps.store.Invalidate(cache.FeedKey())
	ps.store.Invalidate(cache.ProfilePostsKey(post.Author.Username))

	output.PrintSuccess("✓ Posted! (post %s)", post.ID)
	return nil
}

// ToggleLike likes or unlikes a post. The cached like state flips before
// the request is sent and rolls back if the server rejects it.
func (ps *PostService) ToggleLike(postID string) error {
	if err := EnsureSession(); err != nil {
		return err
	}

	post, err := findPost(ps.store, postID)
	if err != nil {
		return err
	}

	verb := "Liked"
	if post.IsLiked {
		verb = "Unliked"
	}

	err = ps.mutations.Run(context.Background(), optimistic.ToggleLikePost(post))
	if err == optimistic.ErrPending {
		output.PrintWarning("A like for this post is already in flight")
		return nil
	}
	if err != nil {
		output.PrintError("Failed to update like: %v", err)
		return err
	}

	if updated, ok := cachedPost(ps.store, postID); ok {
		fmt.Printf("%s post by @%s. ♥ %d\n", verb, updated.Author.Username, updated.Likes)
	} else {
		output.PrintSuccess("✓ %s post %s", verb, postID)
	}
	return nil
}
