package service

import (
	"context"
	"fmt"

	"github.com/campuslink/cli/pkg/api"
	"github.com/campuslink/cli/pkg/cache"
	"github.com/campuslink/cli/pkg/credentials"
	"github.com/campuslink/cli/pkg/errors"
	"github.com/campuslink/cli/pkg/logger"
	"github.com/campuslink/cli/pkg/optimistic"
	"github.com/campuslink/cli/pkg/output"
)

// CommentService provides comment viewing and creation.
type CommentService struct {
	store     *cache.Store
	mutations *optimistic.Coordinator
}

// NewCommentService creates a new comment service.
func NewCommentService(store *cache.Store, mutations *optimistic.Coordinator) *CommentService {
	return &CommentService{store: store, mutations: mutations}
}

// ViewComments displays a post's comments, read-through cached.
func (cs *CommentService) ViewComments(postID string) error {
	if err := EnsureSession(); err != nil {
		return err
	}
	logger.Debug("Viewing comments", "post_id", postID)

	comments, err := cs.loadComments(postID)
	if err != nil {
		return fmt.Errorf("failed to fetch comments: %w", err)
	}

	if len(comments) == 0 {
		fmt.Println("No comments yet. Be the first!")
		return nil
	}

	if output.GetOutputFormat() != output.FormatText {
		return output.Print("Comments", comments)
	}

	fmt.Printf("\n💬 Comments (%d)\n\n", len(comments))
	displayComments(comments)
	return nil
}

// AddComment posts a comment. The comment appears in the cached list
// immediately; the list refetches once the server confirms, swapping the
// provisional entry for the real one.
func (cs *CommentService) AddComment(postID, content string) error {
	if err := EnsureSession(); err != nil {
		return err
	}

	// Validation failures never reach the optimistic path: nothing is
	// applied and nothing is sent.
	if content == "" {
		return errors.ValidationError("content", "comment cannot be empty")
	}

	post, err := findPost(cs.store, postID)
	if err != nil {
		return err
	}

	// Warm the comments cache so the optimistic append has a list to
	// patch and the display below reflects it.
	if _, err := cs.loadComments(postID); err != nil {
		logger.Warn("Could not preload comments", "post_id", postID, "error", err)
	}

	author := api.User{ID: api.ViewerID()}
	if creds, err := credentials.Load(); err == nil && creds != nil {
		author.Username = creds.Username
		author.FullName = creds.FullName
	}

	err = cs.mutations.Run(context.Background(), optimistic.CreateComment(post, author, content))
	if err == optimistic.ErrPending {
		output.PrintWarning("A comment for this post is already in flight")
		return nil
	}
	if err != nil {
		output.PrintError("Failed to add comment: %v", err)
		return err
	}

	output.PrintSuccess("✓ Comment added")
	return nil
}

// loadComments reads the comment list through the cache.
func (cs *CommentService) loadComments(postID string) ([]api.Comment, error) {
	key := cache.CommentsKey(postID)
	if value, ok := cs.store.Read(key); ok {
		if comments, ok := value.([]api.Comment); ok {
			return comments, nil
		}
	}

	comments, err := api.GetComments(postID)
	if err != nil {
		return nil, err
	}
	cs.store.Write(key, comments)
	return comments, nil
}
