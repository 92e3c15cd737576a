package api

import (
	"fmt"

	"github.com/campuslink/cli/pkg/client"
	"github.com/campuslink/cli/pkg/logger"
)

// CreateCommentRequest is the request to create a comment
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// GetComments retrieves the comments on a post, oldest first
func GetComments(postID string) ([]Comment, error) {
	logger.Debug("Fetching comments", "post_id", postID)

	var raw []rawComment

	resp, err := client.GetClient().
		R().
		SetResult(&raw).
		Get(fmt.Sprintf("/posts/%s/comments/", postID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	comments := make([]Comment, 0, len(raw))
	for _, c := range raw {
		comments = append(comments, normalizeComment(c))
	}
	return comments, nil
}

// CreateComment creates a new comment on a post
func CreateComment(postID, content string) (*Comment, error) {
	logger.Debug("Creating comment", "post_id", postID)

	var raw rawComment

	resp, err := client.GetClient().
		R().
		SetBody(CreateCommentRequest{Content: content}).
		SetResult(&raw).
		Post(fmt.Sprintf("/posts/%s/comments/", postID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	comment := normalizeComment(raw)
	return &comment, nil
}
