package api

import (
	"fmt"

	"github.com/campuslink/cli/pkg/client"
	"github.com/campuslink/cli/pkg/logger"
)

// LikeResponse carries the server's canonical like count after a toggle
type LikeResponse struct {
	LikesCount int  `json:"likes_count"`
	Liked      bool `json:"liked"`
}

// CreatePostRequest is the request body for creating a post
type CreatePostRequest struct {
	Caption string `json:"caption"`
	Image   string `json:"image,omitempty"`
}

// GetFeed retrieves one ordered feed page using a skip/limit cursor.
// page is the zero-based page index.
func GetFeed(page, pageSize int) ([]Post, error) {
	logger.Debug("Fetching feed", "page", page, "page_size", pageSize)

	var raw []rawPost

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"skip":  fmt.Sprintf("%d", page*pageSize),
			"limit": fmt.Sprintf("%d", pageSize),
		}).
		SetResult(&raw).
		Get("/posts/")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(raw))
	for _, p := range raw {
		posts = append(posts, normalizePost(p, ViewerID()))
	}
	return posts, nil
}

// GetUserPosts retrieves a user's posts
func GetUserPosts(username string, page, pageSize int) ([]Post, error) {
	logger.Debug("Fetching user posts", "username", username, "page", page)

	var raw []rawPost

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"skip":  fmt.Sprintf("%d", page*pageSize),
			"limit": fmt.Sprintf("%d", pageSize),
		}).
		SetResult(&raw).
		Get(fmt.Sprintf("/users/%s/posts/", username))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(raw))
	for _, p := range raw {
		posts = append(posts, normalizePost(p, ViewerID()))
	}
	return posts, nil
}

// CreatePost creates a post. imagePath, when non-empty, is uploaded first
// and the returned reference URL attached to the post.
func CreatePost(caption, imagePath string) (*Post, error) {
	logger.Debug("Creating post", "has_image", imagePath != "")

	req := CreatePostRequest{Caption: caption}

	if imagePath != "" {
		url, err := UploadFile(imagePath)
		if err != nil {
			return nil, err
		}
		req.Image = url
	}

	var raw rawPost

	resp, err := client.GetClient().
		R().
		SetBody(req).
		SetResult(&raw).
		Post("/posts/")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	post := normalizePost(raw, ViewerID())
	return &post, nil
}

// LikePost toggles the viewer's like on a post and returns the canonical
// like count from the server.
func LikePost(postID string) (*LikeResponse, error) {
	logger.Debug("Toggling like", "post_id", postID)

	var response LikeResponse

	resp, err := client.GetClient().
		R().
		SetResult(&response).
		Post(fmt.Sprintf("/posts/%s/like", postID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return &response, nil
}
