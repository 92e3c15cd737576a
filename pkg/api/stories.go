package api

import (
	"fmt"

	"github.com/campuslink/cli/pkg/client"
	"github.com/campuslink/cli/pkg/logger"
)

// CreateStoryRequest is the request to create a story
type CreateStoryRequest struct {
	Content  string `json:"content,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// GetStoriesFeed retrieves the viewer's active stories feed
func GetStoriesFeed() ([]Story, error) {
	logger.Debug("Fetching stories feed")

	var raw []rawStory

	resp, err := client.GetClient().
		R().
		SetResult(&raw).
		Get("/stories/feed")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	stories := make([]Story, 0, len(raw))
	for _, s := range raw {
		stories = append(stories, normalizeStory(s, ViewerID()))
	}
	return stories, nil
}

// CreateStory creates a story, uploading the image first if given
func CreateStory(content, imagePath string) (*Story, error) {
	logger.Debug("Creating story", "has_image", imagePath != "")

	req := CreateStoryRequest{Content: content}

	if imagePath != "" {
		url, err := UploadFile(imagePath)
		if err != nil {
			return nil, err
		}
		req.ImageURL = url
	}

	var raw rawStory

	resp, err := client.GetClient().
		R().
		SetBody(req).
		SetResult(&raw).
		Post("/stories/")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	story := normalizeStory(raw, ViewerID())
	return &story, nil
}

// ViewStory records that the viewer saw a story
func ViewStory(storyID string) error {
	logger.Debug("Recording story view", "story_id", storyID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/stories/%s/view", storyID))

	return CheckResponse(resp, err)
}

// LikeStory toggles the viewer's like on a story
func LikeStory(storyID string) error {
	logger.Debug("Toggling story like", "story_id", storyID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/stories/%s/like", storyID))

	return CheckResponse(resp, err)
}
