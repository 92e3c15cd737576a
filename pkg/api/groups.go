package api

import (
	"fmt"

	"github.com/campuslink/cli/pkg/client"
	"github.com/campuslink/cli/pkg/logger"
)

// CreateGroupRequest is the request to create a group
type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Privacy     string `json:"privacy,omitempty"`
	CoverImage  string `json:"cover_image,omitempty"`
}

// GetGroups retrieves all groups visible to the viewer
func GetGroups() ([]Group, error) {
	logger.Debug("Fetching groups")

	var raw []rawGroup

	resp, err := client.GetClient().
		R().
		SetResult(&raw).
		Get("/groups/")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	groups := make([]Group, 0, len(raw))
	for _, g := range raw {
		groups = append(groups, normalizeGroup(g))
	}
	return groups, nil
}

// CreateGroup creates a group, uploading the cover image first if given
func CreateGroup(name, description, privacy, coverPath string) (*Group, error) {
	logger.Debug("Creating group", "name", name)

	req := CreateGroupRequest{Name: name, Description: description, Privacy: privacy}

	if coverPath != "" {
		url, err := UploadFile(coverPath)
		if err != nil {
			return nil, err
		}
		req.CoverImage = url
	}

	var raw rawGroup

	resp, err := client.GetClient().
		R().
		SetBody(req).
		SetResult(&raw).
		Post("/groups/")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	group := normalizeGroup(raw)
	return &group, nil
}

// JoinGroup joins a group. For private groups the membership may come back
// pending rather than joined.
func JoinGroup(groupID string) error {
	logger.Debug("Joining group", "group_id", groupID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/groups/%s/join", groupID))

	return CheckResponse(resp, err)
}

// GetGroupPosts retrieves one page of a group's posts
func GetGroupPosts(groupID string, page, pageSize int) ([]Post, error) {
	logger.Debug("Fetching group posts", "group_id", groupID, "page", page)

	var raw []rawPost

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"skip":  fmt.Sprintf("%d", page*pageSize),
			"limit": fmt.Sprintf("%d", pageSize),
		}).
		SetResult(&raw).
		Get(fmt.Sprintf("/groups/%s/posts/", groupID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(raw))
	for _, p := range raw {
		posts = append(posts, normalizePost(p, ViewerID()))
	}
	return posts, nil
}

// CreateGroupPost creates a post inside a group
func CreateGroupPost(groupID, caption, imagePath string) (*Post, error) {
	logger.Debug("Creating group post", "group_id", groupID)

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
		Post(fmt.Sprintf("/groups/%s/posts/", groupID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	post := normalizePost(raw, ViewerID())
	return &post, nil
}
