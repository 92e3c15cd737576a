package api

import (
	"path/filepath"

	"github.com/campuslink/cli/pkg/client"
	"github.com/campuslink/cli/pkg/errors"
	"github.com/campuslink/cli/pkg/logger"
)

// UploadResponse is the media upload envelope
type UploadResponse struct {
	URL string `json:"url"`
}

// UploadFile uploads a local media file and returns its reference URL.
// Used before creating a post, story, or group that carries an image.
func UploadFile(path string) (string, error) {
	logger.Debug("Uploading file", "path", path)

	var response UploadResponse

	resp, err := client.GetClient().
		R().
		SetFile("file", path).
		SetResult(&response).
		Post("/upload/")

	if err := CheckResponse(resp, err); err != nil {
		return "", err
	}

	if response.URL == "" {
		return "", errors.NewCLIError(errors.ErrorTypeServer,
			"upload succeeded but no URL was returned for "+filepath.Base(path), nil)
	}

	return response.URL, nil
}
