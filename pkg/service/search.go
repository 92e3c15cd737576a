package service

import (
	"fmt"

	"github.com/campuslink/cli/pkg/api"
	"github.com/campuslink/cli/pkg/errors"
	"github.com/campuslink/cli/pkg/logger"
	"github.com/campuslink/cli/pkg/output"
)

// SearchService provides people search.
type SearchService struct{}

// NewSearchService creates a new search service.
func NewSearchService() *SearchService {
	return &SearchService{}
}

// SearchUsers searches for users by name or username.
func (ss *SearchService) SearchUsers(query string) error {
	if err := EnsureSession(); err != nil {
		return err
	}
	if query == "" {
		return errors.ValidationError("query", "cannot be empty")
	}
	logger.Debug("Searching users", "query", query)

	users, err := api.SearchUsers(query)
	if err != nil {
		return fmt.Errorf("failed to search users: %w", err)
	}

	if len(users) == 0 {
		fmt.Printf("No users found for \"%s\"\n", query)
		return nil
	}

	if output.GetOutputFormat() != output.FormatText {
		return output.Print("Search Results", users)
	}

	fmt.Printf("\n🔍 Results for \"%s\"\n\n", query)
	displayUsers(users)
	return nil
}
