package service

import (
	"fmt"

	"github.com/campuslink/cli/pkg/api"
	"github.com/campuslink/cli/pkg/cache"
	"github.com/campuslink/cli/pkg/config"
	"github.com/campuslink/cli/pkg/logger"
	"github.com/campuslink/cli/pkg/output"
	"github.com/campuslink/cli/pkg/pager"
)

// FeedService provides timeline operations backed by the shared cache.
type FeedService struct {
	store *cache.Store
}

// NewFeedService creates a new feed service over store.
func NewFeedService(store *cache.Store) *FeedService {
	return &FeedService{store: store}
}

// ViewFeed displays up to pages pages of the timeline, loading them
// incrementally through the pagination controller.
func (fs *FeedService) ViewFeed(pages int) error {
	if err := EnsureSession(); err != nil {
		return err
	}
	logger.Debug("Viewing feed", "pages", pages)

	pageSize := config.GetInt("api.page_size")
	p := pager.New(fs.store, cache.FeedKey(), pageSize, api.GetFeed)

	for i := 0; i < pages; i++ {
		if err := p.FetchNext(); err != nil {
			if i == 0 {
				return fmt.Errorf("failed to fetch feed: %w", err)
			}
			output.PrintWarning("Stopped after %d page(s): %v", i, err)
			break
		}
		if p.State() == pager.StateExhausted {
			break
		}
	}

	posts := p.Items()
	if len(posts) == 0 {
		fmt.Println("No posts in your feed yet. Follow some classmates!")
		return nil
	}

	if output.GetOutputFormat() != output.FormatText {
		return output.PrintList("Feed", feedListPayload(posts), postColumns)
	}

	fmt.Printf("\n📰 Your Feed\n\n")
	displayPosts(posts)
	if p.State() == pager.StateExhausted {
		dimText.Println("End of feed.")
	} else {
		dimText.Println("More posts available. Use --pages to load more.")
	}
	return nil
}

func feedListPayload(posts []api.Post) interface{} {
	if output.GetOutputFormat() == output.FormatTable {
		return postRows(posts)
	}
	return posts
}
