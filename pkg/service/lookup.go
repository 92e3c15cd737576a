package service

import (
	"github.com/campuslink/cli/pkg/api"
	"github.com/campuslink/cli/pkg/cache"
	"github.com/campuslink/cli/pkg/config"
	"github.com/campuslink/cli/pkg/errors"
)

// findPost locates a post by id: cached feed first, then a fresh first
// feed page. Mutations need the full post record to know which cache
// entries hold copies of it.
func findPost(store *cache.Store, postID string) (api.Post, error) {
	if post, ok := cachedPost(store, postID); ok {
		return post, nil
	}

	pageSize := config.GetInt("api.page_size")
	posts, err := api.GetFeed(0, pageSize)
	if err != nil {
		return api.Post{}, err
	}
	store.Write(cache.FeedKey(), cache.PostPages{
		Pages:     [][]api.Post{posts},
		Exhausted: len(posts) < pageSize,
	})

	if post, ok := cachedPost(store, postID); ok {
		return post, nil
	}
	return api.Post{}, errors.NotFoundError("post", postID)
}

func cachedPost(store *cache.Store, postID string) (api.Post, bool) {
	if value, ok := store.Read(cache.FeedKey()); ok {
		if pages, ok := value.(cache.PostPages); ok {
			for _, post := range pages.Flatten() {
				if post.ID == postID {
					return post, true
				}
			}
		}
	}
	return api.Post{}, false
}
