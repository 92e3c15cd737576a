package cache

import "github.com/campuslink/cli/pkg/api"

// PostPages is the cached shape of a paginated post collection: pages in
// request order, plus the end-of-stream marker.
type PostPages struct {
	Pages     [][]api.Post
	Exhausted bool
}

// Flatten returns all posts in page order.
func (p PostPages) Flatten() []api.Post {
	total := 0
	for _, page := range p.Pages {
		total += len(page)
	}
	out := make([]api.Post, 0, total)
	for _, page := range p.Pages {
		out = append(out, page...)
	}
	return out
}

// Len returns the number of cached posts across all pages.
func (p PostPages) Len() int {
	total := 0
	for _, page := range p.Pages {
		total += len(page)
	}
	return total
}

// UpdatePostValue applies fn to the post with the given id inside a cached
// value, whatever its shape. Paginated values are walked page by page to
// locate and replace the matching item; flat slices and single posts are
// handled directly. Unknown shapes and missing ids leave the value as is.
func UpdatePostValue(value interface{}, postID string, fn func(api.Post) api.Post) interface{} {
	switch v := value.(type) {
	case PostPages:
		pages := make([][]api.Post, len(v.Pages))
		for i, page := range v.Pages {
			pages[i] = patchPostSlice(page, postID, fn)
		}
		return PostPages{Pages: pages, Exhausted: v.Exhausted}
	case []api.Post:
		return patchPostSlice(v, postID, fn)
	case api.Post:
		if v.ID == postID {
			return fn(v)
		}
		return v
	default:
		return value
	}
}

func patchPostSlice(posts []api.Post, postID string, fn func(api.Post) api.Post) []api.Post {
	out := make([]api.Post, len(posts))
	copy(out, posts)
	for i := range out {
		if out[i].ID == postID {
			out[i] = fn(out[i])
		}
	}
	return out
}

// PostUpdater adapts a post transform into a Patch updater for any cached
// value shape that can hold posts.
func PostUpdater(postID string, fn func(api.Post) api.Post) func(interface{}) interface{} {
	return func(value interface{}) interface{} {
		return UpdatePostValue(value, postID, fn)
	}
}

// UpdateStoryValue applies fn to the story with the given id in a cached
// story list.
func UpdateStoryValue(value interface{}, storyID string, fn func(api.Story) api.Story) interface{} {
	stories, ok := value.([]api.Story)
	if !ok {
		return value
	}
	out := make([]api.Story, len(stories))
	copy(out, stories)
	for i := range out {
		if out[i].ID == storyID {
			out[i] = fn(out[i])
		}
	}
	return out
}

// UpdateUserValue applies fn to the user with the given id, whether the
// cached value is a single user or a user list.
func UpdateUserValue(value interface{}, userID string, fn func(api.User) api.User) interface{} {
	switch v := value.(type) {
	case api.User:
		if v.ID == userID {
			return fn(v)
		}
		return v
	case []api.User:
		out := make([]api.User, len(v))
		copy(out, v)
		for i := range out {
			if out[i].ID == userID {
				out[i] = fn(out[i])
			}
		}
		return out
	default:
		return value
	}
}

// UpdateGroupValue applies fn to the group with the given id in a cached
// group list or single group.
func UpdateGroupValue(value interface{}, groupID string, fn func(api.Group) api.Group) interface{} {
	switch v := value.(type) {
	case api.Group:
		if v.ID == groupID {
			return fn(v)
		}
		return v
	case []api.Group:
		out := make([]api.Group, len(v))
		copy(out, v)
		for i := range out {
			if out[i].ID == groupID {
				out[i] = fn(out[i])
			}
		}
		return out
	default:
		return value
	}
}
