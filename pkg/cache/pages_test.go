package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink/cli/pkg/api"
)

func post(id string, likes int) api.Post {
	return api.Post{ID: id, Likes: likes}
}

func TestPostPagesFlattenKeepsRequestOrder(t *testing.T) {
	pages := PostPages{Pages: [][]api.Post{
		{post("1", 0), post("2", 0)},
		{post("3", 0)},
	}}

	flat := pages.Flatten()
	require.Len(t, flat, 3)
	assert.Equal(t, "1", flat[0].ID)
	assert.Equal(t, "2", flat[1].ID)
	assert.Equal(t, "3", flat[2].ID)
	assert.Equal(t, 3, pages.Len())
}

func TestUpdatePostValueWalksPageBoundaries(t *testing.T) {
	pages := PostPages{
		Pages: [][]api.Post{
			{post("1", 0), post("2", 0)},
			{post("3", 5)},
		},
		Exhausted: true,
	}

	updated := UpdatePostValue(pages, "3", func(p api.Post) api.Post {
		p.Likes++
		return p
	})

	got, ok := updated.(PostPages)
	require.True(t, ok)
	assert.True(t, got.Exhausted)
	assert.Equal(t, 6, got.Pages[1][0].Likes)
	// The original is untouched.
	assert.Equal(t, 5, pages.Pages[1][0].Likes)
}

func TestUpdatePostValueFlatSliceAndSingle(t *testing.T) {
	bump := func(p api.Post) api.Post {
		p.Likes++
		return p
	}

	slice := UpdatePostValue([]api.Post{post("1", 1), post("2", 2)}, "2", bump)
	got := slice.([]api.Post)
	assert.Equal(t, 1, got[0].Likes)
	assert.Equal(t, 3, got[1].Likes)

	single := UpdatePostValue(post("7", 0), "7", bump)
	assert.Equal(t, 1, single.(api.Post).Likes)

	miss := UpdatePostValue(post("7", 0), "8", bump)
	assert.Equal(t, 0, miss.(api.Post).Likes)
}

func TestUpdatePostValueUnknownShapeUntouched(t *testing.T) {
	value := "not posts"
	assert.Equal(t, value, UpdatePostValue(value, "1", func(p api.Post) api.Post { return p }))
}

func TestUpdateUserValueSingleAndList(t *testing.T) {
	follow := func(u api.User) api.User {
		u.IsFollowing = true
		u.Followers++
		return u
	}

	single := UpdateUserValue(api.User{ID: "5"}, "5", follow)
	assert.True(t, single.(api.User).IsFollowing)

	list := UpdateUserValue([]api.User{{ID: "4"}, {ID: "5"}}, "5", follow)
	users := list.([]api.User)
	assert.False(t, users[0].IsFollowing)
	assert.True(t, users[1].IsFollowing)
}

func TestUpdateStoryValue(t *testing.T) {
	stories := []api.Story{{ID: "1", Views: 3}, {ID: "2", Views: 0}}

	updated := UpdateStoryValue(stories, "1", func(s api.Story) api.Story {
		s.Views++
		return s
	})

	got := updated.([]api.Story)
	assert.Equal(t, 4, got[0].Views)
	assert.Equal(t, 3, stories[0].Views, "original list untouched")
}

func TestUpdateGroupValue(t *testing.T) {
	groups := []api.Group{{ID: "1"}, {ID: "2", MemberCount: 9}}

	updated := UpdateGroupValue(groups, "2", func(g api.Group) api.Group {
		g.IsJoined = true
		g.MemberCount++
		return g
	})

	got := updated.([]api.Group)
	assert.False(t, got[0].IsJoined)
	assert.True(t, got[1].IsJoined)
	assert.Equal(t, 10, got[1].MemberCount)
}
