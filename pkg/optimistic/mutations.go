package optimistic

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campuslink/cli/pkg/api"
	"github.com/campuslink/cli/pkg/cache"
)

// The declared mutation table. Each builder returns the full Spec for one
// mutation type: which cache entries it patches, the inverse patches, the
// network call, the reconciliation of server canonical values, and the
// fixed set of dependent keys it invalidates.

// postKeys is every cache entry that can hold a copy of post: the feed,
// the author's profile posts, and the group's post list when the post
// belongs to a group.
func postKeys(post api.Post) []cache.Key {
	keys := []cache.Key{
		cache.FeedKey(),
		cache.ProfilePostsKey(post.Author.Username),
	}
	if post.GroupID != "" {
		keys = append(keys, cache.GroupPostsKey(post.GroupID))
	}
	return keys
}

// ToggleLikePost builds the like/unlike mutation for post. The IsLiked
// flag and the like count always move together; the server call is a
// toggle, so the same spec serves both directions.
func ToggleLikePost(post api.Post) Spec {
	liked := post.IsLiked

	apply := func(p api.Post) api.Post {
		if liked {
			p.Likes--
			p.IsLiked = false
		} else {
			p.Likes++
			p.IsLiked = true
		}
		return p
	}
	revert := func(p api.Post) api.Post {
		if liked {
			p.Likes++
			p.IsLiked = true
		} else {
			p.Likes--
			p.IsLiked = false
		}
		return p
	}

	patches := make([]PatchSet, 0, 3)
	for _, key := range postKeys(post) {
		patches = append(patches, PatchSet{
			Key:    key,
			Apply:  cache.PostUpdater(post.ID, apply),
			Revert: cache.PostUpdater(post.ID, revert),
		})
	}

	spec := Spec{
		Action:   ActionLikePost,
		EntityID: post.ID,
		Patches:  patches,
		Call: func(ctx context.Context) (interface{}, error) {
			return api.LikePost(post.ID)
		},
		// Fold the server's canonical like count into this post only.
		Reconcile: func(store *cache.Store, result interface{}) {
			likeResp, ok := result.(*api.LikeResponse)
			if !ok || likeResp == nil {
				return
			}
			for _, key := range postKeys(post) {
				store.Patch(key, cache.PostUpdater(post.ID, func(p api.Post) api.Post {
					p.Likes = likeResp.LikesCount
					return p
				}))
			}
		},
	}
	if post.GroupID != "" {
		spec.Invalidates = []cache.Key{cache.GroupPostsKey(post.GroupID)}
	}
	return spec
}

// TempCommentPrefix marks synthetic comment ids created optimistically
// before the server assigns a real one.
const TempCommentPrefix = "temp-"

// CreateComment builds the comment-create mutation: a synthetic comment is
// appended to the post's comment list immediately and the post's comment
// count bumped; on success the comment list is invalidated so the next
// read refetches the server-confirmed list, replacing the synthetic entry.
func CreateComment(post api.Post, author api.User, content string) Spec {
	tempID := TempCommentPrefix + uuid.NewString()
	commentsKey := cache.CommentsKey(post.ID)

	synthetic := api.Comment{
		ID:        tempID,
		PostID:    post.ID,
		Author:    author,
		Content:   content,
		CreatedAt: time.Now(),
		Timestamp: "just now",
	}

	patches := []PatchSet{
		{
			Key: commentsKey,
			Apply: func(value interface{}) interface{} {
				comments, ok := value.([]api.Comment)
				if !ok {
					return value
				}
				out := make([]api.Comment, len(comments), len(comments)+1)
				copy(out, comments)
				return append(out, synthetic)
			},
			Revert: func(value interface{}) interface{} {
				comments, ok := value.([]api.Comment)
				if !ok {
					return value
				}
				out := make([]api.Comment, 0, len(comments))
				for _, c := range comments {
					if c.ID != tempID {
						out = append(out, c)
					}
				}
				return out
			},
		},
	}
	for _, key := range postKeys(post) {
		patches = append(patches, PatchSet{
			Key: key,
			Apply: cache.PostUpdater(post.ID, func(p api.Post) api.Post {
				p.Comments++
				return p
			}),
			Revert: cache.PostUpdater(post.ID, func(p api.Post) api.Post {
				p.Comments--
				return p
			}),
		})
	}

	return Spec{
		Action:   ActionComment,
		EntityID: post.ID,
		Patches:  patches,
		Call: func(ctx context.Context) (interface{}, error) {
			return api.CreateComment(post.ID, content)
		},
		Invalidates: []cache.Key{commentsKey},
	}
}

// ToggleFollow builds the follow/unfollow mutation for user. Patches the
// cached profile and the suggestions list; follower count and the
// IsFollowing flag move together.
func ToggleFollow(user api.User) Spec {
	following := user.IsFollowing

	apply := func(u api.User) api.User {
		if following {
			u.Followers--
			u.IsFollowing = false
		} else {
			u.Followers++
			u.IsFollowing = true
		}
		return u
	}
	revert := func(u api.User) api.User {
		if following {
			u.Followers++
			u.IsFollowing = true
		} else {
			u.Followers--
			u.IsFollowing = false
		}
		return u
	}

	userUpdater := func(fn func(api.User) api.User) func(interface{}) interface{} {
		return func(value interface{}) interface{} {
			return cache.UpdateUserValue(value, user.ID, fn)
		}
	}

	return Spec{
		Action:   ActionFollow,
		EntityID: user.ID,
		Patches: []PatchSet{
			{Key: cache.ProfileKey(user.Username), Apply: userUpdater(apply), Revert: userUpdater(revert)},
			{Key: cache.SuggestionsKey(), Apply: userUpdater(apply), Revert: userUpdater(revert)},
		},
		Call: func(ctx context.Context) (interface{}, error) {
			if following {
				return nil, api.UnfollowUser(user.ID)
			}
			return nil, api.FollowUser(user.ID)
		},
	}
}

// JoinGroup builds the group-join mutation. Public groups flip straight to
// joined; private groups go membership-pending. Joining invalidates the
// group's post list, since membership can expose posts the viewer could
// not see before.
func JoinGroup(group api.Group) Spec {
	apply := func(g api.Group) api.Group {
		if g.Privacy == api.GroupPrivate {
			g.Pending = true
		} else {
			g.IsJoined = true
			g.MemberCount++
		}
		return g
	}
	revert := func(g api.Group) api.Group {
		if g.Privacy == api.GroupPrivate {
			g.Pending = false
		} else {
			g.IsJoined = false
			g.MemberCount--
		}
		return g
	}

	groupUpdater := func(fn func(api.Group) api.Group) func(interface{}) interface{} {
		return func(value interface{}) interface{} {
			return cache.UpdateGroupValue(value, group.ID, fn)
		}
	}

	return Spec{
		Action:   ActionJoinGroup,
		EntityID: group.ID,
		Patches: []PatchSet{
			{Key: cache.GroupsKey(), Apply: groupUpdater(apply), Revert: groupUpdater(revert)},
		},
		Call: func(ctx context.Context) (interface{}, error) {
			return nil, api.JoinGroup(group.ID)
		},
		Invalidates: []cache.Key{cache.GroupPostsKey(group.ID)},
	}
}

// TempMessagePrefix marks synthetic message ids created optimistically
// before the server assigns a real one.
const TempMessagePrefix = "temp-msg-"

// SendMessage builds the direct-message mutation: the message appears in
// the conversation immediately with a synthetic id; on success the chat
// list is invalidated so previews and ordering refresh from the server.
func SendMessage(chatID, senderID, content string) Spec {
	tempID := TempMessagePrefix + uuid.NewString()
	messagesKey := cache.MessagesKey(chatID)

	synthetic := api.Message{
		ID:        tempID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now(),
		Timestamp: time.Now().Format("15:04"),
	}

	// Each send is its own entity so rapid messages to one chat never
	// coalesce with each other.
	return Spec{
		Action:   ActionSendMessage,
		EntityID: tempID,
		Patches: []PatchSet{
			{
				Key: messagesKey,
				Apply: func(value interface{}) interface{} {
					messages, ok := value.([]api.Message)
					if !ok {
						return value
					}
					out := make([]api.Message, len(messages), len(messages)+1)
					copy(out, messages)
					return append(out, synthetic)
				},
				Revert: func(value interface{}) interface{} {
					messages, ok := value.([]api.Message)
					if !ok {
						return value
					}
					out := make([]api.Message, 0, len(messages))
					for _, m := range messages {
						if m.ID != tempID {
							out = append(out, m)
						}
					}
					return out
				},
			},
		},
		Call: func(ctx context.Context) (interface{}, error) {
			return api.SendMessage(chatID, content)
		},
		// Replace the synthetic entry with the server-assigned message.
		Reconcile: func(store *cache.Store, result interface{}) {
			msg, ok := result.(*api.Message)
			if !ok || msg == nil {
				return
			}
			store.Patch(messagesKey, func(value interface{}) interface{} {
				messages, ok := value.([]api.Message)
				if !ok {
					return value
				}
				out := make([]api.Message, 0, len(messages))
				for _, m := range messages {
					if m.ID == tempID {
						out = append(out, *msg)
					} else {
						out = append(out, m)
					}
				}
				return out
			})
		},
		Invalidates: []cache.Key{cache.ChatsKey()},
	}
}

// ToggleLikeStory builds the story like mutation. Independent of the
// slideshow's navigation and timing.
func ToggleLikeStory(story api.Story) Spec {
	liked := story.IsLiked

	apply := func(s api.Story) api.Story {
		if liked {
			s.Likes--
			s.IsLiked = false
		} else {
			s.Likes++
			s.IsLiked = true
		}
		return s
	}
	revert := func(s api.Story) api.Story {
		if liked {
			s.Likes++
			s.IsLiked = true
		} else {
			s.Likes--
			s.IsLiked = false
		}
		return s
	}

	storyUpdater := func(fn func(api.Story) api.Story) func(interface{}) interface{} {
		return func(value interface{}) interface{} {
			return cache.UpdateStoryValue(value, story.ID, fn)
		}
	}

	return Spec{
		Action:   ActionLikeStory,
		EntityID: story.ID,
		Patches: []PatchSet{
			{Key: cache.StoriesFeedKey(), Apply: storyUpdater(apply), Revert: storyUpdater(revert)},
		},
		Call: func(ctx context.Context) (interface{}, error) {
			return nil, api.LikeStory(story.ID)
		},
	}
}
