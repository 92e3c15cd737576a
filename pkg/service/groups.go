package service

import (
	"context"
	"fmt"
	"os"

	"github.com/campuslink/cli/pkg/api"
	"github.com/campuslink/cli/pkg/cache"
	"github.com/campuslink/cli/pkg/config"
	"github.com/campuslink/cli/pkg/errors"
	"github.com/campuslink/cli/pkg/logger"
	"github.com/campuslink/cli/pkg/optimistic"
	"github.com/campuslink/cli/pkg/output"
	"github.com/campuslink/cli/pkg/pager"
)

// GroupService provides campus group discovery, membership, and group
// posting.
type GroupService struct {
	store     *cache.Store
	mutations *optimistic.Coordinator
}

// NewGroupService creates a new group service.
func NewGroupService(store *cache.Store, mutations *optimistic.Coordinator) *GroupService {
	return &GroupService{store: store, mutations: mutations}
}

// ListGroups displays all campus groups, read-through cached.
func (gs *GroupService) ListGroups() error {
	if err := EnsureSession(); err != nil {
		return err
	}
	logger.Debug("Listing groups")

	groups, err := gs.loadGroups()
	if err != nil {
		return fmt.Errorf("failed to fetch groups: %w", err)
	}

	if len(groups) == 0 {
		fmt.Println("No groups on campus yet.")
		return nil
	}

	if output.GetOutputFormat() != output.FormatText {
		return output.Print("Groups", groups)
	}

	fmt.Printf("\n🏫 Campus Groups\n\n")
	displayGroups(groups)
	return nil
}

// CreateGroup creates a new campus group.
func (gs *GroupService) CreateGroup(name, description, privacy, coverPath string) error {
	if err := EnsureSession(); err != nil {
		return err
	}

	if name == "" {
		return errors.ValidationError("name", "cannot be empty")
	}
	switch privacy {
	case api.GroupPublic, api.GroupPrivate, api.GroupSecret:
	case "":
		privacy = api.GroupPublic
	default:
		return errors.ValidationError("privacy", "must be public, private, or secret")
	}
	if coverPath != "" {
		if _, err := os.Stat(coverPath); err != nil {
			return errors.FileNotFoundError(coverPath)
		}
	}

	output.PrintInfo("Creating group...")
	group, err := api.CreateGroup(name, description, privacy, coverPath)
	if err != nil {
		output.PrintError("Failed to create group: %v", err)
		return err
	}

	gs.store.Invalidate(cache.GroupsKey())

	output.PrintSuccess("✓ Group \"%s\" created (group %s)", group.Name, group.ID)
	return nil
}

// Join requests membership in a group. Public groups join immediately in
// the cached list; private groups show as pending until approved.
func (gs *GroupService) Join(groupID string) error {
	if err := EnsureSession(); err != nil {
		return err
	}

	group, err := gs.findGroup(groupID)
	if err != nil {
		return err
	}
	if group.IsJoined {
		output.PrintWarning("Already a member of %s", group.Name)
		return nil
	}
	if group.Pending {
		output.PrintWarning("Membership request for %s is still pending", group.Name)
		return nil
	}

	err = gs.mutations.Run(context.Background(), optimistic.JoinGroup(group))
	if err == optimistic.ErrPending {
		output.PrintWarning("A join request for this group is already in flight")
		return nil
	}
	if err != nil {
		output.PrintError("Failed to join group: %v", err)
		return err
	}

	if group.Privacy == api.GroupPrivate {
		output.PrintSuccess("✓ Membership requested for %s", group.Name)
	} else {
		output.PrintSuccess("✓ Joined %s", group.Name)
	}
	return nil
}

// ViewGroupPosts displays a group's post list.
func (gs *GroupService) ViewGroupPosts(groupID string, pages int) error {
	if err := EnsureSession(); err != nil {
		return err
	}

	pageSize := config.GetInt("api.page_size")
	p := pager.New(gs.store, cache.GroupPostsKey(groupID), pageSize,
		func(page, pageSize int) ([]api.Post, error) {
			return api.GetGroupPosts(groupID, page, pageSize)
		})

	for i := 0; i < pages; i++ {
		if err := p.FetchNext(); err != nil {
			return fmt.Errorf("failed to fetch group posts: %w", err)
		}
		if p.State() == pager.StateExhausted {
			break
		}
	}

	posts := p.Items()
	if len(posts) == 0 {
		fmt.Println("No posts in this group yet.")
		return nil
	}

	if output.GetOutputFormat() != output.FormatText {
		return output.PrintList("Group Posts", feedListPayload(posts), postColumns)
	}

	fmt.Printf("\nGroup posts:\n\n")
	displayPosts(posts)
	return nil
}

// CreateGroupPost publishes a post inside a group.
func (gs *GroupService) CreateGroupPost(groupID, caption, imagePath string) error {
	if err := EnsureSession(); err != nil {
		return err
	}

	if caption == "" && imagePath == "" {
		return errors.ValidationError("caption", "post needs a caption or an image")
	}
	if imagePath != "" {
		if _, err := os.Stat(imagePath); err != nil {
			return errors.FileNotFoundError(imagePath)
		}
	}

	output.PrintInfo("Publishing to group...")
	post, err := api.CreateGroupPost(groupID, caption, imagePath)
	if err != nil {
		output.PrintError("Failed to post: %v", err)
		return err
	}

	gs.store.Invalidate(cache.GroupPostsKey(groupID))

	output.PrintSuccess("✓ Posted to group (post %s)", post.ID)
	return nil
}

func (gs *GroupService) loadGroups() ([]api.Group, error) {
	key := cache.GroupsKey()
	if value, ok := gs.store.Read(key); ok {
		if groups, ok := value.([]api.Group); ok {
			return groups, nil
		}
	}

	groups, err := api.GetGroups()
	if err != nil {
		return nil, err
	}
	gs.store.Write(key, groups)
	return groups, nil
}

func (gs *GroupService) findGroup(groupID string) (api.Group, error) {
	groups, err := gs.loadGroups()
	if err != nil {
		return api.Group{}, fmt.Errorf("failed to fetch groups: %w", err)
	}
	for _, g := range groups {
		if g.ID == groupID {
			return g, nil
		}
	}
	return api.Group{}, errors.NotFoundError("group", groupID)
}
