package cmd

import (
	"github.com/spf13/cobra"

	"github.com/campuslink/cli/pkg/service"
)

var (
	groupPages       int
	groupName        string
	groupDescription string
	groupPrivacy     string
	groupCover       string
	groupPostCaption string
	groupPostImage   string
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Campus group commands",
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List campus groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewGroupService(store, mutations).ListGroups()
	},
}

var groupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a group",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewGroupService(store, mutations).
			CreateGroup(groupName, groupDescription, groupPrivacy, groupCover)
	},
}

var groupJoinCmd = &cobra.Command{
	Use:   "join <group-id>",
	Short: "Join a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewGroupService(store, mutations).Join(args[0])
	},
}

var groupPostsCmd = &cobra.Command{
	Use:   "posts <group-id>",
	Short: "View a group's posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewGroupService(store, mutations).ViewGroupPosts(args[0], groupPages)
	},
}

var groupPostCmd = &cobra.Command{
	Use:   "post <group-id>",
	Short: "Post to a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewGroupService(store, mutations).
			CreateGroupPost(args[0], groupPostCaption, groupPostImage)
	},
}

func init() {
	groupCreateCmd.Flags().StringVar(&groupName, "name", "", "Group name")
	groupCreateCmd.Flags().StringVar(&groupDescription, "description", "", "Group description")
	groupCreateCmd.Flags().StringVar(&groupPrivacy, "privacy", "public", "Privacy: public, private, secret")
	groupCreateCmd.Flags().StringVar(&groupCover, "cover", "", "Path to a cover image")
	groupPostsCmd.Flags().IntVar(&groupPages, "pages", 1, "Number of pages to load")
	groupPostCmd.Flags().StringVarP(&groupPostCaption, "caption", "c", "", "Post caption")
	groupPostCmd.Flags().StringVarP(&groupPostImage, "image", "i", "", "Path to an image file")

	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupCreateCmd)
	groupCmd.AddCommand(groupJoinCmd)
	groupCmd.AddCommand(groupPostsCmd)
	groupCmd.AddCommand(groupPostCmd)
}
