package cmd

import (
	"github.com/spf13/cobra"

	"github.com/campuslink/cli/pkg/service"
)

var (
	profilePages      int
	profileFullName   string
	profileBio        string
	profileUniversity string
	profileAvatar     string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Profile commands",
}

var profileViewCmd = &cobra.Command{
	Use:   "view <username>",
	Short: "View a user's profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewProfileService(store, mutations).ViewProfile(args[0])
	},
}

var profilePostsCmd = &cobra.Command{
	Use:   "posts <username>",
	Short: "View a user's posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewProfileService(store, mutations).ViewUserPosts(args[0], profilePages)
	},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewProfileService(store, mutations).
			UpdateProfile(profileFullName, profileBio, profileUniversity, profileAvatar)
	},
}

var profileSuggestionsCmd = &cobra.Command{
	Use:   "suggestions",
	Short: "People you may know",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewProfileService(store, mutations).ViewSuggestions()
	},
}

var profileFriendsCmd = &cobra.Command{
	Use:   "friends",
	Short: "List your friends",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewProfileService(store, mutations).ViewFriends()
	},
}

var followCmd = &cobra.Command{
	Use:   "follow <username>",
	Short: "Follow or unfollow a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewProfileService(store, mutations).ToggleFollow(args[0])
	},
}

func init() {
	profilePostsCmd.Flags().IntVar(&profilePages, "pages", 1, "Number of pages to load")
	profileEditCmd.Flags().StringVar(&profileFullName, "name", "", "Full name")
	profileEditCmd.Flags().StringVar(&profileBio, "bio", "", "Bio")
	profileEditCmd.Flags().StringVar(&profileUniversity, "university", "", "University")
	profileEditCmd.Flags().StringVar(&profileAvatar, "avatar", "", "Path to an avatar image")

	profileCmd.AddCommand(profileViewCmd)
	profileCmd.AddCommand(profilePostsCmd)
	profileCmd.AddCommand(profileEditCmd)
	profileCmd.AddCommand(profileSuggestionsCmd)
	profileCmd.AddCommand(profileFriendsCmd)
}
