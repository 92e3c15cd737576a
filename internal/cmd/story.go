package cmd

import (
	"github.com/spf13/cobra"

	"github.com/campuslink/cli/pkg/service"
)

var (
	storyContent string
	storyImage   string
	storyAuthor  string
)

var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "Story commands",
	Long:  "Watch and publish ephemeral stories",
}

var storyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stories feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewStoryService(store, mutations).ListStories()
	},
}

var storyWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch stories as a slideshow",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewStoryService(store, mutations).Watch(storyAuthor)
	},
}

var storyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a story",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewStoryService(store, mutations).CreateStory(storyContent, storyImage)
	},
}

var storyLikeCmd = &cobra.Command{
	Use:   "like <story-id>",
	Short: "Like or unlike a story",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewStoryService(store, mutations).ToggleLike(args[0])
	},
}

func init() {
	storyWatchCmd.Flags().StringVar(&storyAuthor, "author", "", "Only watch one author's stories")
	storyCreateCmd.Flags().StringVarP(&storyContent, "text", "t", "", "Story text")
	storyCreateCmd.Flags().StringVarP(&storyImage, "image", "i", "", "Path to an image file")

	storyCmd.AddCommand(storyListCmd)
	storyCmd.AddCommand(storyWatchCmd)
	storyCmd.AddCommand(storyCreateCmd)
	storyCmd.AddCommand(storyLikeCmd)
}
