package cmd

import (
	"github.com/spf13/cobra"

	"github.com/campuslink/cli/pkg/service"
)

var (
	postCaption string
	postImage   string
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post commands",
	Long:  "Create and interact with posts",
}

var postCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new post",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewPostService(store, mutations).CreatePost(postCaption, postImage)
	},
}

var postLikeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Like or unlike a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewPostService(store, mutations).ToggleLike(args[0])
	},
}

func init() {
	postCreateCmd.Flags().StringVarP(&postCaption, "caption", "c", "", "Post caption")
	postCreateCmd.Flags().StringVarP(&postImage, "image", "i", "", "Path to an image file")

	postCmd.AddCommand(postCreateCmd)
	postCmd.AddCommand(postLikeCmd)
}
