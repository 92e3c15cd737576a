package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/campuslink/cli/pkg/service"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Comment commands",
}

var commentListCmd = &cobra.Command{
	Use:   "list <post-id>",
	Short: "View a post's comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewCommentService(store, mutations).ViewComments(args[0])
	},
}

var commentAddCmd = &cobra.Command{
	Use:   "add <post-id> <text>...",
	Short: "Comment on a post",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		content := strings.Join(args[1:], " ")
		return service.NewCommentService(store, mutations).AddComment(args[0], content)
	},
}

func init() {
	commentCmd.AddCommand(commentListCmd)
	commentCmd.AddCommand(commentAddCmd)
}
