package cmd

import (
	"github.com/spf13/cobra"

	"github.com/campuslink/cli/pkg/service"
)

var feedPages int

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "View your feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewFeedService(store).ViewFeed(feedPages)
	},
}

func init() {
	feedCmd.Flags().IntVar(&feedPages, "pages", 1, "Number of pages to load")
}
