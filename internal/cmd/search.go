package cmd

import (
	"github.com/spf13/cobra"

	"github.com/campuslink/cli/pkg/service"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for users",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewSearchService().SearchUsers(args[0])
	},
}
