package cmd

import (
	"github.com/spf13/cobra"

	"github.com/campuslink/cli/pkg/service"
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Notification commands",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "View your notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewNotificationService(store).List()
	},
}

var notificationsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch notifications live",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewNotificationService(store).Watch(cmd.Context())
	},
}

func init() {
	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsWatchCmd)
}
