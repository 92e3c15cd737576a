package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/campuslink/cli/pkg/service"
)

var messageFirst string

var messageCmd = &cobra.Command{
	Use:     "message",
	Aliases: []string{"dm"},
	Short:   "Direct message commands",
}

var messageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewMessageService(store, mutations).ListChats()
	},
}

var messageViewCmd = &cobra.Command{
	Use:   "view <chat-id>",
	Short: "View a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewMessageService(store, mutations).ViewMessages(args[0])
	},
}

var messageSendCmd = &cobra.Command{
	Use:   "send <chat-id> <text>...",
	Short: "Send a message",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		content := strings.Join(args[1:], " ")
		return service.NewMessageService(store, mutations).Send(args[0], content)
	},
}

var messageStartCmd = &cobra.Command{
	Use:   "start <user-id>",
	Short: "Start a conversation with a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewMessageService(store, mutations).StartChat(args[0], messageFirst)
	},
}

func init() {
	messageStartCmd.Flags().StringVarP(&messageFirst, "message", "m", "", "First message to send")

	messageCmd.AddCommand(messageListCmd)
	messageCmd.AddCommand(messageViewCmd)
	messageCmd.AddCommand(messageSendCmd)
	messageCmd.AddCommand(messageStartCmd)
}
