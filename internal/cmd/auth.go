package cmd

import (
	"github.com/spf13/cobra"

	"github.com/campuslink/cli/pkg/service"
)

var (
	loginEmail     string
	signupUsername string
	signupEmail    string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Login, signup, logout, and account info",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to CampusLink",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService().Login(loginEmail)
	},
}

var authSignupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService().Signup(signupUsername, signupEmail)
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from CampusLink",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService().Logout()
	},
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService().WhoAmI()
	},
}

func init() {
	authLoginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address (prompted if omitted)")
	authSignupCmd.Flags().StringVar(&signupUsername, "username", "", "Username (prompted if omitted)")
	authSignupCmd.Flags().StringVar(&signupEmail, "email", "", "Email address (prompted if omitted)")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authSignupCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)
}
