package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/campuslink/cli/pkg/cache"
	"github.com/campuslink/cli/pkg/config"
	"github.com/campuslink/cli/pkg/logger"
	"github.com/campuslink/cli/pkg/optimistic"
	"github.com/campuslink/cli/pkg/output"
)

var (
	verbose    bool
	configPath string
	outputFmt  string

	// One cache store and one mutation coordinator per invocation. Every
	// service reads and writes through these so optimistic patches,
	// rollbacks, and invalidations are visible everywhere.
	store     *cache.Store
	mutations *optimistic.Coordinator
)

var rootCmd = &cobra.Command{
	Use:   "campuslink",
	Short: "CampusLink - University social network",
	Long: `CampusLink is a command-line client for the CampusLink university
social network. Share posts, follow classmates, join campus groups,
watch stories, and message friends directly from the terminal.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.Init(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
			os.Exit(1)
		}

		logger.Init(verbose)

		if !output.ValidateOutputFormat(outputFmt) {
			fmt.Fprintf(os.Stderr, "Error: invalid output format %q (text, json, table)\n", outputFmt)
			os.Exit(1)
		}
		config.SetString("output.format", outputFmt)

		store = cache.NewStore()
		mutations = optimistic.NewCoordinator(store)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/campuslink/cli/config.toml)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", "text", "Output format: text, json, table")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(followCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(storyCmd)
	rootCmd.AddCommand(messageCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(versionCmd)
}
