// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sciencemesh-admin",
	Short: "sciencemesh-admin manages the ScienceMesh registration of a site",
	Long: `sciencemesh-admin is a small web service that stores the ScienceMesh
settings of a site (API key, site name and URL, usage counters) and exposes
the public feature settings to clients.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(
		&configPath,
		"config",
		"c",
		"",
		"Directory containing main.toml (default ./etc/)",
	)
}
