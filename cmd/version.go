package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (set at build time)
var (
	appVersion   = "dev"
	appBuildDate = "unknown"
)

// SetVersionInfo sets the version information from build-time variables
func SetVersionInfo(version, buildDate string) {
	appVersion = version
	appBuildDate = buildDate
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ghunsub %s (built %s)\n", appVersion, appBuildDate)
	},
}
