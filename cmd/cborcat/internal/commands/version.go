package commands

import (
	"fmt"
	"runtime"

	"github.com/argon-chat/rcbor/rcbor"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cborcat %s (commit: %s, built: %s)\n", Version, Commit, Date)
		fmt.Printf("  %s\n", rcbor.VersionInfo())
		fmt.Printf("  Go version: %s\n", runtime.Version())
		fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}
