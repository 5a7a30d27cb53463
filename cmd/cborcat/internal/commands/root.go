// Package commands implements the cborcat CLI commands.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	verbose bool
	log     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cborcat",
	Short: "cborcat inspects and produces compact CBOR for memory-constrained wire formats",
	Long: `cborcat encodes sample EDHOC/COSE-shaped fixtures, decodes hex-encoded
CBOR back into Go values, and walks an arbitrary encoded item to print its
structure without needing to know its schema in advance.

It exercises the rcbor library's prepend-only Writer and bounds-checked
Reader: no streaming I/O, no tags, no negative integers or floats.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
}

// Execute runs the root command. Called once from main.main.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command, for testing.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)
}
