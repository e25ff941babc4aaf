// Zigbridge-cfg is a configuration utility for Zigbee channel overlays.
//
// It manages per-channel command reversal settings (on/off, up/down and
// percent inversion), discovers Zigbee gateways via mDNS, and provides an
// interactive editor for channel parameters. Settings are kept in a local
// YAML registry; gateway API tokens are never written to disk.
//
// Usage:
//
//	zigbridge-cfg [command] [flags]
//
// See 'zigbridge-cfg --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zigbridge/zigbridge/internal/logging"
	"github.com/zigbridge/zigbridge/internal/version"
)

func main() {
	// Silent unless ZIGBRIDGE_LOG_LEVEL is set
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zigbridge-cfg",
	Short: "Zigbridge Channel Configuration Utility",
	Long: `A standalone utility for configuring Zigbee channel command reversal.

Manages per-channel overlay parameters (on/off and percent inversion),
discovers gateways on the local network, and edits channel settings
interactively. Settings live in a local YAML registry; gateway tokens
are never persisted.

If no command is specified, the configured channels are listed.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: list channels when no subcommand provided
		return runChannels(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("zigbridge-cfg %s (commit: %s)\n", version.Version, version.Commit)
	},
}
