// Zigbridge-relay is a command relay between a Zigbee gateway and its
// channels.
//
// It connects to a gateway's WebSocket command stream, applies each
// channel's configured reversal overlay (on/off, up/down, bool and percent
// inversion) to incoming commands, and echoes the transformed commands
// back. Channel settings come from the local YAML registry maintained by
// zigbridge-cfg; the gateway API token comes from the environment and is
// never written to disk.
//
// Usage:
//
//	zigbridge-relay run [flags]
//
// See 'zigbridge-relay run --help' for available options.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zigbridge/zigbridge/internal/channel"
	"github.com/zigbridge/zigbridge/internal/channelconfig"
	"github.com/zigbridge/zigbridge/internal/config"
	"github.com/zigbridge/zigbridge/internal/discovery"
	"github.com/zigbridge/zigbridge/internal/gateway"
	"github.com/zigbridge/zigbridge/internal/logging"
	"github.com/zigbridge/zigbridge/internal/version"
)

// TokenEnvVar names the environment variable carrying the gateway API
// token. The token is read from the environment only; it is never stored
// in the registry.
const TokenEnvVar = "ZIGBRIDGE_GATEWAY_TOKEN"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zigbridge-relay",
	Short: "Zigbridge Command Relay",
	Long: `A relay that applies per-channel command reversal between a Zigbee
gateway and its channels.

The relay subscribes to the gateway's WebSocket command stream and echoes
each command back after applying the channel's configured inversion
overlay. Channels without an overlay pass through unchanged.

Note: For channel configuration, use the separate 'zigbridge-cfg' utility.`,
	Version: version.Version,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// Run command and flags
var (
	gatewayHost     string
	gatewayPort     int
	discoverTimeout int
	logLevel        string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the command relay",
	Long: `Connect to a Zigbee gateway and relay commands until interrupted.

The gateway address is taken from --gateway, then from the registry, and
finally from mDNS discovery. The API token is read from the ` + TokenEnvVar + `
environment variable.`,
	Example: `  # Use the gateway stored by 'zigbridge-cfg login'
  zigbridge-relay run

  # Connect to a specific gateway with debug logging
  zigbridge-relay run --gateway 192.168.1.40 --log-level debug`,
	RunE: runRelay,
}

func init() {
	runCmd.Flags().StringVar(&gatewayHost, "gateway", "", "Gateway host (overrides registry and discovery)")
	runCmd.Flags().IntVar(&gatewayPort, "port", discovery.DefaultPort, "Gateway WebSocket port")
	runCmd.Flags().IntVar(&discoverTimeout, "timeout", 10, "Discovery timeout in seconds")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

func runRelay(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()
	logger := logging.GetLogger()

	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	endpoint, err := resolveEndpoint(registry)
	if err != nil {
		return err
	}

	table, err := buildTable(registry, logger)
	if err != nil {
		return err
	}
	logger.Info("Loaded channel table", zap.Int("channels", table.Len()))

	token := os.Getenv(TokenEnvVar)
	if token == "" {
		logger.Warn("No gateway token in environment, connecting unauthenticated",
			zap.String("env_var", TokenEnvVar))
	}

	client := gateway.NewClient(endpoint, token, table, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Shutting down")
		cancel()
	}()

	dialCtx, dialCancel := context.WithTimeout(ctx, 15*time.Second)
	defer dialCancel()
	if err := client.Connect(dialCtx); err != nil {
		return fmt.Errorf("failed to connect to gateway: %w", err)
	}
	logging.LogGatewayEvent(endpoint, "connected")

	fmt.Printf("Relaying commands from %s (%d channel(s) configured). Press Ctrl+C to stop.\n",
		endpoint, table.Len())

	if err := client.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("relay terminated: %w", err)
	}

	return nil
}

// resolveEndpoint picks the gateway endpoint from the flag, the registry,
// or mDNS discovery, in that order.
func resolveEndpoint(registry *config.Registry) (string, error) {
	if gatewayHost != "" {
		return gateway.Endpoint(gatewayHost, gatewayPort), nil
	}

	if prefs := registry.Gateway; prefs != nil && prefs.Host != "" {
		port := prefs.Port
		if port == 0 {
			port = discovery.DefaultPort
		}
		return gateway.Endpoint(prefs.Host, port), nil
	}

	if registry.Gateway != nil && !registry.Gateway.AutoDiscover {
		return "", fmt.Errorf("no gateway configured and auto-discovery is disabled; " +
			"run 'zigbridge-cfg login' or pass --gateway")
	}

	fmt.Printf("No gateway configured, scanning (timeout: %ds)...\n", discoverTimeout)
	gateways, err := discovery.ScanForGateways(time.Duration(discoverTimeout) * time.Second)
	if err != nil {
		return "", fmt.Errorf("discovery failed: %w", err)
	}
	switch len(gateways) {
	case 0:
		return "", fmt.Errorf("no gateways found. Use --gateway or run 'zigbridge-cfg login'")
	case 1:
		fmt.Printf("Found gateway: %s\n", gateways[0])
		return gateways[0].Endpoint(), nil
	default:
		return "", fmt.Errorf("found %d gateways; use --gateway to pick one", len(gateways))
	}
}

// buildTable turns the registry's channel entries into a lookup table of
// live channels with their configuration handlers.
func buildTable(registry *config.Registry, logger *zap.Logger) (*channel.Table, error) {
	channels := make([]*channel.Channel, 0, len(registry.Channels))
	for id, settings := range registry.Channels {
		params := make(channelconfig.Configuration, len(settings.Parameters))
		for key, value := range settings.Parameters {
			params[key] = value
		}

		ch, err := channel.New(id, settings.Name, params, logger)
		if err != nil {
			return nil, fmt.Errorf("invalid channel %s in registry: %w", id, err)
		}
		channels = append(channels, ch)
	}

	return channel.NewTable(channels)
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("zigbridge-relay %s (commit: %s)\n", version.Version, version.Commit)
	},
}
