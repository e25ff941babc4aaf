package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zigbridge/zigbridge/internal/channel"
	"github.com/zigbridge/zigbridge/internal/channelconfig"
	"github.com/zigbridge/zigbridge/internal/command"
	"github.com/zigbridge/zigbridge/internal/config"
	"github.com/zigbridge/zigbridge/internal/discovery"
	"github.com/zigbridge/zigbridge/internal/editor/tui"
	"github.com/zigbridge/zigbridge/internal/gateway"
	"github.com/zigbridge/zigbridge/internal/logging"
)

// Command flags
var (
	gatewayHost  string
	gatewayPort  int
	scanTimeout  int
	outputFormat string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, json)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(channelsCmd)
	rootCmd.AddCommand(paramsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(invertCmd)
	rootCmd.AddCommand(loginCmd)
}

// scanCmd discovers gateways on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for Zigbee gateways on the network",
	Long: `Scan for Zigbee gateways using mDNS/DNS-SD discovery.

This command listens for mDNS broadcasts from Zigbee gateways and displays
all discovered gateways with their addresses, serial numbers, and metadata.`,
	Example: `  # Scan for 10 seconds (default)
  zigbridge-cfg scan

  # Quick 3-second scan
  zigbridge-cfg scan --timeout 3`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 10, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for Zigbee gateways (timeout: %ds)...\n\n", scanTimeout)

	gateways, err := discovery.ScanForGateways(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(gateways) == 0 {
		fmt.Println("No gateways found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the gateway is powered on and on the same network")
		fmt.Println("  - Try increasing --timeout for slower networks")
		fmt.Println("  - Use 'login --gateway <host>' to configure one manually")
		return nil
	}

	fmt.Printf("Found %d gateway(s):\n\n", len(gateways))

	for i, gw := range gateways {
		fmt.Printf("%d. %s\n", i+1, gw.Hostname)
		fmt.Printf("   Serial:  %s\n", gw.Serial)
		fmt.Printf("   Address: %s:%d\n", gw.IP, gw.Port)
		if len(gw.Metadata) > 0 {
			fmt.Printf("   Metadata: %v\n", gw.Metadata)
		}
		fmt.Println()
	}

	fmt.Println("Use 'zigbridge-cfg login --gateway <host>' to connect to one")

	return nil
}

// channelsCmd lists configured channels from the local registry
var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List configured channels",
	Long: `List all channels known to the local registry and their overlay
parameter values.`,
	RunE: runChannels,
}

func runChannels(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	if len(registry.Channels) == 0 {
		fmt.Println("No channels configured.")
		fmt.Println("\nUse 'zigbridge-cfg set <channel> <parameter> <true|false>' to add one.")
		return nil
	}

	ids := make([]string, 0, len(registry.Channels))
	for id := range registry.Channels {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("Configured channels (%d):\n\n", len(ids))
	for _, id := range ids {
		settings := registry.Channels[id]
		name := settings.Name
		if name == "" {
			name = id
		}
		fmt.Printf("  %s (%s)\n", name, id)
		for key, value := range settings.Parameters {
			fmt.Printf("    %s = %v\n", key, value)
		}
		if !settings.LastSeen.IsZero() {
			fmt.Printf("    last seen: %s\n", settings.LastSeen.Format(time.RFC3339))
		}
		fmt.Println()
	}

	return nil
}

// paramsCmd prints the overlay parameter catalogue
var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Show the overlay parameter catalogue",
	Long: `Display the overlay parameters every channel supports, with their
types and default values.`,
	Example: `  # Human-readable catalogue
  zigbridge-cfg params

  # JSON output for scripting
  zigbridge-cfg params --format json`,
	RunE: runParams,
}

func runParams(cmd *cobra.Command, args []string) error {
	handler, err := channelconfig.NewLevelReverseConfig(nil, nil)
	if err != nil {
		return fmt.Errorf("failed to build parameter catalogue: %w", err)
	}
	descriptors := handler.GetConfiguration()

	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(descriptors, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	default:
		for _, d := range descriptors {
			fmt.Printf("%s\n", d.Label)
			fmt.Printf("  ID:      %s\n", d.ID)
			fmt.Printf("  Type:    %s\n", d.Type)
			fmt.Printf("  Default: %s\n", d.Default)
			fmt.Printf("  %s\n\n", d.Description)
		}
	}

	return nil
}

// showCmd displays one channel's effective configuration
var showCmd = &cobra.Command{
	Use:   "show <channel>",
	Short: "Show a channel's effective configuration",
	Long: `Display the stored parameters of a channel and the command inversion
behavior they produce.`,
	Example: `  zigbridge-cfg show livingroom-dimmer
  zigbridge-cfg show livingroom-dimmer --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	ch, _, err := loadChannel(args[0])
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		out := map[string]interface{}{
			"id":             ch.ID(),
			"name":           ch.Name(),
			"parameters":     ch.Parameters(),
			"invert_onoff":   ch.Reverse().ShouldInvertOnOff(),
			"invert_percent": ch.Reverse().ShouldInvertPercent(),
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Channel: %s (%s)\n\n", ch.Name(), ch.ID())
	fmt.Println("Parameters:")
	params := ch.Parameters()
	for _, d := range ch.Reverse().GetConfiguration() {
		value, ok := params[d.ID]
		if !ok {
			value = d.Default + " (default)"
		}
		fmt.Printf("  %s = %v\n", d.ID, value)
	}
	fmt.Println("\nEffective behavior:")
	fmt.Printf("  invert on/off, up/down, bool: %v\n", ch.Reverse().ShouldInvertOnOff())
	fmt.Printf("  invert percent:               %v\n", ch.Reverse().ShouldInvertPercent())

	return nil
}

// setCmd changes one overlay parameter on a channel
var setCmd = &cobra.Command{
	Use:   "set <channel> <parameter> <true|false>",
	Short: "Set an overlay parameter on a channel",
	Long: `Set one overlay parameter on a channel and persist it to the registry.

The parameter may be given by its full ID or by its short name
(the ID without the namespace prefix).`,
	Example: `  # Full parameter ID
  zigbridge-cfg set livingroom-dimmer zigbee_levelreverse_reverseonoff true

  # Short name
  zigbridge-cfg set livingroom-dimmer reversepercent true`,
	Args: cobra.ExactArgs(3),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	paramID, err := resolveParameterID(args[1])
	if err != nil {
		return err
	}

	value, err := strconv.ParseBool(args[2])
	if err != nil {
		return fmt.Errorf("invalid value %q (use true/false): %w", args[2], err)
	}

	ch, registry, err := loadChannel(args[0])
	if err != nil {
		return err
	}

	changed, err := ch.ApplyParameterChanges(channelconfig.Configuration{paramID: value})
	if err != nil {
		return fmt.Errorf("failed to apply parameter: %w", err)
	}

	if !changed {
		fmt.Printf("%s already %v on %s, nothing to do\n", paramID, value, ch.ID())
		return nil
	}

	registry.SetParameter(ch.ID(), paramID, value)
	registry.TouchChannel(ch.ID())
	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save registry: %w", err)
	}
	logging.LogParameterChange(ch.ID(), paramID, value)

	fmt.Printf("✓ %s = %v on %s\n", paramID, value, ch.ID())
	return nil
}

// editCmd launches the interactive parameter editor
var editCmd = &cobra.Command{
	Use:   "edit <channel>",
	Short: "Edit a channel's parameters interactively",
	Long: `Launch an interactive editor for a channel's overlay parameters.

Toggle parameters with space, apply with 'a', and quit with 'q'. Applied
changes are persisted to the registry.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	ch, registry, err := loadChannel(args[0])
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(ch))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("editor error: %w", err)
	}

	model, ok := final.(tui.Model)
	if !ok {
		return fmt.Errorf("unexpected editor model type %T", final)
	}

	result := model.Result()
	if result.Err != nil {
		return fmt.Errorf("failed to apply parameters: %w", result.Err)
	}
	if !result.Applied {
		fmt.Println("Edit cancelled, nothing saved.")
		return nil
	}
	if !result.Changed {
		fmt.Println("No changes to save.")
		return nil
	}

	for key, value := range ch.Parameters() {
		registry.SetParameter(ch.ID(), key, value)
		logging.LogParameterChange(ch.ID(), key, value)
	}
	registry.TouchChannel(ch.ID())
	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save registry: %w", err)
	}

	fmt.Printf("✓ Saved parameters for %s\n", ch.ID())
	return nil
}

// invertCmd inverts a single command value, for quick inspection
var invertCmd = &cobra.Command{
	Use:   "invert <kind> <value>",
	Short: "Invert a command value",
	Long: `Invert a single command value and print the result.

Kinds:
  onoff    ON <-> OFF
  updown   UP <-> DOWN
  percent  p -> 100 - p
  bool     true <-> false`,
	Example: `  zigbridge-cfg invert onoff ON
  zigbridge-cfg invert percent 75
  zigbridge-cfg invert updown DOWN`,
	Args: cobra.ExactArgs(2),
	RunE: runInvert,
}

func runInvert(cmd *cobra.Command, args []string) error {
	kind, raw := args[0], args[1]

	switch kind {
	case "onoff":
		v, err := command.ParseOnOff(raw)
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", v, v.Invert())
	case "updown":
		v, err := command.ParseUpDown(raw)
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", v, v.Invert())
	case "percent":
		v, err := command.ParsePercent(raw)
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", v, v.Invert())
	case "bool":
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid bool value %q: %w", raw, err)
		}
		fmt.Printf("%v -> %v\n", v, command.InvertBool(v))
	default:
		return fmt.Errorf("unknown kind %q (use onoff, updown, percent, bool)", kind)
	}

	return nil
}

// loginCmd verifies gateway access and stores the connection preferences
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Connect to a gateway and store its address",
	Long: `Verify access to a Zigbee gateway and store its address in the registry.

The gateway API token is read from the terminal without echo and used only
to verify the connection. Tokens are NEVER written to disk; export
ZIGBRIDGE_GATEWAY_TOKEN before running zigbridge-relay.`,
	Example: `  # Discover a gateway and log in
  zigbridge-cfg login

  # Log in to a specific gateway
  zigbridge-cfg login --gateway 192.168.1.40 --port 8765`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&gatewayHost, "gateway", "", "Gateway host (skips discovery)")
	loginCmd.Flags().IntVar(&gatewayPort, "port", discovery.DefaultPort, "Gateway WebSocket port")
}

func runLogin(cmd *cobra.Command, args []string) error {
	host := gatewayHost
	serial := ""

	if host == "" {
		fmt.Println("No gateway specified, attempting auto-discovery...")
		gateways, err := discovery.ScanForGateways(5 * time.Second)
		if err != nil {
			return fmt.Errorf("discovery failed: %w", err)
		}
		switch len(gateways) {
		case 0:
			return fmt.Errorf("no gateways found. Use --gateway to specify one manually")
		case 1:
			host = gateways[0].IP
			gatewayPort = gateways[0].Port
			serial = gateways[0].Serial
			fmt.Printf("Found gateway: %s\n\n", gateways[0])
		default:
			fmt.Printf("Found %d gateways:\n", len(gateways))
			for i, gw := range gateways {
				fmt.Printf("%d. %s (%s)\n", i+1, gw.Serial, gw.IP)
			}
			return fmt.Errorf("multiple gateways found. Use --gateway to specify which one")
		}
	}

	fmt.Print("Gateway API token: ")
	tokenBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	token := strings.TrimSpace(string(tokenBytes))

	endpoint := gateway.Endpoint(host, gatewayPort)

	table, err := channel.NewTable(nil)
	if err != nil {
		return err
	}
	client := gateway.NewClient(endpoint, token, table, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fmt.Printf("Connecting to %s...\n", endpoint)
	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	client.Close()

	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	registry.SetGateway(host, gatewayPort, serial)
	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save registry: %w", err)
	}

	fmt.Printf("✓ Connected. Gateway %s:%d saved to registry.\n", host, gatewayPort)
	fmt.Println("\nThe token was not stored. Export it for the relay:")
	fmt.Println("  export ZIGBRIDGE_GATEWAY_TOKEN=<token>")

	return nil
}

// loadChannel builds a Channel from the registry entry for id. The registry
// is returned as well so callers can persist changes.
func loadChannel(id string) (*channel.Channel, *config.Registry, error) {
	registry, err := config.LoadRegistry()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load registry: %w", err)
	}

	settings := registry.EnsureChannel(id)

	params := make(channelconfig.Configuration, len(settings.Parameters))
	for key, value := range settings.Parameters {
		params[key] = value
	}

	ch, err := channel.New(id, settings.Name, params, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid channel configuration for %s: %w", id, err)
	}

	return ch, registry, nil
}

// resolveParameterID accepts a full parameter ID or its short name.
func resolveParameterID(name string) (string, error) {
	candidate := name
	if !strings.HasPrefix(candidate, channelconfig.ConfigPrefix) {
		candidate = channelconfig.ConfigPrefix + candidate
	}

	switch candidate {
	case channelconfig.ConfigReverseOnOff, channelconfig.ConfigReversePercent:
		return candidate, nil
	}
	return "", fmt.Errorf("unknown parameter %q (use reverseonoff or reversepercent)", name)
}
