// Package config provides persisted configuration storage for zigbridge.
//
// This package manages a YAML-based configuration file holding the
// per-channel parameter values owned by the channelconfig handlers, channel
// nicknames, and gateway connection preferences. The file lives at the
// OS-appropriate location:
//   - Linux: $XDG_CONFIG_HOME/zigbridge/config.yaml or $HOME/.config/zigbridge/config.yaml
//   - macOS: $HOME/.config/zigbridge/config.yaml
//   - Windows: %LOCALAPPDATA%\zigbridge\config.yaml
//
// # Security
//
// IMPORTANT: This package NEVER stores gateway API tokens or other
// credentials. Those are always prompted from the user when needed.
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Record a parameter change applied through the update protocol.
//	registry.SetParameter("living_room_blind:level",
//	    "zigbee_levelreverse_reversepercent", true)
//
//	// Save changes atomically.
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across
// goroutines. File writes are protected by a mutex and performed atomically
// (temp file + rename).
package config
