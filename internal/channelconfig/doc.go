// Package channelconfig implements per-channel configuration handlers for
// Zigbee device channels.
//
// A configuration handler owns a small set of namespaced parameters for one
// device channel. It exposes three things to its host:
//
//   - a parameter catalogue (GetConfiguration) describing the editable
//     parameters so the host can render a settings editor;
//   - a diff-and-apply update protocol (UpdateConfiguration) that accepts a
//     candidate change set, applies only the changes belonging to the
//     handler's namespace whose value actually differs from the current
//     snapshot, and reports whether anything changed;
//   - accessors the host consults on the hot command path.
//
// Parameter keys are partitioned by a fixed namespace prefix so that several
// independent handlers can share a single update call without interference:
// a handler silently skips keys outside its own namespace.
//
// # Level Reverse
//
// LevelReverseConfig is the handler for command-polarity inversion. Some
// devices drive the Level Control cluster backwards relative to the
// platform convention (a roller-shutter motor where 100% means closed
// instead of open, or where OFF moves the shutter up). The handler holds
// two boolean flags, one for on/off commands and one for percent commands,
// and the caller applies the matching inverter from the command package
// whenever a flag is set.
//
// # Usage Example
//
//	cfg, err := channelconfig.NewLevelReverseConfig(channel.Parameters(), logger)
//	if err != nil {
//	    return err
//	}
//
//	// Render an editor from the catalogue.
//	for _, p := range cfg.GetConfiguration() {
//	    fmt.Printf("%s: %s (default %s)\n", p.ID, p.Label, p.Default)
//	}
//
//	// Apply edits; true means downstream state must be re-synchronized.
//	changed, err := cfg.UpdateConfiguration(current, edits)
//
//	// Hot path.
//	if cfg.ShouldInvertPercent() {
//	    value = value.Invert()
//	}
//
// # Thread Safety
//
// Handler instances are NOT safe for concurrent use. The host owns exactly
// one handler per channel and serializes construction, catalogue queries,
// updates and accessor reads on it. No state is shared between instances.
//
// # Error Handling
//
// A recognized parameter carrying a non-boolean value is a caller contract
// violation and surfaces as a *TypeError; the handler never coerces values.
// Unrecognized keys inside the namespace are logged and ignored. Keys in a
// foreign namespace are skipped silently.
package channelconfig
