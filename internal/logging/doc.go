// Package logging provides structured logging for zigbridge.
//
// This package wraps zap with convenience functions for the logging patterns
// used throughout the project: general leveled logging plus a few helpers
// for gateway and configuration events.
//
// # Log Levels
//
//   - Debug: detailed debugging info (no-op configuration updates, raw
//     gateway messages)
//   - Info: normal operations (gateway connections, applied parameter
//     changes, relayed commands)
//   - Warn: non-fatal issues (unrecognized configuration parameters,
//     reconnects)
//   - Error: serious failures (gateway dial errors, registry write errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Parameter changed",
//	    zap.String("channel", "living_room_blind:level"),
//	    zap.String("parameter", "zigbee_levelreverse_reversepercent"),
//	    zap.Bool("value", true),
//	)
//
// # Configuration
//
// Logging is silent by default so CLI output stays clean. It is enabled
// either explicitly or through the ZIGBRIDGE_LOG_LEVEL environment variable:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use; zap handles
// synchronization internally.
package logging
