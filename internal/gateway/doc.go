// Package gateway implements the WebSocket client for a Zigbee gateway's
// command stream.
//
// The gateway publishes channel commands as JSON messages on a WebSocket
// endpoint (ws://host:port/api/commands). The relay subscribes to that
// stream, applies the per-channel inversion configured through the
// channelconfig handlers, and writes the transformed command back for
// delivery to the device.
//
// # Wire Format
//
// One JSON object per WebSocket text message:
//
//	{"channel": "living_room_blind:level", "kind": "percent", "value": "75"}
//
// Supported kinds and value spellings:
//   - "onoff":   "ON" / "OFF"
//   - "updown":  "UP" / "DOWN"
//   - "percent": decimal 0-100
//   - "bool":    "true" / "false"
//
// # Connection Handling
//
// The client maintains read deadlines refreshed by pong frames and pings
// the gateway on a fixed period. Commands for channels that are not in the
// relay's table pass through unchanged; malformed messages are logged and
// dropped without breaking the stream.
package gateway
