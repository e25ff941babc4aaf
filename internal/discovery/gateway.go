package discovery

import (
	"fmt"
	"time"
)

// Gateway represents a discovered Zigbee gateway on the network
type Gateway struct {
	// Serial is the gateway serial number (e.g., "A1B2C3D4")
	Serial string

	// Hostname is the mDNS hostname (e.g., "zigbridge-A1B2C3D4.local")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.1.42")
	IP string

	// Port is the WebSocket API port (typically 8765)
	Port int

	// Metadata contains additional mDNS TXT record data
	// Common fields: "version=1.4.0", "coordinator=zstack"
	Metadata map[string]string

	// DiscoveredAt is when the gateway was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the gateway
func (g *Gateway) String() string {
	return fmt.Sprintf("Zigbee Gateway %s (%s) at %s:%d", g.Serial, g.Hostname, g.IP, g.Port)
}

// Endpoint returns the WebSocket command-stream URL for the gateway
func (g *Gateway) Endpoint() string {
	return fmt.Sprintf("ws://%s:%d/api/commands", g.IP, g.Port)
}

// GetMetadata retrieves a TXT metadata value by key, or returns empty string if not found
func (g *Gateway) GetMetadata(key string) string {
	if g.Metadata == nil {
		return ""
	}
	return g.Metadata[key]
}
