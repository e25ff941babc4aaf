package discovery

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type advertised by zigbridge gateways
	ServiceType = "_zigbridge-gw._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for gateway discovery
	DefaultScanTimeout = 10 * time.Second

	// DefaultPort is the default WebSocket API port for gateways
	DefaultPort = 8765
)

// serialPattern matches gateway hostnames (e.g., "zigbridge-A1B2C3D4.local")
var serialPattern = regexp.MustCompile(`^zigbridge-([0-9A-Za-z]+)\.local\.?$`)

// Scanner handles mDNS gateway discovery
type Scanner struct {
	// Timeout is the maximum time to wait for gateway discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForGateways discovers all zigbridge gateways on the local network
// Returns a list of discovered gateways or an error
func (s *Scanner) ScanForGateways() ([]*Gateway, error) {
	return s.ScanForGatewaysWithContext(context.Background())
}

// ScanForGatewaysWithContext discovers gateways with a custom context
func (s *Scanner) ScanForGatewaysWithContext(ctx context.Context) ([]*Gateway, error) {
	// Create a context with timeout
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	// Channel to receive service entries
	entries := make(chan *zeroconf.ServiceEntry)
	gateways := make([]*Gateway, 0)

	// Start the resolver
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	// Browse for services in a goroutine
	go func() {
		for entry := range entries {
			gateway := s.parseServiceEntry(entry)
			if gateway != nil {
				gateways = append(gateways, gateway)
			}
		}
	}()

	// Start browsing for gateway services
	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for context to complete (timeout or cancellation)
	<-ctx.Done()

	return gateways, nil
}

// WaitForGateway waits for a specific gateway by serial number
// Returns the gateway or an error if not found within timeout
func (s *Scanner) WaitForGateway(serial string) (*Gateway, error) {
	return s.WaitForGatewayWithContext(context.Background(), serial)
}

// WaitForGatewayWithContext waits for a specific gateway with a custom context
func (s *Scanner) WaitForGatewayWithContext(ctx context.Context, serial string) (*Gateway, error) {
	// Create a context with timeout
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	// Channel to receive service entries
	entries := make(chan *zeroconf.ServiceEntry)
	gatewayChan := make(chan *Gateway, 1)

	// Start the resolver
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	// Browse for services in a goroutine
	go func() {
		for entry := range entries {
			gateway := s.parseServiceEntry(entry)
			if gateway != nil && gateway.Serial == serial {
				gatewayChan <- gateway
				cancel() // Found the gateway, cancel context
				return
			}
		}
	}()

	// Start browsing for gateway services
	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for gateway or timeout
	select {
	case gateway := <-gatewayChan:
		return gateway, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("gateway with serial %s not found within timeout", serial)
	}
}

// parseServiceEntry converts a zeroconf service entry to a Gateway
// Returns nil if the entry is not a zigbridge gateway
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Gateway {
	// Check if hostname matches the gateway pattern (zigbridge-{serial}.local)
	hostname := entry.HostName
	if hostname == "" {
		return nil
	}

	matches := serialPattern.FindStringSubmatch(hostname)
	if len(matches) < 2 {
		return nil
	}

	serial := matches[1]

	// Get IP address (prefer IPv4)
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}

	// Fallback to IPv6 if no IPv4
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}

	if ip == "" {
		return nil
	}

	// Get port (default if not specified)
	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	// Parse TXT records into metadata
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		// TXT records are in "key=value" format
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			// Key without value
			metadata[parts[0]] = ""
		}
	}

	return &Gateway{
		Serial:       serial,
		Hostname:     hostname,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// ScanForGateways is a convenience function to scan with a custom timeout
func ScanForGateways(timeout time.Duration) ([]*Gateway, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.ScanForGateways()
}

// QuickScan performs a fast scan with a 3-second timeout
func QuickScan() ([]*Gateway, error) {
	scanner := NewScanner()
	scanner.Timeout = 3 * time.Second
	return scanner.ScanForGateways()
}

// FindGateway searches for a specific gateway by serial number with default timeout
func FindGateway(serial string) (*Gateway, error) {
	scanner := NewScanner()
	return scanner.WaitForGateway(serial)
}
