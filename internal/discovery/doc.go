// Package discovery provides mDNS-based discovery of Zigbee gateways.
//
// This package implements multicast DNS (mDNS) service discovery to
// automatically locate a zigbridge-compatible Zigbee gateway on the local
// network. Gateways advertise themselves using the "_zigbridge-gw._tcp"
// service type.
//
// # Discovery Process
//
//  1. Broadcasts mDNS queries on the local network
//  2. Listens for service advertisements from gateways
//  3. Filters responses to gateway-specific hostnames
//  4. Collects gateway information (hostname, IP, serial, TXT metadata)
//  5. Returns the discovered gateways after the timeout period
//
// # Usage Example
//
//	gateways, err := discovery.ScanForGateways(10 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, gw := range gateways {
//	    fmt.Printf("Found: %s at %s:%d (Serial: %s)\n",
//	        gw.Hostname, gw.IP, gw.Port, gw.Serial)
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - The gateway must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// This package is safe for concurrent use. Multiple discovery sessions can
// run simultaneously without interference.
package discovery
