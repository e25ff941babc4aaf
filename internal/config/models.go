package config

import "time"

// Registry represents the entire zigbridge configuration file.
// It stores the per-channel configuration parameters owned by the
// channelconfig handlers, plus gateway preferences.
type Registry struct {
	Version  int                         `yaml:"version"`
	Gateway  *GatewayPrefs               `yaml:"gateway,omitempty"`
	Channels map[string]*ChannelSettings `yaml:"channels,omitempty"` // Keyed by channel identifier
}

// ChannelSettings holds the persisted state for a single device channel.
type ChannelSettings struct {
	// Name is a user-friendly label (e.g., "Living Room Blind")
	Name string `yaml:"name,omitempty"`

	// Parameters is the channel's configuration key→value mapping, exactly
	// as the configuration handlers expect it (namespaced keys, typed
	// values). Boolean parameters stay booleans through a YAML round trip.
	Parameters map[string]interface{} `yaml:"parameters,omitempty"`

	// LastSeen is when a command for this channel was last relayed
	LastSeen time.Time `yaml:"last_seen,omitempty"`
}

// GatewayPrefs holds connection preferences for the Zigbee gateway.
// Note: API tokens are NEVER stored here - they are always prompted.
type GatewayPrefs struct {
	Host            string `yaml:"host,omitempty"`     // Gateway hostname or IP
	Port            int    `yaml:"port,omitempty"`     // Gateway WebSocket port
	AutoDiscover    bool   `yaml:"auto_discover"`      // Enable mDNS discovery on startup
	DiscoverTimeout int    `yaml:"discover_timeout"`   // mDNS discovery timeout in seconds
	Serial          string `yaml:"serial,omitempty"`   // Last known gateway serial number
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:  1,
		Channels: make(map[string]*ChannelSettings),
		Gateway: &GatewayPrefs{
			AutoDiscover:    true,
			DiscoverTimeout: 10,
		},
	}
}

// GetChannel retrieves channel settings by identifier.
// Returns nil if the channel doesn't exist in the registry.
func (r *Registry) GetChannel(id string) *ChannelSettings {
	return r.Channels[id]
}

// EnsureChannel ensures a channel entry exists in the registry.
// If the channel doesn't exist, creates a new entry with an empty
// parameter map. Returns the entry (existing or newly created).
func (r *Registry) EnsureChannel(id string) *ChannelSettings {
	if r.Channels == nil {
		r.Channels = make(map[string]*ChannelSettings)
	}

	if ch, exists := r.Channels[id]; exists {
		if ch.Parameters == nil {
			ch.Parameters = make(map[string]interface{})
		}
		return ch
	}

	ch := &ChannelSettings{
		Parameters: make(map[string]interface{}),
	}
	r.Channels[id] = ch
	return ch
}

// SetParameter stores one configuration parameter value for a channel.
func (r *Registry) SetParameter(id string, key string, value interface{}) {
	ch := r.EnsureChannel(id)
	ch.Parameters[key] = value
}

// SetChannelName sets a user-friendly name for a channel.
func (r *Registry) SetChannelName(id, name string) {
	ch := r.EnsureChannel(id)
	ch.Name = name
}

// TouchChannel updates the last seen timestamp for a channel.
func (r *Registry) TouchChannel(id string) {
	ch := r.EnsureChannel(id)
	ch.LastSeen = time.Now()
}

// SetGateway records the gateway endpoint to use for future sessions.
func (r *Registry) SetGateway(host string, port int, serial string) {
	if r.Gateway == nil {
		r.Gateway = &GatewayPrefs{
			AutoDiscover:    true,
			DiscoverTimeout: 10,
		}
	}
	r.Gateway.Host = host
	r.Gateway.Port = port
	r.Gateway.Serial = serial
}
