package channelconfig

import (
	"testing"
)

// TestNewLevelReverseConfigDefaults tests construction from empty or absent configuration
func TestNewLevelReverseConfigDefaults(t *testing.T) {
	tests := []struct {
		name string
		cfg  Configuration
	}{
		{"Nil configuration", nil},
		{"Empty configuration", Configuration{}},
		{"Only foreign keys", Configuration{"zigbee_reporting_interval": 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewLevelReverseConfig(tt.cfg, nil)
			if err != nil {
				t.Fatalf("NewLevelReverseConfig() error = %v", err)
			}
			if c.ShouldInvertOnOff() {
				t.Error("ShouldInvertOnOff() = true, want false by default")
			}
			if c.ShouldInvertPercent() {
				t.Error("ShouldInvertPercent() = true, want false by default")
			}
			if got := c.ReportingChange(); got != 1 {
				t.Errorf("ReportingChange() = %d, want 1", got)
			}
		})
	}
}

// TestNewLevelReverseConfigFromValues tests construction with persisted flags
func TestNewLevelReverseConfigFromValues(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Configuration
		wantOnOff   bool
		wantPercent bool
	}{
		{
			name:      "Reverse on/off only",
			cfg:       Configuration{ConfigReverseOnOff: true},
			wantOnOff: true,
		},
		{
			name:        "Reverse percent only",
			cfg:         Configuration{ConfigReversePercent: true},
			wantPercent: true,
		},
		{
			name:        "Both flags set",
			cfg:         Configuration{ConfigReverseOnOff: true, ConfigReversePercent: true},
			wantOnOff:   true,
			wantPercent: true,
		},
		{
			name: "Explicit false values",
			cfg:  Configuration{ConfigReverseOnOff: false, ConfigReversePercent: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewLevelReverseConfig(tt.cfg, nil)
			if err != nil {
				t.Fatalf("NewLevelReverseConfig() error = %v", err)
			}
			if got := c.ShouldInvertOnOff(); got != tt.wantOnOff {
				t.Errorf("ShouldInvertOnOff() = %v, want %v", got, tt.wantOnOff)
			}
			if got := c.ShouldInvertPercent(); got != tt.wantPercent {
				t.Errorf("ShouldInvertPercent() = %v, want %v", got, tt.wantPercent)
			}
		})
	}
}

// TestNewLevelReverseConfigTypeMismatch tests the boundary validation of value types
func TestNewLevelReverseConfigTypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		cfg  Configuration
	}{
		{"String instead of bool", Configuration{ConfigReverseOnOff: "true"}},
		{"Int instead of bool", Configuration{ConfigReversePercent: 1}},
		{"Nil value", Configuration{ConfigReverseOnOff: nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLevelReverseConfig(tt.cfg, nil)
			if err == nil {
				t.Fatal("NewLevelReverseConfig() error = nil, want TypeError")
			}
			if !IsTypeError(err) {
				t.Errorf("expected TypeError, got %T: %v", err, err)
			}
		})
	}
}

// TestGetConfigurationCatalogue tests the fixed shape of the parameter catalogue
func TestGetConfigurationCatalogue(t *testing.T) {
	// Current instance state must not leak into the catalogue, so use a
	// handler whose flags differ from the defaults.
	c, err := NewLevelReverseConfig(Configuration{
		ConfigReverseOnOff:   true,
		ConfigReversePercent: true,
	}, nil)
	if err != nil {
		t.Fatalf("NewLevelReverseConfig() error = %v", err)
	}

	params := c.GetConfiguration()
	if len(params) != 2 {
		t.Fatalf("GetConfiguration() returned %d descriptors, want 2", len(params))
	}

	if params[0].ID != ConfigReverseOnOff {
		t.Errorf("first descriptor ID = %q, want %q", params[0].ID, ConfigReverseOnOff)
	}
	if params[1].ID != ConfigReversePercent {
		t.Errorf("second descriptor ID = %q, want %q", params[1].ID, ConfigReversePercent)
	}

	for _, p := range params {
		if p.Type != ParameterTypeBoolean {
			t.Errorf("descriptor %s type = %q, want boolean", p.ID, p.Type)
		}
		if p.Default != "false" {
			t.Errorf("descriptor %s default = %q, want \"false\" (compile-time constant)", p.ID, p.Default)
		}
		if p.Label == "" || p.Description == "" {
			t.Errorf("descriptor %s is missing label or description", p.ID)
		}
	}
}

// TestUpdateConfiguration tests the diff-and-apply update protocol
func TestUpdateConfiguration(t *testing.T) {
	tests := []struct {
		name        string
		current     Configuration
		changes     Configuration
		wantChanged bool
		wantOnOff   bool
		wantPercent bool
	}{
		{
			name:        "Empty change set",
			current:     Configuration{},
			changes:     Configuration{},
			wantChanged: false,
		},
		{
			name:        "Foreign namespace keys only",
			current:     Configuration{},
			changes:     Configuration{"zigbee_reporting_interval": 30, "other_handler_flag": true},
			wantChanged: false,
		},
		{
			name:        "No-op value equal to current",
			current:     Configuration{ConfigReverseOnOff: false},
			changes:     Configuration{ConfigReverseOnOff: false},
			wantChanged: false,
		},
		{
			name:        "Reverse percent enabled",
			current:     Configuration{ConfigReversePercent: false},
			changes:     Configuration{ConfigReversePercent: true},
			wantChanged: true,
			wantPercent: true,
		},
		{
			name:        "Reverse on/off enabled, current key absent",
			current:     Configuration{},
			changes:     Configuration{ConfigReverseOnOff: true},
			wantChanged: true,
			wantOnOff:   true,
		},
		{
			name:        "Both flags flipped in one call",
			current:     Configuration{ConfigReverseOnOff: false, ConfigReversePercent: false},
			changes:     Configuration{ConfigReverseOnOff: true, ConfigReversePercent: true},
			wantChanged: true,
			wantOnOff:   true,
			wantPercent: true,
		},
		{
			name:        "Unrecognized key inside namespace",
			current:     Configuration{},
			changes:     Configuration{ConfigPrefix + "reversetilt": true},
			wantChanged: false,
		},
		{
			name:        "Mixed recognized and unrecognized",
			current:     Configuration{},
			changes:     Configuration{ConfigPrefix + "reversetilt": true, ConfigReversePercent: true},
			wantChanged: true,
			wantPercent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewLevelReverseConfig(nil, nil)
			if err != nil {
				t.Fatalf("NewLevelReverseConfig() error = %v", err)
			}

			changed, err := c.UpdateConfiguration(tt.current, tt.changes)
			if err != nil {
				t.Fatalf("UpdateConfiguration() error = %v", err)
			}
			if changed != tt.wantChanged {
				t.Errorf("UpdateConfiguration() = %v, want %v", changed, tt.wantChanged)
			}
			if got := c.ShouldInvertOnOff(); got != tt.wantOnOff {
				t.Errorf("ShouldInvertOnOff() = %v, want %v", got, tt.wantOnOff)
			}
			if got := c.ShouldInvertPercent(); got != tt.wantPercent {
				t.Errorf("ShouldInvertPercent() = %v, want %v", got, tt.wantPercent)
			}
		})
	}
}

// TestUpdateConfigurationTypeMismatch tests contract violations during update
func TestUpdateConfigurationTypeMismatch(t *testing.T) {
	c, err := NewLevelReverseConfig(nil, nil)
	if err != nil {
		t.Fatalf("NewLevelReverseConfig() error = %v", err)
	}

	_, err = c.UpdateConfiguration(Configuration{}, Configuration{ConfigReverseOnOff: "yes"})
	if err == nil {
		t.Fatal("UpdateConfiguration() error = nil, want TypeError")
	}
	if !IsTypeError(err) {
		t.Errorf("expected TypeError, got %T: %v", err, err)
	}
}

// TestUpdateConfigurationRepeatedCalls tests that a second identical update is a no-op
func TestUpdateConfigurationRepeatedCalls(t *testing.T) {
	c, err := NewLevelReverseConfig(nil, nil)
	if err != nil {
		t.Fatalf("NewLevelReverseConfig() error = %v", err)
	}

	changes := Configuration{ConfigReversePercent: true}

	changed, err := c.UpdateConfiguration(Configuration{}, changes)
	if err != nil || !changed {
		t.Fatalf("first update: changed = %v, err = %v, want true, nil", changed, err)
	}

	// The host persists applied changes, so the second call sees them in
	// the current snapshot and must report no change.
	changed, err = c.UpdateConfiguration(Configuration{ConfigReversePercent: true}, changes)
	if err != nil {
		t.Fatalf("second update error = %v", err)
	}
	if changed {
		t.Error("second identical update reported a change, want false")
	}
}
