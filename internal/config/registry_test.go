package config

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	// Should not be empty
	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	// Should contain "zigbridge"
	if !strings.Contains(configDir, "zigbridge") {
		t.Errorf("GetConfigDir() = %v, should contain 'zigbridge'", configDir)
	}

	// Platform-specific checks
	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	// Should end with config.yaml
	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}

	t.Logf("Config path: %s", configPath)
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}

	if reg.Channels == nil {
		t.Error("NewRegistry().Channels should not be nil")
	}

	if reg.Gateway == nil {
		t.Fatal("NewRegistry().Gateway should not be nil")
	}

	if reg.Gateway.AutoDiscover != true {
		t.Error("NewRegistry().Gateway.AutoDiscover should be true by default")
	}

	if reg.Gateway.DiscoverTimeout != 10 {
		t.Errorf("NewRegistry().Gateway.DiscoverTimeout = %v, want 10", reg.Gateway.DiscoverTimeout)
	}
}

func TestRegistryEnsureChannel(t *testing.T) {
	reg := NewRegistry()

	// First call should create the channel
	ch1 := reg.EnsureChannel("living_room_blind:level")
	if ch1 == nil {
		t.Fatal("EnsureChannel() returned nil")
	}
	if ch1.Parameters == nil {
		t.Error("EnsureChannel() should initialize the parameter map")
	}

	// Second call should return same entry
	ch2 := reg.EnsureChannel("living_room_blind:level")
	if ch1 != ch2 {
		t.Error("EnsureChannel() should return same instance for same id")
	}

	// Different id should create new entry
	ch3 := reg.EnsureChannel("kitchen_blind:level")
	if ch1 == ch3 {
		t.Error("EnsureChannel() should create new instance for different id")
	}
}

func TestRegistrySetParameter(t *testing.T) {
	reg := NewRegistry()

	reg.SetParameter("living_room_blind:level", "zigbee_levelreverse_reversepercent", true)

	ch := reg.GetChannel("living_room_blind:level")
	if ch == nil {
		t.Fatal("Channel should exist after SetParameter()")
	}

	v, ok := ch.Parameters["zigbee_levelreverse_reversepercent"]
	if !ok {
		t.Fatal("Parameter should exist after SetParameter()")
	}
	if v != true {
		t.Errorf("Parameter value = %v, want true", v)
	}
}

func TestRegistryTouchChannel(t *testing.T) {
	reg := NewRegistry()

	before := time.Now()
	reg.TouchChannel("living_room_blind:level")
	after := time.Now()

	ch := reg.GetChannel("living_room_blind:level")
	if ch == nil {
		t.Fatal("Channel should exist after TouchChannel()")
	}

	if ch.LastSeen.Before(before) || ch.LastSeen.After(after) {
		t.Errorf("LastSeen = %v, should be between %v and %v", ch.LastSeen, before, after)
	}
}

func TestRegistrySetGateway(t *testing.T) {
	reg := NewRegistry()
	reg.Gateway = nil

	reg.SetGateway("192.168.1.42", 8080, "GW123")

	if reg.Gateway == nil {
		t.Fatal("Gateway should exist after SetGateway()")
	}
	if reg.Gateway.Host != "192.168.1.42" {
		t.Errorf("Gateway.Host = %v, want 192.168.1.42", reg.Gateway.Host)
	}
	if reg.Gateway.Port != 8080 {
		t.Errorf("Gateway.Port = %v, want 8080", reg.Gateway.Port)
	}
	if reg.Gateway.Serial != "GW123" {
		t.Errorf("Gateway.Serial = %v, want GW123", reg.Gateway.Serial)
	}
}

func TestRegistrySaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	reg := NewRegistry()
	reg.SetChannelName("living_room_blind:level", "Living Room Blind")
	reg.SetParameter("living_room_blind:level", "zigbee_levelreverse_reverseonoff", true)
	reg.SetParameter("living_room_blind:level", "zigbee_levelreverse_reversepercent", false)
	reg.SetGateway("gateway.local", 8765, "GW123")

	if err := reg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadRegistryFromPath(path)
	if err != nil {
		t.Fatalf("LoadRegistryFromPath() error = %v", err)
	}

	ch := loaded.GetChannel("living_room_blind:level")
	if ch == nil {
		t.Fatal("Channel missing after round trip")
	}
	if ch.Name != "Living Room Blind" {
		t.Errorf("Name = %v, want 'Living Room Blind'", ch.Name)
	}

	// Boolean parameters must survive the YAML round trip as booleans - the
	// configuration handlers reject anything else.
	if v := ch.Parameters["zigbee_levelreverse_reverseonoff"]; v != true {
		t.Errorf("reverseonoff = %v (%T), want true (bool)", v, v)
	}
	if v := ch.Parameters["zigbee_levelreverse_reversepercent"]; v != false {
		t.Errorf("reversepercent = %v (%T), want false (bool)", v, v)
	}

	if loaded.Gateway.Host != "gateway.local" || loaded.Gateway.Port != 8765 {
		t.Errorf("Gateway = %+v, want gateway.local:8765", loaded.Gateway)
	}
}

func TestLoadRegistryFromPathMissingFile(t *testing.T) {
	loaded, err := LoadRegistryFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadRegistryFromPath() error = %v", err)
	}
	if loaded.Version != 1 {
		t.Errorf("missing file should yield default registry, got version %d", loaded.Version)
	}
}

func TestLoadRegistryFromPathBadVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	reg := NewRegistry()
	reg.Version = 99
	if err := reg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	if _, err := LoadRegistryFromPath(path); err == nil {
		t.Error("LoadRegistryFromPath() with version 99 succeeded, want error")
	}
}
