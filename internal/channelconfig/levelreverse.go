package channelconfig

import (
	"reflect"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Configuration is a host-supplied mapping from parameter identifier to
// value. Handlers treat it as a read-only snapshot; they never mutate it.
type Configuration map[string]interface{}

// ParameterType identifies the value type of a configuration parameter.
type ParameterType string

const (
	// ParameterTypeBoolean marks a parameter holding a boolean value.
	ParameterTypeBoolean ParameterType = "boolean"
)

// ParameterDescriptor describes one editable configuration parameter for
// presentation by a host UI. Descriptors are value objects: GetConfiguration
// builds them fresh on every call and ownership passes to the caller.
type ParameterDescriptor struct {
	// ID is the namespaced parameter identifier (stable wire contract)
	ID string
	// Label is the short human-readable name shown in an editor
	Label string
	// Description explains what the parameter does
	Description string
	// Type is the parameter's value type
	Type ParameterType
	// Default is the compile-time default, stringified
	Default string
}

// Handler is the seam between a channel host and one configuration handler.
// A channel may carry several handlers, each owning its own key namespace.
type Handler interface {
	// GetConfiguration returns the handler's parameter catalogue
	GetConfiguration() []ParameterDescriptor
	// UpdateConfiguration applies the candidate changes that belong to the
	// handler and actually differ from the current snapshot. It returns
	// true iff at least one parameter changed.
	UpdateConfiguration(current Configuration, changes Configuration) (bool, error)
}

// Parameter identifiers for the level-reverse handler. These are persisted
// in existing channel configurations and must never change.
const (
	// ConfigPrefix is the key namespace reserved by the level-reverse handler
	ConfigPrefix = "zigbee_levelreverse_"
	// ConfigReverseOnOff inverts ON/OFF command direction
	ConfigReverseOnOff = ConfigPrefix + "reverseonoff"
	// ConfigReversePercent inverts percent command direction (100 - x)
	ConfigReversePercent = ConfigPrefix + "reversepercent"
)

// Compile-time defaults for the level-reverse parameters.
const (
	reverseOnOffDefault   = false
	reversePercentDefault = false
)

// LevelReverseConfig is the configuration handler for command-polarity
// inversion on a Level Control channel. One instance is owned by exactly
// one channel and must not be shared.
type LevelReverseConfig struct {
	logger *zap.Logger

	reverseOnOff   bool
	reversePercent bool

	// reportingChange is held for interface compatibility with hosts that
	// read a reporting threshold; it is not yet populated from the
	// configuration map.
	reportingChange int
}

var _ Handler = (*LevelReverseConfig)(nil)

// NewLevelReverseConfig builds a handler from the channel's persisted
// configuration. Absent keys keep the compile-time defaults. A present key
// whose value is not a boolean yields a *TypeError: values are validated at
// this boundary instead of being cast at point of use.
//
// A nil logger is replaced with a no-op logger.
func NewLevelReverseConfig(cfg Configuration, logger *zap.Logger) (*LevelReverseConfig, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &LevelReverseConfig{
		logger:          logger,
		reverseOnOff:    reverseOnOffDefault,
		reversePercent:  reversePercentDefault,
		reportingChange: 1,
	}

	if v, ok := cfg[ConfigReverseOnOff]; ok {
		b, ok := v.(bool)
		if !ok {
			return nil, &TypeError{Key: ConfigReverseOnOff, Value: v}
		}
		c.reverseOnOff = b
	}

	if v, ok := cfg[ConfigReversePercent]; ok {
		b, ok := v.(bool)
		if !ok {
			return nil, &TypeError{Key: ConfigReversePercent, Value: v}
		}
		c.reversePercent = b
	}

	return c, nil
}

// GetConfiguration returns the parameter catalogue for this handler:
// exactly two boolean descriptors, on/off inversion first, percent
// inversion second. Defaults shown are the compile-time constants, not the
// instance's current values.
func (c *LevelReverseConfig) GetConfiguration() []ParameterDescriptor {
	return []ParameterDescriptor{
		{
			ID:    ConfigReverseOnOff,
			Label: "Invert On/Off Commands",
			Description: "Invert the value of ON and OFF commands sent to and received from the device. " +
				"Useful for devices that use the On/Off cluster for rollershutter control.",
			Type:    ParameterTypeBoolean,
			Default: strconv.FormatBool(reverseOnOffDefault),
		},
		{
			ID:    ConfigReversePercent,
			Label: "Invert Percent Commands",
			Description: "Invert the value of percent commands sent to and received from the device. " +
				"Useful for devices that use the Level Control cluster for rollershutter control.",
			Type:    ParameterTypeBoolean,
			Default: strconv.FormatBool(reversePercentDefault),
		},
	}
}

// UpdateConfiguration applies a candidate change set against the current
// configuration snapshot.
//
// For each entry: keys outside the handler's namespace are skipped silently
// (they belong to another handler sharing the update call); entries whose
// value equals the current snapshot's value are skipped as no-ops; the two
// recognized keys are assigned; any other key inside the namespace is
// logged as a warning and ignored.
//
// The returned bool is true iff at least one field actually changed. The
// host uses it to decide whether to re-synchronize downstream reporting, so
// it is conservative: never true when nothing changed. A recognized key
// carrying a non-boolean value stops the update with a *TypeError; changes
// already applied at that point remain in effect.
func (c *LevelReverseConfig) UpdateConfiguration(current Configuration, changes Configuration) (bool, error) {
	updated := false

	for key, value := range changes {
		if !strings.HasPrefix(key, ConfigPrefix) {
			continue
		}

		// Ignore any parameters that have not changed
		if reflect.DeepEqual(value, current[key]) {
			c.logger.Debug("Configuration update: ignored parameter, no change",
				zap.String("parameter", key),
			)
			continue
		}

		switch key {
		case ConfigReverseOnOff:
			b, ok := value.(bool)
			if !ok {
				return updated, &TypeError{Key: key, Value: value}
			}
			c.reverseOnOff = b
			updated = true

		case ConfigReversePercent:
			b, ok := value.(bool)
			if !ok {
				return updated, &TypeError{Key: key, Value: value}
			}
			c.reversePercent = b
			updated = true

		default:
			c.logger.Warn("Unhandled configuration parameter",
				zap.String("parameter", key),
			)
		}
	}

	return updated, nil
}

// ShouldInvertOnOff reports whether on/off commands for this channel must
// be inverted.
func (c *LevelReverseConfig) ShouldInvertOnOff() bool {
	return c.reverseOnOff
}

// ShouldInvertPercent reports whether percent commands for this channel
// must be inverted.
func (c *LevelReverseConfig) ShouldInvertPercent() bool {
	return c.reversePercent
}

// ReportingChange returns the reporting change threshold.
func (c *LevelReverseConfig) ReportingChange() int {
	return c.reportingChange
}
