// Package channel models one controllable device channel on the host side.
//
// A Channel pairs a stable identifier (e.g. "living_room_blind:level") with
// the channel's persisted parameter map and its configuration handler. The
// relay and the CLI both go through Channel: commands on the hot path are
// transformed here, and operator edits are funnelled through the handler's
// update protocol so the persisted snapshot stays in sync.
//
// Each Channel owns exactly one handler instance and is confined to a
// single logical owner at a time; nothing in this package locks.
package channel

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/zigbridge/zigbridge/internal/channelconfig"
	"github.com/zigbridge/zigbridge/internal/command"
)

// Channel is one controllable/readable endpoint on a device.
type Channel struct {
	id     string
	name   string
	logger *zap.Logger

	// parameters is the channel's current configuration snapshot, as
	// persisted by the host. Updated through ApplyParameterChanges only.
	parameters channelconfig.Configuration

	reverse *channelconfig.LevelReverseConfig
}

// New builds a channel and its configuration handler from the persisted
// parameter map. A nil logger is replaced with a no-op logger.
func New(id, name string, parameters channelconfig.Configuration, logger *zap.Logger) (*Channel, error) {
	if id == "" {
		return nil, fmt.Errorf("channel id cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if parameters == nil {
		parameters = channelconfig.Configuration{}
	}

	reverse, err := channelconfig.NewLevelReverseConfig(parameters, logger)
	if err != nil {
		return nil, fmt.Errorf("channel %s: %w", id, err)
	}

	// Copy the snapshot so later host-side mutation of the input map
	// cannot alias the channel's state.
	snapshot := make(channelconfig.Configuration, len(parameters))
	for k, v := range parameters {
		snapshot[k] = v
	}

	return &Channel{
		id:         id,
		name:       name,
		logger:     logger,
		parameters: snapshot,
		reverse:    reverse,
	}, nil
}

// ID returns the channel identifier.
func (c *Channel) ID() string {
	return c.id
}

// Name returns the channel's friendly name, falling back to the ID.
func (c *Channel) Name() string {
	if c.name == "" {
		return c.id
	}
	return c.name
}

// Reverse returns the channel's level-reverse configuration handler.
func (c *Channel) Reverse() *channelconfig.LevelReverseConfig {
	return c.reverse
}

// Parameters returns a copy of the channel's current parameter snapshot.
func (c *Channel) Parameters() channelconfig.Configuration {
	out := make(channelconfig.Configuration, len(c.parameters))
	for k, v := range c.parameters {
		out[k] = v
	}
	return out
}

// ApplyParameterChanges runs the candidate change set through the channel's
// configuration handlers and folds applied changes back into the persisted
// snapshot. It returns true when at least one parameter changed, which is
// the host's signal to re-synchronize downstream reporting and save the
// registry.
func (c *Channel) ApplyParameterChanges(changes channelconfig.Configuration) (bool, error) {
	changed, err := c.reverse.UpdateConfiguration(c.parameters, changes)

	// Fold handler state back into the snapshot even when the update stopped
	// on a malformed entry: keys applied before the failure must not be
	// re-reported as changes on a retry.
	if changed {
		c.foldSnapshot(changes)
	}

	if err != nil {
		return changed, fmt.Errorf("channel %s: %w", c.id, err)
	}
	return changed, nil
}

// foldSnapshot copies the handler's current values for the recognized keys
// named in changes into the persisted snapshot, so a repeated apply of the
// same change set is a no-op.
func (c *Channel) foldSnapshot(changes channelconfig.Configuration) {
	for _, p := range c.reverse.GetConfiguration() {
		if _, ok := changes[p.ID]; !ok {
			continue
		}

		var v bool
		switch p.ID {
		case channelconfig.ConfigReverseOnOff:
			v = c.reverse.ShouldInvertOnOff()
		case channelconfig.ConfigReversePercent:
			v = c.reverse.ShouldInvertPercent()
		}

		prev, _ := c.parameters[p.ID].(bool)
		if prev == v {
			continue
		}

		c.parameters[p.ID] = v
		c.logger.Info("Parameter changed",
			zap.String("channel", c.id),
			zap.String("parameter", p.ID),
			zap.Bool("value", v),
		)
	}
}

// ApplyOnOff transforms an on/off command for this channel, inverting it
// when the channel is configured reversed. Inversion is an involution, so
// the same transform serves both the send and the receive path.
func (c *Channel) ApplyOnOff(cmd command.OnOff) command.OnOff {
	if c.reverse.ShouldInvertOnOff() {
		return cmd.Invert()
	}
	return cmd
}

// ApplyUpDown transforms an up/down command for this channel. Up/down
// commands follow the on/off inversion flag: a device that drives its
// shutter with reversed on/off polarity moves in the reversed direction too.
func (c *Channel) ApplyUpDown(cmd command.UpDown) command.UpDown {
	if c.reverse.ShouldInvertOnOff() {
		return cmd.Invert()
	}
	return cmd
}

// ApplyBool transforms a boolean command for this channel.
func (c *Channel) ApplyBool(v bool) bool {
	if c.reverse.ShouldInvertOnOff() {
		return command.InvertBool(v)
	}
	return v
}

// ApplyPercent transforms a percent command for this channel.
func (c *Channel) ApplyPercent(p command.Percent) command.Percent {
	if c.reverse.ShouldInvertPercent() {
		return p.Invert()
	}
	return p
}
