package gateway

import (
	"fmt"
	"strconv"

	"github.com/zigbridge/zigbridge/internal/channel"
	"github.com/zigbridge/zigbridge/internal/command"
)

// Kind identifies the command-value variant carried by a message.
type Kind string

const (
	// KindOnOff carries an ON/OFF switch command
	KindOnOff Kind = "onoff"
	// KindUpDown carries an UP/DOWN movement command
	KindUpDown Kind = "updown"
	// KindPercent carries a percentage command (0-100)
	KindPercent Kind = "percent"
	// KindBool carries a raw boolean command
	KindBool Kind = "bool"
)

// CommandMessage is one channel command on the gateway's WebSocket stream.
type CommandMessage struct {
	// Channel is the target channel identifier
	Channel string `json:"channel"`
	// Kind is the command-value variant
	Kind Kind `json:"kind"`
	// Value is the command value in its wire spelling (see package doc)
	Value string `json:"value"`
}

// Validate checks the message shape without interpreting the value.
func (m *CommandMessage) Validate() error {
	if m.Channel == "" {
		return fmt.Errorf("command message missing channel")
	}
	switch m.Kind {
	case KindOnOff, KindUpDown, KindPercent, KindBool:
	default:
		return fmt.Errorf("command message for %s: unknown kind %q", m.Channel, m.Kind)
	}
	if m.Value == "" {
		return fmt.Errorf("command message for %s: missing value", m.Channel)
	}
	return nil
}

// Transform parses the message value, applies the channel's configured
// inversion, and returns the message that should be forwarded. The input
// message is not modified.
func (m *CommandMessage) Transform(ch *channel.Channel) (CommandMessage, error) {
	out := *m

	switch m.Kind {
	case KindOnOff:
		v, err := command.ParseOnOff(m.Value)
		if err != nil {
			return out, fmt.Errorf("channel %s: %w", m.Channel, err)
		}
		out.Value = ch.ApplyOnOff(v).String()

	case KindUpDown:
		v, err := command.ParseUpDown(m.Value)
		if err != nil {
			return out, fmt.Errorf("channel %s: %w", m.Channel, err)
		}
		out.Value = ch.ApplyUpDown(v).String()

	case KindPercent:
		v, err := command.ParsePercent(m.Value)
		if err != nil {
			return out, fmt.Errorf("channel %s: %w", m.Channel, err)
		}
		out.Value = strconv.Itoa(int(ch.ApplyPercent(v)))

	case KindBool:
		v, err := strconv.ParseBool(m.Value)
		if err != nil {
			return out, fmt.Errorf("channel %s: invalid bool value %q: %w", m.Channel, m.Value, err)
		}
		out.Value = strconv.FormatBool(ch.ApplyBool(v))

	default:
		return out, fmt.Errorf("channel %s: unknown kind %q", m.Channel, m.Kind)
	}

	return out, nil
}
