// Package command defines the typed command values exchanged with Zigbee
// device channels, together with their semantic inversions.
//
// Zigbee devices are occasionally wired backwards relative to the platform
// convention: a window-covering motor may report 100% for "closed" where the
// platform expects 100% to mean "open", or use OFF to drive a shutter up.
// The inverters in this package compensate for that polarity mismatch. All
// of them are pure involutions: applying the same inversion twice yields the
// original value.
package command

import (
	"fmt"
	"strconv"
	"strings"
)

// OnOff is a switch command value. It is a closed two-value set: any OnOff
// value is either On or Off, which keeps Invert exhaustive.
type OnOff uint8

const (
	// Off turns the channel off (or drives a reversed shutter up).
	Off OnOff = iota
	// On turns the channel on.
	On
)

// Invert returns the semantic opposite of an on/off command.
func (v OnOff) Invert() OnOff {
	if v == On {
		return Off
	}
	return On
}

// String returns the wire spelling of the command ("ON" or "OFF").
func (v OnOff) String() string {
	if v == On {
		return "ON"
	}
	return "OFF"
}

// ParseOnOff parses a wire spelling into an OnOff value.
// Matching is case-insensitive.
func ParseOnOff(s string) (OnOff, error) {
	switch strings.ToUpper(s) {
	case "ON":
		return On, nil
	case "OFF":
		return Off, nil
	default:
		return Off, fmt.Errorf("invalid on/off command %q (expected ON or OFF)", s)
	}
}

// UpDown is a movement command value for covering-type channels.
// Like OnOff it is a closed two-value set.
type UpDown uint8

const (
	// Up opens the covering.
	Up UpDown = iota
	// Down closes the covering.
	Down
)

// Invert returns the semantic opposite of an up/down command.
func (v UpDown) Invert() UpDown {
	if v == Up {
		return Down
	}
	return Up
}

// String returns the wire spelling of the command ("UP" or "DOWN").
func (v UpDown) String() string {
	if v == Up {
		return "UP"
	}
	return "DOWN"
}

// ParseUpDown parses a wire spelling into an UpDown value.
// Matching is case-insensitive.
func ParseUpDown(s string) (UpDown, error) {
	switch strings.ToUpper(s) {
	case "UP":
		return Up, nil
	case "DOWN":
		return Down, nil
	default:
		return Up, fmt.Errorf("invalid up/down command %q (expected UP or DOWN)", s)
	}
}

// InvertBool returns the logical NOT of a boolean command value.
func InvertBool(v bool) bool {
	return !v
}

// Percent is a percentage command value, conceptually in the range [0, 100].
type Percent int

// Invert returns the arithmetic complement 100 - p.
//
// No clamping is performed: the caller is responsible for supplying a value
// in [0, 100]. Invert(Invert(p)) == p for any input.
func (p Percent) Invert() Percent {
	return 100 - p
}

// String returns the percentage formatted for display (e.g. "75%").
func (p Percent) String() string {
	return fmt.Sprintf("%d%%", int(p))
}

// ParsePercent parses a decimal percentage, with or without a trailing '%'.
// Values outside [0, 100] are rejected at this boundary.
func ParsePercent(s string) (Percent, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(s), "%")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid percent value %q: %w", s, err)
	}
	if n < 0 || n > 100 {
		return 0, fmt.Errorf("percent value %d out of range 0-100", n)
	}
	return Percent(n), nil
}
