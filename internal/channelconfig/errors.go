package channelconfig

import (
	"errors"
	"fmt"
)

// TypeError reports a configuration value whose dynamic type does not match
// the parameter's declared type. The host is expected to reject malformed
// values before they reach this layer, so a TypeError indicates a caller
// contract violation rather than a recoverable condition.
type TypeError struct {
	Key   string      // Parameter identifier
	Value interface{} // The offending value
}

// Error implements the error interface
func (e *TypeError) Error() string {
	return fmt.Sprintf("configuration parameter %s: expected boolean value, got %T (%v)", e.Key, e.Value, e.Value)
}

// IsTypeError checks whether an error (or any error it wraps) is a TypeError.
func IsTypeError(err error) bool {
	var te *TypeError
	return errors.As(err, &te)
}
