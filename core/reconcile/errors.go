package reconcile

import (
	"errors"
	"fmt"
)

// ConfigError reports a mapping configuration that cannot drive a run:
// unreadable, malformed, or missing a required key.
type ConfigError struct {
	// Location is where the configuration was read from, if known.
	Location string
	// Reason describes what is wrong.
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ConfigError) Error() string {
	msg := "invalid mapping config"
	if e.Location != "" {
		msg += " " + e.Location
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// SourceReadError reports a record source that is unreadable or malformed.
type SourceReadError struct {
	// Location identifies the record source.
	Location string
	// Err is the underlying cause.
	Err error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("failed to read records from %s: %v", e.Location, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// NewConfigError builds a ConfigError with a formatted reason.
func NewConfigError(location, format string, args ...any) *ConfigError {
	return &ConfigError{Location: location, Reason: fmt.Sprintf(format, args...)}
}

// NewSourceReadError wraps err as a SourceReadError unless it already is one.
func NewSourceReadError(location string, err error) error {
	var sre *SourceReadError
	if errors.As(err, &sre) {
		return err
	}
	return &SourceReadError{Location: location, Err: err}
}

// IsConfigError reports whether err carries a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsSourceReadError reports whether err carries a SourceReadError.
func IsSourceReadError(err error) bool {
	var sre *SourceReadError
	return errors.As(err, &sre)
}
