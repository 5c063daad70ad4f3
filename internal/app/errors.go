// Package app runs the remapping daemon.
package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates Run was called twice.
	ErrAlreadyRunning = errors.New("daemon already running")

	// ErrInvalidLogLevel indicates an unknown --log-level value.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogFormat indicates an unknown --log-format value.
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string // Component name (e.g., "config", "evdev", "uinput")
	Action    string // Action being performed
	Err       error  // Underlying error
}

// NewInitError creates a new InitError.
func NewInitError(component, action string, err error) *InitError {
	return &InitError{
		Component: component,
		Action:    action,
		Err:       err,
	}
}

func (e *InitError) Error() string {
	if e == nil {
		return ""
	}

	if e.Action != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Component, e.Action, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Component, e.Action)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Component, e.Err)
	}

	return e.Component
}

func (e *InitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is implements errors.Is for InitError.
// Matches both the wrapper itself and the wrapped error.
func (e *InitError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*InitError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}
