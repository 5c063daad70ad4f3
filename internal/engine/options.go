package engine

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Defaults to the logrus standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithDelay overrides the debounce delay from the config.
func WithDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.delay = d
		}
	}
}

// WithID sets the identifier attached to every log line of the engine.
func WithID(id string) Option {
	return func(e *Engine) {
		e.id = id
	}
}
