// Package device defines the capture and output ends of the remapper.
//
// A Source produces raw key transitions, typically from a grabbed keyboard.
// A Sink performs synthetic transitions, typically on a virtual keyboard.
// Concrete adapters live in the evdev, uinput and tty sub-packages.
package device

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dshills/keychord/internal/input/key"
)

var (
	// ErrClosed is returned by Next and Emit after Close.
	ErrClosed = errors.New("device closed")

	// ErrUnsupported is returned by adapters that do not exist on the
	// current platform.
	ErrUnsupported = errors.New("device not supported on this platform")
)

// Source produces raw key transitions.
type Source interface {
	// Next blocks until the next transition. It returns ErrClosed once
	// Close has been called.
	Next() (key.Event, error)
	Close() error
}

// Sink performs key transitions.
type Sink interface {
	Emit(key.Event) error
	Close() error
}

// LogSink logs every event instead of performing it.
type LogSink struct {
	log    logrus.FieldLogger
	mu     sync.Mutex
	closed bool
}

// NewLogSink returns a sink that logs at info level.
func NewLogSink(log logrus.FieldLogger) *LogSink {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogSink{log: log.WithField("component", "sink")}
}

// Emit logs ev.
func (s *LogSink) Emit(ev key.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.log.WithFields(logrus.Fields{
		"key":    ev.Code.String(),
		"action": ev.Action.String(),
	}).Info("emit")
	return nil
}

// Close implements Sink.
func (s *LogSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
