package uinput

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dshills/keychord/internal/device"
	"github.com/dshills/keychord/internal/input/key"
)

// keyboard is the part of a virtual keyboard the sink drives.
type keyboard interface {
	KeyDown(code int) error
	KeyUp(code int) error
	Close() error
}

// Sink emits events on a virtual keyboard.
type Sink struct {
	kb  keyboard
	log logrus.FieldLogger

	mu     sync.Mutex
	closed bool
}

func newSink(kb keyboard, log logrus.FieldLogger) *Sink {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Sink{kb: kb, log: log.WithField("component", "uinput")}
}

// Emit implements device.Sink. Each transition is followed by a sync
// report.
func (s *Sink) Emit(ev key.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return device.ErrClosed
	}

	var err error
	switch ev.Action {
	case key.Press:
		err = s.kb.KeyDown(int(ev.Code))
	default:
		err = s.kb.KeyUp(int(ev.Code))
	}
	if err != nil {
		return fmt.Errorf("emitting %s: %w", ev, err)
	}
	return nil
}

// Close destroys the virtual keyboard.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.log.Info("virtual keyboard closed")
	return s.kb.Close()
}
