//go:build linux

package evdev

import (
	"errors"
	"fmt"
	"os"
	"sync"

	evdevlib "github.com/gvalkov/golang-evdev"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/dshills/keychord/internal/device"
	"github.com/dshills/keychord/internal/input/key"
)

// Source reads key transitions from an evdev node.
type Source struct {
	dev     *evdevlib.InputDevice
	grabbed bool
	log     logrus.FieldLogger

	mu     sync.Mutex
	closed bool
}

// Open opens the device at path. With grab set the device is taken for
// exclusive use until Close.
func Open(path string, grab bool, log logrus.FieldLogger) (*Source, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	dev, err := evdevlib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	s := &Source{
		dev: dev,
		log: log.WithFields(logrus.Fields{
			"component": "evdev",
			"device":    path,
		}),
	}

	if grab {
		if err := dev.Grab(); err != nil {
			_ = dev.File.Close()
			return nil, fmt.Errorf("grabbing %s: %w", path, err)
		}
		s.grabbed = true
	}

	s.log.WithFields(logrus.Fields{
		"name":    dev.Name,
		"grabbed": s.grabbed,
	}).Info("capture device opened")
	return s, nil
}

// Name returns the device name reported by the kernel.
func (s *Source) Name() string {
	return s.dev.Name
}

// Next implements device.Source.
func (s *Source) Next() (key.Event, error) {
	for {
		raw, err := s.dev.ReadOne()
		if err != nil {
			if s.isClosed() || errors.Is(err, os.ErrClosed) {
				return key.Event{}, device.ErrClosed
			}
			return key.Event{}, fmt.Errorf("reading %s: %w", s.dev.Fn, err)
		}
		if ev, ok := translate(raw.Type, raw.Code, raw.Value); ok {
			return ev, nil
		}
	}
}

// Close releases the grab and closes the device, unblocking Next.
func (s *Source) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	if s.grabbed {
		if err := s.dev.Release(); err != nil {
			s.log.WithError(err).Warn("releasing grab")
		}
	}
	return s.dev.File.Close()
}

func (s *Source) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Info describes an input device that reports keys.
type Info struct {
	Path string
	Name string
}

// Keyboards lists input devices that can produce letter keys.
func Keyboards() ([]Info, error) {
	devs, err := evdevlib.ListInputDevices()
	if err != nil {
		return nil, fmt.Errorf("listing input devices: %w", err)
	}

	var out []Info
	for _, dev := range devs {
		if hasKey(dev, uint16(key.CodeA)) {
			out = append(out, Info{Path: dev.Fn, Name: dev.Name})
		}
		_ = dev.File.Close()
	}
	return out, nil
}

func hasKey(dev *evdevlib.InputDevice, code uint16) bool {
	for typ, codes := range dev.Capabilities {
		if typ.Type != evKey {
			continue
		}
		for _, c := range codes {
			if c.Code == int(code) {
				return true
			}
		}
	}
	return false
}
