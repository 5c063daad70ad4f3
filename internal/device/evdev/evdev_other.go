//go:build !linux

package evdev

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/keychord/internal/device"
	"github.com/dshills/keychord/internal/input/key"
)

// Source is unavailable outside Linux.
type Source struct{}

// Open always fails with device.ErrUnsupported.
func Open(string, bool, logrus.FieldLogger) (*Source, error) {
	return nil, device.ErrUnsupported
}

// Name implements the Linux API.
func (s *Source) Name() string { return "" }

// Next implements device.Source.
func (s *Source) Next() (key.Event, error) { return key.Event{}, device.ErrUnsupported }

// Close implements device.Source.
func (s *Source) Close() error { return nil }

// Info describes an input device that reports keys.
type Info struct {
	Path string
	Name string
}

// Keyboards always fails with device.ErrUnsupported.
func Keyboards() ([]Info, error) {
	return nil, device.ErrUnsupported
}
