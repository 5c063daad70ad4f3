//go:build !linux

package uinput

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/keychord/internal/device"
)

// Open always fails with device.ErrUnsupported.
func Open(string, string, logrus.FieldLogger) (*Sink, error) {
	return nil, device.ErrUnsupported
}
