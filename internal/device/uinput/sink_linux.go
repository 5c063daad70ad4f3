//go:build linux

package uinput

import (
	"fmt"

	"github.com/bendahl/uinput"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Open creates a virtual keyboard through the uinput node at path.
func Open(path, name string, log logrus.FieldLogger) (*Sink, error) {
	if path == "" {
		path = DefaultPath
	}
	if name == "" {
		name = DefaultName
	}
	if err := unix.Access(path, unix.W_OK); err != nil {
		return nil, fmt.Errorf("cannot write %s: %w", path, err)
	}

	kb, err := uinput.CreateKeyboard(path, []byte(name))
	if err != nil {
		return nil, fmt.Errorf("creating virtual keyboard: %w", err)
	}

	s := newSink(kb, log)
	s.log.WithField("name", name).Info("virtual keyboard created")
	return s, nil
}
