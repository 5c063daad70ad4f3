package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitError(t *testing.T) {
	base := errors.New("permission denied")

	tests := []struct {
		err  *InitError
		want string
	}{
		{NewInitError("evdev", "open /dev/input/event3", base), "evdev: open /dev/input/event3: permission denied"},
		{NewInitError("evdev", "", base), "evdev: permission denied"},
		{NewInitError("evdev", "open", nil), "evdev: open"},
		{NewInitError("evdev", "", nil), "evdev"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}

	err := NewInitError("uinput", "create", base)
	assert.ErrorIs(t, err, base)
	assert.ErrorIs(t, err, err)
	assert.False(t, errors.Is(err, NewInitError("uinput", "create", base)))

	var nilErr *InitError
	assert.Equal(t, "", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
}
