package uinput

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keychord/internal/device"
	"github.com/dshills/keychord/internal/input/key"
)

type call struct {
	down bool
	code int
}

type fakeKeyboard struct {
	calls  []call
	closed int
	err    error
}

func (f *fakeKeyboard) KeyDown(code int) error {
	f.calls = append(f.calls, call{down: true, code: code})
	return f.err
}

func (f *fakeKeyboard) KeyUp(code int) error {
	f.calls = append(f.calls, call{down: false, code: code})
	return f.err
}

func (f *fakeKeyboard) Close() error {
	f.closed++
	return nil
}

func TestSinkEmit(t *testing.T) {
	kb := &fakeKeyboard{}
	log, _ := test.NewNullLogger()
	s := newSink(kb, log)

	require.NoError(t, s.Emit(key.NewPress(key.CodeLeftCtrl)))
	require.NoError(t, s.Emit(key.NewRelease(key.CodeLeftCtrl)))

	assert.Equal(t, []call{{true, 29}, {false, 29}}, kb.calls)
}

func TestSinkEmitError(t *testing.T) {
	boom := errors.New("boom")
	kb := &fakeKeyboard{err: boom}
	log, _ := test.NewNullLogger()
	s := newSink(kb, log)

	err := s.Emit(key.NewPress(key.CodeA))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "a down")
}

func TestSinkClose(t *testing.T) {
	kb := &fakeKeyboard{}
	log, _ := test.NewNullLogger()
	s := newSink(kb, log)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, kb.closed)
	assert.ErrorIs(t, s.Emit(key.NewPress(key.CodeA)), device.ErrClosed)
}
