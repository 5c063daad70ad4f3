// Package tty is a terminal stand-in for both devices, used to try a combo
// file without grabbing a keyboard.
//
// Terminals report characters rather than transitions, so every key event
// is turned into a press followed by a release, wrapped in the presses and
// releases of its modifiers. Emitted events are printed instead of being
// performed.
package tty

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/dshills/keychord/internal/device"
	"github.com/dshills/keychord/internal/input/key"
)

const header = "keychord try: type to send keys, Ctrl-C to quit"

// maxLines bounds the transcript; older lines are dropped.
const maxLines = 500

// Terminal implements device.Source and device.Sink on a tcell screen.
type Terminal struct {
	screen tcell.Screen
	log    logrus.FieldLogger

	mu      sync.Mutex
	pending []key.Event
	lines   []string
	closed  bool
}

// Open initialises the controlling terminal.
func Open(log logrus.FieldLogger) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}
	return New(screen, log)
}

// New initialises screen and takes ownership of it.
func New(screen tcell.Screen, log logrus.FieldLogger) (*Terminal, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initialising terminal: %w", err)
	}
	t := &Terminal{
		screen: screen,
		log:    log.WithField("component", "tty"),
	}
	t.draw()
	return t, nil
}

// Next implements device.Source.
func (t *Terminal) Next() (key.Event, error) {
	for {
		t.mu.Lock()
		if t.closed {
			t.mu.Unlock()
			return key.Event{}, device.ErrClosed
		}
		if len(t.pending) > 0 {
			ev := t.pending[0]
			t.pending = t.pending[1:]
			t.record("in   " + ev.String())
			t.mu.Unlock()
			t.draw()
			return ev, nil
		}
		t.mu.Unlock()

		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return key.Event{}, device.ErrClosed
		case *tcell.EventResize:
			t.screen.Sync()
			t.draw()
		case *tcell.EventKey:
			if isQuit(ev) {
				return key.Event{}, device.ErrClosed
			}
			events, ok := Translate(ev)
			if !ok {
				t.log.WithField("key", ev.Name()).Debug("no key code for terminal key")
				continue
			}
			t.mu.Lock()
			t.pending = append(t.pending, events...)
			t.mu.Unlock()
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == 'c' && ev.Modifiers()&tcell.ModCtrl != 0
}

// Emit implements device.Sink by printing ev.
func (t *Terminal) Emit(ev key.Event) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return device.ErrClosed
	}
	t.record("out  " + ev.String())
	t.mu.Unlock()

	t.draw()
	return nil
}

// record appends line to the transcript. The caller holds t.mu.
func (t *Terminal) record(line string) {
	if len(t.lines) >= maxLines {
		n := copy(t.lines, t.lines[len(t.lines)-maxLines+1:])
		t.lines = t.lines[:n]
	}
	t.lines = append(t.lines, line)
}

// Lines returns the latest received and emitted events, oldest first.
func (t *Terminal) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.lines...)
}

// Close restores the terminal. It is safe to call more than once.
func (t *Terminal) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()

	t.screen.Fini()
	return nil
}

// draw shows the header and as many of the latest lines as fit.
func (t *Terminal) draw() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}

	t.screen.Clear()
	_, height := t.screen.Size()
	bold := tcell.StyleDefault.Bold(true)
	drawText(t.screen, 0, 0, header, bold)

	lines := t.lines
	if room := height - 2; room >= 0 && len(lines) > room {
		lines = lines[len(lines)-room:]
	}
	for i, line := range lines {
		drawText(t.screen, 0, i+2, line, tcell.StyleDefault)
	}
	t.screen.Show()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
