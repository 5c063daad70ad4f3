package buffer

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dshills/keychord/internal/combo"
	"github.com/dshills/keychord/internal/engine/guard"
	"github.com/dshills/keychord/internal/input/key"
)

// DefaultDelay is the debounce delay used when the config does not set one.
const DefaultDelay = 3 * time.Millisecond

// initialCapacity is a sizing hint, not a limit.
const initialCapacity = 10

// Output receives forwarded events. Push must not block.
type Output interface {
	Push(key.Event) error
}

type entry struct {
	event key.Event
	guard *guard.Guard
}

// Buffer is the debounce buffer. It is safe for one pushing goroutine
// running alongside the timer callbacks.
type Buffer struct {
	mu      sync.Mutex
	entries []*entry
	closed  bool

	cfg   *combo.Config
	delay time.Duration
	out   Output
	log   logrus.FieldLogger

	forwarded atomic.Uint64
}

// New creates a buffer for cfg. A delay of zero or less selects DefaultDelay.
func New(cfg *combo.Config, delay time.Duration, out Output, log logrus.FieldLogger) *Buffer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Buffer{
		entries: make([]*entry, 0, initialCapacity),
		cfg:     cfg,
		delay:   delay,
		out:     out,
		log:     log.WithField("component", "buffer"),
	}
}

// Delay returns the passthrough delay.
func (b *Buffer) Delay() time.Duration {
	return b.delay
}

// Result describes what Push did with an event.
type Result int

const (
	// Bypassed means the event is not part of any combo and was forwarded
	// immediately.
	Bypassed Result = iota
	// Buffered means the event is waiting for its passthrough timer.
	Buffered
	// Matched means the event completed a combo and the buffer was cleared.
	Matched
	// Dropped means the buffer is closed.
	Dropped
)

// Push handles one raw event.
//
// Events outside every combo are forwarded at once. Other events are
// appended and the matcher runs over the whole buffer; on a hit the buffer
// is cleared and the combo returned. Append, match and clear happen under
// one lock so an expiring timer cannot forward an event the match consumes.
func (b *Buffer) Push(ev key.Event) (*combo.Combo, Result) {
	if !b.cfg.Interesting(ev) {
		if err := b.out.Push(ev); err != nil {
			b.log.WithError(err).WithField("event", ev.String()).Debug("output gone, dropping event")
		}
		return nil, Bypassed
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, Dropped
	}

	e := &entry{event: ev}
	var g *guard.Guard
	g = guard.AfterFunc(b.delay, &b.mu, func() {
		b.expire(g)
	})
	e.guard = g
	b.entries = append(b.entries, e)

	events := make([]key.Event, len(b.entries))
	for i, be := range b.entries {
		events[i] = be.event
	}

	c, ok := b.cfg.Match(events)
	if !ok {
		return nil, Buffered
	}

	b.clearLocked()
	b.log.WithFields(logrus.Fields{
		"combo":    c.Name,
		"consumed": len(events),
	}).Debug("combo matched")
	return c, Matched
}

// expire runs with b.mu held when the timer behind g fires.
//
// Draining is oldest-first: the front entry is forwarded even when g belongs
// to a later entry. In that case the later entry adopts the front entry's
// guard, which is still armed, so each buffered entry keeps exactly one live
// timer.
func (b *Buffer) expire(g *guard.Guard) {
	if len(b.entries) == 0 {
		return
	}

	front := b.entries[0]
	b.entries[0] = nil
	b.entries = b.entries[1:]

	if front.guard != g {
		for _, e := range b.entries {
			if e.guard == g {
				e.guard = front.guard
				break
			}
		}
	}

	if err := b.out.Push(front.event); err != nil {
		b.log.WithError(err).WithField("event", front.event.String()).Debug("output gone, dropping event")
		return
	}
	b.forwarded.Add(1)
}

// Forwarded returns the number of buffered events forwarded by their
// passthrough timer.
func (b *Buffer) Forwarded() uint64 {
	return b.forwarded.Load()
}

// clearLocked cancels every guard and empties the buffer. b.mu must be held.
func (b *Buffer) clearLocked() []key.Event {
	events := make([]key.Event, 0, len(b.entries))
	for i, e := range b.entries {
		e.guard.Cancel()
		events = append(events, e.event)
		b.entries[i] = nil
	}
	b.entries = b.entries[:0]
	return events
}

// Len returns the number of buffered events.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// snapshot returns the buffered events, oldest first.
func (b *Buffer) snapshot() []key.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	events := make([]key.Event, len(b.entries))
	for i, e := range b.entries {
		events[i] = e.event
	}
	return events
}

// Close cancels every pending timer and returns the events that were still
// buffered, oldest first. They have not been forwarded. Later pushes of
// combo keys are dropped.
func (b *Buffer) Close() []key.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	return b.clearLocked()
}
