// Package scheduler emits key events after a delay.
//
// Each scheduled event is a task labelled with a one-byte id. A task is
// pending from Schedule until its timer fires, at which point the event is
// pushed to the output and the id is released. Tasks cannot be cancelled
// individually. Drain waits for every pending task to fire; Close tears
// them all down at once.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dshills/keychord/internal/engine/guard"
	"github.com/dshills/keychord/internal/input/key"
)

// Output receives fired events. Push must not block.
type Output interface {
	Push(key.Event) error
}

// Scheduler arms one timer per delayed event.
type Scheduler struct {
	mu      sync.Mutex
	pending map[uint8]*guard.Guard
	ids     *IDGenerator
	out     Output
	closed  bool
	log     logrus.FieldLogger

	// draining refuses new tasks; idle is closed when the last pending
	// task fires during a drain.
	draining bool
	idle     chan struct{}

	fired atomic.Uint64
}

// New creates a scheduler that pushes fired events to out.
func New(out Output, log logrus.FieldLogger) *Scheduler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scheduler{
		pending: make(map[uint8]*guard.Guard, MaxPending),
		ids:     NewIDGenerator(),
		out:     out,
		log:     log.WithField("component", "scheduler"),
	}
}

// Schedule arms a task that emits ev after delay. Delays of zero or less
// fire as soon as the runtime services the timer.
//
// It returns ErrCapacityExceeded when MaxPending tasks are pending and
// ErrClosed after Drain or Close; in both cases no state changes.
func (s *Scheduler) Schedule(ev key.Event, delay time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.draining {
		return ErrClosed
	}
	if len(s.pending) >= MaxPending {
		return fmt.Errorf("%w (%d pending)", ErrCapacityExceeded, len(s.pending))
	}

	// The generator wraps independently of completions; skip ids whose
	// task is still pending. len(pending) < MaxPending bounds the loop.
	id := s.ids.Next()
	for s.pending[id] != nil {
		id = s.ids.Next()
	}

	var g *guard.Guard
	g = guard.AfterFunc(delay, &s.mu, func() {
		s.fire(id, g, ev)
	})
	s.pending[id] = g

	s.log.WithFields(logrus.Fields{
		"id":    id,
		"event": ev.String(),
		"delay": delay,
	}).Debug("scheduled")
	return nil
}

// fire runs with s.mu held.
func (s *Scheduler) fire(id uint8, g *guard.Guard, ev key.Event) {
	if err := s.out.Push(ev); err != nil {
		s.log.WithError(err).WithField("event", ev.String()).Debug("output gone, dropping event")
	}
	s.fired.Add(1)
	if s.pending[id] == g {
		delete(s.pending, id)
	}
	if s.draining && len(s.pending) == 0 && s.idle != nil {
		close(s.idle)
		s.idle = nil
	}
}

// Fired returns the number of tasks whose event reached the output.
func (s *Scheduler) Fired() uint64 {
	return s.fired.Load()
}

// Drain refuses new tasks and blocks until every pending task has fired.
// If ctx ends first the remaining tasks are cancelled as by Close and the
// context's error is returned.
func (s *Scheduler) Drain(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.draining = true
	if len(s.pending) == 0 {
		s.mu.Unlock()
		return nil
	}
	if s.idle == nil {
		s.idle = make(chan struct{})
	}
	idle := s.idle
	s.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		s.Close()
		return ctx.Err()
	}
}

// Pending returns the number of tasks that have not fired yet.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Close cancels every pending task. Later calls to Schedule return ErrClosed.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	dropped := 0
	for id, g := range s.pending {
		if g.Cancel() {
			dropped++
		}
		delete(s.pending, id)
	}
	if s.idle != nil {
		close(s.idle)
		s.idle = nil
	}
	if dropped > 0 {
		s.log.WithField("dropped", dropped).Info("scheduler closed with pending tasks")
	}
}
