package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dshills/keychord/internal/combo"
	"github.com/dshills/keychord/internal/engine/buffer"
	"github.com/dshills/keychord/internal/engine/queue"
	"github.com/dshills/keychord/internal/engine/scheduler"
	"github.com/dshills/keychord/internal/input/key"
)

// Engine is the remapping core. The config it is built with is never
// modified; build a new Engine to change it.
type Engine struct {
	cfg   *combo.Config
	delay time.Duration
	id    string
	log   logrus.FieldLogger

	ingress *queue.Queue[key.Event]
	output  *queue.Queue[key.Event]
	buffer  *buffer.Buffer
	sched   *scheduler.Scheduler

	stats     counters
	done      chan struct{}
	closeOnce sync.Once
}

// New builds an engine for cfg and starts its consumer goroutine.
func New(cfg *combo.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:     cfg,
		delay:   cfg.Delay,
		log:     logrus.StandardLogger(),
		ingress: queue.New[key.Event](),
		output:  queue.New[key.Event](),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.id == "" {
		e.id = uuid.NewString()
	}
	e.log = e.log.WithField("engine", e.id)

	e.buffer = buffer.New(cfg, e.delay, e.output, e.log)
	e.sched = scheduler.New(e.output, e.log)
	e.delay = e.buffer.Delay()

	go e.consume()

	e.log.WithFields(logrus.Fields{
		"combos": len(cfg.Combos),
		"delay":  e.delay,
	}).Info("engine started")
	return e
}

// ID returns the engine identifier used in logs.
func (e *Engine) ID() string {
	return e.id
}

// Delay returns the effective debounce delay.
func (e *Engine) Delay() time.Duration {
	return e.delay
}

// Config returns the combo table the engine was built with.
func (e *Engine) Config() *combo.Config {
	return e.cfg
}

// Push hands a raw key transition to the engine. It never blocks. After
// Close the event is dropped.
func (e *Engine) Push(ev key.Event) {
	if err := e.ingress.Push(ev); err != nil {
		e.log.WithField("event", ev.String()).Debug("engine closed, dropping event")
		return
	}
	e.stats.pushed.Add(1)
}

// Pop returns the next output event, blocking until one is available. The
// second result is false once the engine is closed and its output drained.
func (e *Engine) Pop() (key.Event, bool) {
	ev, err := e.output.Pop(context.Background())
	return ev, err == nil
}

// PopContext is Pop with cancellation. It returns queue.ErrClosed once the
// engine is closed and drained, or the context's error.
func (e *Engine) PopContext(ctx context.Context) (key.Event, error) {
	return e.output.Pop(ctx)
}

// TryPop returns the next output event without blocking.
func (e *Engine) TryPop() (key.Event, bool) {
	return e.output.TryPop()
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	s := e.stats.snapshot()
	s.Forwarded = e.buffer.Forwarded()
	s.Emitted = e.sched.Fired()
	s.Held = e.buffer.Len()
	s.Pending = e.sched.Pending()
	return s
}

// consume is the only goroutine that appends to the buffer.
func (e *Engine) consume() {
	defer close(e.done)

	for {
		ev, err := e.ingress.Pop(context.Background())
		if err != nil {
			if !errors.Is(err, queue.ErrClosed) {
				e.log.WithError(err).Error("ingress failed")
			}
			return
		}
		e.handle(ev)
	}
}

func (e *Engine) handle(ev key.Event) {
	c, res := e.buffer.Push(ev)
	switch res {
	case buffer.Bypassed:
		e.stats.bypassed.Add(1)
	case buffer.Buffered:
		e.stats.buffered.Add(1)
	case buffer.Matched:
		e.stats.buffered.Add(1)
		e.stats.matched.Add(1)
		e.run(c)
	}
}

// run schedules every step of the combo's macro. A refused step is logged
// and the rest of the macro is still scheduled.
func (e *Engine) run(c *combo.Combo) {
	steps := combo.Expand(c.Actions)
	log := e.log.WithField("combo", c.Name)
	log.WithField("steps", len(steps)).Info("combo triggered")

	for i, step := range steps {
		if err := e.sched.Schedule(step.Event, step.Delay); err != nil {
			e.stats.rejected.Add(1)
			log.WithError(err).WithFields(logrus.Fields{
				"step":  i,
				"event": step.Event.String(),
			}).Warn("macro step not scheduled")
			continue
		}
		e.stats.scheduled.Add(1)
	}
}

// Close stops the engine. Events already pushed are processed, events still
// in the debounce buffer are forwarded, pending macro steps are cancelled and
// the output is closed; remaining output can still be drained with Pop.
// Close is safe to call more than once.
func (e *Engine) Close() {
	e.stop(func() {
		e.sched.Close()
	})
}

// Drain stops the engine like Close but lets pending macro steps fire
// before the output is closed, so a macro cut short by a config reload
// still releases the keys it pressed. If ctx ends first the remaining steps
// are cancelled and the context's error is returned. Drain and Close share
// one shutdown; whichever runs first decides.
func (e *Engine) Drain(ctx context.Context) error {
	var err error
	e.stop(func() {
		if err = e.sched.Drain(ctx); err != nil {
			e.log.WithError(err).Warn("drain cut short, pending macro steps dropped")
		}
		e.sched.Close()
	})
	return err
}

func (e *Engine) stop(release func()) {
	e.closeOnce.Do(func() {
		e.ingress.Close()
		<-e.done

		flushed := e.buffer.Close()
		for _, ev := range flushed {
			if err := e.output.Push(ev); err != nil {
				break
			}
			e.stats.flushed.Add(1)
		}
		release()
		e.output.Close()

		s := e.Stats()
		e.log.WithFields(logrus.Fields{
			"pushed":    s.Pushed,
			"bypassed":  s.Bypassed,
			"buffered":  s.Buffered,
			"forwarded": s.Forwarded,
			"matched":   s.Matched,
			"scheduled": s.Scheduled,
			"rejected":  s.Rejected,
			"emitted":   s.Emitted,
			"flushed":   s.Flushed,
		}).Info("engine stopped")
	})
}
