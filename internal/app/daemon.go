package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/keychord/internal/combo"
	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/config/watcher"
	"github.com/dshills/keychord/internal/device"
	"github.com/dshills/keychord/internal/engine"
	"github.com/dshills/keychord/internal/engine/queue"
)

// Options configures a Daemon.
type Options struct {
	// ConfigPath is the combo file.
	ConfigPath string

	// Delay overrides the debounce delay from the combo file when positive.
	Delay time.Duration

	// Watch reloads the combo file when it changes.
	Watch bool

	// WatchDebounce is how long the file must be quiet before a reload.
	// Zero selects the watcher default.
	WatchDebounce time.Duration

	// Logger defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// Daemon moves events from a Source through an engine to a Sink. Each
// config reload builds a new engine generation; the output of the previous
// generation is drained before the next one's. A replaced generation keeps
// running its pending macro steps until they fire or the daemon stops, so a
// reload never leaves a key held down.
type Daemon struct {
	opts Options
	log  logrus.FieldLogger
	src  device.Source
	sink device.Sink

	mu     sync.RWMutex
	eng    *engine.Engine
	closed bool

	generations *queue.Queue[*engine.Engine]
	drainCtx    context.Context
	stopDrains  context.CancelFunc
	drains      sync.WaitGroup

	running atomic.Bool
	reloads atomic.Uint64
}

// New loads the combo file and builds the first engine. The daemon does not
// own src or sink beyond closing src to stop capture.
func New(opts Options, src device.Source, sink device.Sink) (*Daemon, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	d := &Daemon{
		opts:        opts,
		log:         log.WithField("component", "daemon"),
		src:         src,
		sink:        sink,
		generations: queue.New[*engine.Engine](),
	}
	d.drainCtx, d.stopDrains = context.WithCancel(context.Background())

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		d.stopDrains()
		return nil, NewInitError("config", "load "+opts.ConfigPath, err)
	}

	d.eng = d.newEngine(cfg)
	if err := d.generations.Push(d.eng); err != nil {
		return nil, NewInitError("engine", "start", err)
	}
	return d, nil
}

func (d *Daemon) newEngine(cfg *combo.Config) *engine.Engine {
	if len(cfg.Combos) == 0 {
		d.log.WithField("config", d.opts.ConfigPath).Warn("no combos configured, all keys pass through")
	}
	return engine.New(cfg,
		engine.WithLogger(d.opts.loggerOrDefault()),
		engine.WithDelay(d.opts.Delay),
	)
}

func (o Options) loggerOrDefault() logrus.FieldLogger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}

// Engine returns the current engine generation.
func (d *Daemon) Engine() *engine.Engine {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.eng
}

// Reloads returns the number of successful reloads.
func (d *Daemon) Reloads() uint64 {
	return d.reloads.Load()
}

// Run captures, remaps and emits until ctx is cancelled, the source ends or
// the sink fails.
func (d *Daemon) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	var w *watcher.Watcher
	if d.opts.Watch {
		var err error
		if w, err = d.startWatcher(); err != nil {
			d.shutdown(nil)
			return NewInitError("watcher", "start", err)
		}
	}

	g.Go(func() error {
		defer cancel()
		return d.capture()
	})

	g.Go(func() error {
		defer cancel()
		return d.pump()
	})

	g.Go(func() error {
		<-ctx.Done()
		d.shutdown(w)
		return nil
	})

	d.log.WithField("config", d.opts.ConfigPath).Info("daemon running")
	err := g.Wait()
	d.log.WithField("reloads", d.reloads.Load()).Info("daemon stopped")
	return err
}

// capture feeds source events to the current engine.
func (d *Daemon) capture() error {
	for {
		ev, err := d.src.Next()
		if err != nil {
			if errors.Is(err, device.ErrClosed) {
				return nil
			}
			return fmt.Errorf("capture: %w", err)
		}

		d.mu.RLock()
		d.eng.Push(ev)
		d.mu.RUnlock()
	}
}

// pump drains engine generations in order.
func (d *Daemon) pump() error {
	for {
		eng, err := d.generations.Pop(context.Background())
		if err != nil {
			return nil
		}
		for {
			ev, ok := eng.Pop()
			if !ok {
				break
			}
			if err := d.sink.Emit(ev); err != nil {
				if errors.Is(err, device.ErrClosed) {
					d.log.WithField("event", ev.String()).Debug("sink closed, dropping output")
					return nil
				}
				return fmt.Errorf("emit: %w", err)
			}
		}
	}
}

// shutdown stops capture, closes the current engine so its buffered events
// are flushed, cuts short the drains of replaced engines and lets the pump
// finish.
func (d *Daemon) shutdown(w *watcher.Watcher) {
	if w != nil {
		w.Stop()
	}
	if err := d.src.Close(); err != nil {
		d.log.WithError(err).Warn("closing source")
	}

	d.mu.Lock()
	d.closed = true
	eng := d.eng
	d.mu.Unlock()

	eng.Close()
	d.stopDrains()
	d.drains.Wait()
	d.generations.Close()
}

func (d *Daemon) startWatcher() (*watcher.Watcher, error) {
	opts := []watcher.Option{watcher.WithLogger(d.opts.loggerOrDefault())}
	if d.opts.WatchDebounce > 0 {
		opts = append(opts, watcher.WithDebounce(d.opts.WatchDebounce))
	}
	w := watcher.New(opts...)
	if err := w.Watch(d.opts.ConfigPath); err != nil {
		return nil, err
	}
	w.OnChange(func(ev watcher.Event) {
		d.log.WithFields(logrus.Fields{
			"path": ev.Path,
			"op":   ev.Op.String(),
		}).Info("config changed")
		_ = d.Reload()
	})
	if err := w.Start(); err != nil {
		return nil, err
	}
	d.log.WithField("files", w.WatchedFiles()).Info("watching config for changes")
	return w, nil
}

// Reload re-reads the combo file and swaps in a new engine. On error the
// current engine keeps running.
func (d *Daemon) Reload() error {
	cfg, err := config.Load(d.opts.ConfigPath)
	if err != nil {
		d.log.WithError(err).Error("reload failed, keeping current config")
		return err
	}

	eng := d.newEngine(cfg)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		eng.Close()
		return nil
	}
	old := d.eng
	d.eng = eng
	if err := d.generations.Push(eng); err != nil {
		d.eng = old
		d.mu.Unlock()
		eng.Close()
		return err
	}
	d.drains.Add(1)
	d.mu.Unlock()

	go d.drain(old)
	d.reloads.Add(1)
	d.log.WithFields(logrus.Fields{
		"engine": eng.ID(),
		"combos": len(cfg.Combos),
	}).Info("config reloaded")
	return nil
}

// drain retires a replaced engine once its pending macro steps have fired.
func (d *Daemon) drain(old *engine.Engine) {
	defer d.drains.Done()

	if err := old.Drain(d.drainCtx); err != nil {
		d.log.WithError(err).WithField("engine", old.ID()).Debug("engine drain stopped")
		return
	}
	d.log.WithField("engine", old.ID()).Debug("engine drained")
}
