// Package guard provides scoped, cancellable timer handles.
//
// A Guard is acquired when a timer is armed and released either by Cancel or
// by the owning container's teardown. Callbacks run while holding the lock
// supplied at arm time and are skipped once the guard is cancelled, so an
// owner that cancels under the same lock is guaranteed the callback never
// runs afterwards, even if the timer had already expired and the callback
// goroutine was waiting for the lock.
package guard

import (
	"sync"
	"sync/atomic"
	"time"
)

// Guard is a handle to a pending timer callback.
type Guard struct {
	timer     *time.Timer
	cancelled atomic.Bool
	fired     atomic.Bool
}

// AfterFunc arms a timer that calls fn after d with mu held.
// Delays of zero or less fire as soon as the runtime services the timer.
func AfterFunc(d time.Duration, mu sync.Locker, fn func()) *Guard {
	g := &Guard{}
	g.timer = time.AfterFunc(d, func() {
		mu.Lock()
		defer mu.Unlock()
		if g.cancelled.Load() {
			return
		}
		g.fired.Store(true)
		fn()
	})
	return g
}

// Cancel releases the guard. It is idempotent and reports whether this call
// prevented a callback that had not yet run.
//
// Call Cancel with the guard's lock held to rule out a callback that is
// already waiting on that lock; without the lock Cancel only stops timers
// that have not expired.
func (g *Guard) Cancel() bool {
	if !g.cancelled.CompareAndSwap(false, true) {
		return false
	}
	g.timer.Stop()
	return !g.fired.Load()
}

// Cancelled reports whether Cancel has been called.
func (g *Guard) Cancelled() bool {
	return g.cancelled.Load()
}

// Fired reports whether the callback has run.
func (g *Guard) Fired() bool {
	return g.fired.Load()
}
