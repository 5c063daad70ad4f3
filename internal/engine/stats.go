package engine

import "sync/atomic"

// Stats is a snapshot of engine counters.
type Stats struct {
	Pushed    uint64 // events accepted by Push
	Bypassed  uint64 // events forwarded without buffering
	Buffered  uint64 // events held for a possible combo
	Forwarded uint64 // buffered events forwarded by their passthrough timer
	Matched   uint64 // combos recognised
	Scheduled uint64 // macro events armed
	Rejected  uint64 // macro events refused by the scheduler
	Emitted   uint64 // macro events that reached the output
	Flushed   uint64 // buffered events forwarded by Close or Drain

	Held    int // events in the debounce buffer now
	Pending int // macro events armed but not yet emitted
}

type counters struct {
	pushed    atomic.Uint64
	bypassed  atomic.Uint64
	buffered  atomic.Uint64
	matched   atomic.Uint64
	scheduled atomic.Uint64
	rejected  atomic.Uint64
	flushed   atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Pushed:    c.pushed.Load(),
		Bypassed:  c.bypassed.Load(),
		Buffered:  c.buffered.Load(),
		Matched:   c.matched.Load(),
		Scheduled: c.scheduled.Load(),
		Rejected:  c.rejected.Load(),
		Flushed:   c.flushed.Load(),
	}
}
