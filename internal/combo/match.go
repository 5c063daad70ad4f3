package combo

import "github.com/dshills/keychord/internal/input/key"

// Match returns the first combo, in declaration order, whose required events
// all appear at least once in events.
//
// This is a subset test: events unrelated to a combo do not prevent it from
// matching. A combo is skipped without inspection when events holds fewer
// entries than the combo requires. An empty buffer never matches.
func Match(events []key.Event, combos []Combo) (*Combo, bool) {
	if len(events) == 0 {
		return nil, false
	}

	hashes := make([]uint64, len(events))
	for i, ev := range events {
		hashes[i] = ev.Hash()
	}

	for i := range combos {
		c := &combos[i]
		if len(hashes) < len(c.Required) {
			continue
		}
		if containsAll(hashes, c.Required) {
			return c, true
		}
	}
	return nil, false
}

// containsAll reports whether every hash in required appears in hashes.
// Buffers hold a handful of events, so a linear scan beats building a set.
func containsAll(hashes []uint64, required HashSet) bool {
	for want := range required {
		found := false
		for _, h := range hashes {
			if h == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
