package key

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Action is a key transition. The values match the evdev EV_KEY values.
type Action uint8

const (
	// Release is a key-up transition.
	Release Action = 0
	// Press is a key-down transition.
	Press Action = 1
)

// String returns "down" for Press and "up" for Release, the words used in
// combo expressions.
func (a Action) String() string {
	switch a {
	case Press:
		return "down"
	case Release:
		return "up"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// ActionFromName parses "down" or "up". The second result is false for any
// other word.
func ActionFromName(name string) (Action, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "down":
		return Press, true
	case "up":
		return Release, true
	default:
		return 0, false
	}
}

// Event is a single transition of a single key.
type Event struct {
	Code   Code
	Action Action
}

// NewPress returns a Press event for code.
func NewPress(code Code) Event {
	return Event{Code: code, Action: Press}
}

// NewRelease returns a Release event for code.
func NewRelease(code Code) Event {
	return Event{Code: code, Action: Release}
}

// Hash returns a stable 64-bit hash of the event. Equal events always hash
// equal, across processes and releases.
func (e Event) Hash() uint64 {
	b := [3]byte{byte(e.Code), byte(e.Code >> 8), byte(e.Action)}
	return xxhash.Sum64(b[:])
}

// String returns the event in combo-expression form, e.g. "leftctrl down".
func (e Event) String() string {
	return e.Code.String() + " " + e.Action.String()
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Code: %s, Action: %s}", e.Code, e.Action)
}
