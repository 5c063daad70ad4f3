package combo

import (
	"strconv"
	"strings"
	"time"

	"github.com/dshills/keychord/internal/input/key"
)

// HashSet is a set of key.Event hashes.
type HashSet map[uint64]struct{}

// NewHashSet returns a set holding the hashes of events.
func NewHashSet(events ...key.Event) HashSet {
	s := make(HashSet, len(events))
	for _, ev := range events {
		s.Add(ev)
	}
	return s
}

// Add inserts the hash of ev.
func (s HashSet) Add(ev key.Event) {
	s[ev.Hash()] = struct{}{}
}

// Has reports whether ev's hash is in the set.
func (s HashSet) Has(ev key.Event) bool {
	_, ok := s[ev.Hash()]
	return ok
}

// ExprKind discriminates ActionExpr values.
type ExprKind uint8

const (
	// ExprKey presses, releases or taps a key.
	ExprKey ExprKind = iota
	// ExprWait delays the following entries.
	ExprWait
)

// ActionExpr is one entry of a macro: a key transition, a tap, or a wait.
type ActionExpr struct {
	Kind ExprKind

	// Code is the key for ExprKey entries.
	Code key.Code

	// Action is the transition for ExprKey entries. Nil means a tap:
	// Press followed by Release.
	Action *key.Action

	// Milliseconds is the delay for ExprWait entries.
	Milliseconds uint64
}

// Tap returns a key entry that presses and releases code.
func Tap(code key.Code) ActionExpr {
	return ActionExpr{Kind: ExprKey, Code: code}
}

// Transition returns a key entry for a single transition of code.
func Transition(code key.Code, action key.Action) ActionExpr {
	a := action
	return ActionExpr{Kind: ExprKey, Code: code, Action: &a}
}

// Wait returns a delay entry.
func Wait(ms uint64) ActionExpr {
	return ActionExpr{Kind: ExprWait, Milliseconds: ms}
}

// String renders the entry in combo-expression form.
func (e ActionExpr) String() string {
	switch e.Kind {
	case ExprWait:
		return "wait " + strconv.FormatUint(e.Milliseconds, 10)
	default:
		if e.Action == nil {
			return e.Code.String()
		}
		return e.Code.String() + " " + e.Action.String()
	}
}

// Combo maps a set of required key transitions to a macro.
type Combo struct {
	// Name is the condition as written in the configuration.
	Name string

	// Required holds the hash of every event the condition implies.
	Required HashSet

	// Actions is the macro emitted when the combo matches.
	Actions []ActionExpr
}

// ActionString renders the macro in combo-expression form.
func (c *Combo) ActionString() string {
	parts := make([]string, len(c.Actions))
	for i, a := range c.Actions {
		parts[i] = a.String()
	}
	return strings.Join(parts, " + ")
}

// Config is the immutable combo table the engine consults.
type Config struct {
	// Combos in declaration order.
	Combos []Combo

	// AllHashes is the union of every combo's Required set.
	AllHashes HashSet

	// Delay is the debounce delay. Zero selects the engine default.
	Delay time.Duration
}

// NewConfig builds a Config from combos in declaration order and computes
// the aggregate hash set.
func NewConfig(combos []Combo, delay time.Duration) *Config {
	all := make(HashSet)
	for _, c := range combos {
		for h := range c.Required {
			all[h] = struct{}{}
		}
	}
	return &Config{
		Combos:    combos,
		AllHashes: all,
		Delay:     delay,
	}
}

// Interesting reports whether ev takes part in any combo.
func (c *Config) Interesting(ev key.Event) bool {
	return c.AllHashes.Has(ev)
}

// Match runs the matcher against the configured combos.
func (c *Config) Match(events []key.Event) (*Combo, bool) {
	return Match(events, c.Combos)
}
