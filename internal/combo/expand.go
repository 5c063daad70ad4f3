package combo

import (
	"time"

	"github.com/dshills/keychord/internal/input/key"
)

// Step is one expanded macro event and its delay relative to the match.
type Step struct {
	Delay time.Duration
	Event key.Event
}

// Expand turns a macro into timed events.
//
// A running cursor starts at zero. Wait entries advance it and produce
// nothing. An entry with an explicit action produces one step at the cursor.
// A tap produces Press then Release, both at the cursor. Steps sharing a
// cursor keep their input order.
func Expand(actions []ActionExpr) []Step {
	steps := make([]Step, 0, len(actions)*2)
	var cursor time.Duration

	for _, a := range actions {
		switch a.Kind {
		case ExprWait:
			cursor += time.Duration(a.Milliseconds) * time.Millisecond
		case ExprKey:
			if a.Action != nil {
				steps = append(steps, Step{Delay: cursor, Event: key.Event{Code: a.Code, Action: *a.Action}})
				continue
			}
			steps = append(steps,
				Step{Delay: cursor, Event: key.NewPress(a.Code)},
				Step{Delay: cursor, Event: key.NewRelease(a.Code)},
			)
		}
	}
	return steps
}
