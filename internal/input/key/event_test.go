package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionFromName(t *testing.T) {
	a, ok := ActionFromName("down")
	assert.True(t, ok)
	assert.Equal(t, Press, a)

	a, ok = ActionFromName("UP")
	assert.True(t, ok)
	assert.Equal(t, Release, a)

	_, ok = ActionFromName("hold")
	assert.False(t, ok)
}

func TestEventHashStable(t *testing.T) {
	a := NewPress(CodeA)
	b := Event{Code: CodeA, Action: Press}
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a.Hash(), a.Hash())
}

func TestEventHashDistinct(t *testing.T) {
	seen := make(map[uint64]Event)
	for _, n := range Names() {
		for _, ev := range []Event{NewPress(n.Code), NewRelease(n.Code)} {
			h := ev.Hash()
			if prev, dup := seen[h]; dup {
				t.Fatalf("hash collision between %v and %v", prev, ev)
			}
			seen[h] = ev
		}
	}
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "leftctrl down", NewPress(CodeLeftCtrl).String())
	assert.Equal(t, "f23 up", NewRelease(CodeF23).String())
	assert.Equal(t, "Event{Code: a, Action: down}", NewPress(CodeA).GoString())
}
