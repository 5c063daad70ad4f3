package buffer

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keychord/internal/combo"
	"github.com/dshills/keychord/internal/engine/queue"
	"github.com/dshills/keychord/internal/input/key"
)

func bothOf(code key.Code) []key.Event {
	return []key.Event{key.NewPress(code), key.NewRelease(code)}
}

// testConfig binds taps of a, b and c in one combo and "n down" in another.
func testConfig() *combo.Config {
	abc := append(append(bothOf(key.CodeA), bothOf(key.CodeB)...), bothOf(key.CodeC)...)
	return combo.NewConfig([]combo.Combo{
		{Name: "a + b + c", Required: combo.NewHashSet(abc...), Actions: []combo.ActionExpr{combo.Tap(key.CodeX)}},
		{Name: "n down", Required: combo.NewHashSet(key.NewPress(key.CodeN)), Actions: []combo.ActionExpr{combo.Tap(key.CodeY)}},
	}, 0)
}

func newTestBuffer(t *testing.T, delay time.Duration) (*Buffer, *queue.Queue[key.Event]) {
	t.Helper()
	log, _ := test.NewNullLogger()
	out := queue.New[key.Event]()
	b := New(testConfig(), delay, out, log)
	t.Cleanup(func() { b.Close() })
	return b, out
}

func drain(q *queue.Queue[key.Event]) []key.Event {
	var events []key.Event
	for {
		ev, ok := q.TryPop()
		if !ok {
			return events
		}
		events = append(events, ev)
	}
}

func TestBufferDefaultDelay(t *testing.T) {
	b, _ := newTestBuffer(t, 0)
	assert.Equal(t, DefaultDelay, b.Delay())
}

func TestBufferBypass(t *testing.T) {
	b, out := newTestBuffer(t, time.Hour)

	_, res := b.Push(key.NewPress(key.CodeQ))
	assert.Equal(t, Bypassed, res)
	_, res = b.Push(key.NewRelease(key.CodeQ))
	assert.Equal(t, Bypassed, res)

	assert.Zero(t, b.Len())
	assert.Equal(t, []key.Event{key.NewPress(key.CodeQ), key.NewRelease(key.CodeQ)}, drain(out))
}

func TestBufferPassthroughFIFO(t *testing.T) {
	b, out := newTestBuffer(t, 5*time.Millisecond)

	pushed := []key.Event{key.NewPress(key.CodeA), key.NewRelease(key.CodeB), key.NewRelease(key.CodeC)}
	for _, ev := range pushed {
		_, res := b.Push(ev)
		assert.Equal(t, Buffered, res)
	}

	require.Eventually(t, func() bool { return out.Len() == len(pushed) }, time.Second, time.Millisecond)
	assert.Equal(t, pushed, drain(out))
	assert.Zero(t, b.Len())
	assert.Equal(t, uint64(len(pushed)), b.Forwarded())
}

func TestBufferMatchConsumesEverything(t *testing.T) {
	b, out := newTestBuffer(t, 50*time.Millisecond)

	// The a release is not needed by "n down" but is consumed with it.
	_, res := b.Push(key.NewRelease(key.CodeA))
	require.Equal(t, Buffered, res)

	c, res := b.Push(key.NewPress(key.CodeN))
	require.Equal(t, Matched, res)
	require.NotNil(t, c)
	assert.Equal(t, "n down", c.Name)
	assert.Zero(t, b.Len())

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, drain(out), "consumed events must never be forwarded")
	assert.Zero(t, b.Forwarded())
}

func TestBufferChordMatch(t *testing.T) {
	b, out := newTestBuffer(t, 50*time.Millisecond)

	var matched *combo.Combo
	for _, code := range []key.Code{key.CodeA, key.CodeB, key.CodeC} {
		c, res := b.Push(key.NewPress(code))
		require.Equal(t, Buffered, res)
		require.Nil(t, c)
	}
	for _, code := range []key.Code{key.CodeA, key.CodeB} {
		_, res := b.Push(key.NewRelease(code))
		require.Equal(t, Buffered, res)
	}
	matched, res := b.Push(key.NewRelease(key.CodeC))
	require.Equal(t, Matched, res)
	assert.Equal(t, "a + b + c", matched.Name)

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, drain(out))
}

func TestBufferPartialChordPassesThrough(t *testing.T) {
	b, out := newTestBuffer(t, 5*time.Millisecond)

	b.Push(key.NewPress(key.CodeA))
	b.Push(key.NewRelease(key.CodeA))

	require.Eventually(t, func() bool { return out.Len() == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, bothOf(key.CodeA), drain(out))
}

func TestBufferBypassOvertakesBuffered(t *testing.T) {
	b, out := newTestBuffer(t, 20*time.Millisecond)

	b.Push(key.NewPress(key.CodeA))
	b.Push(key.NewPress(key.CodeQ))

	ev, ok := out.TryPop()
	require.True(t, ok)
	assert.Equal(t, key.NewPress(key.CodeQ), ev)

	require.Eventually(t, func() bool { return out.Len() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, []key.Event{key.NewPress(key.CodeA)}, drain(out))
}

func TestBufferExpireAdoptsFrontGuard(t *testing.T) {
	b, out := newTestBuffer(t, time.Hour)

	b.Push(key.NewPress(key.CodeA))
	b.Push(key.NewPress(key.CodeB))

	// Simulate the second entry's timer firing before the first.
	b.mu.Lock()
	first, second := b.entries[0], b.entries[1]
	firstGuard, secondGuard := first.guard, second.guard
	b.expire(secondGuard)
	require.Len(t, b.entries, 1)
	assert.Same(t, second, b.entries[0])
	assert.Same(t, firstGuard, b.entries[0].guard, "remaining entry adopts the live guard")
	b.mu.Unlock()

	assert.Equal(t, []key.Event{key.NewPress(key.CodeA)}, drain(out))

	// A match now cancels the adopted guard, leaving nothing armed.
	b.mu.Lock()
	b.clearLocked()
	b.mu.Unlock()
	assert.True(t, firstGuard.Cancelled())
}

func TestBufferClose(t *testing.T) {
	b, out := newTestBuffer(t, 20*time.Millisecond)

	b.Push(key.NewPress(key.CodeA))
	b.Push(key.NewPress(key.CodeB))
	assert.Equal(t, []key.Event{key.NewPress(key.CodeA), key.NewPress(key.CodeB)}, b.snapshot())

	left := b.Close()
	assert.Equal(t, []key.Event{key.NewPress(key.CodeA), key.NewPress(key.CodeB)}, left)
	assert.Nil(t, b.Close())

	_, res := b.Push(key.NewPress(key.CodeC))
	assert.Equal(t, Dropped, res)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, drain(out))
}
