package engine

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keychord/internal/combo"
	"github.com/dshills/keychord/internal/input/key"
)

func tapOf(code key.Code) []key.Event {
	return []key.Event{key.NewPress(code), key.NewRelease(code)}
}

func mustCombo(name string, required []key.Event, actions ...combo.ActionExpr) combo.Combo {
	return combo.Combo{Name: name, Required: combo.NewHashSet(required...), Actions: actions}
}

// scenarioConfig defines "a" = "b" and "n down" = "b + c".
func scenarioConfig() *combo.Config {
	return combo.NewConfig([]combo.Combo{
		mustCombo("a", tapOf(key.CodeA), combo.Tap(key.CodeB)),
		mustCombo("n down", []key.Event{key.NewPress(key.CodeN)}, combo.Tap(key.CodeB), combo.Tap(key.CodeC)),
	}, 0)
}

func newTestEngine(t *testing.T, cfg *combo.Config, opts ...Option) (*Engine, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	e := New(cfg, append([]Option{WithLogger(log), WithDelay(30 * time.Millisecond)}, opts...)...)
	t.Cleanup(e.Close)
	return e, hook
}

func collect(t *testing.T, e *Engine, n int, timeout time.Duration) []key.Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	events := make([]key.Event, 0, n)
	for len(events) < n {
		ev, err := e.PopContext(ctx)
		require.NoError(t, err, "got %v", events)
		events = append(events, ev)
	}
	return events
}

func assertQuiet(t *testing.T, e *Engine, d time.Duration) {
	t.Helper()
	time.Sleep(d)
	ev, ok := e.TryPop()
	assert.False(t, ok, "unexpected output %v", ev)
}

func TestEngineBypassesUnrelatedKeys(t *testing.T) {
	e, _ := newTestEngine(t, scenarioConfig(), WithDelay(time.Hour))

	e.Push(key.NewPress(key.CodeX))
	e.Push(key.NewRelease(key.CodeX))

	got := collect(t, e, 2, time.Second)
	assert.Equal(t, tapOf(key.CodeX), got)

	s := e.Stats()
	assert.Equal(t, uint64(2), s.Pushed)
	assert.Equal(t, uint64(2), s.Bypassed)
	assert.Zero(t, s.Buffered)
}

func TestEngineTapCombo(t *testing.T) {
	e, _ := newTestEngine(t, scenarioConfig())

	e.Push(key.NewPress(key.CodeA))
	e.Push(key.NewRelease(key.CodeA))

	got := collect(t, e, 2, time.Second)
	assert.ElementsMatch(t, tapOf(key.CodeB), got)
	assertQuiet(t, e, 60*time.Millisecond)

	assert.Equal(t, uint64(1), e.Stats().Matched)
}

func TestEngineExplicitPressCombo(t *testing.T) {
	e, _ := newTestEngine(t, scenarioConfig())

	e.Push(key.NewPress(key.CodeN))

	got := collect(t, e, 4, time.Second)
	assert.ElementsMatch(t, append(tapOf(key.CodeB), tapOf(key.CodeC)...), got)
	assertQuiet(t, e, 60*time.Millisecond)
}

func TestEngineChordWithWait(t *testing.T) {
	cfg := combo.NewConfig([]combo.Combo{
		mustCombo("leftmeta + leftshift + f23",
			append(append(tapOf(key.CodeLeftMeta), tapOf(key.CodeLeftShift)...), tapOf(key.CodeF23)...),
			combo.Transition(key.CodeLeftCtrl, key.Press),
			combo.Wait(80),
			combo.Transition(key.CodeLeftCtrl, key.Release),
		),
	}, 0)
	e, _ := newTestEngine(t, cfg)

	e.Push(key.NewPress(key.CodeLeftMeta))
	e.Push(key.NewPress(key.CodeLeftShift))
	e.Push(key.NewPress(key.CodeF23))
	e.Push(key.NewRelease(key.CodeF23))
	e.Push(key.NewRelease(key.CodeLeftShift))
	e.Push(key.NewRelease(key.CodeLeftMeta))

	first := collect(t, e, 1, time.Second)
	start := time.Now()
	second := collect(t, e, 1, time.Second)

	assert.Equal(t, key.NewPress(key.CodeLeftCtrl), first[0])
	assert.Equal(t, key.NewRelease(key.CodeLeftCtrl), second[0])
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestEnginePassthroughWithoutMatch(t *testing.T) {
	e, _ := newTestEngine(t, scenarioConfig())

	// A release alone satisfies neither combo.
	e.Push(key.NewPress(key.CodeC))
	e.Push(key.NewRelease(key.CodeA))

	got := collect(t, e, 2, time.Second)
	assert.Equal(t, []key.Event{key.NewPress(key.CodeC), key.NewRelease(key.CodeA)}, got)

	s := e.Stats()
	assert.Equal(t, uint64(1), s.Bypassed)
	assert.Equal(t, uint64(1), s.Buffered)
	assert.Zero(t, s.Matched)
}

func TestEnginePassthroughIsDelayed(t *testing.T) {
	e, _ := newTestEngine(t, scenarioConfig(), WithDelay(50*time.Millisecond))

	start := time.Now()
	e.Push(key.NewPress(key.CodeA))

	got := collect(t, e, 1, time.Second)
	assert.Equal(t, key.NewPress(key.CodeA), got[0])
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestEngineCapacityContinuesBatch(t *testing.T) {
	actions := []combo.ActionExpr{combo.Wait(60_000)}
	for i := 0; i < 150; i++ {
		actions = append(actions, combo.Tap(key.CodeB))
	}
	cfg := combo.NewConfig([]combo.Combo{
		mustCombo("n down", []key.Event{key.NewPress(key.CodeN)}, actions...),
	}, 0)
	e, hook := newTestEngine(t, cfg)

	e.Push(key.NewPress(key.CodeN))

	require.Eventually(t, func() bool {
		s := e.Stats()
		return s.Scheduled+s.Rejected == 300
	}, time.Second, 5*time.Millisecond)

	s := e.Stats()
	assert.Equal(t, uint64(256), s.Scheduled)
	assert.Equal(t, uint64(44), s.Rejected)

	warnings := 0
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warnings++
			assert.Equal(t, "n down", entry.Data["combo"])
		}
	}
	assert.Equal(t, 44, warnings)
}

func TestEngineCloseFlushesBuffered(t *testing.T) {
	e, _ := newTestEngine(t, scenarioConfig(), WithDelay(time.Hour))

	e.Push(key.NewPress(key.CodeA))
	require.Eventually(t, func() bool {
		return e.Stats().Buffered == 1
	}, time.Second, time.Millisecond)

	e.Close()

	ev, ok := e.Pop()
	require.True(t, ok)
	assert.Equal(t, key.NewPress(key.CodeA), ev)

	_, ok = e.Pop()
	assert.False(t, ok)
	assert.Equal(t, uint64(1), e.Stats().Flushed)
}

func TestEngineCloseIsIdempotent(t *testing.T) {
	e, _ := newTestEngine(t, scenarioConfig())

	e.Close()
	e.Close()

	e.Push(key.NewPress(key.CodeX))
	assert.Zero(t, e.Stats().Pushed)

	_, err := e.PopContext(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

// holdConfig presses leftctrl on "n down" and releases it after ms.
func holdConfig(ms uint64) *combo.Config {
	return combo.NewConfig([]combo.Combo{
		mustCombo("n down", []key.Event{key.NewPress(key.CodeN)},
			combo.Transition(key.CodeLeftCtrl, key.Press),
			combo.Wait(ms),
			combo.Transition(key.CodeLeftCtrl, key.Release),
		),
	}, 0)
}

func TestEngineDrainFiresPendingSteps(t *testing.T) {
	e, _ := newTestEngine(t, holdConfig(100))

	e.Push(key.NewPress(key.CodeN))
	first := collect(t, e, 1, time.Second)
	require.Equal(t, key.NewPress(key.CodeLeftCtrl), first[0])

	require.NoError(t, e.Drain(context.Background()))

	ev, ok := e.Pop()
	require.True(t, ok, "release must survive a drain")
	assert.Equal(t, key.NewRelease(key.CodeLeftCtrl), ev)
	_, ok = e.Pop()
	assert.False(t, ok)

	s := e.Stats()
	assert.Equal(t, uint64(2), s.Emitted)
	assert.Zero(t, s.Pending)
}

func TestEngineDrainContextCancels(t *testing.T) {
	e, hook := newTestEngine(t, holdConfig(60_000))

	e.Push(key.NewPress(key.CodeN))
	collect(t, e, 1, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, e.Drain(ctx), context.DeadlineExceeded)

	_, ok := e.Pop()
	assert.False(t, ok)

	warned := false
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Message == "drain cut short, pending macro steps dropped" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestEngineCloseCancelsPendingSteps(t *testing.T) {
	e, _ := newTestEngine(t, holdConfig(60_000))

	e.Push(key.NewPress(key.CodeN))
	collect(t, e, 1, time.Second)
	require.Equal(t, 1, e.Stats().Pending)

	e.Close()

	_, ok := e.Pop()
	assert.False(t, ok)
	assert.Zero(t, e.Stats().Pending)
}

func TestEngineStatsForwarded(t *testing.T) {
	e, _ := newTestEngine(t, scenarioConfig())

	e.Push(key.NewPress(key.CodeA))
	collect(t, e, 1, time.Second)

	s := e.Stats()
	assert.Equal(t, uint64(1), s.Forwarded)
	assert.Zero(t, s.Held)
	assert.Zero(t, s.Emitted)
}

func TestEngineTryPopEmpty(t *testing.T) {
	e, _ := newTestEngine(t, scenarioConfig())

	_, ok := e.TryPop()
	assert.False(t, ok)
}

func TestEngineID(t *testing.T) {
	e, _ := newTestEngine(t, scenarioConfig())
	_, err := uuid.Parse(e.ID())
	assert.NoError(t, err)

	named, _ := newTestEngine(t, scenarioConfig(), WithID("kbd0"))
	assert.Equal(t, "kbd0", named.ID())
}

func TestEngineDelay(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Delay = 12 * time.Millisecond

	log, _ := test.NewNullLogger()
	e := New(cfg, WithLogger(log))
	t.Cleanup(e.Close)
	assert.Equal(t, 12*time.Millisecond, e.Delay())

	e2 := New(scenarioConfig(), WithLogger(log))
	t.Cleanup(e2.Close)
	assert.Equal(t, 3*time.Millisecond, e2.Delay())
}
