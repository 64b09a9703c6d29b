package loop

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	steps    atomic.Int64
	interval atomic.Int64
	paused   atomic.Bool
}

func newFakeModel(interval time.Duration) *fakeModel {
	m := &fakeModel{}
	m.interval.Store(int64(interval))
	return m
}

func (m *fakeModel) Step()                       { m.steps.Add(1) }
func (m *fakeModel) TickInterval() time.Duration { return time.Duration(m.interval.Load()) }
func (m *fakeModel) Paused() bool                { return m.paused.Load() }

type fakeTarget struct {
	ready   atomic.Bool
	renders atomic.Int64
}

func newFakeTarget(ready bool) *fakeTarget {
	t := &fakeTarget{}
	t.ready.Store(ready)
	return t
}

func (t *fakeTarget) Ready() bool { return t.ready.Load() }
func (t *fakeTarget) Render()     { t.renders.Add(1) }

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestIterateStepsOnInterval(t *testing.T) {
	model := newFakeModel(150 * time.Millisecond)
	target := newFakeTarget(true)
	l := New(model, target)

	// The first ready pass steps immediately
	require.True(t, l.iterate(epoch))
	assert.EqualValues(t, 1, model.steps.Load())

	for _, offset := range []time.Duration{16, 32, 100, 149} {
		l.iterate(epoch.Add(offset * time.Millisecond))
	}
	assert.EqualValues(t, 1, model.steps.Load(), "no step before the interval elapsed")

	l.iterate(epoch.Add(150 * time.Millisecond))
	assert.EqualValues(t, 2, model.steps.Load())

	assert.EqualValues(t, 6, target.renders.Load(), "every ready pass renders once")
	assert.EqualValues(t, 2, l.Ticks())
	assert.EqualValues(t, 6, l.Frames())
}

func TestIterateReadsIntervalEveryPass(t *testing.T) {
	model := newFakeModel(150 * time.Millisecond)
	l := New(model, newFakeTarget(true))

	l.iterate(epoch)
	model.interval.Store(int64(50 * time.Millisecond))
	l.iterate(epoch.Add(50 * time.Millisecond))

	assert.EqualValues(t, 2, model.steps.Load())
}

func TestIteratePausedStillRenders(t *testing.T) {
	model := newFakeModel(10 * time.Millisecond)
	model.paused.Store(true)
	target := newFakeTarget(true)
	l := New(model, target)

	for i := range 5 {
		l.iterate(epoch.Add(time.Duration(i) * time.Second))
	}

	assert.Zero(t, model.steps.Load())
	assert.EqualValues(t, 5, target.renders.Load())
}

func TestIterateIdlesWhenNotReady(t *testing.T) {
	model := newFakeModel(10 * time.Millisecond)
	target := newFakeTarget(false)
	l := New(model, target)

	assert.False(t, l.iterate(epoch))
	assert.Zero(t, model.steps.Load())
	assert.Zero(t, target.renders.Load())

	target.ready.Store(true)
	assert.True(t, l.iterate(epoch.Add(time.Millisecond)))
	assert.EqualValues(t, 1, model.steps.Load())
	assert.EqualValues(t, 1, target.renders.Load())
}

func TestRunWithManualClock(t *testing.T) {
	clock := NewManualClock(epoch)
	model := newFakeModel(100 * time.Millisecond)
	target := newFakeTarget(true)
	l := New(model, target, WithClock(clock), WithFrameInterval(time.Millisecond))

	l.Start()
	defer l.Stop()

	require.Eventually(t, func() bool { return target.renders.Load() >= 3 }, time.Second, time.Millisecond)
	assert.EqualValues(t, 1, model.steps.Load(), "frozen clock allows a single tick")

	clock.Advance(100 * time.Millisecond)
	require.Eventually(t, func() bool { return model.steps.Load() == 2 }, time.Second, time.Millisecond)
}

func TestStopJoinsGoroutine(t *testing.T) {
	model := newFakeModel(time.Millisecond)
	target := newFakeTarget(true)
	l := New(model, target, WithFrameInterval(time.Millisecond))

	l.Start()
	require.Eventually(t, func() bool { return target.renders.Load() > 0 }, time.Second, time.Millisecond)

	l.Stop()
	assert.False(t, l.Running())

	frames := target.renders.Load()
	steps := model.steps.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, frames, target.renders.Load(), "no render after Stop returns")
	assert.Equal(t, steps, model.steps.Load(), "no step after Stop returns")
}

func TestStopInterruptsSleep(t *testing.T) {
	target := newFakeTarget(true)
	l := New(newFakeModel(time.Hour), target, WithFrameInterval(time.Hour))

	l.Start()
	require.Eventually(t, func() bool { return target.renders.Load() == 1 }, time.Second, time.Millisecond)

	done := make(chan struct{})
	go func() {
		l.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not interrupt the frame sleep")
	}
}

func TestStartStopIdempotentAndRestartable(t *testing.T) {
	target := newFakeTarget(true)
	l := New(newFakeModel(time.Millisecond), target, WithFrameInterval(time.Millisecond))

	l.Stop() // stopping a loop that never ran is harmless

	l.Start()
	l.Start()
	require.True(t, l.Running())
	l.Stop()
	l.Stop()
	require.False(t, l.Running())

	before := target.renders.Load()
	l.Start()
	require.Eventually(t, func() bool { return target.renders.Load() > before }, time.Second, time.Millisecond)
	l.Stop()
}

func TestOptionsIgnoreInvalidValues(t *testing.T) {
	l := New(newFakeModel(time.Second), newFakeTarget(true),
		WithFrameInterval(0), WithIdleInterval(-time.Second), WithClock(nil), WithLogger(nil))

	assert.Equal(t, DefaultFrameInterval, l.frameInterval)
	assert.Equal(t, DefaultIdleInterval, l.idleInterval)
	assert.IsType(t, SystemClock{}, l.clock)
	assert.NotNil(t, l.logger)
}

func TestManualClock(t *testing.T) {
	c := NewManualClock(epoch)
	c.Advance(time.Minute)
	assert.Equal(t, epoch.Add(time.Minute), c.Now())

	c.Set(epoch)
	assert.Equal(t, epoch, c.Now())
}
