// Package loop drives a game model at its own tick rate while rendering at
// a fixed frame rate. The model decides how long a tick is and whether it is
// paused; the render target decides whether there is anything to draw on.
package loop

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// Model is the game state advanced by a Loop.
type Model interface {
	Step()
	TickInterval() time.Duration
	Paused() bool
}

// Target is the surface a Loop renders to once per iteration.
type Target interface {
	// Ready reports whether the surface can be drawn on right now.
	Ready() bool
	Render()
}

const (
	DefaultFrameInterval = 16 * time.Millisecond
	DefaultIdleInterval  = 16 * time.Millisecond
)

// Option configures a Loop.
type Option func(*Loop)

// WithFrameInterval sets the sleep after each rendered frame.
func WithFrameInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.frameInterval = d
		}
	}
}

// WithIdleInterval sets the sleep used while the target is not ready.
func WithIdleInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.idleInterval = d
		}
	}
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(l *Loop) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithLogger sets the logger for lifecycle messages.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loop runs a Model and a Target on one background goroutine.
//
// Each iteration either idles (target not ready) or steps the model when a
// full tick interval has passed, then renders exactly once and sleeps for
// the frame interval. Stop interrupts the sleep and waits for the goroutine
// to return, so nothing touches the model or target after Stop returns.
type Loop struct {
	model  Model
	target Target
	clock  Clock
	logger *log.Logger

	frameInterval time.Duration
	idleInterval  time.Duration

	// Start/Stop serialization
	mu       sync.Mutex
	running  atomic.Bool
	stopChan chan struct{}
	wg       sync.WaitGroup

	// Owned by the loop goroutine
	lastTick time.Time

	ticks  atomic.Uint64
	frames atomic.Uint64
}

// New creates a stopped loop.
func New(model Model, target Target, opts ...Option) *Loop {
	l := &Loop{
		model:         model,
		target:        target,
		clock:         SystemClock{},
		logger:        log.NewWithOptions(io.Discard, log.Options{}),
		frameInterval: DefaultFrameInterval,
		idleInterval:  DefaultIdleInterval,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start launches the loop goroutine. Calling Start on a running loop does
// nothing. A stopped loop may be started again.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running.Load() {
		return
	}
	l.running.Store(true)
	l.stopChan = make(chan struct{})
	l.lastTick = time.Time{}

	l.wg.Add(1)
	go l.run(l.stopChan)
	l.logger.Debug("loop started", "frame", l.frameInterval, "idle", l.idleInterval)
}

// Stop halts the loop and blocks until its goroutine has exited.
// It must not be called from Render or Step, which run on that goroutine.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running.CompareAndSwap(true, false) {
		return
	}
	close(l.stopChan)
	l.wg.Wait()
	l.logger.Debug("loop stopped", "ticks", l.ticks.Load(), "frames", l.frames.Load())
}

// Running reports whether the loop goroutine is active.
func (l *Loop) Running() bool {
	return l.running.Load()
}

// Ticks returns how many times the loop has stepped the model.
func (l *Loop) Ticks() uint64 {
	return l.ticks.Load()
}

// Frames returns how many times the loop has rendered.
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

func (l *Loop) run(stop <-chan struct{}) {
	defer l.wg.Done()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for l.running.Load() {
		wait := l.frameInterval
		if !l.iterate(l.clock.Now()) {
			wait = l.idleInterval
		}

		timer.Reset(wait)
		select {
		case <-stop:
			return
		case <-timer.C:
		}
	}
}

// iterate performs one pass at time now and reports whether the target was
// ready. The tick interval is read every pass because eating speeds the
// game up.
func (l *Loop) iterate(now time.Time) bool {
	if !l.target.Ready() {
		return false
	}

	if !l.model.Paused() && now.Sub(l.lastTick) >= l.model.TickInterval() {
		l.model.Step()
		l.lastTick = now
		l.ticks.Add(1)
	}

	l.target.Render()
	l.frames.Add(1)
	return true
}
