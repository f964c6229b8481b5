package paginator

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Timer is the part of *time.Timer throttle needs.
type Timer interface {
	Stop() bool
}

// Clock is source of time and timers, tests replace it.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// SystemClock is real time clock.
var SystemClock Clock = systemClock{}

// State of background formatting requests.
// ENUM(idle, throttled, formattingNow)
type ThrottleState int

// Throttle coalesces background formatting requests. A request while idle
// is posted to the scheduler and opens a window, during the window only the
// most recent request is remembered. Posted task runs whatever request is
// the latest when scheduler gets to it, so burst of requests ends up in a
// single run. Requests never run inline.
type Throttle struct {
	log    *zap.Logger
	clock  Clock
	sched  Scheduler
	window time.Duration

	mu      sync.Mutex
	state   ThrottleState
	timer   Timer
	pending func()
	// generation of the current window, stale timer callbacks are ignored
	gen    uint64
	closed bool
}

// NewThrottle creates throttle dispatching through sched.
func NewThrottle(sched Scheduler, window time.Duration, clock Clock, log *zap.Logger) *Throttle {
	if clock == nil {
		clock = SystemClock
	}
	return &Throttle{log: log.Named("throttle"), clock: clock, sched: sched, window: window}
}

// State returns current state.
func (t *Throttle) State() ThrottleState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// BackgroundFormat requests fn to be run. With ignoreThrottle pending
// window is cancelled and fn is dispatched immediately.
func (t *Throttle) BackgroundFormat(fn func(), ignoreThrottle bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}

	t.pending = fn
	switch {
	case ignoreThrottle:
		t.stopTimer()
		t.state = ThrottleStateIdle
		t.dispatch()
	case t.state == ThrottleStateIdle:
		t.open()
	}
	t.log.Debug("Background format requested", zap.Stringer("state", t.state), zap.Bool("ignoreThrottle", ignoreThrottle))
}

// open dispatches pending request and starts window, caller holds the lock.
func (t *Throttle) open() {
	t.dispatch()
	t.state = ThrottleStateThrottled
	t.gen++
	gen := t.gen
	t.timer = t.clock.AfterFunc(t.window, func() { t.expired(gen) })
}

// expired is called on timer goroutine, it only posts to the scheduler.
func (t *Throttle) expired(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || gen != t.gen || t.state != ThrottleStateThrottled {
		return
	}
	t.timer = nil
	if t.pending == nil {
		t.state = ThrottleStateIdle
		return
	}
	t.state = ThrottleStateFormattingNow
	t.dispatch()
}

// dispatch posts runner, caller holds the lock.
func (t *Throttle) dispatch() {
	t.sched.Post(PriorityBackground, "background format", t.run)
}

// run executes the latest pending request, if any is left.
func (t *Throttle) run() {
	t.mu.Lock()
	fn := t.pending
	t.pending = nil
	if t.closed || fn == nil {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	fn()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != ThrottleStateFormattingNow {
		return
	}
	t.state = ThrottleStateIdle
	if t.pending != nil && !t.closed {
		// requested while formatting
		t.open()
	}
}

func (t *Throttle) stopTimer() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
}

// Close stops timer and drops pending request. Tasks already posted to the
// scheduler do nothing when run.
func (t *Throttle) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.stopTimer()
	t.pending = nil
	t.closed = true
	t.state = ThrottleStateIdle
	t.log.Debug("Throttle closed")
	return nil
}
