package watchface

import "time"

// InteractiveUpdateRate is the tick period while the face is interactive.
const InteractiveUpdateRate = time.Second

// TickState is the scheduler state.
type TickState uint8

const (
	TickStopped TickState = iota
	TickRunning
)

func (s TickState) String() string {
	if s == TickRunning {
		return "running"
	}
	return "stopped"
}

// NextTickDelay returns the delay from now to the next multiple of period
// since the Unix epoch, so ticks land on wall-clock boundaries.
func NextTickDelay(now time.Time, period time.Duration) time.Duration {
	ms := now.UnixMilli()
	p := period.Milliseconds()
	return time.Duration(p-ms%p) * time.Millisecond
}

// TickScheduler drives periodic renders while the face is visible and
// interactive.
//
// Timer callbacks arrive on the clock's goroutine and are handed to post,
// which must run them on the host thread. Each armed timer carries a
// generation number; a timer whose generation is stale when it runs is
// ignored, so no tick can fire after the scheduler stops even when the stop
// raced the timer.
type TickScheduler struct {
	clock  Clock
	post   func(func())
	onTick func()
	period time.Duration

	state  TickState
	timer  Timer
	gen    uint64
	closed bool
}

// NewTickScheduler returns a stopped scheduler. onTick is called on the host
// thread for every tick.
func NewTickScheduler(clock Clock, post func(func()), onTick func()) *TickScheduler {
	if clock == nil {
		clock = SystemClock
	}
	return &TickScheduler{
		clock:  clock,
		post:   post,
		onTick: onTick,
		period: InteractiveUpdateRate,
	}
}

// State returns the current state.
func (s *TickScheduler) State() TickState {
	return s.state
}

// Update applies the visibility and ambient flags: the scheduler runs only
// while visible and not ambient. Entering RUNNING ticks immediately.
func (s *TickScheduler) Update(visible, ambient bool) {
	if s.closed {
		return
	}
	shouldRun := visible && !ambient
	switch {
	case shouldRun && s.state == TickStopped:
		s.state = TickRunning
		s.tick(s.gen)
	case !shouldRun && s.state == TickRunning:
		s.cancel()
		s.state = TickStopped
	}
}

// Stop cancels any pending tick and disables the scheduler for good.
func (s *TickScheduler) Stop() {
	s.cancel()
	s.state = TickStopped
	s.closed = true
}

func (s *TickScheduler) cancel() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *TickScheduler) tick(gen uint64) {
	if s.closed || s.state != TickRunning || gen != s.gen {
		return
	}
	s.timer = nil
	s.onTick()

	// onTick may have changed state.
	if s.closed || s.state != TickRunning || gen != s.gen {
		return
	}
	delay := NextTickDelay(s.clock.Now(), s.period)
	s.timer = s.clock.AfterFunc(delay, func() {
		s.post(func() { s.tick(gen) })
	})
}
