package watchface

import (
	"context"
	"image"
	"image/color"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// --- Fake clock ---

type fakeTimer struct {
	clock   *fakeClock
	due     time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeClock is a manually advanced Clock. Timers fire synchronously inside
// Advance, in due order.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
	delays []time.Duration
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, due: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	c.delays = append(c.delays, d)
	return t
}

// pending returns the number of armed, unfired timers.
func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// fireStopped runs timers that were stopped before firing, simulating a
// timer callback that raced its cancellation.
func (c *fakeClock) fireStopped() {
	c.mu.Lock()
	var run []*fakeTimer
	for _, t := range c.timers {
		if t.stopped && !t.fired {
			t.fired = true
			run = append(run, t)
		}
	}
	c.mu.Unlock()
	for _, t := range run {
		t.f()
	}
}

// Advance moves the clock forward by d, firing due timers along the way.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		sort.SliceStable(c.timers, func(i, j int) bool { return c.timers[i].due.Before(c.timers[j].due) })
		var next *fakeTimer
		for _, t := range c.timers {
			if !t.stopped && !t.fired && !t.due.After(target) {
				next = t
				break
			}
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.due
		next.fired = true
		c.mu.Unlock()
		next.f()
	}
}

// --- Fake transport ---

type fakeTransport struct {
	mu          sync.Mutex
	connectErr  error
	connects    int
	disconnects int
	handler     func(path string, data []byte)
	unsubs      int
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{}
}

func (t *fakeTransport) Connect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.connects++
	if t.connectErr != nil {
		return t.connectErr
	}
	return ctx.Err()
}

func (t *fakeTransport) Subscribe(handler func(path string, data []byte)) (func(), error) {
	t.mu.Lock()
	t.handler = handler
	t.mu.Unlock()
	return func() {
		t.mu.Lock()
		t.handler = nil
		t.unsubs++
		t.mu.Unlock()
	}, nil
}

func (t *fakeTransport) Disconnect() {
	t.mu.Lock()
	t.disconnects++
	t.mu.Unlock()
}

// send delivers a data item as the transport goroutine would.
func (t *fakeTransport) send(path string, data []byte) bool {
	t.mu.Lock()
	h := t.handler
	t.mu.Unlock()
	if h == nil {
		return false
	}
	h(path, data)
	return true
}

// --- Fake icons ---

// stubIcons returns a distinct 1x1 image per key and fails for keys in
// missing.
type stubIcons struct {
	mu      sync.Mutex
	images  map[IconKey]image.Image
	missing map[IconKey]bool
}

func newStubIcons() *stubIcons {
	return &stubIcons{images: make(map[IconKey]image.Image), missing: make(map[IconKey]bool)}
}

func (s *stubIcons) Icon(key IconKey) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.missing[key] {
		return nil, ErrUnknownIcon
	}
	if img, ok := s.images[key]; ok {
		return img, nil
	}
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: uint8(len(s.images)), A: 0xFF})
	s.images[key] = img
	return img, nil
}

func (s *stubIcons) get(key IconKey) image.Image {
	img, _ := s.Icon(key)
	return img
}

// --- Helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func textCommands(f *Frame) []DrawCommand {
	var out []DrawCommand
	for _, cmd := range f.Commands() {
		if cmd.Type == CommandText {
			out = append(out, cmd)
		}
	}
	return out
}

func findText(f *Frame, s string) (DrawCommand, bool) {
	for _, cmd := range f.Commands() {
		if cmd.Type == CommandText && cmd.Text == s {
			return cmd, true
		}
	}
	return DrawCommand{}, false
}

func imageCommands(f *Frame) []DrawCommand {
	var out []DrawCommand
	for _, cmd := range f.Commands() {
		if cmd.Type == CommandImage {
			out = append(out, cmd)
		}
	}
	return out
}
