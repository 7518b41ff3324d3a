package watchface

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Host is the set of lifecycle callbacks a watch-face runtime delivers. All
// methods must be called from the host thread, the same thread that calls
// Pump and Draw.
type Host interface {
	OnSurfaceCreated()
	OnVisibilityChanged(visible bool)
	OnAmbientModeChanged(ambient bool)
	OnPropertiesChanged(lowBitAmbient bool)
	OnApplyInsets(isRound bool, width, height int)
	OnPeekCardPositionUpdate(card Rect)
	OnTimeTick()
	OnTimeZoneChanged(tz string)
	OnDestroy()
}

// Options configures an Engine. Zero values select defaults.
type Options struct {
	Clock     Clock
	Logger    *slog.Logger
	Resources Resources
	Channel   *ConnectionChannel

	// Locale is a BCP 47 tag for the date line, e.g. "en-US".
	Locale string

	// Is24Hour reports the user's time format preference at draw time.
	Is24Hour func() bool

	// Invalidate is called whenever the engine needs a new frame.
	Invalidate func()

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	// Debug logs per-frame stats at debug level.
	Debug bool
}

// Engine owns the face's render state and reconciles host callbacks, ticks
// and companion updates into frames.
type Engine struct {
	clock      Clock
	logger     *slog.Logger
	resources  Resources
	channel    *ConnectionChannel
	locale     string
	is24Hour   func() bool
	invalidate func()
	debug      bool

	ctx    context.Context
	cancel context.CancelFunc

	power     *PowerModeController
	scheduler *TickScheduler
	layouts   LayoutEngine
	renderer  *Renderer

	geometry DisplayGeometry
	location *time.Location
	// timeZone is the last zone name the host reported; empty means the
	// process default.
	timeZone string
	weather  WeatherState
	peekCard Rect

	dirty       bool
	unsubscribe func()
	destroyed   bool

	// Posted closures from timers and the companion channel.
	mu    sync.Mutex
	queue []func()

	// Screenshots queued for the next Draw.
	ScreenshotDir   string
	screenshotQueue []string
	frame           *Frame
}

// NewEngine returns an engine ready to receive host callbacks.
func NewEngine(opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Resources == nil {
		opts.Resources = DefaultResources()
	}
	if opts.Is24Hour == nil {
		opts.Is24Hour = func() bool { return false }
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = "screenshots"
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		clock:         opts.Clock,
		logger:        opts.Logger,
		resources:     opts.Resources,
		channel:       opts.Channel,
		locale:        opts.Locale,
		is24Hour:      opts.Is24Hour,
		invalidate:    opts.Invalidate,
		debug:         opts.Debug,
		ctx:           ctx,
		cancel:        cancel,
		power:         NewPowerModeController(opts.Logger),
		location:      time.Local,
		ScreenshotDir: opts.ScreenshotDir,
		frame:         NewFrame(),
	}
	e.scheduler = NewTickScheduler(e.clock, e.Post, e.Invalidate)
	e.renderer = e.newRenderer(false)
	return e
}

func (e *Engine) newRenderer(round bool) *Renderer {
	openApp := stringOr(e.resources, StringOpenApp, DefaultResources().Strings[StringOpenApp])
	return NewRenderer(NewPaints(e.resources, round), NewDateFormatter(e.locale), openApp)
}

// --- Host thread dispatch ---

// Post queues f to run on the host thread during the next Pump. It is safe
// to call from any goroutine. Posts after OnDestroy are dropped.
func (e *Engine) Post(f func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	e.queue = append(e.queue, f)
}

// Pump runs queued closures on the calling (host) thread and returns how
// many ran.
func (e *Engine) Pump() int {
	e.mu.Lock()
	pending := e.queue
	e.queue = nil
	e.mu.Unlock()

	ran := 0
	for _, f := range pending {
		if e.destroyed {
			break
		}
		f()
		ran++
	}
	return ran
}

// Invalidate requests a new frame.
func (e *Engine) Invalidate() {
	if e.destroyed {
		return
	}
	e.dirty = true
	if e.invalidate != nil {
		e.invalidate()
	}
}

// NeedsRedraw reports whether a frame was requested since the last Draw.
func (e *Engine) NeedsRedraw() bool {
	return e.dirty
}

// --- Host callbacks ---

var _ Host = (*Engine)(nil)

// OnSurfaceCreated starts the companion session in the background and
// subscribes to weather updates.
func (e *Engine) OnSurfaceCreated() {
	if e.destroyed || e.channel == nil || e.unsubscribe != nil {
		return
	}
	e.unsubscribe = e.channel.OnPayload(func(w WeatherState) {
		e.Post(func() { e.setWeather(w) })
	})
	go func() {
		// Failures are logged by the channel.
		_ = e.channel.Connect(e.ctx)
	}()
}

// OnVisibilityChanged refreshes the timezone when the face becomes visible
// and re-evaluates the tick scheduler.
func (e *Engine) OnVisibilityChanged(visible bool) {
	if e.destroyed {
		return
	}
	e.power.SetVisible(visible)
	if visible {
		e.location = e.hostLocation()
	}
	e.scheduler.Update(e.power.Visible(), e.power.Ambient())
}

// OnAmbientModeChanged redraws once when the effective mode changes and
// re-evaluates the tick scheduler.
func (e *Engine) OnAmbientModeChanged(ambient bool) {
	if e.destroyed {
		return
	}
	if e.power.SetAmbient(ambient) {
		e.logger.Debug("power mode changed", "mode", e.power.Mode().String())
		e.Invalidate()
	}
	e.scheduler.Update(e.power.Visible(), e.power.Ambient())
}

// OnPropertiesChanged records the display's low-bit ambient capability.
func (e *Engine) OnPropertiesChanged(lowBitAmbient bool) {
	if e.destroyed {
		return
	}
	e.power.SetLowBitAmbient(lowBitAmbient)
}

// OnApplyInsets records the display geometry and re-resolves shape-specific
// paints.
func (e *Engine) OnApplyInsets(isRound bool, width, height int) {
	if e.destroyed {
		return
	}
	g := DisplayGeometry{IsRound: isRound, Width: width, Height: height}
	if g.IsRound != e.geometry.IsRound {
		e.renderer = e.newRenderer(isRound)
	}
	e.geometry = g
	e.layouts.Positions(g)
	e.Invalidate()
}

// OnPeekCardPositionUpdate records the peek card bounds; an empty rect means
// no card.
func (e *Engine) OnPeekCardPositionUpdate(card Rect) {
	if e.destroyed {
		return
	}
	e.peekCard = card
	e.Invalidate()
}

// OnTimeTick handles the host's once-a-minute tick in ambient mode.
func (e *Engine) OnTimeTick() {
	e.Invalidate()
}

// OnTimeZoneChanged switches the clock to tz. Unknown zones are logged and
// ignored.
func (e *Engine) OnTimeZoneChanged(tz string) {
	if e.destroyed {
		return
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		e.logger.Warn("unknown time zone", "tz", tz, "error", err)
		return
	}
	e.timeZone = tz
	e.location = loc
	e.Invalidate()
}

// hostLocation re-resolves the host's zone, falling back to time.Local
// until the host reports one.
func (e *Engine) hostLocation() *time.Location {
	if e.timeZone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(e.timeZone)
	if err != nil {
		e.logger.Warn("time zone no longer loads", "tz", e.timeZone, "error", err)
		return e.location
	}
	return loc
}

// OnDestroy cancels pending ticks, unsubscribes from the companion channel
// and drops further posts.
func (e *Engine) OnDestroy() {
	if e.destroyed {
		return
	}
	e.scheduler.Stop()
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	if e.channel != nil {
		e.channel.Disconnect()
	}
	e.cancel()

	e.mu.Lock()
	e.destroyed = true
	e.queue = nil
	e.mu.Unlock()
	e.dirty = false
}

// --- State ---

func (e *Engine) setWeather(w WeatherState) {
	e.weather = w
	e.Invalidate()
}

// Weather returns the current weather state.
func (e *Engine) Weather() WeatherState {
	return e.weather
}

// Mode returns the effective power mode.
func (e *Engine) Mode() PowerMode {
	return e.power.Mode()
}

// TickState returns the tick scheduler state.
func (e *Engine) TickState() TickState {
	return e.scheduler.State()
}

// Geometry returns the last applied display geometry.
func (e *Engine) Geometry() DisplayGeometry {
	return e.geometry
}

// Snapshot captures the state the next frame is drawn from.
func (e *Engine) Snapshot(bounds Rect) FrameState {
	now := e.clock.Now().In(e.location)
	return FrameState{
		Bounds:        bounds,
		Mode:          e.power.Mode(),
		Weather:       e.weather,
		Layout:        e.layouts.Positions(e.geometry),
		Clock:         NewClockReading(now),
		Is24h:         e.is24Hour(),
		PeekCardShown: !e.peekCard.Empty(),
		TextAntiAlias: e.power.TextAntiAlias(),
	}
}

// Draw paints the current state onto c and clears the redraw request.
func (e *Engine) Draw(c Canvas, bounds Rect) {
	if e.destroyed {
		return
	}
	state := e.Snapshot(bounds)

	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	e.frame.Reset()
	e.renderer.DrawFrame(e.frame, state)
	e.frame.Replay(c)
	e.dirty = false

	if e.debug {
		e.debugLog(frameStats{
			drawTime:     time.Since(t0),
			commandCount: e.frame.Len(),
			mode:         state.Mode,
			weatherSet:   state.Weather.IsSet(),
		})
	}
	e.flushScreenshots(state)
}

// LastFrame returns the commands issued by the most recent Draw.
func (e *Engine) LastFrame() *Frame {
	return e.frame
}
