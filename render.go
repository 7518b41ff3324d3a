package watchface

// FrameState is the immutable snapshot a single frame is drawn from.
type FrameState struct {
	Bounds  Rect
	Mode    PowerMode
	Weather WeatherState
	Layout  LayoutPositions
	Clock   ClockReading
	Is24h   bool

	// PeekCardShown hides the weather row while a system card covers it.
	PeekCardShown bool

	// TextAntiAlias applies to the primary time paints; the power controller
	// clears it in ambient mode on low-bit panels.
	TextAntiAlias bool
}

// Renderer issues the draw commands for one frame. It holds only resolved
// styles and formatters and never mutates state while drawing.
type Renderer struct {
	paints  Paints
	dates   *DateFormatter
	openApp string
}

// NewRenderer builds a renderer for the given paints, date formatter and
// open-app prompt text.
func NewRenderer(paints Paints, dates *DateFormatter, openApp string) *Renderer {
	if dates == nil {
		dates = NewDateFormatter("")
	}
	return &Renderer{paints: paints, dates: dates, openApp: openApp}
}

// Paints returns the resolved styles.
func (r *Renderer) Paints() Paints {
	return r.paints
}

// DrawFrame paints f onto c: background, time, date, divider, then either
// the weather row or the open-app prompt.
func (r *Renderer) DrawFrame(c Canvas, f FrameState) {
	ambient := f.Mode.Ambient()

	// Background.
	if ambient {
		c.FillRect(f.Bounds, ColorBlack)
	} else {
		c.FillRect(f.Bounds, r.paints.Background)
	}

	// Time.
	hour := DisplayHour(f.Clock.Hour24, f.Is24h)
	hourX, minutesX := f.Layout.TimeAnchors(hour)
	hourPaint := r.paints.Hour
	minutePaint := r.paints.Minute
	hourPaint.AntiAlias = f.TextAntiAlias
	minutePaint.AntiAlias = f.TextAntiAlias
	c.DrawText(FormatHour(hour), hourX, f.Layout.TimeY, hourPaint)
	c.DrawText(":"+FormatMinute(f.Clock.Minute), minutesX, f.Layout.TimeY, minutePaint)

	// Date line.
	c.DrawText(r.dates.DayOfWeek(f.Clock.Time), f.Layout.DateDayX, f.Layout.DateY, r.paints.Date)
	c.DrawText(r.dates.MediumDate(f.Clock.Time), f.Layout.DateFullX, f.Layout.DateY, r.paints.Date)

	// Divider.
	c.FillRect(f.Layout.Divider, r.paints.Divider)

	if f.PeekCardShown {
		return
	}
	r.drawWeather(c, f, ambient)
}

func (r *Renderer) drawWeather(c Canvas, f FrameState, ambient bool) {
	w := f.Weather
	if !w.IsSet() {
		c.DrawText(r.openApp, f.Layout.OpenApp.X, f.Layout.OpenApp.Y, r.paints.OpenApp)
		return
	}

	// A missing or undecodable icon skips only the icon.
	if icon := w.Icon(f.Mode); icon != nil {
		size := r.paints.IconSize
		dst := Rect{X: f.Layout.Icon.X, Y: f.Layout.Icon.Y, Width: size, Height: size}
		c.DrawImage(icon, dst, !ambient)
	}
	if w.High != nil {
		c.DrawText(*w.High, f.Layout.HighX, f.Layout.HighLowY, r.paints.High)
	}
	if w.Low != nil {
		c.DrawText(*w.Low, f.Layout.LowX, f.Layout.HighLowY, r.paints.Low)
	}
}
