package watchface

// DisplayGeometry describes the drawable surface reported by the host when
// insets are applied.
type DisplayGeometry struct {
	IsRound bool
	Width   int
	Height  int
}

// LayoutPositions holds the anchor of every element on the face. Text
// anchors are baselines; the icon anchor is its top-left corner.
type LayoutPositions struct {
	TimeY float64

	HourXUnderTen    float64
	MinutesXUnderTen float64
	HourXOverTen     float64
	MinutesXOverTen  float64

	DateY     float64
	DateDayX  float64
	DateFullX float64

	Icon Vec2

	HighLowY float64
	HighX    float64
	LowX     float64

	OpenApp Vec2

	Divider Rect
}

// TimeAnchors returns the hour and ":mm" x positions for the displayed hour.
// Single-digit hours use the narrower anchor pair so the colon stays put.
func (p LayoutPositions) TimeAnchors(displayHour int) (hourX, minutesX float64) {
	if displayHour < 10 {
		return p.HourXUnderTen, p.MinutesXUnderTen
	}
	return p.HourXOverTen, p.MinutesXOverTen
}

// layoutCoefficients are positions in tenths of the display: x values are
// multiplied by width/10 and y values by height/10.
type layoutCoefficients struct {
	timeY                         float64
	hourUnderTen, minutesUnderTen float64
	hourOverTen, minutesOverTen   float64
	dateY, dateDay, dateFull      float64
	iconX, iconY                  float64
	highLowY, high, low           float64
	openAppX, openAppY            float64
	dividerLeft, dividerTop       float64
	dividerRight, dividerBottom   float64
}

var roundCoefficients = layoutCoefficients{
	timeY:           4,
	hourUnderTen:    3.4,
	minutesUnderTen: 4.4,
	hourOverTen:     2.7,
	minutesOverTen:  4.8,
	dateY:           5.5,
	dateDay:         1.9,
	dateFull:        3.9,
	iconX:           1.5,
	iconY:           6.5,
	highLowY:        8,
	high:            4.3,
	low:             6.8,
	openAppX:        1.3,
	openAppY:        8,
	dividerLeft:     2,
	dividerTop:      6,
	dividerRight:    8,
	dividerBottom:   6.1,
}

var squareCoefficients = layoutCoefficients{
	timeY:           4,
	hourUnderTen:    3.3,
	minutesUnderTen: 4.5,
	hourOverTen:     2.5,
	minutesOverTen:  5,
	dateY:           5.5,
	dateDay:         1.2,
	dateFull:        3.5,
	iconX:           0.5,
	iconY:           6.5,
	highLowY:        8.5,
	high:            4,
	low:             7,
	openAppX:        0.5,
	openAppY:        8,
	dividerLeft:     2,
	dividerTop:      6,
	dividerRight:    8,
	dividerBottom:   6.1,
}

// ComputeLayout maps a geometry onto element positions. It is pure: the same
// geometry always yields the same positions.
func ComputeLayout(g DisplayGeometry) LayoutPositions {
	c := squareCoefficients
	if g.IsRound {
		c = roundCoefficients
	}
	// Cells are whole pixels, matching how the device computes them.
	w := float64(g.Width / 10)
	h := float64(g.Height / 10)

	return LayoutPositions{
		TimeY:            h * c.timeY,
		HourXUnderTen:    w * c.hourUnderTen,
		MinutesXUnderTen: w * c.minutesUnderTen,
		HourXOverTen:     w * c.hourOverTen,
		MinutesXOverTen:  w * c.minutesOverTen,
		DateY:            h * c.dateY,
		DateDayX:         w * c.dateDay,
		DateFullX:        w * c.dateFull,
		Icon:             Vec2{X: w * c.iconX, Y: h * c.iconY},
		HighLowY:         h * c.highLowY,
		HighX:            w * c.high,
		LowX:             w * c.low,
		OpenApp:          Vec2{X: w * c.openAppX, Y: h * c.openAppY},
		Divider: Rect{
			X:      w * c.dividerLeft,
			Y:      h * c.dividerTop,
			Width:  w * (c.dividerRight - c.dividerLeft),
			Height: h * (c.dividerBottom - c.dividerTop),
		},
	}
}

// LayoutEngine caches the positions for the most recent geometry.
type LayoutEngine struct {
	geometry  DisplayGeometry
	positions LayoutPositions
	valid     bool
}

// Positions returns the layout for g, recomputing only when g differs from
// the previous call.
func (e *LayoutEngine) Positions(g DisplayGeometry) LayoutPositions {
	if e.valid && e.geometry == g {
		return e.positions
	}
	e.geometry = g
	e.positions = ComputeLayout(g)
	e.valid = true
	return e.positions
}
