package watchface

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a canvas converts it for drawing.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is opaque black, the ambient-mode background.
var ColorBlack = Color{0, 0, 0, 1}

// NRGBA converts the color to an 8-bit straight-alpha color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: unit8(c.R),
		G: unit8(c.G),
		B: unit8(c.B),
		A: unit8(c.A),
	}
}

func unit8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Vec2 is a 2D position on the display.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 {
	return r.Y + r.Height/2
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// PowerMode selects paint fidelity and tick cadence.
type PowerMode uint8

const (
	PowerInteractive   PowerMode = iota // full refresh, full color
	PowerAmbientLowBit                  // ambient on a reduced color depth panel
	PowerAmbientNormal                  // ambient with full color depth
)

// Ambient reports whether the mode is any ambient variant.
func (m PowerMode) Ambient() bool {
	return m != PowerInteractive
}

func (m PowerMode) String() string {
	switch m {
	case PowerInteractive:
		return "interactive"
	case PowerAmbientLowBit:
		return "ambient-low-bit"
	case PowerAmbientNormal:
		return "ambient"
	default:
		return "unknown"
	}
}

// FontStyle distinguishes the two typefaces used on the face.
type FontStyle uint8

const (
	FontNormal FontStyle = iota // sans-serif regular
	FontBold                    // sans-serif bold
)
