package watchface

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Typefaces holds the parsed regular and bold fonts and caches sized faces.
type Typefaces struct {
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	style FontStyle
	size  float64
}

var (
	defaultTypefaces     *Typefaces
	defaultTypefacesErr  error
	defaultTypefacesOnce sync.Once
)

// DefaultTypefaces returns the Go sans-serif regular and bold fonts.
func DefaultTypefaces() (*Typefaces, error) {
	defaultTypefacesOnce.Do(func() {
		defaultTypefaces, defaultTypefacesErr = LoadTypefaces(goregular.TTF, gobold.TTF)
	})
	return defaultTypefaces, defaultTypefacesErr
}

// LoadTypefaces parses TrueType or OpenType data for the two styles.
func LoadTypefaces(regularTTF, boldTTF []byte) (*Typefaces, error) {
	regular, err := opentype.Parse(regularTTF)
	if err != nil {
		return nil, fmt.Errorf("watchface: failed to parse regular font: %w", err)
	}
	bold, err := opentype.Parse(boldTTF)
	if err != nil {
		return nil, fmt.Errorf("watchface: failed to parse bold font: %w", err)
	}
	return &Typefaces{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

// Face returns a face for the style at size pixels.
func (t *Typefaces) Face(style FontStyle, size float64) (font.Face, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := faceKey{style, size}
	if f, ok := t.faces[key]; ok {
		return f, nil
	}
	src := t.regular
	if style == FontBold {
		src = t.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("watchface: face %v@%v: %w", style, size, err)
	}
	t.faces[key] = f
	return f, nil
}

// RasterizeText renders s into an alpha mask. origin is the offset from the
// top-left of the mask to the baseline start. Without anti-aliasing every
// pixel is either fully covered or empty.
func RasterizeText(face font.Face, s string, antiAlias bool) (mask *image.Alpha, origin image.Point) {
	bounds, _ := font.BoundString(face, s)
	r := image.Rect(
		bounds.Min.X.Floor(), bounds.Min.Y.Floor(),
		bounds.Max.X.Ceil(), bounds.Max.Y.Ceil(),
	)
	if r.Empty() {
		return image.NewAlpha(image.Rectangle{}), image.Point{}
	}
	mask = image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(-r.Min.X, -r.Min.Y),
	}
	d.DrawString(s)
	if !antiAlias {
		threshold(mask)
	}
	return mask, image.Pt(-r.Min.X, -r.Min.Y)
}

func threshold(mask *image.Alpha) {
	for i, a := range mask.Pix {
		if a >= 0x80 {
			mask.Pix[i] = 0xFF
		} else {
			mask.Pix[i] = 0
		}
	}
}

// RasterCanvas draws frames into an in-memory RGBA image. It backs
// screenshots and hosts that push pixels to a panel themselves.
type RasterCanvas struct {
	img   *image.RGBA
	faces *Typefaces
}

// NewRasterCanvas returns a canvas over a new width x height image.
func NewRasterCanvas(width, height int, faces *Typefaces) *RasterCanvas {
	return &RasterCanvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		faces: faces,
	}
}

// Image returns the backing image.
func (c *RasterCanvas) Image() *image.RGBA {
	return c.img
}

// Bounds returns the canvas size as a Rect.
func (c *RasterCanvas) Bounds() Rect {
	b := c.img.Bounds()
	return Rect{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

func pixelRect(r Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.X+r.Width)), int(math.Round(r.Y+r.Height)),
	)
}

// FillRect implements Canvas.
func (c *RasterCanvas) FillRect(r Rect, col Color) {
	op := draw.Over
	if col.A >= 1 {
		op = draw.Src
	}
	draw.Draw(c.img, pixelRect(r), image.NewUniform(col.NRGBA()), image.Point{}, op)
}

// DrawText implements Canvas. Text that cannot be shaped is skipped.
func (c *RasterCanvas) DrawText(s string, x, y float64, p Paint) {
	if s == "" || c.faces == nil {
		return
	}
	face, err := c.faces.Face(p.Style, p.Size)
	if err != nil {
		return
	}
	mask, origin := RasterizeText(face, s, p.AntiAlias)
	mb := mask.Bounds()
	if mb.Empty() {
		return
	}
	at := image.Pt(int(math.Round(x))-origin.X, int(math.Round(y))-origin.Y)
	dst := mb.Add(at)
	draw.DrawMask(c.img, dst, image.NewUniform(p.Color.NRGBA()), image.Point{}, mask, mb.Min, draw.Over)
}

// DrawImage implements Canvas.
func (c *RasterCanvas) DrawImage(img image.Image, dst Rect, antiAlias bool) {
	if img == nil {
		return
	}
	var scaler draw.Scaler = draw.NearestNeighbor
	if antiAlias {
		scaler = draw.CatmullRom
	}
	scaler.Scale(c.img, pixelRect(dst), img, img.Bounds(), draw.Over, nil)
}

// ColorAt returns the pixel at (x, y).
func (c *RasterCanvas) ColorAt(x, y int) color.RGBA {
	return c.img.RGBAAt(x, y)
}
