package ebitenhost

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/phanxgames/watchface"
)

// maxCachedImages bounds the GPU images kept for aliased text and icons.
const maxCachedImages = 64

// --- White pixel singleton (single-threaded like the game loop) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used
// for solid fills.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

type aliasedKey struct {
	text  string
	style watchface.FontStyle
	size  float64
}

type aliasedText struct {
	img    *ebiten.Image
	origin image.Point
}

// Canvas implements watchface.Canvas on an Ebitengine image. It is not safe
// for concurrent use.
type Canvas struct {
	dst   *ebiten.Image
	faces *Faces

	aliased map[aliasedKey]aliasedText
	images  map[image.Image]*ebiten.Image
}

var _ watchface.Canvas = (*Canvas)(nil)

// NewCanvas returns a canvas drawing onto dst.
func NewCanvas(dst *ebiten.Image, faces *Faces) *Canvas {
	return &Canvas{
		dst:     dst,
		faces:   faces,
		aliased: make(map[aliasedKey]aliasedText),
		images:  make(map[image.Image]*ebiten.Image),
	}
}

// SetTarget redirects drawing to dst, keeping caches.
func (c *Canvas) SetTarget(dst *ebiten.Image) {
	c.dst = dst
}

// FillRect implements watchface.Canvas.
func (c *Canvas) FillRect(r watchface.Rect, col watchface.Color) {
	if r.Empty() {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleWithColor(col.NRGBA())
	c.dst.DrawImage(ensureWhitePixel(), op)
}

// DrawText implements watchface.Canvas.
func (c *Canvas) DrawText(s string, x, y float64, p watchface.Paint) {
	if s == "" || c.faces == nil {
		return
	}
	if !p.AntiAlias && c.faces.raster != nil {
		c.drawAliasedText(s, x, y, p)
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-c.faces.Ascent(p.Style, p.Size))
	op.ColorScale.ScaleWithColor(p.Color.NRGBA())
	text.Draw(c.dst, s, c.faces.Face(p.Style, p.Size), op)
}

func (c *Canvas) drawAliasedText(s string, x, y float64, p watchface.Paint) {
	key := aliasedKey{s, p.Style, p.Size}
	at, ok := c.aliased[key]
	if !ok {
		face, err := c.faces.raster.Face(p.Style, p.Size)
		if err != nil {
			return
		}
		mask, origin := watchface.RasterizeText(face, s, false)
		if mask.Bounds().Empty() {
			return
		}
		if len(c.aliased) >= maxCachedImages {
			c.evictAliased()
		}
		at = aliasedText{img: ebiten.NewImageFromImage(mask), origin: origin}
		c.aliased[key] = at
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(int(x)-at.origin.X), float64(int(y)-at.origin.Y))
	op.ColorScale.ScaleWithColor(p.Color.NRGBA())
	op.Filter = ebiten.FilterNearest
	c.dst.DrawImage(at.img, op)
}

func (c *Canvas) evictAliased() {
	for k, at := range c.aliased {
		at.img.Deallocate()
		delete(c.aliased, k)
	}
}

// DrawImage implements watchface.Canvas.
func (c *Canvas) DrawImage(img image.Image, dst watchface.Rect, antiAlias bool) {
	if img == nil || dst.Empty() {
		return
	}
	eimg, ok := c.images[img]
	if !ok {
		if len(c.images) >= maxCachedImages {
			for k, v := range c.images {
				v.Deallocate()
				delete(c.images, k)
			}
		}
		eimg = ebiten.NewImageFromImage(img)
		c.images[img] = eimg
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dst.Width/float64(b.Dx()), dst.Height/float64(b.Dy()))
	op.GeoM.Translate(dst.X, dst.Y)
	if antiAlias {
		op.Filter = ebiten.FilterLinear
	} else {
		op.Filter = ebiten.FilterNearest
	}
	c.dst.DrawImage(eimg, op)
}
