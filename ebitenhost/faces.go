package ebitenhost

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/watchface"
)

// Faces resolves watchface paints to Ebitengine text faces. Anti-aliased
// text goes through text/v2; aliased text is rasterized with the shared
// watchface typefaces so low-bit output matches screenshots pixel for pixel.
type Faces struct {
	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource
	raster  *watchface.Typefaces
	faces   map[faceKey]*text.GoTextFace
}

type faceKey struct {
	style watchface.FontStyle
	size  float64
}

// DefaultFaces loads the Go sans-serif fonts.
func DefaultFaces() (*Faces, error) {
	raster, err := watchface.DefaultTypefaces()
	if err != nil {
		return nil, err
	}
	return LoadFaces(goregular.TTF, gobold.TTF, raster)
}

// LoadFaces parses TrueType data for the regular and bold styles. raster
// backs aliased text.
func LoadFaces(regularTTF, boldTTF []byte, raster *watchface.Typefaces) (*Faces, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(regularTTF))
	if err != nil {
		return nil, fmt.Errorf("ebitenhost: failed to parse regular TTF data: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(boldTTF))
	if err != nil {
		return nil, fmt.Errorf("ebitenhost: failed to parse bold TTF data: %w", err)
	}
	return &Faces{
		regular: regular,
		bold:    bold,
		raster:  raster,
		faces:   make(map[faceKey]*text.GoTextFace),
	}, nil
}

// Face returns the text/v2 face for a style and size.
func (f *Faces) Face(style watchface.FontStyle, size float64) *text.GoTextFace {
	key := faceKey{style, size}
	if face, ok := f.faces[key]; ok {
		return face
	}
	src := f.regular
	if style == watchface.FontBold {
		src = f.bold
	}
	face := &text.GoTextFace{Source: src, Size: size}
	f.faces[key] = face
	return face
}

// Ascent returns the distance from the top of a line to its baseline.
func (f *Faces) Ascent(style watchface.FontStyle, size float64) float64 {
	return f.Face(style, size).Metrics().HAscent
}
