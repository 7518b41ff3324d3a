package watchface

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// IconKey names an icon resource.
type IconKey string

// IconPair holds the two variants drawn for a condition: a full-color icon
// for interactive mode and a grey outline for ambient mode.
type IconPair struct {
	Interactive IconKey
	Ambient     IconKey
}

func iconPair(name string) IconPair {
	return IconPair{
		Interactive: IconKey("art_" + name),
		Ambient:     IconKey("ic_" + name),
	}
}

// DefaultIcons is the pair used for condition codes outside the known ranges.
var DefaultIcons = iconPair("clear")

// IconsForCondition maps an OpenWeatherMap condition code onto its icon pair.
// Every code resolves; unknown codes get DefaultIcons.
func IconsForCondition(code int) IconPair {
	switch {
	case code >= 200 && code <= 232:
		return iconPair("storm")
	case code >= 300 && code <= 321:
		return iconPair("light_rain")
	case code >= 500 && code <= 504:
		return iconPair("rain")
	case code == 511:
		return iconPair("snow")
	case code >= 520 && code <= 531:
		return iconPair("rain")
	case code >= 600 && code <= 622:
		return iconPair("snow")
	case code == 761 || code == 781:
		return iconPair("storm")
	case code >= 701 && code <= 760:
		return iconPair("fog")
	case code == 800:
		return iconPair("clear")
	case code == 801:
		return iconPair("light_clouds")
	case code >= 802 && code <= 804:
		return iconPair("cloudy")
	}
	return DefaultIcons
}

// IconSource resolves icon keys to decoded images.
type IconSource interface {
	Icon(key IconKey) (image.Image, error)
}

// ErrUnknownIcon is returned for keys with no resource.
var ErrUnknownIcon = errors.New("unknown icon")

//go:embed assets/icons/*.svg
var iconAssets embed.FS

// SVGIcons decodes SVG icon resources and caches the rasterized result.
type SVGIcons struct {
	fsys fs.FS
	size int

	mu    sync.Mutex
	cache map[IconKey]image.Image
}

// NewSVGIcons returns an IconSource over the embedded icon set, rasterized
// at size x size pixels. Canvases scale the result to the drawn size.
func NewSVGIcons(size int) *SVGIcons {
	sub, err := fs.Sub(iconAssets, "assets/icons")
	if err != nil {
		panic(fmt.Sprintf("watchface: embedded icons: %v", err))
	}
	return NewSVGIconsFS(sub, size)
}

// NewSVGIconsFS returns an IconSource reading <key>.svg files from fsys.
func NewSVGIconsFS(fsys fs.FS, size int) *SVGIcons {
	if size <= 0 {
		size = 96
	}
	return &SVGIcons{
		fsys:  fsys,
		size:  size,
		cache: make(map[IconKey]image.Image),
	}
}

// Icon implements IconSource. It is safe for concurrent use because the
// companion transport decodes icons off the host thread.
func (s *SVGIcons) Icon(key IconKey) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if img, ok := s.cache[key]; ok {
		return img, nil
	}
	data, err := fs.ReadFile(s.fsys, string(key)+".svg")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("icon %q: %w", key, ErrUnknownIcon)
		}
		return nil, fmt.Errorf("icon %q: %w", key, err)
	}
	img, err := rasterizeSVG(data, s.size)
	if err != nil {
		return nil, fmt.Errorf("icon %q: %w", key, err)
	}
	s.cache[key] = img
	return img, nil
}

// rasterizeSVG renders an SVG document into a size x size RGBA image.
func rasterizeSVG(data []byte, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	icon.SetTarget(0, 0, float64(size), float64(size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	dasher := rasterx.NewDasher(size, size, scanner)
	icon.Draw(dasher, 1.0)
	return rgba, nil
}
