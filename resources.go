package watchface

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Resource keys looked up when building paints.
const (
	ColorBackground      = "background"
	ColorDigitalText     = "digital_text"
	ColorDigitalTextGrey = "digital_text_grey"

	DimenDigitalTextSize      = "digital_text_size"
	DimenDigitalTextSizeRound = "digital_text_size_round"
	DimenDateTextSize         = "date_text_size"
	DimenTempTextSize         = "temp_text_size"
	DimenOpenAppTextSize      = "open_app_text_size"
	DimenIconSize             = "icon_size"

	StringOpenApp = "open_app"
)

// Resources is the host's resource table. Lookups are by key and report
// whether the key exists.
type Resources interface {
	Color(key string) (Color, bool)
	Dimension(key string) (float64, bool)
	String(key string) (string, bool)
}

// ResourceTable is a map-backed Resources. Colors are "#RRGGBB" or
// "#AARRGGBB" strings, dimensions are pixels.
type ResourceTable struct {
	Colors     map[string]string  `yaml:"colors"`
	Dimensions map[string]float64 `yaml:"dimensions"`
	Strings    map[string]string  `yaml:"strings"`
}

// DefaultResources returns the built-in theme.
func DefaultResources() *ResourceTable {
	return &ResourceTable{
		Colors: map[string]string{
			ColorBackground:      "#03A9F4",
			ColorDigitalText:     "#FFFFFF",
			ColorDigitalTextGrey: "#B3E5FC",
		},
		Dimensions: map[string]float64{
			DimenDigitalTextSize:      40,
			DimenDigitalTextSizeRound: 45,
			DimenDateTextSize:         16,
			DimenTempTextSize:         24,
			DimenOpenAppTextSize:      16,
			DimenIconSize:             80,
		},
		Strings: map[string]string{
			StringOpenApp: "Open Sunshine on your phone",
		},
	}
}

// LoadResources parses a YAML resource file and overlays it on the defaults.
// Keys absent from data keep their default values.
func LoadResources(data []byte) (*ResourceTable, error) {
	var overlay ResourceTable
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse resources: %w", err)
	}
	t := DefaultResources()
	for k, v := range overlay.Colors {
		if _, err := ParseHexColor(v); err != nil {
			return nil, fmt.Errorf("color %q: %w", k, err)
		}
		t.Colors[k] = v
	}
	for k, v := range overlay.Dimensions {
		if v < 0 {
			return nil, fmt.Errorf("dimension %q: negative value %v", k, v)
		}
		t.Dimensions[k] = v
	}
	for k, v := range overlay.Strings {
		t.Strings[k] = v
	}
	return t, nil
}

// Color implements Resources. Unparseable entries count as missing.
func (t *ResourceTable) Color(key string) (Color, bool) {
	s, ok := t.Colors[key]
	if !ok {
		return Color{}, false
	}
	c, err := ParseHexColor(s)
	if err != nil {
		return Color{}, false
	}
	return c, true
}

// Dimension implements Resources.
func (t *ResourceTable) Dimension(key string) (float64, bool) {
	v, ok := t.Dimensions[key]
	return v, ok
}

// String implements Resources.
func (t *ResourceTable) String(key string) (string, bool) {
	v, ok := t.Strings[key]
	return v, ok
}

// ParseHexColor parses "#RRGGBB" or "#AARRGGBB".
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	a := uint64(0xFF)
	if len(hex) == 8 {
		a = v >> 24 & 0xFF
	}
	return Color{
		R: float64(v>>16&0xFF) / 255,
		G: float64(v>>8&0xFF) / 255,
		B: float64(v&0xFF) / 255,
		A: float64(a) / 255,
	}, nil
}

func colorOr(r Resources, key string, def Color) Color {
	if r == nil {
		return def
	}
	if c, ok := r.Color(key); ok {
		return c
	}
	return def
}

func dimensionOr(r Resources, key string, def float64) float64 {
	if r == nil {
		return def
	}
	if v, ok := r.Dimension(key); ok && v > 0 {
		return v
	}
	return def
}

func stringOr(r Resources, key, def string) string {
	if r == nil {
		return def
	}
	if v, ok := r.String(key); ok && v != "" {
		return v
	}
	return def
}
