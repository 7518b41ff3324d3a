package watchface

// Paint is the style a canvas applies to a text draw.
type Paint struct {
	Color     Color
	Style     FontStyle
	Size      float64
	AntiAlias bool
}

// Paints is the full set of styles used by the face, resolved from resources
// for one display shape.
type Paints struct {
	Background Color
	Divider    Color

	Hour    Paint // bold primary
	Minute  Paint // normal primary
	Date    Paint // muted
	High    Paint // bold
	Low     Paint // muted
	OpenApp Paint // muted

	IconSize float64
}

// NewPaints resolves colors and sizes from r, falling back to the built-in
// theme for any key r lacks.
func NewPaints(r Resources, round bool) Paints {
	def := DefaultResources()
	text := colorOr(r, ColorDigitalText, mustColor(def, ColorDigitalText))
	grey := colorOr(r, ColorDigitalTextGrey, mustColor(def, ColorDigitalTextGrey))

	timeKey := DimenDigitalTextSize
	if round {
		timeKey = DimenDigitalTextSizeRound
	}
	timeSize := dimensionOr(r, timeKey, def.Dimensions[timeKey])
	tempSize := dimensionOr(r, DimenTempTextSize, def.Dimensions[DimenTempTextSize])

	return Paints{
		Background: colorOr(r, ColorBackground, mustColor(def, ColorBackground)),
		Divider:    grey,
		Hour:       Paint{Color: text, Style: FontBold, Size: timeSize, AntiAlias: true},
		Minute:     Paint{Color: text, Style: FontNormal, Size: timeSize, AntiAlias: true},
		Date: Paint{
			Color: grey, Style: FontNormal, AntiAlias: true,
			Size: dimensionOr(r, DimenDateTextSize, def.Dimensions[DimenDateTextSize]),
		},
		High: Paint{Color: text, Style: FontBold, Size: tempSize, AntiAlias: true},
		Low:  Paint{Color: grey, Style: FontNormal, Size: tempSize, AntiAlias: true},
		OpenApp: Paint{
			Color: grey, Style: FontNormal, AntiAlias: true,
			Size: dimensionOr(r, DimenOpenAppTextSize, def.Dimensions[DimenOpenAppTextSize]),
		},
		IconSize: dimensionOr(r, DimenIconSize, def.Dimensions[DimenIconSize]),
	}
}

func mustColor(t *ResourceTable, key string) Color {
	c, _ := t.Color(key)
	return c
}
