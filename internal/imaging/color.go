package imaging

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// Summary describes a buffer without shipping its pixels.
//
// The mean color is averaged over the RGB channels of every pixel; alpha is
// reported through Channels only. Summaries are attached to tool results so a
// client can sanity-check an edit (for instance, an all-black placeholder has
// MeanHex "#000000").
type Summary struct {
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Channels int      `json:"channels"`
	MeanHex  string   `json:"mean_hex"`
	MeanRGB  RGBColor `json:"mean_rgb"`
	MeanHSL  HSLColor `json:"mean_hsl"`
}

// Summarize computes the dimensions and mean color of a buffer.
func Summarize(b *Buffer) *Summary {
	s := &Summary{Width: b.Width, Height: b.Height, Channels: b.Channels}

	pixels := b.Width * b.Height
	if pixels == 0 || b.Channels < 3 {
		s.MeanHex = "#000000"
		return s
	}

	var r, g, bl float64
	for i := 0; i+2 < len(b.Pix); i += b.Channels {
		r += float64(b.Pix[i])
		g += float64(b.Pix[i+1])
		bl += float64(b.Pix[i+2])
	}
	n := float64(pixels)
	mean := colorful.Color{R: r / n, G: g / n, B: bl / n}.Clamped()

	cr, cg, cb := mean.RGB255()
	h, sat, l := mean.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	s.MeanHex = strings.ToUpper(mean.Hex())
	s.MeanRGB = RGBColor{R: cr, G: cg, B: cb}
	s.MeanHSL = HSLColor{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(sat * 100)),
		L: int(math.Round(l * 100)),
	}
	return s
}
