package optics

import (
	"fmt"
	"image/color"
	"math"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	r, g, b, a := c.Bytes()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Bytes returns the components scaled to 0..255 and rounded half away from zero.
func (c RGBA) Bytes() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

// CSS formats the color as an `rgb(r,g,b)` string for SVG or canvas renderers.
func (c RGBA) CSS() string {
	r, g, b, _ := c.Bytes()
	return fmt.Sprintf("rgb(%d,%d,%d)", r, g, b)
}

// FromColor converts a standard color.Color to RGBA (non-premultiplied).
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// Lerp performs linear interpolation between two colors.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// WithAlpha returns the color with its alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RRGGBB", "RRGGBBAA", with or without a leading '#'.
// Unparseable input yields opaque black.
func Hex(hex string) RGBA {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var v [4]uint32
	v[3] = 255
	switch len(hex) {
	case 3:
		for i := range 3 {
			if !parseHex(hex[i:i+1], &v[i]) {
				return RGB(0, 0, 0)
			}
			v[i] *= 17
		}
	case 6, 8:
		for i := 0; i < len(hex)/2; i++ {
			if !parseHex(hex[2*i:2*i+2], &v[i]) {
				return RGB(0, 0, 0)
			}
		}
	default:
		return RGB(0, 0, 0)
	}

	return RGBA{
		R: float64(v[0]) / 255,
		G: float64(v[1]) / 255,
		B: float64(v[2]) / 255,
		A: float64(v[3]) / 255,
	}
}

func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

func to8(x float64) uint8 {
	return uint8(math.Round(clamp255(x * 255)))
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Transparent = RGBA{}
)

// Spectral calibration: frequency (THz) to color, red end to violet end.
var (
	spectrumTHz    = [...]float64{405, 480, 510, 530, 600, 620, 680, 790}
	spectrumColors = [...]RGBA{
		RGB(1, 0, 0),
		RGB(1, 127.0/255, 0),
		RGB(1, 1, 0),
		RGB(0, 1, 0),
		RGB(0, 1, 1),
		RGB(0, 1, 1),
		RGB(137.0/255, 0, 1),
		RGB(1, 0, 1),
	}
)

// Visible-band limits of the spectral color table.
const (
	SpectrumMinTHz = 405.0
	SpectrumMaxTHz = 790.0
)

// FrequencyToColor maps a light frequency in THz to an approximate display
// color by piecewise-linear interpolation over eight calibration points.
// Frequencies outside [405, 790] clamp to the endpoint colors.
func FrequencyToColor(freqTHz float64) RGBA {
	last := len(spectrumTHz) - 1
	if freqTHz <= spectrumTHz[0] || math.IsNaN(freqTHz) {
		return spectrumColors[0]
	}
	if freqTHz >= spectrumTHz[last] {
		return spectrumColors[last]
	}
	for i := range last {
		if freqTHz <= spectrumTHz[i+1] {
			t := (freqTHz - spectrumTHz[i]) / (spectrumTHz[i+1] - spectrumTHz[i])
			return spectrumColors[i].Lerp(spectrumColors[i+1], t)
		}
	}
	return spectrumColors[last]
}
