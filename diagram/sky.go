package diagram

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/optics"
)

// Sky layout constants, in pixels and degrees.
const (
	skyHorizonPct   = 70 // horizon height as a percentage from the top
	maxSecondaryDeg = 56 // widest secondary bow the layout must fit
	skyPadTop       = 12
	skyPadSide      = 16
	secondaryDash   = 9
)

var (
	skyTop    = optics.Hex("#5D9CEC")
	skyBottom = optics.Hex("#AEC6CF")
	ground    = optics.Hex("#2E7D32")
)

// Sky renders the rainbow seen with the sun SolarDeg degrees above the
// horizon. Each swept frequency contributes one primary arc and one dashed
// secondary arc around the anti-solar point, which lies SolarDeg below the
// horizon. Bows that do not clear the horizon are omitted.
type Sky struct {
	SolarDeg float64

	// Sampler supplies the bows. Nil uses a fresh sampler over WaterIndex.
	Sampler *optics.RainbowSampler

	// Labels draws the elevation of the red primary and secondary bows.
	Labels bool
}

// SkyLayout is the pixel geometry of a rendered sky.
type SkyLayout struct {
	HorizonY float64
	DegToPx  float64      // pixels per degree of elevation
	Center   optics.Point // anti-solar point, below the horizon
	Width    float64      // bow stroke width
}

// Radius returns the pixel radius of a bow with the given elevation.
func (l SkyLayout) Radius(elevationDeg float64) float64 {
	return elevationDeg * l.DegToPx
}

// Layout computes the sky geometry for a w×h image.
func (s Sky) Layout(w, h int) SkyLayout {
	hy := float64(h * skyHorizonPct / 100)
	d := math.Min((hy-skyPadTop)/maxSecondaryDeg, (float64(w)/2-skyPadSide)/maxSecondaryDeg)
	d = math.Max(1, d)
	lw := 2.0
	if w > 600 {
		lw = 3
	}
	return SkyLayout{
		HorizonY: hy,
		DegToPx:  d,
		Center:   optics.Pt(float64(w)/2, hy+s.SolarDeg*d),
		Width:    lw,
	}
}

// Render draws the sky into a new w×h pixmap.
func (s Sky) Render(w, h int) (*optics.Pixmap, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("diagram: sky size %dx%d: %w", w, h, optics.ErrInvalidParameter)
	}
	if !(s.SolarDeg >= 0 && s.SolarDeg <= 90) {
		return nil, fmt.Errorf("diagram: solar elevation %g: %w", s.SolarDeg, optics.ErrInvalidParameter)
	}
	sampler := s.Sampler
	if sampler == nil {
		sampler = optics.NewRainbowSampler(optics.WaterIndex)
	}

	lay := s.Layout(w, h)
	hy := int(lay.HorizonY)
	pm := optics.NewPixmap(w, h)
	for y := range hy {
		t := float64(y) / math.Max(1, float64(hy-1))
		pm.FillRect(0, y, w, 1, skyTop.Lerp(skyBottom, t))
	}
	pm.FillRect(0, hy, w, h-hy, ground)

	// Bows go on a sky-sized layer so nothing spills below the horizon.
	layer := optics.NewPixmap(w, hy)
	cv := NewCanvas(layer, lay.Center, lay.DegToPx)

	var primary, secondary []optics.RainbowSample
	for smp := range sampler.Samples() {
		if optics.BowVisible(smp.PrimaryDeg, s.SolarDeg) {
			primary = append(primary, smp)
		}
		if optics.BowVisible(smp.SecondaryDeg, s.SolarDeg) {
			secondary = append(secondary, smp)
		}
	}
	for _, smp := range primary {
		r := lay.Radius(smp.PrimaryDeg)
		cv.Band(lay.Center, r-lay.Width/2, r+lay.Width/2, 0, math.Pi, smp.Color)
	}
	sw := lay.Width + 1
	for i := len(secondary) - 1; i >= 0; i-- {
		smp := secondary[i]
		dashedBand(cv, lay.Center, lay.Radius(smp.SecondaryDeg), sw, smp.Color)
	}
	draw.Draw(pm, layer.Bounds(), layer, image.Point{}, draw.Over)

	pm.FillRect(0, hy-1, w, 2, optics.White.WithAlpha(0.7))

	if s.Labels {
		s.drawLabels(pm, lay, primary, secondary)
	}

	optics.Logger().Debug("sky rendered",
		"solar_deg", s.SolarDeg,
		"primary_arcs", len(primary),
		"secondary_arcs", len(secondary),
		"deg_to_px", lay.DegToPx)
	return pm, nil
}

// dashedBand strokes the upper half circle of radius r as dashes of
// secondaryDash pixels.
func dashedBand(cv *Canvas, center optics.Point, r, width float64, col optics.RGBA) {
	if r <= 0 {
		return
	}
	step := secondaryDash / r
	for a := 0.0; a < math.Pi; a += 2 * step {
		cv.Band(center, r-width/2, r+width/2, a, math.Min(a+step, math.Pi), col)
	}
}

func (s Sky) drawLabels(pm *optics.Pixmap, lay SkyLayout, primary, secondary []optics.RainbowSample) {
	lb, err := sharedLabeler()
	if err != nil {
		optics.Logger().Warn("sky labels disabled", "err", err)
		return
	}
	label := func(name string, elev float64) {
		y := lay.Center.Y - lay.Radius(elev) - 8
		if y < lb.Size() {
			return
		}
		lb.Draw(pm, fmt.Sprintf("%s %.1f°", name, elev), lay.Center.X, y, AnchorCenter, optics.White)
	}
	// Samples run red first: the outer primary and the inner secondary arc.
	if len(primary) > 0 {
		label("primary", primary[0].PrimaryDeg)
	}
	if len(secondary) > 0 {
		label("secondary", secondary[0].SecondaryDeg)
	}
}
