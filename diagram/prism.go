package diagram

import (
	"fmt"
	"math"

	"github.com/gogpu/optics"
)

// DefaultPrismRays is the number of frequencies PrismScene traces.
const DefaultPrismRays = 100

var (
	prismBackground = optics.Hex("#111318")
	prismGlass      = optics.RGBA{R: 0.62, G: 0.8, B: 1, A: 0.22}
	prismEdge       = optics.RGBA{R: 0.85, G: 0.92, B: 1, A: 0.9}
	tirColor        = optics.Hex("#FF5252")
)

// PrismScene renders white light dispersed by a crown-glass prism.
type PrismScene struct {
	ApexDeg      float64
	IncidenceDeg float64
	Rays         int // traced frequencies; zero means DefaultPrismRays
	Labels       bool
}

// Render traces the scene and draws it into a new w×h pixmap. It also
// returns the traced dispersion.
func (s PrismScene) Render(w, h int) (*optics.Pixmap, optics.Dispersion, error) {
	if w <= 0 || h <= 0 {
		return nil, optics.Dispersion{}, fmt.Errorf("diagram: prism size %dx%d: %w", w, h, optics.ErrInvalidParameter)
	}
	g := optics.BuildPrism(s.ApexDeg, 1)
	if !g.Valid() {
		return nil, optics.Dispersion{}, fmt.Errorf("diagram: prism apex %g°: %w", s.ApexDeg, optics.ErrInvalidParameter)
	}
	rays := s.Rays
	if rays <= 0 {
		rays = DefaultPrismRays
	}

	pm := optics.NewPixmap(w, h)
	pm.Clear(prismBackground)

	// Rays reach DefaultRayExtent beyond either face of a unit-height prism.
	span := 2 * (optics.DefaultRayExtent + math.Max(0.5, g.BaseRight.X))
	scale := math.Min(float64(w), float64(h)) / span
	cv := NewCanvas(pm, optics.Pt(float64(w)/2, float64(h)/2), scale)

	cv.FillPolygon(g.Outline(), prismGlass)
	outline := append(g.Outline(), g.BaseLeft)
	cv.Polyline(outline, 1.5, prismEdge)

	d := optics.TraceSpectrum(g, s.IncidenceDeg, rays)

	// Every frequency shares the incident segment; trace it once so it is
	// drawn even when the whole sweep is blocked.
	incident := optics.TracePrism(g, s.IncidenceDeg, optics.CrownGlassIndexAt(optics.SpectrumMinTHz)).Points()
	if len(incident) >= 2 {
		cv.Line(incident[0], incident[1], 2, optics.White)
	}
	for _, r := range d.Rays {
		cv.Line(r.Path.Entry, r.Path.InsideExit, 1, r.Color.WithAlpha(0.35))
		cv.Line(r.Path.InsideExit, r.Path.OutEnd, 1.5, r.Color.WithAlpha(0.8))
	}

	if s.Labels {
		s.drawLabels(pm, d)
	}
	return pm, d, nil
}

func (s PrismScene) drawLabels(pm *optics.Pixmap, d optics.Dispersion) {
	lb, err := sharedLabeler()
	if err != nil {
		optics.Logger().Warn("prism labels disabled", "err", err)
		return
	}
	pad := 8.0
	caption := fmt.Sprintf("apex %.0f°  incidence %.1f°", s.ApexDeg, s.IncidenceDeg)
	lb.Draw(pm, caption, pad, float64(pm.Height())-pad, AnchorStart, optics.White)
	if d.AnyTIR {
		lb.Draw(pm, "total internal reflection", float64(pm.Width())/2, pad+lb.Size(), AnchorCenter, tirColor)
	}
}
