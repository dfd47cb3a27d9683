package optics

import "math"

// focalEps is the distance from the focal point inside which no image is formed.
const focalEps = 1e-12

// PlaneMirror is a flat mirror lying on the y axis.
type PlaneMirror struct{}

// Kind implements Element.
func (PlaneMirror) Kind() Kind { return KindPlaneMirror }
func (PlaneMirror) element()   {}

// planeMirror reflects across the mirror line: (x, y) → (−x, y).
func planeMirror(p Point) Point {
	return Point{X: -p.X, Y: p.Y}
}

// ThinLens is an ideal thin lens on the y axis with the object on the +x side.
//
// Focal > 0 is a converging lens. The image is at (−v, y·M) with
// v = 1/(1/f − 1/u) and M = −v/u, where u is the object's x coordinate:
// a real inverted image on the far side for u > f, a virtual upright one on
// the object side for 0 < u < f.
type ThinLens struct {
	Focal  float64
	Filter ImageFilter
}

// Kind implements Element.
func (ThinLens) Kind() Kind { return KindThinLens }
func (ThinLens) element()   {}

func thinLens(p Point, f float64, filter ImageFilter) Point {
	u := p.X
	if f == 0 || !isFinite(f) || u == 0 || math.Abs(u-f) < focalEps*math.Max(1, math.Abs(f)) {
		return NoImage()
	}
	v := ImageDistance(u, f)
	if !filter.keep(v > 0) {
		return NoImage()
	}
	m := -v / u
	return Point{X: -v, Y: p.Y * m}
}

// ImageDistance solves 1/u + 1/v = 1/f for v.
// It is ±Inf for an object at the focal point and NaN for u = 0.
func ImageDistance(u, f float64) float64 {
	return 1 / (1/f - 1/u)
}

// Magnification returns the lateral magnification −v/u.
func Magnification(u, v float64) float64 {
	return -v / u
}

// LensSample is one measured object/image distance pair.
type LensSample struct {
	U, V float64
}

// FocalLengthFromSamples verifies the thin-lens equation on measured data:
// it fits 1/v against 1/u by least squares and returns f = 1/intercept with
// the underlying regression. A good lens gives slope ≈ −1 and R² ≈ 1.
func FocalLengthFromSamples(samples []LensSample) (float64, Regression, error) {
	pts := make([]Point, 0, len(samples))
	for _, s := range samples {
		if s.U == 0 || s.V == 0 {
			continue
		}
		pts = append(pts, Point{X: 1 / s.U, Y: 1 / s.V})
	}
	reg, err := LinearRegression(pts)
	if err != nil {
		return math.NaN(), reg, err
	}
	return 1 / reg.Intercept, reg, nil
}
