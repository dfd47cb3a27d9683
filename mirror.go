package optics

import "math"

// mirrorEps guards near-zero denominators in the mirror constructions.
const mirrorEps = 1e-9

// ConcaveMirror is a spherical concave mirror with its vertex at the origin,
// its center of curvature at (Radius, 0) and the object on the +x side.
//
// Images are found by exact ray tracing rather than the paraxial mirror
// equation: a ray leaving the object parallel to the axis is reflected about
// the surface normal where it strikes the sphere, and the image lies where
// that reflected ray meets the ray through the center of curvature. Close to
// the axis this agrees with [MirrorEquationImage]; farther out it shows
// spherical aberration.
type ConcaveMirror struct {
	Radius float64
	Filter ImageFilter
}

// Kind implements Element.
func (ConcaveMirror) Kind() Kind { return KindConcaveMirror }
func (ConcaveMirror) element()   {}

func concaveMirror(p Point, r float64, filter ImageFilter) Point {
	if !(r > 0) || !isFinite(r) || !p.IsValid() || p.X <= 0 {
		return NoImage()
	}

	// On the axis both construction rays coincide; take the paraxial limit.
	if math.Abs(p.Y) < mirrorEps {
		img := MirrorEquationImage(p, r)
		if !img.IsValid() || !filter.keep(img.X > 0) {
			return NoImage()
		}
		return img
	}
	if math.Abs(p.Y) >= r {
		return NoImage()
	}

	c := Point{X: r}
	d := Point{X: -1}

	// |p + t·d − c|² = r² for the horizontal ray toward the mirror.
	w := p.Sub(c)
	roots := SolveQuadratic(1, 2*w.Dot(d), w.Dot(w)-r*r)
	if len(roots) == 0 {
		return NoImage()
	}
	// The larger root is the sheet nearest the vertex.
	t := roots[len(roots)-1]
	if t < 0 {
		return NoImage()
	}
	hit := p.Add(d.Mul(t))

	n := c.Sub(hit).Mul(1 / r)
	refl := d.Sub(n.Mul(2 * d.Dot(n)))

	// Chief ray: object through the center of curvature.
	chief := c.Sub(p)
	den := refl.Cross(chief)
	if math.Abs(den) < mirrorEps*chief.Length() {
		return NoImage()
	}
	s := p.Sub(hit).Cross(chief) / den
	img := hit.Add(refl.Mul(s))

	if !img.IsValid() || !filter.keep(img.X > 0) {
		return NoImage()
	}
	return img
}

// MirrorEquationImage is the paraxial (closed-form) image of p in a concave
// mirror of radius r: f = r/2, v = 1/(1/f − 1/u), image at (v, y·M) with
// M = −v/u on the object side. It requires u > 0 and u ≠ f.
func MirrorEquationImage(p Point, r float64) Point {
	f := r / 2
	u := p.X
	if !(r > 0) || !(u > 0) || math.Abs(u-f) < focalEps*math.Max(1, f) {
		return NoImage()
	}
	v := ImageDistance(u, f)
	return Point{X: v, Y: p.Y * Magnification(u, v)}
}

// ConvexMirror is a convex spherical mirror of the given radius centered at
// the origin, viewed from the +x side.
//
// The virtual image is found with the half-angle construction: with
// α = ½·atan2(y, x) and k = x / cos 2α, the image height is
// Y = k·sin α / (k/R − cos α + (x/y)·sin α) and X = x·Y/y.
type ConvexMirror struct {
	Radius float64
}

// Kind implements Element.
func (ConvexMirror) Kind() Kind { return KindConvexMirror }
func (ConvexMirror) element()   {}

func convexMirror(p Point, r float64) Point {
	x, y := p.X, p.Y
	if !(x > 0) || !(r > 0) || !(math.Abs(y) < r) {
		return NoImage()
	}
	// On-axis points collapse radially onto the center in this model.
	if math.Abs(y) < mirrorEps {
		return Point{}
	}

	alpha := 0.5 * math.Atan2(y, x)
	c2a := math.Cos(2 * alpha)
	if math.Abs(c2a) < mirrorEps {
		return NoImage()
	}
	k := x / c2a

	sa, ca := math.Sincos(alpha)
	// The x/y ordering is load-bearing; y/x gives a different mirror.
	den := k/r - ca + (x/y)*sa
	if math.Abs(den) < mirrorEps {
		return NoImage()
	}

	imgY := k * sa / den
	return Point{X: x * (imgY / y), Y: imgY}
}
