package optics

import "math"

// DefaultInnerRatio is the inner/outer radius ratio of the anamorphic annulus
// when AnamorphicArc.InnerRatio is zero.
const DefaultInnerRatio = 0.35

const arcEps = 1e-9

// AnamorphicArc maps the unit disc onto an annular arc, the image a
// cylindrical-mirror anamorphosis needs on paper.
//
// Radius ρ ∈ [0, 1] maps linearly onto [InnerRatio·OuterRadius, OuterRadius]
// and the polar angle (−π, π] maps linearly onto an arc of ArcDeg degrees
// centered on the +x axis. Points outside the unit disc have no image.
type AnamorphicArc struct {
	OuterRadius float64
	ArcDeg      float64
	InnerRatio  float64
}

// Kind implements Element.
func (AnamorphicArc) Kind() Kind { return KindAnamorphicArc }
func (AnamorphicArc) element()   {}

func discToArc(p Point, outer, arcDeg, tau float64) Point {
	rho2 := p.X*p.X + p.Y*p.Y
	if !(rho2 <= 1+arcEps) {
		return NoImage()
	}
	if tau == 0 {
		tau = DefaultInnerRatio
	}

	rho := math.Min(1, math.Sqrt(math.Max(0, rho2)))
	phi := math.Atan2(p.Y, p.X)

	span := degToRad(math.Max(arcEps, arcDeg))
	rOut := math.Max(arcEps, outer)
	rIn := math.Min(math.Max(arcEps, tau*rOut), rOut-arcEps)

	r := rIn + (rOut-rIn)*rho
	theta := -0.5*span + span*(phi+math.Pi)/(2*math.Pi)

	s, c := math.Sincos(theta)
	return Point{X: r * c, Y: r * s}
}
