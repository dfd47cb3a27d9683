package optics

import (
	"fmt"
	"math"
)

// Prism ray tracing in a y-up frame. Renderers that draw y-down flip once at
// the end.

const (
	// DefaultRayExtent is the length of the incident and emergent segments.
	DefaultRayExtent = 2.6

	traceEps = 1e-9
)

// Edge indexes the faces of a prism.
type Edge int

// Prism faces.
const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeBase
	EdgeNone Edge = -1
)

// Segment is a directed line segment from A to B.
type Segment struct {
	A, B Point
}

// PrismGeometry is an isosceles prism standing on its base, apex up.
//
// Vertices are BaseLeft (−h, −H/2), Apex (0, H/2) and BaseRight (h, −H/2) with
// h = H·tan(α/2). Edges run BaseLeft→Apex (left face), Apex→BaseRight (right
// face) and BaseRight→BaseLeft (base).
type PrismGeometry struct {
	ApexDeg float64
	Height  float64

	Apex, BaseLeft, BaseRight Point

	Edges    [3]Segment
	Tangents [3]Point // unit vectors along each edge

	// LeftNormal is the unit normal of the left face pointing to the top-left,
	// out of the glass. Incidence angles are measured from it.
	LeftNormal Point
}

// BuildPrism constructs the prism geometry for apex angle apexDeg and height.
func BuildPrism(apexDeg, height float64) PrismGeometry {
	half := math.Tan(degToRad(apexDeg)/2) * height

	g := PrismGeometry{
		ApexDeg:   apexDeg,
		Height:    height,
		BaseLeft:  Pt(-half, -height/2),
		Apex:      Pt(0, height/2),
		BaseRight: Pt(half, -height/2),
	}
	g.Edges = [3]Segment{
		EdgeLeft:  {A: g.BaseLeft, B: g.Apex},
		EdgeRight: {A: g.Apex, B: g.BaseRight},
		EdgeBase:  {A: g.BaseRight, B: g.BaseLeft},
	}
	for i, e := range g.Edges {
		g.Tangents[i] = e.B.Sub(e.A).Normalize()
	}
	g.LeftNormal = g.Tangents[EdgeLeft].PerpLeft().Normalize()
	return g
}

// Valid reports whether the geometry is a proper triangle
// (0 < apex < 180°, positive finite height).
func (g PrismGeometry) Valid() bool {
	return g.ApexDeg > 0 && g.ApexDeg < 180 && g.Height > 0 &&
		isFinite(g.Height) && g.BaseRight.IsValid()
}

// Outline returns the three vertices in edge order.
func (g PrismGeometry) Outline() []Point {
	return []Point{g.BaseLeft, g.Apex, g.BaseRight}
}

// outwardNormal returns the unit normal of edge e pointing out of the glass.
func (g PrismGeometry) outwardNormal(e Edge) Point {
	return g.Tangents[e].PerpLeft().Normalize()
}

// TraceState is the terminal state of a traced ray.
type TraceState uint8

// Trace states.
const (
	// Exited means the ray left the prism; the full path is available.
	Exited TraceState = iota
	// TotalInternalReflection means refraction failed at an interface.
	TotalInternalReflection
	// NoIntersection means the ray missed the expected face (grazing
	// incidence, a degenerate prism or an internal ray parallel to an edge).
	NoIntersection
)

func (s TraceState) String() string {
	switch s {
	case Exited:
		return "exited"
	case TotalInternalReflection:
		return "total-internal-reflection"
	case NoIntersection:
		return "no-intersection"
	}
	return fmt.Sprintf("TraceState(%d)", s)
}

// RayPath is one wavelength's path through the prism.
//
// The polyline Source→Entry→InsideExit→OutEnd is complete only when State is
// Exited. Otherwise it ends at the last point reached: Points reports the
// valid prefix and the remaining points are {NaN, NaN}.
type RayPath struct {
	Source, Entry, InsideExit, OutEnd Point

	IncidentDir, InternalDir, ExitDir Point // unit directions, zero when unreached
	ExitEdge                          Edge
	State                             TraceState
}

// TIR reports whether refraction failed at either interface.
func (r RayPath) TIR() bool { return r.State == TotalInternalReflection }

// Points returns the reached prefix of Source, Entry, InsideExit, OutEnd.
func (r RayPath) Points() []Point {
	pts := make([]Point, 0, 4)
	for _, p := range [...]Point{r.Source, r.Entry, r.InsideExit, r.OutEnd} {
		if !p.IsValid() {
			break
		}
		pts = append(pts, p)
	}
	return pts
}

// Deviation returns the angle in radians between the incident and emergent
// directions, or NaN if the ray did not exit.
func (r RayPath) Deviation() float64 {
	if r.State != Exited {
		return math.NaN()
	}
	c := r.IncidentDir.Dot(r.ExitDir)
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

// TraceOption configures TracePrism.
type TraceOption func(*traceOptions)

type traceOptions struct {
	extent float64
}

// WithExtent sets the length of the drawn incident and emergent segments.
func WithExtent(extent float64) TraceOption {
	return func(o *traceOptions) {
		if extent > 0 {
			o.extent = extent
		}
	}
}

// TracePrism traces one ray through g for glass index n.
//
// incidenceDeg is measured from the left face's top-left normal. Of the two
// directions making that angle with the normal, the one whose source lies
// further right is used, so the light source sits on the right of the scene.
// The ray enters at the middle of the left face (air n=1), refracts, travels
// to the nearer of the right face and the base, and refracts out again.
func TracePrism(g PrismGeometry, incidenceDeg, n float64, opts ...TraceOption) RayPath {
	o := traceOptions{extent: DefaultRayExtent}
	for _, opt := range opts {
		opt(&o)
	}

	path := RayPath{
		Source:     NoImage(),
		Entry:      NoImage(),
		InsideExit: NoImage(),
		OutEnd:     NoImage(),
		ExitEdge:   EdgeNone,
		State:      NoIntersection,
	}
	if !g.Valid() || !(n > 0) {
		return path
	}

	left := g.Edges[EdgeLeft]
	mid := left.A.Lerp(left.B, 0.5)

	theta := degToRad(incidenceDeg)
	st, ct := math.Sincos(theta)
	nrm, tan := g.LeftNormal, g.Tangents[EdgeLeft]
	i1 := nrm.Mul(-ct).Add(tan.Mul(st)).Normalize()
	i2 := nrm.Mul(-ct).Sub(tan.Mul(st)).Normalize()
	src1 := mid.Sub(i1.Mul(o.extent))
	src2 := mid.Sub(i2.Mul(o.extent))

	dir, src := i2, src2
	if src1.X > src2.X {
		dir, src = i1, src1
	}
	path.Source = src
	path.IncidentDir = dir

	hit, ok := raySegment(src, dir, left)
	if !ok {
		return path
	}
	path.Entry = hit.point

	inside, ok := refract(dir, nrm, 1, n)
	if !ok {
		path.State = TotalInternalReflection
		return path
	}
	path.InternalDir = inside

	exit, exitEdge := rayHit{}, EdgeNone
	for _, e := range [...]Edge{EdgeRight, EdgeBase} {
		h, ok := raySegment(path.Entry, inside, g.Edges[e])
		if ok && (exitEdge == EdgeNone || h.t < exit.t) {
			exit, exitEdge = h, e
		}
	}
	if exitEdge == EdgeNone {
		return path
	}
	path.InsideExit = exit.point
	path.ExitEdge = exitEdge

	// Glass to air; the normal points back into the glass, the incident medium.
	out, ok := refract(inside, g.outwardNormal(exitEdge).Neg(), n, 1)
	if !ok {
		path.State = TotalInternalReflection
		return path
	}
	path.ExitDir = out
	path.OutEnd = path.InsideExit.Add(out.Mul(o.extent))
	path.State = Exited
	return path
}

type rayHit struct {
	t, u  float64
	point Point
}

// raySegment intersects the ray p + t·r (t ≥ 0) with segment s.
// Near-parallel configurations report no hit.
func raySegment(p, r Point, s Segment) (rayHit, bool) {
	e := s.B.Sub(s.A)
	den := r.Cross(e)
	if math.Abs(den) < traceEps {
		return rayHit{}, false
	}
	ap := s.A.Sub(p)
	t := ap.Cross(e) / den
	u := ap.Cross(r) / den
	if t >= traceEps && u >= -traceEps && u <= 1+traceEps {
		return rayHit{t: t, u: u, point: p.Add(r.Mul(t))}, true
	}
	return rayHit{}, false
}

// refract applies Snell's law in vector form going from index n1 to n2.
//
// The normal is flipped as needed so that it points into the incident medium
// (−i·n ≥ 0). The second result is false on total internal reflection.
func refract(i, nrm Point, n1, n2 float64) (Point, bool) {
	i = i.Normalize()
	nrm = nrm.Normalize()
	if -i.Dot(nrm) < 0 {
		nrm = nrm.Neg()
	}

	eta := n1 / n2
	cosi := math.Max(-1, math.Min(1, -i.Dot(nrm)))
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < traceEps {
		return Point{}, false
	}
	t := i.Mul(eta).Add(nrm.Mul(eta*cosi - math.Sqrt(k)))
	return t.Normalize(), true
}

// Prism is the point-transform view of a prism: a point seen through the
// prism at the configured incidence appears shifted toward the apex by
// |x|·tan δ, where δ is the traced deviation. No image is formed when the
// ray does not exit.
type Prism struct {
	ApexDeg      float64
	Index        float64
	IncidenceDeg float64
}

// Kind implements Element.
func (Prism) Kind() Kind { return KindPrism }
func (Prism) element()   {}

func (pr Prism) apparent(p Point) Point {
	if !p.IsValid() {
		return NoImage()
	}
	path := TracePrism(BuildPrism(pr.ApexDeg, 1), pr.IncidenceDeg, pr.Index)
	d := path.Deviation()
	if !isFinite(d) || d >= math.Pi/2 {
		return NoImage()
	}
	return Point{X: p.X, Y: p.Y + math.Abs(p.X)*math.Tan(d)}
}

// SpectralRay is one traced frequency of a dispersion sweep.
type SpectralRay struct {
	FrequencyTHz float64
	Index        float64
	Color        RGBA
	Path         RayPath
}

// Dispersion is the result of tracing white light through a prism.
type Dispersion struct {
	Rays    []SpectralRay // rays that exited, red end first
	AnyTIR  bool          // at least one frequency was totally internally reflected
	Blocked int           // frequencies that did not exit for any reason
}

// TraceSpectrum traces samples frequencies spread evenly over the visible
// band (405–790 THz) through a crown-glass prism. Blocked frequencies are
// counted and flagged rather than failing the sweep.
func TraceSpectrum(g PrismGeometry, incidenceDeg float64, samples int, opts ...TraceOption) Dispersion {
	var d Dispersion
	if samples <= 0 {
		return d
	}
	d.Rays = make([]SpectralRay, 0, samples)
	for i := range samples {
		f := SpectrumMinTHz
		if samples > 1 {
			f += float64(i) / float64(samples-1) * (SpectrumMaxTHz - SpectrumMinTHz)
		}
		n := CrownGlassIndexAt(f)
		path := TracePrism(g, incidenceDeg, n, opts...)
		if path.State != Exited {
			d.Blocked++
			d.AnyTIR = d.AnyTIR || path.TIR()
			continue
		}
		d.Rays = append(d.Rays, SpectralRay{FrequencyTHz: f, Index: n, Color: FrequencyToColor(f), Path: path})
	}
	if d.Blocked > 0 {
		Logger().Debug("prism sweep blocked",
			"apex_deg", g.ApexDeg, "incidence_deg", incidenceDeg,
			"blocked", d.Blocked, "samples", samples, "tir", d.AnyTIR)
	}
	return d
}
