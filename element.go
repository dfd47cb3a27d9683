package optics

import "fmt"

// Kind identifies the optical element variant.
type Kind uint8

// Element kinds.
const (
	KindPlaneMirror Kind = iota
	KindThinLens
	KindConcaveMirror
	KindConvexMirror
	KindPrism
	KindAnamorphicArc
)

var kindNames = [...]string{
	KindPlaneMirror:   "plane-mirror",
	KindThinLens:      "thin-lens",
	KindConcaveMirror: "concave-mirror",
	KindConvexMirror:  "convex-mirror",
	KindPrism:         "prism",
	KindAnamorphicArc: "anamorphic-arc",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Element is a single optical element that maps object-space points to
// image-space points.
//
// The set of elements is closed: PlaneMirror, ThinLens, ConcaveMirror,
// ConvexMirror, Prism and AnamorphicArc. Pointers to them are accepted too
// and behave like the values they point to. Use [Transform] to apply one.
type Element interface {
	Kind() Kind
	element()
}

// ImageFilter restricts which images a lens or mirror reports.
// The zero value reports every image.
type ImageFilter uint8

const (
	// AnyImage reports real and virtual images.
	AnyImage ImageFilter = iota
	// RealOnly reports only real images; virtual ones become NaN.
	RealOnly
	// VirtualOnly reports only virtual images; real ones become NaN.
	VirtualOnly
)

func (f ImageFilter) keep(real bool) bool {
	switch f {
	case RealOnly:
		return real
	case VirtualOnly:
		return !real
	default:
		return true
	}
}

// Transform maps p through e.
//
// The result is {NaN, NaN} wherever e forms no image of p. Transform never
// panics, so it is safe to call once per source pixel.
// Calling it twice with the same arguments yields bit-identical results.
func Transform(e Element, p Point) Point {
	e, ok := Canonical(e)
	if !ok {
		return NoImage()
	}
	switch e := e.(type) {
	case PlaneMirror:
		return planeMirror(p)
	case ThinLens:
		return thinLens(p, e.Focal, e.Filter)
	case ConcaveMirror:
		return concaveMirror(p, e.Radius, e.Filter)
	case ConvexMirror:
		return convexMirror(p, e.Radius)
	case Prism:
		return e.apparent(p)
	case AnamorphicArc:
		return discToArc(p, e.OuterRadius, e.ArcDeg, e.InnerRatio)
	}
	return NoImage()
}

// Image is the checked form of Transform for call sites outside pixel loops.
// It returns ErrNoImage (wrapped with the element kind and the point) when
// no image is formed.
func Image(e Element, p Point) (Point, error) {
	e, ok := Canonical(e)
	if !ok {
		return NoImage(), fmt.Errorf("nil element: %w", ErrInvalidParameter)
	}
	q := Transform(e, p)
	if !q.IsValid() {
		return q, fmt.Errorf("%s at (%g, %g): %w", e.Kind(), p.X, p.Y, ErrNoImage)
	}
	return q, nil
}

// Canonical returns the value form of e, dereferencing pointer variants such
// as *ThinLens. ok is false for a nil element or a nil pointer.
func Canonical(e Element) (Element, bool) {
	switch v := e.(type) {
	case nil:
		return nil, false
	case *PlaneMirror:
		return deref(v)
	case *ThinLens:
		return deref(v)
	case *ConcaveMirror:
		return deref(v)
	case *ConvexMirror:
		return deref(v)
	case *Prism:
		return deref(v)
	case *AnamorphicArc:
		return deref(v)
	}
	return e, true
}

func deref[T Element](p *T) (Element, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}
