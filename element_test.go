package optics

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestPlaneMirrorInvolution(t *testing.T) {
	pts := []Point{{0, 0}, {1, 2}, {-3.5, 0.25}, {1e9, -1e-9}}
	for _, p := range pts {
		once := Transform(PlaneMirror{}, p)
		if once != Pt(-p.X, p.Y) {
			t.Errorf("Transform(%v) = %v", p, once)
		}
		if twice := Transform(PlaneMirror{}, once); twice != p {
			t.Errorf("mirror twice of %v = %v", p, twice)
		}
	}
	if Transform(PlaneMirror{}, NoImage()).IsValid() {
		t.Error("NaN input produced a valid image")
	}
}

func TestThinLensRoundTrip(t *testing.T) {
	tests := []struct {
		u, f float64
		real bool
	}{
		{30, 10, true},
		{15, 10, true},
		{5, 10, false},
		{9.99, 10, false},
		{20, -10, false}, // diverging
	}
	for _, tt := range tests {
		img := Transform(ThinLens{Focal: tt.f}, Pt(tt.u, 1))
		if !img.IsValid() {
			t.Fatalf("u=%v f=%v: no image", tt.u, tt.f)
		}
		v := -img.X
		if !almostEqual(1/tt.u+1/v, 1/tt.f, 1e-9) {
			t.Errorf("u=%v f=%v: 1/u + 1/v = %v, want %v", tt.u, tt.f, 1/tt.u+1/v, 1/tt.f)
		}
		if !almostEqual(img.Y, Magnification(tt.u, v), 1e-9) {
			t.Errorf("u=%v f=%v: height %v, want %v", tt.u, tt.f, img.Y, Magnification(tt.u, v))
		}
		if (v > 0) != tt.real {
			t.Errorf("u=%v f=%v: real=%v, want %v", tt.u, tt.f, v > 0, tt.real)
		}
	}
}

func TestThinLensNoImage(t *testing.T) {
	tests := []struct {
		name string
		lens ThinLens
		p    Point
	}{
		{"at focal point", ThinLens{Focal: 10}, Pt(10, 1)},
		{"on the lens", ThinLens{Focal: 10}, Pt(0, 1)},
		{"zero focal", ThinLens{Focal: 0}, Pt(5, 1)},
		{"infinite focal", ThinLens{Focal: math.Inf(1)}, Pt(5, 1)},
		{"virtual filtered", ThinLens{Focal: 10, Filter: RealOnly}, Pt(5, 1)},
		{"real filtered", ThinLens{Focal: 10, Filter: VirtualOnly}, Pt(30, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if img := Transform(tt.lens, tt.p); img.IsValid() {
				t.Errorf("got %v, want no image", img)
			}
		})
	}
}

func TestThinLensFilterKeeps(t *testing.T) {
	if !Transform(ThinLens{Focal: 10, Filter: RealOnly}, Pt(30, 1)).IsValid() {
		t.Error("RealOnly dropped a real image")
	}
	if !Transform(ThinLens{Focal: 10, Filter: VirtualOnly}, Pt(5, 1)).IsValid() {
		t.Error("VirtualOnly dropped a virtual image")
	}
}

func TestConcaveMirrorParaxial(t *testing.T) {
	m := ConcaveMirror{Radius: 1}
	for _, p := range []Point{{2, 0.001}, {3, 0.002}, {0.75, 0.0005}} {
		got := Transform(m, p)
		want := MirrorEquationImage(p, 1)
		if !pointsAlmostEqual(got, want, 1e-5) {
			t.Errorf("Transform(%v) = %v, paraxial %v", p, got, want)
		}
	}
	// On the axis the paraxial image is used directly.
	if got, want := Transform(m, Pt(2, 0)), MirrorEquationImage(Pt(2, 0), 1); got != want {
		t.Errorf("on-axis image %v, want %v", got, want)
	}
}

func TestConcaveMirrorAberration(t *testing.T) {
	// Far from the axis the traced image sits closer to the mirror than the
	// paraxial one.
	got := Transform(ConcaveMirror{Radius: 1}, Pt(3, 0.4))
	if !pointsAlmostEqual(got, Pt(0.539813, -0.092037), 1e-5) {
		t.Errorf("got %v", got)
	}
	if parax := MirrorEquationImage(Pt(3, 0.4), 1); got.X >= parax.X {
		t.Errorf("traced x %v not inside paraxial %v", got.X, parax.X)
	}
}

func TestConcaveMirrorVirtual(t *testing.T) {
	p := Pt(0.3, 0.1) // inside the focal length
	img := Transform(ConcaveMirror{Radius: 1}, p)
	if !pointsAlmostEqual(img, Pt(-0.694987, 0.242141), 1e-5) {
		t.Errorf("got %v", img)
	}
	if Transform(ConcaveMirror{Radius: 1, Filter: RealOnly}, p).IsValid() {
		t.Error("RealOnly kept a virtual image")
	}
	if !Transform(ConcaveMirror{Radius: 1, Filter: VirtualOnly}, p).IsValid() {
		t.Error("VirtualOnly dropped a virtual image")
	}
}

func TestConcaveMirrorNoImage(t *testing.T) {
	m := ConcaveMirror{Radius: 1}
	for _, p := range []Point{{2, 1}, {2, -1.5}, {-1, 0.1}, {0, 0.1}, NoImage()} {
		if img := Transform(m, p); img.IsValid() {
			t.Errorf("Transform(%v) = %v, want no image", p, img)
		}
	}
	if Transform(ConcaveMirror{Radius: 0}, Pt(2, 0.1)).IsValid() {
		t.Error("zero radius formed an image")
	}
	if MirrorEquationImage(Pt(0.5, 0.1), 1).IsValid() {
		t.Error("object at the focal point formed an image")
	}
}

func TestConvexMirror(t *testing.T) {
	m := ConvexMirror{Radius: 1}
	tests := []struct {
		p, want Point
	}{
		{Pt(2, 0.01), Pt(0.666658, 0.003333)},
		{Pt(2, 0.5), Pt(0.646786, 0.161696)},
		{Pt(2, -0.5), Pt(0.646786, -0.161696)},
	}
	for _, tt := range tests {
		got := Transform(m, tt.p)
		if !pointsAlmostEqual(got, tt.want, 1e-5) {
			t.Errorf("Transform(%v) = %v, want %v", tt.p, got, tt.want)
		}
		// The image lies on the line from the center through the object.
		if !almostEqual(got.X*tt.p.Y, got.Y*tt.p.X, 1e-12) {
			t.Errorf("image %v not on the ray through %v", got, tt.p)
		}
	}
	if got := Transform(m, Pt(3, 0)); got != (Point{}) {
		t.Errorf("on-axis image %v, want origin", got)
	}
	for _, p := range []Point{{0, 0.1}, {-1, 0.1}, {2, 1}, {2, -2}} {
		if img := Transform(m, p); img.IsValid() {
			t.Errorf("Transform(%v) = %v, want no image", p, img)
		}
	}
}

func TestAnamorphicArc(t *testing.T) {
	a := AnamorphicArc{OuterRadius: 1, ArcDeg: 180}
	r2 := math.Sqrt2 / 2
	tests := []struct {
		p, want Point
	}{
		{Pt(0, 0), Pt(DefaultInnerRatio, 0)},
		{Pt(1, 0), Pt(1, 0)},
		{Pt(-1, 0), Pt(0, 1)},
		{Pt(0, -1), Pt(r2, -r2)},
		{Pt(0, 1), Pt(r2, r2)},
	}
	for _, tt := range tests {
		if got := Transform(a, tt.p); !pointsAlmostEqual(got, tt.want, 1e-9) {
			t.Errorf("Transform(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	custom := AnamorphicArc{OuterRadius: 2, ArcDeg: 90, InnerRatio: 0.5}
	if got := Transform(custom, Pt(0, 0)); !pointsAlmostEqual(got, Pt(1, 0), 1e-9) {
		t.Errorf("inner radius image = %v, want (1, 0)", got)
	}
	if got := Transform(a, Pt(1, 1)); got.IsValid() {
		t.Errorf("point outside the disc mapped to %v", got)
	}
}

func TestAnamorphicArcRadiusMonotonic(t *testing.T) {
	a := AnamorphicArc{OuterRadius: 3, ArcDeg: 270, InnerRatio: 0.2}
	prev := 0.0
	for rho := 0.0; rho <= 1; rho += 0.05 {
		r := Transform(a, Pt(rho*math.Cos(0.7), rho*math.Sin(0.7))).Length()
		if r < prev {
			t.Fatalf("radius decreased at ρ=%v", rho)
		}
		prev = r
	}
}

func TestPrismElement(t *testing.T) {
	const (
		apex = 60.0
		n    = 1.5
	)
	symmetric := radToDeg(math.Asin(n * math.Sin(degToRad(apex)/2)))
	pr := Prism{ApexDeg: apex, Index: n, IncidenceDeg: symmetric}

	delta := TracePrism(BuildPrism(apex, 1), symmetric, n).Deviation()
	for _, p := range []Point{{2, 1}, {-2, 1}, {0, 3}} {
		want := Pt(p.X, p.Y+math.Abs(p.X)*math.Tan(delta))
		if got := Transform(pr, p); !pointsAlmostEqual(got, want, 1e-12) {
			t.Errorf("Transform(%v) = %v, want %v", p, got, want)
		}
	}

	tir := Prism{ApexDeg: apex, Index: n, IncidenceDeg: 10}
	if got := Transform(tir, Pt(1, 1)); got.IsValid() {
		t.Errorf("TIR prism formed image %v", got)
	}
}

func TestTransformIdempotent(t *testing.T) {
	elements := []Element{
		PlaneMirror{},
		ThinLens{Focal: 0.7},
		ConcaveMirror{Radius: 1.3},
		ConvexMirror{Radius: 1.1},
		Prism{ApexDeg: 60, Index: 1.52, IncidenceDeg: 45},
		AnamorphicArc{OuterRadius: 1, ArcDeg: 200},
	}
	pts := []Point{{0.3, 0.2}, {1.7, -0.4}, {0.7, 0}, {-0.5, 0.5}, {2, 5}}
	for _, e := range elements {
		for _, p := range pts {
			a, b := Transform(e, p), Transform(e, p)
			if math.Float64bits(a.X) != math.Float64bits(b.X) || math.Float64bits(a.Y) != math.Float64bits(b.Y) {
				t.Errorf("%v at %v: %v then %v", e.Kind(), p, a, b)
			}
		}
	}
}

func TestTransformNilElement(t *testing.T) {
	if Transform(nil, Pt(1, 1)).IsValid() {
		t.Error("nil element formed an image")
	}
}

func TestTransformPointerElements(t *testing.T) {
	tests := []struct {
		value, pointer Element
		p              Point
	}{
		{PlaneMirror{}, &PlaneMirror{}, Pt(1, 2)},
		{ThinLens{Focal: 1}, &ThinLens{Focal: 1}, Pt(2, 0.5)},
		{ConcaveMirror{Radius: 3}, &ConcaveMirror{Radius: 3}, Pt(2.5, 0.2)},
		{ConvexMirror{Radius: 1}, &ConvexMirror{Radius: 1}, Pt(2, 0.01)},
		{Prism{ApexDeg: 60, Index: 1.5, IncidenceDeg: 45}, &Prism{ApexDeg: 60, Index: 1.5, IncidenceDeg: 45}, Pt(1, 0.5)},
		{AnamorphicArc{OuterRadius: 2, ArcDeg: 180}, &AnamorphicArc{OuterRadius: 2, ArcDeg: 180}, Pt(0.3, 0.1)},
	}
	for _, tt := range tests {
		t.Run(tt.value.Kind().String(), func(t *testing.T) {
			want := Transform(tt.value, tt.p)
			if !want.IsValid() {
				t.Fatalf("value form formed no image of %v", tt.p)
			}
			if got := Transform(tt.pointer, tt.p); got != want {
				t.Errorf("pointer form = %v, value form = %v", got, want)
			}
			if got, err := Image(tt.pointer, tt.p); err != nil || got != want {
				t.Errorf("Image(pointer) = %v, %v; want %v", got, err, want)
			}
		})
	}
}

func TestTransformNilPointerElement(t *testing.T) {
	var lens *ThinLens
	if Transform(lens, Pt(2, 1)).IsValid() {
		t.Error("nil *ThinLens formed an image")
	}
	if _, err := Image((*ConcaveMirror)(nil), Pt(2.5, 0.2)); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("nil *ConcaveMirror error = %v, want ErrInvalidParameter", err)
	}
	if _, ok := Canonical((*Prism)(nil)); ok {
		t.Error("Canonical accepted a nil *Prism")
	}
}

func TestImage(t *testing.T) {
	img, err := Image(ThinLens{Focal: 10}, Pt(30, 2))
	if err != nil {
		t.Fatal(err)
	}
	if !pointsAlmostEqual(img, Pt(-15, -1), 1e-12) {
		t.Errorf("Image = %v, want (-15, -1)", img)
	}

	_, err = Image(ThinLens{Focal: 10}, Pt(10, 2))
	if !errors.Is(err, ErrNoImage) {
		t.Fatalf("error = %v, want ErrNoImage", err)
	}
	if !strings.Contains(err.Error(), "thin-lens") {
		t.Errorf("error %q does not name the element", err)
	}

	if _, err := Image(nil, Pt(1, 1)); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("nil element error = %v", err)
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindPlaneMirror:   "plane-mirror",
		KindThinLens:      "thin-lens",
		KindConcaveMirror: "concave-mirror",
		KindConvexMirror:  "convex-mirror",
		KindPrism:         "prism",
		KindAnamorphicArc: "anamorphic-arc",
		Kind(42):          "Kind(42)",
	}
	for k, want := range tests {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
	for _, e := range []Element{PlaneMirror{}, ThinLens{}, ConcaveMirror{}, ConvexMirror{}, Prism{}, AnamorphicArc{}} {
		if e.Kind().String() == "" {
			t.Errorf("%T has an empty kind", e)
		}
	}
}

func BenchmarkTransform(b *testing.B) {
	elements := map[string]Element{
		"lens":    ThinLens{Focal: 0.7},
		"concave": ConcaveMirror{Radius: 1.3},
		"convex":  ConvexMirror{Radius: 1.1},
		"arc":     AnamorphicArc{OuterRadius: 1, ArcDeg: 200},
	}
	for name, e := range elements {
		b.Run(name, func(b *testing.B) {
			p := Pt(0.4, 0.3)
			for b.Loop() {
				_ = Transform(e, p)
			}
		})
	}
}
