package optics

import (
	"math"
	"testing"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func pointsAlmostEqual(p, q Point, epsilon float64) bool {
	return almostEqual(p.X, q.X, epsilon) && almostEqual(p.Y, q.Y, epsilon)
}

func TestPointIsValid(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"origin", Pt(0, 0), true},
		{"finite", Pt(-3.5, 1e9), true},
		{"sentinel", NoImage(), false},
		{"nan x", Pt(math.NaN(), 1), false},
		{"inf y", Pt(1, math.Inf(-1)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.IsValid(); got != tt.want {
				t.Errorf("IsValid(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestPointVectorOps(t *testing.T) {
	a, b := Pt(3, 4), Pt(-1, 2)

	if got := a.Add(b); got != Pt(2, 6) {
		t.Errorf("Add = %v, want (2, 6)", got)
	}
	if got := a.Sub(b); got != Pt(4, 2) {
		t.Errorf("Sub = %v, want (4, 2)", got)
	}
	if got := a.Dot(b); got != 5 {
		t.Errorf("Dot = %v, want 5", got)
	}
	if got := a.Cross(b); got != 10 {
		t.Errorf("Cross = %v, want 10", got)
	}
	if got := a.Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := a.Normalize(); !pointsAlmostEqual(got, Pt(0.6, 0.8), 1e-15) {
		t.Errorf("Normalize = %v, want (0.6, 0.8)", got)
	}
	if got := (Point{}).Normalize(); got != (Point{}) {
		t.Errorf("Normalize(zero) = %v, want zero", got)
	}
	if got := a.PerpLeft(); got != Pt(-4, 3) {
		t.Errorf("PerpLeft = %v, want (-4, 3)", got)
	}
	if got := a.PerpRight(); got != Pt(4, -3) {
		t.Errorf("PerpRight = %v, want (4, -3)", got)
	}
	if got := a.Lerp(b, 0.5); got != Pt(1, 3) {
		t.Errorf("Lerp = %v, want (1, 3)", got)
	}
}
