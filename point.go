package optics

import "math"

// Point represents a 2D point or vector in a local, unit-free optical frame.
//
// Both components are finite, or both are NaN. The all-NaN point is the
// "no image formed" sentinel returned by transforms; see [NoImage].
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// NoImage returns the {NaN, NaN} sentinel.
func NoImage() Point {
	return Point{X: math.NaN(), Y: math.NaN()}
}

// IsValid reports whether both components are finite.
// This is the single cheap check per-pixel loops use to skip a pixel.
func (p Point) IsValid() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Neg returns the negation of the vector.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (p Point) Normalize() Point {
	length := p.Length()
	if length == 0 {
		return Point{}
	}
	return Point{X: p.X / length, Y: p.Y / length}
}

// PerpLeft returns the vector rotated 90° counter-clockwise.
func (p Point) PerpLeft() Point {
	return Point{X: -p.Y, Y: p.X}
}

// PerpRight returns the vector rotated 90° clockwise.
func (p Point) PerpRight() Point {
	return Point{X: p.Y, Y: -p.X}
}

// Lerp performs linear interpolation between two points.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// isFinite returns true if x is neither infinite nor NaN.
func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }
func radToDeg(rad float64) float64 { return rad * 180 / math.Pi }
