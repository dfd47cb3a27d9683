package optics

import (
	"fmt"
	"math"
)

// Fermat's principle on a flat interface. The source sits at height y1 above
// the interface at x = 0 and the target at distance y2 on the other side (or
// the same side, for a mirror) at x = L. Light crosses the interface at the x
// that makes the optical travel time stationary.

// TravelTime returns the time in seconds for light to go from the source to
// the target through the interface point x, in media of index n1 and n2.
func TravelTime(x, l, y1, y2, n1, n2 float64) float64 {
	a := math.Hypot(x, y1)
	b := math.Hypot(l-x, y2)
	return (n1*a + n2*b) / SpeedOfLight
}

// snellResidual is n1·sinθ1 − n2·sinθ2 at interface point x; it vanishes
// where TravelTime is stationary.
func snellResidual(x, l, y1, y2, n1, n2 float64) float64 {
	s1 := x / math.Hypot(x, y1)
	s2 := (l - x) / math.Hypot(l-x, y2)
	return n1*s1 - n2*s2
}

func checkPath(l, y1, y2, n1, n2 float64) error {
	switch {
	case !(l > 0) || !isFinite(l):
		return fmt.Errorf("interface length %g: %w", l, ErrInvalidParameter)
	case !(y1 > 0) || !(y2 > 0) || !isFinite(y1) || !isFinite(y2):
		return fmt.Errorf("heights %g, %g: %w", y1, y2, ErrInvalidParameter)
	case !(n1 > 0) || !(n2 > 0) || !isFinite(n1) || !isFinite(n2):
		return fmt.Errorf("indices %g, %g: %w", n1, n2, ErrInvalidParameter)
	}
	return nil
}

// RefractionPoint finds the crossing point x ∈ [0, L] obeying Snell's law by
// bisection of n1·sinθ1 − n2·sinθ2. The residual is −n2·sinθ2 < 0 at x = 0
// and n1·sinθ1 > 0 at x = L, so a root is always bracketed.
func RefractionPoint(l, y1, y2, n1, n2 float64, opts ...SolverOption) (float64, error) {
	if err := checkPath(l, y1, y2, n1, n2); err != nil {
		return math.NaN(), err
	}
	return FindRoot(func(x float64) float64 {
		return snellResidual(x, l, y1, y2, n1, n2)
	}, 0, l, opts...), nil
}

// ReflectionPoint returns where light from (0, y1) to (L, y2) meets a flat
// mirror: the angle of incidence equals the angle of reflection, so
// x = L·y1/(y1 + y2). Equal heights give L/2.
func ReflectionPoint(l, y1, y2 float64) (float64, error) {
	if err := checkPath(l, y1, y2, 1, 1); err != nil {
		return math.NaN(), err
	}
	return l * y1 / (y1 + y2), nil
}

// TimeSample is one point of a travel-time curve.
type TimeSample struct {
	X       float64 // interface crossing point
	Seconds float64
}

// TimeCurve is travel time sampled across the interface.
type TimeCurve struct {
	Samples []TimeSample
	Min     TimeSample // smallest sampled time
}

// TravelTimeCurve samples TravelTime at steps+1 evenly spaced points of
// [0, L] and records the smallest. Charts use steps = 200.
func TravelTimeCurve(l, y1, y2, n1, n2 float64, steps int) (TimeCurve, error) {
	if err := checkPath(l, y1, y2, n1, n2); err != nil {
		return TimeCurve{}, err
	}
	if steps < 1 {
		return TimeCurve{}, fmt.Errorf("travel time curve with %d steps: %w", steps, ErrInvalidParameter)
	}

	c := TimeCurve{
		Samples: make([]TimeSample, 0, steps+1),
		Min:     TimeSample{Seconds: math.Inf(1)},
	}
	for i := 0; i <= steps; i++ {
		x := float64(i) / float64(steps) * l
		s := TimeSample{X: x, Seconds: TravelTime(x, l, y1, y2, n1, n2)}
		c.Samples = append(c.Samples, s)
		if s.Seconds < c.Min.Seconds {
			c.Min = s
		}
	}
	return c, nil
}
