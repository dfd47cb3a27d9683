package optics

import "math"

// Numerical kernels shared by the transforms, the Fermat path solvers and
// the rainbow solver. All of them are iteration capped and never block.

// Default solver settings.
const (
	// DefaultRootTolerance is the bisection half-width at which FindRoot stops.
	DefaultRootTolerance = 1e-12

	// DefaultRootMaxIter caps bisection iterations.
	DefaultRootMaxIter = 100

	// DefaultMinTolerance is the bracket width at which Minimize stops.
	DefaultMinTolerance = 1e-8

	// DefaultMinMaxIter caps golden-section iterations.
	DefaultMinMaxIter = 120
)

// invPhi2 is 1 - 1/φ, the golden-section interior point fraction.
var invPhi2 = 1 - 2/(1+math.Sqrt(5))

// SolverOption configures FindRoot, Bisect and Minimize.
type SolverOption func(*solverOptions)

type solverOptions struct {
	tol     float64
	maxIter int
}

// WithTolerance sets the convergence tolerance. Non-positive values are ignored.
func WithTolerance(tol float64) SolverOption {
	return func(o *solverOptions) {
		if tol > 0 {
			o.tol = tol
		}
	}
}

// WithMaxIter sets the iteration cap. Non-positive values are ignored.
func WithMaxIter(n int) SolverOption {
	return func(o *solverOptions) {
		if n > 0 {
			o.maxIter = n
		}
	}
}

func applySolverOptions(tol float64, maxIter int, opts []SolverOption) solverOptions {
	o := solverOptions{tol: tol, maxIter: maxIter}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// sanitize maps NaN and ±Inf to +Inf so searches route away from
// infeasible regions (e.g. an impossible Snell's-law evaluation).
func sanitize(v float64) float64 {
	if !isFinite(v) {
		return math.Inf(1)
	}
	return v
}

// FindRoot locates a zero of f on [low, high] by bisection.
//
// A sign change across the interval is assumed, not checked; each step keeps
// the half whose sign differs from f(low). The search stops when the interval
// half-width drops below the tolerance or the iteration cap is reached, and
// the last midpoint is returned either way. Use [Bisect] to have the bracket
// verified.
func FindRoot(f func(float64) float64, low, high float64, opts ...SolverOption) float64 {
	o := applySolverOptions(DefaultRootTolerance, DefaultRootMaxIter, opts)

	mid := (low + high) / 2
	for range o.maxIter {
		mid = (low + high) / 2
		lowVal := sanitize(f(low))
		midVal := sanitize(f(mid))

		if lowVal*midVal > 0 {
			low = mid
		} else {
			high = mid
		}
		if (high-low)/2 < o.tol {
			break
		}
	}
	return mid
}

// Bisect is FindRoot with the bracket checked first.
// It returns ErrNoBracket when f(low) and f(high) share a strict sign.
func Bisect(f func(float64) float64, low, high float64, opts ...SolverOption) (float64, error) {
	fl, fh := f(low), f(high)
	if !isFinite(fl) || !isFinite(fh) || fl*fh > 0 {
		return math.NaN(), ErrNoBracket
	}
	if fl == 0 {
		return low, nil
	}
	if fh == 0 {
		return high, nil
	}
	return FindRoot(f, low, high, opts...), nil
}

// MinResult is the outcome of a one-dimensional minimization.
type MinResult struct {
	X  float64 // abscissa of the minimum
	FX float64 // f(X)
}

// Minimize finds a minimum of a unimodal f on [a, b] by golden-section search.
//
// No derivatives are needed. Non-finite values of f count as +Inf, so the
// bracket shrinks away from infeasible regions. The midpoint of the final
// bracket is returned together with f evaluated there.
func Minimize(f func(float64) float64, a, b float64, opts ...SolverOption) MinResult {
	o := applySolverOptions(DefaultMinTolerance, DefaultMinMaxIter, opts)
	g := func(x float64) float64 { return sanitize(f(x)) }

	x1 := a + invPhi2*(b-a)
	x2 := b - invPhi2*(b-a)
	f1, f2 := g(x1), g(x2)

	for iter := 0; math.Abs(b-a) > o.tol && iter < o.maxIter; iter++ {
		if f1 > f2 {
			a = x1
			x1, f1 = x2, f2
			x2 = b - invPhi2*(b-a)
			f2 = g(x2)
		} else {
			b = x2
			x2, f2 = x1, f1
			x1 = a + invPhi2*(b-a)
			f1 = g(x1)
		}
	}

	x := (a + b) / 2
	return MinResult{X: x, FX: f(x)}
}

// SolveQuadratic finds real roots of ax^2 + bx + c = 0, sorted ascending.
//
// The function is numerically robust:
//   - If a is zero or nearly zero, it solves the linear equation
//   - Cancellation is avoided with the copysign form of the quadratic formula
//   - A negative discriminant yields nil
//
// The mirror ray tracer uses it for ray/circle intersection.
func SolveQuadratic(a, b, c float64) []float64 {
	sc0 := c / a
	sc1 := b / a
	if !isFinite(sc0) || !isFinite(sc1) {
		return solveLinear(b, c)
	}

	disc := sc1*sc1 - 4.0*sc0
	switch {
	case !isFinite(disc):
		// Discriminant overflow: take x^2 + sc1*x ≈ 0 for the large root.
		return sortedPair(-sc1, sc0/-sc1)
	case disc < 0:
		return nil
	case disc == 0:
		return []float64{-0.5 * sc1}
	}

	root1 := -0.5 * (sc1 + math.Copysign(math.Sqrt(disc), sc1))
	return sortedPair(root1, sc0/root1)
}

func sortedPair(r1, r2 float64) []float64 {
	if !isFinite(r2) {
		return []float64{r1}
	}
	if r1 > r2 {
		return []float64{r2, r1}
	}
	return []float64{r1, r2}
}

// solveLinear handles the degenerate a ≈ 0 case of SolveQuadratic.
func solveLinear(b, c float64) []float64 {
	if root := -c / b; isFinite(root) {
		return []float64{root}
	}
	if c == 0 && b == 0 {
		return []float64{0}
	}
	return nil
}
