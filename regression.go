package optics

import "fmt"

// Regression is a least-squares line fit y = Slope·x + Intercept.
type Regression struct {
	Slope     float64
	Intercept float64
	RSquared  float64 // squared Pearson correlation
	N         int     // number of samples fitted
}

// Predict evaluates the fitted line at x.
func (r Regression) Predict(x float64) float64 {
	return r.Slope*x + r.Intercept
}

// String formats the fit for tables and logs.
func (r Regression) String() string {
	return fmt.Sprintf("y = %.6g·x + %.6g (R² = %.6f, n = %d)", r.Slope, r.Intercept, r.RSquared, r.N)
}

// LinearRegression fits a line to pts by ordinary least squares, collecting
// Σx, Σy, Σxy, Σx² and Σy² in a single pass. The sums are taken about the
// first sample so that data far from the origin keeps its spread.
//
// With no samples, or when every x is the same, the slope is undefined: the
// zero Regression (with N set) is returned together with ErrDegenerate.
// When every y is the same but x varies, the fit is exact and RSquared is 1.
func LinearRegression(pts []Point) (Regression, error) {
	if len(pts) == 0 {
		return Regression{}, fmt.Errorf("linear regression over 0 samples: %w", ErrDegenerate)
	}

	x0, y0 := pts[0].X, pts[0].Y
	var sx, sy, sxy, sxx, syy float64
	for _, p := range pts {
		dx, dy := p.X-x0, p.Y-y0
		sx += dx
		sy += dy
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}

	n := float64(len(pts))
	varX := n*sxx - sx*sx
	if !(varX > 0) {
		return Regression{N: len(pts)}, fmt.Errorf("linear regression over %d samples: %w", len(pts), ErrDegenerate)
	}

	cov := n*sxy - sx*sy
	slope := cov / varX
	r := Regression{
		Slope:     slope,
		Intercept: y0 + (sy-slope*sx)/n - slope*x0,
		RSquared:  1,
		N:         len(pts),
	}
	if varY := n*syy - sy*sy; varY != 0 {
		r.RSquared = cov * cov / (varX * varY)
	}
	return r, nil
}
