package optics

import (
	"fmt"
	"iter"
	"math"

	"github.com/gogpu/optics/internal/memo"
)

// Rainbow geometry after Descartes: a ray enters a spherical drop at
// incidence θ, refracts to φ = asin(sin θ / n), reflects k times inside and
// leaves. The total deviation is D₁ = π + 2θ − 4φ for the primary bow (k=1)
// and D₂ = 2π + 2θ − 6φ for the secondary (k=2). Light piles up at the
// minimum of D, which fixes the bow's angular radius around the anti-solar
// point.

// BowOrder selects the primary or secondary bow.
type BowOrder uint8

// Bow orders.
const (
	Primary BowOrder = iota + 1
	Secondary
)

func (o BowOrder) String() string {
	switch o {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	}
	return fmt.Sprintf("BowOrder(%d)", o)
}

// internalReflections returns k, the number of reflections inside the drop.
func (o BowOrder) internalReflections() int {
	return int(o)
}

const (
	rainbowLow  = 1e-6
	rainbowHigh = math.Pi/2 - 1e-6

	// BowVisibilityTolerance is the margin in degrees a bow must clear the
	// horizon by to count as visible.
	BowVisibilityTolerance = 0.1
)

// refractionAngle returns φ = asin(sin θ / n), or NaN when |sin θ / n| > 1.
func refractionAngle(theta, n float64) float64 {
	s := math.Sin(theta) / n
	if !(math.Abs(s) <= 1) {
		return math.NaN()
	}
	return math.Asin(s)
}

// Deviation returns the total deviation in radians of a ray entering a drop
// of index n at incidence theta (radians). It is +Inf where no refraction
// angle exists, so minimizers steer away from those angles.
func Deviation(theta, n float64, order BowOrder) float64 {
	phi := refractionAngle(theta, n)
	if math.IsNaN(phi) {
		return math.Inf(1)
	}
	k := float64(order.internalReflections())
	d := k*math.Pi + 2*theta - 2*(k+1)*phi
	if !isFinite(d) {
		return math.Inf(1)
	}
	return d
}

// Elevation returns the angular distance in radians from the anti-solar point
// at which a ray of incidence theta is seen: π − D for the primary bow and
// D − π for the secondary, so both bows have a positive radius. It is +Inf
// where Deviation is.
func Elevation(theta, n float64, order BowOrder) float64 {
	d := Deviation(theta, n, order)
	if math.IsInf(d, 0) {
		return d
	}
	if order == Secondary {
		return d - math.Pi
	}
	return math.Pi - d
}

// MinimumDeviation locates the incidence angle in (0, π/2) that minimizes the
// deviation by golden-section search. Unlike the closed form it cannot fail
// on a negative radicand; for n ≤ 1 the result has FX = +Inf.
func MinimumDeviation(n float64, order BowOrder, opts ...SolverOption) MinResult {
	return Minimize(func(theta float64) float64 {
		return Deviation(theta, n, order)
	}, rainbowLow, rainbowHigh, opts...)
}

// ClosedFormMinimum returns the incidence angle of minimum deviation from the
// stationary condition cos²θ = (n² − 1)/(k² + 2k), where k is the number of
// internal reflections. ok is false when the right-hand side lies outside
// (0, 1].
func ClosedFormMinimum(n float64, order BowOrder) (theta float64, ok bool) {
	k := float64(order.internalReflections())
	c2 := (n*n - 1) / (k*k + 2*k)
	if !(c2 > 0 && c2 <= 1) {
		return math.NaN(), false
	}
	return math.Acos(math.Sqrt(c2)), true
}

// CriticalAngle returns asin(1/n) in radians, the water-to-air angle beyond
// which light is totally internally reflected. NaN for n < 1.
func CriticalAngle(n float64) float64 {
	if !(n >= 1) {
		return math.NaN()
	}
	return math.Asin(1 / n)
}

// BowSolution describes one bow at minimum deviation. Angles are in degrees.
type BowSolution struct {
	ThetaDeg     float64 // incidence on the drop
	PhiDeg       float64 // refraction angle inside the drop
	DeviationDeg float64

	// ElevationDeg is the angular radius about the anti-solar point. It is
	// 180° − DeviationDeg for the primary bow but DeviationDeg − 180° for the
	// secondary, whose deviation exceeds 180°, so both radii come out positive.
	ElevationDeg float64
}

// RainbowSolution holds both bows for one refractive index.
type RainbowSolution struct {
	Index       float64
	Primary     BowSolution
	Secondary   BowSolution
	CriticalDeg float64
}

// Bow returns the solution for the given order.
func (s RainbowSolution) Bow(order BowOrder) BowSolution {
	if order == Secondary {
		return s.Secondary
	}
	return s.Primary
}

func solveBow(n float64, order BowOrder) BowSolution {
	m := MinimumDeviation(n, order)
	return BowSolution{
		ThetaDeg:     radToDeg(m.X),
		PhiDeg:       radToDeg(refractionAngle(m.X, n)),
		DeviationDeg: radToDeg(m.FX),
		ElevationDeg: radToDeg(Elevation(m.X, n, order)),
	}
}

// FindMinima solves both bows for index n by golden-section search.
// It returns ErrOutOfDomain for n ≤ 1 or non-finite n, where no bow forms.
func FindMinima(n float64) (RainbowSolution, error) {
	if !(n > 1) || !isFinite(n) {
		return RainbowSolution{Index: n}, fmt.Errorf("rainbow for index %g: %w", n, ErrOutOfDomain)
	}
	return RainbowSolution{
		Index:       n,
		Primary:     solveBow(n, Primary),
		Secondary:   solveBow(n, Secondary),
		CriticalDeg: radToDeg(CriticalAngle(n)),
	}, nil
}

// BowVisible reports whether a bow of the given elevation clears the horizon
// for a sun at solarDeg above it. All angles are in degrees.
func BowVisible(elevationDeg, solarDeg float64) bool {
	return elevationDeg-solarDeg > BowVisibilityTolerance
}

// RainbowSample is one frequency of a spectrum sweep.
type RainbowSample struct {
	FrequencyTHz float64
	Index        float64
	PrimaryDeg   float64 // primary elevation
	SecondaryDeg float64 // secondary elevation
	Color        RGBA
}

// SpectrumOption configures spectrum sweeps.
type SpectrumOption func(*spectrumOptions)

type spectrumOptions struct {
	start, end, step float64
}

func defaultSpectrumOptions() spectrumOptions {
	return spectrumOptions{start: SpectrumMinTHz, end: SpectrumMaxTHz, step: 5}
}

// WithFrequencyRange sets the swept frequencies in THz, start to end
// inclusive. Non-positive steps are ignored.
func WithFrequencyRange(start, end, step float64) SpectrumOption {
	return func(o *spectrumOptions) {
		if step > 0 && end >= start {
			o.start, o.end, o.step = start, end, step
		}
	}
}

// frequencies yields start, start+step, ... up to end. The count is fixed up
// front so accumulated rounding never drops the last sample.
func (o spectrumOptions) frequencies() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		count := int(math.Floor((o.end-o.start)/o.step+1e-9)) + 1
		for i := range count {
			if !yield(o.start + float64(i)*o.step) {
				return
			}
		}
	}
}

// SampleSpectrum lazily solves the rainbow for each swept frequency, using
// indexFn to turn a frequency in THz into a refractive index. Frequencies
// where indexFn is undefined (NaN or ≤ 1) are skipped. The default sweep is
// 405–790 THz in 5 THz steps.
func SampleSpectrum(indexFn func(freqTHz float64) float64, opts ...SpectrumOption) iter.Seq[RainbowSample] {
	o := defaultSpectrumOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return func(yield func(RainbowSample) bool) {
		skipped := 0
		defer func() {
			if skipped > 0 {
				Logger().Debug("rainbow samples skipped", "skipped", skipped,
					"start_thz", o.start, "end_thz", o.end)
			}
		}()
		for f := range o.frequencies() {
			sol, err := FindMinima(indexFn(f))
			if err != nil {
				skipped++
				continue
			}
			if !yield(sampleFrom(f, sol)) {
				return
			}
		}
	}
}

func sampleFrom(f float64, sol RainbowSolution) RainbowSample {
	return RainbowSample{
		FrequencyTHz: f,
		Index:        sol.Index,
		PrimaryDeg:   sol.Primary.ElevationDeg,
		SecondaryDeg: sol.Secondary.ElevationDeg,
		Color:        FrequencyToColor(f),
	}
}

// RainbowSampler solves rainbows for a fixed index model and remembers the
// results per frequency. Interactive renderers redraw the same sweep on every
// frame. A RainbowSampler is safe for concurrent use.
type RainbowSampler struct {
	indexFn func(float64) float64
	table   *memo.Table[RainbowSolution]
}

// NewRainbowSampler returns a sampler over indexFn, which maps THz to n.
func NewRainbowSampler(indexFn func(freqTHz float64) float64) *RainbowSampler {
	return &RainbowSampler{indexFn: indexFn, table: memo.New[RainbowSolution](0)}
}

// Solve returns the rainbow at frequency f in THz.
func (s *RainbowSampler) Solve(f float64) (RainbowSolution, error) {
	sol := s.table.Do(f, func(f float64) RainbowSolution {
		sol, _ := FindMinima(s.indexFn(f))
		return sol
	})
	if !(sol.Index > 1) || !isFinite(sol.Index) {
		return sol, fmt.Errorf("rainbow at %g THz: %w", f, ErrOutOfDomain)
	}
	return sol, nil
}

// Samples is the memoized form of SampleSpectrum.
func (s *RainbowSampler) Samples(opts ...SpectrumOption) iter.Seq[RainbowSample] {
	o := defaultSpectrumOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return func(yield func(RainbowSample) bool) {
		for f := range o.frequencies() {
			sol, err := s.Solve(f)
			if err != nil {
				continue
			}
			if !yield(sampleFrom(f, sol)) {
				return
			}
		}
	}
}

// CacheStats reports memo table hits and misses.
func (s *RainbowSampler) CacheStats() memo.Stats {
	return s.table.Stats()
}

// ElevationSample is one point of an elevation-versus-incidence curve.
type ElevationSample struct {
	ThetaDeg     float64
	ElevationDeg float64
}

// ElevationCurve samples the elevation of the given bow at samples incidence
// angles spread over [0°, 90°]. Angles with no refraction are omitted.
func ElevationCurve(n float64, order BowOrder, samples int) []ElevationSample {
	if samples < 2 {
		return nil
	}
	out := make([]ElevationSample, 0, samples)
	for i := range samples {
		theta := float64(i) / float64(samples-1) * math.Pi / 2
		e := Elevation(theta, n, order)
		if math.IsInf(e, 0) || math.IsNaN(e) {
			continue
		}
		out = append(out, ElevationSample{ThetaDeg: radToDeg(theta), ElevationDeg: radToDeg(e)})
	}
	return out
}
