package optics

import (
	"fmt"
	"math"
)

// SpeedOfLight is c in m/s.
const SpeedOfLight = 299792458.0

// BK7 crown glass Sellmeier coefficients (wavelength in µm).
var (
	crownB = [3]float64{1.03961212, 0.231792344, 1.01146945}
	crownC = [3]float64{0.00600069867, 0.0200179144, 103.560653}
)

// CrownGlassIndex returns the refractive index of BK7 crown glass at the
// given wavelength in nm, from the three-term Sellmeier equation.
//
// The result is ≈1.51–1.54 across the visible band. There is no error
// path; the formula is algebraically defined away from its poles even where
// it is physically meaningless (outside roughly 300–2000 nm).
func CrownGlassIndex(wavelengthNM float64) float64 {
	um := wavelengthNM / 1000
	l2 := um * um

	sum := 0.0
	for i := range crownB {
		sum += crownB[i] * l2 / (l2 - crownC[i])
	}
	return math.Sqrt(1 + sum)
}

// WaterIndex returns the refractive index of water at the given frequency
// in THz from the empirical relation (n²−1)^-2 = 1.731 − 0.261·(f/PHz)².
//
// It returns NaN above ≈2575 THz, where the right-hand side is no longer
// positive. Callers sweeping a frequency range must skip NaN results.
func WaterIndex(freqTHz float64) float64 {
	fp := freqTHz / 1000 // PHz
	term := 1.731 - 0.261*fp*fp
	if term <= 0 {
		return math.NaN()
	}
	return math.Sqrt(1 + 1/math.Sqrt(term))
}

// CheckedWaterIndex is WaterIndex with the domain failure reported as
// ErrOutOfDomain.
func CheckedWaterIndex(freqTHz float64) (float64, error) {
	n := WaterIndex(freqTHz)
	if !isFinite(n) {
		return 0, fmt.Errorf("water index at %g THz: %w", freqTHz, ErrOutOfDomain)
	}
	return n, nil
}

// WavelengthNM converts a frequency in THz to a vacuum wavelength in nm.
func WavelengthNM(freqTHz float64) float64 {
	return SpeedOfLight / 1e3 / freqTHz
}

// FrequencyTHz converts a vacuum wavelength in nm to a frequency in THz.
func FrequencyTHz(wavelengthNM float64) float64 {
	return SpeedOfLight / 1e3 / wavelengthNM
}

// CrownGlassIndexAt returns the crown-glass index at a frequency in THz.
func CrownGlassIndexAt(freqTHz float64) float64 {
	return CrownGlassIndex(WavelengthNM(freqTHz))
}

// IndexSample is one point of a dispersion curve.
type IndexSample struct {
	X     float64 // wavelength (nm) or frequency (THz), as sampled
	Index float64
	Color RGBA
}

// CrownGlassCurve samples the crown-glass index every step nm on [from, to].
// Colors are derived from the equivalent frequency.
func CrownGlassCurve(from, to, step float64) []IndexSample {
	if step <= 0 || to < from {
		return nil
	}
	out := make([]IndexSample, 0, int((to-from)/step)+1)
	for i := 0; ; i++ {
		wl := from + float64(i)*step
		if wl > to+step*1e-9 {
			break
		}
		out = append(out, IndexSample{
			X:     wl,
			Index: CrownGlassIndex(wl),
			Color: FrequencyToColor(FrequencyTHz(wl)),
		})
	}
	return out
}

// WaterCurve samples the water index every step THz on [from, to],
// skipping frequencies where the model is undefined.
func WaterCurve(from, to, step float64) []IndexSample {
	if step <= 0 || to < from {
		return nil
	}
	out := make([]IndexSample, 0, int((to-from)/step)+1)
	for i := 0; ; i++ {
		f := from + float64(i)*step
		if f > to+step*1e-9 {
			break
		}
		n := WaterIndex(f)
		if !isFinite(n) {
			continue
		}
		out = append(out, IndexSample{X: f, Index: n, Color: FrequencyToColor(f)})
	}
	return out
}
