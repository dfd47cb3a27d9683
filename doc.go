// Package optics provides the numerical core of an educational optics
// visualization suite: refraction, thin lenses, spherical mirrors, prisms
// and rainbows.
//
// # Overview
//
// Every function in this package is a pure computation. Apart from the
// memo table inside [RainbowSampler] nothing holds state between calls, so
// results may be cached or computed from many goroutines at once. Callers supply slider-style parameters (lengths in
// meters, angles in degrees, frequencies in THz, wavelengths in nm) and
// receive points, angles or small result records that a chart, SVG or
// canvas renderer can draw.
//
// # Quick Start
//
//	import "github.com/gogpu/optics"
//
//	// Refractive index of water at 550 THz
//	n := optics.WaterIndex(550)
//
//	// Where does the primary rainbow sit?
//	sol, err := optics.FindMinima(n)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("primary bow at %.2f°\n", sol.Primary.ElevationDeg)
//
//	// Image of a point through a converging lens
//	img := optics.Transform(optics.ThinLens{Focal: 1}, optics.Pt(1.5, 0.5))
//
// # Undefined Results
//
// Per-pixel transforms run tens of thousands of times per frame, so they
// never return errors. A point with no image is reported as
// {NaN, NaN}; use [Point.IsValid] to filter it. Outside hot loops prefer
// the checked wrappers ([Image], [CheckedWaterIndex], [LinearRegression])
// which return sentinel errors such as [ErrNoImage].
//
// # Components
//
//   - Refractive index models: [CrownGlassIndex], [WaterIndex], [FrequencyToColor]
//   - Root finding: [FindRoot], [Bisect], [Minimize], [SolveQuadratic]
//   - Point transforms: [Element], [Transform], [Image]
//   - Prism tracing: [BuildPrism], [TracePrism], [TraceSpectrum]
//   - Rainbows: [Deviation], [Elevation], [FindMinima], [SampleSpectrum]
//   - Fermat's principle: [TravelTime], [RefractionPoint], [ReflectionPoint]
//   - Lens-equation fitting: [LinearRegression], [FocalLengthFromSamples]
//   - Image viewers: [Remap], [Pixmap]
//
// # Coordinate System
//
// Optical frames are y-up with the element at the origin and the object on
// the +x side. The remapper converts to y-down pixel space at the very end.
//
// Package diagram renders rainbow skies, prism dispersion and remapped
// images on top of this package; cmd/opticsdemo writes them to PNG.
package optics

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
