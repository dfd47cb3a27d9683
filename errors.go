package optics

import "errors"

// Sentinel errors returned by the checked wrappers.
// Hot-path functions report the same conditions as NaN instead.
var (
	// ErrNoImage is returned when a transform forms no image for a point,
	// e.g. an object exactly at the focal point.
	ErrNoImage = errors.New("optics: no image formed")

	// ErrOutOfDomain is returned when a refractive-index model is undefined
	// for the requested wavelength or frequency.
	ErrOutOfDomain = errors.New("optics: outside model domain")

	// ErrDegenerate is returned by regression when the samples have no
	// spread in x (or there are no samples at all).
	ErrDegenerate = errors.New("optics: degenerate sample set")

	// ErrNoBracket is returned by Bisect when f does not change sign
	// across the interval.
	ErrNoBracket = errors.New("optics: root not bracketed")

	// ErrTotalInternalReflection is returned when a ray cannot leave a medium.
	ErrTotalInternalReflection = errors.New("optics: total internal reflection")

	// ErrNoIntersection is returned when a traced ray misses every edge.
	ErrNoIntersection = errors.New("optics: ray has no exit intersection")

	// ErrInvalidParameter is returned for non-physical configuration
	// such as a zero focal length or a non-positive stride.
	ErrInvalidParameter = errors.New("optics: invalid parameter")
)
