package optics

// RemapOption configures Remap.
//
// Example:
//
//	// Every pixel, serial, drawn opaque
//	stats, err := optics.Remap(dst, src, optics.ThinLens{Focal: 0.5}, obj,
//		optics.WithStride(1), optics.WithWorkers(1), optics.WithOpacity(1))
type RemapOption func(*remapOptions)

// remapOptions holds the remapper configuration.
type remapOptions struct {
	stride      int
	workers     int
	scale       float64 // pixels per world unit; 0 means min(w, h)/4
	origin      Point
	hasOrigin   bool
	opacity     float64
	resampleW   int
	resampleH   int
	alphaCutoff uint8
}

// Remapper defaults.
const (
	DefaultStride  = 4
	DefaultOpacity = 0.65
)

// defaultRemapOptions returns the default remap options.
func defaultRemapOptions() remapOptions {
	return remapOptions{
		stride:  DefaultStride,
		opacity: DefaultOpacity,
	}
}

// WithStride sets the pixel skip: one source sample per stride×stride block,
// splatted as a block of the same size. 1 maps every pixel.
func WithStride(n int) RemapOption {
	return func(o *remapOptions) {
		o.stride = n
	}
}

// WithWorkers sets how many goroutines map source rows.
// 0 uses GOMAXPROCS and 1 runs serially on the caller's goroutine.
func WithWorkers(n int) RemapOption {
	return func(o *remapOptions) {
		o.workers = n
	}
}

// WithScale sets the number of destination pixels per world unit.
func WithScale(pixelsPerUnit float64) RemapOption {
	return func(o *remapOptions) {
		o.scale = pixelsPerUnit
	}
}

// WithOrigin places the world origin at destination pixel (x, y).
// By default the origin is the center of the destination.
func WithOrigin(x, y float64) RemapOption {
	return func(o *remapOptions) {
		o.origin = Pt(x, y)
		o.hasOrigin = true
	}
}

// WithOpacity sets the opacity the image is drawn with, in [0, 1].
func WithOpacity(a float64) RemapOption {
	return func(o *remapOptions) {
		o.opacity = a
	}
}

// WithResample scales the source image to w×h with bilinear filtering
// before sampling. It trades detail for speed on large sources.
func WithResample(w, h int) RemapOption {
	return func(o *remapOptions) {
		o.resampleW, o.resampleH = w, h
	}
}

// WithAlphaCutoff skips source pixels whose alpha is at or below cutoff.
// The default 0 skips only fully transparent pixels.
func WithAlphaCutoff(cutoff uint8) RemapOption {
	return func(o *remapOptions) {
		o.alphaCutoff = cutoff
	}
}
