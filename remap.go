package optics

import (
	"fmt"
	"image"
	"math"
	"runtime"

	"golang.org/x/image/draw"

	"github.com/gogpu/optics/internal/parallel"
)

// Rect is an axis-aligned rectangle in world units, given by its center and
// size.
type Rect struct {
	X, Y float64 // center
	W, H float64
}

// Valid reports whether r has a positive finite size and a finite center.
func (r Rect) Valid() bool {
	return r.W > 0 && r.H > 0 && isFinite(r.W) && isFinite(r.H) && isFinite(r.X) && isFinite(r.Y)
}

// RemapStats counts what happened to the sampled source pixels.
type RemapStats struct {
	Sampled     int // source samples considered (one per stride block)
	Mapped      int // drawn into the destination
	Transparent int // skipped for alpha at or below the cutoff
	NoImage     int // the element formed no image
	Clipped     int // imaged entirely outside the destination
}

// bandsPerWorker oversubscribes the pool so work stealing can even out
// bands of unequal cost.
const bandsPerWorker = 4

// Remap draws the image of src seen through e into dst.
//
// src is laid over obj in world space (y up). Each stride×stride block of
// source pixels is sampled at its top-left pixel, mapped through e and
// splatted as a stride-sized block at origin + image·scale, with the y axis
// flipped for the raster. Transparent samples and points with no image are
// skipped. Element transforms run in parallel row bands; splatting happens
// afterwards in source order, so the output does not depend on the number
// of workers.
func Remap(dst *Pixmap, src image.Image, e Element, obj Rect, opts ...RemapOption) (RemapStats, error) {
	var stats RemapStats
	e, ok := Canonical(e)
	switch {
	case dst == nil || src == nil || !ok:
		return stats, fmt.Errorf("remap: nil argument: %w", ErrInvalidParameter)
	case !obj.Valid():
		return stats, fmt.Errorf("remap: object rect %+v: %w", obj, ErrInvalidParameter)
	}

	o := defaultRemapOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.stride < 1 {
		return stats, fmt.Errorf("remap: stride %d: %w", o.stride, ErrInvalidParameter)
	}
	if o.scale == 0 {
		o.scale = float64(min(dst.Width(), dst.Height())) / 4
	}
	if !(o.scale > 0) || !isFinite(o.scale) {
		return stats, fmt.Errorf("remap: scale %g: %w", o.scale, ErrInvalidParameter)
	}
	if !o.hasOrigin {
		o.origin = Pt(float64(dst.Width())/2, float64(dst.Height())/2)
	}
	o.opacity = math.Max(0, math.Min(1, o.opacity))

	pix := sourcePixels(src, o.resampleW, o.resampleH)
	w, h := pix.Rect.Dx(), pix.Rect.Dy()
	if w == 0 || h == 0 {
		return stats, nil
	}

	cols := (w + o.stride - 1) / o.stride
	rows := (h + o.stride - 1) / o.stride
	images := make([]Point, cols*rows)

	mapBand := func(b parallel.Band) {
		for j := b.Y0; j < b.Y1; j += o.stride {
			row := images[(j/o.stride)*cols:]
			py := obj.Y - (float64(j)/float64(h)-0.5)*obj.H
			for i := 0; i < w; i += o.stride {
				if pix.Pix[pix.PixOffset(i, j)+3] <= o.alphaCutoff {
					row[i/o.stride] = NoImage()
					continue
				}
				px := obj.X + (float64(i)/float64(w)-0.5)*obj.W
				row[i/o.stride] = Transform(e, Point{X: px, Y: py})
			}
		}
	}

	workers := o.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var pool *parallel.WorkerPool
	if workers > 1 && rows > 1 {
		pool = parallel.NewWorkerPool(workers)
		defer pool.Close()
	}
	perBand := max(h/(workers*bandsPerWorker), o.stride)
	parallel.ForEachBand(pool, parallel.SplitRows(h, perBand, o.stride), mapBand)

	for j := 0; j < h; j += o.stride {
		for i := 0; i < w; i += o.stride {
			stats.Sampled++
			off := pix.PixOffset(i, j)
			a := pix.Pix[off+3]
			if a <= o.alphaCutoff {
				stats.Transparent++
				continue
			}
			q := images[(j/o.stride)*cols+i/o.stride]
			if !q.IsValid() {
				stats.NoImage++
				continue
			}
			cx := math.Floor(o.origin.X + q.X*o.scale)
			cy := math.Floor(o.origin.Y - q.Y*o.scale)
			if cx+float64(o.stride) <= 0 || cy+float64(o.stride) <= 0 ||
				cx >= float64(dst.Width()) || cy >= float64(dst.Height()) {
				stats.Clipped++
				continue
			}
			c := RGBA{
				R: float64(pix.Pix[off]) / 255,
				G: float64(pix.Pix[off+1]) / 255,
				B: float64(pix.Pix[off+2]) / 255,
				A: float64(a) / 255 * o.opacity,
			}
			dst.FillRect(int(cx), int(cy), o.stride, o.stride, c)
			stats.Mapped++
		}
	}

	Logger().Debug("remap",
		"element", e.Kind().String(),
		"stride", o.stride,
		"workers", workers,
		"sampled", stats.Sampled,
		"mapped", stats.Mapped,
		"transparent", stats.Transparent,
		"no_image", stats.NoImage,
		"clipped", stats.Clipped)
	return stats, nil
}

// sourcePixels returns src as a zero-origin NRGBA image, scaled to w×h with
// bilinear filtering when both are positive.
func sourcePixels(src image.Image, w, h int) *image.NRGBA {
	if w > 0 && h > 0 {
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		return dst
	}
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
