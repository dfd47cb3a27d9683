package diagram

import (
	"image"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/optics"
)

// Canvas draws world-space geometry (y up) onto a pixmap (y down).
// A Canvas reuses one rasterizer and is not safe for concurrent use.
type Canvas struct {
	pm     *optics.Pixmap
	origin optics.Point // pixel position of the world origin
	scale  float64      // pixels per world unit
	raster *vector.Rasterizer
}

// NewCanvas wraps pm with the world origin at pixel origin and the given
// number of pixels per world unit.
func NewCanvas(pm *optics.Pixmap, origin optics.Point, scale float64) *Canvas {
	return &Canvas{
		pm:     pm,
		origin: origin,
		scale:  scale,
		raster: vector.NewRasterizer(pm.Width(), pm.Height()),
	}
}

// ToPixel maps a world point to pixel coordinates.
func (c *Canvas) ToPixel(p optics.Point) optics.Point {
	return optics.Pt(c.origin.X+p.X*c.scale, c.origin.Y-p.Y*c.scale)
}

// fill rasterizes the pixel-space polygon with the non-zero rule. Only the
// polygon's bounding box, clipped to the pixmap, is touched.
func (c *Canvas) fill(poly []optics.Point, col optics.RGBA) {
	if len(poly) < 3 || col.A <= 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range poly {
		if !p.IsValid() {
			return
		}
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	box := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	).Intersect(c.pm.Bounds())
	if box.Empty() {
		return
	}

	// Rasterizer coordinates are relative to box.Min.
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	z := c.raster
	z.Reset(box.Dx(), box.Dy())
	z.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
	for _, p := range poly[1:] {
		z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	z.ClosePath()
	z.Draw(c.pm, box, image.NewUniform(col.Color()), image.Point{})
}

// FillPolygon fills a world-space polygon.
func (c *Canvas) FillPolygon(poly []optics.Point, col optics.RGBA) {
	px := make([]optics.Point, len(poly))
	for i, p := range poly {
		px[i] = c.ToPixel(p)
	}
	c.fill(px, col)
}

// strokeSegment fills the quad covering a pixel-space segment of the given
// pixel width.
func (c *Canvas) strokeSegment(a, b optics.Point, width float64, col optics.RGBA) {
	d := b.Sub(a).Normalize()
	if d == (optics.Point{}) {
		return
	}
	n := d.PerpLeft().Mul(width / 2)
	c.fill([]optics.Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}, col)
}

// Line strokes a world-space segment width pixels wide.
func (c *Canvas) Line(a, b optics.Point, width float64, col optics.RGBA) {
	if !a.IsValid() || !b.IsValid() {
		return
	}
	c.strokeSegment(c.ToPixel(a), c.ToPixel(b), width, col)
}

// Polyline strokes consecutive world-space segments, stopping at the first
// invalid point.
func (c *Canvas) Polyline(pts []optics.Point, width float64, col optics.RGBA) {
	for i := 1; i < len(pts); i++ {
		if !pts[i].IsValid() {
			return
		}
		c.Line(pts[i-1], pts[i], width, col)
	}
}

// Dashed strokes a world-space segment as dashes of dash pixels separated by
// gaps of the same length.
func (c *Canvas) Dashed(a, b optics.Point, width, dash float64, col optics.RGBA) {
	pa, pb := c.ToPixel(a), c.ToPixel(b)
	length := pb.Sub(pa).Length()
	if length == 0 || dash <= 0 {
		return
	}
	for s := 0.0; s < length; s += 2 * dash {
		e := math.Min(s+dash, length)
		c.strokeSegment(pa.Lerp(pb, s/length), pa.Lerp(pb, e/length), width, col)
	}
}

// arcSteps returns how many chords approximate an arc of radius r pixels
// spanning sweep radians to within a quarter pixel.
func arcSteps(r, sweep float64) int {
	if r <= 0 {
		return 1
	}
	step := 2 * math.Acos(math.Max(-1, 1-0.25/r))
	return max(1, int(math.Ceil(math.Abs(sweep)/step)))
}

// Band fills the ring sector between radii r0 and r1 (pixels) around the
// pixel-space center, from angle a0 to a1 in radians measured
// counter-clockwise on screen.
func (c *Canvas) Band(center optics.Point, r0, r1, a0, a1 float64, col optics.RGBA) {
	if r1 <= r0 || r0 < 0 {
		return
	}
	n := arcSteps(r1, a1-a0)
	poly := make([]optics.Point, 0, 2*(n+1))
	for i := 0; i <= n; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		s, co := math.Sincos(a)
		poly = append(poly, optics.Pt(center.X+r1*co, center.Y-r1*s))
	}
	for i := n; i >= 0; i-- {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		s, co := math.Sincos(a)
		poly = append(poly, optics.Pt(center.X+r0*co, center.Y-r0*s))
	}
	c.fill(poly, col)
}

// Arc strokes a world-space circular arc around center with the given world
// radius, from angle a0 to a1 in radians.
func (c *Canvas) Arc(center optics.Point, radius, a0, a1, width float64, col optics.RGBA) {
	r := radius * c.scale
	c.Band(c.ToPixel(center), math.Max(0, r-width/2), r+width/2, a0, a1, col)
}
