package diagram

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/optics"
)

var (
	paper      = optics.Hex("#FAFAFA")
	axisColor  = optics.RGBA{R: 0.55, G: 0.55, B: 0.6, A: 1}
	glyphColor = optics.Hex("#1E3A5F")
	focusColor = optics.Hex("#C62828")
)

// elementReach is the half-height in world units of drawn lenses and mirrors.
const elementReach = 1.8

// ImageScene draws an object image and its image through an element.
type ImageScene struct {
	Element optics.Element
	Object  image.Image
	Obj     optics.Rect // object placement in world units

	Scale  float64 // pixels per world unit; zero means min(w, h)/8
	Stride int     // remap stride; zero means optics.DefaultStride
	Labels bool
}

// Render draws the axes, the element, the object and its remapped image into
// a new w×h pixmap.
func (s ImageScene) Render(w, h int) (*optics.Pixmap, optics.RemapStats, error) {
	var stats optics.RemapStats
	if w <= 0 || h <= 0 {
		return nil, stats, fmt.Errorf("diagram: image size %dx%d: %w", w, h, optics.ErrInvalidParameter)
	}
	elem, ok := optics.Canonical(s.Element)
	if !ok || s.Object == nil {
		return nil, stats, fmt.Errorf("diagram: image scene without element or object: %w", optics.ErrInvalidParameter)
	}
	scale := s.Scale
	if scale == 0 {
		scale = float64(min(w, h)) / 8
	}
	stride := s.Stride
	if stride == 0 {
		stride = optics.DefaultStride
	}

	pm := optics.NewPixmap(w, h)
	pm.Clear(paper)
	origin := optics.Pt(float64(w)/2, float64(h)/2)
	cv := NewCanvas(pm, origin, scale)

	reachX := float64(w) / 2 / scale
	reachY := float64(h) / 2 / scale
	cv.Line(optics.Pt(-reachX, 0), optics.Pt(reachX, 0), 1, axisColor)
	cv.Dashed(optics.Pt(0, -reachY), optics.Pt(0, reachY), 1, 4, axisColor)
	drawElement(cv, elem)

	tl := cv.ToPixel(optics.Pt(s.Obj.X-s.Obj.W/2, s.Obj.Y+s.Obj.H/2))
	br := cv.ToPixel(optics.Pt(s.Obj.X+s.Obj.W/2, s.Obj.Y-s.Obj.H/2))
	objRect := image.Rect(int(math.Round(tl.X)), int(math.Round(tl.Y)), int(math.Round(br.X)), int(math.Round(br.Y)))
	if !objRect.Empty() {
		draw.BiLinear.Scale(pm, objRect, s.Object, s.Object.Bounds(), draw.Over, nil)
	}

	stats, err := optics.Remap(pm, s.Object, elem, s.Obj,
		optics.WithScale(scale),
		optics.WithOrigin(origin.X, origin.Y),
		optics.WithStride(stride))
	if err != nil {
		return nil, stats, fmt.Errorf("diagram: %w", err)
	}

	if s.Labels {
		if lb, err := sharedLabeler(); err == nil {
			lb.Draw(pm, elem.Kind().String(), 8, 8+lb.Size(), AnchorStart, glyphColor)
		} else {
			optics.Logger().Warn("image labels disabled", "err", err)
		}
	}
	return pm, stats, nil
}

// drawElement draws a schematic of e at the origin.
func drawElement(cv *Canvas, e optics.Element) {
	switch el := e.(type) {
	case optics.PlaneMirror:
		cv.Line(optics.Pt(0, -elementReach), optics.Pt(0, elementReach), 3, glyphColor)
	case optics.ThinLens:
		cv.Line(optics.Pt(0, -elementReach), optics.Pt(0, elementReach), 2, glyphColor)
		focus(cv, optics.Pt(el.Focal, 0))
		focus(cv, optics.Pt(-el.Focal, 0))
	case optics.ConcaveMirror:
		if el.Radius > 0 {
			a := math.Asin(math.Min(1, elementReach/el.Radius))
			cv.Arc(optics.Pt(el.Radius, 0), el.Radius, math.Pi-a, math.Pi+a, 3, glyphColor)
			focus(cv, optics.Pt(el.Radius/2, 0))
			focus(cv, optics.Pt(el.Radius, 0))
		}
	case optics.ConvexMirror:
		if el.Radius > 0 {
			a := math.Asin(math.Min(1, elementReach/el.Radius))
			cv.Arc(optics.Point{}, el.Radius, -a, a, 3, glyphColor)
		}
	case optics.Prism:
		g := optics.BuildPrism(el.ApexDeg, 1)
		if g.Valid() {
			cv.FillPolygon(g.Outline(), prismGlass.WithAlpha(0.5))
			cv.Polyline(append(g.Outline(), g.BaseLeft), 1.5, glyphColor)
		}
	case optics.AnamorphicArc:
		half := el.ArcDeg / 2 * math.Pi / 180
		inner := el.InnerRatio
		if inner == 0 {
			inner = optics.DefaultInnerRatio
		}
		cv.Arc(optics.Point{}, el.OuterRadius, -half, half, 1.5, glyphColor)
		cv.Arc(optics.Point{}, el.OuterRadius*inner, -half, half, 1.5, glyphColor)
		cv.Arc(optics.Point{}, 1, -math.Pi, math.Pi, 1, axisColor)
	}
}

// focus marks a focal point.
func focus(cv *Canvas, p optics.Point) {
	if !p.IsValid() {
		return
	}
	c := cv.ToPixel(p)
	cv.Band(c, 0, 3, 0, 2*math.Pi, focusColor)
}
