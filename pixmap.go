package optics

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Pixmap is a rectangular non-premultiplied RGBA pixel buffer.
//
// It implements draw.Image, so it can be the target of x/image/draw scalers
// and x/image/vector rasterizers as well as Remap.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA, 4 bytes per pixel, not premultiplied
}

// NewPixmap creates a transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	width, height = max(width, 0), max(height, 0)
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data.
func (p *Pixmap) Data() []uint8 {
	return p.data
}

func (p *Pixmap) offset(x, y int) (int, bool) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0, false
	}
	return (y*p.width + x) * 4, true
}

// SetPixel sets the color of a single pixel. Out-of-bounds writes are ignored.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	i, ok := p.offset(x, y)
	if !ok {
		return
	}
	p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3] = c.Bytes()
}

// GetPixel returns the color of a single pixel, or Transparent out of bounds.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	i, ok := p.offset(x, y)
	if !ok {
		return Transparent
	}
	return RGBA{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}
}

// BlendPixel composites c over the pixel with the source-over operator.
func (p *Pixmap) BlendPixel(x, y int, c RGBA) {
	i, ok := p.offset(x, y)
	if !ok || c.A <= 0 {
		return
	}
	if c.A >= 1 {
		p.SetPixel(x, y, c)
		return
	}
	dst := p.GetPixel(x, y)
	a := c.A + dst.A*(1-c.A)
	if a <= 0 {
		return
	}
	blend := func(s, d float64) float64 {
		return (s*c.A + d*dst.A*(1-c.A)) / a
	}
	out := RGBA{R: blend(c.R, dst.R), G: blend(c.G, dst.G), B: blend(c.B, dst.B), A: a}
	p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3] = out.Bytes()
}

// FillRect blends c over the w×h block at (x, y), clipped to the pixmap.
func (p *Pixmap) FillRect(x, y, w, h int, c RGBA) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, p.width), min(y+h, p.height)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			p.BlendPixel(px, py, c)
		}
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	r, g, b, a := c.Bytes()
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// ToImage copies the pixmap into an image.NRGBA.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())
	for y := 0; y < pm.height; y++ {
		for x := 0; x < pm.width; x++ {
			pm.Set(x, y, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return pm
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, p.ToImage()); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	i, ok := p.offset(x, y)
	if !ok {
		return color.NRGBA{}
	}
	return color.NRGBA{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Set implements the draw.Image interface.
func (p *Pixmap) Set(x, y int, c color.Color) {
	i, ok := p.offset(x, y)
	if !ok {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3] = n.R, n.G, n.B, n.A
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
