package diagram

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/optics"
)

// Anchor selects which point of a label sits at the requested position.
type Anchor uint8

// Label anchors along the baseline.
const (
	AnchorStart Anchor = iota
	AnchorCenter
	AnchorEnd
)

// DefaultLabelSize is the label font size in pixels.
const DefaultLabelSize = 13

// Labeler draws text labels in Go Regular.
//
// Glyphs are drawn with an x/image opentype face; widths for anchoring come
// from HarfBuzz shaping of the same font. A Labeler is safe for concurrent
// use.
type Labeler struct {
	size  float64
	shape *gtfont.Face

	mu     sync.Mutex // guards shaper and face
	shaper shaping.HarfbuzzShaper
	face   font.Face
}

// NewLabeler loads Go Regular at size pixels.
func NewLabeler(size float64) (*Labeler, error) {
	if size <= 0 {
		size = DefaultLabelSize
	}
	otf, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("diagram: parse label font: %w", err)
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("diagram: label face: %w", err)
	}
	shape, err := gtfont.ParseTTF(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("diagram: parse shaping font: %w", err)
	}
	return &Labeler{size: size, face: face, shape: shape}, nil
}

// Size returns the font size in pixels.
func (l *Labeler) Size() float64 { return l.size }

// Measure returns the shaped advance of text in pixels.
func (l *Labeler) Measure(text string) float64 {
	if text == "" {
		return 0
	}
	runes := []rune(text)
	in := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      l.shape,
		Size:      fixed.Int26_6(l.size * 64),
		Script:    language.LookupScript(runes[0]),
		Language:  language.NewLanguage("en"),
	}

	l.mu.Lock()
	out := l.shaper.Shape(in)
	l.mu.Unlock()
	return float64(out.Advance) / 64
}

// Draw writes text with its anchor point at pixel (x, y) on the baseline.
func (l *Labeler) Draw(pm *optics.Pixmap, text string, x, y float64, anchor Anchor, col optics.RGBA) {
	switch anchor {
	case AnchorCenter:
		x -= l.Measure(text) / 2
	case AnchorEnd:
		x -= l.Measure(text)
	}
	d := font.Drawer{
		Dst:  pm,
		Src:  image.NewUniform(col.Color()),
		Face: l.face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}

	l.mu.Lock()
	d.DrawString(text)
	l.mu.Unlock()
}

var (
	labelerOnce sync.Once
	labeler     *Labeler
	labelerErr  error
)

// sharedLabeler returns the package Labeler at DefaultLabelSize.
func sharedLabeler() (*Labeler, error) {
	labelerOnce.Do(func() {
		labeler, labelerErr = NewLabeler(DefaultLabelSize)
	})
	return labeler, labelerErr
}
