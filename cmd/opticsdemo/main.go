// Command opticsdemo renders optics diagrams to PNG and prints tables.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"log/slog"
	"math"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/optics"
	"github.com/gogpu/optics/diagram"
)

func main() {
	var (
		scene     = flag.String("scene", "rainbow", "scene: rainbow, prism, mirror or table")
		width     = flag.Int("width", 800, "image width")
		height    = flag.Int("height", 500, "image height")
		output    = flag.String("out", "optics.png", "output file")
		solar     = flag.Float64("solar", 20, "solar elevation in degrees (rainbow)")
		apex      = flag.Float64("apex", 60, "prism apex angle in degrees (prism)")
		incidence = flag.Float64("incidence", 45, "incidence angle in degrees (prism)")
		element   = flag.String("element", "concave", "element: plane, lens, concave, convex, prism or anamorphic (mirror)")
		lang      = flag.String("lang", "en", "BCP 47 language tag for table numbers")
		debug     = flag.Bool("debug", false, "log diagnostics to stderr")
	)
	flag.Parse()

	if *debug {
		optics.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	var (
		pm  *optics.Pixmap
		err error
	)
	switch *scene {
	case "rainbow":
		pm, err = diagram.Sky{SolarDeg: *solar, Labels: true}.Render(*width, *height)
	case "prism":
		var d optics.Dispersion
		pm, d, err = diagram.PrismScene{ApexDeg: *apex, IncidenceDeg: *incidence, Labels: true}.Render(*width, *height)
		if err == nil && d.AnyTIR {
			log.Printf("%d of %d rays totally internally reflected", d.Blocked, diagram.DefaultPrismRays)
		}
	case "mirror":
		pm, err = renderMirror(*element, *width, *height)
	case "table":
		tag, perr := language.Parse(*lang)
		if perr != nil {
			log.Fatalf("Invalid -lang %q: %v", *lang, perr)
		}
		printTables(message.NewPrinter(tag))
		return
	default:
		log.Fatalf("Unknown scene %q", *scene)
	}
	if err != nil {
		log.Fatalf("Failed to render %s: %v", *scene, err)
	}

	if err := pm.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("%s saved to %s (%dx%d)\n", *scene, *output, pm.Width(), pm.Height())
}

// renderMirror draws a quadrant test card seen through the named element.
func renderMirror(name string, w, h int) (*optics.Pixmap, error) {
	var (
		e   optics.Element
		obj optics.Rect
	)
	switch name {
	case "plane":
		e, obj = optics.PlaneMirror{}, optics.Rect{X: 1.5, Y: 0.4, W: 1, H: 1}
	case "lens":
		e, obj = optics.ThinLens{Focal: 1}, optics.Rect{X: 2, Y: 0.5, W: 0.8, H: 0.8}
	case "concave":
		e, obj = optics.ConcaveMirror{Radius: 3}, optics.Rect{X: 2.5, Y: 0.4, W: 0.6, H: 0.6}
	case "convex":
		e, obj = optics.ConvexMirror{Radius: 2}, optics.Rect{X: 1.5, Y: 0.5, W: 0.8, H: 0.8}
	case "prism":
		e, obj = optics.Prism{ApexDeg: 60, Index: 1.52, IncidenceDeg: 45}, optics.Rect{X: 1.5, Y: -0.5, W: 1, H: 1}
	case "anamorphic":
		e, obj = optics.AnamorphicArc{OuterRadius: 2.5, ArcDeg: 180}, optics.Rect{W: 1.4, H: 1.4}
	default:
		return nil, fmt.Errorf("unknown element %q: %w", name, optics.ErrInvalidParameter)
	}
	pm, stats, err := diagram.ImageScene{
		Element: e,
		Object:  testCard(96),
		Obj:     obj,
		Stride:  2,
		Labels:  true,
	}.Render(w, h)
	if err != nil {
		return nil, err
	}
	optics.Logger().Debug("mirror remap",
		"element", name,
		"sampled", stats.Sampled,
		"mapped", stats.Mapped,
		"no_image", stats.NoImage,
		"clipped", stats.Clipped)
	return pm, nil
}

// testCard returns a size×size image with four colored quadrants, so flips
// and inversions are easy to see.
func testCard(size int) image.Image {
	quad := [2][2]color.NRGBA{
		{{R: 230, G: 81, B: 0, A: 255}, {R: 46, G: 125, B: 50, A: 255}},
		{{R: 21, G: 101, B: 192, A: 255}, {R: 249, G: 168, B: 37, A: 255}},
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			img.SetNRGBA(x, y, quad[y*2/size][x*2/size])
		}
	}
	return img
}

func printTables(p *message.Printer) {
	p.Printf("Rainbow in water\n")
	p.Printf("%8s %8s %10s %10s\n", "THz", "n", "primary", "secondary")
	for s := range optics.SampleSpectrum(optics.WaterIndex, optics.WithFrequencyRange(405, 790, 35)) {
		p.Printf("%8.0f %8.5f %9.3f° %9.3f°\n", s.FrequencyTHz, s.Index, s.PrimaryDeg, s.SecondaryDeg)
	}

	p.Printf("\nCrown glass\n")
	p.Printf("%8s %8s\n", "nm", "n")
	for _, s := range optics.CrownGlassCurve(400, 750, 50) {
		p.Printf("%8.0f %8.5f\n", s.X, s.Index)
	}

	p.Printf("\nPrism deviation (apex 60°, n = 1.52)\n")
	g := optics.BuildPrism(60, 1)
	for _, inc := range []float64{30, 40, 48.6, 60, 75} {
		path := optics.TracePrism(g, inc, 1.52)
		if path.State != optics.Exited {
			p.Printf("%8.1f° %s\n", inc, path.State)
			continue
		}
		p.Printf("%8.1f° %9.3f°\n", inc, path.Deviation()*180/math.Pi)
	}

	p.Printf("\nFermat: air to water, 1 m apart, source 1 m up, target 1 m down\n")
	x, err := optics.RefractionPoint(1, 1, 1, 1, 1.333)
	if err != nil {
		p.Printf("no refraction point: %v\n", err)
		return
	}
	p.Printf("crossing at x = %.4f m, travel time %.4g s\n", x, optics.TravelTime(x, 1, 1, 1, 1, 1.333))
}
