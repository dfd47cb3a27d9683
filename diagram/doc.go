// Package diagram renders optics results as raster images.
//
// Each scene (Sky, PrismScene, ImageScene) draws into an optics.Pixmap using
// golang.org/x/image/vector for filled and stroked shapes and
// golang.org/x/image/font for labels. Label widths come from HarfBuzz
// shaping via github.com/go-text/typesetting so centered text stays centered
// with kerning applied.
//
// Basic usage:
//
//	sky := diagram.Sky{SolarDeg: 20}
//	pm, err := sky.Render(800, 500)
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = pm.SavePNG("rainbow.png")
package diagram
