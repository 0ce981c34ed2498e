/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package debugviz renders a page's layout.Tracer output as colored
// rectangle overlays on the rendered page bitmap, for visually inspecting
// what each pipeline stage found. Grounded loosely on
// chinmay-sawant-gopdfsuit's debug-dump command style (cmd/debugfill):
// take a rendered page, overlay a derived artifact, write an image file.
// Uses github.com/anthonynsimon/bild for the compositing and PNG
// encoding instead of hand-rolled pixel loops.
package debugviz

import (
	"image"
	"image/color"
	"io"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/imgio"

	"github.com/unidoc/pdflayout/layout"
	"github.com/unidoc/pdflayout/model"
)

// stageColors assigns each pipeline stage its own outline color so a
// single overlay can show every stage at once.
var stageColors = map[string]color.RGBA{
	"cover":  {R: 255, G: 0, B: 0, A: 255},
	"lines":  {R: 0, G: 160, B: 0, A: 255},
	"blocks": {R: 0, G: 80, B: 255, A: 255},
}

// Recorder is a layout.Tracer that keeps every stage's boxes for later
// rendering.
type Recorder struct {
	stages []stage
}

type stage struct {
	name  string
	boxes []model.BoundingBox
}

// Trace implements layout.Tracer.
func (r *Recorder) Trace(name string, boxes []model.BoundingBox) {
	r.stages = append(r.stages, stage{name: name, boxes: boxes})
}

var _ layout.Tracer = (*Recorder)(nil)

// Render composites the recorded stage boxes as outlines on top of base
// (the page's rendered RGB24 buffer, width x height) and writes the
// result to w as a PNG.
func (r *Recorder) Render(w io.Writer, base []byte, width, height int) error {
	baseImg := &image.RGBA{
		Pix:    expandToRGBA(base, width, height),
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	overlay := image.NewRGBA(image.Rect(0, 0, width, height))
	for _, s := range r.stages {
		col, ok := stageColors[s.name]
		if !ok {
			col = color.RGBA{R: 255, G: 255, B: 0, A: 255}
		}
		for _, b := range s.boxes {
			drawRect(overlay, b, col)
		}
	}

	composited := blend.Normal(baseImg, overlay)
	return imgio.PNGEncoder()(w, composited)
}

// expandToRGBA widens a tightly packed RGB24 buffer to RGBA with full
// opacity, the pixel format image.RGBA requires.
func expandToRGBA(rgb []byte, width, height int) []byte {
	out := make([]byte, width*height*4)
	for i := 0; i < width*height; i++ {
		out[i*4+0] = rgb[i*3+0]
		out[i*4+1] = rgb[i*3+1]
		out[i*4+2] = rgb[i*3+2]
		out[i*4+3] = 255
	}
	return out
}

// drawRect strokes the outline of b onto img in col, one pixel wide.
func drawRect(img *image.RGBA, b model.BoundingBox, col color.RGBA) {
	x0, y0 := int(b.Left()), int(b.Top())
	x1, y1 := int(b.Right()), int(b.Bottom())
	bounds := img.Bounds()

	for x := x0; x <= x1; x++ {
		setPixel(img, bounds, x, y0, col)
		setPixel(img, bounds, x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		setPixel(img, bounds, x0, y, col)
		setPixel(img, bounds, x1, y, col)
	}
}

func setPixel(img *image.RGBA, bounds image.Rectangle, x, y int, col color.RGBA) {
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	img.SetRGBA(x, y, col)
}
