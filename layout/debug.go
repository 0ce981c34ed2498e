/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package layout

import "github.com/unidoc/pdflayout/model"

// Tracer receives a labelled group of boxes after each pipeline stage
// runs. debugviz uses it to draw stage overlays; anything else can use it
// to log or assert against intermediate output. A nil Tracer is the
// common case and costs nothing.
type Tracer interface {
	Trace(stage string, boxes []model.BoundingBox)
}

// TracerFunc adapts a function to a Tracer.
type TracerFunc func(stage string, boxes []model.BoundingBox)

// Trace calls f.
func (f TracerFunc) Trace(stage string, boxes []model.BoundingBox) { f(stage, boxes) }

func (p *page) trace(tracer Tracer, stage string, boxes []model.BoundingBox) {
	if tracer != nil {
		tracer.Trace(stage, boxes)
	}
}

func lineBoxes(lines []*model.DocLine) []model.BoundingBox {
	boxes := make([]model.BoundingBox, len(lines))
	for i, l := range lines {
		boxes[i] = l.BoundingBox
	}
	return boxes
}

func blockBoxes(blocks []*model.DocBlock) []model.BoundingBox {
	boxes := make([]model.BoundingBox, len(blocks))
	for i, b := range blocks {
		boxes[i] = b.BoundingBox
	}
	return boxes
}
