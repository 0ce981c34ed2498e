/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package layout

import (
	"sort"

	"github.com/unidoc/pdflayout/model"
)

// aggregateFigures merges the non-char items that line formation didn't
// absorb into figure blocks: items are merged together while they
// intersect, any merged blob covering more than MaxImageBlobAreaFraction
// of the page is dropped as background rather than a figure. Grounded on
// the figure-blob aggregation in findPageLinesAndFigures and the
// remaining-figures append in getPageBlocks.
func (p *page) aggregateFigures() []*model.DocBlock {
	var boxes []model.BoundingBox
	for _, ref := range p.figures {
		if p.usedFigures[ref] {
			continue
		}
		boxes = append(boxes, p.bbox(ref))
	}
	if len(boxes) == 0 {
		return nil
	}

	merged := mergeWhile(boxes, func(a, b model.BoundingBox) bool {
		return a.HasIntersection(b)
	})

	pageArea := p.size.Area()
	var blocks []*model.DocBlock
	for _, box := range merged {
		if pageArea > 0 && box.Area() > p.tuning.MaxImageBlobAreaFraction*pageArea {
			continue
		}
		blocks = append(blocks, model.NewFigureBlock(box))
	}
	return blocks
}

// classifyArea buckets each block by its coarse page position: the top
// and bottom margin bands are Header/Footer, outside the body width band
// is a sidebar, everything else is Body. This is a SPEC_FULL supplement
// (see SPEC_FULL.md §6): the original source carries an area tag the
// distillation dropped. AreaWatermark is never assigned here -- nothing in
// the item stream distinguishes a watermark from ordinary content.
func (p *page) classifyArea(blocks []*model.DocBlock) {
	if p.size.H <= 0 || p.size.W <= 0 {
		return
	}
	headerBand := 0.12 * p.size.H
	footerBand := 0.88 * p.size.H
	leftBand := 0.08 * p.size.W
	rightBand := 0.92 * p.size.W

	for _, b := range blocks {
		switch {
		case b.Bottom() <= headerBand:
			b.PageArea = model.AreaHeader
		case b.Top() >= footerBand:
			b.PageArea = model.AreaFooter
		case b.Right() <= leftBand:
			b.PageArea = model.AreaLeftSidebar
		case b.Left() >= rightBand:
			b.PageArea = model.AreaRightSidebar
		default:
			b.PageArea = model.AreaBody
		}
	}
}

// sortBlocks orders the page's final block list in reading order (top to
// bottom, breaking ties left to right), matching the order pages are
// emitted in spec.md §6's JSON shape.
func sortBlocks(blocks []*model.DocBlock) {
	sort.SliceStable(blocks, func(i, j int) bool {
		a, b := blocks[i], blocks[j]
		if a.VerticalOverlapRatio(b.BoundingBox) > 0.5 {
			return a.Left() < b.Left()
		}
		return a.Top() < b.Top()
	})
}
