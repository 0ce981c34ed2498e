/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package layout

import (
	"sort"

	"github.com/unidoc/pdflayout/model"

	"github.com/unidoc/pdflayout/common"
)

// findBlocks groups lines into DocBlocks: a bottom/top neighbour map
// chains lines into paragraphs top to bottom, a page-number line is
// detected and pulled out as its own block, reference-number lines are
// merged into the block they introduce, blocks fully contained in another
// are absorbed, and finally any blocks left overlapping are resolved by
// re-bucketing their lines into horizontal strips. Grounded on
// findTextBlocks in the original source.
func (p *page) findBlocks(lines []*model.DocLine) []*model.DocBlock {
	if len(lines) == 0 {
		return nil
	}

	pageNumberLine, body := p.extractPageNumberLine(lines)
	bottom := p.bottomNeighbours(body)
	used := make([]bool, len(body))

	var blocks []*model.DocBlock
	for {
		first := -1
		for i := range body {
			if !used[i] {
				first = i
				break
			}
		}
		if first == -1 {
			break
		}

		absorbed := false
		for _, blk := range blocks {
			if blk.Kind == model.TextBlock && blk.Contains(body[first].BoundingBox) {
				blk.BoundingBox = blk.Union(body[first].BoundingBox)
				blk.Text.Lines = append(blk.Text.Lines, *body[first])
				used[first] = true
				absorbed = true
				break
			}
		}
		if absorbed {
			continue
		}

		seed := p.reseedOnBand(body, used, first)
		blocks = append(blocks, p.walkBlockChain(seed, body, bottom, used))
	}

	if pageNumberLine != nil {
		blocks = append(blocks, model.NewTextBlock(*pageNumberLine))
	}

	blocks = p.mergeReferenceNumberBlocks(blocks)
	blocks = p.mergeContainedBlocks(blocks)
	blocks = p.resolveOverlappingBlocks(blocks)

	sort.SliceStable(blocks, func(i, j int) bool {
		return model.T2B(blocks[i], blocks[j])
	})
	return blocks
}

// reseedOnBand implements spec.md §4.6 chaining step 2: among the lines
// that share vertical overlap with lines[anchor] (its horizontal band),
// pick the left-most one that is still unused. anchor itself is a member
// of that set, so it is returned unchanged if nothing further left
// qualifies. Grounded on findTextBlocks's OtherLine scan sorted L2R.
func (p *page) reseedOnBand(lines []*model.DocLine, used []bool, anchor int) int {
	var band []int
	for j := range lines {
		if lines[j].VerticalOverlap(lines[anchor].BoundingBox) > model.MinItemSize {
			band = append(band, j)
		}
	}
	sort.SliceStable(band, func(i, j int) bool {
		return model.L2R(lines[band[i]], lines[band[j]])
	})
	for _, j := range band {
		if !used[j] {
			return j
		}
	}
	return anchor
}

// walkBlockChain grows a new Text block from lines[seed] by repeatedly
// appending its bottom_neighbour, stopping on any of spec.md §4.6's four
// chain-walk conditions evaluated against the block as it grows. Grounded
// on the while loop in findTextBlocks.
func (p *page) walkBlockChain(seed int, lines []*model.DocLine, bottom map[int]int, used []bool) *model.DocBlock {
	block := &model.DocBlock{
		BoundingBox: lines[seed].BoundingBox,
		Kind:        model.TextBlock,
		Text:        &model.TextPayload{Lines: []model.DocLine{*lines[seed]}},
	}
	used[seed] = true

	cur := seed
	for {
		this, ok := bottom[cur]
		if !ok || used[this] {
			break
		}

		widthThreshold := 4 * min32(lines[this].Height(), block.Height())
		if block.Width() < widthThreshold && lines[this].Width() < widthThreshold {
			break
		}

		if next, ok := bottom[this]; ok {
			vPrev := lines[cur].VerticalOverlap(lines[this].BoundingBox)
			vNext := lines[next].VerticalOverlap(lines[this].BoundingBox)
			minH := min32(lines[cur].Height(), min32(lines[this].Height(), lines[next].Height()))
			if vPrev < vNext-2 && vPrev < -minH {
				break
			}
		}

		union := block.Union(lines[this].BoundingBox)

		blocked := false
		for _, ref := range p.figures {
			if p.usedFigures[ref] {
				continue
			}
			if union.HasIntersection(p.bbox(ref)) {
				blocked = true
				break
			}
		}
		if !blocked {
			stripe := p.linesOnVerticalStripe(lines, union, lines[this].BoundingBox)
			for _, cover := range p.cover {
				if !(cover.Left() > union.Left()-2 && cover.Right() < union.Right()+2 && union.HasIntersection(cover)) {
					continue
				}
				hasLeft, hasRight := false, false
				for _, l := range stripe {
					if l.Left() <= cover.Left() {
						hasLeft = true
					}
					if l.Right() >= cover.Right() {
						hasRight = true
					}
				}
				if hasLeft && hasRight {
					blocked = true
					break
				}
			}
		}
		if blocked {
			break
		}

		block.BoundingBox = union
		block.Text.Lines = append(block.Text.Lines, *lines[this])
		used[this] = true
		cur = this
	}
	return block
}

// linesOnVerticalStripe collects the lines that share a vertical stripe
// with either union or this: horizontally overlapping one and vertically
// overlapping the other, in either combination. Grounded on
// LinesOnSameVerticalStripe in findTextBlocks.
func (p *page) linesOnVerticalStripe(lines []*model.DocLine, union, this model.BoundingBox) []model.BoundingBox {
	c := func(a, b, c model.BoundingBox) bool {
		return a.HorizontalOverlap(b) > model.MinItemSize && a.VerticalOverlap(c) > model.MinItemSize
	}
	var stripe []model.BoundingBox
	for _, l := range lines {
		if c(l.BoundingBox, union, this) || c(l.BoundingBox, this, union) {
			stripe = append(stripe, l.BoundingBox)
		}
	}
	return stripe
}

// extractPageNumberLine detects a stray line with nothing below it that
// straddles the page's horizontal centre, and reserves it out of the main
// chaining pass. It is always re-emitted afterward as its own one-line
// Text block -- a behaviour original_source/ keeps that spec.md's
// distillation is silent on (see SPEC_FULL.md §6). Grounded on
// pdfla.cpp:618-621's literal straddle test.
func (p *page) extractPageNumberLine(lines []*model.DocLine) (*model.DocLine, []*model.DocLine) {
	pageCenterX := p.size.W / 2
	var candidate *model.DocLine
	var candidateIdx int
	for i, l := range lines {
		if !p.hasNoLinesUnderneath(l, lines) {
			continue
		}
		if !(l.Left() < pageCenterX && pageCenterX < l.Right()) {
			continue
		}
		candidate, candidateIdx = l, i
		break
	}
	if candidate == nil {
		return nil, lines
	}
	rest := make([]*model.DocLine, 0, len(lines)-1)
	rest = append(rest, lines[:candidateIdx]...)
	rest = append(rest, lines[candidateIdx+1:]...)
	return candidate, rest
}

func (p *page) hasNoLinesUnderneath(l *model.DocLine, lines []*model.DocLine) bool {
	for _, other := range lines {
		if other == l {
			continue
		}
		if other.Top() > l.Bottom() && other.HorizontalOverlap(l.BoundingBox) > 0 {
			return false
		}
	}
	return true
}

// bottomNeighbours finds, for each line, the single line strictly below
// it (both top and bottom greater) that continues the same paragraph:
// horizontal overlap ≥ −5, vertical overlap ≥ −3·line.height, breaking
// ties by preferring the larger vertical overlap, falling back to the
// larger horizontal overlap when the current best is itself a gap.
// Grounded on the BottomNeighbour scan in findTextBlocks.
func (p *page) bottomNeighbours(lines []*model.DocLine) map[int]int {
	bottom := make(map[int]int)
	for i, a := range lines {
		best := -1
		var bestVO, bestHO float32
		for j, b := range lines {
			if i == j || a.Top() >= b.Top() || a.Bottom() >= b.Bottom() {
				continue
			}
			ho := a.HorizontalOverlap(b.BoundingBox)
			if ho < -5 {
				continue
			}
			vo := a.VerticalOverlap(b.BoundingBox)
			if vo < -3*a.Height() {
				continue
			}
			if best == -1 {
				best, bestVO, bestHO = j, vo, ho
				continue
			}
			if vo > bestVO {
				if bestVO < -model.MinItemSize || ho > bestHO {
					best, bestVO, bestHO = j, vo, ho
				}
			}
		}
		if best != -1 {
			bottom[i] = best
		}
	}
	return bottom
}

// mergeReferenceNumberBlocks merges narrow sibling blocks -- reference
// marks, footnote numbers, or equation numerals -- into the wide text block
// they introduce. For each wide, multi-line block it picks the narrow
// block immediately to its left with the largest (closest to zero)
// horizontal overlap, requires that overlap to clear
// -5*min_line_height, then collects every block intersecting the union of
// the two and only merges the whole group in if every member of it also
// qualifies as narrow and aligned with the chosen reference block.
// Grounded on the reference-number merge in findTextBlocks.
func (p *page) mergeReferenceNumberBlocks(blocks []*model.DocBlock) []*model.DocBlock {
	removed := make([]bool, len(blocks))
	for i, target := range blocks {
		if removed[i] || target.Kind != model.TextBlock || target.Width() < p.size.W/5 {
			continue
		}
		if len(target.Text.Lines) < 2 {
			continue
		}

		refIdx := -1
		var bestHO float32
		for j, sibling := range blocks {
			if i == j || removed[j] || sibling.Kind != model.TextBlock {
				continue
			}
			if sibling.Width() > target.Width()/8 {
				continue
			}
			if sibling.Right() >= target.Left() {
				continue
			}
			if sibling.VerticalOverlapRatio(target.BoundingBox) < p.tuning.ApproxFullOverlapRatio {
				continue
			}
			ho := sibling.HorizontalOverlap(target.BoundingBox)
			if refIdx == -1 || ho > bestHO {
				refIdx, bestHO = j, ho
			}
		}
		if refIdx == -1 {
			continue
		}

		refBlock := blocks[refIdx]
		minLineHeight := min32(refBlock.Text.Lines[0].Height(), target.Text.Lines[0].Height())
		if bestHO <= -5*minLineHeight {
			continue
		}

		union := target.Union(refBlock.BoundingBox)
		var group []int
		for j, other := range blocks {
			if j == i || removed[j] || !other.HasIntersection(union) {
				continue
			}
			group = append(group, j)
		}

		allQualify := true
		for _, j := range group {
			other := blocks[j]
			if other.Width() > target.Width()/8 ||
				other.HorizontalOverlapRatio(refBlock.BoundingBox) < p.tuning.ApproxFullOverlapRatio {
				allQualify = false
				break
			}
		}
		if !allQualify {
			continue
		}

		for _, j := range group {
			other := blocks[j]
			target.Text.Lines = append(target.Text.Lines, other.Text.Lines...)
			target.BoundingBox = target.Union(other.BoundingBox)
			removed[j] = true
		}
	}

	var result []*model.DocBlock
	for i, b := range blocks {
		if !removed[i] {
			result = append(result, b)
		}
	}
	return result
}

// mergeContainedBlocks absorbs a block into another that covers more than
// three quarters of its area -- typically a caption or footnote fully
// inside a figure or table's bounding box. Grounded on the containment
// merge in findTextBlocks.
func (p *page) mergeContainedBlocks(blocks []*model.DocBlock) []*model.DocBlock {
	used := make([]bool, len(blocks))
	var result []*model.DocBlock
	for i, outer := range blocks {
		if used[i] {
			continue
		}
		for j, inner := range blocks {
			if i == j || used[j] {
				continue
			}
			inter := outer.Intersect(inner.BoundingBox)
			if inter.Area() <= 0.75*inner.Area() {
				continue
			}
			if outer.Kind == model.TextBlock && inner.Kind == model.TextBlock {
				outer.Text.Lines = append(outer.Text.Lines, inner.Text.Lines...)
				outer.BoundingBox = outer.Union(inner.BoundingBox)
			} else if outer.Kind == model.FigureBlock && inner.Kind == model.TextBlock && outer.Figure.Caption == nil {
				outer.Figure.Caption = inner
			}
			used[j] = true
		}
		result = append(result, outer)
	}
	return result
}

// resolveOverlappingBlocks splits any blocks that still overlap after the
// previous passes into non-overlapping horizontal strips, re-bucketing
// every line to the strip it overlaps best. Grounded on the overlap
// resolution at the end of findTextBlocks -- including the fixed X-span
// computation (SPEC_FULL.md §8): the span is [min(lefts), max(rights)],
// not [min(lefts), max(lefts)].
func (p *page) resolveOverlappingBlocks(blocks []*model.DocBlock) []*model.DocBlock {
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].Area() > blocks[j].Area() })

	used := make([]bool, len(blocks))
	var result []*model.DocBlock
	for i, b := range blocks {
		if used[i] || b.Kind != model.TextBlock {
			if !used[i] {
				result = append(result, b)
			}
			continue
		}
		var group []*model.DocBlock
		group = append(group, b)
		used[i] = true
		for j := i + 1; j < len(blocks); j++ {
			if used[j] || blocks[j].Kind != model.TextBlock {
				continue
			}
			if b.HasIntersection(blocks[j].BoundingBox) {
				group = append(group, blocks[j])
				used[j] = true
			}
		}
		if len(group) == 1 {
			result = append(result, b)
			continue
		}
		result = append(result, p.splitOverlapGroup(group)...)
	}
	return result
}

func (p *page) splitOverlapGroup(group []*model.DocBlock) []*model.DocBlock {
	var allLines []model.DocLine
	for _, b := range group {
		allLines = append(allLines, b.Text.Lines...)
	}

	var boundaries []float32
	for _, b := range group {
		boundaries = append(boundaries, b.Top(), b.Bottom())
	}
	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i] < boundaries[j] })

	left := group[0].Left()
	right := group[0].Right()
	for _, b := range group[1:] {
		left = min32(left, b.Left())
		right = max32(right, b.Right()) // fixed: was max(left) in the original source.
	}

	var strips []*model.DocBlock
	for i := 0; i+1 < len(boundaries); i++ {
		y0, y1 := boundaries[i], boundaries[i+1]
		if y1-y0 < model.MinItemSize {
			continue
		}
		strips = append(strips, &model.DocBlock{
			BoundingBox: model.NewBoundingBox(left, y0, right, y1),
			Kind:        model.TextBlock,
			Text:        &model.TextPayload{},
		})
	}
	if len(strips) == 0 {
		return group
	}

	for _, line := range allLines {
		var best *model.DocBlock
		var bestOverlap float32
		for _, strip := range strips {
			overlap := strip.VerticalOverlapRatio(line.BoundingBox)
			if best == nil || overlap > bestOverlap {
				best, bestOverlap = strip, overlap
			}
		}
		best.Text.Lines = append(best.Text.Lines, line)
	}

	var result []*model.DocBlock
	for _, strip := range strips {
		if len(strip.Text.Lines) == 0 {
			continue
		}
		box := strip.Text.Lines[0].BoundingBox
		for _, l := range strip.Text.Lines[1:] {
			box = box.Union(l.BoundingBox)
		}
		strip.BoundingBox = box
		result = append(result, strip)
	}
	common.Log.Debugf("resolveOverlappingBlocks: split %d overlapping blocks into %d strips", len(group), len(result))
	return result
}
