/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package layout

import (
	"math"
	"sort"

	"github.com/unidoc/pdflayout/model"
)

// findLines groups p.chars into DocLines: for each char it finds the
// nearest char to its right that plausibly continues the same line,
// vetoes the join if a whitespace cover rectangle sits in the gap between
// them, then walks each maximal chain of right-links into one line.
// Afterward it absorbs small nearby figures into their line and merges
// line segments that are really one wrapped/obstructed line split in two.
// Grounded on findPageLinesAndFigures in the original source: the
// right/left neighbour map, getFirstUnusedChar + RightNeighbourOf walk,
// figure absorption, and the final segment-merge pass.
func (p *page) findLines() []*model.DocLine {
	right := p.rightNeighbours()
	left := make(map[model.ItemRef]model.ItemRef, len(right))
	for a, b := range right {
		left[b] = a
	}

	used := make(map[model.ItemRef]bool, len(p.chars))
	var lines []*model.DocLine

	for _, ref := range p.chars {
		if used[ref] {
			continue
		}
		if _, hasLeft := left[ref]; hasLeft {
			continue
		}
		lines = append(lines, p.walkChain(ref, right, used))
	}
	// A char whose left-neighbour link lost a race (its predecessor got
	// absorbed into a different chain first) is still unused; seed it too.
	for _, ref := range p.chars {
		if !used[ref] {
			lines = append(lines, p.walkChain(ref, right, used))
		}
	}

	p.absorbFigures(lines)
	lines = p.mergeLineSegments(lines)

	sort.SliceStable(lines, func(i, j int) bool {
		return model.T2BL2R(lines[i], lines[j])
	})
	return lines
}

func (p *page) walkChain(start model.ItemRef, right map[model.ItemRef]model.ItemRef, used map[model.ItemRef]bool) *model.DocLine {
	if used[start] {
		panicInvariantViolation("findLines: walkChain seeded with an already-used char")
	}
	chain := []model.ItemRef{start}
	used[start] = true
	cur := start
	for {
		next, ok := right[cur]
		if !ok {
			break
		}
		if used[next] {
			// right[cur] names a char already consumed by another chain:
			// two different chars chose the same right-neighbour, which
			// the neighbour construction in rightNeighbours is supposed
			// to make impossible. Per spec.md §4.5/§7 this is a fatal,
			// internal invariant violation, not a recoverable input
			// condition -- abort with diagnostic rather than silently
			// truncating the chain.
			panicInvariantViolation("findLines: right-neighbour of a char points to an already-used char")
		}
		chain = append(chain, next)
		used[next] = true
		cur = next
	}
	return p.newLine(chain)
}

// rightNeighbours finds, for each char, the one other char that most
// convincingly sits on the same line immediately to its right: vertical
// overlap, not too far to the right, with its centre past a's centre and
// more vertical than horizontal overlap; ties broken by the HORZ threshold
// rule, then the whitespace cover vetoes any link it spans. Grounded on the
// original source's right-neighbour construction and its
// HORZ_OVERLAP_THRESHOLD tie-break.
func (p *page) rightNeighbours() map[model.ItemRef]model.ItemRef {
	const horz = -1.0

	right := make(map[model.ItemRef]model.ItemRef)
	for _, a := range p.chars {
		ab := p.bbox(a)
		var best model.ItemRef
		var bestVO, bestHO float32
		found := false
		for _, b := range p.chars {
			if a == b {
				continue
			}
			bb := p.bbox(b)
			vo := ab.VerticalOverlap(bb)
			if vo <= model.MinItemSize {
				continue
			}
			ho := ab.HorizontalOverlap(bb)
			if ho < -2*max32(ab.Height(), bb.Height()) {
				continue
			}
			if !(ab.CenterX() < bb.CenterX() && vo > ho) {
				continue
			}
			if !found {
				found, best, bestVO, bestHO = true, b, vo, ho
				continue
			}
			switch {
			case bestHO >= horz && ho >= horz:
				if vo > bestVO {
					best, bestVO, bestHO = b, vo, ho
				}
			case ho >= horz && bestHO < horz:
				best, bestVO, bestHO = b, vo, ho
			case bestHO >= horz && ho < horz:
				// current candidate stays: it already clears the threshold.
			default:
				if ho > bestHO {
					best, bestVO, bestHO = b, vo, ho
				}
			}
		}
		if !found {
			continue
		}
		if p.coverVetoesJoin(ab, p.bbox(best)) {
			continue
		}
		right[a] = best
	}
	return right
}

// coverVetoesJoin reports whether a whitespace cover rectangle spans the
// gap between a and b widely and tall enough to mean they're in different
// columns, not the same line.
func (p *page) coverVetoesJoin(a, b model.BoundingBox) bool {
	if a.Right() >= b.Left() {
		return false
	}
	gap := model.NewBoundingBox(a.Right(), min32(a.Top(), b.Top()), b.Left(), max32(a.Bottom(), b.Bottom()))
	union := a.Union(b)
	for _, cover := range p.cover {
		inter := gap.Intersect(cover)
		if inter.IsEmpty() {
			continue
		}
		if inter.Width() > 1 && inter.Height() > union.Height()-p.tuning.MinItemSize {
			return true
		}
	}
	return false
}

// newLine builds a DocLine from a chain of item refs, in left-to-right
// order, with its baseline computed from the chain's char items. The
// refs are resolved to DocItem values here: a DocLine carries its own
// items by value rather than a reference back into the page's arena.
func (p *page) newLine(refs []model.ItemRef) *model.DocLine {
	items := make([]model.DocItem, len(refs))
	box := p.bbox(refs[0])
	for i, ref := range refs {
		items[i] = p.item(ref)
		if i > 0 {
			box = box.Union(items[i].BoundingBox)
		}
	}
	line := &model.DocLine{
		BoundingBox: box,
		ID:          p.serial.nextLine(),
		TextLeft:    box.Left(),
		Items:       items,
	}
	p.computeBaseline(line)
	return line
}

// computeBaseline averages the baselines of the line's char items,
// trimming the outliers more than one standard deviation away from the
// mean and keeping the rest -- per spec.md §9, not the other way round.
func (p *page) computeBaseline(line *model.DocLine) {
	var values []float32
	for _, it := range line.Items {
		if it.Type == model.Char {
			values = append(values, it.Baseline)
		}
	}
	if len(values) == 0 {
		line.Baseline = line.Bottom()
		return
	}
	mean, std := meanStd(values)
	if std == 0 {
		line.Baseline = mean
		return
	}
	var sum float32
	var n int
	for _, v := range values {
		if abs32(v-mean) <= std {
			sum += v
			n++
		}
	}
	if n == 0 {
		line.Baseline = mean
		return
	}
	line.Baseline = sum / float32(n)
}

func meanStd(values []float32) (mean, std float32) {
	var sum float32
	for _, v := range values {
		sum += v
	}
	mean = sum / float32(len(values))
	var variance float32
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float32(len(values))
	return mean, float32(math.Sqrt(float64(variance)))
}

// absorbFigures merges small figures sitting inside or beside a line's
// text height into that line -- an inline rule, bullet glyph, or tiny
// icon -- rather than leaving them as standalone figure blocks. Grounded
// on the figure-absorption step of findPageLinesAndFigures: height at
// most twice the mean char height and less than 1.5x the line's own
// height, with real overlap against the line.
func (p *page) absorbFigures(lines []*model.DocLine) {
	for _, ref := range p.figures {
		fb := p.bbox(ref)
		if p.meanCharH > 0 && fb.Height() > 2*p.meanCharH {
			continue
		}
		var best *model.DocLine
		var bestOverlap float32
		for _, line := range lines {
			if p.meanCharH > 0 && fb.Height() >= 1.5*line.Height() {
				continue
			}
			if !line.HasIntersection(fb) {
				continue
			}
			overlap := line.VerticalOverlapRatio(fb)
			if best == nil || overlap > bestOverlap {
				best, bestOverlap = line, overlap
			}
		}
		if best == nil {
			continue
		}
		best.Items = append(best.Items, p.item(ref))
		best.BoundingBox = best.BoundingBox.Union(fb)
		p.usedFigures[ref] = true
	}
}

// mergeLineSegments joins line fragments that the neighbour chaining left
// split -- typically because a whitespace-cover rectangle briefly
// intruded between two halves of what is really one line -- back into a
// single line, provided they sit on the same line vertically and don't
// gap apart by more than their own height. Grounded on the segment-merge
// pass at the end of findPageLinesAndFigures.
func (p *page) mergeLineSegments(lines []*model.DocLine) []*model.DocLine {
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Left() < lines[j].Left() })

	used := make([]bool, len(lines))
	var result []*model.DocLine
	for i, a := range lines {
		if used[i] {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if used[j] {
				continue
			}
			b := lines[j]
			if !areVerticallyOnSameLine(a.BoundingBox, b.BoundingBox) {
				continue
			}
			if a.HorizontalOverlap(b.BoundingBox) < -max32(a.Height(), b.Height()) {
				// b and everything further right are too far from a to
				// ever qualify (lines is sorted by left edge): stop
				// advancing rather than skip past it.
				break
			}
			if p.coverBridges(a.BoundingBox, b.BoundingBox) {
				continue
			}
			a.Items = append(a.Items, b.Items...)
			a.BoundingBox = a.Union(b.BoundingBox)
			if b.Left() < a.TextLeft {
				a.TextLeft = b.Left()
			}
			used[j] = true
		}
		result = append(result, a)
	}
	return result
}

// coverBridges reports whether a whitespace cover rectangle sits between a
// and b, meaning they're in different columns and should not be merged
// back together. Grounded on pdfla.cpp:523-528's literal
// CoverItem->hasIntersectionWith(Union) && CoverItem->verticalOverlap(Union) > 3
// test: an absolute-pixel vertical-overlap check against the union of the
// two segments, not a ratio against a synthetic gap box.
func (p *page) coverBridges(a, b model.BoundingBox) bool {
	union := a.Union(b)
	for _, cover := range p.cover {
		if cover.HasIntersection(union) && cover.VerticalOverlap(union) > 3 {
			return true
		}
	}
	return false
}

// areVerticallyOnSameLine reports whether two boxes' vertical extents are
// close enough to belong to the same text line: if one is less than half
// the other's height, the smaller must sit strictly within MinItemSize of
// fully inside the larger's band; otherwise half the shorter height of
// overlap tolerance is enough. Grounded on areVerticallyOnSameLine in the
// original source.
func areVerticallyOnSameLine(a, b model.BoundingBox) bool {
	minH := min32(a.Height(), b.Height())
	maxH := max32(a.Height(), b.Height())
	if minH < 0.5*maxH {
		return a.VerticalOverlap(b) > model.MinItemSize
	}
	return a.VerticalOverlap(b) > 0.5*minH
}
