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

// whitespaceCover computes the page's tall vertical whitespace rectangles:
// the gaps between columns, margins, and figures that line and block
// formation must not bridge. Grounded on getWhitespaceCoverage /
// getRawWhitespaceCover in the original source.
func (p *page) whitespaceCover() []model.BoundingBox {
	blobs := p.buildBlobs()
	if len(blobs) == 0 {
		return nil
	}
	idx := newRectIndex(blobs)
	pageBox := model.NewBoundingBox(0, 0, p.size.W, p.size.H)
	covers := p.searchCovers(pageBox, idx)
	if len(covers) == 0 {
		return nil
	}
	return p.mergeCovers(covers, idx)
}

// buildBlobs reduces the page's chars and figures to a small set of opaque
// obstacle rectangles the cover search treats as solid: first a single
// left-to-right pass over the T2BL2R-sorted chars, greedily extending the
// current blob while the next char sits on the same line close enough to
// be one word or line fragment, then iteratively merging those word blobs
// (plus the page's figures, oversized background blobs excluded) with
// fragments that overlap horizontally and sit close together vertically,
// until nothing more merges.
func (p *page) buildBlobs() []model.BoundingBox {
	words := p.mergeConsecutiveWords()

	pageArea := p.size.Area()
	all := make([]model.BoundingBox, 0, len(words)+len(p.figures))
	all = append(all, words...)
	for _, ref := range p.figures {
		fb := p.bbox(ref)
		if pageArea > 0 && fb.Area() > p.tuning.MaxImageBlobAreaFraction*pageArea {
			continue
		}
		all = append(all, fb)
	}
	if len(all) == 0 {
		return nil
	}

	return mergeWhile(all, func(a, b model.BoundingBox) bool {
		return a.HorizontalOverlap(b) > p.meanCharH && a.VerticalOverlap(b) > -p.meanCharH
	})
}

// mergeConsecutiveWords walks p.chars (T2BL2R-sorted) once, left to right,
// extending the current blob while the next char qualifies as the same
// word or line fragment and starting a new blob otherwise. This is a
// single sequential pass, not an all-pairs merge: it can only ever union
// two chars that are adjacent in reading order, matching the original
// source's linear Prev/ThisItem walk rather than mergeWhile's fixpoint
// search over every pair.
func (p *page) mergeConsecutiveWords() []model.BoundingBox {
	if len(p.chars) == 0 {
		return nil
	}
	words := make([]model.BoundingBox, 0, len(p.chars))
	acc := p.bbox(p.chars[0])
	for i := 1; i < len(p.chars); i++ {
		cur := p.bbox(p.chars[i])
		dx := cur.Left() - acc.Right()
		if acc.Left() > cur.Left() {
			dx = acc.Left() - cur.Right()
		}
		threshold := max32(p.wordSep, min32(acc.Height(), cur.Height()))
		if dx < threshold && acc.VerticalOverlapRatio(cur) > 0.5 {
			acc = acc.Union(cur)
			continue
		}
		words = append(words, acc)
		acc = cur
	}
	return append(words, acc)
}

// mergeWhile repeatedly unions the first pair satisfying shouldMerge until
// no pair does. O(n^2) per pass; the page's blob count is small enough
// (hundreds, not thousands) that this is simpler than an event-sweep merge
// and still fast.
func mergeWhile(boxes []model.BoundingBox, shouldMerge func(a, b model.BoundingBox) bool) []model.BoundingBox {
	items := append([]model.BoundingBox(nil), boxes...)
	for {
		merged := false
		for i := 0; i < len(items) && !merged; i++ {
			for j := i + 1; j < len(items); j++ {
				if !shouldMerge(items[i], items[j]) {
					continue
				}
				items[i] = items[i].Union(items[j])
				items = append(items[:j], items[j+1:]...)
				merged = true
				break
			}
		}
		if !merged {
			return items
		}
	}
}

// candidateAcceptable rejects candidates too small to matter as whitespace:
// both dimensions must clear max(meanCharH, MinCoverSize), with height
// required to be at least 3x that floor so legs favour vertical gutters,
// plus the perimeter and area floors. Grounded on candidateIsAcceptable.
func (p *page) candidateAcceptable(b model.BoundingBox) bool {
	minDim := max32(p.meanCharH, p.tuning.MinCoverSize)
	if b.Width() < minDim || b.Height() < 3*minDim {
		return false
	}
	if b.Width()+b.Height() < p.tuning.MinCoverPerimeter {
		return false
	}
	return b.Area() >= p.tuning.MinCoverArea
}

// candidateScore favours tall, narrow candidates (column gutters) over
// short, wide ones (margins). Below wlt the candidate is scored purely as
// a gutter (h+w); above wht it's scored as a wide margin (2h, which matters
// less); in between the two scores are cosine-blended. Grounded on
// calculateCandidateScore.
func (p *page) candidateScore(b model.BoundingBox) float32 {
	wlt := min32(4, 2*p.meanCharH)
	wht := min32(8, 4*p.meanCharH)
	w, h := b.Width(), b.Height()
	switch {
	case w <= wlt:
		return h + w
	case w >= wht:
		return 2 * h
	default:
		t := (w - wlt) / (wht - wlt)
		blend := float32(0.5 + 0.5*math.Cos(float64(t)*math.Pi))
		return blend*(h+w) + (1-blend)*(2*h)
	}
}

// searchCovers is the best-first candidate search: repeatedly take the
// highest-scoring acceptable candidate, emit it as a cover if it has no
// obstacles left (or its score has dropped below 1, meaning further
// splitting won't pay off), otherwise split it into up to four pieces
// around its largest remaining obstacle and requeue them. Grounded on
// findNextLargetsCover / getRawWhitespaceCover.
func (p *page) searchCovers(pageBox model.BoundingBox, idx *rectIndex) []model.BoundingBox {
	queue := []model.BoundingBox{pageBox}
	var covers []model.BoundingBox

	for len(queue) > 0 && len(covers) < p.tuning.MaxCoverItems {
		bestIdx := -1
		var bestScore float32
		for i, box := range queue {
			if !p.candidateAcceptable(box) {
				continue
			}
			score := p.candidateScore(box)
			if bestIdx == -1 || score > bestScore {
				bestIdx, bestScore = i, score
			}
		}
		if bestIdx == -1 {
			break
		}
		box := queue[bestIdx]
		queue = append(queue[:bestIdx], queue[bestIdx+1:]...)

		obstacles := idx.Intersecting(box)
		if len(obstacles) == 0 || bestScore < 1 {
			covers = append(covers, box)
			continue
		}

		pivot := largestByArea(obstacles)
		for _, sub := range splitAroundPivot(box, pivot, p.tuning.MinItemSize) {
			if !sub.IsEmpty() {
				queue = append(queue, sub)
			}
		}
	}
	return covers
}

// splitAroundPivot divides box into the up-to-four pieces left, right,
// above and below pivot, each inset from pivot's edge by eps so the pieces
// don't re-include the obstacle that produced them.
func splitAroundPivot(box, pivot model.BoundingBox, eps float32) []model.BoundingBox {
	var out []model.BoundingBox
	if pivot.Left()-eps > box.Left() {
		out = append(out, model.NewBoundingBox(box.Left(), box.Top(), pivot.Left()-eps, box.Bottom()))
	}
	if pivot.Right()+eps < box.Right() {
		out = append(out, model.NewBoundingBox(pivot.Right()+eps, box.Top(), box.Right(), box.Bottom()))
	}
	if pivot.Top()-eps > box.Top() {
		out = append(out, model.NewBoundingBox(box.Left(), box.Top(), box.Right(), pivot.Top()-eps))
	}
	if pivot.Bottom()+eps < box.Bottom() {
		out = append(out, model.NewBoundingBox(box.Left(), pivot.Bottom()+eps, box.Right(), box.Bottom()))
	}
	return out
}

func largestByArea(boxes []model.BoundingBox) model.BoundingBox {
	best := boxes[0]
	for _, b := range boxes[1:] {
		if b.Area() > best.Area() {
			best = b
		}
	}
	return best
}

// mergeCovers absorbs shorter covers into taller ones that they almost
// fully vertically overlap, as long as the merged rectangle still avoids
// every blob -- collapsing the cover search's fragmented output back into
// the fewest rectangles that describe the same whitespace.
func (p *page) mergeCovers(covers []model.BoundingBox, idx *rectIndex) []model.BoundingBox {
	sorted := append([]model.BoundingBox(nil), covers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Height() > sorted[j].Height()
	})

	used := make([]bool, len(sorted))
	var result []model.BoundingBox
	for i := range sorted {
		if used[i] {
			continue
		}
		acc := sorted[i]
		for j := i + 1; j < len(sorted); j++ {
			if used[j] {
				continue
			}
			cand := sorted[j]
			if acc.VerticalOverlapRatio(cand) < p.tuning.ApproxFullOverlapRatio {
				continue
			}
			union := acc.Union(cand)
			if len(idx.Intersecting(union)) > 0 {
				continue
			}
			acc = union
			used[j] = true
		}
		result = append(result, acc)
	}
	return result
}
