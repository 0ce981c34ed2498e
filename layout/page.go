/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package layout

import (
	"sort"

	"github.com/unidoc/pdflayout/common"
	"github.com/unidoc/pdflayout/model"
)

// page holds one page's worth of pipeline state: the item arena and the
// results of each stage as they're computed. It is not safe for concurrent
// use -- spec.md §5 runs one page per goroutine, never one page shared
// across goroutines.
type page struct {
	items  []model.DocItem // arena; indexed by model.ItemRef
	size   model.Size
	tuning model.Tuning
	serial serialState

	chars   []model.ItemRef // Char items, T2BL2R sorted, rotated glyphs dropped.
	figures []model.ItemRef // non-Char items, T2BL2R sorted.

	meanCharW, meanCharH float32
	wordSep              float32
	cover                []model.BoundingBox

	// usedFigures marks figure/path/image items already absorbed into a
	// line, so stage 8 (figure aggregation) only considers what's left.
	usedFigures map[model.ItemRef]bool
}

// bbox returns the bounding box of the item referenced by `ref`.
func (p *page) bbox(ref model.ItemRef) model.BoundingBox {
	return p.items[ref].BoundingBox
}

// item returns the DocItem referenced by `ref`.
func (p *page) item(ref model.ItemRef) model.DocItem {
	return p.items[ref]
}

// newPage builds a page from the raw item list the collaborator supplied
// and runs the preliminary data preparation stage (spec.md §4.2): split by
// type, drop rotated glyphs, sort T2BL2R, compute mean char dimensions,
// word separation, and the whitespace cover.
func newPage(items []model.DocItem, size model.Size, tuning model.Tuning) *page {
	p := &page{items: items, size: size, tuning: tuning, usedFigures: map[model.ItemRef]bool{}}

	var chars, figures []model.ItemRef
	for i, it := range items {
		ref := model.ItemRef(i)
		if it.Type == model.Char {
			if abs32(it.BaselineAngle) > tuning.MaxBaselineAngleRadians {
				continue
			}
			chars = append(chars, ref)
		} else {
			figures = append(figures, ref)
		}
	}
	p.sortRefs(chars)
	p.sortRefs(figures)
	p.chars = chars
	p.figures = figures

	p.meanCharW, p.meanCharH = p.meanCharDims()
	common.Log.Debugf("newPage: chars=%d figures=%d meanW=%.2f meanH=%.2f",
		len(p.chars), len(p.figures), p.meanCharW, p.meanCharH)

	p.wordSep = p.wordSeparationThreshold()
	p.cover = p.whitespaceCover()

	return p
}

// sortRefs sorts `refs` in place in T2BL2R order (spec.md §4.1), breaking
// ties by original (insertion) order so sorts stay stable across shuffled
// input, per spec.md §8 property 6.
func (p *page) sortRefs(refs []model.ItemRef) {
	sort.SliceStable(refs, func(i, j int) bool {
		return model.T2BL2R(boundedItem{p, refs[i]}, boundedItem{p, refs[j]})
	})
}

// boundedItem adapts an (page, ItemRef) pair to model.Bounded.
type boundedItem struct {
	p   *page
	ref model.ItemRef
}

func (b boundedItem) BBox() model.BoundingBox { return b.p.bbox(b.ref) }

// meanCharDims returns the arithmetic mean width and height of p.chars, or
// (0, 0) if there are none.
func (p *page) meanCharDims() (w, h float32) {
	if len(p.chars) == 0 {
		return 0, 0
	}
	var sumW, sumH float32
	for _, ref := range p.chars {
		b := p.bbox(ref)
		sumW += b.Width()
		sumH += b.Height()
	}
	n := float32(len(p.chars))
	return sumW / n, sumH / n
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func round32(x float32) int {
	if x >= 0 {
		return int(x + 0.5)
	}
	return int(x - 0.5)
}
