/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package layout

import (
	"sort"

	"github.com/RoaringBitmap/roaring"

	"github.com/unidoc/pdflayout/model"
)

// rectIndex is an index over a fixed set of rectangles ordered by each of
// their four edges, used to answer "which of these rectangles intersect
// this query box" with bitmap set operations instead of a linear scan.
// Grounded on the teacher's extractor/text_rect.go rectIndex, which answers
// the same question for word/line bounding boxes using RoaringBitmap.
type rectIndex struct {
	rects  []model.BoundingBox
	orders map[edgeKind][]uint32
}

type edgeKind int

const (
	edgeLeft edgeKind = iota
	edgeRight
	edgeTop
	edgeBottom
)

func edgeValue(k edgeKind, r model.BoundingBox) float32 {
	switch k {
	case edgeLeft:
		return r.Left()
	case edgeRight:
		return r.Right()
	case edgeTop:
		return r.Top()
	default:
		return r.Bottom()
	}
}

// newRectIndex builds a rectIndex over `rects`.
func newRectIndex(rects []model.BoundingBox) *rectIndex {
	idx := &rectIndex{rects: rects, orders: map[edgeKind][]uint32{}}
	for _, k := range []edgeKind{edgeLeft, edgeRight, edgeTop, edgeBottom} {
		idx.orders[k] = idx.order(k)
	}
	return idx
}

func (idx *rectIndex) order(k edgeKind) []uint32 {
	order := make([]uint32, len(idx.rects))
	for i := range idx.rects {
		order[i] = uint32(i)
	}
	sort.Slice(order, func(i, j int) bool {
		return edgeValue(k, idx.rects[order[i]]) < edgeValue(k, idx.rects[order[j]])
	})
	return order
}

// le returns the indexes of rectangles whose edge `k` value is <= z.
func (idx *rectIndex) le(k edgeKind, z float32) *roaring.Bitmap {
	order := idx.orders[k]
	n := len(order)
	val := func(i int) float32 { return edgeValue(k, idx.rects[order[i]]) }
	i := sort.Search(n, func(i int) bool { return val(i) > z })
	return roaring.BitmapOf(order[:i]...)
}

// ge returns the indexes of rectangles whose edge `k` value is >= z.
func (idx *rectIndex) ge(k edgeKind, z float32) *roaring.Bitmap {
	order := idx.orders[k]
	n := len(order)
	val := func(i int) float32 { return edgeValue(k, idx.rects[order[i]]) }
	i := sort.Search(n, func(i int) bool { return val(i) >= z })
	return roaring.BitmapOf(order[i:n]...)
}

// Intersecting returns the subset of idx.rects that has a geometric
// intersection (model.BoundingBox.HasIntersection) with `query`.
func (idx *rectIndex) Intersecting(query model.BoundingBox) []model.BoundingBox {
	if len(idx.rects) == 0 {
		return nil
	}
	// Candidate bounding-box overlap test, narrowed with bitmap ANDs exactly
	// as rectIndex.overlappingRect does: left <= query.right, right >= query.left,
	// top <= query.bottom, bottom >= query.top.
	candidates := idx.le(edgeLeft, query.Right())
	candidates.And(idx.ge(edgeRight, query.Left()))
	candidates.And(idx.le(edgeTop, query.Bottom()))
	candidates.And(idx.ge(edgeBottom, query.Top()))

	var result []model.BoundingBox
	it := candidates.Iterator()
	for it.HasNext() {
		r := idx.rects[it.Next()]
		if r.HasIntersection(query) {
			result = append(result, r)
		}
	}
	return result
}
