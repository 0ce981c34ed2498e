/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package model defines the geometry and document-item types shared by the
// whole layout pipeline: Point, Size, BoundingBox, DocItem, DocLine and
// DocBlock. Nothing in this package depends on a PDF library; it is the
// plain data the layout engine consumes and produces.
package model

import "math"

// MinItemSize is the smallest width/height/gap the layout engine treats as
// geometrically significant. Anything smaller is rounding noise.
const MinItemSize = 0.1

// Point is a location in page space. Origin is top-left, Y grows downward.
type Point struct {
	X, Y float32
}

// Scale returns `p` scaled by `s` about the origin.
func (p Point) Scale(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Size is a width/height pair.
type Size struct {
	W, H float32
}

// Area returns the area of `s`, or 0 if `s` IsEmpty.
func (s Size) Area() float32 {
	if s.IsEmpty() {
		return 0
	}
	return s.W * s.H
}

// IsEmpty returns true if either dimension of `s` is smaller than MinItemSize.
func (s Size) IsEmpty() bool {
	return s.W < MinItemSize || s.H < MinItemSize
}

// Scale returns `s` scaled by `factor`. This is the in-place-style scale
// described for stuSize in the original source; unlike that source it does
// not recurse.
func (s Size) Scale(factor float32) Size {
	return Size{W: s.W * factor, H: s.H * factor}
}

// BoundingBox is an axis-aligned rectangle: Origin is its top-left corner
// and Size its extent. Width and height are never negative.
type BoundingBox struct {
	Origin Point
	Size   Size
}

// NewBoundingBox returns the BoundingBox with top-left (x0,y0) and
// bottom-right (x1,y1), normalising reversed corners.
func NewBoundingBox(x0, y0, x1, y1 float32) BoundingBox {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return BoundingBox{Origin: Point{X: x0, Y: y0}, Size: Size{W: x1 - x0, H: y1 - y0}}
}

func (b BoundingBox) Left() float32   { return b.Origin.X }
func (b BoundingBox) Top() float32    { return b.Origin.Y }
func (b BoundingBox) Right() float32  { return b.Origin.X + b.Size.W }
func (b BoundingBox) Bottom() float32 { return b.Origin.Y + b.Size.H }
func (b BoundingBox) Width() float32  { return b.Size.W }
func (b BoundingBox) Height() float32 { return b.Size.H }
func (b BoundingBox) Area() float32   { return b.Size.Area() }

func (b BoundingBox) CenterX() float32 { return b.Origin.X + b.Size.W/2 }
func (b BoundingBox) CenterY() float32 { return b.Origin.Y + b.Size.H/2 }
func (b BoundingBox) Center() Point    { return Point{X: b.CenterX(), Y: b.CenterY()} }

// IsEmpty returns true if `b`'s Size IsEmpty.
func (b BoundingBox) IsEmpty() bool { return b.Size.IsEmpty() }

// Union returns the smallest BoundingBox enclosing `b` and `other`.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	x0 := min32(b.Left(), other.Left())
	y0 := min32(b.Top(), other.Top())
	x1 := max32(b.Right(), other.Right())
	y1 := max32(b.Bottom(), other.Bottom())
	return NewBoundingBox(x0, y0, x1, y1)
}

// Intersect returns the overlapping region of `b` and `other`. The result is
// normalised to the empty box at the origin if there is no overlap.
func (b BoundingBox) Intersect(other BoundingBox) BoundingBox {
	x0 := max32(b.Left(), other.Left())
	y0 := max32(b.Top(), other.Top())
	x1 := min32(b.Right(), other.Right())
	y1 := min32(b.Bottom(), other.Bottom())
	if x1-x0 < MinItemSize || y1-y0 < MinItemSize {
		return BoundingBox{}
	}
	return NewBoundingBox(x0, y0, x1, y1)
}

// HasIntersection returns true if `b` and `other` overlap by more than
// MinItemSize tolerance on both axes. The tolerance keeps near-touching
// boxes (e.g. a whitespace-cover piece flush against a blob) from being
// classified as intersecting.
func (b BoundingBox) HasIntersection(other BoundingBox) bool {
	hTol := min32(min32(b.Width(), other.Width()), MinItemSize)
	vTol := min32(min32(b.Height(), other.Height()), MinItemSize)
	return b.HorizontalOverlap(other) > hTol && b.VerticalOverlap(other) > vTol
}

// Minus returns `b` with `other` subtracted, but only along the axis that
// `other` fully spans. If `other` spans both axes, the trim leaving more
// area wins. Returns the empty box at the origin if nothing is left.
func (b BoundingBox) Minus(other BoundingBox) BoundingBox {
	spansH := other.Left() < b.Left()+MinItemSize && other.Right() > b.Right()-MinItemSize
	spansV := other.Top() < b.Top()+MinItemSize && other.Bottom() > b.Bottom()-MinItemSize

	trimV := b
	if spansH {
		top, bottom := b.Top(), b.Bottom()
		if other.Top() < b.Top()+MinItemSize {
			top = other.Bottom()
		}
		if other.Bottom() > b.Bottom()-MinItemSize {
			bottom = other.Top()
		}
		trimV = NewBoundingBox(b.Left(), top, b.Right(), bottom)
	}
	trimH := b
	if spansV {
		left, right := b.Left(), b.Right()
		if other.Left() < b.Left()+MinItemSize {
			left = other.Right()
		}
		if other.Right() > b.Right()-MinItemSize {
			right = other.Left()
		}
		trimH = NewBoundingBox(left, b.Top(), right, b.Bottom())
	}

	var result BoundingBox
	switch {
	case spansH && spansV:
		if trimV.Area() >= trimH.Area() {
			result = trimV
		} else {
			result = trimH
		}
	case spansH:
		result = trimV
	case spansV:
		result = trimH
	default:
		result = b
	}
	if result.IsEmpty() {
		return BoundingBox{}
	}
	return result
}

// HorizontalOverlap returns how much `b` and `other` overlap on the X axis.
// Negative values are the gap between them.
func (b BoundingBox) HorizontalOverlap(other BoundingBox) float32 {
	x0 := max32(b.Left(), other.Left())
	x1 := min32(b.Right(), other.Right())
	return x1 - x0
}

// VerticalOverlap returns how much `b` and `other` overlap on the Y axis.
// Negative values are the gap between them.
func (b BoundingBox) VerticalOverlap(other BoundingBox) float32 {
	y0 := max32(b.Top(), other.Top())
	y1 := min32(b.Bottom(), other.Bottom())
	return y1 - y0
}

// HorizontalOverlapRatio normalises HorizontalOverlap by the shorter width.
func (b BoundingBox) HorizontalOverlapRatio(other BoundingBox) float32 {
	if b.IsEmpty() || other.IsEmpty() {
		return 0
	}
	return b.HorizontalOverlap(other) / min32(b.Width(), other.Width())
}

// VerticalOverlapRatio normalises VerticalOverlap by the shorter height.
func (b BoundingBox) VerticalOverlapRatio(other BoundingBox) float32 {
	if b.IsEmpty() || other.IsEmpty() {
		return 0
	}
	return b.VerticalOverlap(other) / min32(b.Height(), other.Height())
}

// Contains returns true if `other` lies entirely within `b`.
func (b BoundingBox) Contains(other BoundingBox) bool {
	return other.Left() >= b.Left() && other.Right() <= b.Right() &&
		other.Top() >= b.Top() && other.Bottom() <= b.Bottom()
}

// Scale returns `b` scaled about the origin by `factor`.
func (b BoundingBox) Scale(factor float32) BoundingBox {
	return BoundingBox{Origin: b.Origin.Scale(factor), Size: b.Size.Scale(factor)}
}

// Inflate returns `b` grown by `dx` on each side and `dy` on top and bottom.
func (b BoundingBox) Inflate(dx, dy float32) BoundingBox {
	return NewBoundingBox(b.Left()-dx, b.Top()-dy, b.Right()+dx, b.Bottom()+dy)
}

// IsHorizontalRuler returns true if `b` is thin and wide enough to be a
// horizontal rule: height below t.MaxRulerThinSize, width at least
// t.MinRulerAspectRatio times the height (and at least t.MinRulerThickSize).
// Takes Tuning so callers that re-tune ruler classification (spec.md §3:
// these constants "must be re-settable") actually change this behaviour.
func (b BoundingBox) IsHorizontalRuler(t Tuning) bool {
	return b.Height() < t.MaxRulerThinSize &&
		b.Width() >= max32(t.MinRulerThickSize, t.MinRulerAspectRatio*b.Height())
}

// IsVerticalRuler is the vertical analogue of IsHorizontalRuler.
func (b BoundingBox) IsVerticalRuler(t Tuning) bool {
	return b.Width() < t.MaxRulerThinSize &&
		b.Height() >= max32(t.MinRulerThickSize, t.MinRulerAspectRatio*b.Width())
}

// Bounded is implemented by anything with a bounding box: a DocItem, a
// DocLine, a DocBlock, or an ad-hoc obstacle rectangle.
type Bounded interface {
	BBox() BoundingBox
}

// L2R orders bounded objects left to right by BBox().Left().
func L2R(a, b Bounded) bool { return a.BBox().Left() < b.BBox().Left() }

// T2B orders bounded objects top to bottom by BBox().Top().
func T2B(a, b Bounded) bool { return a.BBox().Top() < b.BBox().Top() }

// L2RT2B orders by top when the two boxes share meaningful horizontal
// overlap (same column), else by left.
func L2RT2B(a, b Bounded) bool {
	ab, bb := a.BBox(), b.BBox()
	if ab.HorizontalOverlap(bb) > MinItemSize {
		return ab.Top() < bb.Top()
	}
	return ab.Left() < bb.Left()
}

// T2BL2R orders by left when the two boxes share meaningful vertical
// overlap (same row), else by top. Used to sort chars and figures into
// reading order before the cover/line/block stages run.
func T2BL2R(a, b Bounded) bool {
	ab, bb := a.BBox(), b.BBox()
	if ab.VerticalOverlap(bb) > MinItemSize {
		return ab.Left() < bb.Left()
	}
	return ab.Top() < bb.Top()
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

// abs32 returns the absolute value of a float32, computed with math.Abs
// through a float64 round trip.
func abs32(x float32) float32 {
	return float32(math.Abs(float64(x)))
}
