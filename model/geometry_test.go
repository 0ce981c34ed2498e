/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoundingBoxUnion(t *testing.T) {
	a := NewBoundingBox(0, 0, 10, 10)
	b := NewBoundingBox(5, 5, 20, 8)
	u := a.Union(b)
	require.Equal(t, NewBoundingBox(0, 0, 20, 10), u)
}

func TestBoundingBoxIntersect(t *testing.T) {
	a := NewBoundingBox(0, 0, 10, 10)
	b := NewBoundingBox(5, 5, 20, 20)
	require.Equal(t, NewBoundingBox(5, 5, 10, 10), a.Intersect(b))

	c := NewBoundingBox(100, 100, 110, 110)
	require.True(t, a.Intersect(c).IsEmpty())
}

func TestBoundingBoxHasIntersection(t *testing.T) {
	a := NewBoundingBox(0, 0, 10, 10)
	require.True(t, a.HasIntersection(NewBoundingBox(5, 5, 15, 15)))
	require.False(t, a.HasIntersection(NewBoundingBox(10.05, 10.05, 20, 20)))
}

func TestBoundingBoxMinusSpansHorizontally(t *testing.T) {
	// other spans the full width of b: trims b vertically.
	b := NewBoundingBox(0, 0, 10, 10)
	other := NewBoundingBox(-1, 0, 11, 4)
	result := b.Minus(other)
	require.InDelta(t, 4, result.Top(), 0.01)
	require.InDelta(t, 10, result.Bottom(), 0.01)
}

func TestBoundingBoxMinusNoSpan(t *testing.T) {
	b := NewBoundingBox(0, 0, 10, 10)
	other := NewBoundingBox(3, 3, 7, 7)
	require.Equal(t, b, b.Minus(other))
}

func TestOverlapRatios(t *testing.T) {
	a := NewBoundingBox(0, 0, 10, 10)
	b := NewBoundingBox(-5, 0, 30, 10)
	require.InDelta(t, 1.0, a.HorizontalOverlapRatio(b), 0.01)
	require.InDelta(t, 1.0, a.VerticalOverlapRatio(b), 0.01)
}

func TestContains(t *testing.T) {
	outer := NewBoundingBox(0, 0, 100, 100)
	inner := NewBoundingBox(10, 10, 20, 20)
	require.True(t, outer.Contains(inner))
	require.False(t, inner.Contains(outer))
}

func TestRulerClassification(t *testing.T) {
	tuning := DefaultTuning()

	horiz := NewBoundingBox(0, 0, 40, 1)
	require.True(t, horiz.IsHorizontalRuler(tuning))
	require.False(t, horiz.IsVerticalRuler(tuning))

	vert := NewBoundingBox(0, 0, 1, 40)
	require.True(t, vert.IsVerticalRuler(tuning))
	require.False(t, vert.IsHorizontalRuler(tuning))

	square := NewBoundingBox(0, 0, 20, 20)
	require.False(t, square.IsHorizontalRuler(tuning))
	require.False(t, square.IsVerticalRuler(tuning))
}

func TestRulerClassificationRespectsCustomTuning(t *testing.T) {
	tuning := DefaultTuning()
	tuning.MaxRulerThinSize = 1
	tuning.MinRulerThickSize = 2
	tuning.MinRulerAspectRatio = 100

	// Passes the default tuning's ruler test but not this stricter one.
	horiz := NewBoundingBox(0, 0, 40, 1)
	require.False(t, horiz.IsHorizontalRuler(tuning))
}

func TestSizeScaleDoesNotRecurse(t *testing.T) {
	s := Size{W: 10, H: 20}
	require.Equal(t, Size{W: 20, H: 40}, s.Scale(2))
	// Calling it again from the original must not compound.
	require.Equal(t, Size{W: 10, H: 20}, s)
}

func TestL2RT2BOrdering(t *testing.T) {
	type box struct{ b BoundingBox }
	a := box{NewBoundingBox(0, 0, 10, 10)}
	b := box{NewBoundingBox(20, 0, 30, 10)}
	require.True(t, L2RT2B(bbWrap{a.b}, bbWrap{b.b}))
}

type bbWrap struct{ b BoundingBox }

func (w bbWrap) BBox() BoundingBox { return w.b }
