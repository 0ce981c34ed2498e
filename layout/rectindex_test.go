/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unidoc/pdflayout/model"
)

func TestRectIndexIntersecting(t *testing.T) {
	rects := []model.BoundingBox{
		model.NewBoundingBox(0, 0, 10, 10),
		model.NewBoundingBox(20, 20, 30, 30),
		model.NewBoundingBox(5, 5, 15, 15),
	}
	idx := newRectIndex(rects)

	hits := idx.Intersecting(model.NewBoundingBox(8, 8, 9, 9))
	require.Len(t, hits, 2)

	none := idx.Intersecting(model.NewBoundingBox(100, 100, 110, 110))
	require.Empty(t, none)
}

func TestRectIndexEmpty(t *testing.T) {
	idx := newRectIndex(nil)
	require.Empty(t, idx.Intersecting(model.NewBoundingBox(0, 0, 10, 10)))
}
