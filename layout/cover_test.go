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

// TestMergeConsecutiveWordsOnlyJoinsAdjacentChars is spec.md §4.4: the
// word-merge phase is a single left-to-right pass over T2BL2R-sorted
// chars, so a char separated from its neighbour by too wide a gap starts a
// new blob rather than being skipped over in favour of a later char.
func TestMergeConsecutiveWordsOnlyJoinsAdjacentChars(t *testing.T) {
	p := newPage(nil, model.Size{W: 200, H: 200}, model.DefaultTuning())
	p.chars = []model.ItemRef{0, 1, 2}
	p.items = []model.DocItem{
		makeChar(0, 0, 5, 10),
		makeChar(6, 0, 11, 10),
		makeChar(60, 0, 65, 10),
	}
	p.wordSep = 2
	p.meanCharH = 10

	words := p.mergeConsecutiveWords()
	require.Len(t, words, 2)
	require.Equal(t, model.NewBoundingBox(0, 0, 11, 10), words[0])
	require.Equal(t, model.NewBoundingBox(60, 0, 65, 10), words[1])
}

// TestBuildBlobsExcludesOversizedFigure is spec.md §4.4: a non-char item
// covering more than MaxImageBlobAreaFraction of the page is a background
// blob, not an obstacle, and must not end up in the cover search's
// obstacle set.
func TestBuildBlobsExcludesOversizedFigure(t *testing.T) {
	p := newPage(nil, model.Size{W: 200, H: 200}, model.DefaultTuning())
	p.chars = []model.ItemRef{0, 1}
	p.figures = []model.ItemRef{2}
	p.items = []model.DocItem{
		makeChar(0, 0, 5, 10),
		makeChar(6, 0, 11, 10),
		{BoundingBox: model.NewBoundingBox(0, 0, 190, 190), Type: model.Image},
	}
	p.wordSep = 2
	p.meanCharH = 10

	blobs := p.buildBlobs()
	pageArea := p.size.Area()
	for _, b := range blobs {
		require.LessOrEqual(t, b.Area(), p.tuning.MaxImageBlobAreaFraction*pageArea)
	}
}
