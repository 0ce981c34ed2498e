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

func line(x0, y0, x1, y1 float32) *model.DocLine {
	return &model.DocLine{BoundingBox: model.NewBoundingBox(x0, y0, x1, y1)}
}

func TestBottomNeighboursPrefersLargerVerticalOverlap(t *testing.T) {
	p := newPage(nil, model.Size{W: 200, H: 200}, model.DefaultTuning())

	// a sits above two candidates b and c, both in a's column. b sits
	// directly beneath a (vertical overlap 0); c is 30 below (vertical
	// overlap -30, still inside the -3*height bound). The larger vertical
	// overlap wins, so b is picked, per the tie-break in spec.md §4.6.
	a := line(0, 0, 20, 10)
	b := line(0, 10, 20, 20)
	c := line(0, 40, 20, 50)

	bottom := p.bottomNeighbours([]*model.DocLine{a, b, c})
	require.Equal(t, 1, bottom[0])
}

func TestBottomNeighboursRejectsTooFarBelow(t *testing.T) {
	p := newPage(nil, model.Size{W: 200, H: 200}, model.DefaultTuning())

	a := line(0, 0, 20, 10) // height 10, so vertical overlap must be >= -30.
	far := line(0, 50, 20, 60)

	bottom := p.bottomNeighbours([]*model.DocLine{a, far})
	_, ok := bottom[0]
	require.False(t, ok)
}

func TestWalkBlockChainStopsAtIntersectingFigure(t *testing.T) {
	p := newPage(nil, model.Size{W: 200, H: 200}, model.DefaultTuning())
	p.figures = []model.ItemRef{0}
	p.items = []model.DocItem{{BoundingBox: model.NewBoundingBox(40, 8, 60, 12), Type: model.Image}}

	// Wide lines so the too-narrow-fragment stop condition never fires;
	// the figure sitting in the gap between them is the only thing that
	// should stop the chain.
	a := line(0, 0, 100, 10)
	b := line(0, 10, 100, 20)
	lines := []*model.DocLine{a, b}
	bottom := p.bottomNeighbours(lines)
	require.Equal(t, 1, bottom[0])

	used := make([]bool, len(lines))
	block := p.walkBlockChain(0, lines, bottom, used)
	require.Len(t, block.Text.Lines, 1, "the figure sitting between a and b must stop the chain")
	require.False(t, used[1])
}

func TestExtractPageNumberLineStraddlesCentre(t *testing.T) {
	p := newPage(nil, model.Size{W: 200, H: 400}, model.DefaultTuning())

	straddling := line(90, 380, 110, 390) // straddles x=100, nothing below it.
	body := line(0, 0, 20, 10)

	pn, rest := p.extractPageNumberLine([]*model.DocLine{body, straddling})
	require.NotNil(t, pn)
	require.Same(t, straddling, pn)
	require.Len(t, rest, 1)
	require.Same(t, body, rest[0])
}

func TestExtractPageNumberLineRejectsNonStraddling(t *testing.T) {
	p := newPage(nil, model.Size{W: 200, H: 400}, model.DefaultTuning())

	// Narrow, nothing below it, but entirely left of the page centre: must
	// not be misclassified as the page-number line (the bug the literal
	// straddle test fixes).
	leftAligned := line(0, 380, 20, 390)

	pn, rest := p.extractPageNumberLine([]*model.DocLine{leftAligned})
	require.Nil(t, pn)
	require.Len(t, rest, 1)
}

func TestMergeReferenceNumberBlocksMergesNarrowSibling(t *testing.T) {
	p := newPage(nil, model.Size{W: 200, H: 200}, model.DefaultTuning())

	target := &model.DocBlock{
		BoundingBox: model.NewBoundingBox(20, 0, 180, 40),
		Kind:        model.TextBlock,
		Text: &model.TextPayload{Lines: []model.DocLine{
			*line(20, 0, 180, 20), *line(20, 20, 180, 40),
		}},
	}
	refNum := &model.DocBlock{
		BoundingBox: model.NewBoundingBox(0, 0, 15, 20),
		Kind:        model.TextBlock,
		Text:        &model.TextPayload{Lines: []model.DocLine{*line(0, 0, 15, 20)}},
	}

	result := p.mergeReferenceNumberBlocks([]*model.DocBlock{target, refNum})
	require.Len(t, result, 1)
	require.Len(t, result[0].Text.Lines, 3)
}

// TestMergeReferenceNumberBlocksRejectsDistantSibling is spec.md §4.6: a
// narrow sibling block otherwise shaped like a reference number, but
// sitting further than -5*min_line_height to the left of the target, must
// not be merged in.
func TestMergeReferenceNumberBlocksRejectsDistantSibling(t *testing.T) {
	p := newPage(nil, model.Size{W: 200, H: 200}, model.DefaultTuning())

	target := &model.DocBlock{
		BoundingBox: model.NewBoundingBox(20, 0, 180, 40),
		Kind:        model.TextBlock,
		Text: &model.TextPayload{Lines: []model.DocLine{
			*line(20, 0, 180, 20), *line(20, 20, 180, 40),
		}},
	}
	farSibling := &model.DocBlock{
		BoundingBox: model.NewBoundingBox(-95, 0, -85, 20),
		Kind:        model.TextBlock,
		Text:        &model.TextPayload{Lines: []model.DocLine{*line(-95, 0, -85, 20)}},
	}

	result := p.mergeReferenceNumberBlocks([]*model.DocBlock{target, farSibling})
	require.Len(t, result, 2)
	require.Len(t, result[0].Text.Lines, 2)
}

func TestMergeContainedBlocksAbsorbsCaption(t *testing.T) {
	p := newPage(nil, model.Size{W: 200, H: 200}, model.DefaultTuning())

	figure := model.NewFigureBlock(model.NewBoundingBox(0, 0, 100, 100))
	caption := model.NewTextBlock(*line(10, 80, 90, 95))

	result := p.mergeContainedBlocks([]*model.DocBlock{figure, caption})
	require.Len(t, result, 1)
	require.Equal(t, model.FigureBlock, result[0].Kind)
	require.Same(t, caption, result[0].Figure.Caption)
}

// TestResolveOverlappingBlocksProducesStrips is spec.md §8 scenario S5:
// two overlapping text blocks sharing one line must resolve into 3
// horizontal strips partitioning [0,75] into [0,25], [25,50], [50,75].
func TestResolveOverlappingBlocksProducesStrips(t *testing.T) {
	p := newPage(nil, model.Size{W: 200, H: 200}, model.DefaultTuning())

	lineA := *line(0, 0, 100, 25)
	lineShared := *line(60, 25, 100, 50)
	lineB := *line(60, 50, 160, 75)

	blockA := &model.DocBlock{
		BoundingBox: model.NewBoundingBox(0, 0, 100, 50),
		Kind:        model.TextBlock,
		Text:        &model.TextPayload{Lines: []model.DocLine{lineA, lineShared}},
	}
	blockB := &model.DocBlock{
		BoundingBox: model.NewBoundingBox(60, 25, 160, 75),
		Kind:        model.TextBlock,
		Text:        &model.TextPayload{Lines: []model.DocLine{lineB}},
	}

	result := p.resolveOverlappingBlocks([]*model.DocBlock{blockA, blockB})
	require.Len(t, result, 3)

	wantBoundaries := [][2]float32{{0, 25}, {25, 50}, {50, 75}}
	for _, want := range wantBoundaries {
		found := false
		for _, b := range result {
			if b.Top() == want[0] && b.Bottom() == want[1] {
				found = true
			}
		}
		require.True(t, found, "expected a strip spanning [%v,%v]", want[0], want[1])
	}
}
