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

func makeChar(x0, y0, x1, y1 float32) model.DocItem {
	return model.DocItem{
		BoundingBox: model.NewBoundingBox(x0, y0, x1, y1),
		Type:        model.Char,
		Baseline:    y1,
		Char:        'x',
	}
}

func TestProcessDegenerateInput(t *testing.T) {
	blocks, err := Process(nil, model.Size{W: 100, H: 100}, model.DefaultTuning(), nil)
	require.NoError(t, err)
	require.Nil(t, blocks)

	onlyFigure := []model.DocItem{{BoundingBox: model.NewBoundingBox(0, 0, 10, 10), Type: model.Image}}
	blocks, err = Process(onlyFigure, model.Size{W: 100, H: 100}, model.DefaultTuning(), nil)
	require.NoError(t, err)
	require.Nil(t, blocks)
}

func TestProcessSingleLine(t *testing.T) {
	var items []model.DocItem
	for i := 0; i < 5; i++ {
		x := float32(i) * 6
		items = append(items, makeChar(x, 0, x+5, 10))
	}
	blocks, err := Process(items, model.Size{W: 200, H: 200}, model.DefaultTuning(), nil)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Equal(t, model.TextBlock, blocks[0].Kind)
	require.Len(t, blocks[0].Text.Lines, 1)
	require.Len(t, blocks[0].Text.Lines[0].Items, 5)
}

func TestProcessParagraphMergesLines(t *testing.T) {
	var items []model.DocItem
	for row := 0; row < 3; row++ {
		y := float32(row) * 12
		for col := 0; col < 4; col++ {
			x := float32(col) * 6
			items = append(items, makeChar(x, y, x+5, y+10))
		}
	}
	blocks, err := Process(items, model.Size{W: 200, H: 200}, model.DefaultTuning(), nil)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Text.Lines, 3)
}

func TestProcessClassifiesHeaderArea(t *testing.T) {
	var items []model.DocItem
	for col := 0; col < 4; col++ {
		x := float32(col) * 6
		items = append(items, makeChar(x, 2, x+5, 10))
	}
	blocks, err := Process(items, model.Size{W: 200, H: 400}, model.DefaultTuning(), nil)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Equal(t, model.AreaHeader, blocks[0].PageArea)
}

func buildColumn(xOffset, yOffset float32) []model.DocItem {
	var items []model.DocItem
	for col := 0; col < 4; col++ {
		x := xOffset + float32(col)*24
		items = append(items, makeChar(x, yOffset, x+8, yOffset+10))
	}
	return items
}

// TestProcessTwoColumnGutter is spec.md §8 scenario S2: two columns of 3
// lines each, separated by a 60px gutter on a 600x800 page, must produce
// one block per column plus a tall vertical whitespace-cover rectangle in
// the gutter between them.
func TestProcessTwoColumnGutter(t *testing.T) {
	var items []model.DocItem
	for row := 0; row < 3; row++ {
		y := float32(row) * 30
		items = append(items, buildColumn(0, y)...)
		items = append(items, buildColumn(140, y)...)
	}

	var cover []model.BoundingBox
	tracer := TracerFunc(func(stage string, boxes []model.BoundingBox) {
		if stage == "cover" {
			cover = boxes
		}
	})

	blocks, err := Process(items, model.Size{W: 600, H: 800}, model.DefaultTuning(), tracer)
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	foundGutter := false
	for _, c := range cover {
		if c.Left() >= 75 && c.Right() <= 145 && c.Height() >= 30 {
			foundGutter = true
		}
	}
	require.True(t, foundGutter, "expected a tall vertical cover rectangle in the column gutter, got %+v", cover)
}

// TestProcessFigureAbsorption is spec.md §8 scenario S4: a narrow path
// sitting between two char runs on the same line must be absorbed into
// that line, not emitted as a separate figure block.
func TestProcessFigureAbsorption(t *testing.T) {
	var items []model.DocItem
	for i := 0; i < 3; i++ {
		x := float32(i) * 10
		items = append(items, makeChar(x, 100, x+8, 114))
	}
	for i := 0; i < 3; i++ {
		x := 60 + float32(i)*10
		items = append(items, makeChar(x, 100, x+8, 114))
	}
	items = append(items, model.DocItem{
		BoundingBox: model.NewBoundingBox(50, 100, 52, 115),
		Type:        model.Path,
	})

	blocks, err := Process(items, model.Size{W: 200, H: 200}, model.DefaultTuning(), nil)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Equal(t, model.TextBlock, blocks[0].Kind)
	require.Len(t, blocks[0].Text.Lines, 1)
	require.Len(t, blocks[0].Text.Lines[0].Items, 7)
}

// TestWalkChainPanicsOnReusedChar is spec.md §4.5/§7: a right-neighbour
// map that (incorrectly) points two different chars at the same
// already-consumed char must abort as a fatal invariant violation, not
// silently truncate the chain.
func TestWalkChainPanicsOnReusedChar(t *testing.T) {
	p := newPage(nil, model.Size{W: 100, H: 100}, model.DefaultTuning())
	p.items = []model.DocItem{
		makeChar(0, 0, 5, 10),
		makeChar(6, 0, 11, 10),
		makeChar(12, 0, 17, 10),
	}
	right := map[model.ItemRef]model.ItemRef{0: 2, 1: 2}
	used := map[model.ItemRef]bool{}

	require.Panics(t, func() {
		p.walkChain(0, right, used)
		p.walkChain(1, right, used)
	})
}

func TestProcessTracesStages(t *testing.T) {
	var items []model.DocItem
	for col := 0; col < 4; col++ {
		x := float32(col) * 6
		items = append(items, makeChar(x, 0, x+5, 10))
	}
	var seen []string
	tracer := TracerFunc(func(stage string, boxes []model.BoundingBox) {
		seen = append(seen, stage)
	})
	_, err := Process(items, model.Size{W: 200, H: 200}, model.DefaultTuning(), tracer)
	require.NoError(t, err)
	require.Contains(t, seen, "cover")
	require.Contains(t, seen, "lines")
	require.Contains(t, seen, "blocks")
}
