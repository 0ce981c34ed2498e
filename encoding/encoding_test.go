/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package encoding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unidoc/pdflayout/model"
)

func TestEncodeBlocks(t *testing.T) {
	line := model.DocLine{
		BoundingBox: model.NewBoundingBox(0, 0, 10, 10),
		Baseline:    9,
	}
	block := model.NewTextBlock(line)
	block.PageArea = model.AreaHeader

	var buf bytes.Buffer
	err := EncodeBlocks(&buf, []*model.DocBlock{block})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, `"type":"Text"`)
	require.Contains(t, out, `"area":"header"`)
	require.Contains(t, out, `"baseline":9`)
}

func TestEncodeFigureWithCaption(t *testing.T) {
	fig := model.NewFigureBlock(model.NewBoundingBox(0, 0, 50, 50))
	caption := model.NewTextBlock(model.DocLine{BoundingBox: model.NewBoundingBox(0, 50, 50, 60)})
	fig.Figure.Caption = caption

	var buf bytes.Buffer
	require.NoError(t, EncodeBlocks(&buf, []*model.DocBlock{fig}))
	require.Contains(t, buf.String(), `"caption"`)
}
