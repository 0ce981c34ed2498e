/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package encoding serializes DocBlocks to the JSON shape spec.md §6
// defines, using github.com/bytedance/sonic in place of encoding/json,
// grounded on antflydb-antfly-go's sonic.Marshal/Unmarshal usage.
package encoding

import (
	"io"

	"github.com/bytedance/sonic"

	"github.com/unidoc/pdflayout/model"
)

// blockJSON is the wire shape of a DocBlock: type, bbox, and whichever of
// lines/caption its Kind populates.
type blockJSON struct {
	Type    string     `json:"type"`
	Area    string     `json:"area"`
	BBox    bboxJSON   `json:"bbox"`
	Lines   []lineJSON `json:"lines,omitempty"`
	Caption *blockJSON `json:"caption,omitempty"`
}

type lineJSON struct {
	BBox     bboxJSON   `json:"bbox"`
	Baseline float32    `json:"baseline"`
	Chars    []charJSON `json:"chars,omitempty"`
}

type charJSON struct {
	BBox      bboxJSON `json:"bbox"`
	Codepoint rune     `json:"codepoint"`
	Baseline  float32  `json:"baseline"`
	Ascent    float32  `json:"ascent"`
	Descent   float32  `json:"descent"`
}

type bboxJSON struct {
	X0 float32 `json:"x0"`
	Y0 float32 `json:"y0"`
	X1 float32 `json:"x1"`
	Y1 float32 `json:"y1"`
}

func toBBoxJSON(b model.BoundingBox) bboxJSON {
	return bboxJSON{X0: b.Left(), Y0: b.Top(), X1: b.Right(), Y1: b.Bottom()}
}

func toLineJSON(l model.DocLine) lineJSON {
	out := lineJSON{BBox: toBBoxJSON(l.BoundingBox), Baseline: l.Baseline}
	for _, it := range l.Items {
		if it.Type != model.Char {
			continue
		}
		out.Chars = append(out.Chars, charJSON{
			BBox:      toBBoxJSON(it.BoundingBox),
			Codepoint: it.Char,
			Baseline:  it.Baseline,
			Ascent:    it.Ascent,
			Descent:   it.Descent,
		})
	}
	return out
}

func toBlockJSON(b *model.DocBlock) blockJSON {
	out := blockJSON{
		Type: b.Kind.String(),
		Area: areaName(b.PageArea),
		BBox: toBBoxJSON(b.BoundingBox),
	}
	switch b.Kind {
	case model.TextBlock:
		for _, l := range b.Text.Lines {
			out.Lines = append(out.Lines, toLineJSON(l))
		}
	case model.FigureBlock:
		if b.Figure.Caption != nil {
			captionJSON := toBlockJSON(b.Figure.Caption)
			out.Caption = &captionJSON
		}
	}
	return out
}

func areaName(a model.DocArea) string {
	switch a {
	case model.AreaHeader:
		return "header"
	case model.AreaFooter:
		return "footer"
	case model.AreaLeftSidebar:
		return "left-sidebar"
	case model.AreaRightSidebar:
		return "right-sidebar"
	case model.AreaWatermark:
		return "watermark"
	default:
		return "body"
	}
}

// EncodeBlocks writes blocks to w as a JSON array in spec.md §6's shape.
func EncodeBlocks(w io.Writer, blocks []*model.DocBlock) error {
	out := make([]blockJSON, len(blocks))
	for i, b := range blocks {
		out[i] = toBlockJSON(b)
	}
	data, err := sonic.Marshal(out)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
