/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

// DocItemType tags the kind of object a DocItem represents.
type DocItemType int

const (
	Char DocItemType = iota
	Image
	Path
	VerticalLine
	HorizontalLine
	SolidRectangle
	Background
)

func (t DocItemType) String() string {
	switch t {
	case Char:
		return "Char"
	case Image:
		return "Image"
	case Path:
		return "Path"
	case VerticalLine:
		return "VerticalLine"
	case HorizontalLine:
		return "HorizontalLine"
	case SolidRectangle:
		return "SolidRectangle"
	case Background:
		return "Background"
	default:
		return "Unknown"
	}
}

// DocItem is a single positioned object on a page: a glyph, a path, an
// image, or a classified ruler/rectangle. The Baseline/Ascent/Descent/
// BaselineAngle/Char fields are only meaningful when Type == Char.
type DocItem struct {
	BoundingBox
	Type DocItemType

	Baseline      float32
	Ascent        float32
	Descent       float32
	BaselineAngle float32
	Char          rune
}

// BBox makes DocItem implement Bounded.
func (it DocItem) BBox() BoundingBox { return it.BoundingBox }

// ItemRef is a stable reference to a DocItem in a page's item arena.
type ItemRef int

// ListType classifies the bullet/numbering style of a DocLine, reserved for
// callers that want to render a line as part of a list; the layout engine
// itself never sets this to anything but ListNone.
type ListType int

const (
	ListNone ListType = iota
	ListBulleted
	ListNumbered
)

// DocLine is a horizontal run of items read together: the union of one
// line's worth of glyphs (and any absorbed rulers/small figures). Items
// carries the actual DocItem values, not arena references, so a DocLine
// remains meaningful once handed out of the page it was built from.
type DocLine struct {
	BoundingBox
	Baseline float32
	ID       int
	ListType ListType
	TextLeft float32
	Items    []DocItem
}

// BBox makes DocLine implement Bounded.
func (l *DocLine) BBox() BoundingBox { return l.BoundingBox }

// BlockKind tags the payload carried by a DocBlock.
type BlockKind int

const (
	TextBlock BlockKind = iota
	FigureBlock
	TableBlock
	FormulaBlock
)

func (k BlockKind) String() string {
	switch k {
	case TextBlock:
		return "Text"
	case FigureBlock:
		return "Figure"
	case TableBlock:
		return "Table"
	case FormulaBlock:
		return "Formula"
	default:
		return "Unknown"
	}
}

// DocArea classifies a block's coarse position on the page. This is a
// supplement beyond spec.md (see SPEC_FULL.md §6): it is a per-page
// geometric fact, not a semantic classification, so it is carried even
// though semantic classification beyond {Text,Figure,Table,Formula} is
// out of scope.
type DocArea int

const (
	AreaBody DocArea = iota
	AreaHeader
	AreaFooter
	AreaLeftSidebar
	AreaRightSidebar
	AreaWatermark
)

// TableCell is a single cell of a TablePayload. The layout engine never
// populates table blocks; the type exists for forward compatibility per
// spec.md §9.
type TableCell struct {
	Text             *DocBlock
	Row, RowSpan     int16
	Col, ColSpan     int16
}

// TextPayload is the payload of a Text DocBlock.
type TextPayload struct {
	Lines []DocLine
}

// FigurePayload is the payload of a Figure DocBlock.
type FigurePayload struct {
	Caption *DocBlock
}

// TablePayload is the payload of a Table DocBlock. Never populated by this
// pipeline; reserved for forward compatibility.
type TablePayload struct {
	Caption *DocBlock
	Cells   []TableCell
}

// FormulaPayload is the payload of a Formula DocBlock. Never populated by
// this pipeline; reserved for forward compatibility.
type FormulaPayload struct {
	Latex string
}

// DocBlock is a maximal region of the page belonging to one logical unit:
// a paragraph's worth of lines, a figure, a table, or a formula. Kind
// determines which payload pointer is non-nil.
type DocBlock struct {
	BoundingBox
	// PageArea is named to avoid shadowing the embedded BoundingBox.Area()
	// method.
	PageArea DocArea
	Kind     BlockKind

	Text    *TextPayload
	Figure  *FigurePayload
	Table   *TablePayload
	Formula *FormulaPayload
}

// BBox makes DocBlock implement Bounded.
func (b *DocBlock) BBox() BoundingBox { return b.BoundingBox }

// NewTextBlock returns an empty Text DocBlock seeded with `line`'s bbox.
func NewTextBlock(line DocLine) *DocBlock {
	return &DocBlock{
		BoundingBox: line.BoundingBox,
		Kind:        TextBlock,
		Text:        &TextPayload{Lines: []DocLine{line}},
	}
}

// NewFigureBlock returns a Figure DocBlock with the given bbox.
func NewFigureBlock(bbox BoundingBox) *DocBlock {
	return &DocBlock{
		BoundingBox: bbox,
		Kind:        FigureBlock,
		Figure:      &FigurePayload{},
	}
}
