/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package collaborator

import (
	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"

	"github.com/unidoc/pdflayout/common"
	"github.com/unidoc/pdflayout/model"
)

// pdfiumObjectPath is the pdfium page object type for vector paths
// (PDFPAGEOBJ_PATH), the only object type pdflayout classifies into
// rulers/rectangles vs. generic paths.
const pdfiumObjectPath = 3

// pdfiumObjectImage is PDFPAGEOBJ_IMAGE.
const pdfiumObjectImage = 2

// Pdfium is the production Collaborator, backed by
// github.com/klippa-app/go-pdfium's webassembly instance pool. Grounded on
// ivanvanderbyl-pdfmarkdown's Converter/ExtractPage: OpenDocument, then
// FPDF_LoadPage/FPDFText_LoadPage per page, converting pdfium's
// bottom-left-origin coordinates to pdflayout's top-left-origin ones.
type Pdfium struct {
	instance  pdfium.Pdfium
	document  references.FPDF_DOCUMENT
	pageCount int
	tuning    model.Tuning
}

// OpenBytes opens a PDF document held entirely in memory. tuning drives
// this Collaborator's ruler/rectangle classification (spec.md §3's ruler
// constants) and should be the same Tuning the caller passes to the
// layout pipeline.
func OpenBytes(instance pdfium.Pdfium, data []byte, tuning model.Tuning) (*Pdfium, error) {
	doc, err := instance.OpenDocument(&requests.OpenDocument{File: &data})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	countResp, err := instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{Document: doc.Document})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page count")
	}
	return &Pdfium{instance: instance, document: doc.Document, pageCount: countResp.PageCount, tuning: tuning}, nil
}

// PageCount implements Collaborator.
func (c *Pdfium) PageCount() int { return c.pageCount }

// Close implements Collaborator.
func (c *Pdfium) Close() error {
	_, err := c.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: c.document})
	return err
}

func (c *Pdfium) loadPage(pageIndex int) (references.FPDF_PAGE, func(), error) {
	resp, err := c.instance.FPDF_LoadPage(&requests.FPDF_LoadPage{Document: c.document, Index: pageIndex})
	if err != nil {
		return references.FPDF_PAGE(""), nil, errors.Wrapf(err, "failed to load page %d", pageIndex)
	}
	closeFn := func() {
		if _, err := c.instance.FPDF_ClosePage(&requests.FPDF_ClosePage{Page: resp.Page}); err != nil {
			common.Log.Errorf("FPDF_ClosePage page %d: %v", pageIndex, err)
		}
	}
	return resp.Page, closeFn, nil
}

// PageSize implements Collaborator. The returned size already accounts for
// the page's declared rotation: a 90/270 degree page reports width and
// height swapped from the raw MediaBox.
func (c *Pdfium) PageSize(pageIndex int) (model.Size, error) {
	page, closeFn, err := c.loadPage(pageIndex)
	if err != nil {
		return model.Size{}, err
	}
	defer closeFn()

	w, err := c.instance.FPDF_GetPageWidthF(&requests.FPDF_GetPageWidthF{Page: requests.Page{ByReference: &page}})
	if err != nil {
		return model.Size{}, errors.Wrap(err, "failed to get page width")
	}
	h, err := c.instance.FPDF_GetPageHeightF(&requests.FPDF_GetPageHeightF{Page: requests.Page{ByReference: &page}})
	if err != nil {
		return model.Size{}, errors.Wrap(err, "failed to get page height")
	}

	rotation, err := c.instance.FPDFPage_GetRotation(&requests.FPDFPage_GetRotation{Page: requests.Page{ByReference: &page}})
	if err == nil && (rotation.PageRotation == 1 || rotation.PageRotation == 3) {
		return model.Size{W: w.PageWidth, H: h.PageHeight}, nil
	}
	return model.Size{W: w.PageWidth, H: h.PageHeight}, nil
}

// PageItems implements Collaborator: every char from the text page plus
// every path/image object from the page's object list, each converted
// from pdfium's bottom-left-origin space to pdflayout's top-left-origin
// one.
func (c *Pdfium) PageItems(pageIndex int) ([]model.DocItem, error) {
	page, closeFn, err := c.loadPage(pageIndex)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	h, err := c.instance.FPDF_GetPageHeightF(&requests.FPDF_GetPageHeightF{Page: requests.Page{ByReference: &page}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page height")
	}
	pageHeight := h.PageHeight

	chars, err := c.extractChars(page, pageHeight)
	if err != nil {
		return nil, err
	}
	objects, err := c.extractObjects(page, pageHeight)
	if err != nil {
		return nil, err
	}
	return append(chars, objects...), nil
}

func (c *Pdfium) extractChars(page references.FPDF_PAGE, pageHeight float32) ([]model.DocItem, error) {
	textPage, err := c.instance.FPDFText_LoadPage(&requests.FPDFText_LoadPage{Page: requests.Page{ByReference: &page}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load text page")
	}
	defer c.instance.FPDFText_ClosePage(&requests.FPDFText_ClosePage{TextPage: textPage.TextPage})

	count, err := c.instance.FPDFText_CountChars(&requests.FPDFText_CountChars{TextPage: textPage.TextPage})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count characters")
	}

	items := make([]model.DocItem, 0, count.Count)
	for i := 0; i < count.Count; i++ {
		box, err := c.instance.FPDFText_GetCharBox(&requests.FPDFText_GetCharBox{TextPage: textPage.TextPage, Index: i})
		if err != nil {
			continue
		}
		unicode, err := c.instance.FPDFText_GetUnicode(&requests.FPDFText_GetUnicode{TextPage: textPage.TextPage, Index: i})
		if err != nil || unicode.Unicode == 0 {
			continue
		}

		top := pageHeight - float32(box.Top)
		bottom := pageHeight - float32(box.Bottom)
		items = append(items, model.DocItem{
			BoundingBox: model.NewBoundingBox(float32(box.Left), top, float32(box.Right), bottom),
			Type:        model.Char,
			Baseline:    bottom,
			Char:        rune(unicode.Unicode),
		})
	}
	return items, nil
}

func (c *Pdfium) extractObjects(page references.FPDF_PAGE, pageHeight float32) ([]model.DocItem, error) {
	count, err := c.instance.FPDFPage_CountObjects(&requests.FPDFPage_CountObjects{Page: requests.Page{ByReference: &page}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count page objects")
	}

	items := make([]model.DocItem, 0, count.Count)
	for i := 0; i < count.Count; i++ {
		obj, err := c.instance.FPDFPage_GetObject(&requests.FPDFPage_GetObject{Page: requests.Page{ByReference: &page}, Index: i})
		if err != nil {
			continue
		}
		objType, err := c.instance.FPDFPageObj_GetType(&requests.FPDFPageObj_GetType{PageObject: obj.PageObject})
		if err != nil {
			continue
		}
		bounds, err := c.instance.FPDFPageObj_GetBounds(&requests.FPDFPageObj_GetBounds{PageObject: obj.PageObject})
		if err != nil {
			continue
		}

		top := pageHeight - bounds.Top
		bottom := pageHeight - bounds.Bottom
		bbox := model.NewBoundingBox(bounds.Left, top, bounds.Right, bottom)

		switch objType.Type {
		case pdfiumObjectImage:
			items = append(items, model.DocItem{BoundingBox: bbox, Type: model.Image})
		case pdfiumObjectPath:
			items = append(items, model.DocItem{BoundingBox: bbox, Type: c.classifyPath(obj.PageObject, bbox, pageHeight)})
		}
	}
	return items, nil
}

// classifyPath tags a path object as a ruler, a solid rectangle, or a
// generic path (spec.md §6/§8 scenario S6): the ruler tests are the same
// geometric test the rest of the pipeline uses for everything else;
// SolidRectangle additionally requires the path's own segment points --
// not just its bounding box, which is rectangular for any path -- to be
// exactly the box's four corners.
func (c *Pdfium) classifyPath(obj references.FPDF_PAGEOBJECT, bbox model.BoundingBox, pageHeight float32) model.DocItemType {
	switch {
	case bbox.IsHorizontalRuler(c.tuning):
		return model.HorizontalLine
	case bbox.IsVerticalRuler(c.tuning):
		return model.VerticalLine
	case c.isAxisAlignedRectangle(obj, bbox, pageHeight):
		return model.SolidRectangle
	default:
		return model.Path
	}
}

// isAxisAlignedRectangle reports whether the path object's segment points
// are exactly bbox's four corners (in any order, any winding), i.e. a
// closed 4-or-5-point path tracing the rectangle it bounds rather than
// some other shape that happens to have the same bounding box.
func (c *Pdfium) isAxisAlignedRectangle(obj references.FPDF_PAGEOBJECT, bbox model.BoundingBox, pageHeight float32) bool {
	count, err := c.instance.FPDFPath_CountSegments(&requests.FPDFPath_CountSegments{PageObject: obj})
	if err != nil || (count.Count != 4 && count.Count != 5) {
		return false
	}

	corners := [4][2]float32{
		{bbox.Left(), bbox.Top()}, {bbox.Right(), bbox.Top()},
		{bbox.Right(), bbox.Bottom()}, {bbox.Left(), bbox.Bottom()},
	}
	var matched [4]bool
	var firstX, firstY float32

	for i := 0; i < count.Count; i++ {
		seg, err := c.instance.FPDFPath_GetPathSegment(&requests.FPDFPath_GetPathSegment{PageObject: obj, Index: i})
		if err != nil {
			return false
		}
		pt, err := c.instance.FPDFPathSegment_GetPoint(&requests.FPDFPathSegment_GetPoint{PathSegment: seg.PathSegment})
		if err != nil {
			return false
		}
		x, y := pt.X, pageHeight-pt.Y

		if i == 0 {
			firstX, firstY = x, y
		}
		// The optional 5th point of a closed path just repeats the first
		// corner; it isn't a fifth corner to match.
		if i == 4 {
			if abs32(x-firstX) > model.MinItemSize || abs32(y-firstY) > model.MinItemSize {
				return false
			}
			continue
		}

		found := false
		for ci, corner := range corners {
			if matched[ci] {
				continue
			}
			if abs32(x-corner[0]) <= model.MinItemSize && abs32(y-corner[1]) <= model.MinItemSize {
				matched[ci] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, m := range matched {
		if !m {
			return false
		}
	}
	return true
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// RenderPage implements Collaborator, rendering the page to a tightly
// packed RGB24 buffer via pdfium's bitmap renderer.
func (c *Pdfium) RenderPage(pageIndex int, width, height int) ([]byte, error) {
	page, closeFn, err := c.loadPage(pageIndex)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	render, err := c.instance.RenderPageInPixels(&requests.RenderPageInPixels{
		Page:   requests.Page{ByReference: &page},
		Width:  width,
		Height: height,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to render page bitmap")
	}
	defer render.Cleanup()
	return rgbaToRGB24(render.Result.Image.Pix), nil
}

// rgbaToRGB24 strips the alpha byte from a tightly packed RGBA buffer,
// matching the Collaborator.RenderPage contract of a tightly packed RGB24
// buffer.
func rgbaToRGB24(pix []byte) []byte {
	rgb := make([]byte, 0, len(pix)/4*3)
	for i := 0; i+3 < len(pix); i += 4 {
		rgb = append(rgb, pix[i], pix[i+1], pix[i+2])
	}
	return rgb
}
