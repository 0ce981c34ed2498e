/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package pdflayout turns the items on a PDF page into text lines, text
// blocks and figure blocks. Open a document, then call GetPageBlocks per
// page; everything else in this module supports that one operation.
package pdflayout

import (
	"github.com/klippa-app/go-pdfium"

	"github.com/unidoc/pdflayout/collaborator"
	"github.com/unidoc/pdflayout/common"
	"github.com/unidoc/pdflayout/layout"
	"github.com/unidoc/pdflayout/model"
	"github.com/unidoc/pdflayout/pdflayouterrors"
)

// Handle is an open document. One Handle must not be used from more than
// one goroutine at a time (spec.md §5); independent Handles over
// independent pdfium instances are safe to run concurrently.
type Handle struct {
	collab collaborator.Collaborator
	tuning model.Tuning
	tracer layout.Tracer
}

// Open opens the PDF document held in data. tuning may be nil, meaning
// model.DefaultTuning().
func Open(instance pdfium.Pdfium, data []byte, tuning *model.Tuning) (*Handle, error) {
	t := model.DefaultTuning()
	if tuning != nil {
		t = *tuning
	}
	collab, err := collaborator.OpenBytes(instance, data, t)
	if err != nil {
		return nil, pdflayouterrors.WrapInvalidDocument(err, "pdflayout.Open")
	}
	return &Handle{collab: collab, tuning: t}, nil
}

// PageCount returns the number of pages in the document.
func (h *Handle) PageCount() int { return h.collab.PageCount() }

// PageSize returns the upright size of page pageIndex.
func (h *Handle) PageSize(pageIndex int) (model.Size, error) {
	if err := h.checkPageIndex(pageIndex); err != nil {
		return model.Size{}, err
	}
	return h.collab.PageSize(pageIndex)
}

// RenderPage rasterises page pageIndex to an RGB24 buffer of
// width*height*3 bytes.
func (h *Handle) RenderPage(pageIndex, width, height int) ([]byte, error) {
	if err := h.checkPageIndex(pageIndex); err != nil {
		return nil, err
	}
	return h.collab.RenderPage(pageIndex, width, height)
}

// EnableDebug attaches a Tracer that receives every pipeline stage's
// output boxes on later GetPageBlocks calls; debugviz.Recorder keeps them
// to draw overlays. Passing a nil tracer disables tracing again.
func (h *Handle) EnableDebug(tracer layout.Tracer) {
	h.tracer = tracer
}

// GetPageBlocks runs the layout pipeline over page pageIndex and returns
// its text and figure blocks. A page with no text content is degenerate
// input: GetPageBlocks returns (nil, nil), not an error.
func (h *Handle) GetPageBlocks(pageIndex int) ([]*model.DocBlock, error) {
	if err := h.checkPageIndex(pageIndex); err != nil {
		return nil, err
	}
	size, err := h.collab.PageSize(pageIndex)
	if err != nil {
		return nil, err
	}
	items, err := h.collab.PageItems(pageIndex)
	if err != nil {
		return nil, err
	}
	common.Log.Debugf("GetPageBlocks: page %d, %d items", pageIndex, len(items))
	return layout.Process(items, size, h.tuning, h.tracer)
}

// Close releases the underlying document.
func (h *Handle) Close() error {
	return h.collab.Close()
}

func (h *Handle) checkPageIndex(pageIndex int) error {
	if pageIndex < 0 || pageIndex >= h.collab.PageCount() {
		return pdflayouterrors.WrapPageOutOfRange(pageIndex, h.collab.PageCount())
	}
	return nil
}
