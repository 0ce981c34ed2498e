/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package collaborator defines the boundary between pdflayout's geometric
// engine and a real PDF library. Collaborator is the interface the layout
// engine expects; Pdfium is the production implementation, backed by
// github.com/klippa-app/go-pdfium, grounded on the OpenDocument /
// FPDFText_* request idiom in ivanvanderbyl-pdfmarkdown's extract.go and
// converter.go.
package collaborator

import "github.com/unidoc/pdflayout/model"

// Collaborator extracts the raw per-page geometry pdflayout's layout
// engine consumes. Implementations are responsible for resolving page
// rotation before items are returned: every BoundingBox a Collaborator
// hands back is already in the page's upright, top-left-origin space.
type Collaborator interface {
	// PageCount returns the number of pages in the open document.
	PageCount() int

	// PageSize returns the upright size of the page at index pageIndex.
	PageSize(pageIndex int) (model.Size, error)

	// PageItems returns every char, path and image item on the page, in
	// no particular order -- the layout engine sorts them itself.
	PageItems(pageIndex int) ([]model.DocItem, error)

	// RenderPage rasterises the page to a tightly packed RGB24 buffer of
	// width*height*3 bytes, used by debugviz to draw stage overlays.
	RenderPage(pageIndex int, width, height int) ([]byte, error)

	// Close releases the underlying document and any pooled resources.
	Close() error
}
