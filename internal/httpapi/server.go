/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package httpapi exposes a document's blocks and debug overlays over
// HTTP, grounded on chinmay-sawant-gopdfsuit's cmd/gopdfsuit/main.go:
// gin.New() plus a lightweight panic-recovery middleware instead of
// gin.Default()'s heavier stack.
package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/unidoc/pdflayout"
	"github.com/unidoc/pdflayout/common"
	"github.com/unidoc/pdflayout/debugviz"
	"github.com/unidoc/pdflayout/encoding"
)

// NewRouter builds a gin.Engine serving two routes over doc:
// GET /pages/:n/blocks  -- JSON blocks for page n
// GET /pages/:n/debug.png -- a rendered overlay of every pipeline stage
func NewRouter(doc *pdflayout.Handle) *gin.Engine {
	router := gin.New()
	router.Use(recovery())

	router.GET("/pages/:n/blocks", func(c *gin.Context) {
		page, ok := pageParam(c)
		if !ok {
			return
		}
		blocks, err := doc.GetPageBlocks(page)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusOK)
		c.Header("Content-Type", "application/json")
		if err := encoding.EncodeBlocks(c.Writer, blocks); err != nil {
			common.Log.Errorf("httpapi: encode blocks for page %d: %v", page, err)
		}
	})

	router.GET("/pages/:n/debug.png", func(c *gin.Context) {
		page, ok := pageParam(c)
		if !ok {
			return
		}
		rec := &debugviz.Recorder{}
		doc.EnableDebug(rec)
		defer doc.EnableDebug(nil)

		if _, err := doc.GetPageBlocks(page); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		size, err := doc.PageSize(page)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		width, height := int(size.W), int(size.H)
		base, err := doc.RenderPage(page, width, height)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Status(http.StatusOK)
		c.Header("Content-Type", "image/png")
		if err := rec.Render(c.Writer, base, width, height); err != nil {
			common.Log.Errorf("httpapi: render debug overlay for page %d: %v", page, err)
		}
	})

	return router
}

func pageParam(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page number"})
		return 0, false
	}
	return n, true
}

// recovery is the lightweight panic-recovery middleware gopdfsuit uses in
// place of gin.Recovery(): on a panic it logs the recovered value and
// aborts with 500; no stack trace is captured.
func recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				common.Log.Errorf("httpapi: panic recovered: %v", r)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}
