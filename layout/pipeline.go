/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package layout implements the page-level document layout analysis
// pipeline: items in, text lines, text blocks and figure blocks out.
// Nothing here talks to a PDF library; model.DocItem is the only input
// and model.DocBlock the only output.
package layout

import (
	"github.com/unidoc/pdflayout/common"
	"github.com/unidoc/pdflayout/model"
	"github.com/unidoc/pdflayout/pdflayouterrors"
)

// invariantViolation is the panic payload panicInvariantViolation raises.
// Process recovers it at the pipeline boundary and converts it to an
// error (spec.md §7: InvariantViolation is fatal and internal, surfaced
// to the caller as a return value, never as an uncaught panic).
type invariantViolation struct {
	context string
}

// panicInvariantViolation aborts the current page's pipeline run with a
// diagnostic. Call only where the algorithm's own invariants guarantee
// the condition can't occur on valid input -- an already-used char
// revisited during chaining, not a malformed-input condition.
func panicInvariantViolation(context string) {
	common.Log.Errorf("invariant violation: %s", context)
	panic(invariantViolation{context: context})
}

// Process runs the full pipeline over one page's items: preliminary data
// preparation, whitespace cover, line formation, block formation, figure
// aggregation and area classification, in that order. A page with no char
// items is degenerate input (spec.md §7): Process returns (nil, nil)
// rather than an error.
func Process(items []model.DocItem, size model.Size, tuning model.Tuning, tracer Tracer) (blocks []*model.DocBlock, err error) {
	hasChar := false
	for _, it := range items {
		if it.Type == model.Char {
			hasChar = true
			break
		}
	}
	if !hasChar {
		common.Log.Debugf("Process: no char items, degenerate page")
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			iv, ok := r.(invariantViolation)
			if !ok {
				panic(r)
			}
			blocks, err = nil, pdflayouterrors.WrapInvariantViolation(iv.context)
		}
	}()

	p := newPage(items, size, tuning)
	if tracer != nil {
		tracer.Trace("cover", p.cover)
	}

	lines := p.findLines()
	p.trace(tracer, "lines", lineBoxes(lines))

	blocks = p.findBlocks(lines)
	figureBlocks := p.aggregateFigures()
	blocks = append(blocks, figureBlocks...)

	p.classifyArea(blocks)
	sortBlocks(blocks)
	p.trace(tracer, "blocks", blockBoxes(blocks))

	common.Log.Infof("Process: %d lines, %d blocks (%d figures)", len(lines), len(blocks), len(figureBlocks))
	return blocks, nil
}
