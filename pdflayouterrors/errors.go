/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package pdflayouterrors defines the sentinel errors pdflayout returns,
// wrapped with call-site context via github.com/pkg/errors the way the
// pdfmarkdown collaborator pack wraps its go-pdfium calls.
package pdflayouterrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidDocument means the supplied bytes could not be opened as a PDF
// document at all.
var ErrInvalidDocument = errors.New("invalid document")

// ErrPageOutOfRange means a page index was outside [0, PageCount).
var ErrPageOutOfRange = errors.New("page index out of range")

// ErrInvariantViolation means the layout pipeline reached a state its own
// algorithm guarantees rule out -- a bug in this package, not bad input.
// Callers should treat it as fatal to the current page, not retry it.
var ErrInvariantViolation = errors.New("layout invariant violation")

// WrapInvalidDocument wraps err as ErrInvalidDocument with context.
func WrapInvalidDocument(err error, context string) error {
	return errors.Wrap(joinSentinel(ErrInvalidDocument, err), context)
}

// WrapPageOutOfRange reports page as outside [0, count).
func WrapPageOutOfRange(page, count int) error {
	return errors.Wrapf(ErrPageOutOfRange, "page %d of %d", page, count)
}

// WrapInvariantViolation wraps a caught invariant violation with context
// describing which stage detected it.
func WrapInvariantViolation(context string) error {
	return errors.Wrap(ErrInvariantViolation, context)
}

func joinSentinel(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
