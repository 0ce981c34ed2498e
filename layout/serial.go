/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package layout

// serialState hands out debug-friendly sequence numbers to lines as
// they're created, mirroring the teacher's serialState in
// extractor/text_bound.go (there: mark/word/bins/line/para counters).
// DocBlock carries no analogous ID (spec.md §3 gives DocLine an id but
// DocBlock none), so there is no nextBlock counterpart.
type serialState struct {
	line int
}

func (s *serialState) nextLine() int {
	id := s.line
	s.line++
	return id
}
