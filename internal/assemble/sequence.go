// Package assemble splices attachment PDFs into the rendered TOC/cover
// document. Every insertion shifts everything after it, so positions recorded
// before a splice are maintained through a live offset table rather than
// recomputed from estimates.
package assemble

// Sequence tracks named positions in a growing page sequence. Positions are
// zero-based page indices. Insertions shift every tracked position at or
// after the insertion point.
type Sequence struct {
	length    int
	positions map[string]int
}

// NewSequence creates a sequence of n initial pages.
func NewSequence(n int) *Sequence {
	return &Sequence{
		length:    n,
		positions: make(map[string]int),
	}
}

// Len returns the current page count.
func (s *Sequence) Len() int {
	return s.length
}

// Track records a named position in the current sequence.
func (s *Sequence) Track(key string, pos int) {
	s.positions[key] = pos
}

// Pos returns a tracked position.
func (s *Sequence) Pos(key string) (int, bool) {
	p, ok := s.positions[key]
	return p, ok
}

// Insert splices n pages starting at index at. Every tracked position >= at
// moves forward by n; positions before at are untouched.
func (s *Sequence) Insert(at, n int) {
	if n <= 0 {
		return
	}
	for key, pos := range s.positions {
		if pos >= at {
			s.positions[key] = pos + n
		}
	}
	s.length += n
}

// Positions returns a copy of the tracked position table.
func (s *Sequence) Positions() map[string]int {
	out := make(map[string]int, len(s.positions))
	for k, v := range s.positions {
		out[k] = v
	}
	return out
}
