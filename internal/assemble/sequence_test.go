package assemble

import "testing"

func TestSequenceInsert(t *testing.T) {
	t.Run("positions after insertion point shift, earlier ones do not", func(t *testing.T) {
		s := NewSequence(10)
		s.Track("before", 2)
		s.Track("at", 5)
		s.Track("after", 8)

		s.Insert(5, 3)

		if got, _ := s.Pos("before"); got != 2 {
			t.Errorf("before = %d, want 2", got)
		}
		if got, _ := s.Pos("at"); got != 8 {
			t.Errorf("at = %d, want 8", got)
		}
		if got, _ := s.Pos("after"); got != 11 {
			t.Errorf("after = %d, want 11", got)
		}
		if s.Len() != 13 {
			t.Errorf("Len() = %d, want 13", s.Len())
		}
	})

	t.Run("insert after cover shifts every later cover by exactly k", func(t *testing.T) {
		s := NewSequence(6)
		s.Track("cover-1", 1)
		s.Track("cover-2", 3)
		s.Track("cover-3", 5)

		// Splice 4 pages immediately after cover-1.
		s.Insert(2, 4)

		want := map[string]int{"cover-1": 1, "cover-2": 7, "cover-3": 9}
		for key, w := range want {
			if got, _ := s.Pos(key); got != w {
				t.Errorf("%s = %d, want %d", key, got, w)
			}
		}
	})

	t.Run("zero or negative insert is a no-op", func(t *testing.T) {
		s := NewSequence(4)
		s.Track("a", 2)
		s.Insert(1, 0)
		s.Insert(1, -5)
		if got, _ := s.Pos("a"); got != 2 || s.Len() != 4 {
			t.Errorf("sequence changed: pos=%d len=%d", got, s.Len())
		}
	})

	t.Run("successive splices accumulate", func(t *testing.T) {
		s := NewSequence(5)
		s.Track("cover-1", 1)
		s.Track("cover-2", 2)
		s.Track("cover-3", 3)

		s.Insert(2, 3) // after cover-1
		s.Insert(6, 5) // after cover-2 at its shifted position

		if got, _ := s.Pos("cover-2"); got != 5 {
			t.Errorf("cover-2 = %d, want 5", got)
		}
		if got, _ := s.Pos("cover-3"); got != 11 {
			t.Errorf("cover-3 = %d, want 11", got)
		}
		if s.Len() != 13 {
			t.Errorf("Len() = %d, want 13", s.Len())
		}
	})
}
