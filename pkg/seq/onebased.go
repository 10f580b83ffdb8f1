package seq

import "fmt"

// PositionError reports a position outside a one-based sequence's domain.
type PositionError struct {
	Position int
	First    int
	Last     int
}

func (e *PositionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("seq: position %d outside [%d, %d]", e.Position, e.First, e.Last)
}

// OneBased is a sequence whose valid domain is [1, Len()]. Position 0 is
// invalid by construction, so its checked access has observably different
// bounds than a zero-based fallback would assume.
type OneBased[E any] struct {
	elems []E
}

// OneBasedOf wraps a copy of elems in a one-based sequence.
func OneBasedOf[E any](elems ...E) *OneBased[E] {
	return &OneBased[E]{elems: append([]E(nil), elems...)}
}

// Len returns the element count. Note Len() is not the upper bound of the
// valid domain exclusive; it is the last valid position inclusive.
func (s *OneBased[E]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.elems)
}

// At returns the element at position, failing with a PositionError outside
// [1, Len()].
func (s *OneBased[E]) At(position int) (E, error) {
	var zero E
	if s == nil || position < 1 || position > len(s.elems) {
		return zero, &PositionError{Position: position, First: 1, Last: s.Len()}
	}
	return s.elems[position-1], nil
}
