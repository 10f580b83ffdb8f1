package seq

import "fmt"

// KeyError reports a key with no element in a sparse collection.
type KeyError struct {
	Key any
}

func (e *KeyError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("seq: no element for key %v", e.Key)
}

// Sparse is a keyed collection whose checked access accepts non-integral
// keys, the kind of indexing scheme a size-based fallback cannot express.
type Sparse[K comparable, E any] struct {
	elems map[K]E
}

// NewSparse constructs an empty sparse collection.
func NewSparse[K comparable, E any]() *Sparse[K, E] {
	return &Sparse[K, E]{elems: make(map[K]E)}
}

// Set stores value under key.
func (s *Sparse[K, E]) Set(key K, value E) {
	if s.elems == nil {
		s.elems = make(map[K]E)
	}
	s.elems[key] = value
}

// Len returns the element count.
func (s *Sparse[K, E]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.elems)
}

// At returns the element stored under key, failing with a KeyError when the
// key holds no element.
func (s *Sparse[K, E]) At(key K) (E, error) {
	var zero E
	if s == nil {
		return zero, &KeyError{Key: key}
	}
	element, ok := s.elems[key]
	if !ok {
		return zero, &KeyError{Key: key}
	}
	return element, nil
}
