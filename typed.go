package at

import (
	"golang.org/x/exp/constraints"
)

// The functions below are the statically typed face of the dispatcher: the
// capability test is the type constraint itself, so a collection satisfying
// none of them fails to compile rather than failing at runtime.

// Element forwards to the collection's own checked access. The result and
// failure behaviour are the collection's, unmodified.
func Element[E any](collection Checked[E], index int) (E, error) {
	return collection.At(index)
}

// Indexed bounds-checks index against the collection's size before calling
// the unchecked operation. The unchecked operation is never invoked for an
// index outside [0, Len()).
func Indexed[E any](collection Unchecked[E], index int) (E, error) {
	var zero E
	length := collection.Len()
	if index < 0 || index >= length {
		return zero, rangeError(index, length, StrategyIndexLen)
	}
	return collection.Index(index), nil
}

// Slice performs checked access on a slice. Fixed-bound arrays take the same
// path via a slice conversion at the call site (arr[:]), or dynamically via
// Get, which recognises the array kind directly.
func Slice[S ~[]E, E any, I constraints.Integer](s S, index I) (E, error) {
	var zero E
	if index < 0 || uint64(index) >= uint64(len(s)) {
		return zero, rangeError(index, len(s), StrategyNative)
	}
	return s[index], nil
}

// Byte performs checked access on a string's bytes.
func Byte[I constraints.Integer](s string, index I) (byte, error) {
	if index < 0 || uint64(index) >= uint64(len(s)) {
		return 0, rangeError(index, len(s), StrategyNative)
	}
	return s[index], nil
}

// Key performs checked access on a map, treating a missing key as an
// out-of-range condition.
func Key[M ~map[K]E, K comparable, E any](m M, key K) (E, error) {
	element, ok := m[key]
	if !ok {
		var zero E
		return zero, rangeError(key, len(m), StrategyNative)
	}
	return element, nil
}
