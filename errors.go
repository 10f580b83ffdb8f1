package at

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfRange is wrapped by every failure the dispatcher raises itself.
// Failures produced by a collection's own checked access are passed through
// untouched and may not wrap it.
var ErrOutOfRange = errors.New("at: index out of range")

// ErrNotIndexable is wrapped when no strategy can satisfy the request.
var ErrNotIndexable = errors.New("at: collection is not indexable")

// RangeError captures the failed bounds check raised by the Index+Len and
// native strategies.
type RangeError struct {
	Index    any
	Length   int
	Strategy Strategy
}

func (e *RangeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Strategy == StrategyNone {
		return fmt.Sprintf("at: index %v out of range [0, %d)", e.Index, e.Length)
	}
	return fmt.Sprintf("at: index %v out of range [0, %d) via %s", e.Index, e.Length, e.Strategy)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// DispatchError reports that no strategy accepts the collection and index
// arguments. It is the runtime surface of what the typed API rejects at
// compile time.
type DispatchError struct {
	Collection string
	Indices    []string
}

func (e *DispatchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if len(e.Indices) == 0 {
		return fmt.Sprintf("at: no access strategy for %s", e.Collection)
	}
	return fmt.Sprintf("at: no access strategy for %s with indices (%s)", e.Collection, strings.Join(e.Indices, ", "))
}

func (e *DispatchError) Unwrap() error {
	return ErrNotIndexable
}

func rangeError(index any, length int, strategy Strategy) *RangeError {
	return &RangeError{
		Index:    index,
		Length:   length,
		Strategy: strategy,
	}
}

func notIndexable(collection any, indices []any) error {
	return &DispatchError{
		Collection: fmt.Sprintf("%T", collection),
		Indices:    describeIndices(indices),
	}
}
