// Package layering composes priority-ordered element layers into one
// effective sequence. It backs the root package's Stack collection.
package layering

import (
	"fmt"
	"sort"
)

// Layer binds a named precedence bucket to a snapshot of elements. Higher
// priority values represent stronger layers.
type Layer[E any] struct {
	Name     string
	Priority int
	Elems    []E
	Metadata map[string]any
}

// Covers reports whether the layer's snapshot holds index.
func (l Layer[E]) Covers(index int) bool {
	return index >= 0 && index < len(l.Elems)
}

// Validate checks layer names are present and unique.
func Validate[E any](layers []Layer[E]) error {
	seen := make(map[string]struct{}, len(layers))
	for _, layer := range layers {
		if layer.Name == "" {
			return fmt.Errorf("layering: layer name must not be empty")
		}
		if _, ok := seen[layer.Name]; ok {
			return fmt.Errorf("layering: duplicate layer name %q", layer.Name)
		}
		seen[layer.Name] = struct{}{}
	}
	return nil
}

// Sort returns a copy ordered strongest first. The sort is stable so layers
// sharing a priority keep their declaration order.
func Sort[E any](layers []Layer[E]) []Layer[E] {
	sorted := append([]Layer[E](nil), layers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return sorted
}
