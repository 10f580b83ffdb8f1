package layering

import "reflect"

// Width returns the union domain of the layers: the largest snapshot length.
func Width[E any](layers []Layer[E]) int {
	width := 0
	for _, layer := range layers {
		if len(layer.Elems) > width {
			width = len(layer.Elems)
		}
	}
	return width
}

// Pick resolves the effective element at index across layers ordered
// strongest to weakest: the strongest covering layer with a non-zero element
// wins, and when every covering layer holds a zero value the strongest
// covering layer still supplies it. The second result is the position of the
// supplying layer, or -1 when no layer covers index.
func Pick[E any](layers []Layer[E], index int) (E, int, bool) {
	var zero E
	fallback := -1
	for i, layer := range layers {
		if !layer.Covers(index) {
			continue
		}
		if !isZero(layer.Elems[index]) {
			return layer.Elems[index], i, true
		}
		if fallback == -1 {
			fallback = i
		}
	}
	if fallback == -1 {
		return zero, -1, false
	}
	return layers[fallback].Elems[index], fallback, true
}

// Flatten composes the full effective sequence over the union domain.
func Flatten[E any](layers []Layer[E]) []E {
	width := Width(layers)
	if width == 0 {
		return nil
	}
	flattened := make([]E, width)
	for i := 0; i < width; i++ {
		if value, _, ok := Pick(layers, i); ok {
			flattened[i] = value
		}
	}
	return flattened
}

// Coalesce returns the first non-zero value, or the zero value when none is.
func Coalesce[E any](values ...E) E {
	var zero E
	for _, value := range values {
		if !isZero(value) {
			return value
		}
	}
	return zero
}

func isZero[E any](value E) bool {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return true
	}
	return rv.IsZero()
}
