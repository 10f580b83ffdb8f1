package at

import (
	"errors"

	"github.com/google/uuid"

	"github.com/goliatone/go-at/layering"
)

// LayerOption configures metadata on layer creation.
type LayerOption func(*layerConfig)

type layerConfig struct {
	metadata map[string]any
}

// WithLayerMetadata attaches arbitrary metadata to the layer. The map is
// copied so the resulting layer remains immutable even if the caller mutates
// their reference.
func WithLayerMetadata(metadata map[string]any) LayerOption {
	return func(cfg *layerConfig) {
		if len(metadata) == 0 {
			return
		}
		cfg.metadata = copyMetadata(metadata)
	}
}

// NewLayer builds a layer snapshot. Elements are cloned so the layer stays
// detached from the caller's slice.
func NewLayer[E any](name string, priority int, elems []E, opts ...LayerOption) layering.Layer[E] {
	cfg := layerConfig{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return layering.Layer[E]{
		Name:     name,
		Priority: priority,
		Elems:    append([]E(nil), elems...),
		Metadata: cfg.metadata,
	}
}

// Stack is a priority-ordered overlay of element layers. It is itself a
// collection with its own checked access: the valid domain is the union of
// its layers, so its bounds can differ from any single layer's length.
type Stack[E any] struct {
	layers     []layering.Layer[E]
	snapshotID string
}

// NewStack assembles a stack from layers, ordering them strongest first.
func NewStack[E any](layers ...layering.Layer[E]) (*Stack[E], error) {
	if len(layers) == 0 {
		return nil, errors.New("at: stack requires at least one layer")
	}
	if err := layering.Validate(layers); err != nil {
		return nil, err
	}
	return &Stack[E]{
		layers:     layering.Sort(layers),
		snapshotID: uuid.NewString(),
	}, nil
}

// SnapshotID identifies this stack assembly for tracing and audit metadata.
func (s *Stack[E]) SnapshotID() string {
	if s == nil {
		return ""
	}
	return s.snapshotID
}

// Len returns the union width of the stack's layers.
func (s *Stack[E]) Len() int {
	if s == nil {
		return 0
	}
	return layering.Width(s.layers)
}

// At returns the effective element at index, resolved strongest layer first.
func (s *Stack[E]) At(index int) (E, error) {
	var zero E
	if s == nil {
		return zero, rangeError(index, 0, StrategyChecked)
	}
	value, _, ok := layering.Pick(s.layers, index)
	if !ok {
		return zero, rangeError(index, s.Len(), StrategyChecked)
	}
	return value, nil
}

// Flatten materialises the effective sequence over the union domain.
func (s *Stack[E]) Flatten() []E {
	if s == nil {
		return nil
	}
	return layering.Flatten(s.layers)
}

// LayerHit details how one layer contributed to a resolved index.
type LayerHit struct {
	Layer    string `json:"layer"`
	Priority int    `json:"priority"`
	Covered  bool   `json:"covered"`
	Selected bool   `json:"selected"`
	Value    any    `json:"value,omitempty"`
}

// Provenance reports, strongest layer first, how each layer participated in
// resolving index. It mirrors what At would return without touching state.
func (s *Stack[E]) Provenance(index int) []LayerHit {
	if s == nil {
		return nil
	}
	_, selected, _ := layering.Pick(s.layers, index)
	hits := make([]LayerHit, 0, len(s.layers))
	for i, layer := range s.layers {
		hit := LayerHit{
			Layer:    layer.Name,
			Priority: layer.Priority,
			Covered:  layer.Covers(index),
			Selected: i == selected,
		}
		if hit.Covered {
			hit.Value = layer.Elems[index]
		}
		hits = append(hits, hit)
	}
	return hits
}

func copyMetadata(metadata map[string]any) map[string]any {
	if len(metadata) == 0 {
		return nil
	}
	copied := make(map[string]any, len(metadata))
	for key, value := range metadata {
		copied[key] = value
	}
	return copied
}
