package activity

import "time"

// AccessEventInput describes the common fields for access audit events.
type AccessEventInput struct {
	Collection string
	Indices    []string
	Strategy   string
	Expr       string
	Engine     string
	Reason     string
	Channel    string
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildAccessEvent constructs a normalized event for a satisfied access.
func BuildAccessEvent(input AccessEventInput) Event {
	return buildAccessEvent("collection.access", input)
}

// BuildAccessDeniedEvent constructs a normalized event for a failed access.
func BuildAccessDeniedEvent(input AccessEventInput) Event {
	return buildAccessEvent("collection.access.denied", input)
}

func buildAccessEvent(verb string, input AccessEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Expr != "" {
		metadata = ensureMetadata(metadata)
		metadata["expr"] = input.Expr
	}
	if input.Engine != "" {
		metadata = ensureMetadata(metadata)
		metadata["engine"] = input.Engine
	}
	if input.Reason != "" {
		metadata = ensureMetadata(metadata)
		metadata["reason"] = input.Reason
	}
	return NormalizeEvent(Event{
		Verb:       verb,
		Collection: input.Collection,
		Indices:    input.Indices,
		Strategy:   input.Strategy,
		Channel:    input.Channel,
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	})
}

func ensureMetadata(metadata map[string]any) map[string]any {
	if metadata == nil {
		return map[string]any{}
	}
	return metadata
}
