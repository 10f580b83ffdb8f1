package activity

import "testing"

func TestBuildAccessEvent(t *testing.T) {
	event := BuildAccessEvent(AccessEventInput{
		Collection: "[]string",
		Indices:    []string{"2"},
		Strategy:   "native",
	})
	if event.Verb != "collection.access" {
		t.Fatalf("unexpected verb %q", event.Verb)
	}
	if event.ID == "" || event.OccurredAt.IsZero() {
		t.Fatalf("expected normalized event, got %+v", event)
	}
	if event.Metadata != nil {
		t.Fatalf("expected no metadata without resolver fields, got %v", event.Metadata)
	}
}

func TestBuildAccessEventResolverMetadata(t *testing.T) {
	event := BuildAccessEvent(AccessEventInput{
		Collection: "[]string",
		Expr:       "size - 1",
		Engine:     "expr",
	})
	if event.Metadata["expr"] != "size - 1" || event.Metadata["engine"] != "expr" {
		t.Fatalf("expected resolver metadata, got %v", event.Metadata)
	}
}

func TestBuildAccessDeniedEvent(t *testing.T) {
	event := BuildAccessDeniedEvent(AccessEventInput{
		Collection: "[3]int",
		Indices:    []string{"9"},
		Strategy:   "native",
		Reason:     "index 9 out of range",
	})
	if event.Verb != "collection.access.denied" {
		t.Fatalf("unexpected verb %q", event.Verb)
	}
	if event.Metadata["reason"] != "index 9 out of range" {
		t.Fatalf("expected the denial reason in metadata, got %v", event.Metadata)
	}
}
