package activity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNormalizeEvent(t *testing.T) {
	event := NormalizeEvent(Event{
		Verb:       "  collection.access  ",
		Collection: " []int ",
		Metadata:   map[string]any{"key": "value"},
	})
	if event.Verb != "collection.access" || event.Collection != "[]int" {
		t.Fatalf("expected trimmed fields, got %+v", event)
	}
	if event.ID == "" {
		t.Fatalf("expected an identifier to be assigned")
	}
	if event.OccurredAt.IsZero() {
		t.Fatalf("expected a timestamp to be assigned")
	}
}

func TestNormalizeEventClonesMetadata(t *testing.T) {
	metadata := map[string]any{"key": "value"}
	event := NormalizeEvent(Event{Verb: "v", Collection: "c", Metadata: metadata})
	metadata["key"] = "mutated"
	if event.Metadata["key"] != "value" {
		t.Fatalf("metadata must be cloned, got %v", event.Metadata["key"])
	}
}

func TestNormalizeEventKeepsExistingIdentity(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	event := NormalizeEvent(Event{ID: "fixed", OccurredAt: at})
	if event.ID != "fixed" || !event.OccurredAt.Equal(at) {
		t.Fatalf("existing identity must be kept, got %+v", event)
	}
}

func TestHooksNotify(t *testing.T) {
	var received []Event
	hooks := Hooks{HookFunc(func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})}

	if err := hooks.Notify(context.Background(), Event{Verb: "collection.access", Collection: "[]int"}); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if len(received) != 1 {
		t.Fatalf("expected one delivery, got %d", len(received))
	}
	if received[0].ID == "" {
		t.Fatalf("expected normalized delivery")
	}
}

func TestHooksNotifyShortCircuits(t *testing.T) {
	called := false
	hooks := Hooks{HookFunc(func(context.Context, Event) error {
		called = true
		return nil
	})}

	if err := hooks.Notify(context.Background(), Event{Collection: "[]int"}); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if err := hooks.Notify(context.Background(), Event{Verb: "collection.access"}); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if called {
		t.Fatalf("events missing required fields must not be delivered")
	}
}

func TestHooksNotifyJoinsErrors(t *testing.T) {
	first := errors.New("first failure")
	second := errors.New("second failure")
	hooks := Hooks{
		HookFunc(func(context.Context, Event) error { return first }),
		HookFunc(func(context.Context, Event) error { return nil }),
		HookFunc(func(context.Context, Event) error { return second }),
	}

	err := hooks.Notify(context.Background(), Event{Verb: "v", Collection: "c"})
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Fatalf("expected both failures joined, got %v", err)
	}
}

func TestHooksEnabled(t *testing.T) {
	if (Hooks{}).Enabled() {
		t.Fatalf("empty hooks must report disabled")
	}
	if !(Hooks{HookFunc(nil)}).Enabled() {
		t.Fatalf("non-empty hooks must report enabled")
	}
}
