package policy

import (
	"errors"
	"testing"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestDecode(t *testing.T) {
	decoder := NewDecoder[sample]()
	result, err := decoder.Decode(Context{Source: "test"}, map[string]any{
		"name":  "widget",
		"count": 3,
	})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if result.Name != "widget" || result.Count != 3 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestDecodeNilPayload(t *testing.T) {
	decoder := NewDecoder[sample]()
	if _, err := decoder.Decode(Context{Source: "test"}, nil); err == nil {
		t.Fatalf("expected nil payload to fail")
	}
}

func TestDecodeDisallowUnknownFields(t *testing.T) {
	decoder := NewDecoder[sample](WithDisallowUnknownFields[sample]())
	_, err := decoder.Decode(Context{Source: "test"}, map[string]any{
		"name":  "widget",
		"extra": true,
	})
	if err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
}

func TestDecodePreHook(t *testing.T) {
	decoder := NewDecoder[sample](WithPreHook[sample](func(_ Context, payload map[string]any) (map[string]any, error) {
		payload["name"] = "renamed"
		return payload, nil
	}))
	result, err := decoder.Decode(Context{Source: "test"}, map[string]any{"name": "widget"})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if result.Name != "renamed" {
		t.Fatalf("expected the pre-hook rewrite, got %q", result.Name)
	}
}

func TestDecodePreHookDoesNotMutateInput(t *testing.T) {
	decoder := NewDecoder[sample](WithPreHook[sample](func(_ Context, payload map[string]any) (map[string]any, error) {
		payload["name"] = "renamed"
		return payload, nil
	}))
	payload := map[string]any{"name": "widget"}
	if _, err := decoder.Decode(Context{Source: "test"}, payload); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if payload["name"] != "widget" {
		t.Fatalf("decode must operate on a clone, input changed to %v", payload["name"])
	}
}

func TestDecodePostHookValidation(t *testing.T) {
	wantErr := errors.New("count must be positive")
	decoder := NewDecoder[sample](WithPostHook[sample](func(_ Context, s *sample) error {
		if s.Count <= 0 {
			return wantErr
		}
		return nil
	}))
	_, err := decoder.Decode(Context{Source: "test"}, map[string]any{"count": 0})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the post-hook failure, got %v", err)
	}
}

func TestDecodeCustomDecoder(t *testing.T) {
	decoder := NewDecoder[sample](WithCustomDecoder[sample](func(_ Context, payload map[string]any) (sample, error) {
		return sample{Name: "custom"}, nil
	}))
	result, err := decoder.Decode(Context{Source: "test"}, map[string]any{})
	if err != nil || result.Name != "custom" {
		t.Fatalf("expected the custom decoder result, got %+v (%v)", result, err)
	}
}
